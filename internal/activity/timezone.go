package activity

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ResolveLocation loads the named IANA timezone. An empty name means the
// system default. An unknown name falls back to the system default and
// returns an error the caller should report as a warning.
func ResolveLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local, fmt.Errorf("unknown timezone %q, using system default: %w", name, err)
	}
	return loc, nil
}

// LocationLabel returns a human-readable label for loc. The system default
// is labelled with $TZ when set.
func LocationLabel(loc *time.Location) string {
	if loc == nil || loc == time.Local {
		if tz := os.Getenv("TZ"); tz != "" {
			return tz
		}
		return "Local"
	}
	return loc.String()
}
