package insight

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/focuswatch/internal/category"
)

// browserScanLimit bounds how many top titles and sites OneChange looks at.
const browserScanLimit = 10

const (
	msgFragmented  = "High context switching is fragmenting your attention"
	msgDistracted  = "Entertainment/distraction time is eating into productive hours"
	msgConsistent  = "Strong productivity patterns - focus on maintaining consistency"
	msgMixed       = "Mixed patterns - small improvements in focus will compound"
	msgBatching    = "Batch check communication apps 3x daily instead of continuously"
	msgNotifyBlock = "Protect your peak productive hours by blocking notifications"
)

// Drivers lists productive categories with more than an hour tracked.
func Drivers(ctx *Context, out *Insights) {
	for _, c := range ctx.Categories {
		if category.In(c.Name, category.Productive) && c.Seconds > DriverMinSeconds {
			out.ProductivityDrivers = append(out.ProductivityDrivers, Impact{
				Category: c.Name,
				Hours:    hours1(c.Seconds),
				Impact:   ImpactPositive,
			})
		}
	}
}

// Drains lists draining categories with more than half an hour tracked.
func Drains(ctx *Context, out *Insights) {
	for _, c := range ctx.Categories {
		if category.In(c.Name, category.Drains) && c.Seconds > DrainMinSeconds {
			out.ProductivityDrains = append(out.ProductivityDrains, Impact{
				Category: c.Name,
				Hours:    hours1(c.Seconds),
				Impact:   ImpactNegative,
			})
		}
	}
}

// Schedule recommends a deep-work window at the best peak hour and warns
// when the worst switching hour is late at night.
func Schedule(ctx *Context, out *Insights) {
	if len(ctx.PeakHours) > 0 {
		best := ctx.PeakHours[0]
		out.ScheduleRecommendations = append(out.ScheduleRecommendations, fmt.Sprintf(
			"Schedule deep work around %d:00-%d:00 (your peak productive time)",
			best, (best+2)%24,
		))
	}
	if len(ctx.DangerHours) > 0 {
		worst := ctx.DangerHours[0]
		if LateNight(worst) {
			out.ScheduleRecommendations = append(out.ScheduleRecommendations, fmt.Sprintf(
				"Late night work (%d:00) shows high context switching - consider ending earlier",
				worst,
			))
		}
	}
}

// LateNight reports whether hour falls in [23:00, 06:00).
func LateNight(hour int) bool {
	return hour >= 23 || hour < 6
}

// TopInsight picks the headline. Fragmented focus outranks low productivity.
func TopInsight(ctx *Context, out *Insights) {
	switch {
	case ctx.FocusScore < 50:
		out.TopInsight = msgFragmented
	case ctx.ProductivityScore < 50:
		out.TopInsight = msgDistracted
	case ctx.ProductivityScore >= 70 && ctx.FocusScore >= 70:
		out.TopInsight = msgConsistent
	default:
		out.TopInsight = msgMixed
	}
}

// OneChange picks the single most useful change for next week.
func OneChange(ctx *Context, out *Insights) {
	if len(ctx.Loops) == 0 {
		out.OneChange = msgNotifyBlock
		return
	}
	for _, l := range ctx.Loops {
		if l.Verdict == "distracting" && l.Suggestion != "" {
			out.OneChange = l.Suggestion
			return
		}
	}
	if item, ok := firstEntertainment(ctx.BrowserTitles); ok {
		out.OneChange = blockMessage(item)
		return
	}
	if item, ok := firstEntertainment(ctx.Sites); ok {
		out.OneChange = blockMessage(item)
		return
	}
	out.OneChange = msgBatching
}

func firstEntertainment(items []Amount) (Amount, bool) {
	if len(items) > browserScanLimit {
		items = items[:browserScanLimit]
	}
	for _, it := range items {
		if (it.Category == "entertainment" || it.Category == "social_media") && it.Seconds > OneChangeMinSeconds {
			return it, true
		}
	}
	return Amount{}, false
}

func blockMessage(it Amount) string {
	name := []rune(it.Name)
	if len(name) > 30 {
		name = name[:30]
	}
	return fmt.Sprintf("Block '%s' during work hours (spent %.1fh)", string(name), hours1(it.Seconds))
}

// hours1 converts seconds to hours rounded to one decimal.
func hours1(secs float64) float64 {
	return math.Round(secs/3600*10) / 10
}
