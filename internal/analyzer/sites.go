package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/blackwell-systems/focuswatch/internal/category"
)

// Site is a website identified from a browser window title.
type Site struct {
	Name     string  `json:"site"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

const (
	// maxSiteNameLen bounds a trailing title segment accepted as a site name.
	maxSiteNameLen = 40

	// maxBrowserTitleLen is the prefix of a browser title kept for the title
	// breakdown.
	maxBrowserTitleLen = 60
)

type siteKeyword struct {
	keyword string
	site    Site
}

// knownSites is searched in order; more specific keywords come before the
// keywords they contain.
var knownSites = []siteKeyword{
	{"youtube studio", Site{"YouTube Studio", "content_creation", 0.7}},
	{"youtube", Site{"YouTube", "entertainment", -0.5}},
	{"netflix", Site{"Netflix", "entertainment", -0.5}},
	{"prime video", Site{"Prime Video", "entertainment", -0.5}},
	{"twitch", Site{"Twitch", "entertainment", -0.5}},
	{"reddit", Site{"Reddit", "social_media", -0.3}},
	{"twitter", Site{"Twitter", "social_media", -0.3}},
	{"home / x", Site{"X", "social_media", -0.3}},
	{"x.com", Site{"X", "social_media", -0.3}},
	{"linkedin", Site{"LinkedIn", "social_media", -0.3}},
	{"facebook", Site{"Facebook", "social_media", -0.3}},
	{"instagram", Site{"Instagram", "social_media", -0.3}},
	{"hacker news", Site{"Hacker News", "news", -0.2}},
	{"github", Site{"GitHub", "development", 0.8}},
	{"gitlab", Site{"GitLab", "development", 0.8}},
	{"localhost", Site{"localhost", "development", 0.8}},
	{"supabase", Site{"Supabase", "development", 0.8}},
	{"vercel", Site{"Vercel", "development", 0.8}},
	{"stack overflow", Site{"Stack Overflow", "learning", 0.7}},
	{"wikipedia", Site{"Wikipedia", "learning", 0.7}},
	{"coursera", Site{"Coursera", "learning", 0.7}},
	{"udemy", Site{"Udemy", "learning", 0.7}},
	{"chatgpt", Site{"ChatGPT", "ai_tools", 0.8}},
	{"google ai studio", Site{"Google AI Studio", "ai_tools", 0.8}},
	{"perplexity", Site{"Perplexity", "ai_tools", 0.8}},
	{"claude", Site{"Claude", "ai_tools", 0.8}},
	{"google docs", Site{"Google Docs", "writing", 0.9}},
	{"notion", Site{"Notion", "writing", 0.9}},
	{"google sheets", Site{"Google Sheets", "spreadsheets", 0.6}},
	{"google slides", Site{"Google Slides", "presentations", 0.7}},
	{"figma", Site{"Figma", "design", 0.9}},
	{"canva", Site{"Canva", "design", 0.9}},
	{"gmail", Site{"Gmail", "email", 0.3}},
	{"google calendar", Site{"Google Calendar", "business_tools", 0.5}},
	{"google meet", Site{"Google Meet", "meetings", 0.5}},
	{"slack", Site{"Slack", "communication_work", 0.3}},
	{"stripe", Site{"Stripe", "business_tools", 0.5}},
}

// titleSeparators split a page title from the site name that browsers and
// sites append after it.
var titleSeparators = []string{" - ", " | ", " – ", " — "}

// ExtractSite identifies the site behind a browser window title.
func ExtractSite(title string) Site {
	if s, ok := matchKnownSite(title); ok {
		return s
	}

	if seg, ok := trailingSegment(title); ok && utf8.RuneCountInString(seg) < maxSiteNameLen {
		if s, ok := matchKnownSite(seg); ok {
			return s
		}
		return Site{Name: seg, Category: category.Uncategorized}
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return Site{Name: "Unknown", Category: category.Uncategorized}
	}
	return Site{Name: truncateRunes(trimmed, maxSiteNameLen), Category: category.Uncategorized}
}

func matchKnownSite(s string) (Site, bool) {
	lower := strings.ToLower(s)
	for _, k := range knownSites {
		if strings.Contains(lower, k.keyword) {
			return k.site, true
		}
	}
	return Site{}, false
}

// trailingSegment returns the text after the right-most separator.
func trailingSegment(title string) (string, bool) {
	cut := -1
	sepLen := 0
	for _, sep := range titleSeparators {
		if i := strings.LastIndex(title, sep); i > cut {
			cut, sepLen = i, len(sep)
		}
	}
	if cut < 0 {
		return "", false
	}
	seg := strings.TrimSpace(title[cut+sepLen:])
	if seg == "" {
		return "", false
	}
	return seg, true
}

// truncateRunes shortens s to n runes, marking the cut with "...".
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// cleanBrowserTitle normalises a browser title for the title breakdown.
// Placeholder titles yield "".
func cleanBrowserTitle(title string) string {
	runes := []rune(title)
	if len(runes) > maxBrowserTitleLen {
		runes = runes[:maxBrowserTitleLen]
	}
	clean := strings.TrimSpace(string(runes))
	switch clean {
	case "New Tab", "Untitled":
		return ""
	}
	return clean
}

var browserApps = []string{
	"Google Chrome", "Safari", "Firefox", "Arc", "Brave Browser", "Brave",
	"Microsoft Edge", "Edge", "ChatGPT Atlas", "Opera", "Vivaldi", "Chromium",
}

// IsBrowser reports whether app is a web browser.
func IsBrowser(app string) bool {
	return containsFold(browserApps, app)
}
