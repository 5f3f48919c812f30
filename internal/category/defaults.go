package category

// defaultRules is the built-in rule set. The order is the match priority and
// must not be rearranged.
var defaultRules = []Rule{
	{Name: "deep_work", Weight: 1.0, Apps: []string{"Terminal", "Cursor", "Code", "VSCode", "PyCharm"}, Titles: []string{"claude code", "git "}},
	{Name: "ai_tools", Weight: 0.8, Apps: []string{"Claude"}, Titles: []string{"ChatGPT", "Claude", "OpenAI Platform", "Google AI Studio"}},
	{Name: "development", Weight: 0.8, Apps: []string{"DBeaver", "Postman"}, Titles: []string{"Supabase", "localhost", "GitHub"}},
	{Name: "writing", Weight: 0.9, Apps: []string{"Notion", "Obsidian", "Notes"}, Titles: []string{"Google Docs"}},
	{Name: "design", Weight: 0.9, Apps: []string{"Figma", "Sketch"}, Titles: []string{"Figma", "Canva", "Webflow"}},
	{Name: "presentations", Weight: 0.7, Apps: []string{"Keynote", "Microsoft PowerPoint"}, Titles: []string{"Google Slides"}},
	{Name: "spreadsheets", Weight: 0.6, Apps: []string{"Numbers", "Microsoft Excel"}, Titles: []string{"Google Sheets"}},
	{Name: "meetings", Weight: 0.5, Apps: []string{"zoom.us", "Zoom", "Google Meet"}, Titles: []string{"Zoom Meeting"}},
	{Name: "communication_work", Weight: 0.3, Apps: []string{"Slack"}, Titles: []string{"Slack |"}},
	{Name: "communication_personal", Weight: 0.1, Apps: []string{"Telegram", "Messages", "WhatsApp"}},
	{Name: "email", Weight: 0.3, Apps: []string{"Mail", "Outlook"}, Titles: []string{"Gmail", "Inbox"}},
	{Name: "learning", Weight: 0.7, Titles: []string{"Coursera", "tutorial", "documentation", "Stack Overflow"}},
	{Name: "business_tools", Weight: 0.5, Apps: []string{"Stripe"}, Titles: []string{"Stripe", "Google Calendar", "Analytics"}},
	{Name: "content_creation", Weight: 0.7, Titles: []string{"YouTube Studio", "Creator Studio"}},
	{Name: "product_work", Weight: 0.8, Titles: []string{"Darwin", "Onsa", "Empatika"}},
	{Name: "social_media", Weight: -0.3, Titles: []string{"Twitter", "Home / X", "LinkedIn", "Reddit"}},
	{Name: "entertainment", Weight: -0.5, Apps: []string{"Netflix", "Spotify"}, Titles: []string{"Netflix", "Prime Video", "Paramount+", "Watch ", "Landman"}},
	{Name: "news", Weight: -0.2, Titles: []string{"News", "Редакция", "Hacker News"}},
	{Name: "system", Weight: 0.0, Apps: []string{"loginwindow", "Finder", "SystemUIServer", "UserNotificationCenter"}, Titles: []string{"Finder"}},
	{Name: "browser_idle", Weight: 0.0, Titles: []string{"New Tab", "Untitled"}},
}

// Default returns a fresh copy of the built-in rule set.
func Default() *RuleSet {
	return NewRuleSet(defaultRules)
}
