package analyzer

import "strings"

// AI coding agent identifiers reported by DetectAgent.
const (
	AgentClaudeCode  = "claude_code"
	AgentCodex       = "codex"
	AgentGeminiCLI   = "gemini_cli"
	AgentAider       = "aider"
	AgentCursorAgent = "cursor_agent"
	AgentClaude      = "claude"
)

// agentMatchers are checked in order against the lower-cased title; the
// first match wins.
var agentMatchers = []struct {
	agent string
	match func(title string) bool
}{
	// Claude Code prefixes its terminal title with a spinner glyph.
	{AgentClaudeCode, func(t string) bool { return strings.HasPrefix(strings.TrimSpace(t), "✳") }},
	{AgentClaudeCode, func(t string) bool { return strings.Contains(t, "claude code") }},
	{AgentCodex, func(t string) bool { return strings.Contains(t, "codex") }},
	{AgentGeminiCLI, func(t string) bool { return strings.Contains(t, "gemini") }},
	{AgentAider, func(t string) bool { return strings.Contains(t, "aider") }},
	{AgentCursorAgent, func(t string) bool {
		return strings.Contains(t, "cursor-agent") || strings.Contains(t, "cursor agent")
	}},
	{AgentClaude, func(t string) bool { return strings.Contains(t, "claude") && !strings.Contains(t, "code") }},
}

// DetectAgent returns the AI coding agent active in a terminal window, or ""
// if the title shows none.
func DetectAgent(title string) string {
	lower := strings.ToLower(title)
	for _, m := range agentMatchers {
		if m.match(lower) {
			return m.agent
		}
	}
	return ""
}

// terminalApps are the terminal-class applications whose titles are checked
// for agents.
var terminalApps = []string{
	"Terminal", "iTerm2", "iTerm", "Warp", "Alacritty", "kitty",
	"WezTerm", "Ghostty", "Hyper", "Tabby",
}

// IsTerminal reports whether app is a terminal emulator.
func IsTerminal(app string) bool {
	return containsFold(terminalApps, app)
}

// idleApps mark time away from the machine.
var idleApps = []string{"loginwindow", "ScreenSaverEngine", "LockApp"}

// IsIdle reports whether app represents idle or locked time.
func IsIdle(app string) bool {
	return containsFold(idleApps, app)
}

func containsFold(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
