package analyzer

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/focuswatch/internal/category"
)

const (
	// LoopThreshold is the switch count at which a pair becomes a death loop.
	LoopThreshold = 20

	// MaxLoops caps the number of death loops reported.
	MaxLoops = 10

	// AIAssistedRatio is the share of AI-tagged switches above which a loop
	// is considered AI-assisted.
	AIAssistedRatio = 0.3
)

type pairStats struct {
	apps   [2]string
	count  int
	ai     int
	agents *Tally
}

// DetectDeathLoops groups switches by unordered app pair and returns the
// pairs switched at least LoopThreshold times, most frequent first, with a
// verdict for each. It needs the complete switch sequence.
func DetectDeathLoops(switches []Switch, rules *category.RuleSet) []DeathLoop {
	if rules == nil {
		rules = category.Default()
	}

	index := make(map[[2]string]*pairStats)
	var order []*pairStats
	for _, sw := range switches {
		key := pairKey(sw.From, sw.To)
		ps, ok := index[key]
		if !ok {
			ps = &pairStats{apps: key, agents: NewTally()}
			index[key] = ps
			order = append(order, ps)
		}
		ps.count++
		if sw.AIAgent != "" {
			ps.ai++
			ps.agents.Add(sw.AIAgent, 1)
		}
	}

	var candidates []*pairStats
	for _, ps := range order {
		if ps.count >= LoopThreshold {
			candidates = append(candidates, ps)
		}
	}
	// Stable so equal counts keep first-seen order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].count > candidates[j].count
	})
	if len(candidates) > MaxLoops {
		candidates = candidates[:MaxLoops]
	}

	loops := make([]DeathLoop, 0, len(candidates))
	for _, ps := range candidates {
		loop := DeathLoop{
			Apps:        ps.apps,
			Count:       ps.count,
			AISwitches:  ps.ai,
			Description: fmt.Sprintf("%s ↔ %s", ps.apps[0], ps.apps[1]),
		}
		judgeLoop(&loop, ps, rules)
		loops = append(loops, loop)
	}
	return loops
}

// judgeLoop assigns the verdict. Distraction is checked first so AI
// assistance never masks it.
func judgeLoop(loop *DeathLoop, ps *pairStats, rules *category.RuleSet) {
	a, b := ps.apps[0], ps.apps[1]
	catA, _ := rules.Categorize(a, "")
	catB, _ := rules.Categorize(b, "")

	aiRatio := 0.0
	if ps.count > 0 {
		aiRatio = float64(ps.ai) / float64(ps.count)
	}

	switch {
	case category.In(catA, category.Distracting):
		loop.Verdict = VerdictDistracting
		loop.Suggestion = fmt.Sprintf("Block %s during focus hours", a)
	case category.In(catB, category.Distracting):
		loop.Verdict = VerdictDistracting
		loop.Suggestion = fmt.Sprintf("Block %s during focus hours", b)
	case aiRatio > AIAssistedRatio:
		loop.Verdict = VerdictAIAssisted
		if top := ps.agents.Top(1); len(top) > 0 {
			loop.AIAgent = top[0].Key
		}
		loop.Suggestion = fmt.Sprintf(
			"AI-assisted workflow (%s, %d of %d switches) - let the agent run and batch your check-ins",
			loop.AIAgent, ps.ai, ps.count,
		)
	case category.In(catA, category.Dev) && category.In(catB, category.Dev):
		loop.Verdict = VerdictProductive
		loop.Suggestion = "Normal dev workflow - consider split screen"
	default:
		loop.Verdict = VerdictMixed
		loop.Suggestion = "Consider batching these activities"
	}
}

// pairKey orders two app names lexically.
func pairKey(x, y string) [2]string {
	if y < x {
		return [2]string{y, x}
	}
	return [2]string{x, y}
}
