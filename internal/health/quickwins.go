package health

import "sort"

// winRule describes how one component turns its score gap into a quick win.
type winRule struct {
	title       string
	description string
	effort      string
	cap         func(Caps) int
	observed    func(Components) int
}

var winRules = []winRule{
	{
		title:       "Improve CLAUDE.md",
		description: "Add or expand CLAUDE.md with build commands, conventions, and at least three ## sections.",
		effort:      "low",
		cap:         func(c Caps) int { return c.ClaudeMd },
		observed:    func(c Components) int { return c.ClaudeMd },
	},
	{
		title:       "Document undocumented modules",
		description: "Add documentation headers to source files that have none.",
		effort:      "medium",
		cap:         func(c Caps) int { return c.ModuleDocs },
		observed:    func(c Components) int { return c.ModuleDocs },
	},
	{
		title:       "Refresh outdated headers",
		description: "Update headers whose export and import lists have drifted from the source.",
		effort:      "low",
		cap:         func(c Caps) int { return c.Freshness },
		observed:    func(c Components) int { return c.Freshness },
	},
	{
		title:       "Add project skills",
		description: "Define reusable skills so recurring tasks stop being re-explained every session.",
		effort:      "medium",
		cap:         func(c Caps) int { return c.Skills },
		observed:    func(c Components) int { return c.Skills },
	},
	{
		title:       "Reduce context pressure",
		description: "Trim oversized documentation so the project fits its token budget with room to work.",
		effort:      "medium",
		cap:         func(c Caps) int { return c.Context },
		observed:    func(c Components) int { return c.Context },
	},
	{
		title:       "Configure enforcement hooks",
		description: "Add hooks that keep headers and CLAUDE.md current automatically.",
		effort:      "low",
		cap:         func(c Caps) int { return c.Enforcement },
		observed:    func(c Components) int { return c.Enforcement },
	},
}

// quickWins compares each component to its cap and emits a win per gap,
// sorted by impact descending with ties broken by cap descending.
func quickWins(comp Components, caps Caps) []QuickWin {
	type ranked struct {
		win QuickWin
		cap int
	}
	var wins []ranked
	for _, rule := range winRules {
		gap := rule.cap(caps) - rule.observed(comp)
		if gap <= 0 {
			continue
		}
		wins = append(wins, ranked{
			win: QuickWin{
				Title:       rule.title,
				Description: rule.description,
				Impact:      gap,
				Effort:      rule.effort,
			},
			cap: rule.cap(caps),
		})
	}

	sort.SliceStable(wins, func(i, j int) bool {
		if wins[i].win.Impact != wins[j].win.Impact {
			return wins[i].win.Impact > wins[j].win.Impact
		}
		return wins[i].cap > wins[j].cap
	})

	out := make([]QuickWin, len(wins))
	for i, w := range wins {
		out[i] = w.win
	}
	return out
}
