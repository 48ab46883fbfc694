// Package health aggregates per-file documentation signals into a 0-100
// project health report with weighted components and ranked quick wins.
package health

import (
	"math"
	"strings"
)

// Caps are the component weight ceilings. They must sum to 100; config
// loading asserts this at startup so the invariant cannot drift.
type Caps struct {
	ClaudeMd    int `json:"claude_md" mapstructure:"claude_md"`
	ModuleDocs  int `json:"module_docs" mapstructure:"module_docs"`
	Freshness   int `json:"freshness" mapstructure:"freshness"`
	Skills      int `json:"skills" mapstructure:"skills"`
	Context     int `json:"context" mapstructure:"context"`
	Enforcement int `json:"enforcement" mapstructure:"enforcement"`
}

// DefaultCaps is the standard 25/25/15/15/10/10 split.
var DefaultCaps = Caps{
	ClaudeMd:    25,
	ModuleDocs:  25,
	Freshness:   15,
	Skills:      15,
	Context:     10,
	Enforcement: 10,
}

// Sum returns the total of all caps.
func (c Caps) Sum() int {
	return c.ClaudeMd + c.ModuleDocs + c.Freshness + c.Skills + c.Context + c.Enforcement
}

// Components holds the observed score per component, each bounded by its cap.
type Components struct {
	ClaudeMd    int `json:"claude_md"`
	ModuleDocs  int `json:"module_docs"`
	Freshness   int `json:"freshness"`
	Skills      int `json:"skills"`
	Context     int `json:"context"`
	Enforcement int `json:"enforcement"`
}

// Risk labels the overall health total.
type Risk string

const (
	RiskLow    Risk = "low"    // total >= 70
	RiskMedium Risk = "medium" // total >= 40
	RiskHigh   Risk = "high"
)

// QuickWin is one actionable suggestion, ranked by the points it recovers.
type QuickWin struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      int    `json:"impact"`
	Effort      string `json:"effort"` // low, medium, high
}

// Report is the aggregate project health result.
type Report struct {
	Total      int        `json:"total"`
	Components Components `json:"components"`
	QuickWins  []QuickWin `json:"quick_wins"`
	Risk       Risk       `json:"risk"`
}

// Inputs carries the signals the health scorer combines. ClaudeMdContent
// is the raw CLAUDE.md text ("" when the file is absent, with HasClaudeMd
// false). Documented/Documentable and FreshnessMean come from the module
// scan. SkillCount, ContextUtilization, and EnforcementCoverage are
// supplied by the caller.
type Inputs struct {
	HasClaudeMd     bool
	ClaudeMdContent string

	Documentable int
	Documented   int

	// FreshnessMean is the mean per-file freshness score (0-100) over
	// documented files. Ignored when Documented is zero.
	FreshnessMean float64

	// SkillCount plateaus at 5: five or more skills earn the full cap.
	SkillCount int

	// ContextUtilization is the token-budget fraction in [0,1]; lower
	// utilization scores higher.
	ContextUtilization float64

	// EnforcementCoverage is the fraction of enforcement hooks configured,
	// in [0,1].
	EnforcementCoverage float64
}

// Compute builds the health report from inputs under the given caps.
func Compute(in Inputs, caps Caps) *Report {
	comp := Components{
		ClaudeMd:    scoreClaudeMd(in, caps.ClaudeMd),
		ModuleDocs:  scoreModuleDocs(in, caps.ModuleDocs),
		Freshness:   scoreFreshness(in, caps.Freshness),
		Skills:      scoreSkills(in.SkillCount, caps.Skills),
		Context:     scoreScaled(1-in.ContextUtilization, caps.Context),
		Enforcement: scoreScaled(in.EnforcementCoverage, caps.Enforcement),
	}

	total := comp.ClaudeMd + comp.ModuleDocs + comp.Freshness +
		comp.Skills + comp.Context + comp.Enforcement
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return &Report{
		Total:      total,
		Components: comp,
		QuickWins:  quickWins(comp, caps),
		Risk:       riskFor(total),
	}
}

// FromComponents rebuilds a report from already-decided component scores,
// used when a caller supplies some components directly instead of having
// them computed from the project root.
func FromComponents(comp Components, caps Caps) *Report {
	comp.ClaudeMd = clampCap(comp.ClaudeMd, caps.ClaudeMd)
	comp.ModuleDocs = clampCap(comp.ModuleDocs, caps.ModuleDocs)
	comp.Freshness = clampCap(comp.Freshness, caps.Freshness)
	comp.Skills = clampCap(comp.Skills, caps.Skills)
	comp.Context = clampCap(comp.Context, caps.Context)
	comp.Enforcement = clampCap(comp.Enforcement, caps.Enforcement)

	total := comp.ClaudeMd + comp.ModuleDocs + comp.Freshness +
		comp.Skills + comp.Context + comp.Enforcement
	if total > 100 {
		total = 100
	}

	return &Report{
		Total:      total,
		Components: comp,
		QuickWins:  quickWins(comp, caps),
		Risk:       riskFor(total),
	}
}

// scoreClaudeMd: 10 for presence, up to 10 for content length, up to 5 for
// section headings, bounded by the cap.
func scoreClaudeMd(in Inputs, ceiling int) int {
	if !in.HasClaudeMd {
		return 0
	}
	score := 10

	n := len(in.ClaudeMdContent)
	switch {
	case n > 200:
		score += 10
	case n > 50:
		score += 5
	}

	headings := strings.Count(in.ClaudeMdContent, "## ")
	switch {
	case headings >= 3:
		score += 5
	case headings >= 1:
		score += 2
	}

	return clampCap(score, ceiling)
}

// scoreModuleDocs: round(coverage x cap).
func scoreModuleDocs(in Inputs, ceiling int) int {
	if in.Documentable == 0 {
		return 0
	}
	coverage := float64(in.Documented) / float64(in.Documentable)
	return clampCap(int(math.Round(coverage*float64(ceiling))), ceiling)
}

// scoreFreshness scales the mean per-file score to the cap.
func scoreFreshness(in Inputs, ceiling int) int {
	if in.Documented == 0 {
		return 0
	}
	return clampCap(int(math.Round(in.FreshnessMean/100*float64(ceiling))), ceiling)
}

// scoreSkills plateaus at five skills.
func scoreSkills(count, ceiling int) int {
	if count < 0 {
		count = 0
	}
	if count > 5 {
		count = 5
	}
	return clampCap(int(math.Round(float64(count)/5*float64(ceiling))), ceiling)
}

// scoreScaled maps a [0,1] fraction to the cap, saturating at the bounds.
func scoreScaled(fraction float64, ceiling int) int {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return clampCap(int(math.Round(fraction*float64(ceiling))), ceiling)
}

func clampCap(score, ceiling int) int {
	if score < 0 {
		return 0
	}
	if score > ceiling {
		return ceiling
	}
	return score
}

func riskFor(total int) Risk {
	switch {
	case total >= 70:
		return RiskLow
	case total >= 40:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// EstimateTokens approximates the token count of text as ceil(len/4).
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
