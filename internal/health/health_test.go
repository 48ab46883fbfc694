package health

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Caps
// ---------------------------------------------------------------------------

func TestDefaultCapsSumTo100(t *testing.T) {
	if got := DefaultCaps.Sum(); got != 100 {
		t.Fatalf("DefaultCaps.Sum() = %d, want 100", got)
	}
}

// ---------------------------------------------------------------------------
// CLAUDE.md component
// ---------------------------------------------------------------------------

func TestCompute_ClaudeMdScoring(t *testing.T) {
	cases := []struct {
		name    string
		has     bool
		content string
		want    int
	}{
		{"absent", false, "", 0},
		{"bare presence", true, "hi", 10},
		{"short with one heading", true, strings.Repeat("x", 100) + "\n## Setup\n", 17},
		{"long with three headings", true, strings.Repeat("x", 300) + "\n## A\n## B\n## C\n", 25},
		{"long without headings", true, strings.Repeat("x", 300), 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := Inputs{HasClaudeMd: c.has, ClaudeMdContent: c.content}
			r := Compute(in, DefaultCaps)
			if r.Components.ClaudeMd != c.want {
				t.Errorf("ClaudeMd = %d, want %d", r.Components.ClaudeMd, c.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Coverage and freshness components
// ---------------------------------------------------------------------------

func TestCompute_ModuleDocsCoverage(t *testing.T) {
	in := Inputs{Documentable: 4, Documented: 3}
	r := Compute(in, DefaultCaps)
	// round(0.75 * 25) = 19.
	if r.Components.ModuleDocs != 19 {
		t.Errorf("ModuleDocs = %d, want 19", r.Components.ModuleDocs)
	}
}

func TestCompute_NoDocumentableFiles(t *testing.T) {
	r := Compute(Inputs{}, DefaultCaps)
	if r.Components.ModuleDocs != 0 || r.Components.Freshness != 0 {
		t.Errorf("empty scan should score zero coverage and freshness: %+v", r.Components)
	}
}

func TestCompute_FreshnessMean(t *testing.T) {
	in := Inputs{Documentable: 2, Documented: 2, FreshnessMean: 90}
	r := Compute(in, DefaultCaps)
	// round(0.9 * 15) = 14.
	if r.Components.Freshness != 14 {
		t.Errorf("Freshness = %d, want 14", r.Components.Freshness)
	}
}

func TestCompute_MoreDocsNeverLowersScore(t *testing.T) {
	prev := -1
	for documented := 0; documented <= 10; documented++ {
		in := Inputs{Documentable: 10, Documented: documented, FreshnessMean: 100}
		r := Compute(in, DefaultCaps)
		if r.Total < prev {
			t.Fatalf("total dropped from %d to %d at documented=%d", prev, r.Total, documented)
		}
		prev = r.Total
	}
}

// ---------------------------------------------------------------------------
// Skills, context, enforcement
// ---------------------------------------------------------------------------

func TestCompute_SkillsPlateau(t *testing.T) {
	five := Compute(Inputs{SkillCount: 5}, DefaultCaps)
	twenty := Compute(Inputs{SkillCount: 20}, DefaultCaps)
	if five.Components.Skills != 15 {
		t.Errorf("five skills should earn the full cap, got %d", five.Components.Skills)
	}
	if twenty.Components.Skills != five.Components.Skills {
		t.Error("skill score must plateau at five")
	}

	two := Compute(Inputs{SkillCount: 2}, DefaultCaps)
	// round(2/5 * 15) = 6.
	if two.Components.Skills != 6 {
		t.Errorf("Skills = %d, want 6", two.Components.Skills)
	}
}

func TestCompute_ContextInverted(t *testing.T) {
	idle := Compute(Inputs{ContextUtilization: 0}, DefaultCaps)
	full := Compute(Inputs{ContextUtilization: 1}, DefaultCaps)
	if idle.Components.Context != 10 {
		t.Errorf("zero utilization should earn the full cap, got %d", idle.Components.Context)
	}
	if full.Components.Context != 0 {
		t.Errorf("full utilization should earn zero, got %d", full.Components.Context)
	}
}

func TestCompute_ScaledInputsSaturate(t *testing.T) {
	r := Compute(Inputs{EnforcementCoverage: 1.5, ContextUtilization: -2}, DefaultCaps)
	if r.Components.Enforcement != 10 {
		t.Errorf("Enforcement = %d, want saturated 10", r.Components.Enforcement)
	}
	if r.Components.Context != 10 {
		t.Errorf("Context = %d, want saturated 10", r.Components.Context)
	}
}

// ---------------------------------------------------------------------------
// Risk and totals
// ---------------------------------------------------------------------------

func TestFromComponents_RiskBoundaries(t *testing.T) {
	cases := []struct {
		comp Components
		want Risk
	}{
		{Components{ClaudeMd: 25, ModuleDocs: 25, Freshness: 10, Skills: 10}, RiskLow},     // 70
		{Components{ClaudeMd: 25, ModuleDocs: 15}, RiskMedium},                             // 40
		{Components{ClaudeMd: 25, ModuleDocs: 14}, RiskHigh},                               // 39
		{Components{}, RiskHigh},                                                           // 0
		{Components{ClaudeMd: 25, ModuleDocs: 25, Freshness: 15, Skills: 15, Context: 10, Enforcement: 10}, RiskLow}, // 100
	}
	for _, c := range cases {
		r := FromComponents(c.comp, DefaultCaps)
		if r.Risk != c.want {
			t.Errorf("total %d: risk = %q, want %q", r.Total, r.Risk, c.want)
		}
	}
}

func TestFromComponents_ClampsToCaps(t *testing.T) {
	r := FromComponents(Components{ClaudeMd: 99, Freshness: -5}, DefaultCaps)
	if r.Components.ClaudeMd != 25 {
		t.Errorf("ClaudeMd = %d, want clamped 25", r.Components.ClaudeMd)
	}
	if r.Components.Freshness != 0 {
		t.Errorf("Freshness = %d, want clamped 0", r.Components.Freshness)
	}
}

// ---------------------------------------------------------------------------
// Quick wins
// ---------------------------------------------------------------------------

func TestQuickWins_RankedByImpact(t *testing.T) {
	comp := Components{ClaudeMd: 25, ModuleDocs: 10, Freshness: 15, Skills: 15, Context: 10, Enforcement: 5}
	wins := quickWins(comp, DefaultCaps)

	if len(wins) != 2 {
		t.Fatalf("expected 2 wins, got %d: %+v", len(wins), wins)
	}
	if wins[0].Impact != 15 || wins[0].Title != "Document undocumented modules" {
		t.Errorf("first win = %+v", wins[0])
	}
	if wins[1].Impact != 5 || wins[1].Title != "Configure enforcement hooks" {
		t.Errorf("second win = %+v", wins[1])
	}
}

func TestQuickWins_TieBrokenByCap(t *testing.T) {
	// Freshness (cap 15) and Context (cap 10) both 10 points short.
	comp := Components{ClaudeMd: 25, ModuleDocs: 25, Freshness: 5, Skills: 15, Context: 0, Enforcement: 10}
	wins := quickWins(comp, DefaultCaps)

	if len(wins) != 2 {
		t.Fatalf("expected 2 wins, got %d", len(wins))
	}
	if wins[0].Title != "Refresh outdated headers" {
		t.Errorf("the higher-cap component should rank first on a tie, got %q", wins[0].Title)
	}
}

func TestQuickWins_NoneWhenFull(t *testing.T) {
	comp := Components{ClaudeMd: 25, ModuleDocs: 25, Freshness: 15, Skills: 15, Context: 10, Enforcement: 10}
	if wins := quickWins(comp, DefaultCaps); len(wins) != 0 {
		t.Errorf("perfect score should yield no wins, got %+v", wins)
	}
}

// ---------------------------------------------------------------------------
// Token estimate
// ---------------------------------------------------------------------------

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	}
	for _, c := range cases {
		if got := EstimateTokens(c.text); got != c.want {
			t.Errorf("EstimateTokens(len %d) = %d, want %d", len(c.text), got, c.want)
		}
	}
}
