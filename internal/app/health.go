package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/engine"
	"github.com/blackwell-systems/repolens/internal/health"
	"github.com/blackwell-systems/repolens/internal/output"
)

var (
	healthFlagSkills      int
	healthFlagContext     float64
	healthFlagEnforcement float64
	healthFlagJSON        bool
)

var healthCmd = &cobra.Command{
	Use:   "health [root]",
	Short: "Score documentation health and list quick wins",
	Long: `Health combines the CLAUDE.md quality check, the module scan coverage,
and the mean freshness score into a single 0-100 project health score,
then ranks the component gaps as quick wins.

Skill count, context utilization, and enforcement coverage are not
derivable from the tree alone; supply them with flags or leave them at
zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().IntVar(&healthFlagSkills, "skills", 0, "Number of configured skills (plateaus at 5)")
	healthCmd.Flags().Float64Var(&healthFlagContext, "context", 0, "Context utilization fraction, 0-1 (lower is better)")
	healthCmd.Flags().Float64Var(&healthFlagEnforcement, "enforcement", 0, "Enforcement hook coverage fraction, 0-1")
	healthCmd.Flags().BoolVar(&healthFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, eng, err := loadEngine()
	if err != nil {
		return err
	}

	report, err := eng.ComputeHealth(rootArg(args), engine.HealthOverrides{
		SkillCount:          healthFlagSkills,
		ContextUtilization:  healthFlagContext,
		EnforcementCoverage: healthFlagEnforcement,
	})
	if err != nil {
		return fmt.Errorf("computing health: %w", err)
	}

	if healthFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	renderHealth(report, cfg.Caps)
	return nil
}

func renderHealth(report *health.Report, caps health.Caps) {
	fmt.Println(output.Section("Documentation Health"))
	fmt.Println()

	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render("Total:"),
		output.ScoreBar(report.Total, 100, 20),
		output.ScoreLabel(report.Total, 100))
	fmt.Printf(" %s %s\n\n",
		output.StyleLabel.Render("Risk:"),
		renderRisk(report.Risk))

	comp := report.Components
	renderComponent("CLAUDE.md", comp.ClaudeMd, caps.ClaudeMd)
	renderComponent("Module docs", comp.ModuleDocs, caps.ModuleDocs)
	renderComponent("Freshness", comp.Freshness, caps.Freshness)
	renderComponent("Skills", comp.Skills, caps.Skills)
	renderComponent("Context", comp.Context, caps.Context)
	renderComponent("Enforcement", comp.Enforcement, caps.Enforcement)

	if len(report.QuickWins) > 0 {
		fmt.Println()
		fmt.Println(output.Section("Quick Wins"))
		fmt.Println()
		for i, w := range report.QuickWins {
			fmt.Printf(" %d. %s %s\n",
				i+1,
				output.StyleBold.Render(w.Title),
				output.StyleMuted.Render(fmt.Sprintf("(+%d points, %s effort)", w.Impact, w.Effort)))
			fmt.Printf("    %s\n", w.Description)
		}
	}
	fmt.Println()
}

func renderComponent(label string, score, ceiling int) {
	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render(label+":"),
		output.ScoreBar(score, ceiling, 20),
		output.ScoreLabel(score, ceiling))
}

func renderRisk(r health.Risk) string {
	switch r {
	case health.RiskLow:
		return output.StyleSuccess.Render("low")
	case health.RiskMedium:
		return output.StyleWarning.Render("medium")
	default:
		return output.StyleError.Render("high")
	}
}
