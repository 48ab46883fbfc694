package app

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/engine"
	"github.com/blackwell-systems/repolens/internal/output"
	"github.com/blackwell-systems/repolens/internal/store"
)

var (
	trackFlagDB          string
	trackFlagSkills      int
	trackFlagContext     float64
	trackFlagEnforcement float64
)

var trackCmd = &cobra.Command{
	Use:   "track [root]",
	Short: "Snapshot health scores and compare over time",
	Long: `Track runs a full health computation, stores the result as a snapshot
in the local SQLite database, and compares it against the previous
snapshot for the same project root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().StringVar(&trackFlagDB, "db", "", "Database path (default: ~/.config/repolens/repolens.db)")
	trackCmd.Flags().IntVar(&trackFlagSkills, "skills", 0, "Number of configured skills (plateaus at 5)")
	trackCmd.Flags().Float64Var(&trackFlagContext, "context", 0, "Context utilization fraction, 0-1")
	trackCmd.Flags().Float64Var(&trackFlagEnforcement, "enforcement", 0, "Enforcement hook coverage fraction, 0-1")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	root, err := filepath.Abs(rootArg(args))
	if err != nil {
		return err
	}

	report, err := eng.ComputeHealth(root, engine.HealthOverrides{
		SkillCount:          trackFlagSkills,
		ContextUtilization:  trackFlagContext,
		EnforcementCoverage: trackFlagEnforcement,
	})
	if err != nil {
		return fmt.Errorf("computing health: %w", err)
	}

	statuses, err := eng.ScanModules(root)
	if err != nil {
		return fmt.Errorf("scanning modules: %w", err)
	}

	dbPath := trackFlagDB
	if dbPath == "" {
		dbPath = config.DBPath()
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	snapID, err := db.SaveSnapshot(root, appVersion, report, statuses)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	fmt.Println(output.Section("Health Snapshot"))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Root:"),
		output.StyleValue.Render(root))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total:"),
		output.ScoreLabel(report.Total, 100))

	prev, err := db.PreviousSnapshot(root, snapID)
	if err != nil {
		return fmt.Errorf("reading previous snapshot: %w", err)
	}
	if prev == nil {
		fmt.Println()
		fmt.Println(output.StyleMuted.Render(" First snapshot for this root; nothing to compare yet."))
		return nil
	}

	prevReport, err := db.HealthFor(prev.ID)
	if err != nil {
		return fmt.Errorf("reading previous report: %w", err)
	}
	if prevReport != nil {
		fmt.Printf(" %s %s %s\n",
			output.StyleLabel.Render("Since "+prev.TakenAt.Format("2006-01-02")+":"),
			output.TrendArrow(report.Total, prevReport.Total),
			output.StyleMuted.Render(fmt.Sprintf("(was %d)", prevReport.Total)))
	}

	prevScores, err := db.ModuleScores(prev.ID)
	if err != nil {
		return fmt.Errorf("reading previous module scores: %w", err)
	}
	renderModuleDeltas(statuses, prevScores)
	return nil
}

// renderModuleDeltas lists files whose freshness score moved since the
// previous snapshot.
func renderModuleDeltas(statuses []engine.ModuleStatus, prevScores map[string]int) {
	type delta struct {
		rel      string
		from, to int
	}
	var deltas []delta
	for _, s := range statuses {
		prev, ok := prevScores[s.RelPath]
		if !ok || prev == s.Score {
			continue
		}
		deltas = append(deltas, delta{rel: s.RelPath, from: prev, to: s.Score})
	}
	if len(deltas) == 0 {
		return
	}

	sort.Slice(deltas, func(i, j int) bool {
		return (deltas[i].to - deltas[i].from) < (deltas[j].to - deltas[j].from)
	})

	fmt.Println()
	fmt.Println(output.Section("Changed Files"))
	fmt.Println()
	for _, d := range deltas {
		fmt.Printf(" %s %s %s\n",
			output.TrendArrow(d.to, d.from),
			d.rel,
			output.StyleMuted.Render(fmt.Sprintf("%d -> %d", d.from, d.to)))
	}
	fmt.Println()
}
