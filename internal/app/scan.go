package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/engine"
	"github.com/blackwell-systems/repolens/internal/freshness"
	"github.com/blackwell-systems/repolens/internal/output"
)

var (
	scanFlagStatus string
	scanFlagSort   string
	scanFlagJSON   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Scan documentation headers and report drift",
	Long: `Scan walks the project tree, parses the documentation header of every
documentable source file, and compares each header against the file's
current exports and imports. Every file gets a freshness score from
0-100 and a status of current, outdated, or missing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFlagStatus, "status", "", "Only show files with this status: current, outdated, missing")
	scanCmd.Flags().StringVar(&scanFlagSort, "sort", "path", "Sort by: path, score, status")
	scanCmd.Flags().BoolVar(&scanFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	statuses, err := eng.ScanModules(rootArg(args))
	if err != nil {
		return fmt.Errorf("scanning modules: %w", err)
	}

	filtered := statuses
	if scanFlagStatus != "" {
		want := freshness.Status(scanFlagStatus)
		filtered = nil
		for _, s := range statuses {
			if s.Status == want {
				filtered = append(filtered, s)
			}
		}
	}

	sortStatuses(filtered, scanFlagSort)

	if scanFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(filtered)
	}

	renderScanTable(filtered)
	renderScanSummary(statuses)
	return nil
}

func sortStatuses(statuses []engine.ModuleStatus, sortBy string) {
	sort.SliceStable(statuses, func(i, j int) bool {
		switch sortBy {
		case "score":
			return statuses[i].Score < statuses[j].Score
		case "status":
			return statusRank(statuses[i].Status) < statusRank(statuses[j].Status)
		default: // "path"
			return statuses[i].RelPath < statuses[j].RelPath
		}
	})
}

// statusRank orders missing before outdated before current, so the files
// needing attention sort first.
func statusRank(s freshness.Status) int {
	switch s {
	case freshness.StatusMissing:
		return 0
	case freshness.StatusOutdated:
		return 1
	default:
		return 2
	}
}

func renderScanTable(statuses []engine.ModuleStatus) {
	fmt.Println(output.Section("Documentation Scan"))
	fmt.Println()

	tbl := output.NewTable("Status", "Score", "File", "Changes")
	for _, s := range statuses {
		score := ""
		if s.Status != freshness.StatusMissing {
			score = fmt.Sprintf("%d", s.Score)
		}
		tbl.AddRow(renderStatus(s.Status), score, s.RelPath, summarizeChanges(s.Changes))
	}
	tbl.Print()

	if flagVerbose {
		for _, s := range statuses {
			if len(s.Changes) == 0 {
				continue
			}
			fmt.Println()
			fmt.Println(output.StyleBold.Render(s.RelPath))
			for _, c := range s.Changes {
				fmt.Println("  - " + c)
			}
		}
	}
}

func renderStatus(s freshness.Status) string {
	switch s {
	case freshness.StatusCurrent:
		return output.StyleSuccess.Render("current")
	case freshness.StatusOutdated:
		return output.StyleWarning.Render("outdated")
	default:
		return output.StyleError.Render("missing")
	}
}

func summarizeChanges(changes []string) string {
	switch len(changes) {
	case 0:
		return ""
	case 1:
		return changes[0]
	default:
		return fmt.Sprintf("%s (+%d more)", changes[0], len(changes)-1)
	}
}

func renderScanSummary(statuses []engine.ModuleStatus) {
	if len(statuses) == 0 {
		fmt.Println(output.StyleMuted.Render("\n No documentable files found."))
		return
	}

	counts := map[freshness.Status]int{}
	for _, s := range statuses {
		counts[s.Status]++
	}
	documented := counts[freshness.StatusCurrent] + counts[freshness.StatusOutdated]
	coverage := float64(documented) / float64(len(statuses)) * 100

	fmt.Println()
	fmt.Println(output.Section("Summary"))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Files scanned:"),
		output.StyleValue.Render(fmt.Sprintf("%d", len(statuses))))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Coverage:"),
		output.StyleValue.Render(fmt.Sprintf("%.0f%%", coverage)))

	parts := []string{
		output.StyleSuccess.Render(fmt.Sprintf("%d current", counts[freshness.StatusCurrent])),
		output.StyleWarning.Render(fmt.Sprintf("%d outdated", counts[freshness.StatusOutdated])),
		output.StyleError.Render(fmt.Sprintf("%d missing", counts[freshness.StatusMissing])),
	}
	fmt.Printf(" %s %s\n\n",
		output.StyleLabel.Render("Breakdown:"),
		strings.Join(parts, ", "))
}
