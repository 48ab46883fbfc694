package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/output"
	"github.com/blackwell-systems/repolens/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [root]",
	Short: "Check the repolens environment",
	Long: `Run a series of health checks against the repolens configuration, the
snapshot database, and the target project root. Prints a pass/fail line
for each check and a summary of how many checks passed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	root := rootArg(args)

	var checks []doctorCheck
	checks = append(checks, checkConfig())
	checks = append(checks, checkRootDir(root))
	checks = append(checks, checkClaudeMd(root))
	checks = append(checks, checkDatabase())
	checks = append(checks, checkAPIKey())

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		out := doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(output.Section("Doctor"))
	fmt.Println()

	for _, c := range checks {
		renderDoctorCheck(c)
	}

	fmt.Println()
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
	}

	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Printf("  %s  %-30s %s\n", indicator, label, detail)
}

// checkConfig verifies that the configuration loads and the caps add up.
func checkConfig() doctorCheck {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return doctorCheck{
			Name:    "Configuration",
			Passed:  false,
			Message: err.Error(),
		}
	}
	return doctorCheck{
		Name:    "Configuration",
		Passed:  true,
		Message: fmt.Sprintf("caps sum to %d, max depth %d", cfg.Caps.Sum(), cfg.MaxDepth),
	}
}

// checkRootDir verifies that the project root exists and is a directory.
func checkRootDir(root string) doctorCheck {
	info, err := os.Stat(root)
	if err != nil {
		return doctorCheck{
			Name:    "Project root",
			Passed:  false,
			Message: fmt.Sprintf("not found: %s", root),
		}
	}
	if !info.IsDir() {
		return doctorCheck{
			Name:    "Project root",
			Passed:  false,
			Message: fmt.Sprintf("not a directory: %s", root),
		}
	}
	return doctorCheck{
		Name:    "Project root",
		Passed:  true,
		Message: root,
	}
}

// checkClaudeMd reports whether the project root has a CLAUDE.md.
func checkClaudeMd(root string) doctorCheck {
	info, err := os.Stat(root + "/CLAUDE.md")
	if err != nil {
		return doctorCheck{
			Name:    "CLAUDE.md",
			Passed:  false,
			Message: "not found (largest single health component)",
		}
	}
	return doctorCheck{
		Name:    "CLAUDE.md",
		Passed:  true,
		Message: fmt.Sprintf("%d bytes", info.Size()),
	}
}

// checkDatabase verifies that the snapshot database opens and migrates.
func checkDatabase() doctorCheck {
	dbPath := config.DBPath()
	if _, err := os.Stat(dbPath); err != nil {
		return doctorCheck{
			Name:    "Snapshot database",
			Passed:  false,
			Message: fmt.Sprintf("not found at %s (run 'repolens track' to create)", dbPath),
		}
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return doctorCheck{
			Name:    "Snapshot database",
			Passed:  false,
			Message: fmt.Sprintf("failed to open: %v", err),
		}
	}
	_ = db.Close()
	return doctorCheck{
		Name:    "Snapshot database",
		Passed:  true,
		Message: dbPath,
	}
}

// checkAPIKey verifies that ANTHROPIC_API_KEY is set.
func checkAPIKey() doctorCheck {
	val := os.Getenv("ANTHROPIC_API_KEY")
	if val == "" {
		return doctorCheck{
			Name:    "API key",
			Passed:  false,
			Message: "ANTHROPIC_API_KEY is not set (needed for 'enhance')",
		}
	}
	masked := val[:min(8, len(val))] + "..."
	return doctorCheck{
		Name:    "API key",
		Passed:  true,
		Message: fmt.Sprintf("ANTHROPIC_API_KEY set (%s)", masked),
	}
}
