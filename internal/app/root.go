// Package app contains the Cobra command tree for repolens.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/engine"
	"github.com/blackwell-systems/repolens/internal/output"
	"github.com/blackwell-systems/repolens/internal/walker"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "Read-only project intelligence for codebases",
	Long: `repolens analyzes a project tree without executing any of its code.
It detects the technology stack, scans documentation headers for drift,
scores overall documentation health, and tracks scores over time.

Run 'repolens' with no arguments to see the available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			output.SetNoColor(true)
		} else {
			output.AutoDetect()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("repolens", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  detect    Detect the technology stack of one or more projects")
		fmt.Println("  scan      Scan documentation headers and report drift")
		fmt.Println("  header    Show or apply a file's documentation header")
		fmt.Println("  health    Score documentation health and list quick wins")
		fmt.Println("  track     Snapshot health scores and compare over time")
		fmt.Println("  enhance   Generate a documentation header with the Anthropic API")
		fmt.Println("  doctor    Check the repolens environment")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describeErr(err))
		os.Exit(1)
	}
}

// describeErr turns the typed engine errors into shorter actionable
// messages; anything else passes through unchanged.
func describeErr(err error) string {
	var pathErr *engine.PathError
	if errors.As(err, &pathErr) {
		return fmt.Sprintf("%s: %s", pathErr.Path, pathErr.Reason)
	}
	var sizeErr *engine.SizeError
	if errors.As(err, &sizeErr) {
		return fmt.Sprintf("%s is too large to analyze (%d bytes, limit 2 MB)", sizeErr.Path, sizeErr.Size)
	}
	return err.Error()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/repolens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// loadEngine loads configuration and builds an engine from it.
func loadEngine() (*config.Config, *engine.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	ignore := make(map[string]bool, len(cfg.IgnoreDirs))
	for _, d := range cfg.IgnoreDirs {
		ignore[d] = true
	}
	policy := walker.Policy{
		MaxDepth:   cfg.MaxDepth,
		IgnoreDirs: ignore,
	}

	return cfg, engine.New(policy, cfg.Deductions, cfg.Caps), nil
}

// rootArg returns the project root from positional args, defaulting to the
// current directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
