package app

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/repolens/internal/output"
	"github.com/blackwell-systems/repolens/internal/stack"
)

var detectFlagJSON bool

var detectCmd = &cobra.Command{
	Use:   "detect [root...]",
	Short: "Detect the technology stack of one or more projects",
	Long: `Detect inspects a project root for config files, dependency manifests,
CDN references, and source-file extensions, then reports the detected
language, framework, database, testing tool, and styling approach with a
confidence value per signal.

With multiple roots, projects are analyzed concurrently.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(detectCmd)
}

// detectResult pairs a root with its detection for output.
type detectResult struct {
	Root      string           `json:"root"`
	Detection *stack.Detection `json:"detection,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	results := make([]detectResult, len(roots))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			results[i].Root = root
			det, err := eng.DetectStack(root)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Detection = det
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if detectFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		renderDetection(r)
	}
	return nil
}

func renderDetection(r detectResult) {
	fmt.Println(output.Section("Stack: " + r.Root))
	fmt.Println()

	if r.Error != "" {
		fmt.Printf(" %s\n\n", output.StyleError.Render(r.Error))
		return
	}

	det := r.Detection
	printDetected("Language:", det.Language)
	printDetected("Framework:", det.Framework)
	printDetected("Database:", det.Database)
	printDetected("Testing:", det.Testing)
	printDetected("Styling:", det.Styling)

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Project type:"),
		output.StyleValue.Render(det.ProjectType))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Project name:"),
		output.StyleValue.Render(det.ProjectName))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Source files:"),
		output.StyleValue.Render(fmt.Sprintf("%d", det.FileCount)))

	claudeMd := output.StyleError.Render("no")
	if det.HasExistingClaudeMd {
		claudeMd = output.StyleSuccess.Render("yes")
	}
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("CLAUDE.md:"), claudeMd)
	fmt.Printf(" %s %s\n\n",
		output.StyleLabel.Render("Confidence:"),
		renderBucket(det.Confidence))
}

func printDetected(label string, v *stack.DetectedValue) {
	if v == nil {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render(label),
			output.StyleMuted.Render("not detected"))
		return
	}
	detail := fmt.Sprintf("(%.2f, %s)", v.Confidence, v.Source)
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render(label),
		output.StyleValue.Render(v.Value),
		output.StyleMuted.Render(detail))
}

func renderBucket(b stack.ConfidenceBucket) string {
	switch b {
	case stack.BucketHigh:
		return output.StyleSuccess.Render(string(b))
	case stack.BucketMedium:
		return output.StyleWarning.Render(string(b))
	default:
		return output.StyleError.Render(string(b))
	}
}
