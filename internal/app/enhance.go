package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/engine"
	"github.com/blackwell-systems/repolens/internal/enhance"
	"github.com/blackwell-systems/repolens/internal/header"
	"github.com/blackwell-systems/repolens/internal/output"
	"github.com/blackwell-systems/repolens/internal/symbols"
)

var (
	enhanceFlagModel  string
	enhanceFlagDryRun bool
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance <file>...",
	Short: "Generate a documentation header with the Anthropic API",
	Long: `Enhance sends a file's source and extracted symbols to the Anthropic
API and writes the generated documentation header back into the file.

Requires the ANTHROPIC_API_KEY environment variable. Use --dry-run to
print the generated header without modifying the file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnhance,
}

func init() {
	enhanceCmd.Flags().StringVar(&enhanceFlagModel, "model", "", "Anthropic model to use (default: "+enhance.DefaultModel+")")
	enhanceCmd.Flags().BoolVar(&enhanceFlagDryRun, "dry-run", false, "Print the generated header without writing")
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}
	client := enhance.NewClient(apiKey, enhanceFlagModel)

	for _, path := range args {
		if err := enhanceFile(eng, client, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func enhanceFile(eng *engine.Engine, client *enhance.Client, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > header.MaxFileSize {
		return &header.SizeError{Path: path, Size: info.Size()}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	body := string(data)

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	syms := symbols.Extract(body, ext)
	modulePath := engine.ModulePathFor(relForModulePath(path))

	doc, err := client.EnhanceHeader(modulePath, body, syms)
	if err != nil {
		return err
	}
	if doc.ModulePath == "" {
		doc.ModulePath = modulePath
	}

	if enhanceFlagDryRun {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	if err := eng.ApplyHeaderFile(path, doc); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", output.StyleSuccess.Render("Enhanced"), path)
	return nil
}
