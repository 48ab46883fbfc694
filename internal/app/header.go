package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/engine"
	"github.com/blackwell-systems/repolens/internal/header"
	"github.com/blackwell-systems/repolens/internal/output"
)

var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Show or apply a file's documentation header",
}

var headerShowFlagJSON bool

var headerShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Parse and display a file's documentation header",
	Args:  cobra.ExactArgs(1),
	RunE:  runHeaderShow,
}

var (
	headerApplyFlagFrom        string
	headerApplyFlagModule      string
	headerApplyFlagDescription string
	headerApplyFlagPurpose     []string
	headerApplyFlagDeps        []string
	headerApplyFlagExports     []string
	headerApplyFlagPatterns    []string
	headerApplyFlagNotes       []string
)

var headerApplyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Write a documentation header into a file",
	Long: `Apply splices a documentation header into the file, replacing any
existing header in place and preserving the rest of the file exactly.
The comment syntax follows the file's extension.

Header fields come either from a JSON file via --from or from the
individual field flags. The module path defaults to the file's path
with the extension stripped and a leading src/ removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runHeaderApply,
}

func init() {
	headerShowCmd.Flags().BoolVar(&headerShowFlagJSON, "json", false, "Output as JSON")

	headerApplyCmd.Flags().StringVar(&headerApplyFlagFrom, "from", "", "Read header fields from a JSON file ('-' for stdin)")
	headerApplyCmd.Flags().StringVar(&headerApplyFlagModule, "module", "", "Module path (default: derived from the file path)")
	headerApplyCmd.Flags().StringVar(&headerApplyFlagDescription, "description", "", "One-line description")
	headerApplyCmd.Flags().StringSliceVar(&headerApplyFlagPurpose, "purpose", nil, "Purpose entry (can be repeated)")
	headerApplyCmd.Flags().StringSliceVar(&headerApplyFlagDeps, "dependency", nil, "Dependency entry (can be repeated)")
	headerApplyCmd.Flags().StringSliceVar(&headerApplyFlagExports, "export", nil, "Export entry (can be repeated)")
	headerApplyCmd.Flags().StringSliceVar(&headerApplyFlagPatterns, "pattern", nil, "Pattern entry (can be repeated)")
	headerApplyCmd.Flags().StringSliceVar(&headerApplyFlagNotes, "note", nil, "Note entry (can be repeated)")

	headerCmd.AddCommand(headerShowCmd)
	headerCmd.AddCommand(headerApplyCmd)
	rootCmd.AddCommand(headerCmd)
}

func runHeaderShow(cmd *cobra.Command, args []string) error {
	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	path := args[0]
	doc, err := eng.ParseHeaderFile(path)
	if err != nil {
		return err
	}
	if doc == nil {
		fmt.Println(output.StyleMuted.Render("No documentation header found in " + path))
		return nil
	}

	if headerShowFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	fmt.Println(output.Section("Header: " + path))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Module:"),
		output.StyleValue.Render(doc.ModulePath))
	if doc.Description != "" {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render("Description:"), doc.Description)
	}
	printList("Purpose:", doc.Purpose)
	printList("Dependencies:", doc.Dependencies)
	printList("Exports:", doc.Exports)
	printList("Patterns:", doc.Patterns)
	printList("Notes:", doc.ClaudeNotes)
	fmt.Println()
	return nil
}

func printList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf(" %s\n", output.StyleLabel.Render(label))
	for _, item := range items {
		fmt.Println("   - " + item)
	}
}

func runHeaderApply(cmd *cobra.Command, args []string) error {
	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	path := args[0]
	doc, err := buildApplyDoc(path)
	if err != nil {
		return err
	}

	if err := eng.ApplyHeaderFile(path, doc); err != nil {
		return err
	}

	fmt.Printf("%s %s\n", output.StyleSuccess.Render("Updated"), path)
	return nil
}

// buildApplyDoc assembles the header document from --from or the field
// flags, filling in the module path when absent.
func buildApplyDoc(path string) (*header.Doc, error) {
	var doc header.Doc

	if headerApplyFlagFrom != "" {
		var data []byte
		var err error
		if headerApplyFlagFrom == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(headerApplyFlagFrom)
		}
		if err != nil {
			return nil, fmt.Errorf("reading header fields: %w", err)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing header fields: %w", err)
		}
	} else {
		doc = header.Doc{
			Description:  headerApplyFlagDescription,
			Purpose:      headerApplyFlagPurpose,
			Dependencies: headerApplyFlagDeps,
			Exports:      headerApplyFlagExports,
			Patterns:     headerApplyFlagPatterns,
			ClaudeNotes:  headerApplyFlagNotes,
		}
	}

	if headerApplyFlagModule != "" {
		doc.ModulePath = headerApplyFlagModule
	}
	if doc.ModulePath == "" {
		doc.ModulePath = engine.ModulePathFor(relForModulePath(path))
	}
	return &doc, nil
}

// relForModulePath makes the path workspace-relative when possible so the
// derived module path stays stable regardless of how the file was named.
func relForModulePath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
