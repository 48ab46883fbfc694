// Package engine is the synchronous surface of the project intelligence
// engine. Every entry point is a pure function of its arguments plus the
// filesystem snapshot at call time; the engine keeps no state between
// calls and reports every failure as a value.
package engine

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blackwell-systems/repolens/internal/freshness"
	"github.com/blackwell-systems/repolens/internal/header"
	"github.com/blackwell-systems/repolens/internal/health"
	"github.com/blackwell-systems/repolens/internal/stack"
	"github.com/blackwell-systems/repolens/internal/symbols"
	"github.com/blackwell-systems/repolens/internal/walker"
)

// Engine bundles the scan policy and scoring configuration. The zero
// value is not usable; construct with New or Default.
type Engine struct {
	policy     walker.Policy
	deductions freshness.Deductions
	caps       health.Caps
}

// New creates an engine with explicit policy and scoring configuration.
func New(policy walker.Policy, deductions freshness.Deductions, caps health.Caps) *Engine {
	return &Engine{policy: policy, deductions: deductions, caps: caps}
}

// Default creates an engine with the standard policy, deductions, and caps.
func Default() *Engine {
	return New(walker.DefaultPolicy(), freshness.DefaultDeductions, health.DefaultCaps)
}

// ModuleStatus is one file's documentation state from a module scan.
type ModuleStatus struct {
	// RelPath is the project-relative path, forward slashes.
	RelPath string `json:"rel_path"`

	// ModulePath is the header module path derived from RelPath.
	ModulePath string `json:"module_path"`

	// Status is current, outdated, or missing.
	Status freshness.Status `json:"status"`

	// Score is the freshness score, 0-100.
	Score int `json:"score"`

	// Changes lists the drift signals that fired, if any.
	Changes []string `json:"changes,omitempty"`
}

// DetectStack inspects the project root and returns the stack report.
func (e *Engine) DetectStack(root string) (*stack.Detection, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	return stack.Detect(root)
}

// ScanModules walks the project and evaluates every documentable file's
// header against its current symbols. Results are ordered by relative
// path, so two scans of the same snapshot are identical.
//
// Per-file read errors are swallowed: an unreadable file is reported as
// missing its header. Files over the size limit are skipped with a note.
func (e *Engine) ScanModules(root string) ([]ModuleStatus, error) {
	entries, err := walker.Walk(root, e.policy)
	if err != nil {
		return nil, err
	}

	var results []ModuleStatus
	for _, entry := range entries {
		if !entry.Documentable {
			continue
		}
		lang, ok := header.FromExt(entry.Ext)
		if !ok {
			continue
		}

		status := ModuleStatus{
			RelPath:    entry.RelPath,
			ModulePath: ModulePathFor(entry.RelPath),
		}

		if entry.Size > header.MaxFileSize {
			status.Status = freshness.StatusMissing
			status.Changes = []string{"File exceeds the 2 MB limit; skipped"}
			results = append(results, status)
			continue
		}

		data, err := os.ReadFile(entry.AbsPath)
		if err != nil {
			// Treated as absent-of-header; the walk never aborts.
			status.Status = freshness.StatusMissing
			results = append(results, status)
			continue
		}

		text := string(data)
		doc := header.Parse(text)
		syms := symbols.Extract(text, string(lang))
		verdict := freshness.Evaluate(doc, syms, entry.ModTime, time.Time{}, e.deductions)

		status.Status = verdict.Status
		status.Score = verdict.Score
		status.Changes = verdict.Changes
		results = append(results, status)
	}

	return results, nil
}

// ParseHeaderFile reads a file and parses its documentation header.
// A nil Doc with nil error means the file carries no header.
func (e *Engine) ParseHeaderFile(path string) (*header.Doc, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > header.MaxFileSize {
		return nil, &header.SizeError{Path: path, Size: info.Size()}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return header.Parse(string(data)), nil
}

// ApplyHeaderFile splices the header into the file on disk, replacing any
// existing header. The file's language comes from its extension.
func (e *Engine) ApplyHeaderFile(path string, doc *header.Doc) error {
	lang, ok := header.FromExt(strings.TrimPrefix(filepath.Ext(path), "."))
	if !ok {
		return &UnsupportedLanguageError{Path: path}
	}

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

	updated, err := header.Apply(string(data), doc, lang)
	if err != nil {
		if sizeErr, ok := err.(*header.SizeError); ok {
			sizeErr.Path = path
		}
		return err
	}

	return os.WriteFile(path, []byte(updated), info.Mode().Perm())
}

// HealthOverrides lets a caller supply components instead of having the
// engine compute them from the root. The pointer fields override the
// computed claudeMd, moduleDocs, and freshness components when non-nil;
// the remaining three are always caller-provided.
type HealthOverrides struct {
	ClaudeMd   *int
	ModuleDocs *int
	Freshness  *int

	SkillCount          int
	ContextUtilization  float64
	EnforcementCoverage float64
}

// ComputeHealth builds the aggregate health report for a project root.
func (e *Engine) ComputeHealth(root string, ov HealthOverrides) (*health.Report, error) {
	statuses, err := e.ScanModules(root)
	if err != nil {
		return nil, err
	}

	in := health.Inputs{
		SkillCount:          ov.SkillCount,
		ContextUtilization:  ov.ContextUtilization,
		EnforcementCoverage: ov.EnforcementCoverage,
	}

	if data, err := os.ReadFile(filepath.Join(root, "CLAUDE.md")); err == nil {
		in.HasClaudeMd = true
		in.ClaudeMdContent = string(data)
	}

	documented := 0
	freshSum := 0
	for _, s := range statuses {
		if s.Status != freshness.StatusMissing {
			documented++
			freshSum += s.Score
		}
	}
	in.Documentable = len(statuses)
	in.Documented = documented
	if documented > 0 {
		in.FreshnessMean = float64(freshSum) / float64(documented)
	}

	report := health.Compute(in, e.caps)

	if ov.ClaudeMd != nil || ov.ModuleDocs != nil || ov.Freshness != nil {
		comp := report.Components
		if ov.ClaudeMd != nil {
			comp.ClaudeMd = *ov.ClaudeMd
		}
		if ov.ModuleDocs != nil {
			comp.ModuleDocs = *ov.ModuleDocs
		}
		if ov.Freshness != nil {
			comp.Freshness = *ov.Freshness
		}
		report = health.FromComponents(comp, e.caps)
	}

	return report, nil
}

// ModulePathFor derives the header module path from a project-relative
// path: extension stripped, a leading src/ segment dropped.
func ModulePathFor(relPath string) string {
	p := relPath
	if ext := filepath.Ext(p); ext != "" {
		p = p[:len(p)-len(ext)]
	}
	p = strings.TrimPrefix(p, "src/")
	return p
}

// checkRoot validates the project root the way the walker does, so every
// entry point fails with the same error shape.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &walker.PathError{Path: root, Reason: "does not exist"}
		}
		return &walker.PathError{Path: root, Reason: "not readable"}
	}
	if !info.IsDir() {
		return &walker.PathError{Path: root, Reason: "not a directory"}
	}
	return nil
}
