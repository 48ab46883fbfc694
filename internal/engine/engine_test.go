package engine

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/blackwell-systems/repolens/internal/freshness"
	"github.com/blackwell-systems/repolens/internal/header"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// documentedTSX returns a .tsx body whose header matches its symbols.
func documentedTSX() string {
	doc := &header.Doc{
		ModulePath:  "app",
		Description: "Main application component.",
		Exports:     []string{"App (default) - entry component"},
	}
	body := "export default function App() {\n  return null\n}\n"
	out, _ := header.Apply(body, doc, header.LangTSX)
	return out
}

// ---------------------------------------------------------------------------
// ScanModules
// ---------------------------------------------------------------------------

func TestScanModules_StatusPerFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.tsx", documentedTSX())
	writeFile(t, root, "src/bare.ts", "export const x = 1\n")

	statuses, err := Default().ScanModules(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}

	byRel := map[string]ModuleStatus{}
	for _, s := range statuses {
		byRel[s.RelPath] = s
	}

	app := byRel["src/app.tsx"]
	if app.Status != freshness.StatusCurrent {
		t.Errorf("src/app.tsx: status = %q (changes: %v)", app.Status, app.Changes)
	}
	if app.Score != 100 {
		t.Errorf("src/app.tsx: score = %d, want 100", app.Score)
	}
	if app.ModulePath != "app" {
		t.Errorf("src/app.tsx: module path = %q, want app", app.ModulePath)
	}

	bare := byRel["src/bare.ts"]
	if bare.Status != freshness.StatusMissing {
		t.Errorf("src/bare.ts: status = %q, want missing", bare.Status)
	}
	if bare.Score != 0 {
		t.Errorf("src/bare.ts: score = %d, want 0", bare.Score)
	}
}

func TestScanModules_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/b.ts", "export const b = 1\n")
	writeFile(t, root, "src/a.ts", "export const a = 1\n")
	writeFile(t, root, "lib/c.ts", "export const c = 1\n")

	eng := Default()
	first, err := eng.ScanModules(root)
	if err != nil {
		t.Fatal(err)
	}
	second, err := eng.ScanModules(root)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two scans of the same tree must be identical")
	}
	if first[0].RelPath != "lib/c.ts" {
		t.Errorf("results not sorted by path: %q first", first[0].RelPath)
	}
}

func TestScanModules_SkipsNonDocumentable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.ts", "export const x = 1\n")
	writeFile(t, root, "src/app.test.ts", "export const y = 1\n")

	statuses, err := Default().ScanModules(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 0 {
		t.Errorf("entry points and tests are not documentable, got %+v", statuses)
	}
}

func TestScanModules_OversizedFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/huge.ts", strings.Repeat("a", header.MaxFileSize+1))

	statuses, err := Default().ScanModules(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	s := statuses[0]
	if s.Status != freshness.StatusMissing {
		t.Errorf("status = %q, want missing", s.Status)
	}
	if len(s.Changes) != 1 || !strings.Contains(s.Changes[0], "2 MB") {
		t.Errorf("changes = %v, want the size-limit note", s.Changes)
	}
}

func TestScanModules_MissingRoot(t *testing.T) {
	_, err := Default().ScanModules(filepath.Join(t.TempDir(), "gone"))
	if _, ok := err.(*PathError); !ok {
		t.Fatalf("expected *PathError, got %T", err)
	}
}

// ---------------------------------------------------------------------------
// Header file operations
// ---------------------------------------------------------------------------

func TestApplyAndParseHeaderFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "scoring.rs")
	writeFile(t, root, "scoring.rs", "pub fn score() -> u32 { 0 }\n")

	doc := &header.Doc{
		ModulePath:  "scoring",
		Description: "Computes freshness scores.",
		Exports:     []string{"score (function) - the scoring entry point"},
	}

	eng := Default()
	if err := eng.ApplyHeaderFile(path, doc); err != nil {
		t.Fatal(err)
	}

	parsed, err := eng.ParseHeaderFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if parsed == nil {
		t.Fatal("expected a header after apply")
	}
	if !reflect.DeepEqual(parsed, doc) {
		t.Errorf("parsed = %+v, want %+v", parsed, doc)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "pub fn score() -> u32 { 0 }\n") {
		t.Error("source body must survive the apply unchanged")
	}
}

func TestApplyHeaderFile_UnsupportedExtension(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.txt")
	writeFile(t, root, "notes.txt", "hello\n")

	err := Default().ApplyHeaderFile(path, &header.Doc{ModulePath: "notes"})
	if _, ok := err.(*UnsupportedLanguageError); !ok {
		t.Fatalf("expected *UnsupportedLanguageError, got %v", err)
	}
}

func TestParseHeaderFile_NoHeader(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "plain.ts")
	writeFile(t, root, "plain.ts", "export const x = 1\n")

	doc, err := Default().ParseHeaderFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc != nil {
		t.Errorf("expected nil doc for headerless file, got %+v", doc)
	}
}

// ---------------------------------------------------------------------------
// ComputeHealth
// ---------------------------------------------------------------------------

func TestComputeHealth_BasicProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "CLAUDE.md", strings.Repeat("x", 100)+"\n## Setup\n")
	writeFile(t, root, "src/app.tsx", documentedTSX())
	writeFile(t, root, "src/bare.ts", "export const x = 1\n")

	report, err := Default().ComputeHealth(root, HealthOverrides{})
	if err != nil {
		t.Fatal(err)
	}

	// 10 presence + 5 length + 2 one heading.
	if report.Components.ClaudeMd != 17 {
		t.Errorf("ClaudeMd = %d, want 17", report.Components.ClaudeMd)
	}
	// 1 of 2 files documented: round(0.5 * 25) = 13.
	if report.Components.ModuleDocs != 13 {
		t.Errorf("ModuleDocs = %d, want 13", report.Components.ModuleDocs)
	}
	// The one documented file scores 100: full freshness cap.
	if report.Components.Freshness != 15 {
		t.Errorf("Freshness = %d, want 15", report.Components.Freshness)
	}
	if report.Components.Skills != 0 {
		t.Errorf("Skills = %d, want 0 without overrides", report.Components.Skills)
	}
	if len(report.QuickWins) == 0 {
		t.Error("an imperfect project should have quick wins")
	}
}

func TestComputeHealth_Overrides(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.tsx", documentedTSX())

	claudeMd := 20
	report, err := Default().ComputeHealth(root, HealthOverrides{
		ClaudeMd:   &claudeMd,
		SkillCount: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if report.Components.ClaudeMd != 20 {
		t.Errorf("ClaudeMd = %d, want overridden 20", report.Components.ClaudeMd)
	}
	if report.Components.Skills != 15 {
		t.Errorf("Skills = %d, want full cap at five skills", report.Components.Skills)
	}
}

// ---------------------------------------------------------------------------
// ModulePathFor
// ---------------------------------------------------------------------------

func TestModulePathFor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"src/app.tsx", "app"},
		{"src/components/Button.tsx", "components/Button"},
		{"lib/util.ts", "lib/util"},
		{"scoring.rs", "scoring"},
		{"src/lib.py", "lib"},
	}
	for _, c := range cases {
		if got := ModulePathFor(c.in); got != c.want {
			t.Errorf("ModulePathFor(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
