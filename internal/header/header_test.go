package header

import (
	"reflect"
	"strings"
	"testing"
)

func sampleDoc() *Doc {
	return &Doc{
		ModulePath:  "services/scoring",
		Description: "Scores documentation freshness for a single file.",
		Purpose: []string{
			"Compare header records against live symbols",
		},
		Dependencies: []string{
			"./symbols - provides the extracted export list",
		},
		Exports: []string{
			"scoreFile (function) - computes the 0-100 freshness score",
			"Verdict (type) - the scoring result",
		},
		Patterns: []string{
			"Pure function of its inputs",
		},
		ClaudeNotes: []string{
			"Deduction weights live in the config, not here",
		},
	}
}

var allLanguages = []Language{
	LangTS, LangTSX, LangJS, LangJSX, LangRust, LangPy, LangGo, LangJava, LangKt, LangSwift,
}

// ---------------------------------------------------------------------------
// Format / Parse round-trip
// ---------------------------------------------------------------------------

func TestRoundTrip_AllLanguages(t *testing.T) {
	doc := sampleDoc()
	for _, lang := range allLanguages {
		t.Run(string(lang), func(t *testing.T) {
			formatted := Format(doc, lang)
			parsed := Parse(formatted)
			if parsed == nil {
				t.Fatal("Parse returned nil for formatted header")
			}
			if !reflect.DeepEqual(parsed, doc) {
				t.Errorf("round-trip mismatch\n got: %+v\nwant: %+v", parsed, doc)
			}
		})
	}
}

func TestFormat_EndsWithNewline(t *testing.T) {
	for _, lang := range allLanguages {
		out := Format(sampleDoc(), lang)
		if !strings.HasSuffix(out, "\n") {
			t.Errorf("%s: formatted header missing trailing newline", lang)
		}
	}
}

func TestFormat_OmitsEmptySections(t *testing.T) {
	doc := &Doc{ModulePath: "x", Description: "Minimal."}
	out := Format(doc, LangTS)
	for _, heading := range []string{"PURPOSE:", "DEPENDENCIES:", "EXPORTS:", "PATTERNS:", "CLAUDE NOTES:"} {
		if strings.Contains(out, heading) {
			t.Errorf("empty section %q should not be emitted", heading)
		}
	}
}

func TestFormat_OmitsEmptyDescription(t *testing.T) {
	out := Format(&Doc{ModulePath: "x"}, LangTS)
	if strings.Contains(out, "@description") {
		t.Error("@description line should be omitted when empty")
	}
	if !strings.Contains(out, "@module x") {
		t.Error("@module line must always be present")
	}
}

// ---------------------------------------------------------------------------
// Parse
// ---------------------------------------------------------------------------

func TestParse_NoMarkerReturnsNil(t *testing.T) {
	src := "// just a comment\nconst x = 1\n"
	if Parse(src) != nil {
		t.Error("expected nil for text without @module or @description")
	}
}

func TestParse_MarkerBeyondWindowReturnsNil(t *testing.T) {
	src := strings.Repeat("const pad = 0\n", 45) + "// @module late/header\n"
	if Parse(src) != nil {
		t.Error("marker past line 40 should not count as a header")
	}
}

func TestParse_SalvagesMalformedSections(t *testing.T) {
	src := strings.Join([]string{
		"/**",
		" * @module app/thing",
		" * @description Does things.",
		" *",
		" * EXPORTS:",
		" * - doThing (function) - main entry",
		" * not a bullet, ignored",
		" *",
		" * RANDOM HEADING:",
		" * - orphaned bullet lands nowhere known",
		" */",
	}, "\n")

	doc := Parse(src)
	if doc == nil {
		t.Fatal("expected a parsed doc")
	}
	if doc.ModulePath != "app/thing" {
		t.Errorf("ModulePath = %q", doc.ModulePath)
	}
	if len(doc.Exports) != 1 || doc.Exports[0] != "doThing (function) - main entry" {
		t.Errorf("Exports = %v", doc.Exports)
	}
}

func TestParse_UnknownHeadingClosesSection(t *testing.T) {
	src := strings.Join([]string{
		"// @module m",
		"// EXPORTS:",
		"// - kept",
		"// OTHER THINGS:",
		"// - dropped",
	}, "\n")

	doc := Parse(src)
	if doc == nil {
		t.Fatal("expected a parsed doc")
	}
	if len(doc.Exports) != 1 || doc.Exports[0] != "kept" {
		t.Errorf("Exports = %v, want [kept]", doc.Exports)
	}
}

// ---------------------------------------------------------------------------
// Locate
// ---------------------------------------------------------------------------

func TestLocate_GoRequiresModuleMarker(t *testing.T) {
	src := "// Package scoring computes scores.\npackage scoring\n"
	if _, ok := Locate(src, LangGo); ok {
		t.Error("a package doc comment without @module is not a header")
	}

	src = "// @module scoring\n// more\npackage scoring\n"
	ext, ok := Locate(src, LangGo)
	if !ok {
		t.Fatal("expected to locate the @module run")
	}
	if got := src[ext.Start:ext.End]; got != "// @module scoring\n// more\n" {
		t.Errorf("extent = %q", got)
	}
}

func TestLocate_BlockAfterBlankLines(t *testing.T) {
	src := "\n\n/**\n * @module x\n */\nconst a = 1\n"
	ext, ok := Locate(src, LangTS)
	if !ok {
		t.Fatal("expected to locate the block header")
	}
	if !strings.HasPrefix(src[ext.Start:], "/**") {
		t.Errorf("extent starts at %q", src[ext.Start:ext.End])
	}
	if !strings.HasSuffix(src[ext.Start:ext.End], "*/\n") {
		t.Errorf("extent ends at %q", src[ext.Start:ext.End])
	}
}

func TestLocate_RustRunStopsAtCode(t *testing.T) {
	src := "//! @module a\n//! line two\nuse std::fmt;\n"
	ext, ok := Locate(src, LangRust)
	if !ok {
		t.Fatal("expected to locate the //! run")
	}
	if got := src[ext.Start:ext.End]; got != "//! @module a\n//! line two\n" {
		t.Errorf("extent = %q", got)
	}
}

func TestLocate_PythonDocstring(t *testing.T) {
	src := "\"\"\"\n@module m\n\"\"\"\nimport os\n"
	ext, ok := Locate(src, LangPy)
	if !ok {
		t.Fatal("expected to locate the docstring")
	}
	if got := src[ext.Start:ext.End]; got != "\"\"\"\n@module m\n\"\"\"\n" {
		t.Errorf("extent = %q", got)
	}
}

func TestLocate_NoHeader(t *testing.T) {
	if _, ok := Locate("const x = 1\n", LangTS); ok {
		t.Error("plain code should not locate a header")
	}
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

func TestApply_PrependsWhenAbsent(t *testing.T) {
	body := "export const x = 1\n"
	out, err := Apply(body, sampleDoc(), LangTS)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out, "\n"+body) {
		t.Error("original body must survive unchanged after the header")
	}
	if !strings.HasPrefix(out, "/**\n") {
		t.Errorf("header not prepended: %q", out[:20])
	}
}

func TestApply_ReplacesExisting(t *testing.T) {
	body := "export const x = 1\n"
	first, err := Apply(body, sampleDoc(), LangTS)
	if err != nil {
		t.Fatal(err)
	}

	updated := sampleDoc()
	updated.Description = "A different description."
	second, err := Apply(first, updated, LangTS)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Count(second, "@module") != 1 {
		t.Error("replacement must not stack headers")
	}
	if !strings.Contains(second, "A different description.") {
		t.Error("updated description missing")
	}
	if !strings.HasSuffix(second, "\n"+body) {
		t.Error("body changed during replacement")
	}
}

func TestApply_Idempotent(t *testing.T) {
	for _, lang := range allLanguages {
		body := "content line one\ncontent line two\n"
		once, err := Apply(body, sampleDoc(), lang)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := Apply(once, sampleDoc(), lang)
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Errorf("%s: apply not idempotent\nonce:  %q\ntwice: %q", lang, once, twice)
		}
	}
}

func TestApply_RejectsOversizedBody(t *testing.T) {
	body := strings.Repeat("a", MaxFileSize+1)
	_, err := Apply(body, sampleDoc(), LangTS)
	if _, ok := err.(*SizeError); !ok {
		t.Fatalf("expected *SizeError, got %v", err)
	}
}

func TestApply_EmptyBody(t *testing.T) {
	out, err := Apply("", sampleDoc(), LangPy)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Apply(out, sampleDoc(), LangPy)
	if err != nil {
		t.Fatal(err)
	}
	if out != again {
		t.Error("apply on empty body not idempotent")
	}
}

// ---------------------------------------------------------------------------
// FromExt
// ---------------------------------------------------------------------------

func TestFromExt(t *testing.T) {
	if _, ok := FromExt("ts"); !ok {
		t.Error("ts should be supported")
	}
	if _, ok := FromExt("rb"); ok {
		t.Error("rb has no header syntax")
	}
}
