package enhance

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/repolens/internal/symbols"
)

// ---------------------------------------------------------------------------
// SalvageResponse
// ---------------------------------------------------------------------------

func TestSalvageResponse_ValidJSON(t *testing.T) {
	doc := SalvageResponse(`{
		"module_path": "services/api",
		"description": "HTTP client wrapper.",
		"exports": ["fetchUser (function) - loads a user record"]
	}`)
	if doc.ModulePath != "services/api" {
		t.Errorf("ModulePath = %q", doc.ModulePath)
	}
	if doc.Description != "HTTP client wrapper." {
		t.Errorf("Description = %q", doc.Description)
	}
	if len(doc.Exports) != 1 {
		t.Errorf("Exports = %v", doc.Exports)
	}
}

func TestSalvageResponse_FencedJSON(t *testing.T) {
	doc := SalvageResponse("```json\n{\"description\": \"Fenced reply.\"}\n```")
	if doc.Description != "Fenced reply." {
		t.Errorf("Description = %q", doc.Description)
	}
}

func TestSalvageResponse_FreeText(t *testing.T) {
	doc := SalvageResponse("\n\nThis module handles retries.\nMore detail here.\n")
	if doc.Description != "This module handles retries." {
		t.Errorf("free text should degrade to a first-line description, got %q", doc.Description)
	}
}

func TestSalvageResponse_Empty(t *testing.T) {
	doc := SalvageResponse("   \n  ")
	if !doc.IsZero() {
		t.Errorf("expected zero doc, got %+v", doc)
	}
}

// ---------------------------------------------------------------------------
// Prompt assembly
// ---------------------------------------------------------------------------

func TestBuildUserPrompt_IncludesSymbols(t *testing.T) {
	syms := symbols.Set{
		Exports: []string{"fetchUser", "UserStore"},
		Imports: []string{"./retry"},
	}
	prompt := buildUserPrompt("services/api", "const x = 1", syms)

	for _, want := range []string{"Module path: services/api", "- fetchUser", "- UserStore", "- ./retry", "const x = 1"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildUserPrompt_TruncatesBody(t *testing.T) {
	body := strings.Repeat("a", MaxBodyChars+500)
	prompt := buildUserPrompt("m", body, symbols.Set{})
	if strings.Count(prompt, "a") > MaxBodyChars {
		t.Error("body not truncated to MaxBodyChars")
	}
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

func TestNewClient_DefaultModel(t *testing.T) {
	c := NewClient("key", "")
	if c.model != DefaultModel {
		t.Errorf("model = %q, want %q", c.model, DefaultModel)
	}
	c = NewClient("key", "claude-opus-4-20250514")
	if c.model != "claude-opus-4-20250514" {
		t.Errorf("model = %q", c.model)
	}
}

func TestEnhanceHeader_RequiresKey(t *testing.T) {
	c := NewClient("", "")
	if _, err := c.EnhanceHeader("m", "body", symbols.Set{}); err == nil {
		t.Error("expected an error without an API key")
	}
}
