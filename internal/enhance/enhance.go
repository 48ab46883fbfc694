// Package enhance is the optional AI collaborator boundary. The engine
// itself never calls it; the CLI hands it a truncated file body plus the
// extracted symbol set and salvages whatever comes back into a header.
package enhance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blackwell-systems/repolens/internal/header"
	"github.com/blackwell-systems/repolens/internal/symbols"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"

	// DefaultModel is used when no model flag is given.
	DefaultModel = "claude-sonnet-4-20250514"
	maxTokens    = 2048
	apiTimeout   = 60 * time.Second

	// MaxBodyChars bounds how much file content is sent to the model.
	MaxBodyChars = 12000
)

// systemPrompt instructs the model to produce a documentation header.
const systemPrompt = `You are an expert at writing module documentation headers for source files.

You are given a source file body and the exports and internal imports extracted from it. Write a documentation header record for the file.

Rules:
- The description must be a single sentence grounded in what the code actually does.
- List every provided export with a short kind and description, e.g. "parseConfig (function) - reads and validates the config file".
- List every provided internal import under dependencies with a short rationale.
- Purpose bullets describe what the module is responsible for, not how.
- Do NOT invent exports or dependencies that were not provided.
- Output valid JSON matching the schema below, nothing else.

Output schema:
{
  "module_path": "path/derived/from/location",
  "description": "Single-sentence summary.",
  "purpose": ["..."],
  "dependencies": ["path - rationale"],
  "exports": ["Name (kind) - description"],
  "patterns": ["..."],
  "claude_notes": ["..."]
}`

// Client calls the Anthropic API to enhance documentation headers.
type Client struct {
	apiKey string
	model  string
	http   *http.Client
}

// NewClient creates an enhancer client. An empty model selects the default.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: apiTimeout},
	}
}

// EnhanceHeader builds a prompt from the file and its symbols, calls the
// model, and returns the resulting header. Free-text responses degrade to
// a header whose description is the first line of the reply.
func (c *Client) EnhanceHeader(modulePath, body string, syms symbols.Set) (*header.Doc, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("API key is required for header enhancement")
	}

	userPrompt := buildUserPrompt(modulePath, body, syms)
	text, err := c.complete(systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("calling enhancement API: %w", err)
	}

	doc := SalvageResponse(text)
	if doc.ModulePath == "" {
		doc.ModulePath = modulePath
	}
	return doc, nil
}

// buildUserPrompt assembles the user message: module path, symbol lists,
// and the truncated file body.
func buildUserPrompt(modulePath, body string, syms symbols.Set) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Module path: %s\n\n", modulePath)

	if len(syms.Exports) > 0 {
		sb.WriteString("Exports:\n")
		for _, e := range syms.Exports {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
		sb.WriteString("\n")
	}
	if len(syms.Imports) > 0 {
		sb.WriteString("Internal imports:\n")
		for _, i := range syms.Imports {
			fmt.Fprintf(&sb, "- %s\n", i)
		}
		sb.WriteString("\n")
	}

	if len(body) > MaxBodyChars {
		body = body[:MaxBodyChars]
	}
	sb.WriteString("File body:\n\n")
	sb.WriteString(body)
	return sb.String()
}

// SalvageResponse turns a model reply into a Doc. Valid JSON is decoded
// directly; anything else degrades to a header whose description is the
// reply's first non-empty line. A partially readable header always beats
// asking the user to hand-edit.
func SalvageResponse(text string) *header.Doc {
	trimmed := strings.TrimSpace(text)

	// Models sometimes wrap JSON in a code fence.
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var doc header.Doc
	if err := json.Unmarshal([]byte(trimmed), &doc); err == nil && !doc.IsZero() {
		return &doc
	}

	for _, line := range strings.Split(trimmed, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return &header.Doc{Description: line}
		}
	}
	return &header.Doc{}
}

// ---------------------------------------------------------------------------
// API transport
// ---------------------------------------------------------------------------

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// complete sends one system+user exchange and returns the text reply.
func (c *Client) complete(system, user string) (string, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []apiMessage{{Role: "user", Content: user}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed apiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decoding API response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("API error (%s): %s", parsed.Error.Type, parsed.Error.Message)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty API response (status %d)", resp.StatusCode)
	}
	return sb.String(), nil
}
