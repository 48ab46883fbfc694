package header

import "strings"

const (
	// parseWindow is how many lines of a file the parser will read.
	parseWindow = 60

	// markerWindow is how early a marker token must appear for the file
	// to be considered to have a header at all.
	markerWindow = 40
)

// commentPrefixes are stripped per-line before field extraction, longest
// match first so "//!" wins over "//".
var commentPrefixes = []string{"/**", "*/", "//!", "///", "//", "*", "#", `"""`}

// sectionFields maps a section heading to the Doc list it fills.
var sectionFields = map[string]func(*Doc, string){
	"PURPOSE:":      func(d *Doc, v string) { d.Purpose = append(d.Purpose, v) },
	"DEPENDENCIES:": func(d *Doc, v string) { d.Dependencies = append(d.Dependencies, v) },
	"EXPORTS:":      func(d *Doc, v string) { d.Exports = append(d.Exports, v) },
	"PATTERNS:":     func(d *Doc, v string) { d.Patterns = append(d.Patterns, v) },
	"CLAUDE NOTES:": func(d *Doc, v string) { d.ClaudeNotes = append(d.ClaudeNotes, v) },
}

// Parse reads a documentation header out of raw file text. It returns nil
// when neither marker token (@module, @description) appears in the first
// 40 lines. Malformed sections are salvaged, never rejected: whatever
// parses cleanly is kept and the rest is ignored.
func Parse(text string) *Doc {
	lines := strings.Split(text, "\n")
	if len(lines) > parseWindow {
		lines = lines[:parseWindow]
	}

	found := false
	limit := len(lines)
	if limit > markerWindow {
		limit = markerWindow
	}
	for _, line := range lines[:limit] {
		if strings.Contains(line, "@module") || strings.Contains(line, "@description") {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	doc := &Doc{}
	var section func(*Doc, string)

	for _, raw := range lines {
		line := stripCommentPrefix(raw)

		switch {
		case strings.HasPrefix(line, "@module"):
			doc.ModulePath = strings.TrimSpace(strings.TrimPrefix(line, "@module"))
			section = nil
		case strings.HasPrefix(line, "@description"):
			doc.Description = strings.TrimSpace(strings.TrimPrefix(line, "@description"))
			section = nil
		case isSectionHeading(line):
			// Known headings open their section; any other all-caps
			// heading closes the current one.
			section = sectionFields[line]
		case strings.HasPrefix(line, "-") && section != nil:
			item := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if item != "" {
				section(doc, item)
			}
		}
	}

	return doc
}

// stripCommentPrefix removes leading whitespace and at most one comment
// prefix, then trims again.
func stripCommentPrefix(line string) string {
	line = strings.TrimSpace(line)
	for _, p := range commentPrefixes {
		if strings.HasPrefix(line, p) {
			return strings.TrimSpace(line[len(p):])
		}
	}
	return line
}

// isSectionHeading reports whether a stripped line is an all-uppercase
// word (or words) ending in a colon, e.g. "EXPORTS:" or "CLAUDE NOTES:".
func isSectionHeading(line string) bool {
	if !strings.HasSuffix(line, ":") {
		return false
	}
	body := strings.TrimSuffix(line, ":")
	if body == "" {
		return false
	}
	hasLetter := false
	for _, r := range body {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == ' ' || r == '_':
		default:
			return false
		}
	}
	return hasLetter
}
