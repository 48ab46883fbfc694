package header

import "strings"

// Section headings in their fixed emission order.
var sectionOrder = []struct {
	heading string
	field   func(*Doc) []string
}{
	{"PURPOSE:", func(d *Doc) []string { return d.Purpose }},
	{"DEPENDENCIES:", func(d *Doc) []string { return d.Dependencies }},
	{"EXPORTS:", func(d *Doc) []string { return d.Exports }},
	{"PATTERNS:", func(d *Doc) []string { return d.Patterns }},
	{"CLAUDE NOTES:", func(d *Doc) []string { return d.ClaudeNotes }},
}

// Format renders the doc as a complete header in the language's comment
// form. Only sections with content are emitted; field order is fixed.
// The result always ends with a newline.
func Format(d *Doc, lang Language) string {
	st := styleFor(lang)

	// Collect the logical content lines first, then wrap them in the
	// comment shape.
	var content []string
	content = append(content, "@module "+d.ModulePath)
	if d.Description != "" {
		content = append(content, "@description "+d.Description)
	}

	for _, sec := range sectionOrder {
		items := sec.field(d)
		if len(items) == 0 {
			continue
		}
		content = append(content, "", sec.heading)
		for _, item := range items {
			content = append(content, "- "+item)
		}
	}

	var sb strings.Builder
	if st.open != "" {
		sb.WriteString(st.open)
		sb.WriteString("\n")
	}
	for _, line := range content {
		if line == "" {
			sb.WriteString(st.blankLine())
		} else {
			sb.WriteString(st.linePrefix)
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	if st.close != "" {
		sb.WriteString(st.close)
		sb.WriteString("\n")
	}
	return sb.String()
}
