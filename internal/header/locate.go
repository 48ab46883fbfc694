package header

import "strings"

// Extent is a byte range [Start, End) within a file body.
type Extent struct {
	Start int
	End   int
}

// Locate returns the byte range of an existing header in the file body,
// or false when the body carries none. The header must be the first
// non-blank content of the file.
//
// Shapes per language: block-comment languages end at the first "*/"
// closing line; rs is the contiguous run of leading "//!" lines; swift the
// leading "///" run; py the module docstring from its opening triple quote
// to the closing one; go the leading run of "//" lines opened by "@module".
func Locate(text string, lang Language) (Extent, bool) {
	st := styleFor(lang)
	lines := splitOffsets(text)

	// Skip leading blank lines.
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i].text) == "" {
		i++
	}
	if i == len(lines) {
		return Extent{}, false
	}

	first := strings.TrimSpace(lines[i].text)
	start := lines[i].start

	switch st.kind {
	case blockStar:
		if !strings.HasPrefix(first, "/**") {
			return Extent{}, false
		}
		// One-line block comment.
		if strings.Contains(first[2:], "*/") {
			return Extent{Start: start, End: lines[i].end}, true
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j].text, "*/") {
				return Extent{Start: start, End: lines[j].end}, true
			}
		}
		return Extent{}, false

	case tripleQuote:
		if !strings.HasPrefix(first, `"""`) {
			return Extent{}, false
		}
		// Closing quote on the opening line.
		if rest := first[3:]; strings.Contains(rest, `"""`) {
			return Extent{Start: start, End: lines[i].end}, true
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j].text, `"""`) {
				return Extent{Start: start, End: lines[j].end}, true
			}
		}
		return Extent{}, false

	case doubleSlash:
		// Go headers are a leading // run whose first line carries @module;
		// a bare comment run without the marker is not a header.
		if !strings.HasPrefix(first, "//") {
			return Extent{}, false
		}
		if !strings.HasPrefix(strings.TrimSpace(first[2:]), "@module") {
			return Extent{}, false
		}
		return runExtent(lines, i, "//"), true

	default:
		// doubleSlashBang ("//!") and tripleSlash ("///").
		prefix := strings.TrimRight(st.linePrefix, " ")
		if !strings.HasPrefix(first, prefix) {
			return Extent{}, false
		}
		return runExtent(lines, i, prefix), true
	}
}

// runExtent extends a contiguous run of prefixed lines starting at index i.
func runExtent(lines []lineSpan, i int, prefix string) Extent {
	ext := Extent{Start: lines[i].start, End: lines[i].end}
	for j := i + 1; j < len(lines); j++ {
		if !strings.HasPrefix(strings.TrimSpace(lines[j].text), prefix) {
			break
		}
		ext.End = lines[j].end
	}
	return ext
}

// lineSpan is a line of text with its byte offsets. end includes the
// trailing newline when one exists.
type lineSpan struct {
	text  string
	start int
	end   int
}

// splitOffsets splits text into lines annotated with byte ranges.
func splitOffsets(text string) []lineSpan {
	var spans []lineSpan
	start := 0
	for start <= len(text) {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			if start < len(text) {
				spans = append(spans, lineSpan{text: text[start:], start: start, end: len(text)})
			}
			break
		}
		end := start + idx + 1
		spans = append(spans, lineSpan{text: text[start : end-1], start: start, end: end})
		start = end
	}
	return spans
}
