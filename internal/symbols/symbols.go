// Package symbols extracts public exports and internal imports from source
// text with line-prefix matching. It is deliberately tokenizer-free: the
// failure mode is a missed symbol, which the freshness scorer tolerates.
package symbols

// Set holds the symbols found in one file, in source order.
type Set struct {
	// Exports are public symbol names, possibly annotated like
	// "App (default)". Unique, first-seen order.
	Exports []string `json:"exports"`

	// Imports are project-internal import paths. Unique.
	Imports []string `json:"imports"`
}

// maxScanSize mirrors the engine-wide 2 MB file limit; larger inputs are
// skipped rather than erroring.
const maxScanSize = 2 * 1024 * 1024

// collector accumulates names preserving first-seen order and uniqueness.
type collector struct {
	seen  map[string]bool
	items []string
}

func (c *collector) add(name string) {
	if name == "" || c.seen[name] {
		return
	}
	if c.seen == nil {
		c.seen = map[string]bool{}
	}
	c.seen[name] = true
	c.items = append(c.items, name)
}

// isIdentRune reports whether r can appear in an identifier.
func isIdentRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// ident reads the leading identifier from s.
func ident(s string) string {
	for i, r := range s {
		if !isIdentRune(r) {
			return s[:i]
		}
	}
	return s
}
