// Package header reads, writes, and replaces the structured documentation
// header carried at the top of source files. The same logical record is
// expressed in each language's native comment style; one parse and one
// format exist per style, and everything in between is plain text work.
package header

import "fmt"

// Doc is the structured documentation header. It is a flat record with
// value semantics; an otherwise-empty Doc with any one populated field is
// still a valid header.
type Doc struct {
	// ModulePath is the slash/dot path derived from the file's
	// project-relative location.
	ModulePath string `json:"module_path"`

	// Description is a single-sentence summary.
	Description string `json:"description"`

	// Purpose lists what the module is for.
	Purpose []string `json:"purpose,omitempty"`

	// Dependencies lists internal dependencies with rationale.
	Dependencies []string `json:"dependencies,omitempty"`

	// Exports lists the public surface, one "Name (kind) - description"
	// entry per symbol.
	Exports []string `json:"exports,omitempty"`

	// Patterns lists usage guidance.
	Patterns []string `json:"patterns,omitempty"`

	// ClaudeNotes lists operational notes for AI sessions.
	ClaudeNotes []string `json:"claude_notes,omitempty"`
}

// IsZero reports whether every field of the doc is empty.
func (d *Doc) IsZero() bool {
	return d.ModulePath == "" && d.Description == "" &&
		len(d.Purpose) == 0 && len(d.Dependencies) == 0 &&
		len(d.Exports) == 0 && len(d.Patterns) == 0 && len(d.ClaudeNotes) == 0
}

// Language identifies a supported comment syntax by file extension tag.
type Language string

// Supported language tags.
const (
	LangTS    Language = "ts"
	LangTSX   Language = "tsx"
	LangJS    Language = "js"
	LangJSX   Language = "jsx"
	LangRust  Language = "rs"
	LangPy    Language = "py"
	LangGo    Language = "go"
	LangJava  Language = "java"
	LangKt    Language = "kt"
	LangSwift Language = "swift"
)

// FromExt maps a file extension (without dot) to a Language.
// The second return is false for unsupported extensions.
func FromExt(ext string) (Language, bool) {
	switch Language(ext) {
	case LangTS, LangTSX, LangJS, LangJSX, LangRust, LangPy, LangGo, LangJava, LangKt, LangSwift:
		return Language(ext), true
	}
	return "", false
}

// MaxFileSize is the largest file body header operations accept.
const MaxFileSize = 2 * 1024 * 1024

// SizeError reports a file body over MaxFileSize.
type SizeError struct {
	Path string
	Size int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("file %s is %d bytes, over the %d byte limit", e.Path, e.Size, int64(MaxFileSize))
}
