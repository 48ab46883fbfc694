package engine

import (
	"github.com/blackwell-systems/repolens/internal/header"
	"github.com/blackwell-systems/repolens/internal/walker"
)

// The engine reports four error kinds as values. PathError covers a root
// that is missing, not a directory, or unreadable at the top level.
// SizeError covers files over the 2 MB limit on explicit operations.
// Plain I/O errors on individual files surface only from explicit
// operations; batch scans swallow them. Malformed headers never error at
// all: the codec salvages what it can.
type (
	PathError = walker.PathError
	SizeError = header.SizeError
)

// UnsupportedLanguageError reports a header operation on a file whose
// extension maps to no known comment syntax.
type UnsupportedLanguageError struct {
	Path string
}

func (e *UnsupportedLanguageError) Error() string {
	return "unsupported language for header operations: " + e.Path
}
