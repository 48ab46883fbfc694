package header

// styleKind selects the comment shape a language uses for its header.
type styleKind int

const (
	// blockStar is the JSDoc/Javadoc/KDoc shape: /** ... * ... */.
	blockStar styleKind = iota

	// doubleSlashBang is Rust's //! module-doc run.
	doubleSlashBang

	// tripleSlash is Swift's /// run.
	tripleSlash

	// tripleQuote is Python's module docstring.
	tripleQuote

	// doubleSlash is Go's leading // run opened by an @module line.
	doubleSlash
)

// style describes how one comment shape opens, continues, and closes.
// Line styles have no close marker; their header ends at the first line
// that does not carry the prefix.
type style struct {
	kind       styleKind
	open       string // first line, "" for line styles
	linePrefix string // prefix for every content line
	close      string // last line, "" for line styles
}

var styles = map[styleKind]style{
	blockStar:       {kind: blockStar, open: "/**", linePrefix: " * ", close: " */"},
	doubleSlashBang: {kind: doubleSlashBang, linePrefix: "//! "},
	tripleSlash:     {kind: tripleSlash, linePrefix: "/// "},
	tripleQuote:     {kind: tripleQuote, open: `"""`, close: `"""`},
	doubleSlash:     {kind: doubleSlash, linePrefix: "// "},
}

// styleFor maps a language to its comment style.
func styleFor(lang Language) style {
	switch lang {
	case LangRust:
		return styles[doubleSlashBang]
	case LangSwift:
		return styles[tripleSlash]
	case LangPy:
		return styles[tripleQuote]
	case LangGo:
		return styles[doubleSlash]
	default:
		// ts, tsx, js, jsx, java, kt.
		return styles[blockStar]
	}
}

// blankLine returns the style's representation of an empty header line.
// Block-star uses a bare " *"; line styles use the trimmed prefix; the
// docstring style uses an actual empty line.
func (s style) blankLine() string {
	switch s.kind {
	case blockStar:
		return " *"
	case tripleQuote:
		return ""
	default:
		// Trim the trailing space off the line prefix.
		return s.linePrefix[:len(s.linePrefix)-1]
	}
}
