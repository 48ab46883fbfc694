package symbols

import "strings"

// Extract scans source text for the given file extension and returns the
// exports and internal imports it finds. Unsupported extensions and inputs
// over 2 MB yield an empty set.
func Extract(text, ext string) Set {
	if len(text) > maxScanSize {
		return Set{}
	}

	var exports, imports collector

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isComment(line, ext) {
			continue
		}

		switch ext {
		case "ts", "tsx", "js", "jsx":
			scanJSExport(line, &exports)
			scanJSImport(line, &imports)
		case "rs":
			scanRustExport(line, &exports)
			scanRustImport(line, &imports)
		case "py":
			scanPyExport(line, &exports)
			scanPyImport(line, &imports)
		case "go":
			scanGoExport(line, &exports)
		case "java":
			scanJavaExport(line, &exports)
			scanJVMImport(line, &imports)
		case "kt":
			scanKtExport(line, &exports)
			scanJVMImport(line, &imports)
		case "swift":
			scanSwiftExport(line, &exports)
			scanSwiftImport(line, &imports)
		}
	}

	return Set{Exports: exports.items, Imports: imports.items}
}

// isComment reports whether a trimmed line is a comment for the language.
func isComment(line, ext string) bool {
	switch ext {
	case "py":
		return strings.HasPrefix(line, "#")
	default:
		return strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "/*") ||
			strings.HasPrefix(line, "*")
	}
}

// ---------------------------------------------------------------------------
// TypeScript / JavaScript
// ---------------------------------------------------------------------------

func scanJSExport(line string, out *collector) {
	switch {
	case strings.HasPrefix(line, "export default function "):
		name := ident(line[len("export default function "):])
		if name != "" {
			out.add(name + " (default)")
		}
	case strings.HasPrefix(line, "export default "):
		name := ident(line[len("export default "):])
		if name != "" {
			out.add(name + " (default)")
		}
	case strings.HasPrefix(line, "export function "):
		out.add(ident(line[len("export function "):]))
	case strings.HasPrefix(line, "export async function "):
		out.add(ident(line[len("export async function "):]))
	case strings.HasPrefix(line, "export const "):
		out.add(ident(line[len("export const "):]))
	case strings.HasPrefix(line, "export interface "):
		out.add(ident(line[len("export interface "):]))
	case strings.HasPrefix(line, "export type ") && !strings.HasPrefix(line, "export type {"):
		out.add(ident(line[len("export type "):]))
	case strings.HasPrefix(line, "export class "):
		out.add(ident(line[len("export class "):]))
	}
}

func scanJSImport(line string, out *collector) {
	if !strings.HasPrefix(line, "import ") {
		return
	}
	path, ok := quotedImportPath(line)
	if !ok {
		return
	}
	if strings.HasPrefix(path, "@/") || strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
		out.add(path)
	}
}

// quotedImportPath pulls the module specifier out of an import line,
// accepting both quote styles and bare side-effect imports.
func quotedImportPath(line string) (string, bool) {
	for _, q := range []byte{'"', '\''} {
		start := strings.IndexByte(line, q)
		if start < 0 {
			continue
		}
		end := strings.IndexByte(line[start+1:], q)
		if end < 0 {
			continue
		}
		return line[start+1 : start+1+end], true
	}
	return "", false
}

// ---------------------------------------------------------------------------
// Rust
// ---------------------------------------------------------------------------

func scanRustExport(line string, out *collector) {
	prefixes := []struct{ pat string }{
		{"pub async fn "},
		{"pub fn "},
		{"pub struct "},
		{"pub enum "},
		{"pub const "},
		{"pub type "},
		{"pub trait "},
	}
	for _, p := range prefixes {
		if strings.HasPrefix(line, p.pat) {
			out.add(ident(line[len(p.pat):]))
			return
		}
	}
}

func scanRustImport(line string, out *collector) {
	const pat = "use crate::"
	if !strings.HasPrefix(line, pat) {
		return
	}
	path := strings.TrimSuffix(strings.TrimSpace(line[len(pat):]), ";")
	if path != "" {
		out.add("crate::" + path)
	}
}

// ---------------------------------------------------------------------------
// Python
// ---------------------------------------------------------------------------

func scanPyExport(line string, out *collector) {
	switch {
	case strings.HasPrefix(line, "def "), strings.HasPrefix(line, "async def "):
		rest := strings.TrimPrefix(strings.TrimPrefix(line, "async "), "def ")
		name := ident(rest)
		if name != "" && !strings.HasPrefix(name, "_") {
			out.add(name)
		}
	case strings.HasPrefix(line, "class "):
		name := ident(line[len("class "):])
		out.add(strings.TrimRight(name, ":("))
	}
}

func scanPyImport(line string, out *collector) {
	switch {
	case strings.HasPrefix(line, "from "):
		rest := line[len("from "):]
		mod := firstToken(rest)
		if mod != "" && mod != "__future__" {
			out.add(mod)
		}
	case strings.HasPrefix(line, "import "):
		mod := firstToken(line[len("import "):])
		if mod != "" {
			out.add(strings.TrimSuffix(mod, ","))
		}
	}
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ---------------------------------------------------------------------------
// Go
// ---------------------------------------------------------------------------

func scanGoExport(line string, out *collector) {
	switch {
	case strings.HasPrefix(line, "func "):
		rest := line[len("func "):]
		// Methods carry a receiver; skip them.
		if strings.HasPrefix(rest, "(") {
			return
		}
		name := ident(rest)
		if isExportedName(name) {
			out.add(name)
		}
	case strings.HasPrefix(line, "type "):
		name := ident(line[len("type "):])
		if isExportedName(name) {
			out.add(name)
		}
	}
}

func isExportedName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// ---------------------------------------------------------------------------
// Java
// ---------------------------------------------------------------------------

func scanJavaExport(line string, out *collector) {
	if !strings.HasPrefix(line, "public ") {
		return
	}
	for _, kw := range []string{"public class ", "public interface ", "public enum "} {
		if strings.HasPrefix(line, kw) {
			out.add(ident(line[len(kw):]))
			return
		}
	}
	// Methods: identifier immediately before the opening parenthesis.
	paren := strings.IndexByte(line, '(')
	if paren <= 0 {
		return
	}
	head := strings.TrimRight(line[:paren], " ")
	space := strings.LastIndexByte(head, ' ')
	if space < 0 {
		return
	}
	out.add(ident(head[space+1:]))
}

// ---------------------------------------------------------------------------
// Kotlin
// ---------------------------------------------------------------------------

func scanKtExport(line string, out *collector) {
	switch {
	case strings.HasPrefix(line, "fun "):
		name := ident(line[len("fun "):])
		// Extension functions like fun String.foo( carry a dot and are
		// skipped (ident stops at the dot, so check the raw text).
		rest := line[len("fun "):]
		if dotBeforeParen(rest) {
			return
		}
		out.add(name)
	case strings.HasPrefix(line, "data class "):
		out.add(ident(line[len("data class "):]))
	case strings.HasPrefix(line, "class "):
		out.add(ident(line[len("class "):]))
	case strings.HasPrefix(line, "object "):
		out.add(ident(line[len("object "):]))
	case strings.HasPrefix(line, "interface "):
		out.add(ident(line[len("interface "):]))
	}
}

// dotBeforeParen reports a '.' occurring before the first '(' in s.
func dotBeforeParen(s string) bool {
	for _, r := range s {
		switch r {
		case '(':
			return false
		case '.':
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Swift
// ---------------------------------------------------------------------------

func scanSwiftExport(line string, out *collector) {
	for _, kw := range []string{"func ", "class ", "struct ", "enum ", "protocol "} {
		if strings.HasPrefix(line, kw) {
			name := ident(line[len(kw):])
			out.add(strings.TrimRight(name, ":{"))
			return
		}
	}
}

var swiftSystemModules = map[string]bool{
	"Foundation": true, "UIKit": true, "SwiftUI": true, "Combine": true,
}

func scanSwiftImport(line string, out *collector) {
	if !strings.HasPrefix(line, "import ") {
		return
	}
	mod := firstToken(line[len("import "):])
	if mod != "" && !swiftSystemModules[mod] {
		out.add(mod)
	}
}

// ---------------------------------------------------------------------------
// JVM imports (Java and Kotlin)
// ---------------------------------------------------------------------------

var jvmStdPrefixes = []string{"java.", "javax.", "kotlin.", "kotlinx."}

func scanJVMImport(line string, out *collector) {
	if !strings.HasPrefix(line, "import ") {
		return
	}
	path := strings.TrimSuffix(firstToken(line[len("import "):]), ";")
	if path == "" {
		return
	}
	for _, p := range jvmStdPrefixes {
		if strings.HasPrefix(path, p) {
			return
		}
	}
	out.add(path)
}
