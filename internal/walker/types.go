// Package walker provides bounded, policy-driven traversal of a project tree.
package walker

import (
	"fmt"
	"time"
)

// Kind classifies a walked file for downstream consumers.
type Kind string

const (
	// KindSource is a file with a recognized source extension.
	KindSource Kind = "source"

	// KindManifest is a dependency or build manifest at the project root.
	KindManifest Kind = "root-manifest"

	// KindHTML is an .html file (CDN detection input).
	KindHTML Kind = "html"

	// KindOther is everything else.
	KindOther Kind = "other"
)

// Entry is one file yielded by a walk.
type Entry struct {
	// AbsPath is the absolute filesystem path.
	AbsPath string `json:"abs_path"`

	// RelPath is the project-root-relative path. It never has a leading
	// separator and always uses forward slashes regardless of host OS.
	RelPath string `json:"rel_path"`

	// Kind is the file classification.
	Kind Kind `json:"kind"`

	// Ext is the lowercased extension without the leading dot ("" if none).
	Ext string `json:"ext"`

	// Documentable reports whether the file is eligible to carry a module
	// header: a source file that is not an entry-point file and not a test.
	Documentable bool `json:"documentable"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// ModTime is the file's last modification time.
	ModTime time.Time `json:"mod_time"`
}

// Policy controls traversal depth, ignored directories, and classification.
type Policy struct {
	// MaxDepth is the maximum directory nesting below the root. The root
	// itself is depth 0.
	MaxDepth int

	// IgnoreDirs are directory names skipped entirely. Directories whose
	// name starts with "." are always skipped.
	IgnoreDirs map[string]bool
}

// PathError reports a root that is missing, not a directory, or unreadable.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %s: %s", e.Path, e.Reason)
}

// DefaultIgnoreDirs is the fixed set of directory names never descended into.
var DefaultIgnoreDirs = []string{
	"node_modules", "target", "dist", "build", ".next",
	"__pycache__", ".venv", "venv", "coverage", ".turbo", ".git",
}

// DefaultMaxDepth bounds recursion below the project root.
const DefaultMaxDepth = 10

// DefaultPolicy returns the standard traversal policy.
func DefaultPolicy() Policy {
	ignore := make(map[string]bool, len(DefaultIgnoreDirs))
	for _, d := range DefaultIgnoreDirs {
		ignore[d] = true
	}
	return Policy{
		MaxDepth:   DefaultMaxDepth,
		IgnoreDirs: ignore,
	}
}

// sourceExts are the extensions eligible for documentation headers.
var sourceExts = map[string]bool{
	"ts": true, "tsx": true, "js": true, "jsx": true,
	"rs": true, "py": true, "go": true,
	"java": true, "kt": true, "swift": true,
}

// rootManifests are recognized by exact name at the project root.
var rootManifests = map[string]bool{
	"tsconfig.json":      true,
	"package.json":       true,
	"Cargo.toml":         true,
	"pyproject.toml":     true,
	"setup.py":           true,
	"requirements.txt":   true,
	"go.mod":             true,
	"pubspec.yaml":       true,
	"pom.xml":            true,
	"build.gradle":       true,
	"build.gradle.kts":   true,
	"Gemfile":            true,
	"composer.json":      true,
	"Package.swift":      true,
	"manifest.json":      true,
	"tailwind.config.js": true,
	"tailwind.config.ts": true,
	"tailwind.config.mjs": true,
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
}

// skipNames are entry-point files excluded from documentable counts
// (they still count as source for the language census).
var skipNames = map[string]bool{
	"mod.rs": true, "main.rs": true, "lib.rs": true,
	"index.ts": true, "index.js": true,
	"main.ts": true, "main.tsx": true,
	"vite-env.d.ts": true,
}
