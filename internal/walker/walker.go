package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Walk traverses root according to pol and returns every file it accepts,
// sorted by relative path so two walks of the same snapshot are identical.
//
// The root must exist and be a directory; anything else is a *PathError.
// I/O errors below the root are swallowed: an unreadable subdirectory is
// treated as empty and the walk continues.
func Walk(root string, pol Policy) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &PathError{Path: root, Reason: "does not exist"}
		}
		return nil, &PathError{Path: root, Reason: "not readable"}
	}
	if !info.IsDir() {
		return nil, &PathError{Path: root, Reason: "not a directory"}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	var entries []Entry
	walkDir(abs, "", 0, pol, &entries)

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelPath < entries[j].RelPath
	})
	return entries, nil
}

// walkDir collects entries from one directory level. Read errors are
// swallowed so a permission problem on a subdirectory never aborts the walk.
func walkDir(dir, rel string, depth int, pol Policy, out *[]Entry) {
	if depth > pol.MaxDepth {
		return
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, item := range items {
		name := item.Name()
		if item.IsDir() {
			if strings.HasPrefix(name, ".") || pol.IgnoreDirs[name] {
				continue
			}
			walkDir(filepath.Join(dir, name), joinRel(rel, name), depth+1, pol, out)
			continue
		}

		info, err := item.Info()
		if err != nil {
			continue
		}

		relPath := joinRel(rel, name)
		e := Entry{
			AbsPath: filepath.Join(dir, name),
			RelPath: relPath,
			Ext:     extOf(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		e.Kind = classify(name, relPath, depth)
		e.Documentable = e.Kind == KindSource && documentable(name)
		*out = append(*out, e)
	}
}

// joinRel appends a path segment using forward slashes.
func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

// extOf returns the lowercased extension without the dot.
func extOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// classify maps a file to its walk kind. Manifests are only recognized at
// the root, with prisma/schema.prisma as the single nested exception.
func classify(name, relPath string, depth int) Kind {
	if depth == 0 && rootManifests[name] {
		return KindManifest
	}
	if relPath == "prisma/schema.prisma" {
		return KindManifest
	}
	ext := extOf(name)
	if sourceExts[ext] {
		return KindSource
	}
	if ext == "html" {
		return KindHTML
	}
	return KindOther
}

// documentable reports whether a source file is eligible for a module
// header: not an entry-point file and not a test file.
func documentable(name string) bool {
	if skipNames[name] {
		return false
	}
	if strings.Contains(name, ".test.") || strings.Contains(name, ".spec.") {
		return false
	}
	if strings.HasPrefix(name, "test_") {
		return false
	}
	return true
}
