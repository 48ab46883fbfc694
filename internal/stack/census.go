package stack

import (
	"os"
	"path/filepath"
	"strings"
)

// censusMaxDepth bounds the extension census walk. It is shallower than
// the documentation walk on purpose: the census only estimates a primary
// language.
const censusMaxDepth = 5

// censusLangs maps a file extension to the language it counts toward.
var censusLangs = map[string]string{
	"ts": "TypeScript", "tsx": "TypeScript",
	"js": "JavaScript", "jsx": "JavaScript",
	"vue": "TypeScript", "svelte": "TypeScript",
	"py": "Python", "rs": "Rust", "go": "Go",
	"java": "Java", "kt": "Kotlin", "swift": "Swift",
	"rb": "Ruby", "php": "PHP", "dart": "Dart",
}

// censusIgnoreDirs mirrors the walker's ignore set.
var censusIgnoreDirs = map[string]bool{
	"node_modules": true, "target": true, "dist": true, "build": true,
	".next": true, "__pycache__": true, ".venv": true, "venv": true,
	"coverage": true, ".turbo": true, ".git": true,
}

// censusResult is the outcome of an extension census.
type censusResult struct {
	counts map[string]int // language -> file count
	total  int            // all counted source files
}

// runCensus counts source files by extension under root, bounded to
// censusMaxDepth. I/O errors below the root are swallowed.
func runCensus(root string) censusResult {
	res := censusResult{counts: map[string]int{}}
	censusDir(root, 0, &res)
	return res
}

func censusDir(dir string, depth int, res *censusResult) {
	if depth > censusMaxDepth {
		return
	}
	items, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, item := range items {
		name := item.Name()
		if item.IsDir() {
			if strings.HasPrefix(name, ".") || censusIgnoreDirs[name] {
				continue
			}
			censusDir(filepath.Join(dir, name), depth+1, res)
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if lang, ok := censusLangs[ext]; ok {
			res.counts[lang]++
			res.total++
		}
	}
}

// winner returns the max-count language and its confidence, computed as
// share x 0.85 so the census path never exceeds 0.85. Ties break
// alphabetically for determinism. A zero census yields no detection.
func (r censusResult) winner() *DetectedValue {
	if r.total == 0 {
		return nil
	}
	best := ""
	bestCount := -1
	for lang, count := range r.counts {
		if count > bestCount || (count == bestCount && lang < best) {
			best = lang
			bestCount = count
		}
	}
	share := float64(bestCount) / float64(r.total)
	return &DetectedValue{
		Value:      best,
		Confidence: share * 0.85,
		Source:     "extension census",
	}
}
