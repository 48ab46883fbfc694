package stack

import (
	"os"
	"path/filepath"
	"strings"
)

// cdnConfidence applies to any CDN-reference match.
const cdnConfidence = 0.80

// cdnRule maps a URL substring found in root HTML to a detected value.
type cdnRule struct {
	substr string
	value  string
}

// Frameworks and styling libraries commonly pulled from a CDN. Order is
// priority order; the first match wins.
var cdnFrameworks = []cdnRule{
	{"unpkg.com/react", "React"},
	{"cdn.jsdelivr.net/npm/react", "React"},
	{"unpkg.com/vue", "Vue"},
	{"cdn.jsdelivr.net/npm/vue", "Vue"},
	{"cdnjs.cloudflare.com/ajax/libs/angular", "Angular"},
	{"unpkg.com/svelte", "Svelte"},
}

var cdnStyling = []cdnRule{
	{"cdn.tailwindcss.com", "Tailwind"},
	{"cdn.jsdelivr.net/npm/bootstrap", "Bootstrap"},
	{"stackpath.bootstrapcdn.com", "Bootstrap"},
	{"cdnjs.cloudflare.com/ajax/libs/bulma", "Bulma"},
}

// rootHTML concatenates the content of .html files directly at the root.
// The scan is deliberately non-recursive; apps that split HTML into
// subdirectories need a deeper signal than a CDN reference.
func rootHTML(root string) string {
	items, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	var sb strings.Builder
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), ".html") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(root, item.Name()))
		if err != nil {
			continue
		}
		sb.Write(data)
		sb.WriteString("\n")
	}
	return sb.String()
}

// matchCDN returns the first rule whose substring occurs in the HTML.
func matchCDN(html string, rules []cdnRule) *DetectedValue {
	if html == "" {
		return nil
	}
	for _, r := range rules {
		if strings.Contains(html, r.substr) {
			return &DetectedValue{Value: r.value, Confidence: cdnConfidence, Source: "cdn reference"}
		}
	}
	return nil
}
