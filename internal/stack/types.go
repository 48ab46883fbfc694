// Package stack detects a project's technology stack by fusing config-file,
// dependency-manifest, CDN-reference, and extension-census signals. It
// reports confidence, not certainty: within each category the first
// matching rule wins and higher-priority signal tiers shadow lower ones.
package stack

// DetectedValue is one detected stack component with its signal strength.
type DetectedValue struct {
	// Value is the detected technology, e.g. "TypeScript" or "Next.js".
	Value string `json:"value"`

	// Confidence is the signal strength in [0, 1].
	Confidence float64 `json:"confidence"`

	// Source names the signal that produced the value, e.g. "tsconfig.json"
	// or "extension census".
	Source string `json:"source"`
}

// ConfidenceBucket summarizes the language confidence for display.
type ConfidenceBucket string

const (
	BucketHigh   ConfidenceBucket = "high"   // >= 0.9
	BucketMedium ConfidenceBucket = "medium" // >= 0.5
	BucketLow    ConfidenceBucket = "low"    // detected below 0.5
	BucketNone   ConfidenceBucket = "none"   // nothing detected
)

// Detection is the full stack report for one project root.
type Detection struct {
	Language  *DetectedValue `json:"language,omitempty"`
	Framework *DetectedValue `json:"framework,omitempty"`
	Database  *DetectedValue `json:"database,omitempty"`
	Testing   *DetectedValue `json:"testing,omitempty"`
	Styling   *DetectedValue `json:"styling,omitempty"`

	// ProjectType is inferred from the (framework, language) pair:
	// Web App, API, Mobile, Desktop, Extension, CLI, or Library.
	ProjectType string `json:"project_type"`

	// ProjectName comes from the root manifest when one names the project,
	// else the root directory's base name.
	ProjectName string `json:"project_name"`

	// FileCount is the number of source files seen by the census walk.
	FileCount int `json:"file_count"`

	// HasExistingClaudeMd reports a CLAUDE.md at the project root.
	HasExistingClaudeMd bool `json:"has_existing_claude_md"`

	// Confidence buckets the language signal's numeric confidence.
	Confidence ConfidenceBucket `json:"confidence"`
}

// bucketFor maps a language detection to its display bucket.
func bucketFor(lang *DetectedValue) ConfidenceBucket {
	switch {
	case lang == nil:
		return BucketNone
	case lang.Confidence >= 0.9:
		return BucketHigh
	case lang.Confidence >= 0.5:
		return BucketMedium
	default:
		return BucketLow
	}
}
