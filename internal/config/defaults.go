// Package config provides configuration loading and defaults for repolens.
package config

// DefaultConfigDir is the default location for repolens configuration.
const DefaultConfigDir = "~/.config/repolens"

// DefaultDBName is the filename for the SQLite snapshot database.
const DefaultDBName = "repolens.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultMaxDepth is how deep the walker descends below the root.
const DefaultMaxDepth = 10

// DefaultIgnoreDirs are directory names skipped during a walk.
var DefaultIgnoreDirs = []string{
	"node_modules",
	"dist",
	"build",
	"target",
	".next",
	"coverage",
	"vendor",
	"__pycache__",
	".venv",
	"venv",
	".git",
}

// DefaultCaps holds the health score budget per component. The caps must
// sum to 100; Load refuses configurations that break that.
var DefaultCaps = Caps{
	ClaudeMd:    25,
	ModuleDocs:  25,
	Freshness:   15,
	Skills:      15,
	Context:     10,
	Enforcement: 10,
}

// DefaultDeductions holds the standard staleness signal weights.
var DefaultDeductions = Deductions{
	MissingExport:    15,
	UnlistedExport:   10,
	MissingImport:    5,
	UnlistedImport:   3,
	StaleMtime:       5,
	EmptyDescription: 10,
	GraceDays:        30,
	CutoffCurrent:    80,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
