// Package freshness scores how well a file's documentation header matches
// its current source. The model is deliberately forgiving: each drift
// signal deducts points from 100 and the status cutoff decides whether the
// file still counts as current.
package freshness

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/repolens/internal/header"
	"github.com/blackwell-systems/repolens/internal/symbols"
)

// Status classifies a file's documentation state.
type Status string

const (
	StatusCurrent  Status = "current"
	StatusOutdated Status = "outdated"
	StatusMissing  Status = "missing"
)

// Verdict is the per-file staleness result.
type Verdict struct {
	// Score is 0-100; 0 when no header exists.
	Score int `json:"score"`

	// Status is missing when no header exists, current when the score
	// clears the cutoff, and outdated otherwise.
	Status Status `json:"status"`

	// Changes holds one human-readable description per triggered signal.
	Changes []string `json:"changes,omitempty"`
}

// Deductions encodes every staleness signal as data. Tests assert the
// defaults rather than scattering the literals through the scorer.
type Deductions struct {
	// MissingExport: a listed export no longer present in the source.
	MissingExport int `mapstructure:"missing_export"`

	// UnlistedExport: a current export the header does not list.
	UnlistedExport int `mapstructure:"unlisted_export"`

	// MissingImport: a listed import no longer present.
	MissingImport int `mapstructure:"missing_import"`

	// UnlistedImport: a current internal import the header does not list.
	UnlistedImport int `mapstructure:"unlisted_import"`

	// StaleMtime: source modified more than GraceDays after the header.
	StaleMtime int `mapstructure:"stale_mtime"`

	// EmptyDescription: the header carries no description.
	EmptyDescription int `mapstructure:"empty_description"`

	// GraceDays is the modification window before the mtime signal fires.
	GraceDays int `mapstructure:"grace_days"`

	// CutoffCurrent is the minimum score for status current.
	CutoffCurrent int `mapstructure:"cutoff_current"`
}

// DefaultDeductions are the standard signal weights.
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

// Evaluate compares a parsed header against the file's live symbols and
// modification time. headerTime is the last known header update; the
// zero value skips the mtime signal entirely.
func Evaluate(doc *header.Doc, syms symbols.Set, modTime, headerTime time.Time, d Deductions) Verdict {
	if doc == nil {
		return Verdict{Score: 0, Status: StatusMissing}
	}

	score := 100
	var changes []string
	deduct := func(points int, change string) {
		score -= points
		changes = append(changes, change)
	}

	listedExports := entryNames(doc.Exports)
	liveExports := baseNames(syms.Exports)

	for _, name := range listedExports {
		if !contains(liveExports, name) {
			deduct(d.MissingExport, "Listed export no longer found in source: "+name)
		}
	}
	for _, name := range liveExports {
		if !contains(listedExports, name) {
			deduct(d.UnlistedExport, "Current export not listed in header: "+name)
		}
	}

	listedImports := entryNames(doc.Dependencies)
	for _, name := range listedImports {
		if !contains(syms.Imports, name) {
			deduct(d.MissingImport, "Listed import no longer present: "+name)
		}
	}
	for _, imp := range syms.Imports {
		if !contains(listedImports, imp) {
			deduct(d.UnlistedImport, "Current internal import not listed: "+imp)
		}
	}

	if !headerTime.IsZero() && !modTime.IsZero() {
		grace := time.Duration(d.GraceDays) * 24 * time.Hour
		if modTime.After(headerTime.Add(grace)) {
			days := int(modTime.Sub(headerTime).Hours() / 24)
			deduct(d.StaleMtime, fmt.Sprintf("Source modified %d days after header update", days))
		}
	}

	if doc.Description == "" {
		deduct(d.EmptyDescription, "Header description is empty")
	}

	if score < 0 {
		score = 0
	}

	status := StatusOutdated
	if score >= d.CutoffCurrent {
		status = StatusCurrent
	}
	return Verdict{Score: score, Status: status, Changes: changes}
}

// entryNames strips the " - rationale" suffix from header list entries and
// reduces each to its base name.
func entryNames(entries []string) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, baseName(e))
	}
	return names
}

// baseNames reduces extracted symbol strings to their base names.
func baseNames(entries []string) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, baseName(e))
	}
	return names
}

// baseName turns "App (default) - entry component" into "App". Import
// paths have no spaces and pass through unchanged.
func baseName(entry string) string {
	if i := strings.Index(entry, " - "); i >= 0 {
		entry = entry[:i]
	}
	entry = strings.TrimSpace(entry)
	if i := strings.IndexByte(entry, ' '); i >= 0 {
		entry = entry[:i]
	}
	return entry
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
