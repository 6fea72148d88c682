// Package output provides formatting and output generation for chat reports
// and record listings.
package output

import (
	"time"

	"github.com/ccollicutt/chatlens/pkg/records"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// Report is the complete analysis output.
type Report struct {
	// Summary provides aggregate counts.
	Summary Summary `json:"summary" yaml:"summary"`

	// Stats holds the statistics of the selected user.
	Stats *stats.Result `json:"stats" yaml:"stats"`

	// Participants is the message count of every participant in the export,
	// whatever user was selected.
	Participants map[string]int `json:"participants" yaml:"participants"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// QuietReport is the short form of a Report written in quiet mode.
type QuietReport struct {
	Summary      Summary        `json:"summary" yaml:"summary"`
	Participants map[string]int `json:"participants" yaml:"participants"`
}

// Summary provides aggregate counts.
type Summary struct {
	// User is the selection the statistics were computed for.
	User string `json:"user" yaml:"user"`

	// Records is the number of selected records.
	Records int `json:"records" yaml:"records"`

	// Participants is the number of distinct human authors in the export.
	Participants int `json:"participants" yaml:"participants"`

	// Unresolved is the number of selected records without a timestamp.
	Unresolved int `json:"unresolved" yaml:"unresolved"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Source is the chat export that was analyzed.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// ConfigFile is the path to the configuration file used.
	ConfigFile string `json:"config_file,omitempty" yaml:"config_file,omitempty"`

	// DateOrder is the header date order the export was parsed with.
	DateOrder string `json:"date_order,omitempty" yaml:"date_order,omitempty"`

	// Timezone is the zone timestamps were resolved in.
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`

	// Duration is how long parsing and analysis took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewReport creates a Report from a parsed store and its statistics.
func NewReport(store *records.Store, result *stats.Result, meta Metadata) *Report {
	counts := store.Count(records.FieldAuthor)
	delete(counts, records.GroupNotification)

	return &Report{
		Stats:        result,
		Participants: counts,
		Metadata:     meta,
		Summary: Summary{
			User:         result.User,
			Records:      result.TopStats.Messages,
			Participants: len(store.Participants()),
			Unresolved:   result.Unresolved,
		},
	}
}

// HasUnresolved returns true if any selected record lacks a timestamp.
func (r *Report) HasUnresolved() bool {
	return r.Summary.Unresolved > 0
}

// Quiet returns the summary and participant counts of the report.
func (r *Report) Quiet() QuietReport {
	return QuietReport{Summary: r.Summary, Participants: r.Participants}
}
