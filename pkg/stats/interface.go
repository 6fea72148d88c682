package stats

import (
	"github.com/ccollicutt/chatlens/pkg/records"
)

// Collector accumulates one family of statistics over a pass of records.
// Every statistic (top stats, timelines, activity, words, emoji) implements
// this interface.
type Collector interface {
	// Name identifies the collector in logs.
	Name() string

	// Process handles a single record, updating internal state.
	Process(r *records.Record)

	// Finalize writes the accumulated statistics into res.
	// Called once after all records have been processed.
	Finalize(res *Result)
}
