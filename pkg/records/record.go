// Package records defines the chat record model, the calendar enrichment
// applied to resolved timestamps, and the in-memory Store queried by the
// statistics, dashboard and server layers.
package records

import (
	"fmt"
	"time"
)

// GroupNotification is the author assigned to records with no explicit sender,
// such as "X added Y" or the end-to-end encryption banner.
const GroupNotification = "group_notification"

// DateLayout is the layout of Calendar.Date.
const DateLayout = "2006-01-02"

// Record is a single chat message parsed from an export.
// Records are created once by the parser and never mutated.
type Record struct {
	// Index is the 0-based position of the record in the source text.
	Index int `json:"index" yaml:"index"`

	// Timestamp is the resolved header time, nil when the header could not be resolved.
	Timestamp *time.Time `json:"timestamp" yaml:"timestamp"`

	// Author is the sender name, or GroupNotification.
	Author string `json:"author" yaml:"author"`

	// Body is the message text with the author prefix removed.
	Body string `json:"body" yaml:"body"`

	// Calendar holds fields derived from Timestamp. Nil iff Timestamp is nil.
	Calendar *Calendar `json:"calendar,omitempty" yaml:"calendar,omitempty"`
}

// Calendar holds the calendar and clock fields derived from a resolved timestamp.
type Calendar struct {
	Date        string `json:"date" yaml:"date"`
	Year        int    `json:"year" yaml:"year"`
	MonthNumber int    `json:"month_number" yaml:"month_number"`
	MonthName   string `json:"month_name" yaml:"month_name"`
	Day         int    `json:"day" yaml:"day"`
	DayName     string `json:"day_name" yaml:"day_name"`
	Hour        int    `json:"hour" yaml:"hour"`
	Minute      int    `json:"minute" yaml:"minute"`
	HourBucket  string `json:"hour_bucket" yaml:"hour_bucket"`
}

// NewRecord builds a record and derives its calendar fields from ts.
func NewRecord(index int, ts *time.Time, author, body string) Record {
	return NewRecordAt(index, ts, ts, author, body)
}

// NewRecordAt is NewRecord with calendar fields derived from wall, the
// header's date and time as written. wall and ts differ only for wall
// times skipped by a daylight saving change.
func NewRecordAt(index int, ts, wall *time.Time, author, body string) Record {
	if author == "" {
		author = GroupNotification
	}
	return Record{
		Index:     index,
		Timestamp: ts,
		Author:    author,
		Body:      body,
		Calendar:  Enrich(wall),
	}
}

// IsNotification reports whether the record has no human author.
func (r *Record) IsNotification() bool {
	return r.Author == GroupNotification
}

// Resolved reports whether the record carries a timestamp.
func (r *Record) Resolved() bool {
	return r.Timestamp != nil
}

// Enrich derives calendar fields from ts. A nil timestamp yields a nil Calendar.
func Enrich(ts *time.Time) *Calendar {
	if ts == nil {
		return nil
	}
	t := *ts
	return &Calendar{
		Date:        t.Format(DateLayout),
		Year:        t.Year(),
		MonthNumber: int(t.Month()),
		MonthName:   t.Month().String(),
		Day:         t.Day(),
		DayName:     t.Weekday().String(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		HourBucket:  HourBucket(t.Hour()),
	}
}

// HourBucket returns the one-hour activity label for hour h.
// Hours 0..22 map to "HH-HH+1"; hour 23 wraps to "23-00".
func HourBucket(h int) string {
	if h == 23 {
		return "23-00"
	}
	return fmt.Sprintf("%02d-%02d", h, h+1)
}

// HourBuckets returns all 24 bucket labels in clock order.
func HourBuckets() []string {
	buckets := make([]string, 24)
	for h := range buckets {
		buckets[h] = HourBucket(h)
	}
	return buckets
}
