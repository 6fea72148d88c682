package records

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestHourBucket(t *testing.T) {
	if got := HourBucket(23); got != "23-00" {
		t.Errorf("HourBucket(23) = %q, want %q", got, "23-00")
	}
	for h := 0; h <= 22; h++ {
		want := fmt.Sprintf("%02d-%02d", h, h+1)
		if got := HourBucket(h); got != want {
			t.Errorf("HourBucket(%d) = %q, want %q", h, got, want)
		}
	}
}

func TestHourBuckets(t *testing.T) {
	buckets := HourBuckets()
	if len(buckets) != 24 {
		t.Fatalf("len(HourBuckets()) = %d, want 24", len(buckets))
	}
	seen := make(map[string]bool)
	for _, b := range buckets {
		if seen[b] {
			t.Errorf("duplicate bucket %q", b)
		}
		seen[b] = true
	}
	if buckets[0] != "00-01" || buckets[23] != "23-00" {
		t.Errorf("buckets = %v", buckets)
	}
}

func TestEnrich(t *testing.T) {
	if got := Enrich(nil); got != nil {
		t.Errorf("Enrich(nil) = %+v, want nil", got)
	}

	ts := time.Date(2024, 3, 9, 23, 45, 0, 0, time.UTC)
	got := Enrich(&ts)
	want := Calendar{
		Date:        "2024-03-09",
		Year:        2024,
		MonthNumber: 3,
		MonthName:   "March",
		Day:         9,
		DayName:     "Saturday",
		Hour:        23,
		Minute:      45,
		HourBucket:  "23-00",
	}
	if got == nil || *got != want {
		t.Errorf("Enrich() = %+v, want %+v", got, want)
	}
}

func TestNewRecord(t *testing.T) {
	ts := time.Date(2024, 1, 1, 8, 5, 0, 0, time.UTC)

	tests := []struct {
		name         string
		ts           *time.Time
		author       string
		wantAuthor   string
		wantResolved bool
	}{
		{"resolved", &ts, "Alice", "Alice", true},
		{"unresolved", nil, "Bob", "Bob", false},
		{"empty author becomes notification", &ts, "", GroupNotification, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord(3, tt.ts, tt.author, "body")
			if r.Author != tt.wantAuthor {
				t.Errorf("Author = %q, want %q", r.Author, tt.wantAuthor)
			}
			if r.Resolved() != tt.wantResolved {
				t.Errorf("Resolved() = %v, want %v", r.Resolved(), tt.wantResolved)
			}
			if (r.Calendar != nil) != tt.wantResolved {
				t.Errorf("Calendar = %+v, want present = %v", r.Calendar, tt.wantResolved)
			}
			if r.IsNotification() != (tt.wantAuthor == GroupNotification) {
				t.Errorf("IsNotification() = %v", r.IsNotification())
			}
			if r.Index != 3 || r.Body != "body" {
				t.Errorf("record = %+v", r)
			}
		})
	}
}

func TestNewRecordAt(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	ts := time.Date(2024, 3, 10, 2, 15, 0, 0, ny)
	wall := time.Date(2024, 3, 10, 2, 15, 0, 0, time.UTC)

	r := NewRecordAt(0, &ts, &wall, "Alice", "hi")
	if r.Timestamp != &ts {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, ts)
	}
	if r.Calendar.Hour != 2 || r.Calendar.HourBucket != "02-03" {
		t.Errorf("Calendar = %d %q, want 2 02-03", r.Calendar.Hour, r.Calendar.HourBucket)
	}
}
