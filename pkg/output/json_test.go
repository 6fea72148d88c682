package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport(t)

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	// Verify it's valid JSON
	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary.Records != 5 {
		t.Errorf("Records = %d, want 5", parsed.Summary.Records)
	}
	if parsed.Summary.Unresolved != 1 {
		t.Errorf("Unresolved = %d, want 1", parsed.Summary.Unresolved)
	}
	if parsed.Stats == nil || parsed.Stats.TopStats.Links != 1 {
		t.Errorf("Stats = %+v, want one link", parsed.Stats)
	}
	if parsed.Metadata.Source != "chat.txt" {
		t.Errorf("Source = %q, want chat.txt", parsed.Metadata.Source)
	}
}

func TestJSONFormatter_Format_Keys(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport(t)

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	for _, key := range []string{"top_stats", "busiest_users", "monthly_timeline", "heatmap", "common_words", "emoji"} {
		if _, ok := raw["stats"][key]; !ok {
			t.Errorf("stats missing key %q", key)
		}
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	report := createTestReport(t)

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed QuietReport
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary.Records != 5 {
		t.Errorf("Records = %d, want 5", parsed.Summary.Records)
	}
	if parsed.Summary.Participants != 2 {
		t.Errorf("Participants = %d, want 2", parsed.Summary.Participants)
	}
	if len(parsed.Participants) != 2 || parsed.Participants["Alice"] != 2 || parsed.Participants["Bob"] != 2 {
		t.Errorf("Participants = %v, want map[Alice:2 Bob:2]", parsed.Participants)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := raw["stats"]; ok {
		t.Error("Quiet output should not include stats")
	}
}

func TestJSONFormatter_Format_Empty(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createReport(t, "", "")

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Summary.Records != 0 {
		t.Errorf("Records = %d, want 0", parsed.Summary.Records)
	}
}
