package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestYAMLFormatter_Format(t *testing.T) {
	f := NewYAMLFormatter(FormatOptions{})
	if f.Name() != "yaml" {
		t.Errorf("Name() = %q, want %q", f.Name(), "yaml")
	}

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed struct {
		Summary Summary `yaml:"summary"`
		Stats   struct {
			User     string `yaml:"user"`
			TopStats struct {
				Messages int `yaml:"messages"`
				Media    int `yaml:"media"`
			} `yaml:"top_stats"`
		} `yaml:"stats"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
	if parsed.Summary.Records != 5 {
		t.Errorf("Records = %d, want 5", parsed.Summary.Records)
	}
	if parsed.Stats.User != "Overall" {
		t.Errorf("User = %q, want Overall", parsed.Stats.User)
	}
	if parsed.Stats.TopStats.Media != 1 {
		t.Errorf("Media = %d, want 1", parsed.Stats.TopStats.Media)
	}
}

func TestYAMLFormatter_Format_Quiet(t *testing.T) {
	f := NewYAMLFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, "summary:\n  user: Overall\n") {
		t.Errorf("Quiet output = %q, want summary first", output)
	}
	if !strings.Contains(output, "participants:\n  Alice: 2\n  Bob: 2\n") {
		t.Errorf("Quiet output = %q, want participant counts", output)
	}
	if strings.Contains(output, "top_stats") {
		t.Error("Quiet output should not include stats")
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{"", "text", false},
		{"text", "text", false},
		{"json", "json", false},
		{"yaml", "yaml", false},
		{"yml", "yaml", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		f, err := NewFormatter(tt.name, FormatOptions{})
		if (err != nil) != tt.wantErr {
			t.Errorf("NewFormatter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && f.Name() != tt.wantName {
			t.Errorf("NewFormatter(%q).Name() = %q, want %q", tt.name, f.Name(), tt.wantName)
		}
	}
}
