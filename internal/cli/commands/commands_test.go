package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/chatlens/pkg/output"
)

// testChat is day first; the last header names a day February does not have.
const testChat = `14/01/24, 09:15 - Messages and calls are end-to-end encrypted.
14/01/24, 09:16 - Alice: Hello everyone
14/01/24, 09:17 - Bob: hi Alice, see https://example.com
15/01/24, 21:00 - Alice: <Media omitted>
31/02/24, 10:00 - Bob: lost
`

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	if cmd.Use != "analyze <chat.txt>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"config", "user", "output", "verbose", "quiet", "no-color", "strict"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := buf.String(); got != "chatlens dev\n" {
		t.Errorf("version output = %q, want %q", got, "chatlens dev\n")
	}
}

func TestRunAnalyze_Text(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{"--no-color", chatPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"=== chatlens report: Overall ===",
		"Top Statistics",
		"Most Busy Users",
		"1 without a resolvable timestamp",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("--no-color output contains ANSI escapes")
	}
}

func TestRunAnalyze_Quiet(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{"-q", chatPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Overall", "5 messages", "1 media", "1 links"} {
		if !strings.Contains(out, want) {
			t.Errorf("quiet output = %q, want it to contain %q", out, want)
		}
	}
}

func TestRunAnalyze_UserJSON(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{"-o", "json", "--user", "Alice", chatPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var report output.Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if report.Summary.User != "Alice" {
		t.Errorf("Summary.User = %q, want Alice", report.Summary.User)
	}
	if report.Summary.Records != 2 {
		t.Errorf("Summary.Records = %d, want 2", report.Summary.Records)
	}
	if report.Metadata.DateOrder != "dmy" {
		t.Errorf("Metadata.DateOrder = %q, want dmy", report.Metadata.DateOrder)
	}
	if report.Metadata.Source != chatPath {
		t.Errorf("Metadata.Source = %q, want %q", report.Metadata.Source, chatPath)
	}
}

func TestRunAnalyze_AutoDateOrder(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", "1/31/24, 9:00 AM - Alice: hi\n2/1/24, 9:05 PM - Bob: yo\n")
	configPath := writeTempFile(t, "chatlens.yaml", "date_order: auto\n")

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{"-c", configPath, "-o", "yaml", chatPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "date_order: mdy") {
		t.Errorf("output missing detected date order:\n%s", out)
	}
	if !strings.Contains(out, "unresolved: 0") {
		t.Errorf("output reports unresolved records:\n%s", out)
	}
}

func TestRunAnalyze_UnknownUser(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{"--user", "Dave", chatPath})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("Expected error for unknown user")
	}
	if !strings.Contains(err.Error(), "Dave") || !strings.Contains(err.Error(), "Alice, Bob") {
		t.Errorf("error = %v, want it to name Dave and list the participants", err)
	}
}

func TestRunAnalyze_MissingFile(t *testing.T) {
	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{"/nonexistent/chat.txt"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunAnalyze_InvalidConfig(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)
	configPath := writeTempFile(t, "chatlens.yaml", "top_words: 0\n")

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{"-c", configPath, chatPath})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("Expected error for invalid config")
	}
	if !strings.Contains(err.Error(), "top_words") {
		t.Errorf("error = %v, want it to name top_words", err)
	}
}

func TestRunAnalyze_Strict(t *testing.T) {
	t.Cleanup(func() { ExitCode = 0 })
	chatPath := writeTempFile(t, "chat.txt", testChat)

	ExitCode = 0
	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{"--strict", "-q", chatPath})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1 for an export with an unresolved header", ExitCode)
	}
}

func TestCreateFormatter(t *testing.T) {
	tests := []struct {
		output   string
		wantName string
		wantErr  bool
	}{
		{"text", "text", false},
		{"json", "json", false},
		{"yaml", "yaml", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			f, err := createFormatter(&AnalyzeOptions{Output: tt.output}, &bytes.Buffer{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("createFormatter(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			}
			if err == nil && f.Name() != tt.wantName {
				t.Errorf("createFormatter(%q).Name() = %q, want %q", tt.output, f.Name(), tt.wantName)
			}
		})
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("isTerminal(buffer) = true, want false")
	}
}

func TestRunRecords_Text(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)

	cmd := NewRecordsCommand()
	cmd.SetArgs([]string{chatPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("records failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want header plus 5 records:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "INDEX") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[5], "-") || !strings.Contains(lines[5], "lost") {
		t.Errorf("unresolved record line = %q", lines[5])
	}
}

func TestRunRecords_AuthorAndLimit(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)

	cmd := NewRecordsCommand()
	cmd.SetArgs([]string{"--author", "Bob", "--limit", "1", "-o", "json", chatPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("records failed: %v", err)
	}

	var recs []struct {
		Index  int    `json:"index"`
		Author string `json:"author"`
	}
	if err := json.Unmarshal(buf.Bytes(), &recs); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].Author != "Bob" || recs[0].Index != 2 {
		t.Errorf("record = %+v, want Bob at index 2", recs[0])
	}
}

func TestRunRecords_GroupBy(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)

	cmd := NewRecordsCommand()
	cmd.SetArgs([]string{"--group-by", "day_name", "-o", "json", chatPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("records failed: %v", err)
	}

	var groups []output.GroupCount
	if err := json.Unmarshal(buf.Bytes(), &groups); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	got := make(map[string]int)
	for _, g := range groups {
		got[g.Key] = g.Count
	}
	if got["Sunday"] != 3 || got["Monday"] != 1 || len(got) != 2 {
		t.Errorf("groups = %v, want Sunday:3 Monday:1", got)
	}
}

func TestRunRecords_Errors(t *testing.T) {
	chatPath := writeTempFile(t, "chat.txt", testChat)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown author", []string{"--author", "Dave", chatPath}, "unknown author"},
		{"unknown field", []string{"--group-by", "weather", chatPath}, "unknown field"},
		{"unknown format", []string{"-o", "xml", chatPath}, "unknown output format"},
		{"missing file", []string{"/nonexistent/chat.txt"}, "opening chat export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRecordsCommand()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := cmd.ExecuteContext(context.Background())
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestRunValidate_Success(t *testing.T) {
	configPath := writeTempFile(t, "chatlens.yaml", `date_order: mdy
timezone: Europe/Berlin
server:
  max_uploads: 4
`)

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Validation failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Configuration valid!", "Date order:   mdy", "Europe/Berlin", "Max uploads:  4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunValidate_StopWordsWarning(t *testing.T) {
	configPath := writeTempFile(t, "chatlens.toml", `stop_words_file = "/nonexistent/stop.txt"`)

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Validation failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Warning: cannot read stop words file") {
		t.Errorf("output missing stop words warning:\n%s", buf.String())
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeTempFile(t, "chatlens.yaml", "date_order: ymd\n")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "date_order") {
		t.Errorf("error = %v, want it to name date_order", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"/nonexistent/config.yaml"})
	cmd.SetOut(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNewDashboardCommand(t *testing.T) {
	cmd := NewDashboardCommand()

	if cmd.Use != "dashboard <chat.txt>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	for _, flag := range []string{"config", "user"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestRunDashboard_MissingFile(t *testing.T) {
	cmd := NewDashboardCommand()
	cmd.SetArgs([]string{"/nonexistent/chat.txt"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunServe_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	cmd := NewServeCommand()
	cmd.SetArgs([]string{"--addr", "127.0.0.1:0"})
	var logs bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&logs)

	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve failed: %v", err)
	}
	if !strings.Contains(logs.String(), `"msg":"shutting down"`) {
		t.Errorf("logs missing shutdown entry:\n%s", logs.String())
	}
}

func TestRunServe_InvalidConfig(t *testing.T) {
	configPath := writeTempFile(t, "chatlens.yaml", "log_level: loud\n")

	cmd := NewServeCommand()
	cmd.SetArgs([]string{"-c", configPath})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
