package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/config"
	"github.com/ccollicutt/chatlens/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <chat.txt>",
		Short: "Detect the header format of a chat export",
		Long: `Sample the date-time headers of a chat export and report how they read.

Reports:
  - Date order (day first, month first, or ambiguous)
  - Clock style (12 hour, 24 hour, or mixed)
  - Year width and narrow no-break spaces before AM/PM
  - How many sampled headers resolve under each reading

Prints a date_order setting to copy into the configuration, and optionally
writes a starter config with --write-config.

Example:
  chatlens detect chat.txt
  chatlens detect --sample 2000 --all chat.txt
  chatlens detect -w chatlens.yaml chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 500, "Number of headers to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show every reading, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	chatFile := args[0]
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	if _, err := os.Stat(chatFile); os.IsNotExist(err) {
		return fmt.Errorf("chat export not found: %s", chatFile)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, chatFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(out, result, chatFile, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(out, result, chatFile, opts)
	case "text", "":
		return outputDetectText(out, result, chatFile, opts)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, chatFile string, opts *DetectOptions) error {
	var b strings.Builder

	b.WriteString("=== Chat Header Detection ===\n\n")
	fmt.Fprintf(&b, "File: %s\n", chatFile)
	fmt.Fprintf(&b, "Headers sampled: %d\n\n", result.SampledHeaders)

	if result.SampledHeaders == 0 {
		b.WriteString("No date-time headers detected.\n\n")
		b.WriteString("Tip: headers look like \"31/12/23, 23:59 - \" or \"12/31/23, 11:59 PM - \".\n")
		b.WriteString("Check that the file is an unmodified chat export.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Clock: %s\n", result.Clock)
	if result.YearDigits > 0 {
		fmt.Fprintf(&b, "Year digits: %d\n", result.YearDigits)
	} else {
		b.WriteString("Year digits: mixed\n")
	}
	if result.NarrowSpace {
		b.WriteString("Narrow no-break space before AM/PM: yes\n")
	}
	fmt.Fprintf(&b, "Sample header:\n  %s\n\n", strings.TrimSpace(result.SampleHeader))

	if !result.HasMatch() {
		b.WriteString("No sampled header resolves to a valid date under either reading.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	best := result.BestMatch()
	fmt.Fprintf(&b, "Date order: %s\n", result.DateOrder)
	fmt.Fprintf(&b, "Best reading: %s\n", best.Format.Name)
	fmt.Fprintf(&b, "Confidence: %.1f%% (%d/%d headers resolved)\n",
		best.Confidence*100, best.MatchCount, result.SampledHeaders)
	fmt.Fprintf(&b, "Parsed as: %s\n\n", best.ParsedTime.Format("2006-01-02 15:04 (Monday)"))

	if result.AmbiguityNote != "" {
		fmt.Fprintf(&b, "Note: %s\n\n", result.AmbiguityNote)
	}

	b.WriteString("--- Configuration snippet (copy to your config file) ---\n\n")
	fmt.Fprintf(&b, "date_order: %s\n\n", result.SuggestedOrder())

	if opts.ShowAll && len(result.Matches) > 1 {
		b.WriteString("--- Alternative readings ---\n")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(&b, "%d. %s (%.1f%% confidence, %d headers)\n",
				i+2, m.Format.Name, m.Confidence*100, m.MatchCount)
			fmt.Fprintf(&b, "   first resolved: %s\n", strings.TrimSpace(m.SampleHeader))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JSONMatch represents a header reading in JSON output.
type JSONMatch struct {
	Name         string    `json:"name"`
	DateOrder    string    `json:"date_order"`
	Confidence   float64   `json:"confidence"`
	MatchCount   int       `json:"match_count"`
	SampleHeader string    `json:"sample_header"`
	ParsedTime   time.Time `json:"parsed_time"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File           string      `json:"file"`
	SampledHeaders int         `json:"sampled_headers"`
	DateOrder      string      `json:"date_order"`
	SuggestedOrder string      `json:"suggested_order"`
	Clock          string      `json:"clock,omitempty"`
	YearDigits     int         `json:"year_digits,omitempty"`
	NarrowSpace    bool        `json:"narrow_space"`
	SampleHeader   string      `json:"sample_header,omitempty"`
	Matches        []JSONMatch `json:"matches"`
	AmbiguityNote  string      `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, chatFile string, opts *DetectOptions) error {
	out := JSONOutput{
		File:           chatFile,
		SampledHeaders: result.SampledHeaders,
		DateOrder:      result.DateOrder,
		SuggestedOrder: string(result.SuggestedOrder()),
		Clock:          result.Clock,
		YearDigits:     result.YearDigits,
		NarrowSpace:    result.NarrowSpace,
		SampleHeader:   result.SampleHeader,
		AmbiguityNote:  result.AmbiguityNote,
		Matches:        make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:         m.Format.Name,
			DateOrder:    string(m.Format.Order),
			Confidence:   m.Confidence,
			MatchCount:   m.MatchCount,
			SampleHeader: m.SampleHeader,
			ParsedTime:   m.ParsedTime,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig writes a config file carrying the detected date order.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, chatFile, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no resolvable date-time headers detected")
	}

	content := generateStarterConfig(chatFile, result)

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(chatFile string, result *detector.DetectionResult) string {
	absChatFile := chatFile
	if abs, err := filepath.Abs(chatFile); err == nil {
		absChatFile = abs
	}
	best := result.BestMatch()

	return fmt.Sprintf(`# chatlens configuration
# Generated by: chatlens detect
# Export: %s
# Detected: %s (%.0f%% of %d headers resolved)

# Header date order: dmy, mdy, or auto to detect it on every run
date_order: %s

# IANA time zone the export's local times are read in
timezone: %s

# Optional word list left out of the common words, one word per line
# stop_words_file: stopwords.txt

# Messages whose text contains this (any case) count as media
media_marker: %q

top_words: %d
top_users: %d
log_level: %s

server:
  addr: %q
  max_upload_bytes: %d
  max_uploads: %d
`, absChatFile,
		best.Format.Name, best.Confidence*100, result.SampledHeaders,
		result.SuggestedOrder(),
		config.DefaultTimezone,
		config.DefaultMediaMarker,
		config.DefaultTopWords,
		config.DefaultTopUsers,
		config.DefaultLogLevel,
		config.DefaultServerAddr,
		config.DefaultMaxUploadBytes,
		config.DefaultMaxUploads)
}
