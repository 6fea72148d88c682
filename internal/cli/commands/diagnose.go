package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/config"
	"github.com/ccollicutt/chatlens/pkg/detector"
	"github.com/ccollicutt/chatlens/pkg/parser"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// maxListedHeaders bounds the unresolved headers printed in detail.
const maxListedHeaders = 10

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Config  string
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <chat.txt>",
		Short: "Diagnose why an export parses badly",
		Long: `Diagnose common problems with a chat export and its configuration.

This command checks:
- The export file and its encoding
- The configuration file, if one is given
- Whether any date-time headers are found
- Whether the configured date order fits the headers
- Which headers have no valid date or time, and why

Example:
  chatlens diagnose chat.txt
  chatlens diagnose -v -c chatlens.yaml chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(commandContext(cmd), cmd.OutOrStdout(), args[0], opts)
		},
	}

	addConfigFlag(cmd, &opts.Config)
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, chatFile string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	data, result := checkExportFile(chatFile)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	cfg, result := checkConfig(ctx, opts.Config)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	result = checkEncoding(data)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	text := string(data)
	detection := detector.New(detector.WithSampleSize(len(text))).Detect(text)
	result = checkHeaders(detection, opts)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	order, auto := cfg.ParserOrder()
	if auto {
		order = detection.SuggestedOrder()
	}
	results = append(results, checkDateOrder(detection, cfg, order))
	results = append(results, checkUnresolved(text, order, cfg, opts))
	results = append(results, checkStopWords(cfg)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkExportFile(path string) ([]byte, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Chat Export",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Chat export not found: %s", path)
		result.Suggests = []string{"Check the file path is correct"}
		return nil, result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access chat export: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return nil, result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{"Unzip the export and pass the .txt file inside it"}
		return nil, result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Chat export is empty"
		return nil, result
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided chat export path is expected
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read chat export: %v", err)
		return nil, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return data, result
}

func checkConfig(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Configuration",
	}

	cfg, err := config.LoadOrDefault(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		result.Suggests = []string{
			"Run 'chatlens validate " + path + "' for details",
			"Use 'chatlens detect <chat.txt> --write-config chatlens.yaml' to generate a starter config",
		}
		return nil, result
	}

	result.Status = "ok"
	if path == "" {
		result.Message = "No config file given, using defaults"
	} else {
		result.Message = "Config file loaded successfully"
	}
	result.Details = []string{
		fmt.Sprintf("Date order: %s", cfg.DateOrder),
		fmt.Sprintf("Timezone: %s", cfg.Timezone),
	}
	return cfg, result
}

func checkEncoding(data []byte) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Encoding",
	}

	if !utf8.Valid(data) {
		result.Status = "error"
		result.Message = "Chat export is not valid UTF-8"
		result.Suggests = []string{
			"Re-export the chat, or convert the file to UTF-8",
		}
		return result
	}

	result.Status = "ok"
	result.Message = "Valid UTF-8"
	if bytes.HasPrefix(data, utf8BOM) {
		result.Details = []string{"Starts with a byte-order mark (ignored)"}
	}
	return result
}

func checkHeaders(detection *detector.DetectionResult, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Date-Time Headers",
	}

	if detection.SampledHeaders == 0 {
		result.Status = "error"
		result.Message = "No date-time headers found"
		result.Suggests = []string{
			`Headers look like "31/12/23, 23:59 - " or "12/31/23, 11:59 PM - "`,
			"Exports from the iPhone app use a different layout and are not supported",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found %d headers (%s clock)", detection.SampledHeaders, detection.Clock)
	if opts.Verbose {
		result.Details = []string{
			"First header: " + truncate(strings.TrimSpace(detection.SampleHeader), 80),
		}
		if detection.NarrowSpace {
			result.Details = append(result.Details, "Uses a narrow no-break space before AM/PM")
		}
	}
	return result
}

func checkDateOrder(detection *detector.DetectionResult, cfg *config.Config, order parser.DateOrder) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Date Order",
	}

	resolved := resolvedUnder(detection, order)
	best := detection.BestMatch()

	switch {
	case best == nil:
		result.Status = "warning"
		result.Message = "No header resolves to a valid date under either order"
	case best.Format.Order != order && best.MatchCount > resolved:
		result.Status = "warning"
		result.Message = fmt.Sprintf("Configured %s resolves %d headers, %s resolves %d",
			order, resolved, best.Format.Order, best.MatchCount)
		result.Suggests = []string{
			fmt.Sprintf("Set date_order: %s (or auto) in the config", best.Format.Order),
		}
	case detection.DateOrder == detector.OrderAmbiguous && cfg.DateOrder != config.DateOrderAuto:
		result.Status = "ok"
		result.Message = fmt.Sprintf("Using %s; the headers fit both orders", order)
		result.Details = []string{
			"No day in the sampled headers is above 12, so the order cannot be told apart",
		}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("Using %s (%d/%d headers resolve)", order, resolved, detection.SampledHeaders)
	}
	return result
}

func resolvedUnder(detection *detector.DetectionResult, order parser.DateOrder) int {
	for _, m := range detection.Matches {
		if m.Format.Order == order {
			return m.MatchCount
		}
	}
	return 0
}

// checkUnresolved lists the headers that produce a record without a timestamp.
func checkUnresolved(text string, order parser.DateOrder, cfg *config.Config, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Unresolved Headers",
	}

	resolver := parser.NewResolver(order, cfg.Location())
	var failures []string
	total := 0

	sc := parser.NewScanner(text)
	for {
		seg, err := sc.Next()
		if err == io.EOF {
			break
		}
		total++
		if _, err := resolver.Parse(seg.Header); err != nil {
			failures = append(failures, fmt.Sprintf("line %d: %s (%s)",
				lineOf(text, seg.Offset), strings.TrimSpace(seg.Header), reason(err)))
		}
	}

	if len(failures) == 0 {
		result.Status = "ok"
		result.Message = fmt.Sprintf("All %d headers have a valid date and time", total)
		return result
	}

	result.Status = "warning"
	result.Message = fmt.Sprintf("%d of %d headers have no valid date or time; their messages are kept but left out of timelines",
		len(failures), total)
	listed := failures
	if !opts.Verbose && len(listed) > maxListedHeaders {
		listed = listed[:maxListedHeaders]
	}
	result.Details = listed
	if len(listed) < len(failures) {
		result.Details = append(result.Details, fmt.Sprintf("... and %d more (use -v to list all)", len(failures)-len(listed)))
	}
	result.Suggests = []string{"Try 'chatlens detect' to check the date order"}
	return result
}

func reason(err error) string {
	if errors.Is(err, parser.ErrFieldRange) {
		return strings.TrimPrefix(err.Error(), parser.ErrFieldRange.Error()+": ")
	}
	return err.Error()
}

func lineOf(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

func checkStopWords(cfg *config.Config) []DiagnosticResult {
	if cfg.StopWordsFile == "" {
		return nil
	}

	result := DiagnosticResult{
		Check: "Stop Words",
	}
	stop, err := stats.LoadStopWordsFile(cfg.StopWordsFile)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read stop words file: %v", err)
		result.Suggests = []string{"Fix stop_words_file or remove it from the config"}
		return []DiagnosticResult{result}
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Loaded %d stop words from %s", len(stop), cfg.StopWordsFile)
	return []DiagnosticResult{result}
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== chatlens Export Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running analysis.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nThe export is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nThe export looks good!")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
