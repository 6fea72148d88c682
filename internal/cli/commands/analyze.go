package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/output"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Config  string
	User    string
	Output  string
	Verbose bool
	Quiet   bool
	NoColor bool
	Strict  bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <chat.txt>",
		Short: "Report statistics for a chat export",
		Long: `Parse a chat export and report its statistics.

Reports:
  - Message, word, media and link counts
  - Busiest users (overall only)
  - Monthly and daily timelines
  - Busiest weekdays and months, and a weekday by hour heatmap
  - Most common words and emoji

Use --user to restrict the report to one participant.

Exit codes:
  0 - Report written
  1 - Report written, but some headers had no valid timestamp (--strict only)
  2 - Configuration or runtime error

Example:
  chatlens analyze chat.txt
  chatlens analyze --user Alice -o json chat.txt
  chatlens analyze -c chatlens.yaml -v chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	addConfigFlag(cmd, &opts.Config)
	cmd.Flags().StringVarP(&opts.User, "user", "u", stats.Overall, "Participant to report on, or Overall")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include the daily timeline and run metadata")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable styled text output")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit 1 when any header has no valid timestamp")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	chatFile := args[0]
	ctx := commandContext(cmd)
	start := time.Now()

	cfg, _, p, err := setup(cmd, opts.Config)
	if err != nil {
		return err
	}

	// Reject a bad format before doing any work.
	out := cmd.OutOrStdout()
	formatter, err := createFormatter(opts, out)
	if err != nil {
		return err
	}

	parsed, err := p.ParseFile(ctx, chatFile)
	if err != nil {
		return err
	}

	result, err := p.Analyze(ctx, parsed.Store, opts.User)
	if errors.Is(err, stats.ErrUnknownUser) {
		return fmt.Errorf("%w (participants: %s)", err, strings.Join(parsed.Store.Participants(), ", "))
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(parsed.Store, result, output.Metadata{
		Source:     chatFile,
		ConfigFile: opts.Config,
		DateOrder:  string(parsed.Order),
		Timezone:   cfg.Timezone,
		AnalyzedAt: time.Now(),
		Duration:   time.Since(start),
	})

	if err := formatter.Format(ctx, report, out); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.Strict && report.HasUnresolved() {
		ExitCode = 1
	}
	return nil
}

func createFormatter(opts *AnalyzeOptions, out io.Writer) (output.Formatter, error) {
	return output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Color:   !opts.NoColor && isTerminal(out),
	})
}
