// Package cli provides the command-line interface for chatlens.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return ExecuteArgs(NewRootCommand(), os.Args[1:])
}

// ExecuteArgs runs rootCmd with args and returns the exit code.
func ExecuteArgs(rootCmd *cobra.Command, args []string) int {
	commands.ExitCode = 0
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatlens",
		Short: "Statistics for exported chat histories",
		Long: `chatlens parses the plain-text export of a group or personal chat and
reports who talks, when, and about what.

It produces:
  - Message, word, media and link counts per user
  - Monthly and daily timelines, busiest weekdays and months
  - A weekday by hour activity heatmap
  - Most common words and emoji

Reports are printed as text, JSON or YAML, browsed in a terminal dashboard,
or served over HTTP for uploaded exports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewRecordsCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewDashboardCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
