package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/config"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a chatlens configuration file without parsing any export.

Checks:
  - YAML or TOML syntax
  - date_order, timezone and log_level values
  - Positive top_words, top_users and server limits
  - Stop words file readability (warning only)

Environment overrides (CHATLENS_*) are applied before validation.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	printConfig(out, cfg)
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Date order:   %s\n", cfg.DateOrder)
	fmt.Fprintf(w, "  Timezone:     %s\n", cfg.Timezone)
	fmt.Fprintf(w, "  Media marker: %q\n", cfg.MediaMarker)
	fmt.Fprintf(w, "  Top words:    %d\n", cfg.TopWords)
	fmt.Fprintf(w, "  Top users:    %d\n", cfg.TopUsers)
	fmt.Fprintf(w, "  Log level:    %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "\nServer:\n")
	fmt.Fprintf(w, "  Address:      %s\n", cfg.Server.Addr)
	fmt.Fprintf(w, "  Upload limit: %d bytes\n", cfg.Server.MaxUploadBytes)
	fmt.Fprintf(w, "  Max uploads:  %d\n", cfg.Server.MaxUploads)

	if cfg.StopWordsFile == "" {
		return
	}
	stop, err := stats.LoadStopWordsFile(cfg.StopWordsFile)
	if err != nil {
		fmt.Fprintf(w, "\nWarning: cannot read stop words file: %v\n", err)
		return
	}
	fmt.Fprintf(w, "\nStop words: %d from %s\n", len(stop), cfg.StopWordsFile)
}
