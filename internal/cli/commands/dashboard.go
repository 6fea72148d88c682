package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/internal/dashboard"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// DashboardOptions holds command-line options for the dashboard command.
type DashboardOptions struct {
	Config string
	User   string
}

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand() *cobra.Command {
	opts := &DashboardOptions{}

	cmd := &cobra.Command{
		Use:   "dashboard <chat.txt>",
		Short: "Browse the statistics of a chat export in the terminal",
		Long: `Open an interactive terminal dashboard for a chat export.

The sidebar lists Overall and every participant. Selecting an entry
recomputes every page for that user.

Keys:
  1-7   Top Stats, Timelines, Activity, Heatmap, Words, Emoji, Raw Records
  Tab   Move focus between the sidebar and the page
  q     Quit

Example:
  chatlens dashboard chat.txt
  chatlens dashboard --user Alice chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, args, opts)
		},
	}

	addConfigFlag(cmd, &opts.Config)
	cmd.Flags().StringVarP(&opts.User, "user", "u", stats.Overall, "User selected on start")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string, opts *DashboardOptions) error {
	chatFile := args[0]
	ctx := commandContext(cmd)

	_, _, p, err := setup(cmd, opts.Config)
	if err != nil {
		return err
	}

	parsed, err := p.ParseFile(ctx, chatFile)
	if err != nil {
		return err
	}

	// No logger: the terminal belongs to the dashboard while it runs.
	d, err := dashboard.New(ctx, parsed.Store, p.Analyzer(), dashboard.Options{
		Title: filepath.Base(chatFile),
	})
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}
	if !stats.IsOverall(opts.User) {
		if err := d.Select(ctx, opts.User); err != nil {
			return err
		}
	}

	return d.Run()
}
