package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/output"
	"github.com/ccollicutt/chatlens/pkg/records"
)

// RecordsOptions holds command-line options for the records command.
type RecordsOptions struct {
	Config  string
	Author  string
	GroupBy string
	Output  string
	Limit   int
}

// NewRecordsCommand creates the records command.
func NewRecordsCommand() *cobra.Command {
	opts := &RecordsOptions{}

	cmd := &cobra.Command{
		Use:   "records <chat.txt>",
		Short: "List the parsed records of a chat export",
		Long: `Parse a chat export and list its records, or count them per group.

Records without a valid timestamp are listed with "-" in place of the date
and time, and are left out of every group except author.

Group fields:
  author, date, year, month_number, month_name, year_month,
  day, day_name, hour, minute, hour_bucket

Example:
  chatlens records chat.txt
  chatlens records --author Alice --limit 20 chat.txt
  chatlens records --group-by day_name -o json chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(cmd, args, opts)
		},
	}

	addConfigFlag(cmd, &opts.Config)
	cmd.Flags().StringVarP(&opts.Author, "author", "a", "", "Only records sent by this author")
	cmd.Flags().StringVarP(&opts.GroupBy, "group-by", "g", "", "Count records per value of a field")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Show at most n records (0 for all)")

	return cmd
}

func runRecords(cmd *cobra.Command, args []string, opts *RecordsOptions) error {
	ctx := commandContext(cmd)

	var field records.Field
	if opts.GroupBy != "" {
		f, err := records.ParseField(opts.GroupBy)
		if err != nil {
			return err
		}
		field = f
	}

	_, _, p, err := setup(cmd, opts.Config)
	if err != nil {
		return err
	}

	parsed, err := p.ParseFile(ctx, args[0])
	if err != nil {
		return err
	}

	store := parsed.Store
	if opts.Author != "" {
		if !store.HasAuthor(opts.Author) {
			return fmt.Errorf("unknown author %q", opts.Author)
		}
		store = store.ByAuthor(opts.Author)
	}

	out := cmd.OutOrStdout()
	if field != "" {
		return output.WriteGroups(out, opts.Output, field, store.GroupBy(field))
	}

	recs := store.All()
	if opts.Limit > 0 && len(recs) > opts.Limit {
		recs = recs[:opts.Limit]
	}
	return output.WriteRecords(out, opts.Output, recs)
}
