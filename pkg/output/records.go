package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"github.com/ccollicutt/chatlens/pkg/records"
)

const bodyWidth = 60

// GroupCount is the size of one group of records.
type GroupCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// SummarizeGroups reduces groups to their keys and sizes, keeping order.
func SummarizeGroups(groups []records.Group) []GroupCount {
	out := make([]GroupCount, len(groups))
	for i, g := range groups {
		out[i] = GroupCount{Key: g.Key, Count: g.Len()}
	}
	return out
}

// WriteRecords renders a record listing in the named format.
func WriteRecords(w io.Writer, format string, recs []records.Record) error {
	switch format {
	case "json":
		return encodeJSON(w, recs)
	case "yaml", "yml":
		return encodeYAML(w, recs)
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "INDEX\tDATE\tTIME\tAUTHOR\tMESSAGE")
		for _, r := range recs {
			date, clock := "-", "-"
			if r.Calendar != nil {
				date = r.Calendar.Date
				clock = fmt.Sprintf("%02d:%02d", r.Calendar.Hour, r.Calendar.Minute)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Index, date, clock, r.Author, Snippet(r.Body, bodyWidth))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (must be text, json, or yaml)", format)
	}
}

// WriteGroups renders the group sizes of a GroupBy in the named format.
func WriteGroups(w io.Writer, format string, field records.Field, groups []records.Group) error {
	counts := SummarizeGroups(groups)
	switch format {
	case "json":
		return encodeJSON(w, counts)
	case "yaml", "yml":
		return encodeYAML(w, counts)
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\tCOUNT\n", strings.ToUpper(string(field)))
		for _, c := range counts {
			fmt.Fprintf(tw, "%s\t%d\n", c.Key, c.Count)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (must be text, json, or yaml)", format)
	}
}

// Snippet flattens a message body to one line of at most width cells.
func Snippet(body string, width int) string {
	s := strings.Join(strings.Fields(body), " ")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return s
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
