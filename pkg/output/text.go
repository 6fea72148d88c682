package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ccollicutt/chatlens/pkg/stats"
)

const (
	barWidth   = 30
	labelWidth = 16
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// heatShades maps a cell's share of the heatmap maximum to a glyph.
var heatShades = []string{"·", "░", "▒", "▓", "█"}

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) paint(style lipgloss.Style, s string) string {
	if !f.opts.Color {
		return s
	}
	return style.Render(s)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	top := report.Stats.TopStats
	_, err := fmt.Fprintf(w, "chatlens: %s: %d messages, %d words, %d media, %d links\n",
		report.Summary.User, top.Messages, top.Words, top.Media, top.Links)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	res := report.Stats
	var b strings.Builder

	b.WriteString(f.paint(titleStyle, fmt.Sprintf("=== chatlens report: %s ===", res.User)))
	b.WriteString("\n\n")

	f.section(&b, "Top Statistics")
	f.row(&b, "Messages", fmt.Sprint(res.TopStats.Messages))
	f.row(&b, "Words", fmt.Sprint(res.TopStats.Words))
	f.row(&b, "Media shared", fmt.Sprint(res.TopStats.Media))
	f.row(&b, "Links shared", fmt.Sprint(res.TopStats.Links))
	b.WriteString("\n")

	if len(res.BusiestUsers) > 0 {
		f.section(&b, "Most Busy Users")
		maxUser := 0
		for _, u := range res.BusiestUsers {
			maxUser = max(maxUser, u.Messages)
		}
		for _, u := range res.BusiestUsers {
			f.bar(&b, u.Name, u.Messages, maxUser, fmt.Sprintf("%d (%.2f%%)", u.Messages, u.Percent))
		}
		b.WriteString("\n")
	}

	if len(res.MonthlyTimeline) > 0 {
		f.section(&b, "Monthly Timeline")
		maxMonth := 0
		for _, p := range res.MonthlyTimeline {
			maxMonth = max(maxMonth, p.Messages)
		}
		for _, p := range res.MonthlyTimeline {
			f.bar(&b, p.Label, p.Messages, maxMonth, fmt.Sprint(p.Messages))
		}
		b.WriteString("\n")
	}

	if f.opts.Verbose && len(res.DailyTimeline) > 0 {
		f.section(&b, "Daily Timeline")
		maxDay := 0
		for _, p := range res.DailyTimeline {
			maxDay = max(maxDay, p.Messages)
		}
		for _, p := range res.DailyTimeline {
			f.bar(&b, p.Date, p.Messages, maxDay, fmt.Sprint(p.Messages))
		}
		b.WriteString("\n")
	}

	f.keyCounts(&b, "Most Busy Days", res.WeekActivity)
	f.keyCounts(&b, "Most Busy Months", res.MonthActivity)
	f.heatmap(&b, res.Heatmap)
	f.keyCounts(&b, "Most Common Words", res.CommonWords)
	f.keyCounts(&b, "Emoji", res.Emoji)

	b.WriteString("---\n")
	fmt.Fprintf(&b, "Summary: %d records, %d participants", report.Summary.Records, report.Summary.Participants)
	if report.HasUnresolved() {
		b.WriteString(", ")
		b.WriteString(f.paint(warnStyle, fmt.Sprintf("%d without a resolvable timestamp", report.Summary.Unresolved)))
	}
	b.WriteString("\n")

	if f.opts.Verbose {
		if report.Metadata.Source != "" {
			fmt.Fprintf(&b, "Source: %s\n", report.Metadata.Source)
		}
		if report.Metadata.DateOrder != "" {
			fmt.Fprintf(&b, "Date order: %s\n", report.Metadata.DateOrder)
		}
		if report.Metadata.Timezone != "" {
			fmt.Fprintf(&b, "Timezone: %s\n", report.Metadata.Timezone)
		}
		fmt.Fprintf(&b, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TextFormatter) section(b *strings.Builder, title string) {
	b.WriteString(f.paint(sectionStyle, title))
	b.WriteString("\n")
}

func (f *TextFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", Pad(label, labelWidth), value)
}

func (f *TextFormatter) bar(b *strings.Builder, label string, n, maxN int, value string) {
	fmt.Fprintf(b, "  %s %s %s\n",
		Pad(label, labelWidth),
		f.paint(barStyle, runewidth.FillRight(Bar(n, maxN, barWidth), barWidth)),
		value)
}

func (f *TextFormatter) keyCounts(b *strings.Builder, title string, counts []stats.KeyCount) {
	if len(counts) == 0 {
		return
	}
	f.section(b, title)
	maxN := counts[0].Count
	for _, kc := range counts {
		maxN = max(maxN, kc.Count)
	}
	for _, kc := range counts {
		f.bar(b, kc.Key, kc.Count, maxN, fmt.Sprint(kc.Count))
	}
	b.WriteString("\n")
}

func (f *TextFormatter) heatmap(b *strings.Builder, h stats.Heatmap) {
	if len(h.Days) == 0 {
		return
	}
	f.section(b, "Weekly Activity Map")

	// Column header shows the starting hour of every third bucket.
	var hdr strings.Builder
	for i := range h.Buckets {
		if i%3 == 0 {
			hdr.WriteString(fmt.Sprintf("%-3s", h.Buckets[i][:2]))
		}
	}
	fmt.Fprintf(b, "  %s %s\n", Pad("", 10), f.paint(dimStyle, strings.TrimRight(hdr.String(), " ")))

	peak := h.Max()
	for i, day := range h.Days {
		var row strings.Builder
		for _, v := range h.Cells[i] {
			row.WriteString(HeatGlyph(v, peak))
		}
		fmt.Fprintf(b, "  %s %s\n", Pad(day, 10), f.paint(barStyle, row.String()))
	}
	b.WriteString("\n")
}

// Bar renders n relative to maxN as a bar of at most width cells.
// Any non-zero count gets at least one cell.
func Bar(n, maxN, width int) string {
	if n <= 0 || maxN <= 0 || width <= 0 {
		return ""
	}
	cells := n * width / maxN
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}

// HeatGlyph returns the shade for a heatmap cell.
func HeatGlyph(v, peak int) string {
	if v <= 0 || peak <= 0 {
		return heatShades[0]
	}
	i := 1 + v*(len(heatShades)-2)/peak
	return heatShades[min(i, len(heatShades)-1)]
}

// Pad truncates or right-pads s to exactly width terminal cells, so names
// with wide runes and emoji keep columns aligned.
func Pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
