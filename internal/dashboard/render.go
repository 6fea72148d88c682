package dashboard

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/ccollicutt/chatlens/pkg/output"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

const (
	labelWidth = 16
	barWidth   = 40
)

func renderTopStats(res *stats.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]\n\n", tview.Escape(res.User))
	line := func(label string, v int) {
		fmt.Fprintf(&b, "  [gray]%s[-] [white::b]%d[-::-]\n", output.Pad(label, labelWidth), v)
	}
	line("Messages", res.TopStats.Messages)
	line("Words", res.TopStats.Words)
	line("Media shared", res.TopStats.Media)
	line("Links shared", res.TopStats.Links)
	if res.Unresolved > 0 {
		fmt.Fprintf(&b, "\n  [orange]%d messages have a timestamp that could not be resolved[-]\n", res.Unresolved)
	}

	if len(res.BusiestUsers) > 0 {
		b.WriteString("\n[::b]Most Busy Users[::-]\n")
		peak := 0
		for _, u := range res.BusiestUsers {
			peak = max(peak, u.Messages)
		}
		for _, u := range res.BusiestUsers {
			bar(&b, u.Name, u.Messages, peak, fmt.Sprintf("%d (%.2f%%)", u.Messages, u.Percent))
		}
	}
	return b.String()
}

func renderTimelines(res *stats.Result) string {
	var b strings.Builder
	b.WriteString("[::b]Monthly Timeline[::-]\n")
	peak := 0
	for _, p := range res.MonthlyTimeline {
		peak = max(peak, p.Messages)
	}
	for _, p := range res.MonthlyTimeline {
		bar(&b, p.Label, p.Messages, peak, fmt.Sprint(p.Messages))
	}

	b.WriteString("\n[::b]Daily Timeline[::-]\n")
	peak = 0
	for _, p := range res.DailyTimeline {
		peak = max(peak, p.Messages)
	}
	for _, p := range res.DailyTimeline {
		bar(&b, p.Date, p.Messages, peak, fmt.Sprint(p.Messages))
	}
	return b.String()
}

func renderActivity(res *stats.Result) string {
	var b strings.Builder
	keyCounts(&b, "Most Busy Days", res.WeekActivity)
	b.WriteString("\n")
	keyCounts(&b, "Most Busy Months", res.MonthActivity)
	return b.String()
}

func renderHeatmap(res *stats.Result) string {
	h := res.Heatmap
	var b strings.Builder
	b.WriteString("[::b]Weekly Activity Map[::-]\n\n")
	if len(h.Days) == 0 {
		b.WriteString("  [gray]no timestamped messages[-]\n")
		return b.String()
	}

	b.WriteString("  " + output.Pad("", 10) + " [gray]")
	for i := range h.Buckets {
		if i%3 == 0 {
			fmt.Fprintf(&b, "%-3s", h.Buckets[i][:2])
		}
	}
	b.WriteString("[-]\n")

	peak := h.Max()
	for i, day := range h.Days {
		b.WriteString("  " + output.Pad(day, 10) + " [green]")
		for _, v := range h.Cells[i] {
			b.WriteString(output.HeatGlyph(v, peak))
		}
		b.WriteString("[-]\n")
	}
	fmt.Fprintf(&b, "\n  [gray]busiest cell: %d messages[-]\n", peak)
	return b.String()
}

func renderWords(res *stats.Result) string {
	var b strings.Builder
	keyCounts(&b, "Most Common Words", res.CommonWords)
	return b.String()
}

func renderEmoji(res *stats.Result) string {
	var b strings.Builder
	keyCounts(&b, "Emoji", res.Emoji)
	return b.String()
}

func keyCounts(b *strings.Builder, title string, counts []stats.KeyCount) {
	fmt.Fprintf(b, "[::b]%s[::-]\n", title)
	if len(counts) == 0 {
		b.WriteString("  [gray]none[-]\n")
		return
	}
	peak := 0
	for _, kc := range counts {
		peak = max(peak, kc.Count)
	}
	for _, kc := range counts {
		bar(b, kc.Key, kc.Count, peak, fmt.Sprint(kc.Count))
	}
}

func bar(b *strings.Builder, label string, n, peak int, value string) {
	fmt.Fprintf(b, "  %s [green]%s[-] %s\n",
		tview.Escape(output.Pad(label, labelWidth)),
		output.Pad(output.Bar(n, peak, barWidth), barWidth),
		value)
}
