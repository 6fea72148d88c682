package stats

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/ccollicutt/chatlens/pkg/records"
)

type yearMonth struct {
	year, month int
}

// monthlyTimelineCollector counts messages per (year, month).
type monthlyTimelineCollector struct {
	counts map[yearMonth]int
}

func newMonthlyTimelineCollector() *monthlyTimelineCollector {
	return &monthlyTimelineCollector{counts: make(map[yearMonth]int)}
}

func (c *monthlyTimelineCollector) Name() string { return "monthly_timeline" }

func (c *monthlyTimelineCollector) Process(r *records.Record) {
	if r.Calendar == nil {
		return
	}
	c.counts[yearMonth{r.Calendar.Year, r.Calendar.MonthNumber}]++
}

func (c *monthlyTimelineCollector) Finalize(res *Result) {
	points := make([]MonthlyPoint, 0, len(c.counts))
	for ym, n := range c.counts {
		points = append(points, MonthlyPoint{
			Year:     ym.year,
			Month:    ym.month,
			Label:    monthLabel(ym.year, ym.month),
			Messages: n,
		})
	}
	slices.SortFunc(points, func(a, b MonthlyPoint) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Month, b.Month))
	})
	res.MonthlyTimeline = points
}

// monthLabel formats a month as "Jan 2024".
func monthLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String()[:3], year)
}

// dailyTimelineCollector counts messages per calendar date.
type dailyTimelineCollector struct {
	counts map[string]int
}

func newDailyTimelineCollector() *dailyTimelineCollector {
	return &dailyTimelineCollector{counts: make(map[string]int)}
}

func (c *dailyTimelineCollector) Name() string { return "daily_timeline" }

func (c *dailyTimelineCollector) Process(r *records.Record) {
	if r.Calendar == nil {
		return
	}
	c.counts[r.Calendar.Date]++
}

func (c *dailyTimelineCollector) Finalize(res *Result) {
	points := make([]DailyPoint, 0, len(c.counts))
	for date, n := range c.counts {
		points = append(points, DailyPoint{Date: date, Messages: n})
	}
	// DateLayout sorts lexically in date order.
	slices.SortFunc(points, func(a, b DailyPoint) int {
		return cmp.Compare(a.Date, b.Date)
	})
	res.DailyTimeline = points
}
