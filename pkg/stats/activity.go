package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// weekdays lists day names Monday first.
var weekdays = func() []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = time.Weekday((i + 1) % 7).String()
	}
	return days
}()

var weekdayIndex = func() map[string]int {
	m := make(map[string]int, len(weekdays))
	for i, d := range weekdays {
		m[d] = i
	}
	return m
}()

// weekActivityCollector counts messages per weekday.
type weekActivityCollector struct {
	counts [7]int
}

func (c *weekActivityCollector) Name() string { return "week_activity" }

func (c *weekActivityCollector) Process(r *records.Record) {
	if r.Calendar == nil {
		return
	}
	c.counts[weekdayIndex[r.Calendar.DayName]]++
}

func (c *weekActivityCollector) Finalize(res *Result) {
	days := []KeyCount{}
	for i, n := range c.counts {
		if n > 0 {
			days = append(days, KeyCount{Key: weekdays[i], Count: n})
		}
	}
	slices.SortStableFunc(days, func(a, b KeyCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	res.WeekActivity = days
}

// monthActivityCollector counts messages per month of the year.
type monthActivityCollector struct {
	counts [12]int
}

func (c *monthActivityCollector) Name() string { return "month_activity" }

func (c *monthActivityCollector) Process(r *records.Record) {
	if r.Calendar == nil {
		return
	}
	c.counts[r.Calendar.MonthNumber-1]++
}

func (c *monthActivityCollector) Finalize(res *Result) {
	months := []KeyCount{}
	for i, n := range c.counts {
		if n > 0 {
			months = append(months, KeyCount{Key: time.Month(i + 1).String(), Count: n})
		}
	}
	res.MonthActivity = months
}

// heatmapCollector counts messages per weekday and hour bucket.
type heatmapCollector struct {
	cells   [7][24]int
	present [7]bool
}

func (c *heatmapCollector) Name() string { return "heatmap" }

func (c *heatmapCollector) Process(r *records.Record) {
	if r.Calendar == nil {
		return
	}
	d := weekdayIndex[r.Calendar.DayName]
	c.present[d] = true
	c.cells[d][r.Calendar.Hour]++
}

func (c *heatmapCollector) Finalize(res *Result) {
	h := Heatmap{
		Days:    []string{},
		Buckets: records.HourBuckets(),
		Cells:   [][]int{},
	}
	for d := range c.cells {
		if !c.present[d] {
			continue
		}
		h.Days = append(h.Days, weekdays[d])
		h.Cells = append(h.Cells, slices.Clone(c.cells[d][:]))
	}
	res.Heatmap = h
}
