// Package stats computes descriptive statistics over a chat record store.
package stats

// Overall selects every author when passed as the user to Analyze.
const Overall = "Overall"

// TopStats holds the headline counters of a selection.
type TopStats struct {
	// Messages is the number of records.
	Messages int `json:"messages" yaml:"messages"`

	// Words is the number of white-space separated tokens across all bodies.
	Words int `json:"words" yaml:"words"`

	// Media is the number of records whose body contains the media marker.
	Media int `json:"media" yaml:"media"`

	// Links is the number of URLs found in message bodies.
	Links int `json:"links" yaml:"links"`
}

// UserShare is one author's share of all records.
type UserShare struct {
	Name     string  `json:"name" yaml:"name"`
	Messages int     `json:"messages" yaml:"messages"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// MonthlyPoint is the message count of one calendar month.
type MonthlyPoint struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`

	// Label reads like "Jan 2024".
	Label    string `json:"label" yaml:"label"`
	Messages int    `json:"messages" yaml:"messages"`
}

// DailyPoint is the message count of one date.
type DailyPoint struct {
	Date     string `json:"date" yaml:"date"`
	Messages int    `json:"messages" yaml:"messages"`
}

// KeyCount is a counted key such as a word, an emoji or a weekday.
type KeyCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Heatmap counts messages per weekday and hour bucket.
type Heatmap struct {
	// Days are the weekdays with at least one message, Monday first.
	Days []string `json:"days" yaml:"days"`

	// Buckets are the 24 hour bucket labels in clock order.
	Buckets []string `json:"buckets" yaml:"buckets"`

	// Cells[i][j] is the count for Days[i] and Buckets[j].
	Cells [][]int `json:"cells" yaml:"cells"`
}

// Max returns the largest cell value.
func (h Heatmap) Max() int {
	m := 0
	for _, row := range h.Cells {
		for _, v := range row {
			m = max(m, v)
		}
	}
	return m
}

// Result is the complete statistics output for one selection.
type Result struct {
	// User is the selected author, or Overall.
	User string `json:"user" yaml:"user"`

	TopStats TopStats `json:"top_stats" yaml:"top_stats"`

	// BusiestUsers is only filled for the Overall selection.
	BusiestUsers []UserShare `json:"busiest_users,omitempty" yaml:"busiest_users,omitempty"`

	MonthlyTimeline []MonthlyPoint `json:"monthly_timeline" yaml:"monthly_timeline"`
	DailyTimeline   []DailyPoint   `json:"daily_timeline" yaml:"daily_timeline"`

	// WeekActivity is sorted by count, busiest day first.
	WeekActivity []KeyCount `json:"week_activity" yaml:"week_activity"`

	// MonthActivity is in calendar order without empty months.
	MonthActivity []KeyCount `json:"month_activity" yaml:"month_activity"`

	Heatmap     Heatmap    `json:"heatmap" yaml:"heatmap"`
	CommonWords []KeyCount `json:"common_words" yaml:"common_words"`
	Emoji       []KeyCount `json:"emoji" yaml:"emoji"`

	// Unresolved is the number of selected records without a timestamp.
	// They count toward TopStats but are absent from every time grouping.
	Unresolved int `json:"unresolved" yaml:"unresolved"`
}
