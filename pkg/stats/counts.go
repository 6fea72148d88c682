package stats

import (
	"math"
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// urlPattern finds URLs with or without a scheme.
var urlPattern = xurls.Relaxed()

// topStatsCollector counts messages, words, media messages and links.
type topStatsCollector struct {
	mediaMarker string
	stats       TopStats
}

func newTopStatsCollector(mediaMarker string) *topStatsCollector {
	return &topStatsCollector{mediaMarker: strings.ToLower(mediaMarker)}
}

func (c *topStatsCollector) Name() string { return "top_stats" }

func (c *topStatsCollector) Process(r *records.Record) {
	c.stats.Messages++
	c.stats.Words += len(strings.Fields(r.Body))
	if c.mediaMarker != "" && containsFold(r.Body, c.mediaMarker) {
		c.stats.Media++
	}
	c.stats.Links += len(urlPattern.FindAllString(r.Body, -1))
}

func (c *topStatsCollector) Finalize(res *Result) {
	res.TopStats = c.stats
}

// busiestUsersCollector ranks authors, notifications included, by number
// of records.
type busiestUsersCollector struct {
	top    int
	counts *counter
}

func newBusiestUsersCollector(top int) *busiestUsersCollector {
	return &busiestUsersCollector{top: top, counts: newCounter()}
}

func (c *busiestUsersCollector) Name() string { return "busiest_users" }

func (c *busiestUsersCollector) Process(r *records.Record) {
	c.counts.add(r.Author)
}

func (c *busiestUsersCollector) Finalize(res *Result) {
	total := c.counts.total()
	users := []UserShare{}
	for _, kc := range c.counts.mostCommon(c.top) {
		users = append(users, UserShare{
			Name:     kc.Key,
			Messages: kc.Count,
			Percent:  percent(kc.Count, total),
		})
	}
	res.BusiestUsers = users
}

// percent returns part/total as a percentage rounded to two decimals.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*10000/float64(total)) / 100
}

// containsFold reports whether s contains the lower-case substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
