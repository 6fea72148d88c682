package stats

import (
	"regexp"
	"strings"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// nonWord matches every rune that is neither a word character nor space.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// omittedMarker excludes media and deleted-message placeholders from word counts.
const omittedMarker = "omitted"

// wordsCollector counts words of human messages, minus stop words.
type wordsCollector struct {
	stop   StopWords
	top    int
	counts *counter
}

func newWordsCollector(stop StopWords, top int) *wordsCollector {
	return &wordsCollector{stop: stop, top: top, counts: newCounter()}
}

func (c *wordsCollector) Name() string { return "common_words" }

func (c *wordsCollector) Process(r *records.Record) {
	if r.IsNotification() || containsFold(r.Body, omittedMarker) {
		return
	}
	for _, w := range Words(r.Body) {
		if !c.stop.Contains(w) {
			c.counts.add(w)
		}
	}
}

func (c *wordsCollector) Finalize(res *Result) {
	res.CommonWords = c.counts.mostCommon(c.top)
}

// Words normalizes a message body into lower-case words with punctuation
// and symbols removed.
func Words(body string) []string {
	return strings.Fields(strings.ToLower(nonWord.ReplaceAllString(body, "")))
}
