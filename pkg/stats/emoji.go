package stats

import (
	"github.com/forPelevin/gomoji"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// emojiCollector counts every emoji occurrence. Multi-rune sequences such as
// flags, skin tones and ZWJ families count as one emoji.
type emojiCollector struct {
	counts *counter
}

func newEmojiCollector() *emojiCollector {
	return &emojiCollector{counts: newCounter()}
}

func (c *emojiCollector) Name() string { return "emoji" }

func (c *emojiCollector) Process(r *records.Record) {
	for _, e := range gomoji.CollectAll(r.Body) {
		c.counts.add(e.Character)
	}
}

func (c *emojiCollector) Finalize(res *Result) {
	res.Emoji = c.counts.mostCommon(0)
}
