package stats

import (
	"slices"
)

// counter tallies keys and remembers the order in which they first appeared.
type counter struct {
	index  map[string]int
	keys   []string
	counts []int
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string) {
	i, ok := c.index[key]
	if !ok {
		i = len(c.keys)
		c.index[key] = i
		c.keys = append(c.keys, key)
		c.counts = append(c.counts, 0)
	}
	c.counts[i]++
}

func (c *counter) get(key string) int {
	if i, ok := c.index[key]; ok {
		return c.counts[i]
	}
	return 0
}

func (c *counter) total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// mostCommon returns up to n keys by descending count. Equal counts keep
// first-appearance order. n <= 0 returns every key.
func (c *counter) mostCommon(n int) []KeyCount {
	out := make([]KeyCount, len(c.keys))
	for i, k := range c.keys {
		out[i] = KeyCount{Key: k, Count: c.counts[i]}
	}
	slices.SortStableFunc(out, func(a, b KeyCount) int {
		return b.Count - a.Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
