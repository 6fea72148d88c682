package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// ErrUnknownUser is returned when the selected user sent no records.
var ErrUnknownUser = errors.New("unknown user")

const (
	// DefaultTopWords is the number of common words reported.
	DefaultTopWords = 20

	// DefaultTopUsers is the number of busiest users reported.
	DefaultTopUsers = 10

	// DefaultMediaMarker is the text that marks a media message.
	DefaultMediaMarker = "media omitted"
)

// cancelCheckInterval is how many records are processed between
// context checks.
const cancelCheckInterval = 1024

// Analyzer computes statistics over a record store.
// An Analyzer holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	stopWords   StopWords
	topWords    int
	topUsers    int
	mediaMarker string
	logger      *zap.Logger
}

// Option configures analyzer behavior.
type Option func(*Analyzer)

// WithStopWords sets the words excluded from common-word counts.
func WithStopWords(s StopWords) Option {
	return func(a *Analyzer) {
		a.stopWords = s
	}
}

// WithTopWords sets how many common words are reported.
func WithTopWords(n int) Option {
	return func(a *Analyzer) {
		a.topWords = n
	}
}

// WithTopUsers sets how many busiest users are reported.
func WithTopUsers(n int) Option {
	return func(a *Analyzer) {
		a.topUsers = n
	}
}

// WithMediaMarker sets the case-insensitive text that marks a media message.
func WithMediaMarker(marker string) Option {
	return func(a *Analyzer) {
		a.mediaMarker = marker
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates an analyzer. With no options the stop-word list is
// empty.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		stopWords:   StopWords{},
		topWords:    DefaultTopWords,
		topUsers:    DefaultTopUsers,
		mediaMarker: DefaultMediaMarker,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsOverall reports whether user selects every author.
func IsOverall(user string) bool {
	return user == "" || user == Overall
}

// collectors creates a fresh set of collectors for one run.
func (a *Analyzer) collectors() []Collector {
	return []Collector{
		newTopStatsCollector(a.mediaMarker),
		newMonthlyTimelineCollector(),
		newDailyTimelineCollector(),
		&weekActivityCollector{},
		&monthActivityCollector{},
		&heatmapCollector{},
		newWordsCollector(a.stopWords, a.topWords),
		newEmojiCollector(),
	}
}

// Analyze computes statistics for user, which is "" or Overall for every
// author. Statistics over an empty store are empty, never an error.
func (a *Analyzer) Analyze(ctx context.Context, store *records.Store, user string) (*Result, error) {
	start := time.Now()

	selected := store
	collectors := a.collectors()
	if IsOverall(user) {
		user = Overall
		collectors = append(collectors, newBusiestUsersCollector(a.topUsers))
	} else {
		if !store.HasAuthor(user) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownUser, user)
		}
		selected = store.ByAuthor(user)
	}

	for i := 0; i < selected.Len(); i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		r := selected.At(i)
		for _, c := range collectors {
			c.Process(&r)
		}
	}

	result := &Result{
		User:       user,
		Unresolved: selected.Unresolved(),
	}
	for _, c := range collectors {
		c.Finalize(result)
	}

	a.logger.Debug("analyzed chat",
		zap.String("user", user),
		zap.Int("records", selected.Len()),
		zap.Int("unresolved", result.Unresolved),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
