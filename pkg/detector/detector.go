// Package detector sniffs the header format of a chat export: which of the
// two date fields is the day, 12 or 24 hour clock, and year width.
package detector

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/ccollicutt/chatlens/pkg/parser"
)

// Clock styles.
const (
	Clock12h   = "12h"
	Clock24h   = "24h"
	ClockMixed = "mixed"
)

// OrderAmbiguous is reported when the sampled headers resolve equally well
// day first and month first.
const OrderAmbiguous = "ambiguous"

// DetectionResult holds the result of analyzing a chat export.
type DetectionResult struct {
	Matches        []FormatMatch // Formats that resolved at least one header, best first
	SampledHeaders int           // Number of headers inspected
	DateOrder      string        // "dmy", "mdy", "ambiguous", or "" when no headers were found
	Clock          string        // Clock12h, Clock24h or ClockMixed
	YearDigits     int           // 2 or 4; 0 when mixed or unknown
	NarrowSpace    bool          // True if any meridiem is preceded by U+202F
	SampleHeader   string        // First header seen
	AmbiguityNote  string        // Warning about date ordering if applicable
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format       *HeaderFormat
	Confidence   float64   // 0.0 to 1.0 (share of sampled headers resolved)
	MatchCount   int       // Number of headers resolved
	SampleHeader string    // First header that resolved
	ParsedTime   time.Time // Resolved time of SampleHeader
}

// Detector inspects chat export headers.
type Detector struct {
	formats    []*HeaderFormat
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of headers to sample (default 500).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 500,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes the chat export at path.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	// #nosec G304 - path is provided by user via CLI
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return d.DetectFromReader(ctx, f)
}

// DetectFromReader analyzes a chat export read from r.
func (d *Detector) DetectFromReader(ctx context.Context, r io.Reader) (*DetectionResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading chat export: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Detect(string(data)), nil
}

// Detect analyzes the headers of text.
func (d *Detector) Detect(text string) *DetectionResult {
	result := &DetectionResult{}

	type formatStats struct {
		format       *HeaderFormat
		resolver     *parser.Resolver
		matchCount   int
		sampleHeader string
		parsedTime   time.Time
	}
	stats := make([]*formatStats, len(d.formats))
	for i, f := range d.formats {
		stats[i] = &formatStats{format: f, resolver: parser.NewResolver(f.Order, time.UTC)}
	}

	var withMeridiem, yearWidths int
	yearDigits := -1

	sc := parser.NewScanner(text)
	for result.SampledHeaders < d.sampleSize {
		seg, err := sc.Next()
		if err == io.EOF {
			break
		}
		fields, err := parser.ParseHeader(seg.Header)
		if err != nil {
			continue
		}
		result.SampledHeaders++
		if result.SampleHeader == "" {
			result.SampleHeader = seg.Header
		}

		if fields.Meridiem != "" {
			withMeridiem++
		}
		if fields.NarrowSpace {
			result.NarrowSpace = true
		}
		if yearDigits == -1 {
			yearDigits = len(fields.Year)
		} else if yearDigits != len(fields.Year) {
			yearWidths++
		}

		for _, s := range stats {
			t, err := s.resolver.FromFields(fields)
			if err != nil {
				continue
			}
			if s.matchCount == 0 {
				s.sampleHeader = seg.Header
				s.parsedTime = t
			}
			s.matchCount++
		}
	}

	if result.SampledHeaders == 0 {
		return result
	}

	switch withMeridiem {
	case 0:
		result.Clock = Clock24h
	case result.SampledHeaders:
		result.Clock = Clock12h
	default:
		result.Clock = ClockMixed
	}
	if yearWidths == 0 && (yearDigits == 2 || yearDigits == 4) {
		result.YearDigits = yearDigits
	}

	for _, s := range stats {
		if s.matchCount == 0 {
			continue
		}
		result.Matches = append(result.Matches, FormatMatch{
			Format:       s.format,
			Confidence:   float64(s.matchCount) / float64(result.SampledHeaders),
			MatchCount:   s.matchCount,
			SampleHeader: s.sampleHeader,
			ParsedTime:   s.parsedTime,
		})
	}

	// Stable so that equal confidence keeps the default format order.
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Confidence > result.Matches[j].Confidence
	})

	switch {
	case len(result.Matches) == 0:
		result.DateOrder = OrderAmbiguous
	case len(result.Matches) == 1 || result.Matches[0].MatchCount > result.Matches[1].MatchCount:
		result.DateOrder = string(result.Matches[0].Format.Order)
	default:
		result.DateOrder = OrderAmbiguous
	}

	if result.DateOrder == OrderAmbiguous {
		result.AmbiguityNote = "Headers resolve equally well as D/M/Y and M/D/Y. " +
			"Day first is assumed; set date_order: mdy in the config if the export is month first."
	}

	return result
}

// SuggestedOrder returns the date order to parse with. Ambiguous or empty
// results fall back to day first.
func (r *DetectionResult) SuggestedOrder() parser.DateOrder {
	if o := parser.DateOrder(r.DateOrder); o.Valid() {
		return o
	}
	return parser.DayFirst
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
