package parser

import (
	"errors"
	"io"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// ErrInvalidUTF8 is returned when the input is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Parser converts chat export text into a record store.
type Parser struct {
	order  DateOrder
	loc    *time.Location
	logger *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithDateOrder sets the order of the day and month header fields.
func WithDateOrder(order DateOrder) Option {
	return func(p *Parser) {
		p.order = order
	}
}

// WithLocation sets the time zone of resolved timestamps.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		p.loc = loc
	}
}

// WithLogger sets the logger used to report unresolved headers.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a parser. By default headers are read day first in UTC.
func New(opts ...Option) *Parser {
	p := &Parser{
		order:  DayFirst,
		loc:    time.UTC,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds a store from text. It never fails: headers that do not
// resolve produce records without a timestamp.
func (p *Parser) Parse(text string) *records.Store {
	resolver := NewResolver(p.order, p.loc)
	sc := NewScanner(text)

	var recs []records.Record
	for {
		seg, err := sc.Next()
		if err == io.EOF {
			break
		}

		ts, wall := resolver.resolve(seg.Header)
		if ts == nil {
			p.logger.Debug("unresolved header",
				zap.String("header", seg.Header),
				zap.Int("offset", seg.Offset),
				zap.String("order", string(resolver.Order())),
			)
		}

		author, body := Decompose(seg.Body)
		recs = append(recs, records.NewRecordAt(len(recs), ts, wall, author, body))
	}

	store := records.NewStore(recs)
	p.logger.Debug("parsed chat export",
		zap.Int("records", store.Len()),
		zap.Int("unresolved", store.Unresolved()),
	)
	return store
}

// ParseBytes validates data as UTF-8 and parses it.
func (p *Parser) ParseBytes(data []byte) (*records.Store, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	return p.Parse(string(data)), nil
}

// Parse builds a store from text with the default parser.
func Parse(text string) *records.Store {
	return New().Parse(text)
}
