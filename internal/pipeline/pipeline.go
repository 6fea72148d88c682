// Package pipeline wires configuration into the parser, the header detector
// and the statistics analyzer, so every surface parses and analyzes exports
// the same way.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ccollicutt/chatlens/pkg/config"
	"github.com/ccollicutt/chatlens/pkg/detector"
	"github.com/ccollicutt/chatlens/pkg/parser"
	"github.com/ccollicutt/chatlens/pkg/records"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// Parsed is a parsed chat export.
type Parsed struct {
	Store *records.Store

	// Order is the date order the headers were resolved with.
	Order parser.DateOrder

	// Detection is set when the order was chosen by the header detector.
	Detection *detector.DetectionResult
}

// Pipeline parses and analyzes chat exports according to a Config.
// It is safe for concurrent use.
type Pipeline struct {
	cfg      *config.Config
	logger   *zap.Logger
	analyzer *stats.Analyzer
	detector *detector.Detector
}

// New builds a pipeline, loading the stop words file if one is configured.
func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []stats.Option{
		stats.WithTopWords(cfg.TopWords),
		stats.WithTopUsers(cfg.TopUsers),
		stats.WithMediaMarker(cfg.MediaMarker),
		stats.WithLogger(logger.Named("stats")),
	}
	if cfg.StopWordsFile != "" {
		stop, err := stats.LoadStopWordsFile(cfg.StopWordsFile)
		if err != nil {
			return nil, fmt.Errorf("loading stop words: %w", err)
		}
		opts = append(opts, stats.WithStopWords(stop))
	}

	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		analyzer: stats.NewAnalyzer(opts...),
		detector: detector.New(),
	}, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// Analyzer returns the statistics analyzer.
func (p *Pipeline) Analyzer() *stats.Analyzer {
	return p.analyzer
}

// ParseFile reads and parses the chat export at path.
func (p *Pipeline) ParseFile(ctx context.Context, path string) (*Parsed, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided chat export path is expected
	if err != nil {
		return nil, fmt.Errorf("opening chat export %s: %w", path, err)
	}
	defer f.Close()

	parsed, err := p.ParseReader(ctx, f, "")
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return parsed, nil
}

// ParseReader reads an export from r. orderOverride, when non-empty,
// replaces the configured date_order for this export.
func (p *Pipeline) ParseReader(ctx context.Context, r io.Reader, orderOverride string) (*Parsed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading chat export: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.ParseBytes(data, orderOverride)
}

// ParseBytes parses an in-memory export.
func (p *Pipeline) ParseBytes(data []byte, orderOverride string) (*Parsed, error) {
	dateOrder := p.cfg.DateOrder
	if orderOverride != "" {
		dateOrder = orderOverride
	}

	parsed := &Parsed{}
	switch dateOrder {
	case config.DateOrderAuto:
		parsed.Detection = p.detector.Detect(string(data))
		parsed.Order = parsed.Detection.SuggestedOrder()
		p.logger.Debug("detected date order",
			zap.String("detected", parsed.Detection.DateOrder),
			zap.String("using", string(parsed.Order)),
			zap.Int("sampled", parsed.Detection.SampledHeaders),
		)
	default:
		parsed.Order = parser.DateOrder(dateOrder)
		if !parsed.Order.Valid() {
			return nil, fmt.Errorf("invalid date order %q (must be dmy, mdy, or auto)", dateOrder)
		}
	}

	ps := parser.New(
		parser.WithDateOrder(parsed.Order),
		parser.WithLocation(p.cfg.Location()),
		parser.WithLogger(p.logger.Named("parser")),
	)
	store, err := ps.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	parsed.Store = store

	p.logger.Info("parsed chat export",
		zap.Int("records", store.Len()),
		zap.Int("participants", len(store.Participants())),
		zap.Int("unresolved", store.Unresolved()),
	)
	return parsed, nil
}

// Analyze computes statistics for user over a parsed store.
func (p *Pipeline) Analyze(ctx context.Context, store *records.Store, user string) (*stats.Result, error) {
	return p.analyzer.Analyze(ctx, store, user)
}
