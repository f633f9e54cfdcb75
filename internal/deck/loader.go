package deck

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arcanaland/methuselah/internal/card"
)

// DefaultMaxSourceSize caps how much of a source is read. Larger sources
// are rejected rather than truncated.
const DefaultMaxSourceSize = 8 << 20

// Loader fills a Deck from a source, falling back to the sample deck when
// the source is missing, unreadable or empty.
type Loader struct {
	source   Source
	resolver Resolver
	logger   *zap.Logger
	maxSize  int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithSource sets where deck identifiers are opened. Default: NewAutoSource.
func WithSource(s Source) Option {
	return func(l *Loader) { l.source = s }
}

// WithResolver sets the card database used by structured exports.
func WithResolver(r Resolver) Option {
	return func(l *Loader) { l.resolver = r }
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithMaxSourceSize sets the largest accepted source, in bytes.
func WithMaxSourceSize(n int64) Option {
	return func(l *Loader) { l.maxSize = n }
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.source == nil {
		l.source = NewAutoSource()
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	if l.maxSize <= 0 {
		l.maxSize = DefaultMaxSourceSize
	}
	return l
}

// LoadResult describes the outcome of Load.
type LoadResult struct {
	Source   string       // Identifier that was requested
	Fallback bool         // True when the sample deck was loaded instead
	Reason   error        // Why the fallback happened, nil otherwise
	Report   *ParseReport // Nil when nothing was parsed
}

// Load replaces the content of d with the deck named by id. An empty id
// loads the sample deck. Content problems never fail the call: the sample
// deck is loaded and the result says why.
func (l *Loader) Load(ctx context.Context, d *Deck, id string) *LoadResult {
	result := &LoadResult{Source: id}
	if id == "" {
		l.fallback(d, result, nil)
		return result
	}

	report, cards, info, err := l.Parse(ctx, id)
	result.Report = report
	if err != nil {
		l.fallback(d, result, err)
		return result
	}

	d.Replace(cards, info)
	l.logger.Debug("Deck loaded",
		zap.String("source", id),
		zap.String("format", string(report.Format)),
		zap.Int("cards", len(cards)))
	return result
}

// Parse reads and parses id without touching any deck. The error wraps
// ErrSourceUnavailable or ErrEmptyResult for the fallback cases.
func (l *Loader) Parse(ctx context.Context, id string) (*ParseReport, []card.Card, Info, error) {
	data, err := l.read(ctx, id)
	if err != nil {
		return nil, nil, Info{}, err
	}

	var (
		report *ParseReport
		cards  []card.Card
		info   Info
	)
	switch DetectFormat(data) {
	case FormatExport:
		report, cards, info, err = ParseExport(ctx, bytes.NewReader(data), l.resolver, l.logger)
	default:
		report, cards, err = ParseText(bytes.NewReader(data), l.logger)
	}
	if err != nil {
		return report, nil, Info{}, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, id, err)
	}
	if report.Empty() {
		return report, nil, Info{}, fmt.Errorf("%w: %s", ErrEmptyResult, id)
	}
	return report, cards, info, nil
}

func (l *Loader) read(ctx context.Context, id string) ([]byte, error) {
	rc, err := l.source.Open(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, id, err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrSourceUnavailable, id, l.maxSize)
	}
	return data, nil
}

func (l *Loader) fallback(d *Deck, result *LoadResult, reason error) {
	d.LoadSampleDeck()
	result.Fallback = true
	result.Reason = reason
	if reason != nil {
		l.logger.Info("Failed to load deck, loading sample deck instead",
			zap.String("source", result.Source),
			zap.Error(reason))
	}
}
