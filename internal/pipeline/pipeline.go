package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

// Fetcher downloads the raw earthquake feed.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// BasemapLoader reads the static map layers.
type BasemapLoader interface {
	Load(ctx context.Context, coastlineSrc, bordersSrc string) (domain.Basemap, error)
}

// Renderer draws the map and encodes it.
type Renderer interface {
	Render(w io.Writer, basemap domain.Basemap, records []domain.Record, title string) error
}

// FileWriter persists the encoded image.
type FileWriter interface {
	WriteFile(path string, write func(io.Writer) error) error
}

// Sources names the inputs and output of a run.
type Sources struct {
	FeedURL      string
	CoastlineURL string
	BordersURL   string
	OutputPath   string
}

// Summary describes a completed run.
type Summary struct {
	Rows       int
	Qualifying int
	Title      string
	OutputPath string
}

// Pipeline runs fetch, parse, filter/sort, and render once, in that order.
type Pipeline struct {
	fetcher  Fetcher
	basemap  BasemapLoader
	renderer Renderer
	writer   FileWriter
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
}

// New creates a Pipeline with the given stages and observability.
func New(f Fetcher, b BasemapLoader, r Renderer, w FileWriter, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		fetcher:  f,
		basemap:  b,
		renderer: r,
		writer:   w,
		logger:   logger,
		metrics:  metrics,
		clock:    clock,
	}
}

// Run produces one map image. Any stage failure aborts the run and no image
// is written.
func (p *Pipeline) Run(ctx context.Context, src Sources) (Summary, error) {
	start := p.clock.Now()
	body, err := p.fetcher.Get(ctx, src.FeedURL)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch feed: %w", err)
	}
	p.metrics.FetchDuration.Observe(p.clock.Since(start).Seconds())
	p.logger.Info("feed fetched", "url", src.FeedURL, "bytes", len(body))

	feed, err := domain.ParseFeed(bytes.NewReader(body))
	if err != nil {
		return Summary{}, fmt.Errorf("parse feed: %w", err)
	}
	p.metrics.FeedRows.Add(float64(len(feed.Records)))
	p.metrics.InvalidMagnitudes.Add(float64(feed.InvalidMagnitudes))

	qualifying := domain.Qualifying(feed.Records)
	p.metrics.EventsDropped.Add(float64(len(feed.Records) - len(qualifying)))
	p.logger.Info("feed parsed",
		"rows", len(feed.Records),
		"invalid_magnitudes", feed.InvalidMagnitudes,
		"qualifying", len(qualifying),
	)

	// Labels come from feed order; sorting happens afterwards.
	from, to, err := domain.DateRange(qualifying)
	if err != nil {
		return Summary{}, err
	}
	p.logger.Debug("first record", "record", qualifying[0])
	title := domain.Title(from, to)
	sorted := domain.SortByMagnitude(qualifying)

	start = p.clock.Now()
	basemap, err := p.basemap.Load(ctx, src.CoastlineURL, src.BordersURL)
	if err != nil {
		return Summary{}, fmt.Errorf("load basemap: %w", err)
	}
	err = p.writer.WriteFile(src.OutputPath, func(w io.Writer) error {
		return p.renderer.Render(w, basemap, sorted, title)
	})
	if err != nil {
		return Summary{}, fmt.Errorf("render %s: %w", src.OutputPath, err)
	}
	elapsed := p.clock.Since(start)
	p.metrics.RenderDuration.Observe(elapsed.Seconds())

	for _, rec := range sorted {
		p.metrics.MarkersDrawn.WithLabelValues(domain.MarkerFor(rec.Magnitude).Color.String()).Inc()
	}
	p.metrics.LastSuccess.Set(float64(p.clock.Now().Unix()))
	p.logger.Info("map written", "path", src.OutputPath, "title", title, "markers", len(sorted), "duration", elapsed)

	return Summary{
		Rows:       len(feed.Records),
		Qualifying: len(qualifying),
		Title:      title,
		OutputPath: src.OutputPath,
	}, nil
}
