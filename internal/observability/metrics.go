package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one run.
type Metrics struct {
	FeedRows          prometheus.Counter
	InvalidMagnitudes prometheus.Counter
	EventsDropped     prometheus.Counter
	MarkersDrawn      *prometheus.CounterVec // labels: color={blue,green,yellow,red}

	FetchDuration  prometheus.Histogram
	RenderDuration prometheus.Histogram

	LastSuccess prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates the run metrics on a private registry. A one-shot
// process has nothing to scrape it, so the registry is exported through
// WriteTextfile instead of an HTTP handler.
func NewMetrics() *Metrics {
	m := &Metrics{
		FeedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "feed_rows_total",
			Help:      "Data rows read from the earthquake feed.",
		}),
		InvalidMagnitudes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "invalid_magnitudes_total",
			Help:      "Rows whose magnitude could not be parsed and was treated as zero.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "events_dropped_total",
			Help:      "Rows discarded for having a non-positive magnitude.",
		}),
		MarkersDrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "markers_drawn_total",
			Help:      "Markers drawn on the map by color bucket.",
		}, []string{"color"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the feed download.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "render_duration_seconds",
			Help:      "Duration of basemap loading, drawing, and PNG encoding.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quakemap",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that wrote an image.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FeedRows,
		m.InvalidMagnitudes,
		m.EventsDropped,
		m.MarkersDrawn,
		m.FetchDuration,
		m.RenderDuration,
		m.LastSuccess,
	)

	return m
}

// Gatherer exposes the run registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
