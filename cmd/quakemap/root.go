package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-map/internal/adapter/feed"
	"github.com/couchcryptid/quake-map/internal/adapter/imagefile"
	"github.com/couchcryptid/quake-map/internal/adapter/naturalearth"
	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/couchcryptid/quake-map/internal/pipeline"
	"github.com/couchcryptid/quake-map/internal/render"
)

func newRootCmd() *cobra.Command {
	var feedURL, outputPath string

	cmd := &cobra.Command{
		Use:   "quakemap",
		Short: "Plot recent USGS earthquakes on a world map",
		Long: `quakemap downloads the USGS earthquake summary feed, keeps events with a
positive magnitude, and writes a PNG world map with one marker per event.

Markers are sized by magnitude and colored blue (<1), green (<3),
yellow (<5), or red (>=5). Stronger events are drawn first so weaker
ones stay visible on top.

Settings are read from the environment (FEED_URL, OUTPUT_PATH, ...);
--url and --out override the feed URL and output path.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Process()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("url") {
				cfg.FeedURL = feedURL
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputPath = outputPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&feedURL, "url", "u", "", "earthquake CSV feed URL (overrides FEED_URL)")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "output PNG path (overrides OUTPUT_PATH)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	renderer, err := render.New(render.DefaultOptions())
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	client := feed.NewClient(cfg.FetchTimeout, logger)
	p := pipeline.New(
		client,
		naturalearth.NewLoader(client, naturalearth.DefaultMinAreaKm2, logger),
		renderer,
		imagefile.NewWriter(logger),
		logger,
		metrics,
		clockwork.NewRealClock(),
	)

	_, runErr := p.Run(ctx, pipeline.Sources{
		FeedURL:      cfg.FeedURL,
		CoastlineURL: cfg.CoastlineURL,
		BordersURL:   cfg.BordersURL,
		OutputPath:   cfg.OutputPath,
	})
	if runErr != nil {
		logger.Error("run failed", "error", runErr)
	}

	// Metrics are written for failed runs too, so a stale last-success
	// timestamp can be alerted on.
	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}
	return runErr
}
