package naturalearth

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"github.com/couchcryptid/quake-map/internal/domain"
)

const earthRadiusKm = 6371.0088

// DefaultMinAreaKm2 hides closed coastline rings (small islands, lakes)
// smaller than this many square kilometres.
const DefaultMinAreaKm2 = 1000.0

// Getter fetches a remote document.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Loader builds a basemap from Natural Earth GeoJSON layers.
type Loader struct {
	getter     Getter
	minAreaKm2 float64
	logger     *slog.Logger
}

// NewLoader creates a Loader. Sources starting with http:// or https:// are
// fetched through getter; anything else is read from the local filesystem.
func NewLoader(getter Getter, minAreaKm2 float64, logger *slog.Logger) *Loader {
	return &Loader{
		getter:     getter,
		minAreaKm2: minAreaKm2,
		logger:     logger,
	}
}

// Load reads the coastline and border layers.
func (l *Loader) Load(ctx context.Context, coastlineSrc, bordersSrc string) (domain.Basemap, error) {
	coast, err := l.loadLayer(ctx, coastlineSrc)
	if err != nil {
		return domain.Basemap{}, fmt.Errorf("load coastlines: %w", err)
	}
	borders, err := l.loadLayer(ctx, bordersSrc)
	if err != nil {
		return domain.Basemap{}, fmt.Errorf("load borders: %w", err)
	}

	kept := make([]domain.Polyline, 0, len(coast))
	for _, line := range coast {
		if line.Closed() && RingAreaKm2(line) < l.minAreaKm2 {
			continue
		}
		kept = append(kept, line)
	}

	l.logger.Info("basemap loaded",
		"coastlines", len(kept),
		"coastlines_below_area_threshold", len(coast)-len(kept),
		"borders", len(borders),
	)
	return domain.Basemap{Coastlines: kept, Borders: borders}, nil
}

func (l *Loader) loadLayer(ctx context.Context, src string) ([]domain.Polyline, error) {
	data, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return polylines(fc), nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return l.getter.Get(ctx, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}

// polylines flattens every line and ring in the collection. Points and
// geometries without coordinates are ignored.
func polylines(fc *geojson.FeatureCollection) []domain.Polyline {
	var out []domain.Polyline
	for _, f := range fc.Features {
		g := f.Geometry
		if g == nil {
			continue
		}
		switch {
		case g.IsLineString():
			out = appendLine(out, g.LineString)
		case g.IsMultiLineString():
			for _, line := range g.MultiLineString {
				out = appendLine(out, line)
			}
		case g.IsPolygon():
			for _, ring := range g.Polygon {
				out = appendLine(out, ring)
			}
		case g.IsMultiPolygon():
			for _, poly := range g.MultiPolygon {
				for _, ring := range poly {
					out = appendLine(out, ring)
				}
			}
		}
	}
	return out
}

// appendLine converts GeoJSON [lon, lat] positions into a Polyline.
func appendLine(out []domain.Polyline, coords [][]float64) []domain.Polyline {
	line := make(domain.Polyline, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		line = append(line, domain.Geo{Lat: c[1], Lon: c[0]})
	}
	if len(line) < 2 {
		return out
	}
	return append(out, line)
}

// RingAreaKm2 approximates the area enclosed by a ring on a spherical Earth.
func RingAreaKm2(ring domain.Polyline) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		p1, p2 := ring[i], ring[i+1]
		sum += radians(p2.Lon-p1.Lon) * (2 + math.Sin(radians(p1.Lat)) + math.Sin(radians(p2.Lat)))
	}
	return math.Abs(sum) * earthRadiusKm * earthRadiusKm / 2
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
