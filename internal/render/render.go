package render

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/couchcryptid/quake-map/internal/domain"
)

const (
	pointsPerInch = 72.0

	oceanGray      = 0.3
	titlePoints    = 14.4
	titlePadPoints = 6.0

	coastlineWidth = 1.0 // points
	borderWidth    = 0.5
	gridWidth      = 1.0
	gridDash       = 1.0
	boundaryWidth  = 1.0
	markerEdge     = 1.0

	// graticuleStep is the sampling interval, in degrees, for grid lines.
	graticuleStep = 1.0
)

// Options configures the figure and map projection.
type Options struct {
	WidthIn  float64
	HeightIn float64
	DPI      float64

	CentralLon   float64
	ParallelStep float64
	MeridianStep float64
}

// DefaultOptions is a 16x12 inch Kavrayskiy VII world map centred on 90°W,
// with parallels every 30° and meridians every 60°.
func DefaultOptions() Options {
	return Options{
		WidthIn:      16,
		HeightIn:     12,
		DPI:          100,
		CentralLon:   -90,
		ParallelStep: 30,
		MeridianStep: 60,
	}
}

// Renderer draws earthquake markers over a world basemap.
type Renderer struct {
	opts   Options
	proj   Kavrayskiy7
	layout layout
	title  font.Face
}

// New creates a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.WidthIn <= 0 || opts.HeightIn <= 0 || opts.DPI <= 0 {
		return nil, fmt.Errorf("invalid figure size %gx%g at %g dpi", opts.WidthIn, opts.HeightIn, opts.DPI)
	}
	if opts.ParallelStep <= 0 || opts.MeridianStep <= 0 {
		return nil, fmt.Errorf("invalid grid steps %g/%g", opts.ParallelStep, opts.MeridianStep)
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse title font: %w", err)
	}

	proj := Kavrayskiy7{CentralLon: opts.CentralLon}
	r := &Renderer{
		opts:   opts,
		proj:   proj,
		layout: newLayout(opts, proj),
	}
	r.title = truetype.NewFace(f, &truetype.Options{Size: r.px(titlePoints)})
	return r, nil
}

// Size returns the output image dimensions in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.layout.width, r.layout.height
}

// PlacedMarker is a record positioned on the figure.
type PlacedMarker struct {
	Record domain.Record
	Marker domain.Marker
	X, Y   float64 // pixels
	Radius float64 // pixels
}

// PlaceMarkers projects records in draw order. Later markers are drawn on
// top of earlier ones.
func (r *Renderer) PlaceMarkers(records []domain.Record) []PlacedMarker {
	out := make([]PlacedMarker, len(records))
	for i, rec := range records {
		m := domain.MarkerFor(rec.Magnitude)
		x, y := r.project(rec.Geo)
		out[i] = PlacedMarker{
			Record: rec,
			Marker: m,
			X:      x,
			Y:      y,
			Radius: r.px(m.Size) / 2,
		}
	}
	return out
}

// Render draws the basemap, markers, and title, and encodes the figure as PNG.
func (r *Renderer) Render(w io.Writer, basemap domain.Basemap, records []domain.Record, title string) error {
	dc := gg.NewContext(r.layout.width, r.layout.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	r.drawBasemap(dc, basemap)

	for _, pm := range r.PlaceMarkers(records) {
		dc.SetColor(pm.Marker.Color.RGBA())
		dc.DrawCircle(pm.X, pm.Y, pm.Radius)
		dc.FillPreserve()
		dc.SetLineWidth(r.px(markerEdge))
		dc.Stroke()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(r.title)
	dc.DrawStringAnchored(title, r.layout.cx, r.layout.top-r.px(titlePadPoints), 0.5, 0)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// drawBasemap fills the map boundary and draws the static line layers,
// clipped to the boundary.
func (r *Renderer) drawBasemap(dc *gg.Context, basemap domain.Basemap) {
	outline := r.proj.Outline()

	r.tracePath(dc, outline)
	dc.SetRGB(oceanGray, oceanGray, oceanGray)
	dc.FillPreserve()
	dc.Clip()

	dc.SetRGB(0, 0, 0)
	dc.SetDash()

	dc.SetLineWidth(r.px(coastlineWidth))
	r.strokeLines(dc, basemap.Coastlines)

	dc.SetLineWidth(r.px(borderWidth))
	r.strokeLines(dc, basemap.Borders)

	dc.SetLineWidth(r.px(gridWidth))
	dc.SetDash(r.px(gridDash), r.px(gridDash))
	r.strokeLines(dc, r.graticule())
	dc.SetDash()

	dc.ResetClip()
	r.tracePath(dc, outline)
	dc.SetLineWidth(r.px(boundaryWidth))
	dc.Stroke()
}

// strokeLines draws every polyline in a single stroke. A segment whose ends
// fall on opposite sides of the projection seam is skipped so it does not
// streak across the map.
func (r *Renderer) strokeLines(dc *gg.Context, lines []domain.Polyline) {
	for _, line := range lines {
		var prevLon float64
		for i, g := range line {
			x, y := r.project(g)
			lon := r.proj.RelativeLon(g.Lon)
			if i == 0 || math.Abs(lon-prevLon) > 180 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
			prevLon = lon
		}
	}
	dc.Stroke()
}

func (r *Renderer) tracePath(dc *gg.Context, line domain.Polyline) {
	dc.NewSubPath()
	for i, g := range line {
		x, y := r.project(g)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	dc.ClosePath()
}

// graticule returns parallels from -90° to 90° and meridians from -180°
// up to (not including) 180°.
func (r *Renderer) graticule() []domain.Polyline {
	var lines []domain.Polyline

	west := r.opts.CentralLon - 180 + 1e-9
	east := r.opts.CentralLon + 180 - 1e-9
	for lat := -90.0; lat <= 90; lat += r.opts.ParallelStep {
		line := domain.Polyline{}
		for lon := west; lon < east; lon += graticuleStep {
			line = append(line, domain.Geo{Lat: lat, Lon: lon})
		}
		lines = append(lines, append(line, domain.Geo{Lat: lat, Lon: east}))
	}

	for lon := -180.0; lon < 180; lon += r.opts.MeridianStep {
		line := domain.Polyline{}
		for lat := -90.0; lat <= 90; lat += graticuleStep {
			line = append(line, domain.Geo{Lat: lat, Lon: lon})
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *Renderer) project(g domain.Geo) (px, py float64) {
	return r.layout.toPixel(r.proj.Forward(g))
}

// px converts typographic points to pixels at the figure DPI.
func (r *Renderer) px(points float64) float64 {
	return points * r.opts.DPI / pointsPerInch
}
