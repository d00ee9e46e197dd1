package render

import (
	"math"

	"github.com/couchcryptid/quake-map/internal/domain"
)

// Kavrayskiy7 is the Kavrayskiy VII pseudocylindrical world projection.
// Output coordinates are in radians: x spans ±(√3/2)π and y spans ±π/2.
type Kavrayskiy7 struct {
	CentralLon float64 // degrees
}

// Forward projects a coordinate. Longitudes are wrapped into the half-open
// interval [-180, 180) around the central meridian.
func (p Kavrayskiy7) Forward(g domain.Geo) (x, y float64) {
	lambda := radians(p.RelativeLon(g.Lon))
	phi := radians(clamp(g.Lat, -90, 90))
	x = 3 * lambda / (2 * math.Pi) * math.Sqrt(math.Pi*math.Pi/3-phi*phi)
	return x, phi
}

// RelativeLon returns lon measured from the central meridian, in degrees.
func (p Kavrayskiy7) RelativeLon(lon float64) float64 {
	d := math.Mod(lon-p.CentralLon+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// HalfWidth and HalfHeight bound the projected plane.
func (p Kavrayskiy7) HalfWidth() float64  { return math.Sqrt(3) / 2 * math.Pi }
func (p Kavrayskiy7) HalfHeight() float64 { return math.Pi / 2 }

// Outline traces the map edge: the ±180° meridians relative to the centre.
func (p Kavrayskiy7) Outline() domain.Polyline {
	const step = 1.0
	left, right := p.CentralLon-180+1e-9, p.CentralLon+180-1e-9

	out := make(domain.Polyline, 0, 2*int(180/step)+3)
	for lat := -90.0; lat <= 90; lat += step {
		out = append(out, domain.Geo{Lat: lat, Lon: right})
	}
	for lat := 90.0; lat >= -90; lat -= step {
		out = append(out, domain.Geo{Lat: lat, Lon: left})
	}
	return append(out, out[0])
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
