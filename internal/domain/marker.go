package domain

import "image/color"

// sizePerMagnitude converts magnitude to marker diameter in points.
const sizePerMagnitude = 2.5

// MarkerColor is one of the four magnitude buckets.
type MarkerColor int

const (
	MarkerBlue MarkerColor = iota
	MarkerGreen
	MarkerYellow
	MarkerRed
)

// MarkerColors lists every bucket from weakest to strongest.
var MarkerColors = []MarkerColor{MarkerBlue, MarkerGreen, MarkerYellow, MarkerRed}

func (c MarkerColor) String() string {
	switch c {
	case MarkerBlue:
		return "blue"
	case MarkerGreen:
		return "green"
	case MarkerYellow:
		return "yellow"
	case MarkerRed:
		return "red"
	default:
		return "unknown"
	}
}

// RGBA returns the matplotlib single-letter color for the bucket.
func (c MarkerColor) RGBA() color.RGBA {
	switch c {
	case MarkerBlue:
		return color.RGBA{R: 0, G: 0, B: 255, A: 255}
	case MarkerGreen:
		return color.RGBA{R: 0, G: 128, B: 0, A: 255}
	case MarkerYellow:
		return color.RGBA{R: 191, G: 191, B: 0, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 0, A: 255}
	}
}

// Marker is the glyph used to draw a record.
type Marker struct {
	Color MarkerColor
	Size  float64 // diameter in points
}

// MarkerFor picks the marker for a magnitude. Bucket lower bounds are
// inclusive: 1.0 is green, 3.0 yellow, 5.0 red.
func MarkerFor(magnitude float64) Marker {
	m := Marker{Size: magnitude * sizePerMagnitude}
	switch {
	case magnitude < 1.0:
		m.Color = MarkerBlue
	case magnitude < 3.0:
		m.Color = MarkerGreen
	case magnitude < 5.0:
		m.Color = MarkerYellow
	default:
		m.Color = MarkerRed
	}
	return m
}
