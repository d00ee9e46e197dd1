package render

// Subplot margins as fractions of the figure, matching matplotlib's defaults.
const (
	axesLeft   = 0.125
	axesRight  = 0.9
	axesBottom = 0.11
	axesTop    = 0.88
)

// layout maps projected coordinates to figure pixels. The projected plane is
// fitted into the axes box with equal aspect and centred.
type layout struct {
	width, height int
	scale         float64 // pixels per projected unit
	cx, cy        float64 // pixel position of the projection origin
	top           float64 // pixel y of the map's upper edge
}

func newLayout(opts Options, proj Kavrayskiy7) layout {
	w := opts.WidthIn * opts.DPI
	h := opts.HeightIn * opts.DPI

	boxLeft, boxRight := axesLeft*w, axesRight*w
	boxTop, boxBottom := (1-axesTop)*h, (1-axesBottom)*h
	boxW, boxH := boxRight-boxLeft, boxBottom-boxTop

	scale := min(boxW/(2*proj.HalfWidth()), boxH/(2*proj.HalfHeight()))
	cy := (boxTop + boxBottom) / 2

	return layout{
		width:  int(w),
		height: int(h),
		scale:  scale,
		cx:     (boxLeft + boxRight) / 2,
		cy:     cy,
		top:    cy - proj.HalfHeight()*scale,
	}
}

func (l layout) toPixel(x, y float64) (px, py float64) {
	return l.cx + x*l.scale, l.cy - y*l.scale
}
