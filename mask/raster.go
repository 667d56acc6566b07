package mask

import (
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// arcStepDeg is the sampling step for circle and arc outlines. Two degrees
// keeps the polyline deviation well under half a pixel at typical radii.
const arcStepDeg = 2.0

// Mask is a single-channel binary raster. Covered pixels are 255.
type Mask struct {
	alpha *image.Alpha
}

// NewMask returns an all-zero mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{alpha: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// Bounds returns the mask's pixel bounds.
func (m *Mask) Bounds() image.Rectangle {
	return m.alpha.Bounds()
}

// At reports whether the pixel at (x, y) is covered. Antialiased edge
// pixels count as covered above half intensity.
func (m *Mask) At(x, y int) bool {
	return m.alpha.AlphaAt(x, y).A >= 128
}

// Gray returns the mask as a grayscale image sharing the same pixel
// buffer. Alpha and Gray use the identical one-byte-per-pixel layout.
func (m *Mask) Gray() *image.Gray {
	return &image.Gray{Pix: m.alpha.Pix, Stride: m.alpha.Stride, Rect: m.alpha.Rect}
}

// EncodePNG writes the mask as an 8-bit grayscale PNG.
func (m *Mask) EncodePNG(w io.Writer) error {
	return png.Encode(w, m.Gray())
}

// fill rasterizes one closed path onto the mask. The path callback issues
// MoveTo/LineTo calls; fill closes and draws it.
func (m *Mask) fill(path func(z *vector.Rasterizer)) {
	b := m.alpha.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	path(z)
	z.ClosePath()
	z.Draw(m.alpha, b, image.Opaque, image.Point{})
}

// StrokeLine draws a straight stroke of the given width between two pixel
// positions, as a filled rectangle perpendicular to the segment.
func (m *Mask) StrokeLine(x1, y1, x2, y2, width float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		m.FillDisc(x1, y1, width/2)
		return
	}

	// Unit normal, scaled to half the stroke width.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	m.fill(func(z *vector.Rasterizer) {
		z.MoveTo(float32(x1+nx), float32(y1+ny))
		z.LineTo(float32(x2+nx), float32(y2+ny))
		z.LineTo(float32(x2-nx), float32(y2-ny))
		z.LineTo(float32(x1-nx), float32(y1-ny))
	})
}

// FillDisc draws a filled disc.
func (m *Mask) FillDisc(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	m.fill(func(z *vector.Rasterizer) {
		circlePath(z, cx, cy, r, false)
	})
}

// StrokeCircle draws a circle outline of the given stroke width as an
// annulus: the outer contour wound one way and the inner contour the
// other, so the interior cancels out.
func (m *Mask) StrokeCircle(cx, cy, r, width float64) {
	outer := r + width/2
	inner := r - width/2
	if inner <= 0 {
		m.FillDisc(cx, cy, outer)
		return
	}
	m.fill(func(z *vector.Rasterizer) {
		circlePath(z, cx, cy, outer, false)
		z.ClosePath()
		circlePath(z, cx, cy, inner, true)
	})
}

// StrokeArc draws a circular arc outline between two angles, given in
// degrees with the drawing convention (0 = 3 o'clock, counterclockwise).
// The raster Y axis points down, so the counterclockwise sweep is realized
// by negating the sine term; callers pass drawing-space angles unchanged.
func (m *Mask) StrokeArc(cx, cy, r, startDeg, endDeg, width float64) {
	if endDeg < startDeg {
		startDeg, endDeg = endDeg, startDeg
	}
	outer := r + width/2
	inner := math.Max(r-width/2, 0.1)

	m.fill(func(z *vector.Rasterizer) {
		first := true
		for deg := startDeg; ; deg += arcStepDeg {
			if deg > endDeg {
				deg = endDeg
			}
			x, y := arcPoint(cx, cy, outer, deg)
			if first {
				z.MoveTo(float32(x), float32(y))
				first = false
			} else {
				z.LineTo(float32(x), float32(y))
			}
			if deg == endDeg {
				break
			}
		}
		for deg := endDeg; ; deg -= arcStepDeg {
			if deg < startDeg {
				deg = startDeg
			}
			x, y := arcPoint(cx, cy, inner, deg)
			z.LineTo(float32(x), float32(y))
			if deg == startDeg {
				break
			}
		}
	})

	// The band is half-open at the endpoint chords, leaving the arc's own
	// start and end pixels uncovered. Cap both ends with half-width discs.
	sx, sy := arcPoint(cx, cy, r, startDeg)
	ex, ey := arcPoint(cx, cy, r, endDeg)
	m.FillDisc(sx, sy, width/2)
	m.FillDisc(ex, ey, width/2)
}

func arcPoint(cx, cy, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy - r*math.Sin(rad)
}

// circlePath appends a full-circle polyline. reversed flips the winding
// direction for annulus interiors.
func circlePath(z *vector.Rasterizer, cx, cy, r float64, reversed bool) {
	const steps = 180
	for i := 0; i <= steps; i++ {
		deg := float64(i) * 360 / steps
		if reversed {
			deg = -deg
		}
		x, y := arcPoint(cx, cy, r, deg)
		if i == 0 {
			z.MoveTo(float32(x), float32(y))
		} else {
			z.LineTo(float32(x), float32(y))
		}
	}
}
