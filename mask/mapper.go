package mask

import "github.com/tsunghan-wu/syn-math/model"

const (
	ptPerCM = 28.45

	// borderPt is the fixed page border added by the standalone document
	// class the compiler uses.
	borderPt = 10.0
)

// Mapper converts abstract drawing coordinates to pixel coordinates for
// one compiled image. A nil bounding box selects the degraded center-origin
// fallback.
type Mapper struct {
	scale  float64
	bbox   *model.BoundingBox
	width  int
	height int
	dpi    int
}

// NewMapper builds a mapper for an image of the given pixel dimensions.
// scale is the document's global scale factor; bbox is the compiled
// bounding box in point units, or nil when compilation did not export one.
func NewMapper(scale float64, bbox *model.BoundingBox, width, height, dpi int) *Mapper {
	if scale == 0 {
		scale = 1.0
	}
	return &Mapper{scale: scale, bbox: bbox, width: width, height: height, dpi: dpi}
}

// Degraded reports whether the mapper is running without a bounding box,
// in the strictly less accurate center-origin mode.
func (m *Mapper) Degraded() bool {
	return m.bbox == nil
}

// ToPixel maps an abstract coordinate to a pixel position. The Y axis is
// inverted because raster row 0 is the top of the image.
func (m *Mapper) ToPixel(p model.Point) (float64, float64) {
	if m.bbox == nil {
		// Fallback: origin at the image center, fixed conversion of
		// 28.45 pt per abstract unit at dpi/72 pixels per point.
		pixelsPerUnit := ptPerCM * float64(m.dpi) / 72.0
		px := float64(m.width)/2 + p.X*m.scale*pixelsPerUnit
		py := float64(m.height)/2 - p.Y*m.scale*pixelsPerUnit
		return px, py
	}

	xPt := p.X * m.scale * ptPerCM
	yPt := p.Y * m.scale * ptPerCM

	totalWidthPt := m.bbox.Width() + 2*borderPt
	totalHeightPt := m.bbox.Height() + 2*borderPt

	scaleX := float64(m.width) / totalWidthPt
	scaleY := float64(m.height) / totalHeightPt

	px := (xPt - m.bbox.MinX + borderPt) * scaleX
	py := float64(m.height) - (yPt-m.bbox.MinY+borderPt)*scaleY
	return px, py
}

// RadiusToPixels converts a radius in abstract units to pixels. The
// conversion is the same in both mapping modes.
func (m *Mapper) RadiusToPixels(r float64) float64 {
	return r * m.scale * ptPerCM * float64(m.dpi) / 72.0
}
