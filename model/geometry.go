package model

import "math"

// Point represents a 2D point in abstract TikZ units.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo returns the polar angle from p to other in degrees,
// normalized to [0, 360).
func (p Point) AngleTo(other Point) float64 {
	deg := math.Atan2(other.Y-p.Y, other.X-p.X) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// BoundingBox represents the extent of rendered content in pt units,
// as reported by the LaTeX compiler's coordinate export.
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent in pt.
func (b BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent in pt.
func (b BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// IsValid returns true if the bounding box has positive dimensions.
func (b BoundingBox) IsValid() bool {
	return b.Width() > 0 && b.Height() > 0
}
