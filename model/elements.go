package model

// Dot represents a filled point marker (\fill ... circle in source).
type Dot struct {
	// Position in abstract TikZ units.
	Position Point `json:"position"`

	// Size is the display radius of the marker in pt. It determines the
	// rendered dot radius and the radius of the point's segmentation mask.
	Size float64 `json:"size"`
}

// LineSegment represents a straight segment between two coordinates.
type LineSegment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`

	// StartLabel and EndLabel are the resolved point labels for the
	// endpoints. They are populated on derived segments; drawn segments
	// carry empty labels until mask generation resolves them.
	StartLabel string `json:"point1_label,omitempty"`
	EndLabel   string `json:"point2_label,omitempty"`

	// DerivedFrom names the parent segment (e.g. "Line_AB") when this
	// segment was produced by splitting a drawn segment at an interior
	// point. Empty for drawn segments.
	DerivedFrom string `json:"derived_from,omitempty"`
}

// Length returns the segment's Euclidean length.
func (s LineSegment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Circle represents a full circle. The radius is always stored in
// centimeters (the TikZ base unit) regardless of the unit used in source.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// ArcType distinguishes the two arcs a circle is split into by a pair of
// points on it.
type ArcType string

const (
	// ArcInner is the arc whose angular span is at most 180 degrees.
	ArcInner ArcType = "inner"
	// ArcOuter is the complementary arc (span = 360 - inner span).
	ArcOuter ArcType = "outer"
)

// Arc represents a circular arc. Angles are in degrees, 0 = +x axis,
// counterclockwise. EndAngle may exceed 360 for arcs crossing the +x axis.
type Arc struct {
	Center     Point   `json:"center"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`

	// Type is set only on arcs derived from point pairs on a circle.
	Type ArcType `json:"arc_type,omitempty"`

	// Labels of the two boundary points and of the circle's center,
	// set only on derived arcs.
	Point1Label string `json:"point1_label,omitempty"`
	Point2Label string `json:"point2_label,omitempty"`
	CenterLabel string `json:"circle_center_label,omitempty"`
}

// Span returns the arc's angular span in degrees.
func (a Arc) Span() float64 {
	return a.EndAngle - a.StartAngle
}

// LinePosition classifies where along a segment a point projects.
type LinePosition string

const (
	PositionStart  LinePosition = "start"
	PositionMiddle LinePosition = "middle"
	PositionEnd    LinePosition = "end"
)

// PointOnCircle records that a point lies (approximately) on a circle,
// together with the numeric evidence that justified the inference.
type PointOnCircle struct {
	PointIndex  int     `json:"point_idx"`
	CircleIndex int     `json:"circle_idx"`
	PointPos    Point   `json:"point_pos"`
	Center      Point   `json:"circle_center"`
	Distance    float64 `json:"distance_to_center"`
	Radius      float64 `json:"circle_radius"`
}

// PointOnLine records that a point lies (approximately) on a segment.
// T is the unclamped projection parameter onto the infinite line through
// the segment (0 at Start, 1 at End).
type PointOnLine struct {
	PointIndex int          `json:"point_idx"`
	LineIndex  int          `json:"line_idx"`
	PointPos   Point        `json:"point_pos"`
	Start      Point        `json:"line_start"`
	End        Point        `json:"line_end"`
	Position   LinePosition `json:"position_on_line"`
	T          float64      `json:"parameter_t"`
}

// Relationships holds all detected incidence records for one document.
type Relationships struct {
	PointsOnCircles []PointOnCircle `json:"points_on_circles"`
	PointsOnLines   []PointOnLine   `json:"points_on_lines"`
}

// Elements holds every primitive extracted from one TikZ source document,
// plus the document's global scale factor and the inferred relationships.
type Elements struct {
	Circles []Circle      `json:"circles"`
	Lines   []LineSegment `json:"lines"`
	Points  []Dot         `json:"points"`
	Arcs    []Arc         `json:"arcs"`
	Scale   float64       `json:"scale"`

	Relationships Relationships `json:"relationships"`
}

// Total returns the number of extracted primitives across all categories.
func (e *Elements) Total() int {
	return len(e.Circles) + len(e.Lines) + len(e.Points) + len(e.Arcs)
}
