package tikz

import "fmt"

// Options holds the tunable constants of extraction and inference.
//
// The tolerance values are empirical, calibrated against the coordinate
// noise of the generation model; they are exposed here rather than embedded
// as literals so they can be recalibrated for a different model.
type Options struct {
	// Tolerance is the relative tolerance for on-circle and on-line
	// classification. It scales with the circle radius or segment length
	// because model-emitted coordinates carry proportional error.
	Tolerance float64

	// MinSegmentLength is the minimum segment length in TikZ units.
	// Shorter segments are discarded as decorative tick marks.
	MinSegmentLength float64

	// LabelMatchRadius is the maximum distance between a standalone text
	// node and the point marker it labels.
	LabelMatchRadius float64

	// LabelEqualityTol is the position-equality tolerance used when
	// looking up the label of a known point position.
	LabelEqualityTol float64

	// DefaultRadius is substituted when a circle radius cannot be parsed.
	// The substitution is recorded as a Warning, never silent.
	DefaultRadius float64

	// DefaultArcRadius is substituted when an arc radius cannot be parsed.
	DefaultArcRadius float64

	// DefaultDotSize is the display size in pt assumed for point markers
	// whose size argument cannot be parsed.
	DefaultDotSize float64
}

// DefaultOptions returns the extraction defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:        0.15,
		MinSegmentLength: 0.3,
		LabelMatchRadius: 0.5,
		LabelEqualityTol: 0.01,
		DefaultRadius:    1.0,
		DefaultArcRadius: 0.5,
		DefaultDotSize:   2.0,
	}
}

// Warning describes a non-fatal issue encountered during extraction, such
// as a documented fallback being applied. Warnings are returned alongside
// results rather than logged, so callers decide how to surface them.
type Warning struct {
	// Code identifies the warning category.
	Code string

	// Message is a human-readable description.
	Message string
}

// Warning codes.
const (
	// WarnDefaultRadius indicates an unparseable circle or arc radius was
	// replaced by the configured default.
	WarnDefaultRadius = "default-radius"
)

// FormatWarnings renders warnings as a single human-readable string,
// one warning per line.
func FormatWarnings(warnings []Warning) string {
	out := ""
	for i, w := range warnings {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("[%s] %s", w.Code, w.Message)
	}
	return out
}
