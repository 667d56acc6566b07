package tikz

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsunghan-wu/syn-math/model"
)

var (
	scaleRe = regexp.MustCompile(`\\begin\{tikzpicture\}\s*\[\s*[^\]]*scale\s*=\s*([\d.]+)`)

	coordinateRe    = regexp.MustCompile(`\\coordinate\s*\(([^)]+)\)\s*at\s*\(([^)]+)\)\s*;`)
	coordinateOptRe = regexp.MustCompile(`\\coordinate\s*\[[^\]]*\]\s*\(([^)]+)\)\s*at\s*\(([^)]+)\)\s*;`)
	namedNodeRe     = regexp.MustCompile(`\\node\s*\(([^)]+)\)\s*at\s*\(([^)]+)\)`)
	namedNodeOptRe  = regexp.MustCompile(`\\node\s*\[[^\]]*\]\s*\(([^)]+)\)\s*at\s*\(([^)]+)\)`)

	drawCircleRe = regexp.MustCompile(`\\draw[^;]*\(([^)]+)\)\s*circle\s*\(([^)]+)\)`)
	fillDotRe    = regexp.MustCompile(`\\fill[^;]*\(([^)]+)\)\s*circle\s*\(([^)]+)\)`)
	filldrawRe   = regexp.MustCompile(`\\filldraw[^;]*\(([^)]+)\)\s*circle\s*\(([^)]+)\)`)

	parenTokenRe = regexp.MustCompile(`\(([^)]+)\)`)

	arcColonRe    = regexp.MustCompile(`\(([^)]+)\)\s*arc\s*\((\d+):(\d+):([^)]+)\)`)
	arcOptionsRe  = regexp.MustCompile(`\(([^)]+)\)\s*arc\s*\[([^\]]+)\]`)
	startAngleRe  = regexp.MustCompile(`start\s*angle\s*=\s*([\d.-]+)`)
	endAngleRe    = regexp.MustCompile(`end\s*angle\s*=\s*([\d.-]+)`)
	arcRadiusRe   = regexp.MustCompile(`radius\s*=\s*([\d.]+)\s*(cm|pt|mm)?`)
)

// Extract parses TikZ source text and returns every primitive it can
// recover, with relationships already inferred. It never fails: malformed
// or unresolvable statements are dropped from their category and the rest
// of the document is still processed. Warnings record documented fallbacks
// (currently: radius values that could not be parsed).
func Extract(source string, opts Options) (*model.Elements, []Warning) {
	elements := &model.Elements{Scale: extractScale(source)}

	var warnings []Warning

	// Named coordinates and macros first: later passes resolve against them.
	symbols := extractNamedCoordinates(source)
	macros := extractMacros(source)

	// Circles: \draw ... (center) circle (radius)
	for _, m := range drawCircleRe.FindAllStringSubmatch(source, -1) {
		center, ok := resolveCoordinate(m[1], symbols)
		if !ok {
			continue
		}
		radius, ok := parseLength(strings.TrimSpace(m[2]), macros)
		if !ok {
			radius = opts.DefaultRadius
			warnings = append(warnings, Warning{
				Code:    WarnDefaultRadius,
				Message: fmt.Sprintf("circle radius %q unparseable, using default %g", strings.TrimSpace(m[2]), radius),
			})
		}
		elements.Circles = append(elements.Circles, model.Circle{Center: center, Radius: radius})
	}

	// Line segments: \draw statements with "--" chains.
	elements.Lines = extractLines(source, symbols)

	// Point markers: \fill and \filldraw ... (point) circle (size).
	// The \fill pattern also matches \filldraw statements; the duplicates
	// are removed by position deduplication below.
	for _, re := range []*regexp.Regexp{fillDotRe, filldrawRe} {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			pos, ok := resolveCoordinate(m[1], symbols)
			if !ok {
				continue
			}
			size, ok := parseDotSize(strings.TrimSpace(m[2]))
			if !ok {
				size = opts.DefaultDotSize
			}
			elements.Points = append(elements.Points, model.Dot{Position: pos, Size: size})
		}
	}

	// Arcs, in both syntactic forms.
	arcs, arcWarnings := extractArcs(source, symbols, macros, opts)
	elements.Arcs = arcs
	warnings = append(warnings, arcWarnings...)

	// Post-processing.
	elements.Points = dedupePoints(elements.Points)
	elements.Lines = filterShortSegments(elements.Lines, opts.MinSegmentLength)
	elements.Relationships = InferRelationships(elements, opts.Tolerance)

	return elements, warnings
}

// extractScale reads the scale factor from the tikzpicture options,
// defaulting to 1.0.
func extractScale(source string) float64 {
	if m := scaleRe.FindStringSubmatch(source); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	return 1.0
}

// extractNamedCoordinates builds the symbol table from \coordinate and
// named \node declarations. Right-hand sides must be literal pairs;
// declarations with unresolvable positions get no table entry.
func extractNamedCoordinates(source string) map[string]model.Point {
	symbols := make(map[string]model.Point)

	for _, re := range []*regexp.Regexp{coordinateRe, coordinateOptRe, namedNodeRe, namedNodeOptRe} {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			name := strings.TrimSpace(m[1])
			if pos, ok := resolveCoordinate(m[2], nil); ok {
				symbols[name] = pos
			}
		}
	}

	return symbols
}

// extractLines scans each statement for "--" polylines and emits one
// segment per consecutive resolved coordinate pair. Statements containing
// a circle directive are excluded (they are circle draws, and their
// parenthesized operands are not path points). A trailing "cycle" closes
// the path with a segment back to the first point.
func extractLines(source string, symbols map[string]model.Point) []model.LineSegment {
	var lines []model.LineSegment

	for _, stmt := range strings.Split(source, ";") {
		lower := strings.ToLower(stmt)
		if !strings.Contains(stmt, `\draw`) || !strings.Contains(stmt, "--") || strings.Contains(lower, "circle") {
			continue
		}

		var points []model.Point
		for _, m := range parenTokenRe.FindAllStringSubmatch(stmt, -1) {
			token := m[1]
			// Style options and inline label content also sit inside
			// parentheses; they are not path coordinates.
			if strings.Contains(token, "=") || strings.HasPrefix(token, "[") || strings.Contains(strings.ToLower(token), "node") {
				continue
			}
			if pos, ok := resolveCoordinate(token, symbols); ok {
				points = append(points, pos)
			}
		}

		for i := 0; i+1 < len(points); i++ {
			lines = append(lines, model.LineSegment{Start: points[i], End: points[i+1]})
		}

		if strings.Contains(lower, "cycle") && len(points) >= 3 {
			lines = append(lines, model.LineSegment{Start: points[len(points)-1], End: points[0]})
		}
	}

	return lines
}

// extractArcs handles "(start) arc (startAngle:endAngle:radius)" and
// "(start) arc [start angle=..., end angle=..., radius=...]". The arc
// command gives the pen position (the arc's start point), not the center;
// the center is derived as start - radius*(cos(startAngle), sin(startAngle)).
// If the emitted start point is inconsistent with the stated start angle,
// the derived center is wrong with no detection (known fidelity gap).
func extractArcs(source string, symbols map[string]model.Point, macros map[string]string, opts Options) ([]model.Arc, []Warning) {
	var arcs []model.Arc
	var warnings []Warning

	for _, m := range arcColonRe.FindAllStringSubmatch(source, -1) {
		start, ok := resolveCoordinate(m[1], symbols)
		if !ok {
			continue
		}
		startAngle, _ := strconv.ParseFloat(m[2], 64)
		endAngle, _ := strconv.ParseFloat(m[3], 64)

		radius, ok := parseLength(strings.TrimSpace(m[4]), macros)
		if !ok {
			radius = opts.DefaultArcRadius
			warnings = append(warnings, Warning{
				Code:    WarnDefaultRadius,
				Message: fmt.Sprintf("arc radius %q unparseable, using default %g", strings.TrimSpace(m[4]), radius),
			})
		}

		arcs = append(arcs, model.Arc{
			Center:     arcCenter(start, radius, startAngle),
			Radius:     radius,
			StartAngle: startAngle,
			EndAngle:   endAngle,
		})
	}

	for _, m := range arcOptionsRe.FindAllStringSubmatch(source, -1) {
		start, ok := resolveCoordinate(m[1], symbols)
		if !ok {
			continue
		}
		options := m[2]

		sa := startAngleRe.FindStringSubmatch(options)
		ea := endAngleRe.FindStringSubmatch(options)
		ra := arcRadiusRe.FindStringSubmatch(options)
		if sa == nil || ea == nil || ra == nil {
			continue
		}

		startAngle, _ := strconv.ParseFloat(sa[1], 64)
		endAngle, _ := strconv.ParseFloat(ea[1], 64)
		radius, _ := strconv.ParseFloat(ra[1], 64)
		switch ra[2] {
		case "pt":
			radius /= ptPerCM
		case "mm":
			radius /= 10
		}
		if radius == 0 {
			continue
		}

		arcs = append(arcs, model.Arc{
			Center:     arcCenter(start, radius, startAngle),
			Radius:     radius,
			StartAngle: startAngle,
			EndAngle:   endAngle,
		})
	}

	return arcs, warnings
}

func arcCenter(start model.Point, radius, startAngleDeg float64) model.Point {
	rad := startAngleDeg * math.Pi / 180
	return model.Point{
		X: start.X - radius*math.Cos(rad),
		Y: start.Y - radius*math.Sin(rad),
	}
}

// dedupePoints removes point markers that land on the same position after
// rounding to 3 decimal places, keeping the first occurrence.
func dedupePoints(points []model.Dot) []model.Dot {
	seen := make(map[[2]float64]bool, len(points))
	unique := make([]model.Dot, 0, len(points))

	for _, p := range points {
		key := [2]float64{
			math.Round(p.Position.X*1000) / 1000,
			math.Round(p.Position.Y*1000) / 1000,
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}

	return unique
}

// filterShortSegments drops segments below the minimum length. These are
// decorative tick marks (equal-length indicators and the like), not
// geometry.
func filterShortSegments(lines []model.LineSegment, minLength float64) []model.LineSegment {
	kept := make([]model.LineSegment, 0, len(lines))
	for _, l := range lines {
		if l.Length() >= minLength {
			kept = append(kept, l)
		}
	}
	return kept
}
