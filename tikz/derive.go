package tikz

import (
	"fmt"
	"sort"

	"github.com/tsunghan-wu/syn-math/model"
)

// SplitLines derives sub-segments from drawn segments that carry labeled
// interior points. For a segment A-B with a labeled point M on it, it emits
// A-M and M-B, each tagged with the parent "Line_AB" in DerivedFrom.
//
// Only interior incidences count: the projection parameter must satisfy
// 0.01 < t < 0.99 and the relationship must be classified "middle". Lines
// whose endpoints lack labels are skipped entirely, as are interior points
// that are unlabeled or share a label with an endpoint.
func SplitLines(e *model.Elements, labels *Labels, opts Options) []model.LineSegment {
	type interior struct {
		pos model.Point
		t   float64
	}

	byLine := make(map[int][]interior)
	for _, pol := range e.Relationships.PointsOnLines {
		if pol.Position == model.PositionMiddle && pol.T > 0.01 && pol.T < 0.99 {
			byLine[pol.LineIndex] = append(byLine[pol.LineIndex], interior{pol.PointPos, pol.T})
		}
	}

	lineIndices := make([]int, 0, len(byLine))
	for li := range byLine {
		lineIndices = append(lineIndices, li)
	}
	sort.Ints(lineIndices)

	var derived []model.LineSegment
	for _, li := range lineIndices {
		if li >= len(e.Lines) {
			continue
		}
		line := e.Lines[li]

		startLabel, okStart := labels.Find(line.Start, opts.LabelEqualityTol)
		endLabel, okEnd := labels.Find(line.End, opts.LabelEqualityTol)
		if !okStart || !okEnd {
			continue
		}

		parent := fmt.Sprintf("Line_%s%s", startLabel, endLabel)

		for _, p := range byLine[li] {
			pointLabel, ok := labels.Find(p.pos, opts.LabelEqualityTol)
			if !ok || pointLabel == startLabel || pointLabel == endLabel {
				continue
			}

			derived = append(derived,
				model.LineSegment{
					Start:       line.Start,
					End:         p.pos,
					StartLabel:  startLabel,
					EndLabel:    pointLabel,
					DerivedFrom: parent,
				},
				model.LineSegment{
					Start:       p.pos,
					End:         line.End,
					StartLabel:  pointLabel,
					EndLabel:    endLabel,
					DerivedFrom: parent,
				})
		}
	}

	return derived
}

// DeriveArcs derives the inner/outer arc pair for every unordered pair of
// distinctly-labeled points lying on the same circle. Each point's polar
// angle relative to the circle center is computed and the pair is ordered
// so angle1 <= angle2 (labels swap along with angles). The circle is then
// split at the two angles: the inner arc is the span of at most 180
// degrees, the outer arc the complement, expressed as (angle2, angle1+360)
// so its end angle always exceeds its start angle.
//
// Points without a resolvable label get the synthetic placeholder
// "P{index}" so derived arc keys never collide on empty labels. Pairs that
// resolve to the same label are skipped as degenerate.
func DeriveArcs(e *model.Elements, labels *Labels, opts Options) []model.Arc {
	type onCircle struct {
		pointIdx int
		pos      model.Point
	}

	byCircle := make(map[int][]onCircle)
	for _, poc := range e.Relationships.PointsOnCircles {
		byCircle[poc.CircleIndex] = append(byCircle[poc.CircleIndex], onCircle{poc.PointIndex, poc.PointPos})
	}

	circleIndices := make([]int, 0, len(byCircle))
	for ci := range byCircle {
		circleIndices = append(circleIndices, ci)
	}
	sort.Ints(circleIndices)

	var derived []model.Arc
	for _, ci := range circleIndices {
		pts := byCircle[ci]
		if len(pts) < 2 || ci >= len(e.Circles) {
			continue
		}
		circle := e.Circles[ci]

		centerLabel, _ := labels.Find(circle.Center, opts.LabelEqualityTol)

		for i := 0; i < len(pts); i++ {
			for j := i + 1; j < len(pts); j++ {
				p1, p2 := pts[i], pts[j]
				if p1.pointIdx == p2.pointIdx {
					continue
				}

				label1 := labelOrPlaceholder(labels, p1.pos, p1.pointIdx, opts)
				label2 := labelOrPlaceholder(labels, p2.pos, p2.pointIdx, opts)
				if label1 == label2 {
					continue
				}

				angle1 := circle.Center.AngleTo(p1.pos)
				angle2 := circle.Center.AngleTo(p2.pos)
				if angle1 > angle2 {
					angle1, angle2 = angle2, angle1
					label1, label2 = label2, label1
				}

				innerStart, innerEnd := angle1, angle2
				outerStart, outerEnd := angle2, angle1+360
				if angle2-angle1 > 180 {
					innerStart, innerEnd = angle2, angle1+360
					outerStart, outerEnd = angle1, angle2
				}

				derived = append(derived,
					model.Arc{
						Center:      circle.Center,
						Radius:      circle.Radius,
						StartAngle:  innerStart,
						EndAngle:    innerEnd,
						Type:        model.ArcInner,
						Point1Label: label1,
						Point2Label: label2,
						CenterLabel: centerLabel,
					},
					model.Arc{
						Center:      circle.Center,
						Radius:      circle.Radius,
						StartAngle:  outerStart,
						EndAngle:    outerEnd,
						Type:        model.ArcOuter,
						Point1Label: label1,
						Point2Label: label2,
						CenterLabel: centerLabel,
					})
			}
		}
	}

	return derived
}

// AllLineCombinations returns the segment between every pair of extracted
// points, labeled like derived segments. This is the exhaustive candidate
// set used by downstream consumers that need segments the source never
// drew explicitly.
func AllLineCombinations(e *model.Elements, labels *Labels, opts Options) []model.LineSegment {
	var all []model.LineSegment
	for i := 0; i < len(e.Points); i++ {
		for j := i + 1; j < len(e.Points); j++ {
			label1 := labelOrPlaceholder(labels, e.Points[i].Position, i, opts)
			label2 := labelOrPlaceholder(labels, e.Points[j].Position, j, opts)
			all = append(all, model.LineSegment{
				Start:      e.Points[i].Position,
				End:        e.Points[j].Position,
				StartLabel: label1,
				EndLabel:   label2,
			})
		}
	}
	return all
}

func labelOrPlaceholder(labels *Labels, pos model.Point, idx int, opts Options) string {
	if label, ok := labels.Find(pos, opts.LabelEqualityTol); ok {
		return label
	}
	return fmt.Sprintf("P%d", idx)
}
