package tikz

import (
	"math"

	"github.com/tsunghan-wu/syn-math/model"
)

// InferRelationships detects incidence relationships between the extracted
// primitives: points lying on circles and points lying on line segments.
//
// The tolerance is relative, scaled by the circle radius or segment length,
// because the coordinates come from a generation model whose numeric error
// grows with magnitude. A point is on a circle when its distance to the
// center differs from the radius by less than radius*tolerance; it is on a
// segment when its perpendicular distance is less than length*tolerance.
//
// The pass is pure and order independent: each (point, primitive) pair is
// classified on its own, so records never interact.
func InferRelationships(e *model.Elements, tolerance float64) model.Relationships {
	var rels model.Relationships

	for pi, point := range e.Points {
		pos := point.Position
		for ci, circle := range e.Circles {
			dist := pos.Distance(circle.Center)
			if math.Abs(dist-circle.Radius) < circle.Radius*tolerance {
				rels.PointsOnCircles = append(rels.PointsOnCircles, model.PointOnCircle{
					PointIndex:  pi,
					CircleIndex: ci,
					PointPos:    pos,
					Center:      circle.Center,
					Distance:    dist,
					Radius:      circle.Radius,
				})
			}
		}
	}

	for pi, point := range e.Points {
		pos := point.Position
		for li, line := range e.Lines {
			dx := line.End.X - line.Start.X
			dy := line.End.Y - line.Start.Y
			length := math.Hypot(dx, dy)
			if length < 1e-6 {
				continue
			}

			// Unclamped projection parameter onto the infinite line.
			t := ((pos.X-line.Start.X)*dx + (pos.Y-line.Start.Y)*dy) / (length * length)

			tc := math.Max(0, math.Min(1, t))
			closest := model.Point{X: line.Start.X + tc*dx, Y: line.Start.Y + tc*dy}

			if pos.Distance(closest) < length*tolerance {
				position := model.PositionMiddle
				switch {
				case t < tolerance:
					position = model.PositionStart
				case t > 1-tolerance:
					position = model.PositionEnd
				}

				rels.PointsOnLines = append(rels.PointsOnLines, model.PointOnLine{
					PointIndex: pi,
					LineIndex:  li,
					PointPos:   pos,
					Start:      line.Start,
					End:        line.End,
					Position:   position,
					T:          t,
				})
			}
		}
	}

	return rels
}
