package mask

import (
	"fmt"

	"github.com/tsunghan-wu/syn-math/model"
	"github.com/tsunghan-wu/syn-math/tikz"
)

// Options control mask rendering.
type Options struct {
	// StrokeWidth is the outline width in pixels for lines, circles
	// and arcs.
	StrokeWidth float64

	// MinPointRadius is the minimum rendered radius in pixels for point
	// marker discs, so tiny markers stay visible at low DPI.
	MinPointRadius float64
}

// DefaultOptions returns the rendering defaults.
func DefaultOptions() Options {
	return Options{StrokeWidth: 3, MinPointRadius: 4}
}

// Entity is one individually-masked primitive, keyed by a stable label
// string. Exactly one of the shape fields is set, matching Category.
type Entity struct {
	// Key is the mask's stable identifier, e.g. "Line_AB", "Point_M",
	// "Circle_O", "Arc_AB_inner".
	Key string

	// Category is one of "point", "line", "circle", "arc".
	Category string

	Mask *Mask

	Line   *model.LineSegment
	Point  *model.Dot
	Circle *model.Circle
	Arc    *model.Arc

	// Label carries the point label for point entities and the center
	// label for circle entities.
	Label string
}

// Renderer draws masks for one document against one compiled image.
type Renderer struct {
	mapper *Mapper
	dpi    int
	opts   Options
}

// NewRenderer builds a renderer. The mapper fixes the image dimensions all
// masks will share.
func NewRenderer(mapper *Mapper, dpi int, opts Options) *Renderer {
	return &Renderer{mapper: mapper, dpi: dpi, opts: opts}
}

func (r *Renderer) newMask() *Mask {
	return NewMask(r.mapper.width, r.mapper.height)
}

func (r *Renderer) pointRadius(size float64) float64 {
	px := size * float64(r.dpi) / 72.0
	if px < r.opts.MinPointRadius {
		px = r.opts.MinPointRadius
	}
	return px
}

func (r *Renderer) drawLine(m *Mask, l model.LineSegment) {
	x1, y1 := r.mapper.ToPixel(l.Start)
	x2, y2 := r.mapper.ToPixel(l.End)
	m.StrokeLine(x1, y1, x2, y2, r.opts.StrokeWidth)
}

func (r *Renderer) drawCircle(m *Mask, c model.Circle) {
	cx, cy := r.mapper.ToPixel(c.Center)
	m.StrokeCircle(cx, cy, r.mapper.RadiusToPixels(c.Radius), r.opts.StrokeWidth)
}

func (r *Renderer) drawPoint(m *Mask, p model.Dot) {
	cx, cy := r.mapper.ToPixel(p.Position)
	m.FillDisc(cx, cy, r.pointRadius(p.Size))
}

func (r *Renderer) drawArc(m *Mask, a model.Arc) {
	cx, cy := r.mapper.ToPixel(a.Center)
	m.StrokeArc(cx, cy, r.mapper.RadiusToPixels(a.Radius), a.StartAngle, a.EndAngle, r.opts.StrokeWidth)
}

// CategoryMasks renders one overlay mask per non-empty primitive category,
// plus an "all" mask with every primitive. Keys are "circles", "lines",
// "points", "arcs" and "all".
func (r *Renderer) CategoryMasks(e *model.Elements) map[string]*Mask {
	masks := make(map[string]*Mask)

	if len(e.Circles) > 0 {
		m := r.newMask()
		for _, c := range e.Circles {
			r.drawCircle(m, c)
		}
		masks["circles"] = m
	}
	if len(e.Lines) > 0 {
		m := r.newMask()
		for _, l := range e.Lines {
			r.drawLine(m, l)
		}
		masks["lines"] = m
	}
	if len(e.Points) > 0 {
		m := r.newMask()
		for _, p := range e.Points {
			r.drawPoint(m, p)
		}
		masks["points"] = m
	}
	if len(e.Arcs) > 0 {
		m := r.newMask()
		for _, a := range e.Arcs {
			r.drawArc(m, a)
		}
		masks["arcs"] = m
	}

	all := r.newMask()
	for _, c := range e.Circles {
		r.drawCircle(all, c)
	}
	for _, l := range e.Lines {
		r.drawLine(all, l)
	}
	for _, p := range e.Points {
		r.drawPoint(all, p)
	}
	for _, a := range e.Arcs {
		r.drawArc(all, a)
	}
	masks["all"] = all

	return masks
}

// EntityMasks renders one mask per individual entity: every drawn segment,
// every derived split segment, every derived arc, every point and every
// circle. Entities appear in a deterministic order: drawn lines, split
// lines, arcs, points, circles.
func (r *Renderer) EntityMasks(e *model.Elements, labels *tikz.Labels, topts tikz.Options) []Entity {
	var entities []Entity

	for i := range e.Lines {
		line := e.Lines[i]
		startLabel, ok := labels.Find(line.Start, topts.LabelEqualityTol)
		if !ok {
			startLabel = fmt.Sprintf("P%da", i)
		}
		endLabel, ok := labels.Find(line.End, topts.LabelEqualityTol)
		if !ok {
			endLabel = fmt.Sprintf("P%db", i)
		}
		line.StartLabel, line.EndLabel = startLabel, endLabel

		m := r.newMask()
		r.drawLine(m, line)
		entities = append(entities, Entity{
			Key:      fmt.Sprintf("Line_%s%s", startLabel, endLabel),
			Category: "line",
			Mask:     m,
			Line:     &line,
		})
	}

	for _, line := range tikz.SplitLines(e, labels, topts) {
		line := line
		m := r.newMask()
		r.drawLine(m, line)
		entities = append(entities, Entity{
			Key:      fmt.Sprintf("Line_%s%s", line.StartLabel, line.EndLabel),
			Category: "line",
			Mask:     m,
			Line:     &line,
		})
	}

	for _, arc := range tikz.DeriveArcs(e, labels, topts) {
		arc := arc
		m := r.newMask()
		r.drawArc(m, arc)
		entities = append(entities, Entity{
			Key:      fmt.Sprintf("Arc_%s%s_%s", arc.Point1Label, arc.Point2Label, arc.Type),
			Category: "arc",
			Mask:     m,
			Arc:      &arc,
		})
	}

	for i := range e.Points {
		point := e.Points[i]
		label, ok := labels.Find(point.Position, topts.LabelEqualityTol)
		if !ok {
			label = fmt.Sprintf("P%d", i)
		}

		m := r.newMask()
		r.drawPoint(m, point)
		entities = append(entities, Entity{
			Key:      fmt.Sprintf("Point_%s", label),
			Category: "point",
			Mask:     m,
			Point:    &point,
			Label:    label,
		})
	}

	for i := range e.Circles {
		circle := e.Circles[i]
		centerLabel, ok := labels.Find(circle.Center, topts.LabelEqualityTol)
		if !ok {
			centerLabel = fmt.Sprintf("C%d", i)
		}

		m := r.newMask()
		r.drawCircle(m, circle)
		entities = append(entities, Entity{
			Key:      fmt.Sprintf("Circle_%s", centerLabel),
			Category: "circle",
			Mask:     m,
			Circle:   &circle,
			Label:    centerLabel,
		})
	}

	return entities
}
