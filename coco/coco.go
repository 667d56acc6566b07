package coco

import (
	"fmt"

	"github.com/tsunghan-wu/syn-math/model"
	"github.com/tsunghan-wu/syn-math/tikz"
)

// Category IDs, fixed across all datasets.
const (
	CategoryPoint  = 1
	CategoryLine   = 2
	CategoryCircle = 3
	CategoryArc    = 4
)

// Info describes the dataset.
type Info struct {
	Description string `json:"description"`
	Version     string `json:"version"`
}

// Image is one image record.
type Image struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Category is one of the four fixed geometry categories.
type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

// Annotation is one primitive. Which geometric parameter fields are set
// depends on the category; Segmentation is always present and empty, as a
// placeholder for polygon-based consumers.
type Annotation struct {
	ID         int    `json:"id"`
	ImageID    int    `json:"image_id"`
	CategoryID int    `json:"category_id"`
	Label      string `json:"label,omitempty"`

	Position []float64 `json:"position,omitempty"`
	Start    []float64 `json:"start,omitempty"`
	End      []float64 `json:"end,omitempty"`
	Center   []float64 `json:"center,omitempty"`
	Radius   float64   `json:"radius,omitempty"`

	StartAngle *float64 `json:"start_angle,omitempty"`
	EndAngle   *float64 `json:"end_angle,omitempty"`

	Segmentation [][]float64 `json:"segmentation"`
	Area         float64     `json:"area"`
	IsCrowd      int         `json:"iscrowd"`
}

// Metadata carries the non-COCO extras downstream training needs.
type Metadata struct {
	BBox   *model.BoundingBox `json:"bbox"`
	Scale  float64            `json:"scale"`
	Labels map[string]string  `json:"labels"`
}

// Dataset is the full document for one processed image.
type Dataset struct {
	Info          Info                `json:"info"`
	Images        []Image             `json:"images"`
	Categories    []Category          `json:"categories"`
	Annotations   []Annotation        `json:"annotations"`
	Metadata      Metadata            `json:"metadata"`
	Relationships model.Relationships `json:"relationships"`
}

// Categories returns the fixed category list.
func Categories() []Category {
	return []Category{
		{ID: CategoryPoint, Name: "point", Supercategory: "geometry"},
		{ID: CategoryLine, Name: "line", Supercategory: "geometry"},
		{ID: CategoryCircle, Name: "circle", Supercategory: "geometry"},
		{ID: CategoryArc, Name: "arc", Supercategory: "geometry"},
	}
}

// Build assembles the dataset for one image. Annotation IDs are assigned
// sequentially in category order: points, lines, circles, arcs.
func Build(fileName string, width, height int, bbox *model.BoundingBox, e *model.Elements, labels *tikz.Labels, opts tikz.Options) *Dataset {
	ds := &Dataset{
		Info: Info{
			Description: "Geometry TikZ diagram segmentation",
			Version:     "1.0",
		},
		Images: []Image{
			{ID: 1, FileName: fileName, Width: width, Height: height},
		},
		Categories: Categories(),
		Metadata: Metadata{
			BBox:   bbox,
			Scale:  e.Scale,
			Labels: labelTable(labels),
		},
		Relationships: e.Relationships,
	}

	id := 1
	for i, p := range e.Points {
		label, ok := labels.Find(p.Position, opts.LabelEqualityTol)
		if !ok {
			label = fmt.Sprintf("P%d", i)
		}
		ds.Annotations = append(ds.Annotations, Annotation{
			ID:           id,
			ImageID:      1,
			CategoryID:   CategoryPoint,
			Label:        label,
			Position:     []float64{p.Position.X, p.Position.Y},
			Segmentation: [][]float64{},
		})
		id++
	}

	for _, l := range e.Lines {
		ds.Annotations = append(ds.Annotations, Annotation{
			ID:           id,
			ImageID:      1,
			CategoryID:   CategoryLine,
			Start:        []float64{l.Start.X, l.Start.Y},
			End:          []float64{l.End.X, l.End.Y},
			Segmentation: [][]float64{},
		})
		id++
	}

	for _, c := range e.Circles {
		ds.Annotations = append(ds.Annotations, Annotation{
			ID:           id,
			ImageID:      1,
			CategoryID:   CategoryCircle,
			Center:       []float64{c.Center.X, c.Center.Y},
			Radius:       c.Radius,
			Segmentation: [][]float64{},
		})
		id++
	}

	for _, a := range e.Arcs {
		startAngle, endAngle := a.StartAngle, a.EndAngle
		ds.Annotations = append(ds.Annotations, Annotation{
			ID:           id,
			ImageID:      1,
			CategoryID:   CategoryArc,
			Center:       []float64{a.Center.X, a.Center.Y},
			Radius:       a.Radius,
			StartAngle:   &startAngle,
			EndAngle:     &endAngle,
			Segmentation: [][]float64{},
		})
		id++
	}

	return ds
}

// labelTable flattens the label bindings into a JSON-friendly map keyed by
// "x,y" position strings.
func labelTable(labels *tikz.Labels) map[string]string {
	table := make(map[string]string, labels.Len())
	labels.Each(func(pos model.Point, label string) {
		table[fmt.Sprintf("%g,%g", pos.X, pos.Y)] = label
	})
	return table
}
