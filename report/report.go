package report

import (
	"fmt"
	"strings"

	"github.com/tsunghan-wu/syn-math/mask"
	"github.com/tsunghan-wu/syn-math/model"
	"github.com/tsunghan-wu/syn-math/tikz"
)

const header = `\documentclass[11pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage{tikz}
\usepackage{amsmath,amssymb}
\usepackage{booktabs}
\usepackage{longtable}
\usetikzlibrary{angles,quotes,calc,intersections,through,backgrounds,patterns,decorations.markings,arrows.meta,shapes}

\begin{document}

\section*{Geometry Figure Segmentation Report}

\subsection*{Original Figure}
\begin{center}
`

// Build renders the report document. entities supplies the per-entity
// records produced by mask generation, which carry the resolved labels for
// segments, arcs and circles.
func Build(source string, e *model.Elements, labels *tikz.Labels, entities []mask.Entity, opts tikz.Options) string {
	var b strings.Builder

	b.WriteString(header)
	b.WriteString(source)
	b.WriteString("\n\\end{center}\n")

	writePoints(&b, e, labels, opts)
	writeCircles(&b, entities)
	writeLines(&b, entities)
	writeArcs(&b, entities)
	writeRelationships(&b, e, labels, opts)

	b.WriteString("\n\\end{document}\n")
	return b.String()
}

func writePoints(b *strings.Builder, e *model.Elements, labels *tikz.Labels, opts tikz.Options) {
	b.WriteString(`
\subsection*{Points}
\begin{longtable}{lcc}
\toprule
\textbf{Label} & \textbf{X} & \textbf{Y} \\
\midrule
`)
	for i, p := range e.Points {
		label, ok := labels.Find(p.Position, opts.LabelEqualityTol)
		if !ok {
			label = fmt.Sprintf("P%d", i)
		}
		note := ""
		for _, c := range e.Circles {
			if samePosition(c.Center, p.Position, opts.LabelEqualityTol) {
				note = " (circle center)"
				break
			}
		}
		fmt.Fprintf(b, "%s%s & %.3f & %.3f \\\\\n", label, note, p.Position.X, p.Position.Y)
	}
	b.WriteString("\\bottomrule\n\\end{longtable}\n")
}

func writeCircles(b *strings.Builder, entities []mask.Entity) {
	b.WriteString(`
\subsection*{Circles}
\begin{longtable}{lcc}
\toprule
\textbf{Name} & \textbf{Center} & \textbf{Radius} \\
\midrule
`)
	for _, ent := range entities {
		if ent.Category != "circle" {
			continue
		}
		fmt.Fprintf(b, "Circle at %s & (%.3f, %.3f) & %.3f \\\\\n",
			ent.Label, ent.Circle.Center.X, ent.Circle.Center.Y, ent.Circle.Radius)
	}
	b.WriteString("\\bottomrule\n\\end{longtable}\n")
}

func writeLines(b *strings.Builder, entities []mask.Entity) {
	b.WriteString(`
\subsection*{Line Segments}
\begin{longtable}{lll}
\toprule
\textbf{Segment} & \textbf{From} & \textbf{To} \\
\midrule
`)
	for _, ent := range entities {
		if ent.Category != "line" {
			continue
		}
		fmt.Fprintf(b, "%s%s & %s & %s \\\\\n",
			ent.Line.StartLabel, ent.Line.EndLabel, ent.Line.StartLabel, ent.Line.EndLabel)
	}
	b.WriteString("\\bottomrule\n\\end{longtable}\n")
}

func writeArcs(b *strings.Builder, entities []mask.Entity) {
	b.WriteString(`
\subsection*{Arcs}
\begin{longtable}{llll}
\toprule
\textbf{Arc} & \textbf{Circle} & \textbf{Points} & \textbf{Type} \\
\midrule
`)
	for _, ent := range entities {
		if ent.Category != "arc" {
			continue
		}
		center := ent.Arc.CenterLabel
		if center == "" {
			center = "?"
		}
		fmt.Fprintf(b, "Arc %s%s & Circle %s & %s, %s & %s \\\\\n",
			ent.Arc.Point1Label, ent.Arc.Point2Label, center,
			ent.Arc.Point1Label, ent.Arc.Point2Label, ent.Arc.Type)
	}
	b.WriteString("\\bottomrule\n\\end{longtable}\n")
}

func writeRelationships(b *strings.Builder, e *model.Elements, labels *tikz.Labels, opts tikz.Options) {
	b.WriteString("\n\\subsection*{Geometric Relationships}\n")

	if len(e.Relationships.PointsOnCircles) > 0 {
		b.WriteString("\\textbf{Points on Circles:}\n\\begin{itemize}\n")
		for _, rel := range e.Relationships.PointsOnCircles {
			pointLabel, ok := labels.Find(rel.PointPos, opts.LabelEqualityTol)
			if !ok {
				pointLabel = fmt.Sprintf("P%d", rel.PointIndex)
			}
			centerLabel, ok := labels.Find(rel.Center, opts.LabelEqualityTol)
			if !ok {
				centerLabel = fmt.Sprintf("C%d", rel.CircleIndex)
			}
			fmt.Fprintf(b, "  \\item Point %s is on Circle %s\n", pointLabel, centerLabel)
		}
		b.WriteString("\\end{itemize}\n")
	}

	if len(e.Relationships.PointsOnLines) > 0 {
		b.WriteString("\\textbf{Points on Lines:}\n\\begin{itemize}\n")
		for _, rel := range e.Relationships.PointsOnLines {
			pointLabel, ok := labels.Find(rel.PointPos, opts.LabelEqualityTol)
			if !ok {
				pointLabel = fmt.Sprintf("P%d", rel.PointIndex)
			}
			startLabel, ok := labels.Find(rel.Start, opts.LabelEqualityTol)
			if !ok {
				startLabel = "?"
			}
			endLabel, ok := labels.Find(rel.End, opts.LabelEqualityTol)
			if !ok {
				endLabel = "?"
			}
			fmt.Fprintf(b, "  \\item Point %s is at %s of line %s%s\n",
				pointLabel, rel.Position, startLabel, endLabel)
		}
		b.WriteString("\\end{itemize}\n")
	}
}

func samePosition(a, b model.Point, tol float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx < tol && dy < tol
}
