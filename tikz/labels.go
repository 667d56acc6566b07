package tikz

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/tsunghan-wu/syn-math/model"
)

var (
	fillLabelRe     = regexp.MustCompile(`\\fill[^;]*\(([^)]+)\)\s*circle[^;]*node[^{]*\{\$?([A-Za-z0-9]+)\$?\}`)
	filldrawLabelRe = regexp.MustCompile(`\\filldraw[^;]*\(([^)]+)\)\s*circle[^;]*node[^{]*\{\$?([A-Za-z0-9]+)\$?\}`)
	coordLabelRe    = regexp.MustCompile(`\\coordinate\s*\(([^)]+)\)\s*at\s*\(([^)]+)\)`)
	standaloneRe    = regexp.MustCompile(`\\node(?:\s*\[[^\]]*\])?\s*at\s*\(([^)]+)\)\s*\{\$?([A-Za-z])\$?\}`)
	bareFillRe      = regexp.MustCompile(`\\fill[^;]*\(([^)]+)\)\s*circle`)
)

type labelEntry struct {
	Pos   model.Point
	Label string
}

// Labels is the point-label table for one document: an ordered list of
// (position, label) bindings. Lookups tolerate floating point noise via
// [Labels.Find]; insertion order is preserved so lookups are deterministic
// when several entries fall within tolerance.
type Labels struct {
	entries []labelEntry
}

// Set binds a label to a position, replacing any existing binding at the
// exact same position.
func (l *Labels) Set(pos model.Point, label string) {
	for i, e := range l.entries {
		if e.Pos == pos {
			l.entries[i].Label = label
			return
		}
	}
	l.entries = append(l.entries, labelEntry{Pos: pos, Label: label})
}

// Find returns the label bound at pos, comparing each coordinate within
// tol. The first binding in insertion order wins.
func (l *Labels) Find(pos model.Point, tol float64) (string, bool) {
	for _, e := range l.entries {
		if math.Abs(e.Pos.X-pos.X) < tol && math.Abs(e.Pos.Y-pos.Y) < tol {
			return e.Label, true
		}
	}
	return "", false
}

// Len returns the number of bindings.
func (l *Labels) Len() int {
	return len(l.entries)
}

// Each calls fn for every binding in insertion order.
func (l *Labels) Each(fn func(pos model.Point, label string)) {
	for _, e := range l.entries {
		fn(e.Pos, e.Label)
	}
}

func (l *Labels) has(pos model.Point) bool {
	for _, e := range l.entries {
		if e.Pos == pos {
			return true
		}
	}
	return false
}

// ExtractLabels recovers the point-label table from TikZ source. Five
// binding patterns are recognized in priority order:
//
//  1. \fill (x,y) circle ... node[...] {$A$}  (marker with attached label)
//  2. \filldraw variant of the same
//  3. \coordinate (A) at (x,y)                (declared name is the label)
//  4. \node at (x,y) {$A$}                    (standalone text node)
//  5. filled markers claimed by none of the above stay unlabeled
//
// Standalone text nodes sit near, not at, the point they name, so pattern 4
// entries are matched to unlabeled filled markers within matchRadius by a
// greedy nearest-first assignment: all candidate (label, marker) pairs are
// sorted by distance and the closest unclaimed pair is bound first. This is
// a heuristic approximation of label placement conventions, not an optimal
// assignment; it can misbind on dense diagrams where two labels crowd one
// marker.
func ExtractLabels(source string, matchRadius float64) *Labels {
	labels := &Labels{}

	for _, re := range []*regexp.Regexp{fillLabelRe, filldrawLabelRe} {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			if pos, ok := literalPoint(m[1]); ok {
				labels.Set(pos, strings.TrimSpace(m[2]))
			}
		}
	}

	for _, m := range coordLabelRe.FindAllStringSubmatch(source, -1) {
		if pos, ok := literalPoint(m[2]); ok {
			labels.Set(pos, strings.TrimSpace(m[1]))
		}
	}

	var standalone []labelEntry
	for _, m := range standaloneRe.FindAllStringSubmatch(source, -1) {
		if pos, ok := literalPoint(m[1]); ok {
			standalone = append(standalone, labelEntry{Pos: pos, Label: strings.TrimSpace(m[2])})
		}
	}

	var markers []model.Point
	for _, m := range bareFillRe.FindAllStringSubmatch(source, -1) {
		if pos, ok := literalPoint(m[1]); ok && !labels.has(pos) {
			markers = append(markers, pos)
		}
	}

	matchStandalone(labels, standalone, markers, matchRadius)

	return labels
}

// matchStandalone performs the greedy nearest-first assignment of
// standalone labels to unlabeled markers. Distance ties break on label
// order, then marker order, so results are deterministic.
func matchStandalone(labels *Labels, standalone []labelEntry, markers []model.Point, matchRadius float64) {
	type candidate struct {
		labelIdx  int
		markerIdx int
		dist      float64
	}

	var candidates []candidate
	for li, s := range standalone {
		for mi, marker := range markers {
			d := s.Pos.Distance(marker)
			if d < matchRadius {
				candidates = append(candidates, candidate{li, mi, d})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		if candidates[i].labelIdx != candidates[j].labelIdx {
			return candidates[i].labelIdx < candidates[j].labelIdx
		}
		return candidates[i].markerIdx < candidates[j].markerIdx
	})

	labelUsed := make([]bool, len(standalone))
	markerUsed := make([]bool, len(markers))
	for _, c := range candidates {
		if labelUsed[c.labelIdx] || markerUsed[c.markerIdx] {
			continue
		}
		labelUsed[c.labelIdx] = true
		markerUsed[c.markerIdx] = true
		labels.Set(markers[c.markerIdx], standalone[c.labelIdx].Label)
	}
}

// literalPoint parses a literal "x,y" token. Unlike resolveCoordinate it
// never consults a symbol table: label positions must be literal.
func literalPoint(token string) (model.Point, bool) {
	return resolveCoordinate(token, nil)
}
