package render

import (
	"strconv"
	"strings"

	"github.com/tsunghan-wu/syn-math/model"
)

// Preamble wraps bare TikZ code into a standalone document. The 10pt
// border matters: the coordinate-to-pixel mapping downstream assumes it.
const Preamble = `\documentclass[tikz,border=10pt]{standalone}
\usepackage{tikz}
\usepackage{amsmath,amssymb}
\usetikzlibrary{angles,quotes,calc,intersections,through,backgrounds,patterns,decorations.markings,arrows.meta,shapes}
\begin{document}
`

// PreambleWithCoords is the instrumented variant: at end of document it
// writes the picture's bounding box, in point units with the pt suffix
// stripped, to \jobname.coords as a single "BBOX:minx:miny:maxx:maxy" line.
const PreambleWithCoords = `\documentclass[tikz,border=10pt]{standalone}
\usepackage{tikz}
\usepackage{amsmath,amssymb}
\usetikzlibrary{angles,quotes,calc,intersections,through,backgrounds,patterns,decorations.markings,arrows.meta,shapes}

\newwrite\coordfile
\immediate\openout\coordfile=\jobname.coords

\makeatletter
\AtEndDocument{%
  \immediate\write\coordfile{BBOX:\strip@pt\pgf@picminx:\strip@pt\pgf@picminy:\strip@pt\pgf@picmaxx:\strip@pt\pgf@picmaxy}%
  \immediate\closeout\coordfile
}
\makeatother

\begin{document}
`

// Postamble closes a wrapped document.
const Postamble = `
\end{document}
`

// IsCompleteDocument reports whether the source already carries its own
// document scaffolding and must not be wrapped.
func IsCompleteDocument(source string) bool {
	return strings.Contains(source, `\documentclass`)
}

// Wrap returns source as a compilable document, adding the standalone
// preamble and postamble unless the source is already complete. withCoords
// selects the bounding-box-exporting preamble; it has no effect on sources
// that arrive complete.
func Wrap(source string, withCoords bool) string {
	if IsCompleteDocument(source) {
		return source
	}
	if withCoords {
		return PreambleWithCoords + source + Postamble
	}
	return Preamble + source + Postamble
}

// ParseBoundingBox scans a .coords file's content for the BBOX line and
// parses the four point-unit values. Returns nil when no well-formed BBOX
// line is present.
func ParseBoundingBox(coords string) *model.BoundingBox {
	for _, line := range strings.Split(coords, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "BBOX:") {
			continue
		}
		parts := strings.Split(strings.TrimPrefix(line, "BBOX:"), ":")
		if len(parts) != 4 {
			continue
		}
		values := make([]float64, 4)
		ok := true
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				ok = false
				break
			}
			values[i] = v
		}
		if !ok {
			continue
		}
		return &model.BoundingBox{MinX: values[0], MinY: values[1], MaxX: values[2], MaxY: values[3]}
	}
	return nil
}
