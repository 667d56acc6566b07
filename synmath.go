// Package synmath provides a fluent API for extracting typed geometry from
// TikZ source code.
//
// Basic usage:
//
//	elements, warnings, err := synmath.Parse(source).Elements()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tikz.FormatWarnings(warnings))
//	}
//
// With options:
//
//	elements, _, err := synmath.Parse(source).
//	    Tolerance(0.1).
//	    MinSegmentLength(0.5).
//	    Elements()
//
// For the full pipeline (vision generation, compilation, masks, reports),
// the pipeline package drives the subpackages end to end; the lower-level
// tikz, mask and render packages are also available directly.
package synmath

import (
	"errors"

	"github.com/tsunghan-wu/syn-math/model"
	"github.com/tsunghan-wu/syn-math/tikz"
)

// Parser provides a fluent interface for geometry extraction. Each
// configuration method returns a new Parser instance, making it safe for
// concurrent use and allowing method chaining.
type Parser struct {
	source  string
	options tikz.Options
}

// Parse prepares TikZ source for extraction with default options.
//
// Example:
//
//	elements, warnings, err := synmath.Parse(source).Elements()
func Parse(source string) *Parser {
	return &Parser{
		source:  source,
		options: tikz.DefaultOptions(),
	}
}

// clone creates a copy of the Parser so chain methods never mutate their
// receiver.
func (p *Parser) clone() *Parser {
	np := *p
	return &np
}

// ============================================================================
// Configuration Methods (return new Parser instance)
// ============================================================================

// Tolerance sets the relative tolerance for relationship inference.
//
// Example:
//
//	elements, _, err := synmath.Parse(source).Tolerance(0.1).Elements()
func (p *Parser) Tolerance(tol float64) *Parser {
	np := p.clone()
	np.options.Tolerance = tol
	return np
}

// MinSegmentLength sets the cutoff below which drawn segments are treated
// as point markers and dropped.
func (p *Parser) MinSegmentLength(length float64) *Parser {
	np := p.clone()
	np.options.MinSegmentLength = length
	return np
}

// LabelMatchRadius sets the maximum distance at which a standalone text
// node is matched to a filled point marker.
func (p *Parser) LabelMatchRadius(radius float64) *Parser {
	np := p.clone()
	np.options.LabelMatchRadius = radius
	return np
}

// DefaultRadius sets the fallback radius used when a circle's radius
// expression cannot be parsed.
func (p *Parser) DefaultRadius(r float64) *Parser {
	np := p.clone()
	np.options.DefaultRadius = r
	return np
}

// Options replaces the full option set at once.
func (p *Parser) Options(opts tikz.Options) *Parser {
	np := p.clone()
	np.options = opts
	return np
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Elements extracts the typed geometry from the source: circles, line
// segments, points and arcs, with relationships inferred.
//
// Returns the elements, any warnings encountered (non-fatal issues such as
// a defaulted radius), and an error when the source is empty.
func (p *Parser) Elements() (*model.Elements, []tikz.Warning, error) {
	if p.source == "" {
		return nil, nil, errors.New("no TikZ source specified")
	}
	elements, warnings := tikz.Extract(p.source, p.options)
	return elements, warnings, nil
}

// Labels extracts the point-label table from the source.
func (p *Parser) Labels() (*tikz.Labels, error) {
	if p.source == "" {
		return nil, errors.New("no TikZ source specified")
	}
	return tikz.ExtractLabels(p.source, p.options.LabelMatchRadius), nil
}

// Derived extracts the geometry and returns the derived sub-geometry: the
// segments drawn lines split into at labeled interior points, and the
// inner/outer arcs between labeled point pairs on each circle.
func (p *Parser) Derived() ([]model.LineSegment, []model.Arc, error) {
	elements, _, err := p.Elements()
	if err != nil {
		return nil, nil, err
	}
	labels, err := p.Labels()
	if err != nil {
		return nil, nil, err
	}
	segments := tikz.SplitLines(elements, labels, p.options)
	arcs := tikz.DeriveArcs(elements, labels, p.options)
	return segments, arcs, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
