package synmath

import (
	"testing"

	"github.com/tsunghan-wu/syn-math/tikz"
)

const triangleSource = `\begin{tikzpicture}
\fill (0,0) circle (2pt) node[below]{$A$};
\fill (4,0) circle (2pt) node[below]{$B$};
\fill (2,3) circle (2pt) node[above]{$C$};
\draw (0,0) -- (4,0) -- (2,3) -- cycle;
\end{tikzpicture}`

func TestParseElements(t *testing.T) {
	elements, warnings, err := Parse(triangleSource).Elements()
	if err != nil {
		t.Fatalf("Elements() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if len(elements.Lines) != 3 {
		t.Errorf("got %d lines, want 3 (cycle closed)", len(elements.Lines))
	}
	if len(elements.Points) != 3 {
		t.Errorf("got %d points, want 3", len(elements.Points))
	}
}

func TestParseEmptySource(t *testing.T) {
	if _, _, err := Parse("").Elements(); err == nil {
		t.Error("Elements() accepted empty source")
	}
	if _, err := Parse("").Labels(); err == nil {
		t.Error("Labels() accepted empty source")
	}
}

func TestParseLabels(t *testing.T) {
	labels, err := Parse(triangleSource).Labels()
	if err != nil {
		t.Fatalf("Labels() error: %v", err)
	}
	if labels.Len() != 3 {
		t.Errorf("got %d labels, want 3", labels.Len())
	}
}

func TestParserChainImmutability(t *testing.T) {
	base := Parse(triangleSource)
	strict := base.Tolerance(0.01).MinSegmentLength(1.0)

	if base == strict {
		t.Fatal("chain methods must return a new instance")
	}

	baseElements := Must(first(base.Elements()))
	strictElements := Must(first(strict.Elements()))

	// The strict chain's 1.0 cutoff cannot have leaked into base.
	if len(baseElements.Lines) != len(strictElements.Lines) {
		// Triangle sides are all longer than 1.0, so both keep 3 lines.
		t.Errorf("base %d lines, strict %d lines, want equal",
			len(baseElements.Lines), len(strictElements.Lines))
	}
}

func TestParserDerived(t *testing.T) {
	source := `\begin{tikzpicture}
\draw (0,0) circle (2);
\fill (2,0) circle (2pt) node[right]{$A$};
\fill (-2,0) circle (2pt) node[left]{$B$};
\end{tikzpicture}`

	_, arcs, err := Parse(source).Derived()
	if err != nil {
		t.Fatalf("Derived() error: %v", err)
	}
	if len(arcs) != 2 {
		t.Fatalf("got %d derived arcs, want inner and outer", len(arcs))
	}
	if arcs[0].Type == arcs[1].Type {
		t.Error("derived arcs must be one inner and one outer")
	}
}

func TestParserOptions(t *testing.T) {
	opts := tikz.DefaultOptions()
	opts.MinSegmentLength = 5.0

	elements := Must(first(Parse(triangleSource).Options(opts).Elements()))
	if len(elements.Lines) != 0 {
		t.Errorf("got %d lines with 5.0 cutoff, want 0", len(elements.Lines))
	}
}

// first drops the warnings return so Must can wrap three-value terminals.
func first[T any](val T, _ []tikz.Warning, err error) (T, error) {
	return val, err
}
