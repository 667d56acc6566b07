package tikz

import (
	"testing"

	"github.com/tsunghan-wu/syn-math/model"
)

// ============================================================================
// Attached Label Tests
// ============================================================================

func TestExtractLabelsAttached(t *testing.T) {
	source := `\fill (0,0) circle (2pt) node[below]{$A$};
\filldraw (4,0) circle (2pt) node[right]{$B2$};`

	labels := ExtractLabels(source, 0.5)

	if got, ok := labels.Find(model.Point{X: 0, Y: 0}, 0.01); !ok || got != "A" {
		t.Errorf("label at (0,0) = %q, %v; want A", got, ok)
	}
	if got, ok := labels.Find(model.Point{X: 4, Y: 0}, 0.01); !ok || got != "B2" {
		t.Errorf("label at (4,0) = %q, %v; want B2", got, ok)
	}
}

func TestExtractLabelsCoordinateNames(t *testing.T) {
	source := `\coordinate (M) at (2,1);`
	labels := ExtractLabels(source, 0.5)

	if got, ok := labels.Find(model.Point{X: 2, Y: 1}, 0.01); !ok || got != "M" {
		t.Errorf("label at (2,1) = %q, %v; want M", got, ok)
	}
}

// ============================================================================
// Standalone Label Matching Tests
// ============================================================================

func TestExtractLabelsStandaloneMatch(t *testing.T) {
	source := `\fill (0,0) circle (2pt);
\node at (0.2,0.2) {$A$};`

	labels := ExtractLabels(source, 0.5)

	if got, ok := labels.Find(model.Point{X: 0, Y: 0}, 0.01); !ok || got != "A" {
		t.Errorf("label at (0,0) = %q, %v; want A from standalone node", got, ok)
	}
}

func TestExtractLabelsStandaloneTooFar(t *testing.T) {
	source := `\fill (0,0) circle (2pt);
\node at (2,2) {$A$};`

	labels := ExtractLabels(source, 0.5)

	if _, ok := labels.Find(model.Point{X: 0, Y: 0}, 0.01); ok {
		t.Error("marker got a label from a node outside the match radius")
	}
}

func TestExtractLabelsGreedyNearestFirst(t *testing.T) {
	// Two markers, two contested labels. X is nearest to the first marker
	// overall, so it claims it; Y then takes the remaining marker even
	// though the first marker was also within Y's radius.
	source := `\fill (0,0) circle (2pt);
\fill (0.4,0) circle (2pt);
\node at (0.1,0) {$X$};
\node at (0.2,0) {$Y$};`

	labels := ExtractLabels(source, 0.5)

	if got, _ := labels.Find(model.Point{X: 0, Y: 0}, 0.01); got != "X" {
		t.Errorf("first marker label = %q, want X", got)
	}
	if got, _ := labels.Find(model.Point{X: 0.4, Y: 0}, 0.01); got != "Y" {
		t.Errorf("second marker label = %q, want Y", got)
	}
}

func TestExtractLabelsStandaloneSkipsLabeledMarkers(t *testing.T) {
	// The marker already carries an attached label; the standalone node
	// must not rebind it.
	source := `\fill (0,0) circle (2pt) node[below]{$A$};
\node at (0.1,0) {$Z$};`

	labels := ExtractLabels(source, 0.5)

	if got, _ := labels.Find(model.Point{X: 0, Y: 0}, 0.01); got != "A" {
		t.Errorf("label at (0,0) = %q, want A to be kept", got)
	}
}

// ============================================================================
// Lookup Tests
// ============================================================================

func TestLabelsFindTolerance(t *testing.T) {
	labels := &Labels{}
	labels.Set(model.Point{X: 1, Y: 1}, "A")

	if got, ok := labels.Find(model.Point{X: 1.005, Y: 0.995}, 0.01); !ok || got != "A" {
		t.Errorf("Find within tolerance = %q, %v; want A, true", got, ok)
	}
	if _, ok := labels.Find(model.Point{X: 1.02, Y: 1}, 0.01); ok {
		t.Error("Find outside tolerance succeeded")
	}
}

func TestLabelsSetOverwrites(t *testing.T) {
	labels := &Labels{}
	labels.Set(model.Point{X: 0, Y: 0}, "A")
	labels.Set(model.Point{X: 0, Y: 0}, "B")

	if labels.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", labels.Len())
	}
	if got, _ := labels.Find(model.Point{X: 0, Y: 0}, 0.01); got != "B" {
		t.Errorf("label = %q, want B after overwrite", got)
	}
}
