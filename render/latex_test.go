package render

import (
	"strings"
	"testing"
)

// ============================================================================
// Document Wrapping Tests
// ============================================================================

func TestIsCompleteDocument(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected bool
	}{
		{"bare tikz", `\begin{tikzpicture}\draw (0,0)--(1,1);\end{tikzpicture}`, false},
		{"complete document", `\documentclass{standalone}\begin{document}x\end{document}`, true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompleteDocument(tt.source); got != tt.expected {
				t.Errorf("IsCompleteDocument() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWrapBareSource(t *testing.T) {
	source := `\begin{tikzpicture}\draw (0,0)--(1,1);\end{tikzpicture}`
	wrapped := Wrap(source, false)

	if !strings.Contains(wrapped, `\documentclass[tikz,border=10pt]{standalone}`) {
		t.Error("wrapped document missing the standalone preamble")
	}
	if !strings.Contains(wrapped, source) {
		t.Error("wrapped document lost the original source")
	}
	if !strings.Contains(wrapped, `\end{document}`) {
		t.Error("wrapped document missing the postamble")
	}
	if strings.Contains(wrapped, `\coordfile`) {
		t.Error("plain wrap included coordinate instrumentation")
	}
}

func TestWrapWithCoords(t *testing.T) {
	wrapped := Wrap(`\begin{tikzpicture}\end{tikzpicture}`, true)

	if !strings.Contains(wrapped, `\coordfile`) {
		t.Error("coords wrap missing the coordinate export instrumentation")
	}
	if !strings.Contains(wrapped, "BBOX:") {
		t.Error("coords wrap missing the BBOX write")
	}
}

func TestWrapCompleteDocumentUntouched(t *testing.T) {
	source := `\documentclass{article}\begin{document}hi\end{document}`
	if got := Wrap(source, true); got != source {
		t.Error("complete document was rewrapped")
	}
}

// ============================================================================
// Bounding Box Parsing Tests
// ============================================================================

func TestParseBoundingBox(t *testing.T) {
	coords := "BBOX:-56.9:-28.45:56.9:28.45\n"
	bbox := ParseBoundingBox(coords)

	if bbox == nil {
		t.Fatal("ParseBoundingBox() = nil, want a bounding box")
	}
	if bbox.MinX != -56.9 || bbox.MinY != -28.45 || bbox.MaxX != 56.9 || bbox.MaxY != 28.45 {
		t.Errorf("bbox = %+v, want {-56.9 -28.45 56.9 28.45}", bbox)
	}
}

func TestParseBoundingBoxMalformed(t *testing.T) {
	tests := []struct {
		name   string
		coords string
	}{
		{"empty", ""},
		{"no bbox line", "NODES:1:2\n"},
		{"too few fields", "BBOX:1:2:3\n"},
		{"non-numeric", "BBOX:a:b:c:d\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if bbox := ParseBoundingBox(tt.coords); bbox != nil {
				t.Errorf("ParseBoundingBox(%q) = %+v, want nil", tt.coords, bbox)
			}
		})
	}
}

func TestParseBoundingBoxSkipsBadLines(t *testing.T) {
	coords := "BBOX:bad\nBBOX:0:0:10:20\n"
	bbox := ParseBoundingBox(coords)

	if bbox == nil || bbox.MaxX != 10 || bbox.MaxY != 20 {
		t.Errorf("bbox = %+v, want the second well-formed line parsed", bbox)
	}
}
