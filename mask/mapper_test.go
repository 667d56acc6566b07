package mask

import (
	"math"
	"testing"

	"github.com/tsunghan-wu/syn-math/model"
)

// ============================================================================
// Bounding Box Mapping Tests
// ============================================================================

func TestToPixelWithBoundingBox(t *testing.T) {
	// 80x80pt bbox plus 10pt border on each side: 100x100pt page mapped
	// onto a 200x200 image, so 2 pixels per point.
	bbox := &model.BoundingBox{MinX: 0, MinY: 0, MaxX: 80, MaxY: 80}
	m := NewMapper(1.0, bbox, 200, 200, 300)

	if m.Degraded() {
		t.Fatal("Degraded() = true with a bounding box")
	}

	// Abstract (1,1) is (28.45, 28.45) in points.
	px, py := m.ToPixel(model.Point{X: 1, Y: 1})
	if math.Abs(px-76.9) > 0.0001 {
		t.Errorf("px = %v, want 76.9", px)
	}
	if math.Abs(py-123.1) > 0.0001 {
		t.Errorf("py = %v, want 123.1 (Y inverted)", py)
	}
}

func TestToPixelBoundingBoxOrigin(t *testing.T) {
	bbox := &model.BoundingBox{MinX: -50, MinY: -50, MaxX: 50, MaxY: 50}
	m := NewMapper(1.0, bbox, 120, 120, 300)

	// Origin in abstract space is point (0,0); with this symmetric bbox it
	// must land at the image center.
	px, py := m.ToPixel(model.Point{})
	if math.Abs(px-60) > 0.0001 || math.Abs(py-60) > 0.0001 {
		t.Errorf("origin = (%v, %v), want image center (60, 60)", px, py)
	}
}

func TestToPixelAppliesScale(t *testing.T) {
	bbox := &model.BoundingBox{MinX: 0, MinY: 0, MaxX: 80, MaxY: 80}
	m := NewMapper(2.0, bbox, 200, 200, 300)

	px1, _ := m.ToPixel(model.Point{X: 1, Y: 0})

	unscaled := NewMapper(1.0, bbox, 200, 200, 300)
	px2, _ := unscaled.ToPixel(model.Point{X: 2, Y: 0})

	if math.Abs(px1-px2) > 0.0001 {
		t.Errorf("scale 2 at x=1 gives %v, scale 1 at x=2 gives %v; want equal", px1, px2)
	}
}

// ============================================================================
// Fallback Mapping Tests
// ============================================================================

func TestToPixelFallbackCenterOrigin(t *testing.T) {
	m := NewMapper(1.0, nil, 400, 200, 72)

	if !m.Degraded() {
		t.Fatal("Degraded() = false without a bounding box")
	}

	// A at the origin maps to the image center; B at (4,0) maps right of
	// it by 4 * 28.45 pixels at 72 DPI.
	ax, ay := m.ToPixel(model.Point{X: 0, Y: 0})
	bx, by := m.ToPixel(model.Point{X: 4, Y: 0})

	if ax != 200 || ay != 100 {
		t.Errorf("A = (%v, %v), want image center (200, 100)", ax, ay)
	}
	if bx <= ax {
		t.Errorf("B x = %v, want right of A at %v", bx, ax)
	}
	if math.Abs(bx-313.8) > 0.0001 {
		t.Errorf("B x = %v, want 313.8", bx)
	}
	if by != ay {
		t.Errorf("B y = %v, want same row as A (%v)", by, ay)
	}
}

func TestToPixelFallbackInvertsY(t *testing.T) {
	m := NewMapper(1.0, nil, 400, 400, 72)

	_, up := m.ToPixel(model.Point{X: 0, Y: 1})
	_, down := m.ToPixel(model.Point{X: 0, Y: -1})

	if up >= 200 || down <= 200 {
		t.Errorf("y=+1 maps to row %v and y=-1 to row %v; want above/below center", up, down)
	}
}

// ============================================================================
// Radius Conversion Tests
// ============================================================================

func TestRadiusToPixels(t *testing.T) {
	tests := []struct {
		name     string
		scale    float64
		dpi      int
		radius   float64
		expected float64
	}{
		{"unit radius at 72dpi", 1.0, 72, 1, 28.45},
		{"unit radius at 300dpi", 1.0, 300, 1, 28.45 * 300 / 72},
		{"scaled radius", 2.0, 72, 1, 56.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMapper(tt.scale, nil, 100, 100, tt.dpi)
			got := m.RadiusToPixels(tt.radius)
			if math.Abs(got-tt.expected) > 0.0001 {
				t.Errorf("RadiusToPixels(%v) = %v, want %v", tt.radius, got, tt.expected)
			}
		})
	}
}

func TestRadiusToPixelsModeIndependent(t *testing.T) {
	bbox := &model.BoundingBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	with := NewMapper(1.0, bbox, 200, 200, 300)
	without := NewMapper(1.0, nil, 200, 200, 300)

	if with.RadiusToPixels(1.5) != without.RadiusToPixels(1.5) {
		t.Error("radius conversion differs between mapping modes")
	}
}
