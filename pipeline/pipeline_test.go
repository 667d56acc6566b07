package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tsunghan-wu/syn-math/mask"
	"github.com/tsunghan-wu/syn-math/render"
	"github.com/tsunghan-wu/syn-math/tikz"
)

// ============================================================================
// Input Discovery Tests
// ============================================================================

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt", "c.JPEG"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	images, err := listImages(dir)
	if err != nil {
		t.Fatalf("listImages() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.JPEG"),
	}
	if len(images) != len(want) {
		t.Fatalf("got %d images, want %d: %v", len(images), len(want), images)
	}
	for i := range want {
		if images[i] != want[i] {
			t.Errorf("images[%d] = %q, want %q", i, images[i], want[i])
		}
	}
}

func TestListImagesEmpty(t *testing.T) {
	if _, err := listImages(t.TempDir()); err == nil {
		t.Error("listImages() accepted a directory with no images")
	}
}

// ============================================================================
// Output Layout Tests
// ============================================================================

func TestMakeLayout(t *testing.T) {
	docDir := filepath.Join(t.TempDir(), "generated_000")

	dirs, err := makeLayout(docDir)
	if err != nil {
		t.Fatalf("makeLayout() error: %v", err)
	}

	for _, dir := range []string{dirs.png, dirs.tikz, dirs.pdf, dirs.json} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("layout dir %s not created", dir)
		}
	}
	if dirs.root != docDir {
		t.Errorf("root = %q, want %q", dirs.root, docDir)
	}
}

// ============================================================================
// Annotation Stage Tests
// ============================================================================

const annotateSource = `\begin{tikzpicture}
\coordinate (O) at (0,0);
\draw (O) circle (2);
\fill (2,0) circle (2pt) node[right]{$A$};
\fill (-2,0) circle (2pt) node[left]{$B$};
\draw (2,0) -- (-2,0);
\end{tikzpicture}`

func testProcessor(t *testing.T) *Processor {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Input = "unused.png"
	return &Processor{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
	}
}

// newTestCompiler keeps the best-effort report rendering from stalling the
// test run when a TeX toolchain happens to be installed.
func newTestCompiler(dpi int) *render.Compiler {
	return render.NewCompiler(dpi,
		render.WithCompileTimeout(2*time.Second),
		render.WithConvertTimeout(2*time.Second))
}

// writeCanvas puts a real PNG where the compiler would have, so annotate
// can read its dimensions.
func writeCanvas(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := mask.NewMask(w, h).EncodePNG(f); err != nil {
		t.Fatal(err)
	}
}

func TestAnnotate(t *testing.T) {
	p := testProcessor(t)
	p.compiler = newTestCompiler(p.cfg.DPI)

	dirs, err := makeLayout(filepath.Join(t.TempDir(), "generated_000"))
	if err != nil {
		t.Fatal(err)
	}
	writeCanvas(t, filepath.Join(dirs.png, "img.png"), 120, 120)

	if err := p.annotate(context.Background(), annotateSource, nil, dirs); err != nil {
		t.Fatalf("annotate() error: %v", err)
	}

	// Coordinate JSON.
	raw, err := os.ReadFile(filepath.Join(dirs.json, "img.json"))
	if err != nil {
		t.Fatalf("coordinate JSON not written: %v", err)
	}
	var dataset struct {
		Images      []struct{ Width, Height int }
		Annotations []struct {
			CategoryID int `json:"category_id"`
		}
	}
	if err := json.Unmarshal(raw, &dataset); err != nil {
		t.Fatalf("coordinate JSON invalid: %v", err)
	}
	if len(dataset.Images) != 1 || dataset.Images[0].Width != 120 {
		t.Errorf("image record = %+v", dataset.Images)
	}
	if len(dataset.Annotations) == 0 {
		t.Error("no annotations in coordinate JSON")
	}

	// Masks and combinations metadata.
	for _, name := range []string{"all.png", "circles.png", "lines.png", "points.png", "Line_AB.png", "Point_A.png"} {
		if _, err := os.Stat(filepath.Join(dirs.root, "masks", name)); err != nil {
			t.Errorf("mask %s not written", name)
		}
	}
	raw, err = os.ReadFile(filepath.Join(dirs.json, "img_combinations.json"))
	if err != nil {
		t.Fatalf("combinations JSON not written: %v", err)
	}
	var combinations map[string]maskEntry
	if err := json.Unmarshal(raw, &combinations); err != nil {
		t.Fatalf("combinations JSON invalid: %v", err)
	}
	line, ok := combinations["Line_AB"]
	if !ok {
		t.Fatalf("combinations missing Line_AB, got %v", keys(combinations))
	}
	if line.Category != "line" || line.Path != filepath.Join("masks", "Line_AB.png") {
		t.Errorf("Line_AB entry = %+v", line)
	}

	// Report source.
	if _, err := os.Stat(filepath.Join(dirs.pdf, "report.tex")); err != nil {
		t.Error("report source not written")
	}
}

func TestAnnotateNoMasks(t *testing.T) {
	p := testProcessor(t)
	p.cfg.NoMasks = true
	p.compiler = newTestCompiler(p.cfg.DPI)

	dirs, err := makeLayout(filepath.Join(t.TempDir(), "generated_000"))
	if err != nil {
		t.Fatal(err)
	}
	writeCanvas(t, filepath.Join(dirs.png, "img.png"), 80, 80)

	if err := p.annotate(context.Background(), annotateSource, nil, dirs); err != nil {
		t.Fatalf("annotate() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dirs.root, "masks")); !os.IsNotExist(err) {
		t.Error("masks dir created despite NoMasks")
	}
	if _, err := os.Stat(filepath.Join(dirs.json, "img.json")); err != nil {
		t.Error("coordinate JSON must still be written with NoMasks")
	}
}

func TestAnnotateHonorsConfigOptions(t *testing.T) {
	p := testProcessor(t)
	// The diagram's only segment is 4 units long; a larger cutoff must
	// drop it from the extraction and from the mask output.
	p.cfg.MinSegmentLength = 10
	p.compiler = newTestCompiler(p.cfg.DPI)

	dirs, err := makeLayout(filepath.Join(t.TempDir(), "generated_000"))
	if err != nil {
		t.Fatal(err)
	}
	writeCanvas(t, filepath.Join(dirs.png, "img.png"), 120, 120)

	if err := p.annotate(context.Background(), annotateSource, nil, dirs); err != nil {
		t.Fatalf("annotate() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dirs.root, "masks", "lines.png")); !os.IsNotExist(err) {
		t.Error("lines mask written despite the segment cutoff")
	}

	raw, err := os.ReadFile(filepath.Join(dirs.json, "img_combinations.json"))
	if err != nil {
		t.Fatal(err)
	}
	var combinations map[string]maskEntry
	if err := json.Unmarshal(raw, &combinations); err != nil {
		t.Fatal(err)
	}
	for key := range combinations {
		if combinations[key].Category == "line" {
			t.Errorf("line entity %s survived the segment cutoff", key)
		}
	}
}

// ============================================================================
// Mask Writing Tests
// ============================================================================

func TestWriteMasksArcMetadata(t *testing.T) {
	source := `\begin{tikzpicture}
\draw (0,0) circle (2);
\fill (2,0) circle (2pt) node[right]{$A$};
\fill (0,2) circle (2pt) node[above]{$B$};
\end{tikzpicture}`

	topts := tikz.DefaultOptions()
	elements, _ := tikz.Extract(source, topts)
	labels := tikz.ExtractLabels(source, topts.LabelMatchRadius)

	renderer := mask.NewRenderer(mask.NewMapper(elements.Scale, nil, 200, 200, 72), 72, mask.DefaultOptions())
	entities := renderer.EntityMasks(elements, labels, topts)

	p := testProcessor(t)
	dirs, err := makeLayout(filepath.Join(t.TempDir(), "generated_000"))
	if err != nil {
		t.Fatal(err)
	}

	if err := p.writeMasks(renderer, elements, entities, dirs); err != nil {
		t.Fatalf("writeMasks() error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dirs.json, "img_combinations.json"))
	if err != nil {
		t.Fatal(err)
	}
	var combinations map[string]maskEntry
	if err := json.Unmarshal(raw, &combinations); err != nil {
		t.Fatal(err)
	}

	inner, ok := combinations["Arc_AB_inner"]
	if !ok {
		t.Fatalf("combinations missing Arc_AB_inner, got %v", keys(combinations))
	}
	if inner.ArcType != "inner" || inner.StartAngle == nil || inner.EndAngle == nil {
		t.Errorf("arc entry = %+v", inner)
	}
	if inner.Radius != 2 {
		t.Errorf("arc radius = %v, want 2", inner.Radius)
	}
	if _, err := os.Stat(filepath.Join(dirs.root, inner.Path)); err != nil {
		t.Errorf("arc mask path %s does not resolve", inner.Path)
	}
}

func keys(m map[string]maskEntry) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
