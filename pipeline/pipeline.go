package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tsunghan-wu/syn-math/coco"
	"github.com/tsunghan-wu/syn-math/mask"
	"github.com/tsunghan-wu/syn-math/model"
	"github.com/tsunghan-wu/syn-math/render"
	"github.com/tsunghan-wu/syn-math/report"
	"github.com/tsunghan-wu/syn-math/tikz"
	"github.com/tsunghan-wu/syn-math/vision"
)

// Summary reports the outcome of one batch run.
type Summary struct {
	Processed int
	Succeeded int
	Failed    int
}

// Processor runs the generation pipeline for one Config.
type Processor struct {
	cfg      Config
	vision   *vision.Client
	compiler *render.Compiler
	logger   *log.Logger
	examples []vision.Example
	rng      *rand.Rand
}

// New validates cfg and builds a ready processor. logger may be nil.
func New(cfg Config, logger *log.Logger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(os.Stderr, "synmath: ", log.LstdFlags)
	}

	options := []vision.Option{vision.WithModel(cfg.Model)}
	token := cfg.APIKey
	if cfg.Backend == BackendVLLM {
		options = append(options, vision.WithBaseURL(cfg.VLLMURL))
	}

	client, err := vision.New(token, options...)
	if err != nil {
		return nil, fmt.Errorf("building vision client: %w", err)
	}

	var examples []vision.Example
	if cfg.ExamplesDir != "" {
		examples, err = vision.LoadExamples(cfg.ExamplesDir)
		if err != nil {
			return nil, fmt.Errorf("loading examples: %w", err)
		}
	}

	return &Processor{
		cfg:      cfg,
		vision:   client,
		compiler: render.NewCompiler(cfg.DPI),
		logger:   logger,
		examples: examples,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Run processes every input image Count times. The per-document index is
// global across inputs, so output directories never collide.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	inputs, err := p.inputs()
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(p.cfg.Output, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output dir: %w", err)
	}

	var s Summary
	index := 0
	for _, imagePath := range inputs {
		for n := 0; n < p.cfg.Count; n++ {
			docDir := filepath.Join(p.cfg.Output, fmt.Sprintf("generated_%03d", index))
			index++
			s.Processed++

			p.logger.Printf("[%d/%d] %s -> %s", s.Processed, len(inputs)*p.cfg.Count, imagePath, docDir)
			if err := p.processDocument(ctx, imagePath, docDir); err != nil {
				s.Failed++
				p.logger.Printf("document %s failed: %v", filepath.Base(docDir), err)
				continue
			}
			s.Succeeded++
		}
	}

	p.logger.Printf("batch complete: %d succeeded, %d failed", s.Succeeded, s.Failed)
	return s, nil
}

// inputs resolves the image list from Input or InputDir.
func (p *Processor) inputs() ([]string, error) {
	if p.cfg.Input != "" {
		if _, err := os.Stat(p.cfg.Input); err != nil {
			return nil, fmt.Errorf("input image: %w", err)
		}
		return []string{p.cfg.Input}, nil
	}
	return listImages(p.cfg.InputDir)
}

// listImages returns the image files in dir, sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif", ".webp":
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)

	if len(images) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}
	return images, nil
}

// layout is one document's output directory tree.
type layout struct {
	root string
	png  string
	tikz string
	pdf  string
	json string
}

func makeLayout(docDir string) (layout, error) {
	l := layout{
		root: docDir,
		png:  filepath.Join(docDir, "png"),
		tikz: filepath.Join(docDir, "tikz"),
		pdf:  filepath.Join(docDir, "pdf"),
		json: filepath.Join(docDir, "json"),
	}
	for _, dir := range []string{l.png, l.tikz, l.pdf, l.json} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return layout{}, fmt.Errorf("creating output layout: %w", err)
		}
	}
	return l, nil
}

// processDocument runs the full per-document pipeline. A panic anywhere in
// the stages becomes an ordinary error, so one malformed document cannot
// take down the batch.
func (p *Processor) processDocument(ctx context.Context, imagePath, docDir string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing: %v", r)
		}
	}()

	dirs, err := makeLayout(docDir)
	if err != nil {
		return err
	}

	req := vision.Request{Variation: p.cfg.Variation}
	if !req.Variation && len(p.examples) > 0 {
		req.Examples = vision.SampleExamples(p.examples, p.cfg.ExampleCount, p.rng)
	}

	source, err := p.vision.GenerateTikZ(ctx, imagePath, req)
	if err != nil {
		return fmt.Errorf("generating TikZ: %w", err)
	}

	if p.cfg.SaveTex {
		if err := os.WriteFile(filepath.Join(dirs.tikz, "img.tex"), []byte(source), 0o644); err != nil {
			return fmt.Errorf("saving TikZ source: %w", err)
		}
	}

	pngPath := filepath.Join(dirs.png, "img.png")
	bbox, err := p.compiler.CompileWithCoords(ctx, source, pngPath)
	if err != nil {
		// Persist the failing source as a compilable document for
		// offline debugging.
		failedPath := filepath.Join(dirs.tikz, "img_failed.tex")
		if werr := os.WriteFile(failedPath, []byte(render.Wrap(source, false)), 0o644); werr == nil {
			p.logger.Printf("failing source saved to %s", failedPath)
		}
		return fmt.Errorf("compiling TikZ: %w", err)
	}
	if bbox == nil {
		p.logger.Printf("no bounding box exported, pixel mapping degraded")
	}

	return p.annotate(ctx, source, bbox, dirs)
}

// annotate runs every post-compilation stage: extraction, coordinate JSON,
// masks, and the labeled report.
func (p *Processor) annotate(ctx context.Context, source string, bbox *model.BoundingBox, dirs layout) error {
	pngPath := filepath.Join(dirs.png, "img.png")
	width, height, err := imageSize(pngPath)
	if err != nil {
		return fmt.Errorf("reading compiled image: %w", err)
	}

	topts := p.cfg.tikzOptions()
	elements, warnings := tikz.Extract(source, topts)
	for _, w := range warnings {
		p.logger.Printf("extraction warning: %s", w.Message)
	}
	if elements.Total() == 0 {
		p.logger.Printf("no geometric elements found in generated source")
	}
	labels := tikz.ExtractLabels(source, topts.LabelMatchRadius)

	dataset := coco.Build("img.png", width, height, bbox, elements, labels, topts)
	if err := writeJSON(filepath.Join(dirs.json, "img.json"), dataset); err != nil {
		return err
	}

	mapper := mask.NewMapper(elements.Scale, bbox, width, height, p.cfg.DPI)
	renderer := mask.NewRenderer(mapper, p.cfg.DPI, p.cfg.maskOptions())
	entities := renderer.EntityMasks(elements, labels, topts)

	if !p.cfg.NoMasks {
		if err := p.writeMasks(renderer, elements, entities, dirs); err != nil {
			return err
		}
	}

	doc := report.Build(source, elements, labels, entities, topts)
	if err := os.WriteFile(filepath.Join(dirs.pdf, "report.tex"), []byte(doc), 0o644); err != nil {
		return fmt.Errorf("saving report source: %w", err)
	}
	// Report rendering is best-effort: the source is already saved.
	if err := p.compiler.Compile(ctx, doc, filepath.Join(dirs.pdf, "report.png")); err != nil {
		p.logger.Printf("report rendering failed: %v", err)
	}

	return nil
}

// maskEntry is one record in the combinations metadata JSON: where the mask
// file lives and the geometric parameters of the entity it covers.
type maskEntry struct {
	Category string `json:"category"`
	Path     string `json:"mask"`
	Label    string `json:"label,omitempty"`

	Start  []float64 `json:"start,omitempty"`
	End    []float64 `json:"end,omitempty"`
	Center []float64 `json:"center,omitempty"`
	Radius float64   `json:"radius,omitempty"`

	StartAngle *float64 `json:"start_angle,omitempty"`
	EndAngle   *float64 `json:"end_angle,omitempty"`
	ArcType    string   `json:"arc_type,omitempty"`

	DerivedFrom string `json:"derived_from,omitempty"`
}

// writeMasks saves the per-category and per-entity mask PNGs under
// masks/ and the combinations metadata under json/.
func (p *Processor) writeMasks(renderer *mask.Renderer, elements *model.Elements, entities []mask.Entity, dirs layout) error {
	masksDir := filepath.Join(dirs.root, "masks")
	if err := os.MkdirAll(masksDir, 0o755); err != nil {
		return fmt.Errorf("creating masks dir: %w", err)
	}

	for name, m := range renderer.CategoryMasks(elements) {
		if err := writeMaskPNG(filepath.Join(masksDir, name+".png"), m); err != nil {
			return err
		}
	}

	combinations := make(map[string]maskEntry, len(entities))
	for _, ent := range entities {
		filename := ent.Key + ".png"
		if err := writeMaskPNG(filepath.Join(masksDir, filename), ent.Mask); err != nil {
			return err
		}

		entry := maskEntry{
			Category: ent.Category,
			Path:     filepath.Join("masks", filename),
			Label:    ent.Label,
		}
		switch {
		case ent.Line != nil:
			entry.Start = []float64{ent.Line.Start.X, ent.Line.Start.Y}
			entry.End = []float64{ent.Line.End.X, ent.Line.End.Y}
			entry.DerivedFrom = ent.Line.DerivedFrom
		case ent.Point != nil:
			entry.Center = []float64{ent.Point.Position.X, ent.Point.Position.Y}
		case ent.Circle != nil:
			entry.Center = []float64{ent.Circle.Center.X, ent.Circle.Center.Y}
			entry.Radius = ent.Circle.Radius
		case ent.Arc != nil:
			startAngle, endAngle := ent.Arc.StartAngle, ent.Arc.EndAngle
			entry.Center = []float64{ent.Arc.Center.X, ent.Arc.Center.Y}
			entry.Radius = ent.Arc.Radius
			entry.StartAngle = &startAngle
			entry.EndAngle = &endAngle
			entry.ArcType = string(ent.Arc.Type)
		}
		combinations[ent.Key] = entry
	}

	return writeJSON(filepath.Join(dirs.json, "img_combinations.json"), combinations)
}

func writeMaskPNG(path string, m *mask.Mask) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mask file: %w", err)
	}
	defer f.Close()

	if err := m.EncodePNG(f); err != nil {
		return fmt.Errorf("encoding mask %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// imageSize reads the pixel dimensions of a PNG without decoding it fully.
func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
