package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tsunghan-wu/syn-math/model"
)

const (
	// DefaultCompileTimeout bounds one pdflatex run.
	DefaultCompileTimeout = 60 * time.Second

	// DefaultConvertTimeout bounds one PDF-to-PNG conversion.
	DefaultConvertTimeout = 30 * time.Second
)

// Compiler turns TikZ source into PNG files. The zero value is not usable;
// construct with [NewCompiler].
type Compiler struct {
	dpi            int
	compileTimeout time.Duration
	convertTimeout time.Duration

	// workDir is the parent for per-compilation temporary directories.
	// Empty means the system default.
	workDir string
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithCompileTimeout overrides the pdflatex timeout.
func WithCompileTimeout(d time.Duration) Option {
	return func(c *Compiler) { c.compileTimeout = d }
}

// WithConvertTimeout overrides the PDF-to-PNG conversion timeout.
func WithConvertTimeout(d time.Duration) Option {
	return func(c *Compiler) { c.convertTimeout = d }
}

// WithWorkDir places per-compilation temporary directories under dir.
func WithWorkDir(dir string) Option {
	return func(c *Compiler) { c.workDir = dir }
}

// NewCompiler returns a compiler producing PNGs at the given DPI.
func NewCompiler(dpi int, opts ...Option) *Compiler {
	c := &Compiler{
		dpi:            dpi,
		compileTimeout: DefaultCompileTimeout,
		convertTimeout: DefaultConvertTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile wraps (if needed) and compiles source, writing the PNG to
// outputPath. The returned error carries the relevant pdflatex diagnostics
// when compilation fails.
func (c *Compiler) Compile(ctx context.Context, source, outputPath string) error {
	_, err := c.compile(ctx, Wrap(source, false), outputPath, false)
	return err
}

// CompileWithCoords compiles source with bounding-box instrumentation and
// returns the exported bounding box in point units. The bounding box may
// be nil even on success, when the coords file could not be parsed;
// callers then fall back to degraded pixel mapping.
func (c *Compiler) CompileWithCoords(ctx context.Context, source, outputPath string) (*model.BoundingBox, error) {
	return c.compile(ctx, Wrap(source, true), outputPath, true)
}

func (c *Compiler) compile(ctx context.Context, document, outputPath string, wantCoords bool) (*model.BoundingBox, error) {
	tmpdir, err := os.MkdirTemp(c.workDir, "synmath-"+uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("creating compile dir: %w", err)
	}
	defer os.RemoveAll(tmpdir)

	texPath := filepath.Join(tmpdir, "geometry.tex")
	pdfPath := filepath.Join(tmpdir, "geometry.pdf")

	if err := os.WriteFile(texPath, []byte(document), 0o644); err != nil {
		return nil, fmt.Errorf("writing tex file: %w", err)
	}

	if err := c.runLatex(ctx, tmpdir, texPath, pdfPath); err != nil {
		return nil, err
	}

	var bbox *model.BoundingBox
	if wantCoords {
		if data, err := os.ReadFile(filepath.Join(tmpdir, "geometry.coords")); err == nil {
			bbox = ParseBoundingBox(string(data))
		}
	}

	if err := c.convertPDF(ctx, tmpdir, pdfPath, outputPath); err != nil {
		return nil, err
	}
	return bbox, nil
}

func (c *Compiler) runLatex(ctx context.Context, tmpdir, texPath, pdfPath string) error {
	latexCtx, cancel := context.WithTimeout(ctx, c.compileTimeout)
	defer cancel()

	cmd := exec.CommandContext(latexCtx, "pdflatex", "-interaction=nonstopmode", "-output-directory", tmpdir, texPath)
	output, runErr := cmd.CombinedOutput()

	// pdflatex exits nonzero for recoverable issues too; the PDF's
	// existence is the real success signal.
	if _, err := os.Stat(pdfPath); err != nil {
		if latexCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("pdflatex timed out after %s", c.compileTimeout)
		}
		if runErr != nil {
			return fmt.Errorf("pdflatex failed: %w\n%s", runErr, latexDiagnostics(string(output)))
		}
		return fmt.Errorf("pdflatex produced no PDF\n%s", latexDiagnostics(string(output)))
	}
	return nil
}

func (c *Compiler) convertPDF(ctx context.Context, tmpdir, pdfPath, outputPath string) error {
	convertCtx, cancel := context.WithTimeout(ctx, c.convertTimeout)
	defer cancel()

	// pdftoppm first: faster and better output quality.
	outBase := filepath.Join(tmpdir, "output")
	cmd := exec.CommandContext(convertCtx, "pdftoppm", "-png", "-r", strconv.Itoa(c.dpi), "-singlefile", pdfPath, outBase)
	if err := cmd.Run(); err == nil {
		if data, err := os.ReadFile(outBase + ".png"); err == nil {
			return os.WriteFile(outputPath, data, 0o644)
		}
	}

	// ImageMagick fallback.
	cmd = exec.CommandContext(convertCtx, "convert", "-density", strconv.Itoa(c.dpi), pdfPath, "-quality", "100", outputPath)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("converting PDF to PNG: %w", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("PDF conversion produced no PNG: %w", err)
	}
	return nil
}

// latexDiagnostics filters pdflatex output down to the lines a human needs
// to see: LaTeX error markers and anything mentioning "error".
func latexDiagnostics(output string) string {
	var relevant []string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "!") || strings.Contains(strings.ToLower(line), "error") {
			relevant = append(relevant, line)
		}
	}
	if len(relevant) == 0 {
		return "(no diagnostics in compiler output)"
	}
	return strings.Join(relevant, "\n")
}
