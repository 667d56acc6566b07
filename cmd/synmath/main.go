// Command synmath generates annotated geometry datasets: it recreates
// geometry figures as TikZ via a vision model, compiles them, and emits
// per-entity segmentation masks, COCO-style coordinate JSON and labeled
// reports.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tsunghan-wu/syn-math/pipeline"
	"github.com/tsunghan-wu/syn-math/render"
)

func main() {
	app := &cli.App{
		Name:  "synmath",
		Usage: "generate segmentation ground truth from geometry images via TikZ",
		Commands: []*cli.Command{
			generateCommand(),
			renderCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generateCommand() *cli.Command {
	defaults := pipeline.DefaultConfig()

	return &cli.Command{
		Name:  "generate",
		Usage: "recreate input images as TikZ and extract their geometry",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file (flags override it)",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "single input image",
			},
			&cli.StringFlag{
				Name:    "input-dir",
				Aliases: []string{"d"},
				Usage:   "directory of input images",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   defaults.Output,
				Usage:   "output directory",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Value:   defaults.Count,
				Usage:   "documents to generate per input image",
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "OpenAI API key (defaults to OPENAI_API_KEY)",
			},
			&cli.StringFlag{
				Name:  "model",
				Value: defaults.Model,
				Usage: "vision model name",
			},
			&cli.StringFlag{
				Name:  "backend",
				Value: defaults.Backend,
				Usage: "vision backend: openai or vllm",
			},
			&cli.StringFlag{
				Name:  "vllm-url",
				Usage: "base URL of an OpenAI-compatible vLLM server",
			},
			&cli.BoolFlag{
				Name:  "variation",
				Usage: "generate structural variations instead of recreations",
			},
			&cli.BoolFlag{
				Name:  "save-tex",
				Usage: "save the generated TikZ source",
			},
			&cli.IntFlag{
				Name:  "dpi",
				Value: defaults.DPI,
				Usage: "output image resolution",
			},
			&cli.BoolFlag{
				Name:  "no-masks",
				Usage: "skip segmentation mask generation",
			},
			&cli.StringFlag{
				Name:  "examples-dir",
				Usage: "directory of few-shot example JSON files",
			},
			&cli.IntFlag{
				Name:  "example-count",
				Value: defaults.ExampleCount,
				Usage: "examples sampled into each prompt",
			},
			&cli.Float64Flag{
				Name:  "tolerance",
				Value: defaults.Tolerance,
				Usage: "coordinate tolerance for relationship inference",
			},
			&cli.Float64Flag{
				Name:  "min-segment-length",
				Value: defaults.MinSegmentLength,
				Usage: "minimum length of derived line segments",
			},
			&cli.Float64Flag{
				Name:  "label-match-radius",
				Value: defaults.LabelMatchRadius,
				Usage: "maximum distance for label-to-marker binding",
			},
			&cli.Float64Flag{
				Name:  "stroke-width",
				Value: defaults.StrokeWidth,
				Usage: "mask stroke width in pixels",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	cfg := pipeline.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = pipeline.LoadConfig(path)
		if err != nil {
			return err
		}
	}

	// Flags override the config file, but only when set.
	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("input-dir") {
		cfg.InputDir = c.String("input-dir")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("count") {
		cfg.Count = c.Int("count")
	}
	if c.IsSet("api-key") {
		cfg.APIKey = c.String("api-key")
	}
	if c.IsSet("model") {
		cfg.Model = c.String("model")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("vllm-url") {
		cfg.VLLMURL = c.String("vllm-url")
	}
	if c.IsSet("variation") {
		cfg.Variation = c.Bool("variation")
	}
	if c.IsSet("save-tex") {
		cfg.SaveTex = c.Bool("save-tex")
	}
	if c.IsSet("dpi") {
		cfg.DPI = c.Int("dpi")
	}
	if c.IsSet("no-masks") {
		cfg.NoMasks = c.Bool("no-masks")
	}
	if c.IsSet("examples-dir") {
		cfg.ExamplesDir = c.String("examples-dir")
	}
	if c.IsSet("example-count") {
		cfg.ExampleCount = c.Int("example-count")
	}
	if c.IsSet("tolerance") {
		cfg.Tolerance = c.Float64("tolerance")
	}
	if c.IsSet("min-segment-length") {
		cfg.MinSegmentLength = c.Float64("min-segment-length")
	}
	if c.IsSet("label-match-radius") {
		cfg.LabelMatchRadius = c.Float64("label-match-radius")
	}
	if c.IsSet("stroke-width") {
		cfg.StrokeWidth = c.Float64("stroke-width")
	}

	logger := log.New(os.Stderr, "synmath: ", log.LstdFlags)
	proc, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	summary, err := proc.Run(c.Context)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Processed)
	}
	return nil
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "compile an existing TikZ file to PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "TikZ file (bare tikzpicture or complete document)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output PNG path (defaults to the input name)",
			},
			&cli.IntFlag{
				Name:  "dpi",
				Value: 300,
				Usage: "output image resolution",
			},
		},
		Action: runRender,
	}
}

func runRender(c *cli.Context) error {
	inputPath := c.String("input")
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading TikZ file: %w", err)
	}

	outputPath := c.String("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".png"
	}

	compiler := render.NewCompiler(c.Int("dpi"))
	if err := compiler.Compile(c.Context, string(data), outputPath); err != nil {
		return err
	}

	fmt.Println(outputPath)
	return nil
}
