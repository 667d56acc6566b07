package pipeline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsunghan-wu/syn-math/mask"
	"github.com/tsunghan-wu/syn-math/tikz"
	"github.com/tsunghan-wu/syn-math/vision"
)

// Backend names for the vision service.
const (
	BackendOpenAI = "openai"
	BackendVLLM   = "vllm"
)

// Config drives one batch run. Zero values mean "use the default"; callers
// normally start from [DefaultConfig] or [LoadConfig].
type Config struct {
	// Input is a single image path. Mutually exclusive with InputDir.
	Input string `yaml:"input"`

	// InputDir is a directory of images, each processed Count times.
	InputDir string `yaml:"input-dir"`

	// Output is the root directory for generated documents.
	Output string `yaml:"output"`

	// Count is the number of documents to generate per input image.
	Count int `yaml:"count"`

	Model   string `yaml:"model"`
	Backend string `yaml:"backend"`

	// VLLMURL is the OpenAI-compatible base URL of a local vLLM server.
	// Required when Backend is "vllm".
	VLLMURL string `yaml:"vllm-url"`

	// APIKey authenticates the OpenAI backend. Falls back to the
	// OPENAI_API_KEY environment variable.
	APIKey string `yaml:"api-key"`

	DPI int `yaml:"dpi"`

	// Variation asks the model for structural variations instead of exact
	// recreations.
	Variation bool `yaml:"variation"`

	// SaveTex persists the generated TikZ source alongside the outputs.
	SaveTex bool `yaml:"save-tex"`

	// NoMasks skips segmentation mask generation.
	NoMasks bool `yaml:"no-masks"`

	// ExamplesDir holds few-shot example JSON files; ExampleCount of them
	// are sampled into each recreation prompt.
	ExamplesDir  string `yaml:"examples-dir"`
	ExampleCount int    `yaml:"example-count"`

	// Extraction and rendering tuning. Zero values fall back to the
	// library defaults (tikz.DefaultOptions, mask.DefaultOptions).
	Tolerance        float64 `yaml:"tolerance"`
	MinSegmentLength float64 `yaml:"min-segment-length"`
	LabelMatchRadius float64 `yaml:"label-match-radius"`
	StrokeWidth      float64 `yaml:"stroke-width"`
}

// DefaultConfig returns the runtime defaults.
func DefaultConfig() Config {
	topts := tikz.DefaultOptions()
	mopts := mask.DefaultOptions()
	return Config{
		Output:           "./generated_output",
		Count:            1,
		Model:            vision.DefaultModel,
		Backend:          BackendOpenAI,
		DPI:              300,
		ExampleCount:     5,
		Tolerance:        topts.Tolerance,
		MinSegmentLength: topts.MinSegmentLength,
		LabelMatchRadius: topts.LabelMatchRadius,
		StrokeWidth:      mopts.StrokeWidth,
	}
}

// tikzOptions maps the config's tuning fields onto extraction options,
// keeping the library defaults for anything left unset.
func (c *Config) tikzOptions() tikz.Options {
	opts := tikz.DefaultOptions()
	if c.Tolerance > 0 {
		opts.Tolerance = c.Tolerance
	}
	if c.MinSegmentLength > 0 {
		opts.MinSegmentLength = c.MinSegmentLength
	}
	if c.LabelMatchRadius > 0 {
		opts.LabelMatchRadius = c.LabelMatchRadius
	}
	return opts
}

// maskOptions maps the config's tuning fields onto mask rendering options.
func (c *Config) maskOptions() mask.Options {
	opts := mask.DefaultOptions()
	if c.StrokeWidth > 0 {
		opts.StrokeWidth = c.StrokeWidth
	}
	return opts
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks the config and resolves the API key from the environment
// when unset.
func (c *Config) Validate() error {
	if c.Input == "" && c.InputDir == "" {
		return errors.New("either input or input-dir is required")
	}
	if c.Input != "" && c.InputDir != "" {
		return errors.New("input and input-dir are mutually exclusive")
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}
	if c.DPI < 1 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}

	switch c.Backend {
	case BackendOpenAI:
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if c.APIKey == "" {
			return errors.New("api key is required (flag, config, or OPENAI_API_KEY)")
		}
	case BackendVLLM:
		if c.VLLMURL == "" {
			return errors.New("vllm-url is required for the vllm backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
