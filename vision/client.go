package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go/v3"
)

// Client generates TikZ source from diagram images.
type Client struct {
	*Config
	completions openai.ChatCompletionService
}

// New builds a client. token may be empty for backends that do not
// authenticate (local vLLM).
func New(token string, options ...Option) (*Client, error) {
	cfg := &Config{
		token: token,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Client{
		Config:      cfg,
		completions: openai.NewChatCompletionService(cfg.Options()...),
	}, nil
}

// Request selects the prompt variant for one generation.
type Request struct {
	// Variation asks for a structurally equivalent variation instead of
	// an exact recreation.
	Variation bool

	// Examples, when non-empty, are spliced into the prompt for few-shot
	// recreation. Ignored in variation mode.
	Examples []Example
}

// GenerateTikZ sends the image with the selected prompt and returns the
// cleaned TikZ source from the model's response.
func (c *Client) GenerateTikZ(ctx context.Context, imagePath string, req Request) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	prompt := RecreationPrompt()
	switch {
	case req.Variation:
		prompt = VariationPrompt
	case len(req.Examples) > 0:
		prompt = PromptWithExamples(req.Examples)
	}

	model := c.model
	if model == "" {
		model = DefaultModel
	}

	imageURL := openai.ChatCompletionContentPartImageImageURLParam{
		URL:    "data:" + mediaType(imagePath) + ";base64," + base64.StdEncoding.EncodeToString(data),
		Detail: "high",
	}

	body := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),

		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(imageURL),
			}),
		},
	}

	completion, err := c.completions.New(ctx, body)
	if err != nil {
		return "", fmt.Errorf("vision completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("vision completion returned no choices")
	}

	source := ExtractTikZ(completion.Choices[0].Message.Content)
	if source == "" {
		return "", errors.New("no TikZ code in model response")
	}
	return source, nil
}

// mediaType maps a file extension to its MIME type, defaulting to PNG.
func mediaType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
