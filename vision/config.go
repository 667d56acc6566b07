package vision

import (
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-5-mini"

// Config holds the connection settings for a completion backend.
type Config struct {
	url   string
	token string
	model string

	client *http.Client
}

// Option configures a Client.
type Option func(*Config)

// WithBaseURL points the client at an OpenAI-compatible endpoint, such as
// a self-hosted vLLM server's /v1 root.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

// WithModel selects the vision model.
func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

// WithClient overrides the HTTP client.
func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

// Options converts the config into request options for the API client.
func (c *Config) Options() []option.RequestOption {
	if c.url == "" {
		c.url = "https://api.openai.com/v1/"
	}

	if c.client == nil {
		c.client = http.DefaultClient
	}

	c.url = strings.TrimRight(c.url, "/") + "/"

	options := []option.RequestOption{
		option.WithBaseURL(c.url),
		option.WithHTTPClient(c.client),
	}

	if c.token != "" {
		options = append(options, option.WithAPIKey(c.token))
	}

	return options
}
