// Package imagegen drives the external image-generation service: a thin
// OpenAI-compatible client, a per-lesson worker that fills frames in order,
// and a runner that bounds how many lessons generate concurrently.
package imagegen

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Generator produces one image for a prompt and returns its URL.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientConfig configures the image API client.
type ClientConfig struct {
	BaseURL string // OpenAI-compatible endpoint, including the /v1 prefix
	APIKey  string
	Model   string
	Timeout time.Duration // per-request bound; defaults to 30s
}

const defaultRequestTimeout = 30 * time.Second

// Client calls an OpenAI-compatible /v1/images/generations endpoint. The
// reference provider is AIMLAPI proxying minimax/image-01; any compatible
// provider works.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewClient builds a Client from config.
func NewClient(cfg ClientConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: timeout,
	}
}

// Generate requests a single 1024x1024 image for the prompt. Any provider
// error, timeout, or response without an image URL is returned as an error;
// the caller records it as a frame failure.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Model:   c.model,
		Prompt:  prompt,
		N:       1,
		Size:    openai.CreateImageSize1024x1024,
		Quality: openai.CreateImageQualityStandard,
	})
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("no image returned from API")
	}
	return resp.Data[0].URL, nil
}
