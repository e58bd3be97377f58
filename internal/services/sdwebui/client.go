package sdwebui

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"persona/internal/config"
	"persona/internal/services"
	"persona/internal/store"
)

const defaultHTTPTimeout = 300 * time.Second

// Client wraps the Stable Diffusion WebUI txt2img API.
type Client struct {
	cfg        config.Render
	httpClient *http.Client
}

// Option customizes the WebUI client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.cfg.BaseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a WebUI API client from the render configuration.
func NewClient(cfg config.Render, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// Render submits the prompt pair to txt2img and returns the decoded PNG bytes
// of the first generated image.
func (c *Client) Render(ctx context.Context, pair store.PromptPair) ([]byte, error) {
	if !pair.IsComplete() {
		return nil, services.Wrap(services.ErrValidation, "sdwebui", "render", "prompt pair incomplete", nil)
	}
	request := txt2imgRequest{
		Prompt:         pair.Positive,
		NegativePrompt: pair.Negative,
		Steps:          c.cfg.Steps,
		SamplerName:    c.cfg.SamplerName,
		CFGScale:       c.cfg.CFGScale,
		Width:          c.cfg.Width,
		Height:         c.cfg.Height,
		Seed:           c.cfg.Seed,
		RestoreFaces:   c.cfg.RestoreFaces,
		BatchSize:      c.cfg.BatchSize,
	}
	if checkpoint := strings.TrimSpace(c.cfg.ModelCheckpoint); checkpoint != "" {
		request.OverrideSettings = map[string]any{"sd_model_checkpoint": checkpoint}
	}
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/sdapi/v1/txt2img")
	if err != nil {
		return nil, fmt.Errorf("sdwebui: build url: %w", err)
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("sdwebui: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("sdwebui: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return nil, services.Wrap(marker, "sdwebui", "render", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "sdwebui", "render", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		detail := fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return nil, services.Wrap(services.ErrTransient, "sdwebui", "render", detail, nil)
	}
	var response txt2imgResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, services.Wrap(services.ErrValidation, "sdwebui", "render", "decode response", err)
	}
	if len(response.Images) == 0 {
		return nil, services.Wrap(services.ErrValidation, "sdwebui", "render", "response contained no images", nil)
	}
	image, err := base64.StdEncoding.DecodeString(response.Images[0])
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "sdwebui", "render", "decode image", err)
	}
	if len(image) == 0 {
		return nil, services.Wrap(services.ErrValidation, "sdwebui", "render", "empty image payload", nil)
	}
	return image, nil
}

type txt2imgRequest struct {
	Prompt           string         `json:"prompt"`
	NegativePrompt   string         `json:"negative_prompt"`
	Steps            int            `json:"steps"`
	SamplerName      string         `json:"sampler_name"`
	CFGScale         float64        `json:"cfg_scale"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Seed             int64          `json:"seed"`
	RestoreFaces     bool           `json:"restore_faces"`
	BatchSize        int            `json:"batch_size"`
	OverrideSettings map[string]any `json:"override_settings,omitempty"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}
