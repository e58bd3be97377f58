package openrouter

import (
	"bytes"
	"context"
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

const defaultHTTPTimeout = 60 * time.Second

// Client wraps the OpenRouter chat completion API.
type Client struct {
	cfg        config.LLM
	httpClient *http.Client
}

// Option customizes the OpenRouter client.
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

// NewClient constructs an OpenRouter API client from the LLM configuration.
func NewClient(cfg config.LLM, opts ...Option) *Client {
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

// ProfileContext carries the profile fields the model needs to describe the
// person being portrayed.
type ProfileContext struct {
	FirstName        string
	LastName         string
	Category         string
	Subcategory      string
	OrganizationName string
	OrganizationTown string
	Languages        string
}

// GeneratePrompts asks the model for a positive and negative prompt pair
// describing a professional portrait of the given profile.
func (c *Client) GeneratePrompts(ctx context.Context, profile ProfileContext) (store.PromptPair, error) {
	var empty store.PromptPair
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return empty, services.Wrap(services.ErrConfiguration, "openrouter", "generate prompts", "api key required", nil)
	}
	request := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: portraitSystemPrompt},
			{Role: "user", Content: buildUserMessage(profile)},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/chat/completions")
	if err != nil {
		return empty, fmt.Errorf("openrouter: build url: %w", err)
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return empty, fmt.Errorf("openrouter: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return empty, fmt.Errorf("openrouter: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if referer := strings.TrimSpace(c.cfg.Referer); referer != "" {
		req.Header.Set("HTTP-Referer", referer)
	}
	if title := strings.TrimSpace(c.cfg.Title); title != "" {
		req.Header.Set("X-Title", title)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return empty, services.Wrap(marker, "openrouter", "generate prompts", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, services.Wrap(services.ErrTransient, "openrouter", "generate prompts", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		marker := services.ErrTransient
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			marker = services.ErrConfiguration
		}
		detail := fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return empty, services.Wrap(marker, "openrouter", "generate prompts", detail, nil)
	}
	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return empty, services.Wrap(services.ErrValidation, "openrouter", "generate prompts", "decode response", err)
	}
	if completion.Error != nil {
		return empty, services.Wrap(services.ErrTransient, "openrouter", "generate prompts", "api error: "+strings.TrimSpace(completion.Error.Message), nil)
	}
	if len(completion.Choices) == 0 {
		return empty, services.Wrap(services.ErrValidation, "openrouter", "generate prompts", "empty choices", nil)
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return empty, services.Wrap(services.ErrValidation, "openrouter", "generate prompts", "empty content", nil)
	}
	pair, err := parsePromptPair(content)
	if err != nil {
		return empty, err
	}
	return pair, nil
}

// parsePromptPair extracts the labeled prompt lines from the model response.
// Labels may appear anywhere in the text and the content after each label runs
// to the end of the line.
func parsePromptPair(content string) (store.PromptPair, error) {
	var pair store.PromptPair
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "POSITIVE:"):
			pair.Positive = strings.TrimSpace(strings.TrimPrefix(line, "POSITIVE:"))
		case strings.HasPrefix(line, "NEGATIVE:"):
			pair.Negative = strings.TrimSpace(strings.TrimPrefix(line, "NEGATIVE:"))
		}
	}
	if !pair.IsComplete() {
		return store.PromptPair{}, services.Wrap(services.ErrValidation, "openrouter", "parse prompts", fmt.Sprintf("response missing labeled prompts: %q", content), nil)
	}
	return pair, nil
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
