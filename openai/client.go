// Package openai implements the live content generator: a chat-completion
// call through the deployment's same-origin proxy, prompt construction for
// address and named-place lookups, and coercion of loosely formatted model
// output into curiosity records.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/chronosmaps/discovery/curiosity"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-3.5-turbo"

// Client calls the chat-completion proxy.
type Client struct {
	apiURL string
	apiKey string
	model  string
	http   *http.Client
	log    zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// NewClient creates a generator client. apiURL is the completion endpoint
// (typically a same-origin proxy path resolved against the deployment);
// apiKey may be empty when the proxy injects the system key.
func NewClient(apiURL, apiKey string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  DefaultModel,
		http:   http.DefaultClient,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate produces a curiosity record for loc. Named places get a
// place-specific prompt and a larger token budget. The error return covers
// transport and status failures only; content-shape problems are repaired
// by CoerceRecord and never error.
func (c *Client) Generate(ctx context.Context, loc curiosity.Location) (*curiosity.Record, error) {
	var messages []chatMessage
	maxTokens := 800
	if loc.Named() {
		messages = []chatMessage{{Role: "user", Content: buildPlacePrompt(loc)}}
		maxTokens = 1000
	} else {
		messages = []chatMessage{
			{Role: "system", Content: systemPrompt(loc)},
			{Role: "user", Content: buildAddressPrompt(loc)},
		}
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completion status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat response has no choices")
	}

	content := parsed.Choices[0].Message.Content
	rec := CoerceRecord(content, loc)
	return &rec, nil
}
