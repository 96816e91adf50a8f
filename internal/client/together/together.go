// Package together calls the Together image-generations API.
package together

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.together.xyz/v1"
	defaultModel   = "black-forest-labs/FLUX.1-schnell-Free"
)

// Client is a Together API client. Image generation can take multiple
// minutes, so the HTTP timeout is deliberately generous.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New creates a Client with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 3 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate submits a text prompt and returns the generated image's URL.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("missing together api key")
	}

	body, err := json.Marshal(imageRequest{Prompt: prompt, Model: c.model})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("together http error (%d): %s", resp.StatusCode, string(respBody))
	}

	var out imageResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode together response: %w", err)
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return "", errors.New("together response has no image url")
	}
	return out.Data[0].URL, nil
}
