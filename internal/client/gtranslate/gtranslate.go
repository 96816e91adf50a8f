// Package gtranslate fetches speech audio from the Google Translate TTS
// endpoint, one request per text chunk.
package gtranslate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MaxChunkLen is the per-request character limit of the endpoint.
const MaxChunkLen = 200

const defaultBaseURL = "https://translate.google.com"

// Client fetches MP3 audio for short pieces of text.
type Client struct {
	baseURL string
	lang    string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint host. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New creates a Client speaking the given language tag (e.g. "en").
func New(lang string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		lang:    lang,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAudio returns the raw audio bytes for a single chunk of text. The
// text must not exceed MaxChunkLen characters.
func (c *Client) FetchAudio(ctx context.Context, text string) ([]byte, error) {
	if n := len([]rune(text)); n > MaxChunkLen {
		return nil, fmt.Errorf("text of %d chars exceeds the %d char limit", n, MaxChunkLen)
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", c.lang)
	q.Set("q", text)
	q.Set("textlen", strconv.Itoa(len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("translate tts http error (%d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
