// Package speech is thin HTTP glue around an external read-aloud service.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Synthesizer turns reconstructed text segments into playable audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, segments []string, voice string) ([]byte, error)
}

// Config holds configuration for the HTTP speech client.
type Config struct {
	Endpoint string
	APIKey   string
	Voice    string
	Timeout  time.Duration
}

// DefaultVoice is a Mandarin voice suited to read-aloud of reconstructed
// pages.
const DefaultVoice = "zh-CN-standard"

// Client is an HTTP-backed Synthesizer.
type Client struct {
	endpoint string
	apiKey   string
	voice    string
	client   *http.Client
}

// NewClient creates a speech synthesis client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		voice:    cfg.Voice,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type synthesizeRequest struct {
	Segments []string `json:"segments"`
	Voice    string   `json:"voice"`
}

// Synthesize sends text segments and returns encoded audio bytes. An empty
// voice falls back to the client's configured voice.
func (c *Client) Synthesize(ctx context.Context, segments []string, voice string) ([]byte, error) {
	if len(segments) == 0 {
		return nil, nil
	}
	if voice == "" {
		voice = c.voice
	}
	body, err := json.Marshal(synthesizeRequest{Segments: segments, Voice: voice})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech API status %d: %s", resp.StatusCode, string(msg))
	}
	return io.ReadAll(io.LimitReader(resp.Body, 64<<20))
}
