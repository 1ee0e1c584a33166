package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/hanline/hanline/internal/reconstruct"
)

// VisionConfig holds configuration for the cloud vision OCR client.
type VisionConfig struct {
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// VisionProvider calls a cloud vision OCR API over HTTP. Transient failures
// are retried with exponential backoff here, in the network glue; the
// reconstruction core downstream stays retry-free.
type VisionProvider struct {
	endpoint   string
	apiKey     string
	maxRetries int
	client     *http.Client
}

// NewVisionProvider creates a cloud OCR client.
func NewVisionProvider(cfg VisionConfig) *VisionProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &VisionProvider{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *VisionProvider) Name() string { return "vision" }

type visionRequest struct {
	Image string `json:"image"` // base64-encoded PNG
}

type visionResponse struct {
	Text      string                     `json:"text"`
	Fragments []reconstruct.TextFragment `json:"fragments"`
	Error     string                     `json:"error,omitempty"`
}

// Recognize uploads the page image and returns the API's full text and
// fragment annotations.
func (p *VisionProvider) Recognize(ctx context.Context, img image.Image) (*Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	body, err := json.Marshal(visionRequest{
		Image: base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var parsed visionResponse
	err = retry.Do(
		func() error {
			return p.post(ctx, body, &parsed)
		},
		retry.Context(ctx),
		retry.Attempts(uint(p.maxRetries)),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("vision ocr: %w", err)
	}
	return &Result{FullText: parsed.Text, Fragments: parsed.Fragments}, nil
}

func (p *VisionProvider) post(ctx context.Context, body []byte, out *visionResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("vision API status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return retry.Unrecoverable(fmt.Errorf("vision API status %d: %s", resp.StatusCode, string(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
	}
	if out.Error != "" {
		return retry.Unrecoverable(fmt.Errorf("vision API error: %s", out.Error))
	}
	return nil
}
