package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/hanline/hanline/internal/reconstruct"
)

// DefaultLanguages covers the bilingual page case: simplified Chinese plus
// Latin text.
var DefaultLanguages = []string{"chi_sim", "eng"}

// TesseractProvider runs a local Tesseract engine via gosseract. A fresh
// client is created per call, so the provider is safe for concurrent use.
type TesseractProvider struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// TesseractOption configures a TesseractProvider.
type TesseractOption func(*TesseractProvider)

// WithLanguages overrides the recognition languages.
func WithLanguages(langs ...string) TesseractOption {
	return func(p *TesseractProvider) {
		if len(langs) > 0 {
			p.languages = langs
		}
	}
}

// NewTesseractProvider constructs a Tesseract-backed provider.
func NewTesseractProvider(opts ...TesseractOption) *TesseractProvider {
	p := &TesseractProvider{
		languages:     DefaultLanguages,
		clientFactory: gosseract.NewClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *TesseractProvider) Name() string { return "tesseract" }

// Recognize runs OCR over a preprocessed copy of img and returns the full
// text plus word-level fragments with top-left anchors.
func (p *TesseractProvider) Recognize(ctx context.Context, img image.Image) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, preprocess(img)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	c := p.clientFactory()
	defer func() { _ = c.Close() }()

	if err := c.SetLanguage(p.languages...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("bounding boxes: %w", err)
	}

	fragments := make([]reconstruct.TextFragment, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		fragments = append(fragments, reconstruct.TextFragment{
			Content: word,
			X:       b.Box.Min.X,
			Y:       b.Box.Min.Y,
		})
	}

	return &Result{FullText: strings.TrimSpace(text), Fragments: fragments}, nil
}
