// Package ocr holds the external OCR collaborators. Providers return raw
// engine output; all reading-order reconstruction happens downstream in the
// reconstruct package.
package ocr

import (
	"context"
	"image"

	"github.com/hanline/hanline/internal/reconstruct"
)

// Result is the raw output of an OCR engine for one page image: the engine's
// own full-text blob plus the located fragments. Fragment order is detection
// order, not reading order.
type Result struct {
	FullText  string
	Fragments []reconstruct.TextFragment
}

// Provider recognizes text in a page image.
type Provider interface {
	Recognize(ctx context.Context, img image.Image) (*Result, error)
	Name() string
}
