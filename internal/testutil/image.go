// Package testutil provides synthetic page images for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextImage renders text on a white background, one string per line. The
// result is not meant to be legible to a real OCR engine; it just gives
// pipelines a plausible page image to chew on.
func TextImage(width, height int, lines ...string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: face,
	}
	y := face.Metrics().Height.Ceil() + 4
	for _, line := range lines {
		drawer.Dot = fixed.P(8, y)
		drawer.DrawString(line)
		y += face.Metrics().Height.Ceil() + 4
	}
	return img
}

// WritePNG writes img to dir/name and returns the full path.
func WritePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, png.Encode(f, img))
	return path
}

// WritePage renders a small text page and writes it to dir/name.
func WritePage(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	return WritePNG(t, dir, name, TextImage(160, 120, lines...))
}
