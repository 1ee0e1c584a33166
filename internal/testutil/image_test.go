package testutil

import (
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextImage(t *testing.T) {
	img := TextImage(160, 120, "hello", "world")
	assert.Equal(t, image.Rect(0, 0, 160, 120), img.Bounds())

	// Background stays white in the corner, and some pixel was inked.
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(159, 119))
	inked := false
	for y := 0; y < 120 && !inked; y++ {
		for x := 0; x < 160; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{0, 0, 0, 255}) {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked)
}

func TestWritePage(t *testing.T) {
	dir := t.TempDir()
	path := WritePage(t, dir, "page.png", "你好")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
