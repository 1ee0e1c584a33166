package ocr

import (
	"image"

	"github.com/disintegration/imaging"
)

// MaxImageWidth bounds preprocessing output. Phone cameras produce 3000-4000px
// pages; Tesseract gains nothing past this width and slows down considerably.
const MaxImageWidth = 2048

// preprocess prepares a page photo for recognition: grayscale conversion and
// a bounded downscale preserving aspect ratio. Fragment anchors emitted later
// are in the preprocessed coordinate space, which is fine for reconstruction:
// row grouping only needs relative positions.
func preprocess(img image.Image) image.Image {
	g := imaging.Grayscale(img)
	if g.Bounds().Dx() > MaxImageWidth {
		g = imaging.Resize(g, MaxImageWidth, 0, imaging.Lanczos)
	}
	return g
}
