package reconstruct

import (
	"github.com/hanline/hanline/internal/script"
)

// TextFragment is one OCR-located span of text with the top-left vertex of
// its bounding box in source pixel coordinates. Fragments arrive from the OCR
// provider in detection order, which is not reading order; anchors are
// read-only inputs and never recomputed.
type TextFragment struct {
	Content string `json:"content"`
	X       int    `json:"anchor_x"`
	Y       int    `json:"anchor_y"`
}

// keepFragment decides whether a fragment survives filtering. Logographic and
// letter+digit compound fragments are kept; phonetic annotations and noise
// (page numbers, stray punctuation, unsupported languages) are dropped.
func keepFragment(f TextFragment) bool {
	switch script.Classify(f.Content) {
	case script.KindLogographic, script.KindValidCompound:
		return true
	default:
		return false
	}
}

// filterFragments returns the fragments worth keeping, preserving input order.
func filterFragments(fragments []TextFragment) []TextFragment {
	kept := make([]TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if keepFragment(f) {
			kept = append(kept, f)
		}
	}
	return kept
}
