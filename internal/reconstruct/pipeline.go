package reconstruct

// Reconstruct rebuilds reading-order text from located OCR fragments.
//
// Fragments that classify as phonetic annotation or noise are dropped, the
// survivors are grouped into visual rows by anchor proximity and merged left
// to right, top to bottom, and a final word-level pass removes residual
// phonetic tokens that rode along inside kept fragments.
//
// When filtering drops every fragment, the flat-text path runs over fullText
// instead: per-fragment granularity sometimes destroys compound meaning that
// the undivided blob still carries.
//
// Never fails: every input, including an empty fragment list, yields a
// (possibly empty) result. Pure function of its inputs, so results are safe
// to memoize.
func Reconstruct(fragments []TextFragment, fullText string) string {
	kept := filterFragments(fragments)
	if len(kept) == 0 {
		return ProcessFlatText(fullText)
	}
	merged := mergeRows(groupRows(kept))
	return stripResidualPhonetic(merged)
}
