package reconstruct

import (
	"strings"

	"github.com/hanline/hanline/internal/script"
)

// ProcessFlatText filters a flat OCR text blob line by line. Used when no
// bounding boxes are available, and as the fallback when fragment filtering
// leaves nothing.
//
// A line is dropped when it is pure phonetic annotation or noise (isolated
// untranslatable-language lines, page numbers). Logographic lines get an
// additional word-level pass that removes embedded stray phonetic words, so
// "你好 nihao 朋友" comes out as "你好 朋友". Compound lines (letters+digits)
// pass through whole: their romanization-shaped words are load-bearing
// ("Chapter 1" must not collapse to "1"), and stripping them would also break
// the re-filtering fixpoint.
func ProcessFlatText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch script.Classify(line) {
		case script.KindLogographic:
			out = append(out, stripPhoneticWords(line))
		case script.KindValidCompound:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// stripPhoneticWords removes individual words that classify as phonetic
// annotation, each word treated as its own one-token line. Survivors are
// rejoined with single spaces.
func stripPhoneticWords(line string) string {
	words := strings.Split(line, " ")
	kept := words[:0:0]
	for _, w := range words {
		if script.IsPhoneticWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// stripResidualPhonetic applies the word-level pass to every line of an
// already-merged string. Row merging can reunite a stray phonetic token with
// content that passed fragment filtering (a compound fragment carrying one
// bare romanization word alongside digits), so this runs unconditionally on
// each merged row.
func stripResidualPhonetic(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = stripPhoneticWords(line)
	}
	return strings.Join(lines, "\n")
}
