package script

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CodePointClass categorizes a single code point for line classification.
type CodePointClass int

const (
	ClassOther CodePointClass = iota
	ClassTargetScript
	ClassLatinLetter
	ClassToneDiacritic
	ClassDigit
	ClassPunctuation
)

// CJK Unified Ideographs block.
const (
	TargetScriptLo = 0x4E00
	TargetScriptHi = 0x9FFF
)

// toneDiacritics is the closed set of precomposed vowel+tone characters used
// by pinyin romanization (4 tones over a, e, i, o, u, ü). ASCII vowels are
// covered by ClassLatinLetter, not listed here.
var toneDiacritics = map[rune]struct{}{
	'ā': {}, 'á': {}, 'ǎ': {}, 'à': {},
	'ē': {}, 'é': {}, 'ě': {}, 'è': {},
	'ī': {}, 'í': {}, 'ǐ': {}, 'ì': {},
	'ō': {}, 'ó': {}, 'ǒ': {}, 'ò': {},
	'ū': {}, 'ú': {}, 'ǔ': {}, 'ù': {},
	'ǖ': {}, 'ǘ': {}, 'ǚ': {}, 'ǜ': {},
}

// ToneDiacriticCount is the size of the fixed tone-diacritic table.
const ToneDiacriticCount = 24

// ClassifyRune classifies a single code point. Total: every rune maps to
// exactly one class.
func ClassifyRune(r rune) CodePointClass {
	switch {
	case r >= TargetScriptLo && r <= TargetScriptHi:
		return ClassTargetScript
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return ClassLatinLetter
	case r >= '0' && r <= '9':
		return ClassDigit
	default:
		if _, ok := toneDiacritics[r]; ok {
			return ClassToneDiacritic
		}
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ClassPunctuation
		}
		return ClassOther
	}
}

// IsTargetScript reports whether r falls in the CJK Unified Ideographs block.
func IsTargetScript(r rune) bool {
	return r >= TargetScriptLo && r <= TargetScriptHi
}

// LineKind is the classification of a line or whitespace-delimited token.
type LineKind int

const (
	// KindNoise covers everything not worth keeping: empty input,
	// punctuation-only, digits-only (page numbers), unsupported languages.
	KindNoise LineKind = iota
	// KindLogographic marks text containing at least one target-script rune.
	KindLogographic
	// KindPhoneticAnnotation marks a pure romanization line (pinyin), to be
	// discarded from the reading stream.
	KindPhoneticAnnotation
	// KindValidCompound marks non-logographic text that still carries
	// information: letters combined with digits (e.g. "Chapter 1").
	KindValidCompound
)

func (k LineKind) String() string {
	switch k {
	case KindLogographic:
		return "logographic"
	case KindPhoneticAnnotation:
		return "phonetic"
	case KindValidCompound:
		return "compound"
	default:
		return "noise"
	}
}

// Classify determines the LineKind of a line or single token. It is a pure,
// total function of the input's code points: every string, including the
// empty string, maps to exactly one kind.
//
// Precedence: any target-script rune wins (mixed Chinese+English lines are
// retained in full), then pure-romanization detection, then the letter+digit
// compound rule, then noise.
func Classify(s string) LineKind {
	// OCR engines sometimes emit decomposed vowel+combining-mark sequences;
	// fold to NFC so they hit the precomposed tone table.
	s = norm.NFC.String(s)

	var latin, toned, digits int
	for _, r := range s {
		switch ClassifyRune(r) {
		case ClassTargetScript:
			return KindLogographic
		case ClassLatinLetter:
			latin++
		case ClassToneDiacritic:
			toned++
		case ClassDigit:
			digits++
		}
	}

	if latin+toned > 0 && allTokensPhonetic(s) {
		return KindPhoneticAnnotation
	}
	if latin > 0 && digits > 0 {
		return KindValidCompound
	}
	return KindNoise
}

// allTokensPhonetic reports whether every ASCII-whitespace-delimited token
// consists solely of Latin letters and tone diacritics, with at least one
// token present.
func allTokensPhonetic(s string) bool {
	tokens := strings.FieldsFunc(s, isASCIISpace)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		for _, r := range tok {
			if c := ClassifyRune(r); c != ClassLatinLetter && c != ClassToneDiacritic {
				return false
			}
		}
	}
	return true
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsPhoneticWord reports whether a single word classifies as a phonetic
// annotation when treated as its own one-token line.
func IsPhoneticWord(word string) bool {
	return Classify(word) == KindPhoneticAnnotation
}
