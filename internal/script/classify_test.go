package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRune_TargetScript(t *testing.T) {
	assert.Equal(t, ClassTargetScript, ClassifyRune('中'))
	assert.Equal(t, ClassTargetScript, ClassifyRune('你'))
	assert.Equal(t, ClassTargetScript, ClassifyRune(rune(0x4E00)))
	assert.Equal(t, ClassTargetScript, ClassifyRune(rune(0x9FFF)))
	// One past each block boundary.
	assert.NotEqual(t, ClassTargetScript, ClassifyRune(rune(0x4DFF)))
	assert.NotEqual(t, ClassTargetScript, ClassifyRune(rune(0xA000)))
}

func TestClassifyRune_LatinAndDigits(t *testing.T) {
	assert.Equal(t, ClassLatinLetter, ClassifyRune('a'))
	assert.Equal(t, ClassLatinLetter, ClassifyRune('Z'))
	assert.Equal(t, ClassDigit, ClassifyRune('0'))
	assert.Equal(t, ClassDigit, ClassifyRune('9'))
}

func TestClassifyRune_ToneDiacritics(t *testing.T) {
	for _, r := range "āáǎàēéěèīíǐìōóǒòūúǔùǖǘǚǜ" {
		assert.Equal(t, ClassToneDiacritic, ClassifyRune(r), "rune %q", r)
	}
	// Plain ASCII vowels are letters, not diacritics.
	assert.Equal(t, ClassLatinLetter, ClassifyRune('a'))
	assert.Equal(t, ClassLatinLetter, ClassifyRune('u'))
	// Non-pinyin accented vowels are outside the closed set.
	assert.Equal(t, ClassOther, ClassifyRune('ê'))
}

func TestClassifyRune_Punctuation(t *testing.T) {
	// CJK punctuation is furniture, never target script.
	for _, r := range "，。！？" {
		assert.Equal(t, ClassPunctuation, ClassifyRune(r), "rune %q", r)
	}
	assert.Equal(t, ClassPunctuation, ClassifyRune('.'))
	assert.Equal(t, ClassPunctuation, ClassifyRune('+'))
	assert.Equal(t, ClassOther, ClassifyRune(' '))
}

func TestToneDiacriticTableSize(t *testing.T) {
	assert.Len(t, toneDiacritics, ToneDiacriticCount)
}

func TestClassify_Kinds(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want LineKind
	}{
		{"logographic", "你好", KindLogographic},
		{"phonetic single", "nǐ", KindPhoneticAnnotation},
		{"phonetic multi", "nǐ hǎo", KindPhoneticAnnotation},
		{"phonetic plain ascii", "nihao", KindPhoneticAnnotation},
		{"compound", "Chapter 1", KindValidCompound},
		{"digits only", "42", KindNoise},
		{"empty", "", KindNoise},
		{"whitespace only", "   ", KindNoise},
		{"punctuation only", "。。。", KindNoise},
		{"mixed punctuation digits", "12.", KindNoise},
		{"unsupported language", "안녕하세요", KindNoise},
		{"compound no space", "A4", KindValidCompound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassify_TargetScriptPrecedence(t *testing.T) {
	// Rule 1 short-circuits: mixed captions are retained in full.
	assert.Equal(t, KindLogographic, Classify("中国 Beijing"))
	assert.Equal(t, KindLogographic, Classify("你好 nǐ hǎo"))
	assert.Equal(t, KindLogographic, Classify("第1章 Chapter 1"))
}

func TestClassify_PhoneticRequiresAllTokens(t *testing.T) {
	// One non-eligible token disqualifies the whole line.
	assert.Equal(t, KindValidCompound, Classify("ni hao 123 ma"))
	assert.Equal(t, KindNoise, Classify("hǎo !"))
}

func TestClassify_NormalizesDecomposedInput(t *testing.T) {
	// "nǐ" with U+0069 U+030C instead of the precomposed U+01D0.
	decomposed := "nǐ hǎo"
	assert.Equal(t, KindPhoneticAnnotation, Classify(decomposed))
}

func TestClassify_Total(t *testing.T) {
	// Every input maps to exactly one of the four kinds.
	inputs := []string{"", " ", "你", "ni", "nǐ", "1", "a1", "！", "\x00", "�"}
	for _, in := range inputs {
		k := Classify(in)
		assert.Contains(t, []LineKind{KindNoise, KindLogographic, KindPhoneticAnnotation, KindValidCompound}, k, "input %q", in)
	}
}

func TestIsPhoneticWord(t *testing.T) {
	assert.True(t, IsPhoneticWord("nihao"))
	assert.True(t, IsPhoneticWord("hǎo"))
	assert.False(t, IsPhoneticWord("你好"))
	assert.False(t, IsPhoneticWord("a1"))
	assert.False(t, IsPhoneticWord("42"))
	assert.False(t, IsPhoneticWord(""))
}
