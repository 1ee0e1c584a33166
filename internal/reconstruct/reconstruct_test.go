package reconstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func frag(content string, x, y int) TextFragment {
	return TextFragment{Content: content, X: x, Y: y}
}

func TestReconstruct_SpatialOrdering(t *testing.T) {
	fragments := []TextFragment{
		frag("你好", 50, 100),
		frag("朋友", 10, 100),
		frag("再见", 10, 200),
	}
	assert.Equal(t, "朋友 你好\n再见", Reconstruct(fragments, ""))
}

func TestReconstruct_RowToleranceBoundary(t *testing.T) {
	// 9px apart: same row. 10px apart: separate rows.
	same := []TextFragment{frag("你好", 10, 100), frag("朋友", 80, 109)}
	assert.Equal(t, "你好 朋友", Reconstruct(same, ""))

	split := []TextFragment{frag("你好", 10, 100), frag("朋友", 80, 110)}
	assert.Equal(t, "你好\n朋友", Reconstruct(split, ""))
}

func TestReconstruct_DropsPhoneticAndNoise(t *testing.T) {
	fragments := []TextFragment{
		frag("nǐ hǎo", 10, 90), // pinyin ruby line above the characters
		frag("你好", 10, 120),
		frag("shì jiè", 10, 150),
		frag("世界", 10, 180),
		frag("12", 200, 400), // page number
		frag("！", 80, 120),  // stray punctuation
	}
	assert.Equal(t, "你好\n世界", Reconstruct(fragments, ""))
}

func TestReconstruct_SameAnchorKeepsInputOrder(t *testing.T) {
	fragments := []TextFragment{
		frag("第一", 10, 100),
		frag("第二", 10, 100),
	}
	assert.Equal(t, "第一 第二", Reconstruct(fragments, ""))
}

func TestReconstruct_FallbackToFlatText(t *testing.T) {
	// Every fragment is dropped at word granularity, but the undivided text
	// still holds a retainable compound line.
	fragments := []TextFragment{
		frag("Chapter", 10, 100),
		frag("1", 90, 100),
	}
	got := Reconstruct(fragments, "Chapter 1\nnǐ hǎo")
	assert.Equal(t, "Chapter 1", got)
}

func TestReconstruct_Empty(t *testing.T) {
	assert.Equal(t, "", Reconstruct(nil, ""))
	assert.Equal(t, "", Reconstruct([]TextFragment{}, ""))
	assert.Equal(t, "", Reconstruct(nil, "nǐ hǎo\n42"))
}

func TestReconstruct_ResidualPhoneticStripped(t *testing.T) {
	// "ma 42" survives fragment filtering as a compound, but the bare
	// romanization word inside it must not reach the final stream.
	fragments := []TextFragment{
		frag("你好", 10, 100),
		frag("ma 42", 10, 200),
	}
	assert.Equal(t, "你好\n42", Reconstruct(fragments, ""))
}

func TestReconstruct_DoesNotMutateInput(t *testing.T) {
	fragments := []TextFragment{
		frag("乙", 90, 100),
		frag("甲", 10, 100),
	}
	_ = Reconstruct(fragments, "")
	assert.Equal(t, frag("乙", 90, 100), fragments[0])
	assert.Equal(t, frag("甲", 10, 100), fragments[1])
}

func TestProcessFlatText_Basic(t *testing.T) {
	in := "你好\nnǐ hǎo\nChapter 1\n42\nhello world"
	assert.Equal(t, "你好\nChapter 1", ProcessFlatText(in))
}

func TestProcessFlatText_StripsEmbeddedPhoneticWords(t *testing.T) {
	assert.Equal(t, "你好 朋友", ProcessFlatText("你好 nihao 朋友"))
	assert.Equal(t, "你好 朋友", ProcessFlatText("你好 nǐhǎo 朋友"))
}

func TestProcessFlatText_MixedCaptionRetained(t *testing.T) {
	// Target script wins: the Latin part of a bilingual caption is not a
	// stray annotation unless the word itself is pure romanization shape.
	assert.Equal(t, "中国 第1章", ProcessFlatText("中国 Beijing 第1章"))
}

func TestProcessFlatText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"你好\nnǐ hǎo\n世界",
		"Chapter 1\n42\n你好 nihao 朋友",
		"nǐ hǎo",
		"中国 Beijing\n안녕\nSection 2a",
	}
	for _, in := range inputs {
		once := ProcessFlatText(in)
		assert.Equal(t, once, ProcessFlatText(once), "input %q", in)
	}
}

func TestProcessFlatText_Empty(t *testing.T) {
	assert.Equal(t, "", ProcessFlatText(""))
	assert.Equal(t, "", ProcessFlatText("nǐ hǎo\nshì jiè"))
	assert.Equal(t, "", ProcessFlatText("42\n。。。\n\n"))
}
