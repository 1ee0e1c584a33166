package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hanline/hanline/internal/reconstruct"
)

func TestStore_AddGet(t *testing.T) {
	s := New(10, time.Minute)

	key := TextKey("你好\n世界")
	_, ok := s.Get(key)
	assert.False(t, ok)

	s.Add(key, "你好\n世界")
	got, ok := s.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "你好\n世界", got)
}

func TestStore_EvictsOldestFirst(t *testing.T) {
	s := New(2, time.Minute)
	s.Add("a", "1")
	s.Add("b", "2")
	s.Add("c", "3")

	_, ok := s.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = s.Get("b")
	assert.True(t, ok)
	_, ok = s.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestStore_TTLExpiry(t *testing.T) {
	s := New(10, 20*time.Millisecond)
	s.Add("k", "v")
	_, ok := s.Get("k")
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = s.Get("k")
	assert.False(t, ok, "entry should expire after TTL")
}

func TestTextKey_Deterministic(t *testing.T) {
	assert.Equal(t, TextKey("你好"), TextKey("你好"))
	assert.NotEqual(t, TextKey("你好"), TextKey("你好 "))
}

func TestFragmentsKey_SensitiveToAnchors(t *testing.T) {
	a := []reconstruct.TextFragment{{Content: "你好", X: 10, Y: 100}}
	b := []reconstruct.TextFragment{{Content: "你好", X: 10, Y: 101}}
	c := []reconstruct.TextFragment{{Content: "你好", X: 10, Y: 100}}

	assert.NotEqual(t, FragmentsKey(a, ""), FragmentsKey(b, ""))
	assert.Equal(t, FragmentsKey(a, ""), FragmentsKey(c, ""))
	assert.NotEqual(t, FragmentsKey(a, ""), FragmentsKey(a, "fallback"))
}
