// Package cache memoizes reconstruction results. The reconstruction pipeline
// is a pure function of its inputs, so caching by content fingerprint is
// always valid.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hanline/hanline/internal/reconstruct"
)

// Defaults match a phone app's working set: a few hundred recently viewed
// pages, refreshed daily.
const (
	DefaultMaxEntries = 500
	DefaultTTL        = 24 * time.Hour
)

// Store is a TTL-bounded, size-bounded cache of reconstructed page text.
// Eviction is oldest-first once MaxEntries is reached. Safe for concurrent
// use.
type Store struct {
	lru *expirable.LRU[string, string]
}

// New creates a Store. Non-positive maxEntries or ttl fall back to defaults.
func New(maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{lru: expirable.NewLRU[string, string](maxEntries, nil, ttl)}
}

// Get returns the cached reconstruction for key, if present and unexpired.
func (s *Store) Get(key string) (string, bool) {
	return s.lru.Get(key)
}

// Add stores a reconstruction under key.
func (s *Store) Add(key, value string) {
	s.lru.Add(key, value)
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	return s.lru.Len()
}

// TextKey fingerprints a flat text input.
func TextKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// FragmentsKey fingerprints a fragment list plus its fallback text. Content
// and anchors both feed the hash: moving a fragment changes the result.
func FragmentsKey(fragments []reconstruct.TextFragment, fullText string) string {
	h := sha256.New()
	var buf [8]byte
	for _, f := range fragments {
		binary.BigEndian.PutUint32(buf[:4], uint32(f.X))
		binary.BigEndian.PutUint32(buf[4:], uint32(f.Y))
		h.Write(buf[:])
		h.Write([]byte(f.Content))
		h.Write([]byte{0})
	}
	h.Write([]byte(fullText))
	return hex.EncodeToString(h.Sum(nil))
}
