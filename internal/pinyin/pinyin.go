// Package pinyin assembles per-character romanization for target-script text.
// The actual character-to-reading mapping lives behind the Provider interface;
// this package only owns the assembly and spacing rules.
package pinyin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hanline/hanline/internal/script"
)

var (
	// ErrNoReading is returned by a Provider for a character that has no
	// valid romanization. The assembler substitutes a placeholder instead of
	// failing, keeping output total.
	ErrNoReading = errors.New("no reading for character")

	// ErrTransliterationUnavailable wraps any other provider failure. The
	// partial result assembled before the failure is still returned.
	ErrTransliterationUnavailable = errors.New("transliteration unavailable")
)

// Placeholder stands in for characters the provider has no reading for.
const Placeholder = "?"

// Provider maps a single target-script character to its toned romanization.
// Implementations must return a non-empty string or an error; ErrNoReading
// marks a character without a valid reading.
type Provider interface {
	Reading(ctx context.Context, r rune) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, r rune) (string, error)

func (f ProviderFunc) Reading(ctx context.Context, r rune) (string, error) {
	return f(ctx, r)
}

// spacedPunctuation lists the sentence-ending/separator marks that receive a
// trailing space in the annotation stream for readability.
var spacedPunctuation = map[rune]struct{}{
	'，': {},
	'。': {},
	'！': {},
	'？': {},
}

// Annotate builds the romanization stream for text. Each target-script
// character becomes its reading followed by a single space; other characters
// pass through unchanged, except the four sentence marks, which get a
// trailing space.
//
// On provider failure the text assembled so far is returned alongside an
// error wrapping ErrTransliterationUnavailable.
func Annotate(ctx context.Context, p Provider, text string) (string, error) {
	var b strings.Builder
	for _, r := range text {
		if !script.IsTargetScript(r) {
			b.WriteRune(r)
			if _, ok := spacedPunctuation[r]; ok {
				b.WriteByte(' ')
			}
			continue
		}
		reading, err := p.Reading(ctx, r)
		switch {
		case errors.Is(err, ErrNoReading):
			reading = Placeholder
		case err != nil:
			return b.String(), fmt.Errorf("%w: %q: %w", ErrTransliterationUnavailable, r, err)
		case reading == "":
			reading = Placeholder
		}
		b.WriteString(reading)
		b.WriteByte(' ')
	}
	return b.String(), nil
}
