package pinyin

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// TableProvider serves readings from an in-memory table. Characters absent
// from the table report ErrNoReading.
type TableProvider struct {
	readings map[rune]string
}

// NewTableProvider builds a provider over a character-to-reading map.
func NewTableProvider(readings map[rune]string) *TableProvider {
	return &TableProvider{readings: readings}
}

// LoadTable reads a YAML reading table from disk. The document is a flat
// mapping of single characters to toned romanizations:
//
//	你: nǐ
//	好: hǎo
func LoadTable(path string) (*TableProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reading table: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse reading table: %w", err)
	}

	readings := make(map[rune]string, len(raw))
	for key, reading := range raw {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			return nil, fmt.Errorf("reading table key %q is not a single character", key)
		}
		readings[r] = reading
	}
	return NewTableProvider(readings), nil
}

func (t *TableProvider) Reading(_ context.Context, r rune) (string, error) {
	reading, ok := t.readings[r]
	if !ok {
		return "", ErrNoReading
	}
	return reading, nil
}
