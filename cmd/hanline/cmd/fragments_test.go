package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentsCommand_File(t *testing.T) {
	input := filepath.Join(t.TempDir(), "page.json")
	doc := `{
		"fragments": [
			{"content": "你好", "anchor_x": 200, "anchor_y": 100},
			{"content": "朋友", "anchor_x": 50, "anchor_y": 103},
			{"content": "nǐ hǎo", "anchor_x": 50, "anchor_y": 130},
			{"content": "再见", "anchor_x": 50, "anchor_y": 200}
		]
	}`
	require.NoError(t, os.WriteFile(input, []byte(doc), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"fragments", input})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "朋友 你好\n再见\n", buf.String())
}

func TestFragmentsCommand_FallbackToFullText(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(`{
		"fragments": [{"content": "nǐ hǎo", "anchor_x": 0, "anchor_y": 0}],
		"full_text": "你好\nnǐ hǎo"
	}`))
	rootCmd.SetArgs([]string{"fragments"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "你好\n", buf.String())
}

func TestFragmentsCommand_InvalidJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("not json"))
	rootCmd.SetArgs([]string{"fragments"})

	require.Error(t, rootCmd.Execute())
}
