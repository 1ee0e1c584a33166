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

func TestTextCommand_File(t *testing.T) {
	input := filepath.Join(t.TempDir(), "page.txt")
	content := "你好\nnǐ hǎo\n第1章\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"text", input})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "你好\n第1章\n", buf.String())
}

func TestTextCommand_Stdin(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("你好\nnoise!!!\n"))
	rootCmd.SetArgs([]string{"text"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "你好\n", buf.String())
}

func TestTextCommand_OutputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "page.txt")
	output := filepath.Join(dir, "clean.txt")
	require.NoError(t, os.WriteFile(input, []byte("你好\nnǐ hǎo\n"), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"text", input, "--output", output})

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "你好\n", string(data))
}

func TestTextCommand_MissingFile(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"text", filepath.Join(t.TempDir(), "absent.txt")})

	require.Error(t, rootCmd.Execute())
}
