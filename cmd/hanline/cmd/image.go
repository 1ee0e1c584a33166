package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/hanline/hanline/internal/ocr"
	"github.com/hanline/hanline/internal/reconstruct"
	"github.com/spf13/cobra"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
)

// imageResult is the JSON shape emitted per page with --format json.
type imageResult struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

// imageCmd represents the image command.
var imageCmd = &cobra.Command{
	Use:   "image [files...]",
	Short: "Run OCR on page images and reconstruct reading order",
	Long: `Run OCR on one or more page images and reconstruct clean reading-order
text from the recognized fragments.

Supported formats: JPEG, PNG, BMP

Examples:
  hanline image scan.jpg
  hanline image *.png --format json
  hanline image scan.jpg --output page.txt`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()

		format, _ := cmd.Flags().GetString("format")
		if format != outputFormatText && format != outputFormatJSON {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)",
				format, strings.Join([]string{outputFormatText, outputFormatJSON}, ", "))
		}

		provider, err := newOCRProvider(cfg)
		if err != nil {
			return err
		}

		timeout := time.Duration(cfg.Server.TimeoutSec) * time.Second
		results := make([]imageResult, 0, len(args))
		for _, path := range args {
			text, err := recognizePage(cmd.Context(), provider, path, timeout)
			if err != nil {
				return fmt.Errorf("processing %s: %w", path, err)
			}
			results = append(results, imageResult{Path: path, Text: text})
		}

		output, err := formatImageResults(results, format)
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func recognizePage(ctx context.Context, provider ocr.Provider, path string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	result, err := provider.Recognize(ctx, img)
	if err != nil {
		return "", err
	}
	return reconstruct.Reconstruct(result.Fragments, result.FullText), nil
}

func formatImageResults(results []imageResult, format string) (string, error) {
	if format == outputFormatJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal results: %w", err)
		}
		return string(data) + "\n", nil
	}

	var b strings.Builder
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "=== %s ===\n", r.Path)
		}
		b.WriteString(r.Text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	imageCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")
}
