package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatResults renders the batch results in the requested format
// ("text", "json", or "yaml").
func (r *Result) FormatResults(format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(r.Pages)
	case "yaml":
		return formatYAML(r.Pages)
	case "text", "":
		return formatText(r.Pages), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// SaveResults writes the formatted results to outputFile, or stdout when
// outputFile is empty.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
		return nil
	}
	_, _ = fmt.Fprint(os.Stdout, output)
	return nil
}

// PrintStats prints processing statistics to stdout.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	var failed int
	for _, p := range r.Pages {
		if p.Error != "" {
			failed++
		}
	}
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total pages: %d\n", len(r.Pages))
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	if n := len(r.Pages); n > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "  Avg per page: %v\n", (r.Duration / time.Duration(n)).Round(time.Millisecond))
	}
}

func formatJSON(pages []PageResult) (string, error) {
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(data) + "\n", nil
}

func formatYAML(pages []PageResult) (string, error) {
	data, err := yaml.Marshal(pages)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	return string(data), nil
}

func formatText(pages []PageResult) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "=== %s ===\n", p.Path)
		if p.Error != "" {
			fmt.Fprintf(&b, "error: %s\n", p.Error)
			continue
		}
		if p.Text == "" {
			b.WriteString("(no retainable content)\n")
			continue
		}
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
	return b.String()
}
