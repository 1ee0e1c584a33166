// Package batch runs OCR and reconstruction over many page images.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/hanline/hanline/internal/ocr"
	"github.com/hanline/hanline/internal/reconstruct"
)

// Config holds all configuration for batch processing.
type Config struct {
	Workers         int
	Format          string
	OutputFile      string
	Recursive       bool
	ContinueOnError bool
	Quiet           bool

	// File discovery settings
	IncludePatterns []string
	ExcludePatterns []string
}

// PageResult is the outcome for a single page image.
type PageResult struct {
	Path     string `json:"path" yaml:"path"`
	Text     string `json:"text" yaml:"text"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration `json:"-" yaml:"-"`
}

// Result holds the outcome of a batch run.
type Result struct {
	Pages       []PageResult
	Duration    time.Duration
	WorkerCount int
}

// Process discovers page images under the given paths and reconstructs each
// through the provider. Pages are processed by a fixed worker pool; results
// keep discovery order.
func Process(ctx context.Context, provider ocr.Provider, paths []string, config *Config) (*Result, error) {
	files, err := discoverImageFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workers := config.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	start := time.Now()
	pages := make([]PageResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				pages[i] = processPage(ctx, provider, files[i])
			}
		}()
	}

	for i := range files {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if !config.ContinueOnError {
		for _, p := range pages {
			if p.Error != "" {
				return nil, fmt.Errorf("processing %s: %s", p.Path, p.Error)
			}
		}
	}

	return &Result{
		Pages:       pages,
		Duration:    time.Since(start),
		WorkerCount: workers,
	}, nil
}

func processPage(ctx context.Context, provider ocr.Provider, path string) PageResult {
	start := time.Now()
	res := PageResult{Path: path}

	img, err := loadImage(path)
	if err != nil {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	ocrResult, err := provider.Recognize(ctx, img)
	if err != nil {
		slog.Warn("ocr failed", "path", path, "error", err)
		res.Error = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	res.Text = reconstruct.Reconstruct(ocrResult.Fragments, ocrResult.FullText)
	res.Duration = time.Since(start)
	return res
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
