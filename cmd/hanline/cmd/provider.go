package cmd

import (
	"fmt"
	"time"

	"github.com/hanline/hanline/internal/config"
	"github.com/hanline/hanline/internal/ocr"
)

// newOCRProvider builds the configured OCR backend. The tesseract engine runs
// locally; the vision engine calls a cloud API.
func newOCRProvider(cfg *config.Config) (ocr.Provider, error) {
	switch cfg.OCR.Engine {
	case "tesseract":
		return ocr.NewTesseractProvider(ocr.WithLanguages(cfg.OCR.Languages...)), nil
	case "vision":
		if cfg.OCR.Vision.Endpoint == "" {
			return nil, fmt.Errorf("ocr.vision.endpoint is required when ocr.engine is vision")
		}
		return ocr.NewVisionProvider(ocr.VisionConfig{
			Endpoint:   cfg.OCR.Vision.Endpoint,
			APIKey:     cfg.OCR.Vision.APIKey,
			Timeout:    time.Duration(cfg.OCR.Vision.TimeoutSec) * time.Second,
			MaxRetries: cfg.OCR.Vision.MaxRetries,
		}), nil
	default:
		return nil, fmt.Errorf("unknown ocr engine: %s", cfg.OCR.Engine)
	}
}
