package server

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/hanline/hanline/internal/cache"
	"github.com/hanline/hanline/internal/reconstruct"
)

// imageHandler accepts a page photo, runs the configured OCR provider, and
// returns the reconstructed reading-order text.
func (s *Server) imageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)
	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorResponse(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	uploadSizeBytes.Observe(float64(header.Size))

	img, _, err := image.Decode(file)
	if err != nil {
		s.writeErrorResponse(w, "Unsupported or corrupt image", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	result, err := s.deps.OCR.Recognize(ctx, img)
	if err != nil {
		slog.Error("ocr recognition failed", "provider", s.deps.OCR.Name(), "error", err)
		recordReconstruction("image", "error", "")
		s.writeErrorResponse(w, "OCR recognition failed", http.StatusBadGateway)
		return
	}

	key := cache.FragmentsKey(result.Fragments, result.FullText)
	if text, ok := s.deps.Cache.Get(key); ok {
		cacheHitsTotal.WithLabelValues("hit").Inc()
		s.writeReconstruction(w, text, true)
		recordReconstruction("image", "ok", text)
		return
	}
	cacheHitsTotal.WithLabelValues("miss").Inc()

	text := reconstruct.Reconstruct(result.Fragments, result.FullText)
	s.deps.Cache.Add(key, text)
	s.writeReconstruction(w, text, false)
	recordReconstruction("image", "ok", text)
}
