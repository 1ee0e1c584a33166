package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hanline/hanline/internal/cache"
	"github.com/hanline/hanline/internal/pinyin"
	"github.com/hanline/hanline/internal/reconstruct"
)

const maxJSONBody = 4 << 20

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// reconstructHandler rebuilds reading-order text from located fragments.
func (s *Server) reconstructHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ReconstructRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	key := cache.FragmentsKey(req.Fragments, req.FullText)
	if text, ok := s.deps.Cache.Get(key); ok {
		cacheHitsTotal.WithLabelValues("hit").Inc()
		s.writeReconstruction(w, text, true)
		recordReconstruction("fragments", "ok", text)
		return
	}
	cacheHitsTotal.WithLabelValues("miss").Inc()

	text := reconstruct.Reconstruct(req.Fragments, req.FullText)
	s.deps.Cache.Add(key, text)
	s.writeReconstruction(w, text, false)
	recordReconstruction("fragments", "ok", text)
}

// textHandler filters a flat text blob with no coordinates.
func (s *Server) textHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TextRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	key := cache.TextKey(req.Text)
	if text, ok := s.deps.Cache.Get(key); ok {
		cacheHitsTotal.WithLabelValues("hit").Inc()
		s.writeReconstruction(w, text, true)
		recordReconstruction("flat", "ok", text)
		return
	}
	cacheHitsTotal.WithLabelValues("miss").Inc()

	text := reconstruct.ProcessFlatText(req.Text)
	s.deps.Cache.Add(key, text)
	s.writeReconstruction(w, text, false)
	recordReconstruction("flat", "ok", text)
}

// pinyinHandler annotates target-script text with per-character readings.
func (s *Server) pinyinHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.deps.Pinyin == nil {
		s.writeErrorResponse(w, "Pinyin provider not configured", http.StatusServiceUnavailable)
		return
	}

	var req PinyinRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	annotation, err := pinyin.Annotate(r.Context(), s.deps.Pinyin, req.Text)
	if err != nil {
		if errors.Is(err, pinyin.ErrTransliterationUnavailable) {
			slog.Warn("pinyin provider unavailable", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			// Partial annotation is preserved alongside the error.
			writeJSON(w, PinyinResponse{Success: false, Annotation: annotation, Error: err.Error()})
			return
		}
		s.writeErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, PinyinResponse{Success: true, Annotation: annotation})
}

// translateHandler forwards reconstructed text to the translation provider.
func (s *Server) translateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.deps.Translator == nil {
		s.writeErrorResponse(w, "Translation not configured", http.StatusServiceUnavailable)
		return
	}
	if !s.deps.Plan.Limits().Translation {
		s.writeErrorResponse(w, "Translation not available on the "+s.deps.Plan.String()+" plan", http.StatusForbidden)
		return
	}

	var req TranslateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	text, err := s.deps.Translator.Translate(r.Context(), req.Text, req.Source, req.Target)
	if err != nil {
		slog.Error("translation failed", "error", err)
		s.writeErrorResponse(w, "Translation failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, TranslateResponse{Success: true, Text: text})
}

// speechHandler synthesizes read-aloud audio for text segments.
func (s *Server) speechHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.deps.Speech == nil {
		s.writeErrorResponse(w, "Speech synthesis not configured", http.StatusServiceUnavailable)
		return
	}
	if !s.deps.Plan.Limits().ReadAloud {
		s.writeErrorResponse(w, "Read-aloud not available on the "+s.deps.Plan.String()+" plan", http.StatusForbidden)
		return
	}

	var req SpeechRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	audio, err := s.deps.Speech.Synthesize(r.Context(), req.Segments, req.Voice)
	if err != nil {
		slog.Error("speech synthesis failed", "error", err)
		s.writeErrorResponse(w, "Speech synthesis failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	if _, err := w.Write(audio); err != nil {
		slog.Error("failed to write audio response", "error", err)
	}
}

func (s *Server) writeReconstruction(w http.ResponseWriter, text string, cached bool) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ReconstructResponse{Success: true, Text: text, Cached: cached})
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeJSON(w, ErrorResponse{Success: false, Error: message})
}

func decodeJSON(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
