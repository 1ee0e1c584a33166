package server

import (
	"fmt"
	"net/http"

	"github.com/hanline/hanline/internal/cache"
	"github.com/hanline/hanline/internal/ocr"
	"github.com/hanline/hanline/internal/pinyin"
	"github.com/hanline/hanline/internal/plan"
	"github.com/hanline/hanline/internal/reconstruct"
	"github.com/hanline/hanline/internal/speech"
	"github.com/hanline/hanline/internal/translate"
)

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int

	RateLimitEnabled  bool
	RequestsPerMinute int
	RequestsPerHour   int
	MaxRequestsPerDay int
	MaxDataPerDay     int64
}

// Dependencies are the external collaborators the server works against. All
// are injected; the server owns no process-wide state. OCR is required;
// Translator, Speech, and Pinyin may be nil, disabling their endpoints.
type Dependencies struct {
	OCR        ocr.Provider
	Translator translate.Translator
	Speech     speech.Synthesizer
	Pinyin     pinyin.Provider
	Cache      *cache.Store
	Plan       plan.Plan
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	deps        Dependencies
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// NewServer creates a reconstruction server from injected dependencies.
func NewServer(config Config, deps Dependencies) (*Server, error) {
	if deps.OCR == nil {
		return nil, fmt.Errorf("server requires an OCR provider")
	}
	if deps.Cache == nil {
		return nil, fmt.Errorf("server requires a cache store")
	}

	s := &Server{
		deps:        deps,
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
	}
	if config.RateLimitEnabled {
		s.rateLimiter = NewRateLimiter(
			config.RequestsPerMinute,
			config.RequestsPerHour,
			config.MaxRequestsPerDay,
			config.MaxDataPerDay,
		)
	}
	return s, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/v1/reconstruct", s.corsMiddleware(s.rateLimitMiddleware(s.reconstructHandler)))
	mux.HandleFunc("/v1/text", s.corsMiddleware(s.rateLimitMiddleware(s.textHandler)))
	mux.HandleFunc("/v1/image", s.corsMiddleware(s.rateLimitMiddleware(s.imageHandler)))
	mux.HandleFunc("/v1/pinyin", s.corsMiddleware(s.rateLimitMiddleware(s.pinyinHandler)))
	mux.HandleFunc("/v1/translate", s.corsMiddleware(s.rateLimitMiddleware(s.translateHandler)))
	mux.HandleFunc("/v1/speech", s.corsMiddleware(s.rateLimitMiddleware(s.speechHandler)))
	mux.HandleFunc("/ws/pages", s.pagesWebSocketHandler)
	mux.Handle("/metrics", metricsHandler())
}

// Request/response types for API endpoints.

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type ReconstructRequest struct {
	Fragments []reconstruct.TextFragment `json:"fragments"`
	FullText  string                     `json:"full_text,omitempty"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type ReconstructResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Cached  bool   `json:"cached,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PinyinRequest struct {
	Text string `json:"text"`
}

type PinyinResponse struct {
	Success    bool   `json:"success"`
	Annotation string `json:"annotation,omitempty"`
	Error      string `json:"error,omitempty"`
}

type TranslateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type TranslateResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SpeechRequest struct {
	Segments []string `json:"segments"`
	Voice    string   `json:"voice,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
