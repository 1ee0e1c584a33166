package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hanline/hanline/internal/cache"
	"github.com/hanline/hanline/internal/reconstruct"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are delegated to the deployment's reverse proxy.
		return true
	},
}

// PageRequest is one page submitted over the WebSocket stream. A client
// scanning a multi-page note sends pages as OCR results arrive and receives
// reconstructions in submission order per connection.
type PageRequest struct {
	PageID    string                     `json:"page_id,omitempty"`
	Fragments []reconstruct.TextFragment `json:"fragments,omitempty"`
	FullText  string                     `json:"full_text,omitempty"`
}

// PageResponse carries one reconstructed page back to the client.
type PageResponse struct {
	Status string `json:"status"` // "completed" or "error"
	PageID string `json:"page_id,omitempty"`
	Text   string `json:"text,omitempty"`
	Cached bool   `json:"cached,omitempty"`
	Error  string `json:"error,omitempty"`
}

// pagesWebSocketHandler streams page reconstructions over a WebSocket
// connection.
func (s *Server) pagesWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)
	s.handlePageStream(conn)
}

func (s *Server) handlePageStream(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			return
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType != websocket.TextMessage {
			continue
		}
		s.handlePageMessage(conn, data)
	}
}

func (s *Server) handlePageMessage(conn *websocket.Conn, data []byte) {
	var req PageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendPageResponse(conn, PageResponse{Status: "error", Error: "invalid page request"})
		return
	}
	if req.PageID == "" {
		req.PageID = uuid.NewString()
	}

	key := cache.FragmentsKey(req.Fragments, req.FullText)
	if text, ok := s.deps.Cache.Get(key); ok {
		cacheHitsTotal.WithLabelValues("hit").Inc()
		s.sendPageResponse(conn, PageResponse{Status: "completed", PageID: req.PageID, Text: text, Cached: true})
		return
	}
	cacheHitsTotal.WithLabelValues("miss").Inc()

	text := reconstruct.Reconstruct(req.Fragments, req.FullText)
	s.deps.Cache.Add(key, text)
	recordReconstruction("fragments", "ok", text)
	s.sendPageResponse(conn, PageResponse{Status: "completed", PageID: req.PageID, Text: text})
}

func (s *Server) sendPageResponse(conn *websocket.Conn, resp PageResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("failed to write WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
