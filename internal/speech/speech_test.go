package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req synthesizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"你好", "世界"}, req.Segments)
		assert.Equal(t, DefaultVoice, req.Voice)
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	audio, err := c.Synthesize(context.Background(), []string{"你好", "世界"}, "")
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), audio)
}

func TestClient_EmptySegments(t *testing.T) {
	c := NewClient(Config{Endpoint: "http://unused"})
	audio, err := c.Synthesize(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Nil(t, audio)
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "voice not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.Synthesize(context.Background(), []string{"你好"}, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice not found")
}
