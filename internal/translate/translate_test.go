package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "你好\n世界", req.Text)
		assert.Equal(t, "zh", req.Source)
		assert.Equal(t, "ko", req.Target)
		require.NoError(t, json.NewEncoder(w).Encode(translateResponse{Text: "안녕\n세계"}))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	got, err := c.Translate(context.Background(), "你好\n世界", "zh", "ko")
	require.NoError(t, err)
	assert.Equal(t, "안녕\n세계", got)
}

func TestClient_EmptyInputSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	got, err := c.Translate(context.Background(), "", "zh", "en")
	require.NoError(t, err)
	assert.Equal(t, "", got)
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(translateResponse{Text: "hello"}))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, MaxRetries: 3})
	got, err := c.Translate(context.Background(), "你好", "zh", "en")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_APIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(translateResponse{Error: "unsupported language pair"}))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.Translate(context.Background(), "你好", "zh", "xx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language pair")
}
