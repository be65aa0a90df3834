package stt

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiopachon/birdie/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClientWithBaseURL(ts.URL, logging.Noop())
}

func TestTranscribeSuccess(t *testing.T) {
	audio := []byte("fake-webm-opus-bytes")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req recognizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "WEBM_OPUS", req.Config.Encoding)
		assert.Equal(t, 48000, req.Config.SampleRateHertz)
		assert.Equal(t, "es-ES", req.Config.LanguageCode)
		assert.Equal(t, base64.StdEncoding.EncodeToString(audio), req.Audio.Content)

		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"alternatives": []map[string]any{{"transcript": "hola mundo"}}},
			},
		})
	})

	res := client.Transcribe(audio, "test-key", "es-ES")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "hola mundo", res.Text)
}

func TestTranscribeMissingAPIKey(t *testing.T) {
	client := NewClient(logging.Noop())
	res := client.Transcribe([]byte("audio"), "", "es-ES")
	assert.False(t, res.Success)
	assert.Equal(t, "API key not configured. Please add your Google Cloud API key in settings.", res.Error)
}

func TestTranscribeInvalidKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	res := client.Transcribe([]byte("audio"), "bad-key", "es-ES")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid API key. Please check your Google Cloud API key.", res.Error)
}

func TestTranscribeAccessDenied(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	res := client.Transcribe([]byte("audio"), "key", "es-ES")
	assert.False(t, res.Success)
	assert.Equal(t, "Access denied. Please ensure Speech-to-Text API is enabled in Google Cloud.", res.Error)
}

func TestTranscribeNoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})
	res := client.Transcribe([]byte("audio"), "key", "es-ES")
	assert.False(t, res.Success)
	assert.Equal(t, "No transcription results found", res.Error)
}

func TestTranscribeUnreachableEndpoint(t *testing.T) {
	client := NewClientWithBaseURL("http://127.0.0.1:1/speech:recognize", logging.Noop())
	res := client.Transcribe([]byte("audio"), "key", "es-ES")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "API request failed")
}
