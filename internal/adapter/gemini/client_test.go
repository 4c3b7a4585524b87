package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"creativesync/internal/config/configs"
	"creativesync/internal/core/port"
)

type generateRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
	SafetySettings []struct {
		Category  string `json:"category"`
		Threshold string `json:"threshold"`
	} `json:"safetySettings"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(configs.Gemini{
		APIKey:     "test-key-0123456789abcdef",
		Model:      "gemini-2.5-flash",
		BaseURL:    srv.URL + "/",
		APIVersion: "v1beta",
		Timeout:    5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestGenerate(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1beta/models/gemini-2.5-flash:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"## Headline\nHello"}]}}]}`))
	})

	text, err := c.Generate(context.Background(), "write copy")
	require.NoError(t, err)
	assert.Equal(t, "## Headline\nHello", text)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "write copy", got.Contents[0].Parts[0].Text)
	assert.InDelta(t, 0.9, got.GenerationConfig.Temperature, 1e-6)
	assert.Equal(t, 2048, got.GenerationConfig.MaxOutputTokens)
	require.Len(t, got.SafetySettings, 4)
	for _, s := range got.SafetySettings {
		assert.Equal(t, "BLOCK_NONE", s.Threshold)
	}
}

func TestGenerateFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
		},
		"no candidates": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		},
		"empty text": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  "}]}}]}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, handler)
			_, err := c.Generate(context.Background(), "prompt")
			assert.ErrorIs(t, err, port.ErrCollaboratorUnavailable)
		})
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	c, err := New(configs.Gemini{Model: "gemini-2.5-flash"}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, c.Configured())

	_, err = c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, port.ErrCollaboratorUnavailable)
	assert.ErrorIs(t, err, errNoAPIKey)

	require.NoError(t, c.UpdateAPIKey("a-key-that-is-long-enough"))
	assert.True(t, c.Configured())
}
