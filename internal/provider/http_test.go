// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

func newHTTPProvider(baseURL string) *HTTP {
	p := NewHTTP(types.ProviderConfig{
		Mode:           types.ProviderModeHTTP,
		BaseURL:        baseURL,
		Model:          "test-chat",
		EmbeddingModel: "test-embed",
		APIKey:         "test-key",
		Timeout:        5 * time.Second,
	})
	p.policy.BaseDelay = time.Millisecond
	return p
}

func TestHTTPEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-embed", req.Model)
		assert.Equal(t, []string{"query text"}, req.Input)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	vec, err := newHTTPProvider(srv.URL).Embed(context.Background(), "query text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestHTTPEmbedRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{1}}},
		})
	}))
	defer srv.Close()

	vec, err := newHTTPProvider(srv.URL).Embed(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, vec)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSummarizeParsesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		content := `{"summary":"Parsed summary.","actions":[{"text":"Order test","category":"diagnostic","severity":"high"}],"model_score":0.82}`
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
	defer srv.Close()

	result, err := newHTTPProvider(srv.URL).Summarize(context.Background(), "note", "context")
	require.NoError(t, err)
	assert.Equal(t, "Parsed summary.", result.Summary)
	require.Len(t, result.Actions, 1)
	assert.Equal(t, types.CategoryDiagnostic, result.Actions[0].Category)
	assert.Equal(t, 0.82, result.ModelScore)
}

func TestHTTPSummarizeNonJSONFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": "Plain prose answer."}}},
		})
	}))
	defer srv.Close()

	result, err := newHTTPProvider(srv.URL).Summarize(context.Background(), "note", "context")
	require.NoError(t, err)
	assert.Equal(t, "Plain prose answer.", result.Summary)
	assert.Empty(t, result.Actions)
	assert.Equal(t, 0.5, result.ModelScore)
}

func TestHTTPTranslateUnsupportedLanguage(t *testing.T) {
	_, err := newHTTPProvider("http://unused").Translate(context.Background(), "text", "fr")
	require.Error(t, err)
	assert.True(t, types.IsInputError(err))
}
