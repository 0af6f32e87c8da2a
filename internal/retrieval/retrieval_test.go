// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/evidence-engine/internal/vecindex"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// stubEmbedder maps exact texts to fixed vectors and counts invocations.
type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0}, nil
}

func newTestService(t *testing.T, embedder *stubEmbedder) *Service {
	t.Helper()
	ix := vecindex.New(2)
	docs := []types.Document{
		{Title: "diabetes care", PMCID: "PMC1", DOI: "10.1/a", Content: "content a", Snippet: "snippet a"},
		{Title: "hypertension care", PMCID: "PMC2", DOI: "10.1/b", Content: "content b", Snippet: "snippet b"},
	}
	require.NoError(t, ix.Add(docs, [][]float32{{1, 0}, {0, 1}}))
	return NewService(ix, embedder, nil)
}

func TestSearchReturnsRankedHits(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{"diabetes": {1, 0}}}
	svc := newTestService(t, embedder)

	hits, err := svc.Search(context.Background(), "diabetes", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "diabetes care", hits[0].Title)
	assert.Equal(t, "PMC1", hits[0].PMCID)
	assert.Equal(t, "snippet a", hits[0].Snippet)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "hypertension care", hits[1].Title)
}

func TestSearchCachesQueryEmbeddings(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{"diabetes": {1, 0}}}
	svc := newTestService(t, embedder)

	for i := 0; i < 3; i++ {
		_, err := svc.Search(context.Background(), "diabetes", 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, embedder.calls, "repeated queries must hit the cache")

	_, err := svc.Search(context.Background(), "another query", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, embedder.calls)
}

func TestSearchSimilarityClampedToUnitInterval(t *testing.T) {
	for _, hitSim := range []float64{-0.5, 1.5} {
		embedder := &stubEmbedder{vectors: map[string][]float32{"q": {float32(hitSim), 0}}}
		svc := newTestService(t, embedder)

		hits, err := svc.Search(context.Background(), "q", 2)
		require.NoError(t, err)
		for _, hit := range hits {
			assert.GreaterOrEqual(t, hit.Similarity, 0.0)
			assert.LessOrEqual(t, hit.Similarity, 1.0)
		}
	}
}

func TestSearchTruncatesLongSnippets(t *testing.T) {
	ix := vecindex.New(2)
	long := strings.Repeat("evidence ", 50) // well over 200 chars
	require.NoError(t, ix.Add(
		[]types.Document{{Title: "long", PMCID: "PMC9", Content: long}},
		[][]float32{{1, 0}},
	))
	embedder := &stubEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	svc := NewService(ix, embedder, nil)

	hits, err := svc.Search(context.Background(), "q", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Len(t, hits[0].Snippet, 200)
	assert.True(t, strings.HasPrefix(hits[0].Snippet, "evidence "))
}

func TestAddDocumentsEmbedsContent(t *testing.T) {
	ix := vecindex.New(2)
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"body text":  {1, 0},
		"title only": {0, 1},
	}}
	svc := NewService(ix, embedder, nil)

	err := svc.AddDocuments(context.Background(), []types.Document{
		{Title: "with content", Content: "body text"},
		{Title: "title only"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len())

	hits, err := svc.Search(context.Background(), "body text", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "with content", hits[0].Title)
}
