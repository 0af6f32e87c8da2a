// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieval maps free text to the most similar literature
// documents in the evidence index.
package retrieval

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/evidence-engine/internal/provider"
	"github.com/pdiddy/evidence-engine/internal/vecindex"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// snippetLimit caps evidence snippets per the response contract.
const snippetLimit = 200

// Service wraps the evidence index with an embedding provider and a
// query-text embedding cache. The cache is keyed by exact query text and
// unbounded: corpora and query sets are small, and concurrent inserts for
// the same key collapse safely to the same deterministic value.
type Service struct {
	index    *vecindex.Index
	embedder provider.Embedder
	logger   *zap.Logger

	mu    sync.Mutex
	cache map[string][]float32
}

// NewService builds a retrieval service over index and embedder.
func NewService(index *vecindex.Index, embedder provider.Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		index:    index,
		embedder: embedder,
		logger:   logger,
		cache:    make(map[string][]float32),
	}
}

// Search embeds the query and returns the topK most similar documents as
// evidence hits, highest similarity first. Similarity values are clamped
// into [0,1] before being placed on the hit. An empty index yields an
// empty result and a topK beyond the corpus size returns everything.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]types.EvidenceHit, error) {
	vec, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	raw, err := s.index.Search(vec, topK)
	if err != nil {
		return nil, err
	}

	hits := make([]types.EvidenceHit, 0, len(raw))
	for _, h := range raw {
		hits = append(hits, toHit(h))
	}
	s.logger.Debug("evidence search",
		zap.Int("top_k", topK),
		zap.Int("hits", len(hits)),
	)
	return hits, nil
}

// AddDocuments embeds each document's content and inserts it into the
// index. Used by corpus building; production corpora arrive pre-embedded
// through the index directly.
func (s *Service) AddDocuments(ctx context.Context, docs []types.Document) error {
	vectors := make([][]float32, len(docs))
	for i, doc := range docs {
		text := doc.Content
		if text == "" {
			text = doc.Title
		}
		vec, err := s.embedQuery(ctx, text)
		if err != nil {
			return err
		}
		vectors[i] = vec
	}
	return s.index.Add(docs, vectors)
}

// embedQuery returns the cached embedding for query, computing and caching
// it on first use.
func (s *Service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	s.mu.Lock()
	vec, ok := s.cache[query]
	s.mu.Unlock()
	if ok {
		return vec, nil
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[query] = vec
	s.mu.Unlock()
	return vec, nil
}

func toHit(h vecindex.Hit) types.EvidenceHit {
	snippet := h.Document.Snippet
	if snippet == "" {
		snippet = h.Document.Content
	}
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit]
	}
	return types.EvidenceHit{
		Title:      h.Document.Title,
		PMCID:      h.Document.PMCID,
		DOI:        h.Document.DOI,
		Snippet:    snippet,
		Similarity: clamp01(h.Score),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
