// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vecindex implements a flat inner-product similarity index over
// unit-normalized embedding vectors. Because vectors are normalized at
// insertion and query time, inner product equals cosine similarity, so
// the same index serves both the deterministic demo embedder and a real
// embedding model without downstream changes.
package vecindex

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// metadataSuffix derives the sidecar path from the index path:
// "evidence.index" -> "evidence-metadata.yaml".
const metadataSuffix = "-metadata.yaml"

// Hit pairs an indexed document with its raw similarity score. Scores are
// not clamped here; the retrieval layer owns the [0,1] contract.
type Hit struct {
	Document types.Document
	Score    float64
}

// Index is an in-memory similarity index with a metadata sidecar.
// Reads may run concurrently; insertions and loads are mutually exclusive
// with reads and with each other.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	docs      []types.Document
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) *Index {
	return &Index{dimension: dimension}
}

// Dimension returns the vector length the index accepts.
func (ix *Index) Dimension() int { return ix.dimension }

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Add appends documents and their parallel embedding vectors. Vectors are
// normalized to unit length before insertion. The two slices must have the
// same length and every vector must match the index dimension.
func (ix *Index) Add(docs []types.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return types.NewInputError("documents (%d) and embeddings (%d) differ in length", len(docs), len(vectors))
	}

	normalized := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != ix.dimension {
			return types.NewInputError("embedding %d has dimension %d, index expects %d", i, len(v), ix.dimension)
		}
		normalized[i] = normalize(v)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.vectors = append(ix.vectors, normalized...)
	ix.docs = append(ix.docs, docs...)
	return nil
}

// Search returns the topK documents most similar to the query vector,
// highest score first. An empty index yields an empty result, and a topK
// larger than the corpus returns every document.
func (ix *Index) Search(query []float32, topK int) ([]Hit, error) {
	if len(query) != ix.dimension {
		return nil, types.NewInputError("query has dimension %d, index expects %d", len(query), ix.dimension)
	}
	if topK <= 0 {
		return nil, types.NewInputError("topK must be positive, got %d", topK)
	}

	q := normalize(query)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.vectors) == 0 {
		return nil, nil
	}

	hits := make([]Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = Hit{Document: ix.docs[i], Score: dot(q, v)}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

// indexFile is the on-disk representation of the vector portion.
type indexFile struct {
	Dimension int         `json:"dimension"`
	Vectors   [][]float32 `json:"vectors"`
}

// Save writes the index to path and the document metadata to the sidecar
// next to it. Directories are created as needed.
func (ix *Index) Save(path string) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating index directory: %w", err)
		}
	}

	data, err := json.Marshal(indexFile{Dimension: ix.dimension, Vectors: ix.vectors})
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	meta, err := yaml.Marshal(ix.docs)
	if err != nil {
		return fmt.Errorf("encoding metadata sidecar: %w", err)
	}
	if err := os.WriteFile(sidecarPath(path), meta, 0o644); err != nil {
		return fmt.Errorf("writing metadata sidecar: %w", err)
	}
	return nil
}

// Load reads an index and its metadata sidecar from disk. A missing
// sidecar is tolerated: placeholder metadata is synthesized so the
// document count always matches the index size.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", path, err)
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing index %s: %w", path, err)
	}

	ix := &Index{dimension: f.Dimension, vectors: f.Vectors}

	meta, err := os.ReadFile(sidecarPath(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(meta, &ix.docs); err != nil {
			return nil, fmt.Errorf("parsing metadata sidecar: %w", err)
		}
	case os.IsNotExist(err):
		// No sidecar: synthesize placeholders so counts line up.
	default:
		return nil, fmt.Errorf("reading metadata sidecar: %w", err)
	}

	for len(ix.docs) < len(ix.vectors) {
		ix.docs = append(ix.docs, PlaceholderDocument(len(ix.docs)))
	}
	return ix, nil
}

// PlaceholderDocument synthesizes metadata for an indexed vector whose
// sidecar entry is missing.
func PlaceholderDocument(idx int) types.Document {
	content := "Placeholder medical literature content for demo purposes."
	return types.Document{
		Title:   fmt.Sprintf("Medical Literature Document %d", idx+1),
		PMCID:   fmt.Sprintf("PMC%d", 1000000+idx),
		DOI:     fmt.Sprintf("10.1000/placeholder.%d", idx),
		Content: content,
		Snippet: content,
	}
}

func sidecarPath(indexPath string) string {
	base := strings.TrimSuffix(indexPath, filepath.Ext(indexPath))
	return base + metadataSuffix
}

// normalize returns v scaled to unit length. A zero vector is returned
// unchanged so it scores zero against everything.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := 1.0 / math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
