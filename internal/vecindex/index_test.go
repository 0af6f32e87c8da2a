// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vecindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

func doc(title string) types.Document {
	return types.Document{Title: title, PMCID: "PMC1", DOI: "10.1/x", Content: "content"}
}

func TestAddValidation(t *testing.T) {
	ix := New(3)

	err := ix.Add([]types.Document{doc("a")}, nil)
	require.Error(t, err)
	assert.True(t, types.IsInputError(err))

	err = ix.Add([]types.Document{doc("a")}, [][]float32{{1, 0}})
	require.Error(t, err)
	assert.True(t, types.IsInputError(err))

	require.NoError(t, ix.Add([]types.Document{doc("a")}, [][]float32{{1, 0, 0}}))
	assert.Equal(t, 1, ix.Len())
}

func TestSearchRanksBySimilarity(t *testing.T) {
	ix := New(2)
	require.NoError(t, ix.Add(
		[]types.Document{doc("east"), doc("north"), doc("northeast")},
		[][]float32{{1, 0}, {0, 1}, {1, 1}},
	))

	hits, err := ix.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "east", hits[0].Document.Title)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, "northeast", hits[1].Document.Title)
	assert.InDelta(t, 0.7071, hits[1].Score, 1e-3)
}

func TestSearchEdgeCases(t *testing.T) {
	t.Run("empty index returns no hits", func(t *testing.T) {
		ix := New(2)
		hits, err := ix.Search([]float32{1, 0}, 3)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("topK beyond corpus returns everything", func(t *testing.T) {
		ix := New(2)
		require.NoError(t, ix.Add([]types.Document{doc("a"), doc("b")}, [][]float32{{1, 0}, {0, 1}}))
		hits, err := ix.Search([]float32{1, 1}, 10)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})

	t.Run("dimension mismatch is an input error", func(t *testing.T) {
		ix := New(2)
		_, err := ix.Search([]float32{1, 0, 0}, 1)
		require.Error(t, err)
		assert.True(t, types.IsInputError(err))
	})

	t.Run("non-positive topK is an input error", func(t *testing.T) {
		ix := New(2)
		_, err := ix.Search([]float32{1, 0}, 0)
		require.Error(t, err)
		assert.True(t, types.IsInputError(err))
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evidence.index")

	ix := New(2)
	docs := []types.Document{
		{Title: "first", PMCID: "PMC100", DOI: "10.1/first", Content: "alpha", Snippet: "alpha snippet"},
		{Title: "second", PMCID: "PMC200", DOI: "10.1/second", Content: "beta", Snippet: "beta snippet"},
	}
	require.NoError(t, ix.Add(docs, [][]float32{{1, 0}, {0, 1}}))
	require.NoError(t, ix.Save(path))

	// Sidecar lands next to the index.
	_, err := os.Stat(filepath.Join(dir, "evidence-metadata.yaml"))
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, 2, loaded.Dimension())

	hits, err := loaded.Search([]float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "second", hits[0].Document.Title)
	assert.Equal(t, "PMC200", hits[0].Document.PMCID)
}

func TestLoadMissingSidecarSynthesizesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evidence.index")

	ix := New(2)
	require.NoError(t, ix.Add([]types.Document{doc("a"), doc("b")}, [][]float32{{1, 0}, {0, 1}}))
	require.NoError(t, ix.Save(path))
	require.NoError(t, os.Remove(filepath.Join(dir, "evidence-metadata.yaml")))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())

	hits, err := loaded.Search([]float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Medical Literature Document 1", hits[0].Document.Title)
	assert.Equal(t, "PMC1000000", hits[0].Document.PMCID)
	assert.Equal(t, "10.1000/placeholder.0", hits[0].Document.DOI)
}

func TestLoadMissingIndex(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.index"))
	require.Error(t, err)
}

func TestZeroVectorScoresZero(t *testing.T) {
	ix := New(2)
	require.NoError(t, ix.Add([]types.Document{doc("zero")}, [][]float32{{0, 0}}))

	hits, err := ix.Search([]float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Zero(t, hits[0].Score)
}
