// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider abstracts the external model services the pipeline
// depends on: embedding, summarization, and translation. Each capability
// sits behind a narrow contract so the deterministic demo implementation
// and the HTTP-backed production implementation are interchangeable.
package provider

import (
	"context"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// EmbeddingDimension is the fixed embedding vector length.
const EmbeddingDimension = 1536

// Languages lists the patient-summary translation targets.
var Languages = []string{"hi", "ta"}

// SummarizeResult is the structured output of a summarization call.
type SummarizeResult struct {
	// Summary is the clinical summary text (3-8 sentences).
	Summary string `json:"summary"`

	// Actions are the draft recommendations, without evidence.
	Actions []types.DraftAction `json:"actions"`

	// ModelScore is the model's certainty estimate, normalized to [0,1].
	ModelScore float64 `json:"model_score"`
}

// Embedder converts text to a fixed-length embedding vector. The demo
// implementation is deterministic: the same text always yields the same
// vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Summarizer turns a clinical note plus rendered evidence context into a
// summary, draft recommendations, and a model certainty score.
type Summarizer interface {
	Summarize(ctx context.Context, note, contextText string) (SummarizeResult, error)
}

// Translator renders text into a supported target language.
type Translator interface {
	Translate(ctx context.Context, text, lang string) (string, error)
}

// ModelProvider bundles the three capabilities a pipeline needs.
type ModelProvider interface {
	Embedder
	Summarizer
	Translator
}
