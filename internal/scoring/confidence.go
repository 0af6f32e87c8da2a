// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring fuses retrieval strength with model certainty into a
// bounded confidence value and applies the clinician-review guardrails.
package scoring

import "github.com/pdiddy/evidence-engine/pkg/types"

// Confidence formula weights. Literature grounding is favored over raw
// model self-confidence.
const (
	retrievalWeight = 0.6
	modelWeight     = 0.4
)

// reviewThreshold is the confidence below which review is always required.
const reviewThreshold = 0.6

// evidencePerAction is the fixed evidence list length downstream scoring
// relies on.
const evidencePerAction = 3

// Score computes the confidence for one recommendation and decides whether
// clinician review is required.
//
// confidence = clamp(0.6*max(similarities) + 0.4*modelScore, 0, 1)
//
// Guardrails, in fixed order: confidence below 0.6 requires review;
// otherwise the medication and treatment categories require review
// unconditionally. The function is pure: the caller attaches the result
// to its recommendation record.
func Score(category types.Category, evidence []types.EvidenceHit, modelScore float64) (confidence float64, reviewRequired bool, err error) {
	if len(evidence) != evidencePerAction {
		return 0, false, types.NewInputError("expected exactly %d evidence hits, got %d", evidencePerAction, len(evidence))
	}
	if modelScore < 0 || modelScore > 1 {
		return 0, false, types.NewInputError("model score must be in [0,1], got %g", modelScore)
	}

	var maxSim float64
	for _, hit := range evidence {
		if hit.Similarity > maxSim {
			maxSim = hit.Similarity
		}
	}

	confidence = retrievalWeight*maxSim + modelWeight*modelScore
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	switch {
	case confidence < reviewThreshold:
		reviewRequired = true
	case category.HighRisk():
		reviewRequired = true
	default:
		reviewRequired = false
	}
	return confidence, reviewRequired, nil
}
