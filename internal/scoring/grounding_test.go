// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

func actionWithBestSimilarity(sim float64) types.ActionItem {
	return types.ActionItem{
		Text:     "recommendation",
		Evidence: hitsWithSimilarities(sim, sim/2, 0),
	}
}

func TestDetect(t *testing.T) {
	detector := NewDetector(types.ScoringConfig{SimilarityThreshold: 0.5, AlertRatio: 0.30})

	tests := []struct {
		name    string
		actions []types.ActionItem
		want    bool
	}{
		{
			name:    "no actions never alerts",
			actions: nil,
			want:    false,
		},
		{
			name: "all well grounded",
			actions: []types.ActionItem{
				actionWithBestSimilarity(0.9),
				actionWithBestSimilarity(0.8),
				actionWithBestSimilarity(0.7),
			},
			want: false,
		},
		{
			name: "one of four poorly grounded stays under the ratio",
			actions: []types.ActionItem{
				actionWithBestSimilarity(0.9),
				actionWithBestSimilarity(0.8),
				actionWithBestSimilarity(0.7),
				actionWithBestSimilarity(0.1),
			},
			want: false, // 25% is not strictly above 30%
		},
		{
			name: "two of five poorly grounded alerts",
			actions: []types.ActionItem{
				actionWithBestSimilarity(0.9),
				actionWithBestSimilarity(0.8),
				actionWithBestSimilarity(0.7),
				actionWithBestSimilarity(0.1),
				actionWithBestSimilarity(0.2),
			},
			want: true, // 40% exceeds 30%
		},
		{
			name: "action with no evidence counts as poorly grounded",
			actions: []types.ActionItem{
				{Text: "bare recommendation"},
				actionWithBestSimilarity(0.9),
			},
			want: true, // 50% exceeds 30%
		},
		{
			name: "similarity exactly at threshold is well grounded",
			actions: []types.ActionItem{
				actionWithBestSimilarity(0.5),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Detect(tt.actions))
		})
	}
}

func TestDetectRatioBoundary(t *testing.T) {
	detector := NewDetector(types.ScoringConfig{SimilarityThreshold: 0.5, AlertRatio: 0.30})

	// Exactly 30% poorly grounded must not alert; the ratio must be
	// strictly exceeded.
	actions := []types.ActionItem{
		actionWithBestSimilarity(0.1),
		actionWithBestSimilarity(0.1),
		actionWithBestSimilarity(0.1),
		actionWithBestSimilarity(0.9),
		actionWithBestSimilarity(0.9),
		actionWithBestSimilarity(0.9),
		actionWithBestSimilarity(0.9),
		actionWithBestSimilarity(0.9),
		actionWithBestSimilarity(0.9),
		actionWithBestSimilarity(0.9),
	}
	assert.False(t, detector.Detect(actions))
}

func TestNewDetectorDefaultsRatio(t *testing.T) {
	detector := NewDetector(types.ScoringConfig{SimilarityThreshold: 0.5})
	assert.Equal(t, 0.30, detector.AlertRatio)
}
