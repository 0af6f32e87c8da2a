// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import "github.com/pdiddy/evidence-engine/pkg/types"

// Detector flags a response as potentially unreliable when too many of its
// recommendations lack literature support. The per-hit similarity
// threshold is environment-sensitive: near zero suits the deterministic
// demo embedder, while a real semantic model warrants 0.5-0.75. It is
// therefore configuration, not logic.
type Detector struct {
	// SimilarityThreshold is the per-recommendation grounding floor. A
	// recommendation whose best evidence similarity falls below it is
	// poorly grounded.
	SimilarityThreshold float64

	// AlertRatio is the poorly-grounded fraction the response must
	// strictly exceed to trigger the alert.
	AlertRatio float64
}

// NewDetector builds a detector from config, applying the default alert
// ratio of 0.30 when unset.
func NewDetector(cfg types.ScoringConfig) Detector {
	ratio := cfg.AlertRatio
	if ratio <= 0 {
		ratio = 0.30
	}
	return Detector{
		SimilarityThreshold: cfg.SimilarityThreshold,
		AlertRatio:          ratio,
	}
}

// Detect reports whether the set of recommendations warrants a grounding
// alert. A recommendation with no evidence at all is poorly grounded, as
// is one whose maximum evidence similarity falls below the threshold. The
// alert fires when the poorly grounded fraction strictly exceeds
// AlertRatio; an empty list is vacuously well-grounded.
func (d Detector) Detect(actions []types.ActionItem) bool {
	if len(actions) == 0 {
		return false
	}

	poorlyGrounded := 0
	for _, action := range actions {
		if len(action.Evidence) == 0 || action.MaxSimilarity() < d.SimilarityThreshold {
			poorlyGrounded++
		}
	}

	fraction := float64(poorlyGrounded) / float64(len(actions))
	return fraction > d.AlertRatio
}
