// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
	"strings"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Demo is a deterministic in-process stand-in for the real model provider.
// Embeddings are topic-clustered: texts about the same medical topic map to
// vectors near a shared centroid, so cosine similarities look realistic
// (same-topic pairs land around 0.9 or higher) without any model call.
// Summaries and translations are selected by keyword-frequency condition
// detection over the input.
//
// All state is per-instance so concurrent pipelines and parallel tests can
// each hold their own Demo without interference.
type Demo struct{}

// NewDemo returns a demo provider.
func NewDemo() *Demo { return &Demo{} }

// topicSeeds maps keyword groups to centroid seeds. The first matching
// group wins, mirroring a coarse topic classifier.
var topicSeeds = []struct {
	seed     int64
	keywords []string
}{
	{1001, []string{"diabetes", "glucose", "hba1c", "metformin", "insulin", "hyperglycemi", "glycaemi", "glycemic", "t2dm"}},
	{1002, []string{"hypertension", "blood pressure", "bp ", "amlodipine", "antihypertensive", "systolic", "diastolic"}},
	{1003, []string{"respiratory", "asthma", "copd", "breath", "wheez", "spirometry", "inhaler", "bronch", "pulmon"}},
	{1004, []string{"lipid", "cholesterol", "statin", "dyslipidemia", "triglyceride", "ldl", "hdl"}},
	{1005, []string{"medication", "adherence", "compliance", "dosing", "prescription", "pharmacotherapy"}},
	{1006, []string{"lifestyle", "exercise", "diet", "physical activity", "weight loss", "smoking", "nutrition"}},
	{1007, []string{"patient education", "health literacy", "self-management", "teach", "counsell"}},
}

// defaultTopicSeed covers text that matches no keyword group.
const defaultTopicSeed = 42

// noiseScale keeps same-topic cosine similarity roughly in [0.90, 0.99].
const noiseScale = 0.02

// Embed returns a deterministic 1536-dimensional unit vector: a seeded
// topic centroid plus small text-specific noise. The same text always
// yields the same vector.
func (d *Demo) Embed(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)

	seed := int64(defaultTopicSeed)
	for _, topic := range topicSeeds {
		if containsAny(lower, topic.keywords) {
			seed = topic.seed
			break
		}
	}

	centroid := gaussianVector(rand.New(rand.NewSource(seed)), EmbeddingDimension)
	unit(centroid)

	sum := sha256.Sum256([]byte(text))
	noiseSeed := int64(binary.BigEndian.Uint32(sum[:4]))
	noise := gaussianVector(rand.New(rand.NewSource(noiseSeed)), EmbeddingDimension)

	vec := make([]float32, EmbeddingDimension)
	for i := range vec {
		vec[i] = centroid[i] + noise[i]*noiseScale
	}
	unit(vec)
	return vec, nil
}

// Summarize detects the primary condition by keyword frequency, not mere
// presence, so distinct notes produce distinct output. It returns the
// condition's summary template, up to four draft actions (plus one for a
// strong secondary condition), and a fixed model score.
func (d *Demo) Summarize(_ context.Context, note, _ string) (SummarizeResult, error) {
	lower := strings.ToLower(note)

	scores := make(map[string]int, len(conditionKeywords))
	for cond, keywords := range conditionKeywords {
		for _, kw := range keywords {
			scores[cond] += strings.Count(lower, kw)
		}
	}

	primary := topCondition(scores)

	var secondary string
	for cond, score := range scores {
		if cond != primary && score > 1 && (secondary == "" || score > scores[secondary]) {
			secondary = cond
		}
	}

	actions := make([]types.DraftAction, 0, 4)
	actions = append(actions, actionTemplates[primary]...)
	if secondary != "" {
		actions = append(actions, actionTemplates[secondary][0])
	}
	if len(actions) > 4 {
		actions = actions[:4]
	}

	return SummarizeResult{
		Summary:    summaryTemplates[primary],
		Actions:    actions,
		ModelScore: 0.78,
	}, nil
}

// Translate returns a pre-written patient summary in the target language,
// matched by detecting the dominant condition in the English text.
func (d *Demo) Translate(_ context.Context, text, lang string) (string, error) {
	byCondition, ok := translations[lang]
	if !ok {
		return "", types.NewInputError("unsupported language %q", lang)
	}

	lower := strings.ToLower(text)
	scores := make(map[string]int, len(translationKeywords))
	best := 0
	for cond, keywords := range translationKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				scores[cond]++
			}
		}
		if scores[cond] > best {
			best = scores[cond]
		}
	}

	condition := "default"
	if best > 0 {
		condition = topCondition(scores)
	}
	if t, ok := byCondition[condition]; ok {
		return t, nil
	}
	return byCondition["default"], nil
}

// topCondition returns the highest-scoring condition, breaking ties by
// name so the choice is deterministic.
func topCondition(scores map[string]int) string {
	var winner string
	for cond, score := range scores {
		if winner == "" || score > scores[winner] || (score == scores[winner] && cond < winner) {
			winner = cond
		}
	}
	return winner
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func gaussianVector(rng *rand.Rand, n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = float32(rng.NormFloat64())
	}
	return v
}

// unit scales v to unit length in place.
func unit(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
