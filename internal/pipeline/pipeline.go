// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the evidence-grounding request flow: context
// retrieval, summarization, per-recommendation evidence matching,
// confidence scoring, grounding checks, translation, and audit recording.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/evidence-engine/internal/audit"
	"github.com/pdiddy/evidence-engine/internal/provider"
	"github.com/pdiddy/evidence-engine/internal/retrieval"
	"github.com/pdiddy/evidence-engine/internal/scoring"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// evidencePerQuery is the fixed evidence count retrieved per query;
// shortfalls are padded with zero-similarity placeholders so downstream
// scoring can always assume exactly three hits.
const evidencePerQuery = 3

// Orchestrator owns the lifecycle of one request's SummaryResponse and
// AuditRecord. Each invocation is independent; the only shared state is
// the read-mostly evidence index behind the retrieval service.
type Orchestrator struct {
	retrieval *retrieval.Service
	model     provider.ModelProvider
	detector  scoring.Detector
	recorder  *audit.Recorder
	logger    *zap.Logger
}

// New builds an orchestrator over the given components.
func New(retrievalSvc *retrieval.Service, model provider.ModelProvider, detector scoring.Detector, recorder *audit.Recorder, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		retrieval: retrievalSvc,
		model:     model,
		detector:  detector,
		recorder:  recorder,
		logger:    logger,
	}
}

// ProcessNote runs the full pipeline for one clinical note. A blank
// requestID is replaced with a fresh UUID. callerID, when present, reaches
// the audit record only as a SHA-256 digest. Any unrecoverable provider or
// retrieval failure aborts the pipeline with the originating stage named
// in the error; no partial response is returned. An audit persistence
// failure is logged and surfaced through the recorder but does not fail
// the response.
func (o *Orchestrator) ProcessNote(ctx context.Context, note, requestID, callerID string) (types.SummaryResponse, error) {
	start := time.Now()

	if requestID == "" {
		requestID = uuid.NewString()
	}

	contextEvidence, err := o.retrieveContext(ctx, note)
	if err != nil {
		return types.SummaryResponse{}, fmt.Errorf("retrieve context: %w", err)
	}

	summary, err := o.model.Summarize(ctx, note, renderContext(contextEvidence))
	if err != nil {
		return types.SummaryResponse{}, fmt.Errorf("summarize: %w", err)
	}

	actions, err := o.matchEvidence(ctx, summary.Actions, note)
	if err != nil {
		return types.SummaryResponse{}, fmt.Errorf("match evidence: %w", err)
	}

	for i := range actions {
		confidence, review, err := scoring.Score(actions[i].Category, actions[i].Evidence, summary.ModelScore)
		if err != nil {
			return types.SummaryResponse{}, fmt.Errorf("score confidence: %w", err)
		}
		actions[i].Confidence = confidence
		actions[i].ReviewRequired = review
	}

	alert := o.detector.Detect(actions)
	if alert {
		o.logger.Warn("grounding alert raised",
			zap.String("request_id", requestID),
			zap.Int("actions", len(actions)),
		)
	}

	patientSummary, err := o.translate(ctx, summary.Summary)
	if err != nil {
		return types.SummaryResponse{}, fmt.Errorf("translate: %w", err)
	}

	response := types.SummaryResponse{
		RequestID:          requestID,
		Summary:            summary.Summary,
		PatientSummary:     patientSummary,
		Actions:            actions,
		Sources:            contextEvidence,
		Confidence:         overallConfidence(actions),
		HallucinationAlert: alert,
		ProcessingTimeMs:   time.Since(start).Milliseconds(),
	}

	// Persistence failure must not drop a valid response; the recorder
	// logs it for operators and the missing record is reconcilable from
	// the response side.
	if _, err := o.recorder.Record(ctx, requestID, note, response, response.ProcessingTimeMs, callerID, alert); err != nil && !types.IsPersistenceError(err) {
		return types.SummaryResponse{}, fmt.Errorf("record audit: %w", err)
	}

	o.logger.Info("note processed",
		zap.String("request_id", requestID),
		zap.Int("actions", len(actions)),
		zap.Float64("confidence", response.Confidence),
		zap.Bool("hallucination_alert", alert),
		zap.Int64("latency_ms", response.ProcessingTimeMs),
	)
	return response, nil
}

// retrieveContext fetches the top evidence for the note as a whole and
// pads the result to exactly three hits.
func (o *Orchestrator) retrieveContext(ctx context.Context, note string) ([]types.EvidenceHit, error) {
	hits, err := o.retrieval.Search(ctx, note, evidencePerQuery)
	if err != nil {
		return nil, err
	}
	return padEvidence(hits), nil
}

// matchEvidence retrieves per-recommendation evidence in parallel. Each
// retrieval is independent; the only shared write target is the embedding
// cache, which tolerates concurrent inserts.
func (o *Orchestrator) matchEvidence(ctx context.Context, drafts []types.DraftAction, note string) ([]types.ActionItem, error) {
	contextTerms := conditionTerms(note)

	actions := make([]types.ActionItem, len(drafts))
	errs := make([]error, len(drafts))

	var wg sync.WaitGroup
	for i, draft := range drafts {
		wg.Add(1)
		go func(i int, draft types.DraftAction) {
			defer wg.Done()

			query := draft.Text + " " + contextTerms
			hits, err := o.retrieval.Search(ctx, query, evidencePerQuery)
			if err != nil {
				errs[i] = err
				return
			}

			category := draft.Category
			if category == "" {
				category = types.CategoryFollowup
			}
			severity := draft.Severity
			if severity == "" {
				severity = types.SeverityMedium
			}

			actions[i] = types.ActionItem{
				ID:       uuid.NewString(),
				Text:     draft.Text,
				Category: category,
				Severity: severity,
				Evidence: padEvidence(hits),
			}
		}(i, draft)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return actions, nil
}

// translate produces the patient-facing summary in every target language.
func (o *Orchestrator) translate(ctx context.Context, summary string) (map[string]string, error) {
	out := make(map[string]string, len(provider.Languages))
	for _, lang := range provider.Languages {
		text, err := o.model.Translate(ctx, summary, lang)
		if err != nil {
			return nil, fmt.Errorf("language %s: %w", lang, err)
		}
		out[lang] = text
	}
	return out, nil
}

// overallConfidence is the arithmetic mean over action confidences,
// defaulting to 0.5 when there are none.
func overallConfidence(actions []types.ActionItem) float64 {
	if len(actions) == 0 {
		return 0.5
	}
	var total float64
	for _, action := range actions {
		total += action.Confidence
	}
	return total / float64(len(actions))
}

// padEvidence trims or pads hits to exactly evidencePerQuery entries.
func padEvidence(hits []types.EvidenceHit) []types.EvidenceHit {
	if len(hits) > evidencePerQuery {
		hits = hits[:evidencePerQuery]
	}
	for len(hits) < evidencePerQuery {
		hits = append(hits, types.PlaceholderHit())
	}
	return hits
}

// renderContext turns evidence hits into the textual context block passed
// to the summarizer.
func renderContext(hits []types.EvidenceHit) string {
	parts := make([]string, len(hits))
	for i, hit := range hits {
		parts[i] = fmt.Sprintf("Evidence %d: %s\n%s", i+1, hit.Title, hit.Snippet)
	}
	return strings.Join(parts, "\n\n")
}

// conditionQueries maps note keywords to the retrieval terms appended to
// each per-recommendation query.
var conditionQueries = []struct {
	terms    string
	keywords []string
}{
	{"diabetes glucose management", []string{"diabetes", "glucose"}},
	{"hypertension blood pressure", []string{"hypertension", "blood pressure"}},
	{"respiratory disease", []string{"respiratory", "asthma", "copd"}},
	{"lipid cholesterol", []string{"lipid", "cholesterol"}},
}

// conditionTerms extracts detected condition keywords from the note to
// sharpen per-recommendation retrieval queries. When nothing matches, the
// first 100 characters of the note stand in.
func conditionTerms(note string) string {
	lower := strings.ToLower(note)

	var matched []string
	for _, cond := range conditionQueries {
		for _, kw := range cond.keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, cond.terms)
				break
			}
		}
	}
	if len(matched) > 0 {
		return strings.Join(matched, " ")
	}
	if len(note) > 100 {
		return note[:100]
	}
	return note
}
