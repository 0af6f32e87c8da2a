// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the evidence-grounding pipeline.
package types

// EvidenceHit is a single literature citation returned by retrieval.
// Similarity is always clamped into [0,1] regardless of the raw index score.
type EvidenceHit struct {
	// Title is the cited document's title.
	Title string `json:"title" yaml:"title"`

	// PMCID is the corpus identifier of the cited document (e.g. "PMC8901234").
	PMCID string `json:"pmcid" yaml:"pmcid"`

	// DOI is the document's DOI.
	DOI string `json:"doi" yaml:"doi"`

	// Snippet is a short excerpt from the document, at most 200 characters.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Similarity is the cosine similarity between the query and the document,
	// in the closed interval [0,1].
	Similarity float64 `json:"cosine_similarity" yaml:"cosine_similarity"`
}

// PlaceholderHit returns the synthetic zero-similarity hit used to pad
// evidence lists up to exactly three entries.
func PlaceholderHit() EvidenceHit {
	return EvidenceHit{
		Title:      "No additional evidence available",
		PMCID:      "PMC0000000",
		DOI:        "10.0000/unavailable",
		Snippet:    "No additional evidence found for this query.",
		Similarity: 0.0,
	}
}

// Category classifies a clinical recommendation.
type Category string

const (
	CategoryMedication Category = "medication"
	CategoryTreatment  Category = "treatment"
	CategoryDiagnostic Category = "diagnostic"
	CategoryLifestyle  Category = "lifestyle"
	CategoryFollowup   Category = "followup"
)

// HighRisk reports whether the category always requires clinician sign-off,
// independent of the numeric confidence score.
func (c Category) HighRisk() bool {
	return c == CategoryMedication || c == CategoryTreatment
}

// Severity grades a recommendation's clinical urgency.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DraftAction is a recommendation as produced by the model provider,
// before evidence matching and confidence scoring.
type DraftAction struct {
	// Text is the free-text body of the recommendation.
	Text string `json:"text" yaml:"text"`

	// Category is one of medication, treatment, diagnostic, lifestyle, followup.
	Category Category `json:"category" yaml:"category"`

	// Severity is one of low, medium, high, critical.
	Severity Severity `json:"severity" yaml:"severity"`
}

// ActionItem is one structured clinical recommendation with evidence and
// confidence attached. Evidence always holds exactly three hits, highest
// similarity first; synthetic placeholder hits fill any shortfall.
type ActionItem struct {
	// ID is a UUID v4 assigned when evidence is matched.
	ID string `json:"id" yaml:"id"`

	// Text is the free-text body of the recommendation.
	Text string `json:"text" yaml:"text"`

	// Category is one of medication, treatment, diagnostic, lifestyle, followup.
	Category Category `json:"category" yaml:"category"`

	// Severity is one of low, medium, high, critical.
	Severity Severity `json:"severity" yaml:"severity"`

	// Confidence fuses retrieval strength with model certainty, in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// ReviewRequired flags the recommendation for human clinician sign-off.
	ReviewRequired bool `json:"clinician_review_required" yaml:"clinician_review_required"`

	// Evidence holds exactly three literature citations.
	Evidence []EvidenceHit `json:"evidence" yaml:"evidence"`
}

// MaxSimilarity returns the highest similarity across the item's evidence,
// or 0 when it has none.
func (a ActionItem) MaxSimilarity() float64 {
	var max float64
	for _, hit := range a.Evidence {
		if hit.Similarity > max {
			max = hit.Similarity
		}
	}
	return max
}

// SummaryResponse is the complete pipeline output for one clinical note.
// Confidence is the arithmetic mean of the action confidences, defaulting
// to 0.5 when there are no actions.
type SummaryResponse struct {
	// RequestID is the caller-supplied or generated UUID v4 for this request.
	RequestID string `json:"request_id" yaml:"request_id"`

	// Summary is the clinical summary text.
	Summary string `json:"summary" yaml:"summary"`

	// PatientSummary maps language codes to patient-facing translations.
	PatientSummary map[string]string `json:"patient_summary" yaml:"patient_summary"`

	// Actions are the scored recommendations, in model order.
	Actions []ActionItem `json:"actions" yaml:"actions"`

	// Sources are the three context evidence hits for the whole note.
	Sources []EvidenceHit `json:"sources" yaml:"sources"`

	// Confidence is the overall confidence in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// HallucinationAlert is true when too many actions are poorly grounded.
	HallucinationAlert bool `json:"hallucination_alert" yaml:"hallucination_alert"`

	// ProcessingTimeMs is the end-to-end pipeline latency in milliseconds.
	ProcessingTimeMs int64 `json:"processing_time_ms" yaml:"processing_time_ms"`
}

// AuditRecord is a tamper-evident, PHI-free attestation of one processed
// request. It never carries the raw note or raw caller identifier, only
// their SHA-256 digests.
type AuditRecord struct {
	// Timestamp is the record creation time in ISO 8601 UTC.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// RequestID is the request UUID v4.
	RequestID string `json:"request_id" yaml:"request_id"`

	// RequestHash is the SHA-256 hex digest of the raw clinical note.
	RequestHash string `json:"request_hash" yaml:"request_hash"`

	// ResponseHash is the SHA-256 hex digest of the canonical response JSON.
	ResponseHash string `json:"response_hash" yaml:"response_hash"`

	// ModelVersion identifies the model that produced the response.
	ModelVersion string `json:"model_version" yaml:"model_version"`

	// LatencyMs is the end-to-end processing time in milliseconds.
	LatencyMs int64 `json:"latency_ms" yaml:"latency_ms"`

	// SignedBy is the hex HMAC-SHA256 signature over the record's
	// identifying fields.
	SignedBy string `json:"signed_by" yaml:"signed_by"`

	// UserID is the SHA-256 digest of the caller identifier, empty when
	// the request was anonymous.
	UserID string `json:"user_id,omitempty" yaml:"user_id,omitempty"`

	// HallucinationAlert mirrors the grounding alert of the response.
	HallucinationAlert bool `json:"hallucination_alert" yaml:"hallucination_alert"`
}

// Document is one literature corpus entry indexed for retrieval.
type Document struct {
	// Title is the document title.
	Title string `json:"title" yaml:"title"`

	// PMCID is the corpus identifier.
	PMCID string `json:"pmcid" yaml:"pmcid"`

	// DOI is the document DOI.
	DOI string `json:"doi" yaml:"doi"`

	// Content is the indexable body text.
	Content string `json:"content" yaml:"content"`

	// Snippet is the excerpt surfaced on evidence hits. When empty,
	// the first 200 characters of Content are used.
	Snippet string `json:"snippet" yaml:"snippet"`
}
