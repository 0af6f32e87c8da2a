// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RetrievalConfig holds settings for the evidence index and retrieval service.
type RetrievalConfig struct {
	// IndexPath is the on-disk location of the similarity index. The
	// metadata sidecar lives next to it with a "-metadata.yaml" suffix.
	IndexPath string `json:"index_path" yaml:"index_path" mapstructure:"index_path"`

	// Dimension is the embedding vector length (default 1536).
	Dimension int `json:"dimension" yaml:"dimension" mapstructure:"dimension"`

	// TopK is the number of evidence hits per query (default 3).
	TopK int `json:"top_k" yaml:"top_k" mapstructure:"top_k"`
}

// ScoringConfig holds settings for the grounding guard. The confidence
// formula weights are fixed; only the environment-sensitive grounding
// threshold is configurable, since its correct value is coupled to
// embedding quality rather than to the guardrail logic.
type ScoringConfig struct {
	// SimilarityThreshold is the per-hit grounding threshold. Near zero
	// for the demo embedder; 0.5-0.75 once a real semantic model is used.
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold" mapstructure:"similarity_threshold"`

	// AlertRatio is the poorly-grounded fraction above which the
	// hallucination alert fires (default 0.30, strictly greater-than).
	AlertRatio float64 `json:"alert_ratio" yaml:"alert_ratio" mapstructure:"alert_ratio"`
}

// AuditMode selects the audit record store.
type AuditMode string

const (
	// AuditModeDemo writes one JSON file per request.
	AuditModeDemo AuditMode = "demo"

	// AuditModeSQLite writes to a durable SQLite store.
	AuditModeSQLite AuditMode = "sqlite"
)

// AuditConfig holds settings for the audit recorder.
type AuditConfig struct {
	// Mode selects the store backend: demo or sqlite.
	Mode AuditMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// Path is the record directory (demo mode) or database file (sqlite mode).
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// ModelVersion is recorded on every audit entry.
	ModelVersion string `json:"model_version" yaml:"model_version" mapstructure:"model_version"`
}

// ProviderMode selects the model provider implementation.
type ProviderMode string

const (
	// ProviderModeDemo uses the deterministic in-process provider.
	ProviderModeDemo ProviderMode = "demo"

	// ProviderModeHTTP calls an OpenAI-compatible HTTP endpoint.
	ProviderModeHTTP ProviderMode = "http"
)

// ProviderConfig holds settings for the external model provider.
type ProviderConfig struct {
	// Mode selects the provider: demo or http.
	Mode ProviderMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// BaseURL is the HTTP provider endpoint (e.g. "http://localhost:11434/v1").
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Model is the chat/summarization model identifier.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// EmbeddingModel is the embedding model identifier.
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model" mapstructure:"embedding_model"`

	// APIKey authenticates HTTP provider calls. Loaded from the secrets
	// directory when empty.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Timeout is the per-call HTTP timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the retry budget for failed provider calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// RateLimitConfig holds settings for the per-caller request limiter.
type RateLimitConfig struct {
	// Limit is the maximum number of requests per window (default 100).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`

	// Window is the limiting window (default 1h).
	Window time.Duration `json:"window" yaml:"window" mapstructure:"window"`
}

// LoggingConfig holds settings for structured logging.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Encoding selects the output format: console or json.
	Encoding string `json:"encoding" yaml:"encoding" mapstructure:"encoding"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval" mapstructure:"retrieval"`
	Scoring   ScoringConfig   `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Audit     AuditConfig     `json:"audit" yaml:"audit" mapstructure:"audit"`
	Provider  ProviderConfig  `json:"provider" yaml:"provider" mapstructure:"provider"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// DefaultPipelineConfig returns the configuration used when no config file
// overrides are present: demo provider, demo audit store, thresholds tuned
// for the deterministic embedder.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Retrieval: RetrievalConfig{
			IndexPath: "corpus/evidence.index",
			Dimension: 1536,
			TopK:      3,
		},
		Scoring: ScoringConfig{
			SimilarityThreshold: 0.01,
			AlertRatio:          0.30,
		},
		Audit: AuditConfig{
			Mode:         AuditModeDemo,
			Path:         "audit/records",
			ModelVersion: "demo-model-v1",
		},
		Provider: ProviderConfig{
			Mode:       ProviderModeDemo,
			Timeout:    30 * time.Second,
			MaxRetries: 3,
		},
		RateLimit: RateLimitConfig{
			Limit:  100,
			Window: time.Hour,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}
