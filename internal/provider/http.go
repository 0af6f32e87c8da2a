// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/evidence-engine/internal/retry"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// HTTP is a model provider backed by an OpenAI-compatible API (any hosted
// model gateway or a local inference server). Every call runs under the
// bounded-backoff retry policy and honors the request context deadline.
type HTTP struct {
	baseURL        string
	model          string
	embeddingModel string
	apiKey         string
	client         *http.Client
	policy         retry.Policy
}

// NewHTTP builds an HTTP provider from config. A zero timeout defaults
// to 30 seconds and a zero retry budget to three retries.
func NewHTTP(cfg types.ProviderConfig) *HTTP {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	policy := retry.DefaultPolicy()
	if cfg.MaxRetries > 0 {
		policy.MaxAttempts = cfg.MaxRetries + 1
	}
	return &HTTP{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		apiKey:         cfg.APIKey,
		client:         &http.Client{Timeout: timeout},
		policy:         policy,
	}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed requests an embedding vector for text.
func (p *HTTP) Embed(ctx context.Context, text string) ([]float32, error) {
	var out embeddingResponse
	err := p.policy.Do(ctx, func(ctx context.Context) error {
		return p.post(ctx, "/embeddings", embeddingRequest{
			Model: p.embeddingModel,
			Input: []string{text},
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, types.NewProviderError("embed", fmt.Errorf("no embeddings returned"))
	}
	return out.Data[0].Embedding, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const summarizePrompt = `You are a clinical AI assistant. Generate a concise clinical summary and action items.

Clinical Note:
%s

Evidence Context:
%s

Generate:
1. A clinical summary (3-8 sentences)
2. Structured action items with category, severity, and text

Format your response as JSON:
{
    "summary": "...",
    "actions": [
        {"text": "...", "category": "medication|treatment|diagnostic|lifestyle|followup", "severity": "low|medium|high|critical"}
    ],
    "model_score": 0.8
}`

// Summarize asks the chat model for a summary, draft actions, and a model
// certainty score. A response that is not valid JSON falls back to the raw
// text with no actions and a neutral score.
func (p *HTTP) Summarize(ctx context.Context, note, contextText string) (SummarizeResult, error) {
	text, err := p.chat(ctx, "summarize", fmt.Sprintf(summarizePrompt, note, contextText), 0.1)
	if err != nil {
		return SummarizeResult{}, err
	}

	var result SummarizeResult
	if jsonErr := json.Unmarshal([]byte(text), &result); jsonErr != nil {
		if len(text) > 500 {
			text = text[:500]
		}
		return SummarizeResult{Summary: text, ModelScore: 0.5}, nil
	}
	return result, nil
}

var languageNames = map[string]string{"hi": "Hindi", "ta": "Tamil"}

const translatePrompt = `Translate the following medical summary to %s at a 6th-grade reading level.

Use simple everyday words. Keep sentences short (15 words or fewer).

Provide ONLY the %s translation, no explanations.

English text:
%s`

// Translate renders text into the target language.
func (p *HTTP) Translate(ctx context.Context, text, lang string) (string, error) {
	name, ok := languageNames[lang]
	if !ok {
		return "", types.NewInputError("unsupported language %q", lang)
	}
	out, err := p.chat(ctx, "translate", fmt.Sprintf(translatePrompt, name, name, text), 0.3)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (p *HTTP) chat(ctx context.Context, op, prompt string, temperature float64) (string, error) {
	var out chatResponse
	err := p.policy.Do(ctx, func(ctx context.Context) error {
		return p.post(ctx, "/chat/completions", chatRequest{
			Model:       p.model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: temperature,
			MaxTokens:   1000,
		}, &out)
	})
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", types.NewProviderError(op, fmt.Errorf("no choices in response"))
	}
	return out.Choices[0].Message.Content, nil
}

// post sends one JSON request and decodes the JSON response. Failures are
// wrapped as ProviderError so the retry policy and the pipeline can tell
// them apart from input-validation errors.
func (p *HTTP) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return types.NewProviderError("encode", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return types.NewProviderError("request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return types.NewProviderError("request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.NewProviderError("request",
			fmt.Errorf("%s returned HTTP %d: %s", path, resp.StatusCode, string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return types.NewProviderError("decode", err)
	}
	return nil
}
