// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit produces and persists PHI-free, tamper-evident records of
// processed requests. Only SHA-256 digests of the raw note and caller
// identifier ever reach a persisted field.
package audit

import (
	"context"
	"crypto/hmac"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Store persists audit records keyed by request identifier. Writes are
// all-or-nothing: a failed Put must not leave a partial record behind.
type Store interface {
	Put(ctx context.Context, record types.AuditRecord) error
	Get(ctx context.Context, requestID string) (types.AuditRecord, error)
	List(ctx context.Context) ([]types.AuditRecord, error)
}

// Recorder builds signed audit records and writes them to a store.
type Recorder struct {
	store        Store
	signingKey   []byte
	modelVersion string
	logger       *zap.Logger
	now          func() time.Time
}

// NewRecorder builds a recorder. An empty signing key falls back to the
// demo placeholder; production callers load the key from the secrets
// directory and the key itself is never logged.
func NewRecorder(store Store, signingKey []byte, modelVersion string, logger *zap.Logger) *Recorder {
	if len(signingKey) == 0 {
		signingKey = DemoSigningKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		store:        store,
		signingKey:   signingKey,
		modelVersion: modelVersion,
		logger:       logger,
		now:          time.Now,
	}
}

// Record builds, signs, and persists the audit record for one completed
// request. The raw note and raw caller id are hashed immediately and never
// retained. The record is returned even when persistence fails; in that
// case the error is a PersistenceError the caller may treat as non-fatal.
func (r *Recorder) Record(ctx context.Context, requestID, rawNote string, response types.SummaryResponse, latencyMs int64, callerID string, groundingAlert bool) (types.AuditRecord, error) {
	timestamp := r.now().UTC().Format(time.RFC3339Nano)

	requestHash := HashText(rawNote)
	responseHash, err := HashCanonical(response)
	if err != nil {
		return types.AuditRecord{}, types.NewPersistenceError("hash", err)
	}

	record := types.AuditRecord{
		Timestamp:          timestamp,
		RequestID:          requestID,
		RequestHash:        requestHash,
		ResponseHash:       responseHash,
		ModelVersion:       r.modelVersion,
		LatencyMs:          latencyMs,
		SignedBy:           Sign(r.signingKey, requestID, requestHash, responseHash, timestamp),
		HallucinationAlert: groundingAlert,
	}
	if callerID != "" {
		record.UserID = HashText(callerID)
	}

	if err := r.store.Put(ctx, record); err != nil {
		r.logger.Warn("audit record persistence failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return record, err
	}

	r.logger.Info("audit record written",
		zap.String("request_id", requestID),
		zap.Bool("hallucination_alert", groundingAlert),
	)
	return record, nil
}

// Verify recomputes the record's signature and reports whether it matches,
// using a constant-time comparison.
func (r *Recorder) Verify(record types.AuditRecord) bool {
	want := Sign(r.signingKey, record.RequestID, record.RequestHash, record.ResponseHash, record.Timestamp)
	return hmac.Equal([]byte(want), []byte(record.SignedBy))
}
