// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retry provides a reusable bounded-backoff policy for outbound
// provider calls.
package retry

import (
	"context"
	"time"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Policy describes a bounded exponential backoff schedule. The delay starts
// at BaseDelay and doubles after each failed attempt: with the defaults the
// schedule is 1s, 2s, 4s across three retries.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first
	// (default 4: one call plus three retries).
	MaxAttempts int

	// BaseDelay is the wait before the first retry (default 1s).
	BaseDelay time.Duration

	// Retryable decides whether an error is worth retrying. When nil,
	// provider errors are retried and input errors never are.
	Retryable func(error) bool
}

// DefaultPolicy mirrors the provider-call schedule: 1s, 2s, 4s, then fail.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 4, BaseDelay: time.Second}
}

func (p Policy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	if types.IsInputError(err) {
		return false
	}
	return true
}

// Do runs fn under the policy, sleeping between attempts. It returns nil on
// the first success, the last error once attempts are exhausted or the
// error is not retryable, and ctx.Err() if the context is cancelled during
// a backoff wait.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 4
	}
	delay := p.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxAttempts || !p.retryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
