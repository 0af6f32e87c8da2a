// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit provides a fixed-window in-memory request limiter
// keyed by caller. State lives in the process; a multi-instance
// deployment would need a shared store behind the same interface.
package ratelimit

import (
	"sync"
	"time"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

type window struct {
	start time.Time
	count int
}

// Limiter admits at most Limit requests per caller per Window. The
// window is fixed, not sliding: the counter resets when the window
// elapses.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	callers map[string]*window
	now     func() time.Time
}

// New builds a limiter from config, defaulting to 100 requests per hour.
func New(cfg types.RateLimitConfig) *Limiter {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 100
	}
	win := cfg.Window
	if win <= 0 {
		win = time.Hour
	}
	return &Limiter{
		limit:   limit,
		window:  win,
		callers: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow reports whether the caller may proceed and counts the request
// when it may. Distinct callers never affect each other's budget.
func (l *Limiter) Allow(callerID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.callers[callerID]
	if !ok || now.Sub(w.start) >= l.window {
		l.callers[callerID] = &window{start: now, count: 1}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining returns the caller's unused budget in the current window.
func (l *Limiter) Remaining(callerID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.callers[callerID]
	if !ok || l.now().Sub(w.start) >= l.window {
		return l.limit
	}
	if w.count >= l.limit {
		return 0
	}
	return l.limit - w.count
}
