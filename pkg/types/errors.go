// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// InputError reports malformed arguments to a pure function, such as an
// evidence list that does not hold exactly three hits or a model score
// outside [0,1]. It is always fatal to the call and never retried.
type InputError struct {
	// Reason describes the violated precondition.
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// NewInputError builds an InputError with a formatted reason.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is or wraps an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// ProviderError reports a failure of an external provider call (embedding,
// summarization, translation, or index backend). Provider errors are
// retried with bounded backoff at the call site before surfacing as a
// pipeline-level failure.
type ProviderError struct {
	// Op names the provider operation that failed (e.g. "embed", "translate").
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps err as a ProviderError for the named operation.
func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}

// IsProviderError reports whether err is or wraps a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// PersistenceError reports an audit store write failure. It is surfaced to
// operators but does not fail the user-facing response.
type PersistenceError struct {
	// Op names the store operation that failed (e.g. "put", "open").
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("audit persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError wraps err as a PersistenceError for the named operation.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistenceError reports whether err is or wraps a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
