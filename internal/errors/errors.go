// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Failures crossing the session or API boundary are classified so callers can
// present the right message without string matching: bad credentials render
// inline, network failures get a generic retry hint, cancellations stay silent.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Credential indicates the backend rejected the supplied credentials.
	Credential Kind = "credential"
	// Network indicates the backend could not be reached at all.
	Network Kind = "network"
	// SessionInvalid indicates the stored session is expired or no longer honored.
	SessionInvalid Kind = "session_invalid"
	// Cancelled indicates the caller abandoned the request in flight.
	Cancelled Kind = "cancelled"
	// Unexpected covers everything that does not map to a known category.
	Unexpected Kind = "unexpected"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf reports the Kind attached to err, or Unexpected when none is.
// Context cancellation is detected even when the transport did not classify it.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	if IsCancelled(err) {
		return Cancelled
	}
	return Unexpected
}

// IsCancelled reports whether err stems from an abandoned context.
// Cancellation is a lifecycle event, never a user-visible failure.
func IsCancelled(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}
