package planner

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies planner failures
type ErrorKind string

const (
	KindTimeout         ErrorKind = "timeout"
	KindUnavailable     ErrorKind = "unavailable"
	KindRateLimited     ErrorKind = "rate_limited"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindUpstream        ErrorKind = "upstream"
	KindCanceled        ErrorKind = "canceled"
)

// Error is returned by every Planner operation that fails
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("planner %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("planner %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a planner error. A context deadline is always reported as
// a timeout and a canceled context as canceled.
func NewError(op string, kind ErrorKind, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindCanceled
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of a planner error, or KindUpstream for anything else
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindUpstream
}

// ErrNotConfigured is wrapped when no planner backend is available
var ErrNotConfigured = errors.New("planner is not configured")
