package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrorKind classifies a workflow failure for the caller. The set is closed:
// every failure path of every transition maps onto exactly one kind.
type ErrorKind int

const (
	// KindUnknown represents an unclassified failure. It never leaves the
	// package; classify always resolves a concrete kind.
	KindUnknown ErrorKind = iota

	// KindUnauthenticated means the acting participant has no valid session.
	KindUnauthenticated

	// KindForbidden means the actor's role is not permitted for the transition.
	KindForbidden

	// KindInvalidTransition means the state machine guard failed.
	KindInvalidTransition

	// KindRemoteUnavailable means a network or remote failure on a step.
	KindRemoteUnavailable

	// KindPartialFailure means some but not all steps of a multi-step
	// transition succeeded; the applied/failed step names are attached.
	KindPartialFailure

	// KindInvalidAmount means a value failed validation: a withdrawal amount
	// outside (0, balance] or a rating outside the half-star range.
	KindInvalidAmount

	// KindAlreadyRated means the order has already been rated by the customer.
	KindAlreadyRated

	// KindNotFound means the order or participant is not known locally or
	// remotely.
	KindNotFound

	// KindConflict means the remote state rejected the mutation, or another
	// transition for the same order is already in flight.
	KindConflict
)

// getErrorKindStrings returns a map of kinds to their names.
func getErrorKindStrings() map[ErrorKind]string {
	return map[ErrorKind]string{
		KindUnknown:           "Unknown",
		KindUnauthenticated:   "Unauthenticated",
		KindForbidden:         "Forbidden",
		KindInvalidTransition: "InvalidTransition",
		KindRemoteUnavailable: "RemoteUnavailable",
		KindPartialFailure:    "PartialFailure",
		KindInvalidAmount:     "InvalidAmount",
		KindAlreadyRated:      "AlreadyRated",
		KindNotFound:          "NotFound",
		KindConflict:          "Conflict",
	}
}

// String returns the name of the kind, or "Unknown" for invalid values.
func (k ErrorKind) String() string {
	if str, ok := getErrorKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// WorkflowError is the single error type surfaced by transition handlers.
// It carries the failure kind and, for partial failures, the names of the
// steps that were applied and the steps that failed, so the caller can
// reconcile by re-fetching the order.
type WorkflowError struct {
	kind    ErrorKind
	message string
	applied []string
	failed  []string
	cause   error
}

// NewWorkflowError creates a workflow error of the given kind wrapping the
// underlying cause. The cause may be nil.
func NewWorkflowError(kind ErrorKind, message string, cause error) *WorkflowError {
	return &WorkflowError{
		kind:    kind,
		message: message,
		cause:   cause,
	}
}

// NewPartialFailureError creates a PartialFailure error carrying the step
// names that committed and the step names that did not.
func NewPartialFailureError(applied []string, failed []string, cause error) *WorkflowError {
	return &WorkflowError{
		kind:    KindPartialFailure,
		message: fmt.Sprintf("applied steps [%s], failed steps [%s]", strings.Join(applied, ", "), strings.Join(failed, ", ")),
		applied: applied,
		failed:  failed,
		cause:   cause,
	}
}

// Error implements the error interface.
func (e *WorkflowError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Kind returns the failure classification.
func (e *WorkflowError) Kind() ErrorKind {
	return e.kind
}

// Message returns the human-readable failure description.
func (e *WorkflowError) Message() string {
	return e.message
}

// AppliedSteps returns the names of steps that committed remotely before the
// failure. Empty unless Kind is PartialFailure.
func (e *WorkflowError) AppliedSteps() []string {
	return e.applied
}

// FailedSteps returns the names of steps that failed or were never attempted.
// Empty unless Kind is PartialFailure.
func (e *WorkflowError) FailedSteps() []string {
	return e.failed
}

// Unwrap returns the underlying cause.
func (e *WorkflowError) Unwrap() error {
	return e.cause
}

// classify maps a domain or gateway error onto a workflow error kind.
//
// Domain guard failures come from the order/ledger/rating aggregates; remote
// failures come from the ports.ErrRemote* sentinels that gateway
// implementations produce.
func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return KindUnauthenticated
	case errors.Is(err, order.ErrActorNotPermitted):
		return KindForbidden
	case errors.Is(err, order.ErrOrderAlreadyRated):
		return KindAlreadyRated
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrResponderNotRegistered):
		return KindInvalidTransition
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return KindInvalidAmount
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, ports.ErrRemoteNotFound):
		return KindNotFound
	case errors.Is(err, ports.ErrRemoteUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ports.ErrRemoteForbidden):
		return KindForbidden
	case errors.Is(err, ports.ErrRemoteConflict):
		return KindConflict
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindRemoteUnavailable
	default:
		return KindRemoteUnavailable
	}
}

// asWorkflowError returns err unchanged when it already is a WorkflowError,
// otherwise wraps it with the classified kind.
func asWorkflowError(err error) *WorkflowError {
	var workflowErr *WorkflowError
	if errors.As(err, &workflowErr) {
		return workflowErr
	}
	return NewWorkflowError(classify(err), err.Error(), err)
}
