package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a marketplace order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Open ──> InProgress ──> Completed
//	  ^          │
//	  └──────────┘
//	   (cancel path)
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status when an order is first published.
	// Orders in this status are waiting for responders.
	Open

	// InProgress indicates an executor has been accepted and is working
	// on the order.
	InProgress

	// Completed indicates the order has been finished and the executor
	// credited. This is terminal except for rating, which does not change
	// the status.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Open:       "Open",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:       "Open",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// StatusFromString parses the string representation produced by String.
// Used when reconstructing orders from remote snapshots.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Open, InProgress, Completed.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., the remote order API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Returns "Open", "InProgress", or "Completed" for valid statuses and
// "Unknown" for invalid status values. Implements fmt.Stringer and is safe
// to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCanHaveExecutor validates the consistency between order status and
// executor assignment.
//
// Business rules:
//   - Open orders must not have an executor assigned
//   - InProgress orders must have an executor assigned
//   - Completed orders must have an executor assigned
//
// Parameters:
//   - executor: whether the order has an executor assigned
//
// Returns:
//   - error: validation error if status and executor assignment are inconsistent
func (s Status) ValidateCanHaveExecutor(executor bool) error {
	if executor && s != InProgress && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an executor", s.String()),
		)
	}

	if !executor && (s == InProgress || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no executor", s.String()),
		)
	}

	return nil
}
