package commands

import (
	"fmt"

	"marketplace/internal/core/ports"
)

// successNotification builds the toast event for a completed transition.
func successNotification(title string, message string) ports.Notification {
	return ports.Notification{
		Kind:    ports.NotificationSuccess,
		Title:   title,
		Message: message,
	}
}

// failureNotification builds the toast event for a failed transition.
// Partial failures are surfaced as warnings: the order is in a mixed state
// the caller should re-fetch, not a clean rejection.
func failureNotification(title string, err *WorkflowError) ports.Notification {
	kind := ports.NotificationError
	if err.Kind() == KindPartialFailure {
		kind = ports.NotificationWarning
	}
	return ports.Notification{
		Kind:    kind,
		Title:   title,
		Message: fmt.Sprintf("%s: %s", err.Kind(), err.Message()),
	}
}
