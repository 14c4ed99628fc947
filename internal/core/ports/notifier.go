package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// NotificationKind classifies a user-facing notification event.
type NotificationKind string

const (
	// NotificationSuccess reports a completed workflow transition.
	NotificationSuccess NotificationKind = "success"

	// NotificationWarning reports a degraded outcome, e.g. a best-effort
	// cancellation that only partially applied.
	NotificationWarning NotificationKind = "warning"

	// NotificationError reports a failed workflow transition.
	NotificationError NotificationKind = "error"
)

// Notification is the toast payload consumed by the external notification
// collaborator. This core never renders anything.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

// Notifier publishes workflow side effects for external collaborators.
// Publishing is fire-and-forget: implementations log delivery failures
// instead of propagating them into the workflow result.
type Notifier interface {
	// Notify emits a toast notification event.
	Notify(ctx context.Context, notification Notification)

	// PublishOrderSnapshot emits the order snapshot produced by a
	// successful transition.
	PublishOrderSnapshot(ctx context.Context, snapshot order.Snapshot)
}
