// Package natsnotifier publishes workflow notifications and order snapshots
// to NATS Streaming. Publishing is fire-and-forget: a broker outage must
// never fail a transition that already committed.
package natsnotifier

import (
	"context"
	"encoding/json"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	stan "github.com/nats-io/stan.go"
)

// publisher is the slice of stan.Conn the notifier needs.
type publisher interface {
	Publish(subject string, data []byte) error
}

var _ publisher = (stan.Conn)(nil)

// Notifier publishes to two subjects: human-facing notifications and full
// order snapshots for downstream consumers.
type Notifier struct {
	conn                 publisher
	notificationsSubject string
	snapshotsSubject     string
	logger               *slog.Logger
}

// NewNotifier creates a notifier over an established streaming connection.
func NewNotifier(conn publisher, notificationsSubject string, snapshotsSubject string, logger *slog.Logger) (*Notifier, error) {
	if conn == nil {
		return nil, errs.NewValueIsRequiredError("conn")
	}
	if notificationsSubject == "" {
		return nil, errs.NewValueIsRequiredError("notificationsSubject")
	}
	if snapshotsSubject == "" {
		return nil, errs.NewValueIsRequiredError("snapshotsSubject")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Notifier{
		conn:                 conn,
		notificationsSubject: notificationsSubject,
		snapshotsSubject:     snapshotsSubject,
		logger:               logger.With("component", "nats_notifier"),
	}, nil
}

// Notify publishes a notification. Failures are logged and swallowed.
func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) {
	n.publish(ctx, n.notificationsSubject, notification)
}

// PublishOrderSnapshot publishes the full state of an order after a
// successful transition. Failures are logged and swallowed.
func (n *Notifier) PublishOrderSnapshot(ctx context.Context, snapshot order.Snapshot) {
	n.publish(ctx, n.snapshotsSubject, snapshot)
}

func (n *Notifier) publish(ctx context.Context, subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.ErrorContext(ctx, "marshal payload", "subject", subject, "error", err)
		return
	}
	if err := n.conn.Publish(subject, data); err != nil {
		n.logger.ErrorContext(ctx, "publish failed", "subject", subject, "error", err)
	}
}
