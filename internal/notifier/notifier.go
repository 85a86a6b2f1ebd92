// Package notifier sends reservation messages to guests. Delivery is best
// effort and at most once: the lifecycle never waits on, retries, or rolls
// back because of a notification outcome. The reservation code itself is the
// durable recovery path when a message is lost.
package notifier

import (
	"context"

	"go.uber.org/zap"
)

type Kind string

const (
	KindPending   Kind = "pending"
	KindConfirmed Kind = "confirmed"
	KindExpired   Kind = "expired"
	KindUpdated   Kind = "updated"
	KindLookup    Kind = "lookup"
)

// Snapshot is the reservation state frozen at dispatch time.
type Snapshot struct {
	Code       string  `json:"code"`
	Date       string  `json:"date"`
	TimeSlot   string  `json:"time_slot"`
	GuestName  string  `json:"guest_name"`
	GuestCount int     `json:"guest_count"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email,omitempty"`
	TotalPrice int     `json:"total_price"`
	Link       string  `json:"link,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, kind Kind, snapshot Snapshot) error
}

// LogNotifier only logs the notification. Used in development and as the
// fallback when no delivery driver is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) Notify(ctx context.Context, kind Kind, snapshot Snapshot) error {
	n.log.Info("Notification",
		zap.String("kind", string(kind)),
		zap.String("code", snapshot.Code),
		zap.String("phone", snapshot.Phone),
		zap.String("date", snapshot.Date),
		zap.String("time_slot", snapshot.TimeSlot),
	)
	return nil
}
