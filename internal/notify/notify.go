// Package notify defines the confirmation dispatch boundary. Delivery is an
// external concern; the intake pipeline hands a confirmation off and never
// waits on or fails because of the outcome.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/maplegrovecc/communityhub/internal/model"
)

// Confirmation is the payload handed to the dispatcher after a successful
// registration. Listing fields are zero for general-interest registrations.
type Confirmation struct {
	RecipientEmail    string
	RecipientName     string
	ParticipationType model.ParticipationType
	ListingKind       model.ListingKind
	ListingTitle      string
	Location          string
	StartDate         *time.Time
}

// Dispatcher sends a registration confirmation. Send reports whether the
// hand-off succeeded; callers treat a false return as log-worthy, never as a
// pipeline failure.
type Dispatcher interface {
	Send(ctx context.Context, c Confirmation) bool
}

// LogDispatcher records confirmations to the log instead of delivering them.
// It stands in for the external mail service in development and tests.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher constructs a LogDispatcher.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Send logs the confirmation and always reports success.
func (d *LogDispatcher) Send(ctx context.Context, c Confirmation) bool {
	attrs := []any{
		"email", c.RecipientEmail,
		"name", c.RecipientName,
		"role", string(c.ParticipationType),
	}
	if c.ListingTitle != "" {
		attrs = append(attrs, "listing", c.ListingTitle, "kind", string(c.ListingKind))
	}
	d.logger.Info("confirmation dispatched", attrs...)
	return true
}
