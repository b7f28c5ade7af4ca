package ports

import (
	"context"

	"github.com/bnema/telemux/internal/domain"
)

// UpdateSource yields batches of inbound chat messages newer than afterID.
type UpdateSource interface {
	Updates(ctx context.Context, afterID int64) ([]domain.Update, error)
}

// Notifier delivers a text reply back to the configured chat.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
