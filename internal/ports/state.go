package ports

import (
	"context"

	"github.com/bnema/telemux/internal/domain"
)

// CursorStore persists the highest fully-routed update ID.
type CursorStore interface {
	Load(ctx context.Context) (int64, error)
	Save(ctx context.Context, updateID int64) error
}

// AuditLog records message traffic in both directions.
type AuditLog interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
	Close() error
}
