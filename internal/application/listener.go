package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bnema/telemux/internal/domain"
	"github.com/bnema/telemux/internal/ports"
)

// Listener runs the long-poll loop: fetch a batch, route each message
// in order, confirm back to the chat, then advance the cursor.
type Listener struct {
	source ports.UpdateSource
	chat   ports.Notifier
	router *Router
	cursor ports.CursorStore
	audit  ports.AuditLog
	logger *slog.Logger
}

func NewListener(
	source ports.UpdateSource,
	chat ports.Notifier,
	router *Router,
	cursor ports.CursorStore,
	audit ports.AuditLog,
	logger *slog.Logger,
) *Listener {
	return &Listener{
		source: source,
		chat:   chat,
		router: router,
		cursor: cursor,
		audit:  audit,
		logger: logger,
	}
}

// Run polls until ctx is canceled. Poll failures are logged and the
// loop continues; only a failure to load the initial cursor is fatal.
func (l *Listener) Run(ctx context.Context) error {
	cursor, err := l.cursor.Load(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("listening for replies", "after_update_id", cursor)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		updates, err := l.source.Updates(ctx, cursor)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			l.logger.Warn("polling failed, will retry", "error", err)
			continue
		}
		if len(updates) == 0 {
			continue
		}

		cursor = l.processBatch(ctx, updates, cursor)

		if err := l.cursor.Save(ctx, cursor); err != nil {
			l.logger.Error("saving cursor failed", "update_id", cursor, "error", err)
		}
	}
}

// processBatch routes every update in arrival order and returns the
// new cursor position. Messages are redelivered if the process dies
// before the batch cursor is persisted.
func (l *Listener) processBatch(ctx context.Context, updates []domain.Update, cursor int64) int64 {
	for _, upd := range updates {
		if upd.ID > cursor {
			cursor = upd.ID
		}
		if upd.Text == "" {
			continue
		}

		l.logger.Info("message received", "update_id", upd.ID, "from", upd.From)
		l.recordAudit(ctx, domain.AuditEntry{
			Direction: domain.DirectionReceived,
			UpdateID:  upd.ID,
			Sender:    upd.From,
			Body:      upd.Text,
		})

		outcome := l.router.Route(ctx, upd.Text)
		reply, ok := outcome.Confirmation()
		if !ok {
			continue
		}

		if err := l.chat.Notify(ctx, reply); err != nil {
			l.logger.Error("sending confirmation failed", "error", err)
			continue
		}
		l.recordAudit(ctx, domain.AuditEntry{
			Direction: domain.DirectionSent,
			UpdateID:  upd.ID,
			Session:   outcome.Destination,
			Body:      reply,
		})
	}
	return cursor
}

func (l *Listener) recordAudit(ctx context.Context, entry domain.AuditEntry) {
	if l.audit == nil {
		return
	}
	if err := l.audit.Record(ctx, entry); err != nil {
		l.logger.Warn("audit write failed", "error", err)
	}
}
