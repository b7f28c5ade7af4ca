// Package application wires the chat, multiplexer, and state ports
// into the bridge's routing behavior.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bnema/telemux/internal/domain"
	"github.com/bnema/telemux/internal/ports"
)

// injectionPrefix marks injected text so the human at the terminal can
// tell remote replies apart from their own typing.
const injectionPrefix = "[FROM USER via Telegram] "

// Router resolves a single inbound message to a delivery outcome.
type Router struct {
	registry ports.SessionRegistry
	injector ports.Injector
	logger   *slog.Logger
}

func NewRouter(registry ports.SessionRegistry, injector ports.Injector, logger *slog.Logger) *Router {
	return &Router{registry: registry, injector: injector, logger: logger}
}

// Route parses text, verifies the destination session is live, and
// injects the payload. Unparseable messages are skipped silently.
func (r *Router) Route(ctx context.Context, text string) domain.DeliveryOutcome {
	msg, ok := domain.Parse(text)
	if !ok {
		r.logger.Debug("skipping message without routable destination")
		return domain.ParseSkipped()
	}

	sessions, err := r.registry.Sessions(ctx)
	if err != nil {
		r.logger.Error("session registry query failed", "error", err)
		return domain.Failed(msg.Destination, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err))
	}
	if len(sessions) == 0 {
		return domain.NoSessionsRunning()
	}
	if !slices.Contains(sessions, msg.Destination) {
		slices.Sort(sessions)
		return domain.NotFound(msg.Destination, sessions)
	}

	if err := r.injector.Inject(ctx, msg.Destination, injectionPrefix+msg.Payload); err != nil {
		r.logger.Error("keystroke injection failed", "session", msg.Destination, "error", err)
		return domain.Failed(msg.Destination, err)
	}

	r.logger.Info("message delivered", "session", msg.Destination)
	return domain.Delivered(msg.Destination)
}
