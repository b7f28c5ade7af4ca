package ports

import "context"

// SessionRegistry reports the live multiplexer sessions.
// An empty slice with a nil error means no sessions are running;
// a non-nil error means the registry itself could not be queried.
type SessionRegistry interface {
	Sessions(ctx context.Context) ([]string, error)
}

// Injector types text into a named session as literal keystrokes,
// followed by a separate submit keystroke.
type Injector interface {
	Inject(ctx context.Context, session, text string) error
}
