package tmux

import (
	"context"
	"strings"
)

// Registry lists live tmux sessions.
type Registry struct {
	run runner
}

func NewRegistry() *Registry {
	return &Registry{run: run}
}

// Sessions returns the names of all running sessions. A stopped tmux
// server yields an empty slice, not an error.
func (r *Registry) Sessions(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		if serverDown(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			sessions = append(sessions, name)
		}
	}
	return sessions, nil
}
