// Package status renders a point-in-time view of the bridge for the
// status command.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/telemux/internal/domain"
)

// Snapshot is everything the status view shows.
type Snapshot struct {
	Configured   bool
	StatePath    string
	LastUpdateID int64
	Sessions     []string
	Recent       []domain.AuditEntry
}

type RenderOptions struct {
	Now time.Time
}

func Render(snap Snapshot, opts RenderOptions) string {
	return renderView(snap, opts, newStyles())
}

func renderView(snap Snapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("telemux bridge status"),
		s.header.Render("state: " + snap.StatePath),
	}

	lines = append(lines,
		keyValue(s, "telegram", credentialLabel(snap.Configured, s)),
		keyValue(s, "last update", fmt.Sprintf("%d", snap.LastUpdateID)),
	)

	lines = append(lines, s.section.Render(renderSessions(snap.Sessions, s)))
	lines = append(lines, s.section.Render(renderRecent(snap.Recent, opts.Now, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func keyValue(s styles, key, value string) string {
	return s.key.Render(key+": ") + value
}

func credentialLabel(configured bool, s styles) string {
	if configured {
		return s.ok.Render("configured")
	}
	return s.warning.Render("not configured")
}

func renderSessions(sessions []string, s styles) string {
	if len(sessions) == 0 {
		return s.empty.Render("no tmux sessions running")
	}
	parts := []string{s.key.Render(fmt.Sprintf("sessions (%d):", len(sessions)))}
	for _, name := range sessions {
		parts = append(parts, s.value.Render("  "+name))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderRecent(entries []domain.AuditEntry, now time.Time, s styles) string {
	if len(entries) == 0 {
		return s.empty.Render("no message traffic recorded")
	}

	parts := []string{s.key.Render("recent traffic:")}
	for _, e := range entries {
		parts = append(parts, "  "+recentLine(e, now, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func recentLine(e domain.AuditEntry, now time.Time, s styles) string {
	marker := s.outbnd.Render("->")
	if e.Direction == domain.DirectionReceived {
		marker = s.inbound.Render("<-")
	}

	body := e.Body
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		body = body[:idx] + "..."
	}
	if len(body) > 72 {
		body = body[:69] + "..."
	}

	line := marker + " " + s.value.Render(body)
	if !e.CreatedAt.IsZero() && !now.IsZero() {
		line += " " + s.stamp.Render("("+formatAge(now.Sub(e.CreatedAt))+")")
	}
	return line
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
