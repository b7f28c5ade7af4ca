package domain

import "time"

type Direction string

const (
	DirectionReceived Direction = "received"
	DirectionSent     Direction = "sent"
)

// AuditEntry is one row of the append-only message audit trail.
// Sender is the chat display name on received entries.
type AuditEntry struct {
	ID        int64
	Direction Direction
	UpdateID  int64
	Sender    string
	Session   string
	Body      string
	CreatedAt time.Time
}
