package domain

import (
	"fmt"
	"strings"
)

type OutcomeKind string

const (
	OutcomeDelivered    OutcomeKind = "delivered"
	OutcomeNotFound     OutcomeKind = "not_found"
	OutcomeNoSessions   OutcomeKind = "no_sessions"
	OutcomeParseSkipped OutcomeKind = "parse_skipped"
	OutcomeFailed       OutcomeKind = "failed"
)

// DeliveryOutcome is the result of routing a single update. Each outcome
// maps to at most one confirmation message sent back to the chat.
type DeliveryOutcome struct {
	Kind        OutcomeKind
	Destination string
	// Sessions holds the live session names at decision time, sorted.
	// Populated for OutcomeNotFound only.
	Sessions []string
	Err      error
}

func Delivered(destination string) DeliveryOutcome {
	return DeliveryOutcome{Kind: OutcomeDelivered, Destination: destination}
}

func NotFound(destination string, sessions []string) DeliveryOutcome {
	return DeliveryOutcome{Kind: OutcomeNotFound, Destination: destination, Sessions: sessions}
}

func NoSessionsRunning() DeliveryOutcome {
	return DeliveryOutcome{Kind: OutcomeNoSessions}
}

func ParseSkipped() DeliveryOutcome {
	return DeliveryOutcome{Kind: OutcomeParseSkipped}
}

func Failed(destination string, err error) DeliveryOutcome {
	return DeliveryOutcome{Kind: OutcomeFailed, Destination: destination, Err: err}
}

// Confirmation renders the outbound message for this outcome. ParseSkipped
// produces no message: most inbound chat traffic is not a reply at all.
func (o DeliveryOutcome) Confirmation() (string, bool) {
	switch o.Kind {
	case OutcomeDelivered:
		return "[+] Message delivered to " + o.Destination, true
	case OutcomeNotFound:
		list := "none"
		if len(o.Sessions) > 0 {
			list = strings.Join(o.Sessions, ", ")
		}
		return fmt.Sprintf("[-] Session %s not found\n\nActive sessions: %s", o.Destination, list), true
	case OutcomeNoSessions:
		return "[-] No tmux sessions are running", true
	case OutcomeFailed:
		diagnostic := "delivery failed"
		if o.Err != nil {
			diagnostic = o.Err.Error()
		}
		return "[-] Error: " + diagnostic, true
	default:
		return "", false
	}
}
