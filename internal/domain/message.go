package domain

import "strings"

// Update is one inbound unit from the Telegram Bot API. Updates are immutable
// once received and are consumed exactly once by the router.
type Update struct {
	ID   int64
	From string
	Text string
}

// ParsedMessage is the routing pair extracted from a reply of the form
// "session-name: payload". It is derived, never persisted.
type ParsedMessage struct {
	Destination string
	Payload     string
}

// Parse splits a raw message into a destination session name and a payload.
// The destination is everything before the first colon and must consist of
// letters, digits, underscores, and hyphens only. A single leading space
// after the colon is stripped; the payload keeps everything else, including
// newlines. Messages that do not match the grammar are not replies and
// return ok=false.
func Parse(text string) (ParsedMessage, bool) {
	sep := strings.IndexByte(text, ':')
	if sep <= 0 {
		return ParsedMessage{}, false
	}

	destination := text[:sep]
	if !validDestination(destination) {
		return ParsedMessage{}, false
	}

	payload := strings.TrimPrefix(text[sep+1:], " ")
	if payload == "" {
		return ParsedMessage{}, false
	}

	return ParsedMessage{Destination: destination, Payload: payload}, true
}

// validDestination reports whether name fits the tmux-compatible session
// charset. Whitespace and colons are excluded by construction.
func validDestination(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return len(name) > 0
}
