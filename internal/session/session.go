package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// NewID returns a sortable, human-readable session identifier:
// <yyyymmdd-hhmmss>-<6 hex chars>.
func NewID() string {
	return newIDAt(time.Now())
}

func newIDAt(now time.Time) string {
	timestamp := now.UTC().Format("20060102-150405")
	randomBytes := make([]byte, 3)
	if _, err := rand.Read(randomBytes); err != nil {
		return timestamp + "-" + now.Format("000000")
	}
	return timestamp + "-" + hex.EncodeToString(randomBytes)
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type Event int

const (
	EventSignedIn Event = iota + 1
	EventSignedUp
	EventSignedOut
)

func (e Event) String() string {
	switch e {
	case EventSignedIn:
		return "signed_in"
	case EventSignedUp:
		return "signed_up"
	case EventSignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

// Listener is called after every session change. s is nil after sign-out.
type Listener func(e Event, s *Session)
