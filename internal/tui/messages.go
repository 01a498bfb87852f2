package tui

import (
	"github.com/garrettladley/weightrack/internal/session"
	"github.com/garrettladley/weightrack/internal/tracker"
)

// SessionCheckedMsg carries the session found at startup.
type SessionCheckedMsg struct {
	Session *session.Session
	Err     error
}

// SessionChangedMsg is a provider notification bridged into the program.
type SessionChangedMsg struct {
	Event   session.Event
	Session *session.Session
}

type AuthResultMsg struct {
	User *session.User
	Err  error
}

type SignOutResultMsg struct {
	Err error
}

type TrackerLoadedMsg struct {
	State tracker.State
}

type SaveResultMsg struct {
	Result tracker.SaveResult
}

// listenersClosedMsg ends a listener loop whose channel was closed.
type listenersClosedMsg struct{}
