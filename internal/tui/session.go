package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/weightrack/internal/session"
	"github.com/garrettladley/weightrack/internal/tracker"
)

const sessionEventBuffer = 8

// WatchSession subscribes to provider changes and forwards them on the
// returned channel until stop is called or ctx is done. The channel bridges
// the provider's synchronous callbacks with bubbletea's message loop.
func WatchSession(ctx context.Context, p *session.Provider) (events <-chan SessionChangedMsg, stop func()) {
	ch := make(chan SessionChangedMsg, sessionEventBuffer)
	unsubscribe := p.OnChange(func(e session.Event, s *session.Session) {
		select {
		case ch <- SessionChangedMsg{Event: e, Session: s}:
		case <-ctx.Done():
		}
	})
	return ch, unsubscribe
}

// ListenSessionCmd waits for the next session change. It must be re-issued
// after each message to keep listening.
func ListenSessionCmd(ctx context.Context, events <-chan SessionChangedMsg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return listenersClosedMsg{}
			}
			return msg
		case <-ctx.Done():
			return listenersClosedMsg{}
		}
	}
}

// ListenSavesCmd waits for the next autosave result. It must be re-issued
// after each message to keep listening.
func ListenSavesCmd(ctx context.Context, a *tracker.Autosaver) tea.Cmd {
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case r, ok := <-a.Results():
			if !ok {
				return listenersClosedMsg{}
			}
			return SaveResultMsg{Result: r}
		case <-ctx.Done():
			return listenersClosedMsg{}
		}
	}
}
