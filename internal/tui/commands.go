package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/weightrack/internal/session"
	"github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/tui/page/splash"
)

const loadTimeout = 5 * time.Second

func splashTickCmd() tea.Cmd {
	return tea.Tick(splash.Duration, func(time.Time) tea.Msg {
		return splash.TickMsg{}
	})
}

func checkSessionCmd(ctx context.Context, p *session.Provider) tea.Cmd {
	return func() tea.Msg {
		s, err := p.GetSession(ctx)
		return SessionCheckedMsg{Session: s, Err: err}
	}
}

// loadTrackerCmd always yields a state; store failures fall back to the
// default inside Load.
func loadTrackerCmd(ctx context.Context, store *tracker.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		return TrackerLoadedMsg{State: store.Load(ctx)}
	}
}

func signInCmd(ctx context.Context, p *session.Provider, email string, password string) tea.Cmd {
	return func() tea.Msg {
		u, err := p.SignIn(ctx, email, password)
		return AuthResultMsg{User: u, Err: err}
	}
}

func signUpCmd(ctx context.Context, p *session.Provider, email string, password string, name string) tea.Cmd {
	return func() tea.Msg {
		u, err := p.SignUp(ctx, email, password, name)
		return AuthResultMsg{User: u, Err: err}
	}
}

func signOutCmd(ctx context.Context, p *session.Provider) tea.Cmd {
	return func() tea.Msg {
		return SignOutResultMsg{Err: p.SignOut(ctx)}
	}
}
