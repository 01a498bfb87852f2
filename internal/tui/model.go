package tui

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/weightrack/internal/session"
	"github.com/garrettladley/weightrack/internal/tui/page/login"
	"github.com/garrettladley/weightrack/internal/tui/page/signup"
	"github.com/garrettladley/weightrack/internal/tui/page/splash"
	trackerpage "github.com/garrettladley/weightrack/internal/tui/page/tracker"
	"github.com/garrettladley/weightrack/internal/tui/theme"
	"github.com/garrettladley/weightrack/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	loginPage
	signupPage
	trackerPage
)

func (p page) String() string {
	switch p {
	case splashPage:
		return "splash"
	case loginPage:
		return "login"
	case signupPage:
		return "signup"
	case trackerPage:
		return "tracker"
	default:
		return "unknown"
	}
}

type state struct {
	splash  splash.State
	login   login.State
	signup  signup.State
	tracker trackerpage.State
}

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          state
	deps           Deps
	session        *session.Session
}

func New(deps Deps) Model {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
		state: state{
			login:   login.New(),
			signup:  signup.New(),
			tracker: trackerpage.New(),
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		splashTickCmd(),
		checkSessionCmd(m.deps.Ctx, m.deps.Session),
		ListenSessionCmd(m.deps.Ctx, m.deps.SessionEvents),
		ListenSavesCmd(m.deps.Ctx, m.deps.Autosaver),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, m.handleKey(msg)

	case splash.TickMsg:
		m.state.splash.Elapsed = true
		return m, m.leaveSplash()

	case SessionCheckedMsg:
		if msg.Err != nil {
			m.deps.Logger.WarnContext(m.deps.Ctx, "session check failed", xslog.Error(msg.Err))
		}
		m.session = msg.Session
		m.state.splash.Checked = true
		return m, m.leaveSplash()

	case SessionChangedMsg:
		return m, tea.Batch(
			m.handleSessionChange(msg),
			ListenSessionCmd(m.deps.Ctx, m.deps.SessionEvents),
		)

	case AuthResultMsg:
		if msg.Err == nil {
			return m, nil
		}
		m.deps.Logger.InfoContext(m.deps.Ctx, "authentication failed", xslog.Error(msg.Err))
		switch m.page {
		case loginPage:
			m.state.login = m.state.login.Failed(session.Message(msg.Err, "Sign in failed"))
		case signupPage:
			m.state.signup = m.state.signup.Failed(session.Message(msg.Err, "Sign up failed"))
		}
		return m, nil

	case SignOutResultMsg:
		if msg.Err != nil {
			m.deps.Logger.WarnContext(m.deps.Ctx, "sign out failed", xslog.Error(msg.Err))
			m.state.tracker = m.state.tracker.Failed(session.Message(msg.Err, "Sign out failed"))
		}
		return m, nil

	case TrackerLoadedMsg:
		m.state.tracker = m.state.tracker.WithLoaded(msg.State, m.deps.Now())
		m.deps.Logger.DebugContext(m.deps.Ctx, "tracker loaded", xslog.WeekCount(len(msg.State.Weeks)))
		return m, nil

	case SaveResultMsg:
		m.state.tracker = m.state.tracker.SaveFinished(msg.Result.Err)
		return m, ListenSavesCmd(m.deps.Ctx, m.deps.Autosaver)
	}

	return m, nil
}

// leaveSplash navigates once the splash has shown long enough and the
// session lookup has finished.
func (m *Model) leaveSplash() tea.Cmd {
	if m.page != splashPage || !m.state.splash.Done() {
		return nil
	}
	if m.session != nil {
		return m.enterTracker()
	}
	m.page = loginPage
	return nil
}

func (m *Model) enterTracker() tea.Cmd {
	m.page = trackerPage
	m.state.tracker = trackerpage.New()
	if m.session != nil {
		m.state.tracker.Indicator.Email = m.session.User.Email
	}
	return loadTrackerCmd(m.deps.Ctx, m.deps.Store)
}

func (m *Model) handleSessionChange(msg SessionChangedMsg) tea.Cmd {
	m.session = msg.Session
	m.deps.Logger.DebugContext(m.deps.Ctx, "session changed",
		slog.String("event", msg.Event.String()),
		slog.String("page", m.page.String()),
	)

	switch msg.Event {
	case session.EventSignedIn, session.EventSignedUp:
		m.state.login = login.New()
		m.state.signup = signup.New()
		if m.page == splashPage {
			m.state.splash.Checked = true
			return m.leaveSplash()
		}
		return m.enterTracker()
	case session.EventSignedOut:
		m.state.tracker = trackerpage.New()
		if m.page != splashPage {
			m.page = loginPage
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	ctx := m.deps.Ctx

	switch m.page {
	case splashPage:
		if msg.String() == "q" {
			return tea.Quit
		}

	case loginPage:
		var action login.Action
		m.state.login, action = m.state.login.Update(msg)
		switch action {
		case login.ActionSubmit:
			return signInCmd(ctx, m.deps.Session, m.state.login.Email(), m.state.login.Password())
		case login.ActionSignUp:
			m.page = signupPage
			m.state.signup = signup.New()
		}

	case signupPage:
		var action signup.Action
		m.state.signup, action = m.state.signup.Update(msg)
		switch action {
		case signup.ActionSubmit:
			s := m.state.signup
			return signUpCmd(ctx, m.deps.Session, s.Email(), s.Password(), s.Name())
		case signup.ActionSignIn:
			m.page = loginPage
			m.state.login = login.New()
		}

	case trackerPage:
		var action trackerpage.Action
		m.state.tracker.Now = m.deps.Now()
		m.state.tracker, action = m.state.tracker.Update(msg)
		switch action {
		case trackerpage.ActionEdited:
			m.enqueueSave()
		case trackerpage.ActionSignOut:
			m.state.tracker.Indicator.Pending = true
			return signOutCmd(ctx, m.deps.Session)
		case trackerpage.ActionQuit:
			return tea.Quit
		}
	}

	return nil
}

func (m *Model) enqueueSave() {
	if m.deps.Autosaver == nil {
		return
	}
	seq, err := m.deps.Autosaver.Enqueue(m.state.tracker.Tracker)
	if err != nil {
		m.deps.Logger.ErrorContext(m.deps.Ctx, "failed to queue save", xslog.Error(err))
		m.state.tracker = m.state.tracker.Failed(session.Message(err, "Save failed"))
		return
	}
	m.state.tracker = m.state.tracker.SaveQueued()
	m.deps.Logger.DebugContext(m.deps.Ctx, "save queued", xslog.Seq(seq))
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = splash.View(m.theme, m.viewportWidth, m.viewportHeight)
	case loginPage:
		content = login.View(m.theme, m.state.login, m.viewportWidth, m.viewportHeight)
	case signupPage:
		content = signup.View(m.theme, m.state.signup, m.viewportWidth, m.viewportHeight)
	case trackerPage:
		content = trackerpage.View(m.theme, m.state.tracker, m.viewportWidth, m.viewportHeight)
	}

	view.SetContent(content)
	return view
}
