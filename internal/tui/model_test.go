package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/weightrack/internal/session"
	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/tui/page/splash"
	"github.com/garrettladley/weightrack/internal/tui/theme"
	"github.com/garrettladley/weightrack/internal/xslog"
)

var fixedNow = time.Date(2020, time.November, 14, 9, 0, 0, 0, time.UTC)

type harness struct {
	model    Model
	provider *session.Provider
	store    *tracker.Store
	saver    *tracker.Autosaver
	events   <-chan SessionChangedMsg
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctx := t.Context()
	logger := xslog.Discard()
	provider := session.NewProvider(session.WithLatency(0, 0), session.WithLogger(logger))
	store := tracker.NewStore(storage.NewMemoryStore(), logger)
	saver := tracker.NewAutosaver(ctx, store, logger)
	events, stop := WatchSession(ctx, provider)
	t.Cleanup(func() {
		stop()
		_ = saver.Close()
	})

	m := New(Deps{
		Ctx:           ctx,
		Logger:        logger,
		Session:       provider,
		Store:         store,
		Autosaver:     saver,
		SessionEvents: events,
		Now:           func() time.Time { return fixedNow },
	})
	h := &harness{model: m, provider: provider, store: store, saver: saver, events: events}
	h.send(tea.WindowSizeMsg{Width: 160, Height: 48})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.model.Update(msg)
	return cmd
}

func (h *harness) keys(t *testing.T, keys ...tea.KeyPressMsg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(k)
	}
	return cmd
}

// run executes a single, non-batched command and feeds its message back.
func (h *harness) run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	h.send(msg)
	return msg
}

func (h *harness) nextSessionEvent(t *testing.T) SessionChangedMsg {
	t.Helper()
	select {
	case msg := <-h.events:
		h.send(msg)
		return msg
	case <-time.After(time.Second):
		t.Fatal("no session event")
		return SessionChangedMsg{}
	}
}

func (h *harness) leaveSplash() {
	h.send(splash.TickMsg{})
}

func text(s string) []tea.KeyPressMsg {
	keys := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		keys = append(keys, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return keys
}

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
	ctrlN = tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	ctrlO = tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
)

func TestSplashWaitsForTimerAndSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.send(SessionCheckedMsg{})
	if h.model.page != splashPage {
		t.Fatalf("left splash before the timer: %v", h.model.page)
	}
	h.leaveSplash()
	if h.model.page != loginPage {
		t.Fatalf("page = %v, want login", h.model.page)
	}
}

func TestSplashWithSessionOpensTracker(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if _, err := h.provider.SignIn(t.Context(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}
	<-h.events // startup sign-in, not part of the flow under test

	h.leaveSplash()
	h.run(t, checkSessionCmd(t.Context(), h.provider))
	if h.model.page != trackerPage {
		t.Fatalf("page = %v, want tracker", h.model.page)
	}
	if h.model.state.tracker.Loaded {
		t.Fatal("tracker loaded before the load command ran")
	}

	h.send(TrackerLoadedMsg{State: h.store.Load(t.Context())})
	if !h.model.state.tracker.Loaded {
		t.Error("tracker not loaded")
	}
	if got := h.model.state.tracker.Indicator.Email; got != "a@b.c" {
		t.Errorf("indicator email = %q", got)
	}
}

func TestLoginEditAndSignOut(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.send(SessionCheckedMsg{})
	h.leaveSplash()

	keys := append(text("a@b.c"), tab)
	keys = append(keys, text("secret")...)
	keys = append(keys, enter)
	cmd := h.keys(t, keys...)
	if !h.model.state.login.Submitting {
		t.Fatal("login not submitting")
	}
	if msg := h.run(t, cmd).(AuthResultMsg); msg.Err != nil {
		t.Fatalf("sign in error = %v", msg.Err)
	}

	if ev := h.nextSessionEvent(t); ev.Event != session.EventSignedIn {
		t.Fatalf("event = %v", ev.Event)
	}
	if h.model.page != trackerPage {
		t.Fatalf("page = %v, want tracker", h.model.page)
	}
	h.send(TrackerLoadedMsg{State: h.store.Load(t.Context())})

	// grid: week 0 weights, Sunday
	h.keys(t, append([]tea.KeyPressMsg{tab}, append(text("182"), enter)...)...)
	if got := h.model.state.tracker.Pending; got != 1 {
		t.Errorf("pending saves = %d, want 1", got)
	}

	select {
	case r := <-h.saver.Results():
		if r.Err != nil {
			t.Fatalf("save error = %v", r.Err)
		}
		h.send(SaveResultMsg{Result: r})
	case <-time.After(time.Second):
		t.Fatal("save did not finish")
	}
	if got := h.store.Load(t.Context()).Cell(0, tracker.KindWeights, tracker.Sunday); got != "182" {
		t.Errorf("persisted cell = %q, want 182", got)
	}
	if h.model.state.tracker.Pending != 0 {
		t.Errorf("pending saves = %d after result", h.model.state.tracker.Pending)
	}

	h.run(t, h.keys(t, ctrlO))
	if ev := h.nextSessionEvent(t); ev.Event != session.EventSignedOut {
		t.Fatalf("event = %v", ev.Event)
	}
	if h.model.page != loginPage {
		t.Errorf("page = %v, want login", h.model.page)
	}
}

func TestLoginFailureShowsAlert(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.send(SessionCheckedMsg{})
	h.leaveSplash()

	cmd := h.keys(t, tab, enter)
	h.run(t, cmd)

	if h.model.page != loginPage {
		t.Fatalf("page = %v, want login", h.model.page)
	}
	if got := h.model.state.login.Alert; got != "Email is required" {
		t.Errorf("alert = %q", got)
	}
	if h.model.state.login.Submitting {
		t.Error("still submitting")
	}
}

func TestSignUpPasswordMismatch(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.send(SessionCheckedMsg{})
	h.leaveSplash()
	h.keys(t, ctrlN)
	if h.model.page != signupPage {
		t.Fatalf("page = %v, want signup", h.model.page)
	}

	var keys []tea.KeyPressMsg
	keys = append(keys, text("Ada")...)
	keys = append(keys, tab)
	keys = append(keys, text("ada@b.c")...)
	keys = append(keys, tab)
	keys = append(keys, text("one")...)
	keys = append(keys, tab)
	keys = append(keys, text("two")...)
	keys = append(keys, enter)

	if cmd := h.keys(t, keys...); cmd != nil {
		t.Error("mismatched passwords produced a command")
	}
	if got := h.model.state.signup.Alert; got != "Passwords do not match" {
		t.Errorf("alert = %q", got)
	}
	if s, _ := h.provider.GetSession(t.Context()); s != nil {
		t.Error("provider was called")
	}
}

func TestViewBackgroundPerPage(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	v := h.model.View()
	if !v.AltScreen {
		t.Error("view not in alt screen")
	}
	if v.BackgroundColor != theme.ColorBlack {
		t.Errorf("splash background = %v, want black", v.BackgroundColor)
	}

	h.send(SessionCheckedMsg{})
	h.leaveSplash()
	if v := h.model.View(); v.BackgroundColor == theme.ColorBlack {
		t.Error("login uses the splash background")
	}
}
