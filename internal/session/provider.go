package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/garrettladley/weightrack/internal/xslog"
)

var (
	ErrMissingEmail     = errors.New("email is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

const (
	defaultSignInLatency  = 500 * time.Millisecond
	defaultSignOutLatency = 200 * time.Millisecond

	mockUserName = "Test User"
)

type subscription struct {
	id uint64
	fn Listener
}

// Provider is an in-memory stand-in for an authentication backend. Any
// non-empty email signs in; no credentials are checked or stored. Session
// changes are pushed to listeners registered with OnChange.
type Provider struct {
	mu        sync.Mutex
	current   *Session
	listeners []subscription
	nextSubID uint64

	signInLatency  time.Duration
	signOutLatency time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

type Option func(*Provider)

// WithLatency sets the simulated delay of sign-in/sign-up and sign-out.
func WithLatency(signIn time.Duration, signOut time.Duration) Option {
	return func(p *Provider) {
		p.signInLatency = signIn
		p.signOutLatency = signOut
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		signInLatency:  defaultSignInLatency,
		signOutLatency: defaultSignOutLatency,
		logger:         slog.Default(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetSession returns the current session, or nil when signed out.
func (p *Provider) GetSession(_ context.Context) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.clone(), nil
}

func (p *Provider) SignIn(ctx context.Context, email string, _ string) (*User, error) {
	return p.start(ctx, EventSignedIn, email, mockUserName)
}

func (p *Provider) SignUp(ctx context.Context, email string, _ string, name string) (*User, error) {
	return p.start(ctx, EventSignedUp, email, name)
}

func (p *Provider) start(ctx context.Context, event Event, email string, name string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingEmail
	}
	if err := sleep(ctx, p.signInLatency); err != nil {
		return nil, err
	}

	s := &Session{
		ID: NewID(),
		User: User{
			ID:    uuid.NewString(),
			Email: email,
			Name:  strings.TrimSpace(name),
		},
		CreatedAt: p.now(),
	}

	p.mu.Lock()
	p.current = s
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "session started",
		slog.String("event", event.String()),
		xslog.SessionID(s.ID),
		xslog.UserGroup(s.User.ID, s.User.Email),
	)
	p.notify(event, s)

	user := s.User
	return &user, nil
}

// SignOut clears the session. Signing out while signed out is a no-op and
// notifies nobody.
func (p *Provider) SignOut(ctx context.Context) error {
	if err := sleep(ctx, p.signOutLatency); err != nil {
		return err
	}

	p.mu.Lock()
	prev := p.current
	p.current = nil
	p.mu.Unlock()

	if prev == nil {
		return nil
	}

	p.logger.InfoContext(ctx, "session ended", xslog.SessionID(prev.ID))
	p.notify(EventSignedOut, nil)
	return nil
}

// OnChange registers fn and returns a func that unregisters it. Listeners
// run synchronously, in registration order, on the goroutine that made the
// change.
func (p *Provider) OnChange(fn Listener) (unsubscribe func()) {
	p.mu.Lock()
	p.nextSubID++
	id := p.nextSubID
	p.listeners = append(p.listeners, subscription{id: id, fn: fn})
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, sub := range p.listeners {
				if sub.id == id {
					p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (p *Provider) notify(event Event, s *Session) {
	p.mu.Lock()
	subs := append([]subscription(nil), p.listeners...)
	p.mu.Unlock()

	for _, sub := range subs {
		sub.fn(event, s.clone())
	}
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CheckPasswords is the sign-up form's confirmation check.
func CheckPasswords(password string, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// Message returns a human-readable, capitalized message for err, or fallback
// when err carries none.
func Message(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	case errors.Is(err, context.Canceled):
		return "Request cancelled"
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return fallback
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}
