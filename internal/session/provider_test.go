package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestProvider() *Provider {
	return NewProvider(WithLatency(0, 0))
}

type recorder struct {
	mu     sync.Mutex
	events []Event
	emails []string
}

func (r *recorder) listen(e Event, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if s != nil {
		r.emails = append(r.emails, s.User.Email)
	} else {
		r.emails = append(r.emails, "")
	}
}

func TestProviderLifecycle(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	p := newTestProvider()

	s, err := p.GetSession(ctx)
	if err != nil || s != nil {
		t.Fatalf("GetSession() before sign-in = %v, %v; want nil, nil", s, err)
	}

	var rec recorder
	unsubscribe := p.OnChange(rec.listen)

	user, err := p.SignIn(ctx, " ada@example.com ", "hunter2")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if user.Email != "ada@example.com" || user.Name != "Test User" || user.ID == "" {
		t.Errorf("SignIn() user = %+v", user)
	}

	s, _ = p.GetSession(ctx)
	if s == nil || s.User.ID != user.ID {
		t.Fatalf("GetSession() after sign-in = %+v", s)
	}

	if err := p.SignOut(ctx); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if s, _ := p.GetSession(ctx); s != nil {
		t.Errorf("GetSession() after sign-out = %+v", s)
	}

	signedUp, err := p.SignUp(ctx, "grace@example.com", "pw", "Grace")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if signedUp.Name != "Grace" {
		t.Errorf("SignUp() name = %q", signedUp.Name)
	}

	unsubscribe()
	unsubscribe()
	_ = p.SignOut(ctx)

	wantEvents := []Event{EventSignedIn, EventSignedOut, EventSignedUp}
	wantEmails := []string{"ada@example.com", "", "grace@example.com"}
	if diff := cmp.Diff(wantEvents, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantEmails, rec.emails); diff != "" {
		t.Errorf("emails mismatch (-want +got):\n%s", diff)
	}
}

func TestProviderSignOutWhenSignedOut(t *testing.T) {
	t.Parallel()

	p := newTestProvider()
	var rec recorder
	p.OnChange(rec.listen)

	if err := p.SignOut(t.Context()); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("listener called %d times, want 0", len(rec.events))
	}
}

func TestProviderMissingEmail(t *testing.T) {
	t.Parallel()

	p := newTestProvider()
	if _, err := p.SignIn(t.Context(), "   ", "pw"); !errors.Is(err, ErrMissingEmail) {
		t.Errorf("SignIn() error = %v, want ErrMissingEmail", err)
	}
	if _, err := p.SignUp(t.Context(), "", "pw", "x"); !errors.Is(err, ErrMissingEmail) {
		t.Errorf("SignUp() error = %v, want ErrMissingEmail", err)
	}
}

func TestProviderLatencyHonoursContext(t *testing.T) {
	t.Parallel()

	p := NewProvider(WithLatency(time.Hour, time.Hour))
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.SignIn(ctx, "a@b.c", "pw"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("SignIn() error = %v, want DeadlineExceeded", err)
	}
	if s, _ := p.GetSession(t.Context()); s != nil {
		t.Errorf("session set despite cancelled sign-in: %+v", s)
	}
}

func TestProviderSignOutUsesOwnLatency(t *testing.T) {
	t.Parallel()

	p := NewProvider(WithLatency(0, time.Hour))
	if _, err := p.SignIn(t.Context(), "a@b.c", "pw"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	if err := p.SignOut(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("SignOut() error = %v, want DeadlineExceeded", err)
	}
	if s, _ := p.GetSession(t.Context()); s == nil {
		t.Error("session cleared despite cancelled sign-out")
	}
}

func TestProviderListenersGetCopies(t *testing.T) {
	t.Parallel()

	p := newTestProvider()
	p.OnChange(func(_ Event, s *Session) {
		if s != nil {
			s.User.Email = "mutated"
		}
	})

	if _, err := p.SignIn(t.Context(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}
	s, _ := p.GetSession(t.Context())
	if s.User.Email != "a@b.c" {
		t.Errorf("listener mutated provider session: %q", s.User.Email)
	}
}

func TestProviderClock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC)
	p := NewProvider(WithLatency(0, 0), WithClock(func() time.Time { return fixed }))
	if _, err := p.SignIn(t.Context(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}

	s, _ := p.GetSession(t.Context())
	want := &Session{User: User{Email: "a@b.c", Name: "Test User"}, CreatedAt: fixed}
	opts := cmpopts.IgnoreFields(Session{}, "ID")
	userOpts := cmpopts.IgnoreFields(User{}, "ID")
	if diff := cmp.Diff(want, s, opts, userOpts); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckPasswords(t *testing.T) {
	t.Parallel()

	if err := CheckPasswords("a", "a"); err != nil {
		t.Errorf("CheckPasswords(equal) = %v", err)
	}
	if err := CheckPasswords("a", "b"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("CheckPasswords(different) = %v", err)
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "sentinel", err: ErrPasswordMismatch, want: "Passwords do not match"},
		{name: "blank", err: errors.New("  "), want: "Failed to login"},
		{name: "timeout", err: context.DeadlineExceeded, want: "Request timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Message(tt.err, "Failed to login"); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	id := newIDAt(at)
	if !strings.HasPrefix(id, "20240102-030405-") {
		t.Errorf("newIDAt() = %q", id)
	}
	if len(id) != len("20240102-030405-")+6 {
		t.Errorf("newIDAt() length = %d", len(id))
	}
}
