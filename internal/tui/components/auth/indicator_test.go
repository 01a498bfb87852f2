package auth

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestIndicatorRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Indicator
		want string
	}{
		{name: "unchecked", in: Indicator{}, want: "● checking..."},
		{name: "signed in", in: Indicator{Checked: true, Email: "a@b.c"}, want: "● a@b.c"},
		{name: "signing out", in: Indicator{Checked: true, Pending: true, Email: "a@b.c"}, want: "● signing out..."},
		{name: "signed out", in: Indicator{Checked: true}, want: "● signed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ansi.Strip(tt.in.Render()); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
