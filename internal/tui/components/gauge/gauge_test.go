package gauge

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/garrettladley/weightrack/internal/tui/theme"
)

func filledCells(g Gauge) int {
	_, fill := g.rings()
	n := 0
	for _, row := range fill {
		for _, r := range row {
			if r != ' ' {
				n++
			}
		}
	}
	return n
}

func TestFillGrowsWithFraction(t *testing.T) {
	t.Parallel()

	prev := -1
	for _, f := range []float64{0, 0.25, 0.5, 0.75, 1} {
		n := filledCells(New(f, true, "", "GOAL", theme.ColorAccent))
		if n <= prev && f > 0 {
			t.Errorf("fraction %v filled %d cells, not more than %d", f, n, prev)
		}
		if f == 0 && n != 0 {
			t.Errorf("fraction 0 filled %d cells", n)
		}
		prev = n
	}
}

func TestFullRingHasNoBackground(t *testing.T) {
	t.Parallel()

	bg, _ := New(1, true, "", "", theme.ColorAccent).rings()
	for i, row := range bg {
		if strings.TrimSpace(string(row)) != "" {
			t.Fatalf("row %d has unfilled dots: %q", i, string(row))
		}
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fraction   float64
		ok         bool
		wantCenter string
	}{
		{name: "value", fraction: 0.42, ok: true, wantCenter: "42%"},
		{name: "no value", fraction: 0.42, ok: false, wantCenter: "--"},
		{name: "nan", fraction: math.NaN(), ok: true, wantCenter: "0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := New(tt.fraction, tt.ok, tt.wantCenter, "GOAL", theme.ColorAccent, WithSize(16, 8))
			lines := strings.Split(ansi.Strip(g.Render()), "\n")

			if len(lines) != 9 {
				t.Fatalf("Render() has %d lines, want 8 ring rows plus a label", len(lines))
			}
			for i, line := range lines[:8] {
				if w := len([]rune(line)); w != 16 {
					t.Errorf("row %d width = %d, want 16", i, w)
				}
			}
			if !strings.Contains(lines[4], tt.wantCenter) {
				t.Errorf("middle row %q missing %q", lines[4], tt.wantCenter)
			}
			if strings.TrimSpace(lines[8]) != "GOAL" {
				t.Errorf("label row = %q", lines[8])
			}
		})
	}
}
