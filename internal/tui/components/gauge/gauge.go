// Package gauge draws a braille progress ring with a value in its center.
package gauge

import (
	"image/color"
	"math"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/weightrack/internal/tui/theme"
)

const (
	// ring size in braille dots; a cell is 2 dots wide and 4 dots tall
	defaultDotsWidth  = 36
	defaultDotsHeight = 36
	ringThickness     = 4

	// 12 o'clock in screen coordinates, where y grows downward
	startAngle = -math.Pi / 2

	emptyBraille rune = '⠀'
)

// Gauge renders Fraction of a full circle, filled clockwise from the top.
type Gauge struct {
	Fraction  float64
	HasValue  bool
	Center    string
	Label     string
	Color     color.Color
	BgColor   color.Color
	TextColor color.Color

	dotsWidth  int
	dotsHeight int
}

type Option func(*Gauge)

func WithBgColor(c color.Color) Option {
	return func(g *Gauge) { g.BgColor = c }
}

func WithTextColor(c color.Color) Option {
	return func(g *Gauge) { g.TextColor = c }
}

// WithSize sets the ring size in terminal cells.
func WithSize(cols int, rows int) Option {
	return func(g *Gauge) {
		g.dotsWidth = max(cols, 4) * 2
		g.dotsHeight = max(rows, 2) * 4
	}
}

// New builds a gauge. ok=false renders an empty ring with "--" in the middle.
func New(fraction float64, ok bool, center string, label string, c color.Color, opts ...Option) Gauge {
	g := Gauge{
		Fraction:   clamp(fraction),
		HasValue:   ok,
		Center:     center,
		Label:      label,
		Color:      c,
		BgColor:    theme.ColorBgLight,
		TextColor:  theme.ColorWhite,
		dotsWidth:  defaultDotsWidth,
		dotsHeight: defaultDotsHeight,
	}
	for _, opt := range opts {
		opt(&g)
	}
	if !g.HasValue {
		g.Fraction = 0
		g.Center = "--"
	}
	return g
}

func clamp(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}

func (g Gauge) Render() string {
	bg, fill := g.rings()

	var (
		bgStyle   = lipgloss.NewStyle().Foreground(g.BgColor)
		fillStyle = lipgloss.NewStyle().Foreground(g.Color)
		textStyle = lipgloss.NewStyle().Foreground(g.TextColor).Bold(true)
		mid       = len(bg) / 2
		lines     = make([]string, len(bg))
	)

	for i := range bg {
		cells := combine(bg[i], fill[i])
		var text []rune
		var textAt int
		if i == mid {
			text = []rune(g.Center)
			text = text[:min(len(text), len(cells))]
			textAt = (len(cells) - len(text)) / 2
		}

		var b strings.Builder
		for j, c := range cells {
			if k := j - textAt; len(text) > 0 && k >= 0 && k < len(text) {
				if k == 0 {
					b.WriteString(textStyle.Render(string(text)))
				}
				continue
			}
			switch {
			case c.fill:
				b.WriteString(fillStyle.Render(string(c.r)))
			case c.r != ' ':
				b.WriteString(bgStyle.Render(string(c.r)))
			default:
				b.WriteRune(' ')
			}
		}
		lines[i] = b.String()
	}

	ring := strings.Join(lines, "\n")
	label := lipgloss.NewStyle().
		Foreground(g.TextColor).
		Bold(true).
		Width(lipgloss.Width(ring)).
		Align(lipgloss.Center).
		Render(g.Label)

	return lipgloss.JoinVertical(lipgloss.Center, ring, label)
}

// rings draws the unfilled and filled parts of the ring on separate canvases
// and returns them as rows of exactly cols runes.
func (g Gauge) rings() (bg [][]rune, fill [][]rune) {
	var (
		bgCanvas   = drawille.NewCanvas()
		fillCanvas = drawille.NewCanvas()
		cx         = float64(g.dotsWidth-1) / 2
		cy         = float64(g.dotsHeight-1) / 2
		outer      = math.Min(cx, cy)
		inner      = outer - ringThickness
		sweep      = g.Fraction * 2 * math.Pi
	)

	for y := range g.dotsHeight {
		for x := range g.dotsWidth {
			dx, dy := float64(x)-cx, float64(y)-cy
			d := math.Hypot(dx, dy)
			if d > outer || d < inner {
				continue
			}
			if angleFromTop(dx, dy) < sweep {
				fillCanvas.Set(x, y)
			} else {
				bgCanvas.Set(x, y)
			}
		}
	}

	cols, rows := g.dotsWidth/2, g.dotsHeight/4
	return canvasCells(&bgCanvas, g.dotsWidth, g.dotsHeight, cols, rows),
		canvasCells(&fillCanvas, g.dotsWidth, g.dotsHeight, cols, rows)
}

// angleFromTop is the clockwise angle of (dx, dy) from 12 o'clock, in [0, 2π).
func angleFromTop(dx float64, dy float64) float64 {
	a := math.Atan2(dy, dx) - startAngle
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func canvasCells(c *drawille.Canvas, width int, height int, cols int, rows int) [][]rune {
	drawn := c.Rows(0, 0, width, height)
	out := make([][]rune, rows)
	for i := range rows {
		row := make([]rune, cols)
		var src []rune
		if i < len(drawn) {
			src = []rune(drawn[i])
		}
		for j := range cols {
			row[j] = ' '
			if j < len(src) && isBraille(src[j]) && src[j] != emptyBraille {
				row[j] = src[j]
			}
		}
		out[i] = row
	}
	return out
}

type cell struct {
	r    rune
	fill bool
}

// combine ORs the dots of the two layers. A cell with any filled dot takes
// the fill color.
func combine(bg []rune, fill []rune) []cell {
	out := make([]cell, len(bg))
	for i := range bg {
		switch {
		case fill[i] != ' ' && bg[i] != ' ':
			out[i] = cell{r: emptyBraille + ((bg[i] - emptyBraille) | (fill[i] - emptyBraille)), fill: true}
		case fill[i] != ' ':
			out[i] = cell{r: fill[i], fill: true}
		default:
			out[i] = cell{r: bg[i]}
		}
	}
	return out
}

func isBraille(r rune) bool {
	return r >= 0x2800 && r <= 0x28FF
}
