package tui

import (
	"io"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	revealFrames     = 12
	confettiRows     = 6
	confettiCount    = 40
	confettiLifetime = 30
)

// cueKind selects the bell pattern.
type cueKind int

const (
	cueSuccess cueKind = iota
	cueWin
)

var confettiGlyphs = []string{"✦", "✧", "•", "★", "❖", "✿"}

var confettiColors = []lipgloss.Color{"#FFD700", "#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#8E44AD"}

type particle struct {
	x, y   float64
	vx, vy float64
	glyph  string
	color  lipgloss.Color
	life   int
}

// Effects owns the decorative output: the bell, confetti, and the frame
// clock that drives reveal highlights.
type Effects struct {
	bell      io.Writer
	interval  time.Duration
	particles []particle
	width     int
	running   bool
}

func newEffects(bell io.Writer, interval time.Duration) *Effects {
	return &Effects{bell: bell, interval: interval}
}

type effectTickMsg struct{}

// cue rings the bell. It does nothing when sound is off or no writer is set.
func (e *Effects) cue(enabled bool, kind cueKind) tea.Cmd {
	if !enabled || e.bell == nil {
		return nil
	}
	bell := e.bell
	seq := "\a"
	if kind == cueWin {
		seq = "\a\a"
	}
	return func() tea.Msg {
		if _, err := io.WriteString(bell, seq); err != nil {
			log.Printf("tui: bell: %v", err)
		}
		return nil
	}
}

// confetti launches a burst across width columns.
func (e *Effects) confetti(width int) {
	if width <= 0 {
		width = 80
	}
	e.width = width
	for range confettiCount {
		e.particles = append(e.particles, particle{
			x:     rand.Float64() * float64(width),
			y:     rand.Float64() * 2,
			vx:    rand.Float64()*2 - 1,
			vy:    0.2 + rand.Float64()*0.4,
			glyph: confettiGlyphs[rand.IntN(len(confettiGlyphs))],
			color: confettiColors[rand.IntN(len(confettiColors))],
			life:  confettiLifetime - rand.IntN(10),
		})
	}
}

// start begins the frame clock unless it is already running.
func (e *Effects) start() tea.Cmd {
	if e.running {
		return nil
	}
	e.running = true
	return e.tick()
}

func (e *Effects) tick() tea.Cmd {
	return tea.Tick(e.interval, func(time.Time) tea.Msg { return effectTickMsg{} })
}

// step advances the particles and reports whether any survive.
func (e *Effects) step() bool {
	alive := e.particles[:0]
	for _, p := range e.particles {
		p.x += p.vx
		p.y += p.vy
		p.life--
		if p.life > 0 && p.y < confettiRows && p.x >= 0 && p.x < float64(e.width) {
			alive = append(alive, p)
		}
	}
	e.particles = alive
	return len(alive) > 0
}

// renderConfetti draws the particle band, or "" when nothing is flying.
func (e *Effects) renderConfetti(width int) string {
	if len(e.particles) == 0 || width <= 0 {
		return ""
	}
	grid := make([][]string, confettiRows)
	for i := range grid {
		grid[i] = make([]string, width)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}
	for _, p := range e.particles {
		x, y := int(p.x), int(p.y)
		if y < 0 || y >= confettiRows || x < 0 || x >= width {
			continue
		}
		grid[y][x] = lipgloss.NewStyle().Foreground(p.color).Render(p.glyph)
	}
	lines := make([]string, confettiRows)
	for i, row := range grid {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// handleEffectTick advances confetti and reveal countdowns, and keeps the
// clock running while either is active.
func (a *App) handleEffectTick() tea.Cmd {
	active := a.effects.step()
	if el := a.state.Elements.Get("result"); el.Reveal > 0 {
		el.Reveal--
		active = active || el.Reveal > 0
	}
	if !active {
		a.effects.running = false
		return nil
	}
	return a.effects.tick()
}

// toggleSound flips the sound flag.
func (a *App) toggleSound() {
	a.state.SoundEnabled = !a.state.SoundEnabled
}
