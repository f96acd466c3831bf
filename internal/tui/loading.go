package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// spinnerTickMsg advances the busy indicator.
type spinnerTickMsg struct{}

// renderBusyIndicator shows the spinner and the working labels of every
// busy control.
func (a *App) renderBusyIndicator() string {
	if !a.busy() {
		return ""
	}
	frame := spinnerFrames[a.spinnerFrame%len(spinnerFrames)]
	labels := ""
	for _, id := range busyOrder {
		if _, ok := a.state.busyLabels[id]; ok {
			labels += " " + a.state.Elements.Get(id).Text
		}
	}
	return lipgloss.NewStyle().Foreground(ColorGold).Italic(true).Render(frame + labels)
}

// busyOrder fixes the order in which busy controls are listed.
var busyOrder = []string{"evaluate-btn", "fortune-btn", "name-btn", "spin-btn", "share-btn", "ranking-btn"}

// startSpinner schedules a tick unless one is already pending.
func (a *App) startSpinner() tea.Cmd {
	if a.spinnerRunning {
		return nil
	}
	a.spinnerRunning = true
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

// handleSpinnerTick re-schedules ticks while any control is busy.
func (a *App) handleSpinnerTick() tea.Cmd {
	a.spinnerFrame++
	if !a.busy() {
		a.spinnerRunning = false
		return nil
	}
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}
