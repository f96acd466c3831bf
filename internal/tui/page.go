package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is one of the five panels. Global keys are handled by App before a
// page sees them.
type Page interface {
	ID() string
	HandleKey(msg tea.KeyMsg) tea.Cmd
	View(width, height int) string
}

// page returns the active page.
func (a *App) page() Page {
	switch a.tabs.Active() {
	case TabFortune:
		return a.fortune
	case TabName:
		return a.name
	case TabLucky:
		return a.lucky
	case TabRanking:
		return a.ranking
	}
	return a.number
}

// newInput builds a text field the way every page wants it.
func newInput(prompt, placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.PromptStyle = labelStyle
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}
