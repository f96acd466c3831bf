package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// HelpModal lists the key bindings over the active page.
type HelpModal struct {
	keys     KeyMap
	viewport viewport.Model
}

func NewHelpModal(keys KeyMap) *HelpModal {
	return &HelpModal{
		keys:     keys,
		viewport: viewport.New(80, 20),
	}
}

// Update handles keys while the modal is open. It returns true when the
// modal should close.
func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, h.keys.Escape), key.Matches(msg, h.keys.Help):
			return true, nil
		case msg.String() == "up":
			h.viewport.ScrollUp(1)
			return false, nil
		case msg.String() == "down":
			h.viewport.ScrollDown(1)
			return false, nil
		case msg.String() == "pgup":
			h.viewport.HalfPageUp()
			return false, nil
		case msg.String() == "pgdown":
			h.viewport.HalfPageDown()
			return false, nil
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			h.viewport.ScrollUp(1)
		case tea.MouseButtonWheelDown:
			h.viewport.ScrollDown(1)
		}
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	return renderHelpModal(&h.viewport, h.keys, width, height)
}
