package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all client key bindings with built-in help text. Printable
// keys are left to the focused input, so global bindings use modifiers.
type KeyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	Escape      key.Binding
	ToggleSound key.Binding

	// Tabs
	NextTab   key.Binding
	PrevTab   key.Binding
	GoNumber  key.Binding
	GoFortune key.Binding
	GoName    key.Binding
	GoLucky   key.Binding
	GoRanking key.Binding

	// Actions
	Submit     key.Binding
	Share      key.Binding
	SaveShare  key.Binding
	CopyShare  key.Binding
	Reload     key.Binding
	TopView    key.Binding
	RecentView key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "close"),
		),
		ToggleSound: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "toggle sound"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		GoNumber: key.NewBinding(
			key.WithKeys("alt+1", "f2"),
			key.WithHelp("alt+1", "号码评估"),
		),
		GoFortune: key.NewBinding(
			key.WithKeys("alt+2", "f3"),
			key.WithHelp("alt+2", "生辰算命"),
		),
		GoName: key.NewBinding(
			key.WithKeys("alt+3", "f4"),
			key.WithHelp("alt+3", "姓名分析"),
		),
		GoLucky: key.NewBinding(
			key.WithKeys("alt+4", "f5"),
			key.WithHelp("alt+4", "幸运转盘"),
		),
		GoRanking: key.NewBinding(
			key.WithKeys("alt+5", "f6"),
			key.WithHelp("alt+5", "排行榜"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Share: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "share card"),
		),
		SaveShare: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "save card"),
		),
		CopyShare: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy card"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload ranking"),
		),
		TopView: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "top numbers"),
		),
		RecentView: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "recent"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("↑/pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "pgdown"),
			key.WithHelp("↓/pgdn", "scroll down"),
		),
	}
}

// helpGroups orders bindings for the help modal.
func (k KeyMap) helpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.GoNumber, k.GoFortune, k.GoName, k.GoLucky, k.GoRanking},
		{k.Submit, k.Share, k.SaveShare, k.CopyShare},
		{k.Reload, k.TopView, k.RecentView, k.ScrollUp, k.ScrollDown},
		{k.ToggleSound, k.Help, k.Escape, k.Quit},
	}
}
