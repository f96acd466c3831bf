package tui

import tea "github.com/charmbracelet/bubbletea"

// Tab names accepted by SwitchTab.
const (
	TabNumber  = "number"
	TabFortune = "fortune"
	TabName    = "name"
	TabLucky   = "lucky"
	TabRanking = "ranking"
)

// Panel element ids.
const (
	panelNumber  = "number-evaluation"
	panelFortune = "fortune-telling"
	panelName    = "name-analysis"
	panelLucky   = "lucky-draw"
	panelRanking = "ranking-board"
)

// tabOrder is the left-to-right order of the tab bar.
var tabOrder = []string{TabNumber, TabFortune, TabName, TabLucky, TabRanking}

var tabPanels = map[string]string{
	TabNumber:  panelNumber,
	TabFortune: panelFortune,
	TabName:    panelName,
	TabLucky:   panelLucky,
	TabRanking: panelRanking,
}

func tabControlID(tab string) string { return "tab-" + tab }

// Tabs keeps exactly one of the five panels active. Entering a tab runs its
// side effect from onEnter every time, including re-entry.
type Tabs struct {
	elements *Elements
	active   string
	onEnter  map[string]func() tea.Cmd
	onSwitch func()
}

// NewTabs creates the coordinator with the number panel active. No side
// effects run for the initial panel.
func NewTabs(elements *Elements, onEnter map[string]func() tea.Cmd) *Tabs {
	t := &Tabs{elements: elements, onEnter: onEnter}
	t.mark(TabNumber)
	return t
}

// Active returns the active tab name.
func (t *Tabs) Active() string { return t.active }

// SwitchTab activates target. Unknown names fall back to the number panel.
func (t *Tabs) SwitchTab(target string) tea.Cmd {
	for _, tab := range tabOrder {
		t.elements.Get(tabPanels[tab]).Active = false
		t.elements.Get(tabControlID(tab)).Active = false
	}

	if _, ok := tabPanels[target]; !ok {
		target = TabNumber
	}
	t.mark(target)

	if t.onSwitch != nil {
		t.onSwitch()
	}
	if fn, ok := t.onEnter[target]; ok && fn != nil {
		return fn()
	}
	return nil
}

// Next activates the tab to the right, wrapping around.
func (t *Tabs) Next() tea.Cmd {
	return t.SwitchTab(tabOrder[(t.index()+1)%len(tabOrder)])
}

// Prev activates the tab to the left, wrapping around.
func (t *Tabs) Prev() tea.Cmd {
	return t.SwitchTab(tabOrder[(t.index()-1+len(tabOrder))%len(tabOrder)])
}

func (t *Tabs) index() int {
	for i, tab := range tabOrder {
		if tab == t.active {
			return i
		}
	}
	return 0
}

func (t *Tabs) mark(tab string) {
	t.active = tab
	t.elements.Get(tabPanels[tab]).Active = true
	t.elements.Get(tabControlID(tab)).Active = true
}

// renderTabBar draws the tab controls, highlighting the active one.
func (t *Tabs) renderTabBar() string {
	out := ""
	for i, tab := range tabOrder {
		el := t.elements.Get(tabControlID(tab))
		label := string(rune('1'+i)) + " " + el.Text
		if el.Active {
			out += activeTabStyle.Render(label)
		} else {
			out += tabStyle.Render(label)
		}
	}
	return out
}
