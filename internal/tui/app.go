package tui

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update routes messages. Completion messages release their control first,
// so the restore runs on every exit path before any rendering.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if c, ok := msg.(completion); ok {
		a.finish(c.buttonID())
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.lucky.ready {
			a.lucky.layout(a.contentSize())
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		if a.help != nil {
			return a, a.updateHelp(msg)
		}
		return a, nil

	case panicMsg:
		return a, a.handlePanic(msg)

	case evaluatedMsg:
		return a, a.handleEvaluated(msg)

	case rankingSubmittedMsg:
		if msg.err != nil {
			log.Printf("tui: add to ranking: %v", msg.err)
		}
		return a, nil

	case streamOpenedMsg:
		return a, a.handleStreamOpened(msg)

	case glyphMsg:
		return a, a.handleGlyph(msg)

	case streamEndMsg:
		return a, a.handleStreamEnd(msg)

	case wheelInitMsg:
		a.lucky.layout(a.contentSize())
		return a, nil

	case wheelFrameMsg:
		return a, a.handleWheelFrame()

	case drawnMsg:
		return a, a.handleDrawn(msg)

	case rankingsLoadedMsg:
		return a, a.handleRankingsLoaded(msg)

	case shareCardMsg:
		return a, a.handleShareCard(msg)

	case shareSavedMsg:
		a.handleShareSaved(msg)
		return a, nil

	case shareCopiedMsg:
		a.handleShareCopied(msg)
		return a, nil

	case effectTickMsg:
		return a, a.handleEffectTick()

	case spinnerTickMsg:
		return a, a.handleSpinnerTick()
	}

	if in := a.pageInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.Quit) {
		a.Close()
		return tea.Quit
	}
	if a.help != nil {
		return a.updateHelp(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.help = NewHelpModal(a.keys)
		return nil
	case key.Matches(msg, a.keys.ToggleSound):
		a.toggleSound()
		return nil
	case key.Matches(msg, a.keys.NextTab):
		return a.afterSwitch(a.tabs.Next())
	case key.Matches(msg, a.keys.PrevTab):
		return a.afterSwitch(a.tabs.Prev())
	case key.Matches(msg, a.keys.GoNumber):
		return a.afterSwitch(a.tabs.SwitchTab(TabNumber))
	case key.Matches(msg, a.keys.GoFortune):
		return a.afterSwitch(a.tabs.SwitchTab(TabFortune))
	case key.Matches(msg, a.keys.GoName):
		return a.afterSwitch(a.tabs.SwitchTab(TabName))
	case key.Matches(msg, a.keys.GoLucky):
		return a.afterSwitch(a.tabs.SwitchTab(TabLucky))
	case key.Matches(msg, a.keys.GoRanking):
		return a.afterSwitch(a.tabs.SwitchTab(TabRanking))
	case key.Matches(msg, a.keys.Share):
		return a.generateShareCard()
	case key.Matches(msg, a.keys.SaveShare):
		return a.saveShareImage()
	case key.Matches(msg, a.keys.CopyShare):
		return a.copyShareImage()
	}
	return a.page().HandleKey(msg)
}

// afterSwitch moves input focus to the new page alongside the tab's own
// side effect.
func (a *App) afterSwitch(enter tea.Cmd) tea.Cmd {
	return tea.Batch(enter, a.focusActive())
}

func (a *App) updateHelp(msg tea.Msg) tea.Cmd {
	closeModal, cmd := a.help.Update(msg)
	if closeModal {
		a.help = nil
	}
	return cmd
}
