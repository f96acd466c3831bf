package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 40
	minHeight = 16
)

// contentSize returns the space inside the panel border, below the tab bar
// and above the status line.
func (a *App) contentSize() (width, height int) {
	width = max(a.width-4, 20)
	height = max(a.height-6, 8)
	if len(a.effects.particles) > 0 {
		height = max(height-confettiRows, 8)
	}
	return width, height
}

// View renders the client.
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "正在加载..."
	}
	if a.help != nil {
		return a.help.View(a.width, a.height)
	}
	if a.width < minWidth || a.height < minHeight {
		return "终端窗口太小，请调整到至少 40x16。"
	}

	width, height := a.contentSize()
	sections := []string{a.tabs.renderTabBar()}
	if confetti := a.effects.renderConfetti(a.width); confetti != "" {
		sections = append(sections, confetti)
	}
	body := a.page().View(width, height)
	if share := a.state.Elements.Get("share-status"); !share.Hidden {
		body += "\n\n" + share.Render()
	}
	sections = append(sections,
		panelStyle.Width(a.width-2).Height(height).Render(body),
		a.renderStatusLine(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusLine shows the busy indicator, the sound flag, and key hints.
func (a *App) renderStatusLine() string {
	parts := make([]string, 0, 4)
	if busy := a.renderBusyIndicator(); busy != "" {
		parts = append(parts, busy)
	}
	if a.state.SoundEnabled {
		parts = append(parts, "🔔 音效开")
	} else {
		parts = append(parts, "🔕 音效关")
	}
	if a.state.LastLuckyScore > 0 {
		parts = append(parts, "积分 "+strconv.Itoa(a.state.LastLuckyScore))
	}
	parts = append(parts, helpStyle.Render("tab 切换 · enter 提交 · ctrl+g 分享 · f1 帮助 · ctrl+q 退出"))
	return statusStyle.Width(a.width).Render(strings.Join(parts, "  "))
}
