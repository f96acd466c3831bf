package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

var helpSections = []string{"切换页面", "操作", "排行榜", "其他"}

// renderHelpModal renders the help modal using the provided viewport.
func renderHelpModal(vp *viewport.Model, keys KeyMap, width, height int) string {
	modalWidth := max(width-8, 30)
	modalHeight := max(height-4, 10)

	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(renderHelpContent(keys))

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorGold).
		Bold(true).
		Render("幸运号码 · 帮助")

	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render("↑/↓: Scroll | PgUp/PgDn: Page | F1/ESC: Close")

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPurple).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

// renderHelpContent lists every binding, grouped.
func renderHelpContent(keys KeyMap) string {
	var b strings.Builder
	for i, group := range keys.helpGroups() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(helpSections[i]))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("号码与抽奖需要4位数字手机尾号；算命需要出生日期；姓名至少2个字。"))
	return b.String()
}
