package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
	"github.com/tinytelemetry/lucky/internal/ranking"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rankingPage shows the leaderboard with a top and a recent view.
type rankingPage struct {
	app      *App
	view     ranking.View
	viewport viewport.Model
}

func newRankingPage(a *App) *rankingPage {
	return &rankingPage{app: a, viewport: viewport.New(80, 10)}
}

func (p *rankingPage) ID() string { return TabRanking }

func (p *rankingPage) HandleKey(msg tea.KeyMsg) tea.Cmd {
	keys := p.app.keys
	switch {
	case key.Matches(msg, keys.Submit), key.Matches(msg, keys.Reload):
		return p.app.loadRankings()
	case key.Matches(msg, keys.TopView):
		p.view = ranking.Top
		p.viewport.GotoTop()
	case key.Matches(msg, keys.RecentView):
		p.view = ranking.Recent
		p.viewport.GotoTop()
	case key.Matches(msg, keys.ScrollUp):
		p.viewport.ScrollUp(1)
	case key.Matches(msg, keys.ScrollDown):
		p.viewport.ScrollDown(1)
	}
	return nil
}

func (p *rankingPage) View(width, height int) string {
	els := p.app.state.Elements
	var b strings.Builder
	b.WriteString(p.renderViewSwitch())
	b.WriteString("  ")
	b.WriteString(els.Get("ranking-btn").RenderButton())
	b.WriteString("\n")
	if status := els.Get("ranking-status"); !status.Hidden {
		b.WriteString(status.Render())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	p.viewport.Width = max(width-2, 20)
	p.viewport.Height = max(height-4, 3)
	p.viewport.SetContent(renderRankingTable(p.app.state.Ranking, p.view))
	b.WriteString(p.viewport.View())
	return b.String()
}

func (p *rankingPage) renderViewSwitch() string {
	parts := make([]string, 0, 2)
	for _, v := range []ranking.View{ranking.Top, ranking.Recent} {
		if v == p.view {
			parts = append(parts, activeTabStyle.Render(v.String()))
		} else {
			parts = append(parts, tabStyle.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderRankingTable formats one view of the snapshot.
func renderRankingTable(snap luckyapi.RankingSnapshot, v ranking.View) string {
	rows := ranking.Rows(snap, v)
	if len(rows) == 0 {
		return helpStyle.Render(ranking.EmptyPlaceholder)
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		rank := lipgloss.NewStyle().Width(4).Render(r.Label())
		price := lipgloss.NewStyle().Width(10).Foreground(ColorGold).Render(r.Price)
		level := lipgloss.NewStyle().Width(8).Render(r.Level)
		lines = append(lines, fmt.Sprintf("%s %s %s %s %s", rank, r.Masked, price, level, labelStyle.Render(r.Timestamp)))
	}
	return strings.Join(lines, "\n")
}

// rankingsLoadedMsg carries a fresh snapshot.
type rankingsLoadedMsg struct {
	snapshot luckyapi.RankingSnapshot
	err      error
}

func (rankingsLoadedMsg) buttonID() string { return "ranking-btn" }

// loadRankings fetches the leaderboard. It runs on every entry to the
// ranking tab.
func (a *App) loadRankings() tea.Cmd {
	if !a.begin("ranking-btn", "加载中...") {
		return nil
	}
	a.state.Elements.Get("ranking-status").Hidden = true
	ctx, service := a.ctx, a.service
	return tea.Batch(guard("ranking-btn", func() tea.Msg {
		snap, err := service.Rankings(ctx)
		return rankingsLoadedMsg{snapshot: snap, err: err}
	}), a.startSpinner())
}

func (a *App) handleRankingsLoaded(msg rankingsLoadedMsg) tea.Cmd {
	if msg.err != nil {
		log.Printf("tui: rankings: %v", msg.err)
		a.state.Elements.Get("ranking-status").SetError(failureText(msg.err, msgRankingUnavailable))
		return nil
	}
	a.state.Ranking = msg.snapshot
	a.state.RankingLoaded = true
	return nil
}
