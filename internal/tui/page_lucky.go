package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
	"github.com/tinytelemetry/lucky/internal/wheel"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// spinLaps is how many full turns the pointer makes after the result
// arrives before it stops on the prize.
const spinLaps = 2

// luckyPage draws the prize wheel, its odds legend, and the spin result.
type luckyPage struct {
	app   *App
	input textinput.Model

	ready   bool // wheel laid out after the settle delay
	radius  int
	legend  string
	pointer int // highlighted sector, -1 for none

	pending   *luckyapi.DrawResult
	stepsLeft int
	stepsAll  int
}

func newLuckyPage(a *App) *luckyPage {
	return &luckyPage{
		app:     a,
		input:   newInput("手机尾号 ", "4位数字", luckyapi.NumberLength),
		pointer: -1,
	}
}

func (p *luckyPage) ID() string { return TabLucky }

func (p *luckyPage) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, p.app.keys.Submit) {
		return p.app.spin()
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if clean := luckyapi.SanitizeNumberInput(p.input.Value()); clean != p.input.Value() {
		p.input.SetValue(clean)
	}
	return cmd
}

func (p *luckyPage) View(width, _ int) string {
	els := p.app.state.Elements
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("  ")
	b.WriteString(els.Get("spin-btn").RenderButton())
	b.WriteString("\n\n")

	if !p.ready {
		b.WriteString(helpStyle.Render("转盘准备中..."))
		return b.String()
	}
	disc := wheel.Render(p.radius, p.pointer)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, disc, "  ", p.legend))

	if res := els.Get("draw-result"); !res.Hidden {
		b.WriteString("\n\n")
		b.WriteString(resultStyle.Render(renderTextBlock(res, max(width-8, 10))))
	}
	return b.String()
}

// layout sizes the wheel to the window and redraws the legend.
func (p *luckyPage) layout(width, height int) {
	p.radius = max(min((height-10)/2, width/6, 10), 3)
	p.legend = renderPrizeLegend(p.radius * 2)
	p.ready = true
}

// renderPrizeLegend charts each prize's weight beside its name.
func renderPrizeLegend(height int) string {
	prizes := wheel.Prizes()
	bc := barchart.New(len(prizes)*3, max(height-len(prizes)-1, 4),
		barchart.WithBarGap(1),
		barchart.WithBarWidth(2),
		barchart.WithNoAxis(),
	)
	lines := make([]string, 0, len(prizes))
	for _, pr := range prizes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(pr.Color)).Background(lipgloss.Color(pr.Color))
		bc.Push(barchart.BarData{
			Values: []barchart.BarValue{
				{Name: pr.Name, Value: float64(pr.Weight), Style: style},
			},
		})
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(pr.Color)).Render("■")
		lines = append(lines, fmt.Sprintf("%s %s %s %3d%%", swatch, wheel.Emoji(pr.Name), pr.Name, pr.Weight))
	}
	bc.Draw()
	return lipgloss.JoinVertical(lipgloss.Left, bc.View(), strings.Join(lines, "\n"))
}

type wheelInitMsg struct{}

type wheelFrameMsg struct{}

// drawnMsg carries the /lucky_draw outcome. The control is released when
// it arrives; the wheel keeps turning until it settles.
type drawnMsg struct {
	result luckyapi.DrawResult
	err    error
}

func (drawnMsg) buttonID() string { return "spin-btn" }

// scheduleWheelInit lays the wheel out once the window has settled.
func (a *App) scheduleWheelInit() tea.Cmd {
	a.lucky.ready = false
	return tea.Tick(a.opts.WheelSettle, func(time.Time) tea.Msg { return wheelInitMsg{} })
}

// spin validates the number and starts the draw.
func (a *App) spin() tea.Cmd {
	els := a.state.Elements
	if a.state.Spinning || els.Get("spin-btn").Disabled {
		return nil
	}
	number := a.lucky.input.Value()
	if err := luckyapi.ValidateNumber(number); err != nil {
		els.Get("draw-result").SetError(err.Error())
		return nil
	}

	a.begin("spin-btn", "抽奖中...")
	a.state.Spinning = true
	a.lucky.pending = nil
	els.Get("draw-result").Hidden = true

	ctx, service := a.ctx, a.service
	return tea.Batch(guard("spin-btn", func() tea.Msg {
		res, err := service.LuckyDraw(ctx, number)
		return drawnMsg{result: res, err: err}
	}), a.wheelFrame(a.opts.FrameInterval), a.startSpinner())
}

func (a *App) wheelFrame(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return wheelFrameMsg{} })
}

func (a *App) handleDrawn(msg drawnMsg) tea.Cmd {
	p := a.lucky
	if msg.err != nil {
		log.Printf("tui: lucky draw: %v", msg.err)
		a.state.Spinning = false
		p.pointer = -1
		a.state.Elements.Get("draw-result").SetError(failureText(msg.err, msgDrawUnavailable))
		return nil
	}

	res := msg.result
	p.pending = &res
	n := len(wheel.Prizes())
	target := wheel.IndexOf(res.Prize)
	if target < 0 {
		p.stepsLeft = 0
	} else {
		p.stepsLeft = spinLaps*n + (target-p.pointer+n)%n
	}
	p.stepsAll = p.stepsLeft
	return nil
}

// handleWheelFrame advances the pointer. Once the result is known the
// pointer slows down and stops on the prize's sector.
func (a *App) handleWheelFrame() tea.Cmd {
	p := a.lucky
	if !a.state.Spinning {
		return nil
	}
	n := len(wheel.Prizes())
	if p.pending == nil {
		p.pointer = (p.pointer + 1) % n
		return a.wheelFrame(a.opts.FrameInterval)
	}
	if p.stepsLeft > 0 {
		p.pointer = (p.pointer + 1) % n
		p.stepsLeft--
		done := p.stepsAll - p.stepsLeft
		return a.wheelFrame(a.opts.FrameInterval * time.Duration(1+done/n))
	}
	return a.settleDraw()
}

// settleDraw shows the result and runs the draw hooks.
func (a *App) settleDraw() tea.Cmd {
	p := a.lucky
	res := *p.pending
	p.pending = nil
	a.state.Spinning = false
	p.pointer = wheel.IndexOf(res.Prize)
	a.state.LastDraw = &res

	el := a.state.Elements.Get("draw-result")
	el.SetText(fmt.Sprintf("%s %s\n%s\n积分：%d", wheel.Emoji(res.Prize), res.Prize, res.Message, res.Score))
	el.Hidden = false
	return a.runDrawHooks(res)
}

func isWinningPrize(name string) bool { return name != wheel.ConsolationPrize }
