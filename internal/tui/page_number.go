package tui

import (
	"log"
	"strings"

	"github.com/tinytelemetry/lucky/internal/luckyapi"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type numberPage struct {
	app   *App
	input textinput.Model
}

func newNumberPage(a *App) *numberPage {
	return &numberPage{
		app:   a,
		input: newInput("手机尾号 ", "4位数字", luckyapi.NumberLength),
	}
}

func (p *numberPage) ID() string { return TabNumber }

func (p *numberPage) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, p.app.keys.Submit) {
		return p.app.evaluate()
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if clean := luckyapi.SanitizeNumberInput(p.input.Value()); clean != p.input.Value() {
		p.input.SetValue(clean)
	}
	return cmd
}

func (p *numberPage) View(width, _ int) string {
	els := p.app.state.Elements
	var b strings.Builder
	b.WriteString(titleStyle.Render("手机尾号价格评估"))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("  ")
	b.WriteString(els.Get("evaluate-btn").RenderButton())
	b.WriteString("\n\n")

	result := els.Get("result")
	if result.Hidden {
		return b.String()
	}
	lines := []string{
		labelStyle.Render("估价  ") + els.Get("price").Render(),
		labelStyle.Render("等级  ") + els.Get("level").Render(),
		renderTextBlock(els.Get("suggestion"), max(width-8, 10)),
	}
	style := resultStyle
	if result.Reveal > 0 {
		style = revealStyle
	}
	b.WriteString(style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return b.String()
}

// evaluatedMsg carries the /evaluate outcome.
type evaluatedMsg struct {
	number string
	result luckyapi.EvaluationResult
	err    error
}

func (evaluatedMsg) buttonID() string { return "evaluate-btn" }

// resetEvaluation puts the result fields back to their placeholders.
func resetEvaluation(els *Elements) {
	for _, id := range []string{"price", "level", "suggestion"} {
		els.Get(id).SetText("-")
	}
}

// evaluate validates the number and starts the request.
func (a *App) evaluate() tea.Cmd {
	els := a.state.Elements
	if els.Get("evaluate-btn").Disabled {
		return nil
	}
	number := a.number.input.Value()
	resetEvaluation(els)

	if err := luckyapi.ValidateNumber(number); err != nil {
		els.Get("result").Hidden = false
		els.Get("suggestion").SetError(err.Error())
		return nil
	}

	a.begin("evaluate-btn", "评估中...")
	els.Get("result").Hidden = true

	ctx, service := a.ctx, a.service
	return tea.Batch(guard("evaluate-btn", func() tea.Msg {
		res, err := service.Evaluate(ctx, number)
		return evaluatedMsg{number: number, result: res, err: err}
	}), a.startSpinner())
}

func (a *App) handleEvaluated(msg evaluatedMsg) tea.Cmd {
	els := a.state.Elements
	els.Get("result").Hidden = false
	if msg.err != nil {
		log.Printf("tui: evaluate %s: %v", msg.number, msg.err)
		els.Get("suggestion").SetError(failureText(msg.err, msgEvaluateUnavailable))
		return nil
	}

	els.Get("price").SetText("¥ " + msg.result.Price.String())
	els.Get("level").SetText(msg.result.Level)
	els.Get("suggestion").SetText(msg.result.Suggestion)

	ev := evaluation{Number: msg.number, Result: msg.result}
	a.state.LastEvaluation = &ev
	return a.runEvaluationHooks(ev)
}
