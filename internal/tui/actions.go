package tui

import (
	"fmt"
	"log"

	"github.com/tinytelemetry/lucky/internal/luckyapi"

	tea "github.com/charmbracelet/bubbletea"
)

// Generic fallbacks shown when the server gives no usable message.
const (
	msgEvaluateUnavailable = "评估服务暂时不可用，请稍后再试。"
	msgFortuneUnavailable  = "服务暂时迷失在星辰中，请稍后再试。"
	msgNameUnavailable     = "姓名分析服务暂时不可用，请稍后再试。"
	msgDrawUnavailable     = "抽奖服务暂时不可用，请稍后再试。"
	msgShareUnavailable    = "分享卡生成失败，请稍后再试。"
	msgRankingUnavailable  = "排行榜加载失败，请稍后再试。"
)

// completion is implemented by every message that ends a busy action. The
// control it names is restored before the message is handled, whatever the
// outcome.
type completion interface {
	buttonID() string
}

// panicMsg reports a command that panicked; it still releases its control.
type panicMsg struct {
	btn string
	err error
}

func (m panicMsg) buttonID() string { return m.btn }

// begin disables the control and swaps in its working label. It returns
// false when the control is already busy.
func (a *App) begin(btnID, working string) bool {
	el := a.state.Elements.Get(btnID)
	if el.Disabled {
		return false
	}
	a.state.busyLabels[btnID] = el.Text
	el.Disabled = true
	el.Text = working
	return true
}

// finish restores the control's original label and enabled state.
func (a *App) finish(btnID string) {
	el := a.state.Elements.Get(btnID)
	if label, ok := a.state.busyLabels[btnID]; ok {
		el.Text = label
		delete(a.state.busyLabels, btnID)
	}
	el.Disabled = false
}

// busy reports whether any control is waiting on a request.
func (a *App) busy() bool { return len(a.state.busyLabels) > 0 }

// guard runs fn as a command. A panic becomes a panicMsg so the control
// named by btnID is always released.
func guard(btnID string, fn func() tea.Msg) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = panicMsg{btn: btnID, err: fmt.Errorf("%s: panic: %v", btnID, r)}
			}
		}()
		return fn()
	}
}

// failureText picks the message shown for a failed request: the server's
// own message for HTTP errors that carry one, the fallback otherwise.
func failureText(err error, fallback string) string {
	if msg, ok := luckyapi.ServerMessage(err); ok {
		return msg
	}
	return fallback
}

// handlePanic logs the panic and surfaces the fallback for the control's
// page.
func (a *App) handlePanic(msg panicMsg) tea.Cmd {
	log.Printf("tui: %v", msg.err)
	switch msg.btn {
	case "evaluate-btn":
		a.state.Elements.Get("result").Hidden = false
		a.state.Elements.Get("suggestion").SetError(msgEvaluateUnavailable)
	case "fortune-btn":
		a.dropStream(a.fortune.spec.textID)
		a.fortune.fail(msgFortuneUnavailable)
	case "name-btn":
		a.dropStream(a.name.spec.textID)
		a.name.fail(msgNameUnavailable)
	case "spin-btn":
		a.state.Spinning = false
		a.state.Elements.Get("draw-result").SetError(msgDrawUnavailable)
	case "share-btn":
		a.state.Elements.Get("share-status").SetError(msgShareUnavailable)
	case "ranking-btn":
		a.state.Elements.Get("ranking-status").SetError(msgRankingUnavailable)
	}
	return nil
}

// evaluationHook runs after a successful evaluation, in registration order.
type evaluationHook func(a *App, ev evaluation) tea.Cmd

// drawHook runs after a lucky draw result is revealed.
type drawHook func(a *App, res luckyapi.DrawResult) tea.Cmd

func (a *App) runEvaluationHooks(ev evaluation) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.afterEvaluate))
	for _, h := range a.afterEvaluate {
		cmds = append(cmds, h(a, ev))
	}
	return tea.Batch(cmds...)
}

func (a *App) runDrawHooks(res luckyapi.DrawResult) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.afterDraw))
	for _, h := range a.afterDraw {
		cmds = append(cmds, h(a, res))
	}
	return tea.Batch(cmds...)
}

// rankingSubmittedMsg reports the outcome of the fire-and-forget submit.
type rankingSubmittedMsg struct{ err error }

// submitToRanking posts the evaluation to the leaderboard. Failures are
// logged only.
func submitToRanking(a *App, ev evaluation) tea.Cmd {
	ctx, service := a.ctx, a.service
	sub := luckyapi.RankingSubmission{Number: ev.Number, Price: ev.Result.Price, Level: ev.Result.Level}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = rankingSubmittedMsg{err: fmt.Errorf("add_to_ranking: panic: %v", r)}
			}
		}()
		return rankingSubmittedMsg{err: service.AddToRanking(ctx, sub)}
	}
}

func evaluationCue(a *App, _ evaluation) tea.Cmd {
	return a.effects.cue(a.state.SoundEnabled, cueSuccess)
}

func revealEvaluation(a *App, _ evaluation) tea.Cmd {
	a.state.Elements.Get("result").Reveal = revealFrames
	return a.effects.start()
}

func rememberScore(a *App, res luckyapi.DrawResult) tea.Cmd {
	a.state.LastLuckyScore = res.Score
	return nil
}

// celebrateDraw plays the cue and confetti for every prize but the
// consolation one.
func celebrateDraw(a *App, res luckyapi.DrawResult) tea.Cmd {
	if !isWinningPrize(res.Prize) {
		return nil
	}
	a.effects.confetti(a.width)
	return tea.Batch(a.effects.cue(a.state.SoundEnabled, cueWin), a.effects.start())
}
