package tui

import (
	"context"
	"io"
	"time"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
	"github.com/tinytelemetry/lucky/internal/typewriter"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Service is the request layer the client drives. *luckyapi.Client
// implements it.
type Service interface {
	Evaluate(ctx context.Context, number string) (luckyapi.EvaluationResult, error)
	Fortune(ctx context.Context, birthdate string) (io.ReadCloser, error)
	NameAnalysis(ctx context.Context, name string) (io.ReadCloser, error)
	LuckyDraw(ctx context.Context, number string) (luckyapi.DrawResult, error)
	GenerateShareCard(ctx context.Context, req luckyapi.ShareCardRequest) (luckyapi.ShareCard, error)
	Rankings(ctx context.Context) (luckyapi.RankingSnapshot, error)
	AddToRanking(ctx context.Context, sub luckyapi.RankingSubmission) error
}

// Options configures pacing and side outputs.
type Options struct {
	FortuneDelay  time.Duration // per-character delay for fortune text
	NameDelay     time.Duration // per-character delay for name analysis
	WheelSettle   time.Duration // wait before drawing the wheel on tab entry
	FrameInterval time.Duration // animation and spinner frame rate
	SoundEnabled  bool
	ShareDir      string
	Bell          io.Writer // receives the terminal bell; nil disables sound output
	Clipboard     func(string) error
}

// DefaultOptions returns the stock pacing.
func DefaultOptions() Options {
	return Options{
		FortuneDelay:  typewriter.FortuneDelay,
		NameDelay:     typewriter.NameDelay,
		WheelSettle:   100 * time.Millisecond,
		FrameInterval: 60 * time.Millisecond,
		SoundEnabled:  true,
		ShareDir:      ".",
	}
}

// evaluation pairs a submitted number with the server's verdict.
type evaluation struct {
	Number string
	Result luckyapi.EvaluationResult
}

// AppState is the client's mutable state. Only App.Update touches it.
type AppState struct {
	Elements *Elements

	SoundEnabled   bool
	LastEvaluation *evaluation
	LastDraw       *luckyapi.DrawResult
	LastLuckyScore int
	Spinning       bool
	Ranking        luckyapi.RankingSnapshot
	RankingLoaded  bool
	ShareImage     string

	// busyLabels remembers each disabled control's original label.
	busyLabels map[string]string
}

func newAppState(soundEnabled bool) *AppState {
	return &AppState{
		Elements:     NewElements(queryLayout),
		SoundEnabled: soundEnabled,
		busyLabels:   make(map[string]string),
	}
}

// App is the top-level Bubble Tea model: the tab coordinator, five pages,
// the action handlers, and the decorative effects share one AppState.
type App struct {
	state   *AppState
	service Service
	opts    Options
	keys    KeyMap
	tabs    *Tabs

	number  *numberPage
	fortune *streamPage
	name    *streamPage
	lucky   *luckyPage
	ranking *rankingPage

	effects *Effects
	help    *HelpModal
	streams map[string]*textStream

	spinnerRunning bool
	spinnerFrame   int

	afterEvaluate []evaluationHook
	afterDraw     []drawHook

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewApp wires the client. Call Close when the program exits.
func NewApp(service Service, opts Options) *App {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultOptions().FrameInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		state:   newAppState(opts.SoundEnabled),
		service: service,
		opts:    opts,
		keys:    DefaultKeyMap(),
		streams: make(map[string]*textStream),
		ctx:     ctx,
		cancel:  cancel,
	}
	a.effects = newEffects(opts.Bell, opts.FrameInterval)

	a.number = newNumberPage(a)
	a.fortune = newStreamPage(a, streamSpec{
		panel:       panelFortune,
		resultID:    "fortune-result",
		textID:      "fortune-text",
		buttonID:    "fortune-btn",
		working:     "算命中...",
		placeholder: "出生日期，如 1990/01/01",
		prompt:      "出生日期 ",
		fallback:    msgFortuneUnavailable,
		validate:    luckyapi.ValidateBirthdate,
		open:        service.Fortune,
		delay:       opts.FortuneDelay,
	})
	a.name = newStreamPage(a, streamSpec{
		panel:       panelName,
		resultID:    "name-result",
		textID:      "name-text",
		buttonID:    "name-btn",
		working:     "分析中...",
		placeholder: "请输入姓名",
		prompt:      "姓名 ",
		fallback:    msgNameUnavailable,
		validate:    luckyapi.ValidateName,
		open:        service.NameAnalysis,
		delay:       opts.NameDelay,
	})
	a.lucky = newLuckyPage(a)
	a.ranking = newRankingPage(a)

	a.tabs = NewTabs(a.state.Elements, map[string]func() tea.Cmd{
		TabLucky:   a.scheduleWheelInit,
		TabRanking: a.loadRankings,
	})
	a.tabs.onSwitch = a.onTabSwitch

	a.afterEvaluate = []evaluationHook{submitToRanking, evaluationCue, revealEvaluation}
	a.afterDraw = []drawHook{rememberScore, celebrateDraw}

	return a
}

// State exposes the shared state for inspection.
func (a *App) State() *AppState { return a.state }

// Init focuses the first page's input.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.focusActive())
}

// Close cancels outstanding requests and releases open streams.
func (a *App) Close() {
	a.cancel()
	for id, s := range a.streams {
		s.close()
		delete(a.streams, id)
	}
}

// onTabSwitch runs on every tab change: the cached share image belongs to
// the page it was made on.
func (a *App) onTabSwitch() {
	a.state.ShareImage = ""
	a.state.Elements.Get("share-status").Hidden = true
}

// pageInput returns the text input of the active page, if it has one.
func (a *App) pageInput() *textinput.Model {
	switch a.tabs.Active() {
	case TabNumber:
		return &a.number.input
	case TabFortune:
		return &a.fortune.input
	case TabName:
		return &a.name.input
	case TabLucky:
		return &a.lucky.input
	}
	return nil
}

func (a *App) focusActive() tea.Cmd {
	for _, in := range []*textinput.Model{&a.number.input, &a.fortune.input, &a.name.input, &a.lucky.input} {
		in.Blur()
	}
	if in := a.pageInput(); in != nil {
		return in.Focus()
	}
	return nil
}
