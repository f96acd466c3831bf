package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/lucky/internal/luckyapi"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeService counts calls and returns canned results.
type fakeService struct {
	evaluate func(number string) (luckyapi.EvaluationResult, error)
	stream   func(input string) (io.ReadCloser, error)
	draw     func(number string) (luckyapi.DrawResult, error)
	share    func(req luckyapi.ShareCardRequest) (luckyapi.ShareCard, error)
	rankings func() (luckyapi.RankingSnapshot, error)
	addErr   error

	evaluateCalls int
	fortuneCalls  int
	nameCalls     int
	drawCalls     int
	shareCalls    int
	rankingsCalls int
	addCalls      int

	added       []luckyapi.RankingSubmission
	shareKinds  []luckyapi.ShareKind
	streamInput []string
}

func newFakeService() *fakeService {
	return &fakeService{
		evaluate: func(string) (luckyapi.EvaluationResult, error) {
			return luckyapi.EvaluationResult{Price: luckyapi.NumberAmount("3888"), Level: "吉祥", Suggestion: "好号码"}, nil
		},
		stream: func(input string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("你好，" + input + "\n再见")), nil
		},
		draw: func(string) (luckyapi.DrawResult, error) {
			return luckyapi.DrawResult{Prize: "一等奖", Message: "恭喜", Score: 80}, nil
		},
		share: func(luckyapi.ShareCardRequest) (luckyapi.ShareCard, error) {
			return luckyapi.ShareCard{Image: "data:image/png;base64,aGVsbG8="}, nil
		},
		rankings: func() (luckyapi.RankingSnapshot, error) {
			return luckyapi.RankingSnapshot{
				TopNumbers: []luckyapi.RankingEntry{{Number: "1234", Price: luckyapi.NumberAmount("88"), Level: "A", Timestamp: "t1"}},
			}, nil
		},
	}
}

func (s *fakeService) Evaluate(_ context.Context, number string) (luckyapi.EvaluationResult, error) {
	s.evaluateCalls++
	return s.evaluate(number)
}

func (s *fakeService) Fortune(_ context.Context, birthdate string) (io.ReadCloser, error) {
	s.fortuneCalls++
	s.streamInput = append(s.streamInput, birthdate)
	return s.stream(birthdate)
}

func (s *fakeService) NameAnalysis(_ context.Context, name string) (io.ReadCloser, error) {
	s.nameCalls++
	s.streamInput = append(s.streamInput, name)
	return s.stream(name)
}

func (s *fakeService) LuckyDraw(_ context.Context, number string) (luckyapi.DrawResult, error) {
	s.drawCalls++
	return s.draw(number)
}

func (s *fakeService) GenerateShareCard(_ context.Context, req luckyapi.ShareCardRequest) (luckyapi.ShareCard, error) {
	s.shareCalls++
	s.shareKinds = append(s.shareKinds, req.Type)
	return s.share(req)
}

func (s *fakeService) Rankings(context.Context) (luckyapi.RankingSnapshot, error) {
	s.rankingsCalls++
	return s.rankings()
}

func (s *fakeService) AddToRanking(_ context.Context, sub luckyapi.RankingSubmission) error {
	s.addCalls++
	s.added = append(s.added, sub)
	return s.addErr
}

func newTestApp(t *testing.T, svc Service) (*App, *bytes.Buffer) {
	t.Helper()
	bell := &bytes.Buffer{}
	a := NewApp(svc, Options{
		WheelSettle:   time.Millisecond,
		FrameInterval: time.Millisecond,
		SoundEnabled:  true,
		ShareDir:      t.TempDir(),
		Bell:          bell,
	})
	a.width, a.height = 100, 40
	t.Cleanup(a.Close)
	return a, bell
}

// appMsg reports whether msg belongs to the client. Cursor blinks and other
// component housekeeping are dropped so drain terminates.
func appMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case panicMsg, evaluatedMsg, rankingSubmittedMsg,
		streamOpenedMsg, glyphMsg, streamEndMsg,
		wheelInitMsg, wheelFrameMsg, drawnMsg,
		rankingsLoadedMsg, shareCardMsg, shareSavedMsg, shareCopiedMsg,
		effectTickMsg, spinnerTickMsg:
		return true
	}
	return false
}

// drain runs cmd and every command it produces until nothing is left.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 10000 {
			t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			if !appMsg(msg) {
				continue
			}
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

func activeCounts(els *Elements) (panels, controls int) {
	for _, tab := range tabOrder {
		if els.Get(tabPanels[tab]).Active {
			panels++
		}
		if els.Get(tabControlID(tab)).Active {
			controls++
		}
	}
	return panels, controls
}

func TestSwitchTab_ExactlyOneActive(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, newFakeService())
	els := a.state.Elements

	for _, target := range append(append([]string{}, tabOrder...), "bogus", "") {
		a.tabs.SwitchTab(target)

		panels, controls := activeCounts(els)
		if panels != 1 || controls != 1 {
			t.Fatalf("SwitchTab(%q): %d panels, %d controls active", target, panels, controls)
		}
		want := target
		if _, ok := tabPanels[target]; !ok {
			want = TabNumber
		}
		if got := a.tabs.Active(); got != want {
			t.Fatalf("SwitchTab(%q) active = %q, want %q", target, got, want)
		}
		if !els.Get(tabPanels[want]).Active {
			t.Fatalf("SwitchTab(%q) did not mark panel %s", target, tabPanels[want])
		}
	}
}

func TestNewApp_StartsOnNumber(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, newFakeService())
	if got := a.tabs.Active(); got != TabNumber {
		t.Fatalf("initial tab = %q, want number", got)
	}
	panels, controls := activeCounts(a.state.Elements)
	if panels != 1 || controls != 1 {
		t.Fatalf("initial active = %d/%d, want 1/1", panels, controls)
	}
}

func TestSwitchTab_RankingReloadsOnEveryEntry(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	a, _ := newTestApp(t, svc)

	drain(t, a, a.tabs.SwitchTab(TabRanking))
	drain(t, a, a.tabs.SwitchTab(TabRanking))

	if svc.rankingsCalls != 2 {
		t.Fatalf("rankings calls = %d, want 2", svc.rankingsCalls)
	}
	if !a.state.RankingLoaded || len(a.state.Ranking.TopNumbers) != 1 {
		t.Fatalf("snapshot not stored: %+v", a.state.Ranking)
	}
}

func TestSwitchTab_LuckyLaysOutWheel(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, newFakeService())
	drain(t, a, a.tabs.SwitchTab(TabLucky))
	if !a.lucky.ready || a.lucky.radius < 3 {
		t.Fatalf("wheel not laid out: ready=%v radius=%d", a.lucky.ready, a.lucky.radius)
	}
	if !strings.Contains(a.View(), "特等奖") {
		t.Fatal("legend missing from lucky view")
	}
}

func TestSwitchTab_ClearsShareImage(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, newFakeService())
	a.state.ShareImage = "data:image/png;base64,AA=="
	a.tabs.SwitchTab(TabFortune)
	if a.state.ShareImage != "" {
		t.Fatal("share image survived navigation")
	}
}

func TestElements_QueryOncePerID(t *testing.T) {
	t.Parallel()

	calls := map[string]int{}
	els := NewElements(func(id string) *Element {
		calls[id]++
		return &Element{ID: id}
	})

	first := els.Get("price")
	for range 3 {
		if els.Get("price") != first {
			t.Fatal("Get returned a different handle")
		}
	}
	els.Get("level")

	if calls["price"] != 1 || calls["level"] != 1 {
		t.Fatalf("queries = %v, want one each", calls)
	}
	if els.Queries() != 2 {
		t.Fatalf("Queries() = %d, want 2", els.Queries())
	}
}

func TestQuit_ClosesStreams(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, newFakeService())
	closed := false
	a.streams["fortune-text"] = &textStream{body: closeFunc(func() { closed = true })}

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if !closed || len(a.streams) != 0 {
		t.Fatal("open stream not closed on quit")
	}
	if !errors.Is(a.ctx.Err(), context.Canceled) {
		t.Fatal("app context not cancelled")
	}
}

type closeFunc func()

func (f closeFunc) Read([]byte) (int, error) { return 0, io.EOF }
func (f closeFunc) Close() error             { f(); return nil }
