package tui

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
	"github.com/tinytelemetry/lucky/internal/stubserver"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedRoll int

func (r fixedRoll) IntN(int) int { return int(r) }

// newStubApp wires the client to an in-process fixture server.
func newStubApp(t *testing.T) (*App, stubserver.Fixtures) {
	t.Helper()
	fx := stubserver.DefaultFixtures()
	stub := stubserver.NewServer("", fx, stubserver.Options{ChunkSize: 2}, fixedRoll(0))
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	client := luckyapi.NewClient(srv.Client(), srv.URL, 5*time.Second)
	a, _ := newTestApp(t, client)
	return a, fx
}

func TestStub_EvaluateThenRanking(t *testing.T) {
	t.Parallel()

	a, _ := newStubApp(t)
	a.number.input.SetValue("8888")
	drain(t, a, a.evaluate())

	if got := a.state.Elements.Get("price").Text; got != "¥ 9888元" {
		t.Fatalf("price = %q", got)
	}

	drain(t, a, a.tabs.SwitchTab(TabRanking))

	top := a.state.Ranking.TopNumbers
	if len(top) != 1 || top[0].Number != "8888" || top[0].Level != "至尊" {
		t.Fatalf("top numbers = %+v", top)
	}
	if len(a.state.Ranking.RecentEvaluations) != 1 {
		t.Fatalf("recent = %+v", a.state.Ranking.RecentEvaluations)
	}
}

func TestStub_InvalidNumberFromServer(t *testing.T) {
	t.Parallel()

	a, _ := newStubApp(t)
	a.number.input.SetValue("0000")
	drain(t, a, a.evaluate())

	if sug := a.state.Elements.Get("suggestion"); sug.Text != "无效号码" || !sug.Error {
		t.Fatalf("suggestion = %q (error=%v)", sug.Text, sug.Error)
	}
}

func TestStub_FortuneStreamsWholeText(t *testing.T) {
	t.Parallel()

	a, fx := newStubApp(t)
	a.fortune.input.SetValue("1990-01-01")
	drain(t, a, a.fortune.start())

	if got := a.state.Elements.Get("fortune-text").Text; got != fx.Fortune {
		t.Fatalf("fortune = %q, want %q", got, fx.Fortune)
	}
}

func TestStub_SpinAndShare(t *testing.T) {
	t.Parallel()

	a, _ := newStubApp(t)
	a.tabs.SwitchTab(TabLucky)
	a.lucky.input.SetValue("1234")
	drain(t, a, a.spin())

	if a.state.LastDraw == nil || a.state.LastDraw.Prize != "特等奖" || a.state.LastLuckyScore != 100 {
		t.Fatalf("last draw = %+v", a.state.LastDraw)
	}

	drain(t, a, a.generateShareCard())
	if _, _, err := decodeDataURI(a.state.ShareImage); err != nil {
		t.Fatalf("share image: %v", err)
	}
}
