package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
)

func TestShare_NeedsAResult(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	a, _ := newTestApp(t, svc)

	drain(t, a, a.generateShareCard())

	if svc.shareCalls != 0 {
		t.Fatal("share requested without an evaluation")
	}
	if el := a.state.Elements.Get("share-status"); !el.Error || el.Hidden {
		t.Fatalf("share status = %+v", *el)
	}
}

func TestShare_KindFollowsPage(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	a, _ := newTestApp(t, svc)

	a.number.input.SetValue("1234")
	drain(t, a, a.evaluate())
	drain(t, a, a.generateShareCard())

	a.tabs.SwitchTab(TabLucky)
	a.lucky.input.SetValue("1234")
	drain(t, a, a.spin())
	drain(t, a, a.generateShareCard())

	want := []luckyapi.ShareKind{luckyapi.ShareNumber, luckyapi.ShareLucky}
	if len(svc.shareKinds) != 2 || svc.shareKinds[0] != want[0] || svc.shareKinds[1] != want[1] {
		t.Fatalf("share kinds = %v, want %v", svc.shareKinds, want)
	}
	if a.state.ShareImage == "" {
		t.Fatal("share image not cached")
	}
}

func TestShare_SaveWritesDecodedImage(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, newFakeService())
	a.state.LastEvaluation = &evaluation{Number: "1234"}
	drain(t, a, a.generateShareCard())
	drain(t, a, a.saveShareImage())

	status := a.state.Elements.Get("share-status")
	path, ok := strings.CutPrefix(status.Text, "已保存到 ")
	if !ok || status.Error {
		t.Fatalf("share status = %q", status.Text)
	}
	if filepath.Ext(path) != ".png" || filepath.Dir(path) != a.opts.ShareDir {
		t.Fatalf("saved to %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Fatalf("saved %q, want decoded payload", data)
	}

	drain(t, a, a.saveShareImage())
	if again := strings.TrimPrefix(status.Text, "已保存到 "); again == path {
		t.Fatalf("second save reused %q", path)
	}
}

func TestShare_CopyUsesClipboard(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, newFakeService())
	var copied string
	a.opts.Clipboard = func(s string) error { copied = s; return nil }

	drain(t, a, a.copyShareImage())
	if copied != "" {
		t.Fatal("copied without a share image")
	}

	a.state.ShareImage = "data:image/png;base64,aGVsbG8="
	drain(t, a, a.copyShareImage())
	if copied != a.state.ShareImage {
		t.Fatalf("copied %q", copied)
	}

	a.opts.Clipboard = func(string) error { return errors.New("no xclip") }
	drain(t, a, a.copyShareImage())
	if !a.state.Elements.Get("share-status").Error {
		t.Fatal("clipboard failure not reported")
	}
}

func TestDecodeDataURI(t *testing.T) {
	t.Parallel()

	mediaType, data, err := decodeDataURI("data:image/png;base64,aGVsbG8=")
	if err != nil || mediaType != "image/png" || string(data) != "hello" {
		t.Fatalf("decode = %q %q %v", mediaType, data, err)
	}

	for _, bad := range []string{"", "image/png;base64,AA==", "data:image/png,raw", "data:image/png;base64", "data:image/png;base64,***"} {
		if _, _, err := decodeDataURI(bad); err == nil {
			t.Errorf("decodeDataURI(%q) accepted", bad)
		}
	}
}

func TestRenderRankingTable(t *testing.T) {
	t.Parallel()

	snap := luckyapi.RankingSnapshot{
		TopNumbers: []luckyapi.RankingEntry{{Number: "1234", Price: luckyapi.NumberAmount("88"), Level: "A", Timestamp: "t1"}},
	}
	top := renderRankingTable(snap, 0)
	if !strings.Contains(top, "🥇") || !strings.Contains(top, "****1234") {
		t.Fatalf("top view = %q", top)
	}
	if recent := renderRankingTable(snap, 1); !strings.Contains(recent, "暂无数据") {
		t.Fatalf("empty recent view = %q", recent)
	}
}
