package ranking

import (
	"strconv"
	"testing"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
)

func TestTopRowsMedalAndMask(t *testing.T) {
	t.Parallel()

	rows := TopRows([]luckyapi.RankingEntry{
		{Number: "1234", Price: luckyapi.NumberAmount("88"), Level: "A", Timestamp: "t1"},
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	r := rows[0]
	if r.Rank != 1 || r.Medal != "🥇" {
		t.Errorf("rank/medal = %d/%q, want 1/🥇", r.Rank, r.Medal)
	}
	if r.Masked != "****1234" {
		t.Errorf("masked = %q, want ****1234", r.Masked)
	}
	if r.Price != "¥88" || r.Level != "A" || r.Timestamp != "t1" {
		t.Errorf("unexpected row %+v", r)
	}
}

func TestTopRowsMedalsStopAtThird(t *testing.T) {
	t.Parallel()

	entries := make([]luckyapi.RankingEntry, 5)
	for i := range entries {
		entries[i] = luckyapi.RankingEntry{Number: "0000"}
	}
	rows := TopRows(entries)
	want := []string{"🥇", "🥈", "🥉", "4", "5"}
	for i, r := range rows {
		if got := r.Label(); got != want[i] {
			t.Errorf("row %d label = %q, want %q", i, got, want[i])
		}
	}
}

func TestRecentRowsReversed(t *testing.T) {
	t.Parallel()

	rows := RecentRows([]luckyapi.RankingEntry{
		{Number: "1111", Timestamp: "first"},
		{Number: "2222", Timestamp: "second"},
		{Number: "3333", Timestamp: "third"},
	})
	want := []string{"third", "second", "first"}
	for i, r := range rows {
		if r.Timestamp != want[i] {
			t.Errorf("row %d = %q, want %q", i, r.Timestamp, want[i])
		}
		if r.Rank != i+1 {
			t.Errorf("row %d rank = %d", i, r.Rank)
		}
	}
}

func TestRecentRowsHaveNoMedals(t *testing.T) {
	t.Parallel()

	rows := RecentRows([]luckyapi.RankingEntry{{Number: "1111"}, {Number: "2222"}, {Number: "3333"}, {Number: "4444"}})
	for i, r := range rows {
		if r.Medal != "" {
			t.Errorf("row %d medal = %q, want none", i, r.Medal)
		}
		if want := strconv.Itoa(i + 1); r.Label() != want {
			t.Errorf("row %d label = %q, want %q", i, r.Label(), want)
		}
	}
}

func TestRowsSelectsView(t *testing.T) {
	t.Parallel()

	snap := luckyapi.RankingSnapshot{
		TopNumbers:        []luckyapi.RankingEntry{{Number: "8888"}},
		RecentEvaluations: []luckyapi.RankingEntry{{Number: "1234"}, {Number: "5678"}},
	}
	if got := Rows(snap, Top); len(got) != 1 || got[0].Masked != "****8888" {
		t.Errorf("top view = %+v", got)
	}
	if got := Rows(snap, Recent); len(got) != 2 || got[0].Masked != "****5678" {
		t.Errorf("recent view = %+v", got)
	}
	if got := Rows(luckyapi.RankingSnapshot{}, Top); len(got) != 0 {
		t.Errorf("empty snapshot gave %d rows", len(got))
	}
}
