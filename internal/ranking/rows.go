// Package ranking turns a leaderboard snapshot into display rows.
package ranking

import (
	"strconv"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
)

// EmptyPlaceholder is shown in place of an empty list.
const EmptyPlaceholder = "暂无数据"

var medals = []string{"🥇", "🥈", "🥉"}

// View selects which list of the snapshot is shown.
type View int

const (
	Top View = iota
	Recent
)

func (v View) String() string {
	if v == Recent {
		return "最新评估"
	}
	return "价格排行"
}

// Row is one rendered leaderboard line.
type Row struct {
	Rank      int
	Medal     string // top view podium only
	Masked    string
	Price     string
	Level     string
	Timestamp string
}

// Label returns the rank column: a medal for the podium, the number
// otherwise.
func (r Row) Label() string {
	if r.Medal != "" {
		return r.Medal
	}
	return strconv.Itoa(r.Rank)
}

// TopRows keeps server order, which is already sorted by price.
func TopRows(entries []luckyapi.RankingEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		row := newRow(i+1, e)
		if i < len(medals) {
			row.Medal = medals[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// RecentRows lists the most recent evaluation first. The server appends, so
// the fetched order is reversed. Recent rows carry no medals.
func RecentRows(entries []luckyapi.RankingEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		rows = append(rows, newRow(len(rows)+1, entries[i]))
	}
	return rows
}

// Rows returns the rows for v.
func Rows(s luckyapi.RankingSnapshot, v View) []Row {
	if v == Recent {
		return RecentRows(s.RecentEvaluations)
	}
	return TopRows(s.TopNumbers)
}

func newRow(rank int, e luckyapi.RankingEntry) Row {
	return Row{
		Rank:      rank,
		Masked:    luckyapi.MaskNumber(e.Number),
		Price:     "¥" + e.Price.String(),
		Level:     e.Level,
		Timestamp: e.Timestamp,
	}
}
