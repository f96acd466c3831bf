// Package wheel holds the fixed prize table and draws it as a character-cell
// prize wheel. The table is illustrative: the server chooses the prize.
package wheel

import (
	"math"
)

// Prize is one wheel sector.
type Prize struct {
	Name   string
	Color  string // hex foreground used for the sector
	Weight int    // share of the wheel out of TotalWeight
}

// TotalWeight is the sum of all prize weights.
const TotalWeight = 100

// DefaultEmoji is shown for prize names that are not in the table.
const DefaultEmoji = "🎁"

var prizeTable = []Prize{
	{Name: "特等奖", Color: "#FFD700", Weight: 1},
	{Name: "一等奖", Color: "#FF6B6B", Weight: 4},
	{Name: "二等奖", Color: "#4ECDC4", Weight: 10},
	{Name: "三等奖", Color: "#45B7D1", Weight: 20},
	{Name: "幸运奖", Color: "#96CEB4", Weight: 30},
	{Name: "谢谢参与", Color: "#B0BEC5", Weight: 35},
}

var prizeEmoji = map[string]string{
	"特等奖":  "👑",
	"一等奖":  "💎",
	"二等奖":  "🏆",
	"三等奖":  "🎉",
	"幸运奖":  "🍀",
	"谢谢参与": "🙏",
}

// ConsolationPrize is the sector that does not trigger a celebration.
const ConsolationPrize = "谢谢参与"

// Prizes returns a copy of the prize table in wheel order.
func Prizes() []Prize {
	return append([]Prize(nil), prizeTable...)
}

// Emoji maps a server-supplied prize name to its icon.
func Emoji(name string) string {
	if e, ok := prizeEmoji[name]; ok {
		return e
	}
	return DefaultEmoji
}

// IndexOf returns the table position of a prize name, or -1.
func IndexOf(name string) int {
	for i, p := range prizeTable {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Sector is the angular span of one prize, in radians, clockwise from 0.
type Sector struct {
	Prize Prize
	Start float64
	End   float64
}

// Bisector returns the angle halfway through the sector.
func (s Sector) Bisector() float64 {
	return (s.Start + s.End) / 2
}

// Sweep returns the sector's angular size.
func (s Sector) Sweep() float64 {
	return s.End - s.Start
}

// Sectors lays the table out from angle 0 in table order. Bounds come from
// the running weight total so the last sector ends exactly at 2π.
func Sectors() []Sector {
	return sectorsFor(prizeTable)
}

func sectorsFor(prizes []Prize) []Sector {
	total := 0
	for _, p := range prizes {
		total += p.Weight
	}
	if total == 0 {
		return nil
	}

	out := make([]Sector, 0, len(prizes))
	cum := 0
	for _, p := range prizes {
		start := float64(cum) / float64(total) * 2 * math.Pi
		cum += p.Weight
		end := float64(cum) / float64(total) * 2 * math.Pi
		out = append(out, Sector{Prize: p, Start: start, End: end})
	}
	return out
}

// SectorAt returns the index of the sector containing angle (any value;
// it is normalized into [0, 2π)).
func SectorAt(sectors []Sector, angle float64) int {
	if len(sectors) == 0 {
		return -1
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	for i, s := range sectors {
		if angle >= s.Start && angle < s.End {
			return i
		}
	}
	return len(sectors) - 1
}

// Pick maps a roll in [0, TotalWeight) to a prize by cumulative weight.
func Pick(roll int) Prize {
	if roll < 0 {
		roll = 0
	}
	cum := 0
	for _, p := range prizeTable {
		cum += p.Weight
		if roll < cum {
			return p
		}
	}
	return prizeTable[len(prizeTable)-1]
}
