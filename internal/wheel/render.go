package wheel

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	text   string
	sector int
	label  bool
	skip   bool // covered by the wide rune to its left
}

// Render draws the wheel as a disc of the given radius (in rows). Columns are
// doubled to compensate for terminal cell aspect. highlight is the sector
// under the pointer, or -1 for none.
func Render(radius, highlight int) string {
	return render(Sectors(), radius, highlight)
}

func render(sectors []Sector, radius, highlight int) string {
	if radius < 2 || len(sectors) == 0 {
		return ""
	}

	rows := 2*radius + 1
	cols := 4*radius + 1
	cx, cy := 2*radius, radius
	r2 := float64(radius) * float64(radius)

	grid := make([][]cell, rows)
	for y := 0; y < rows; y++ {
		grid[y] = make([]cell, cols)
		for x := 0; x < cols; x++ {
			dx := float64(x-cx) / 2
			dy := float64(y - cy)
			if dx*dx+dy*dy > r2 {
				grid[y][x] = cell{text: " ", sector: -1}
				continue
			}
			grid[y][x] = cell{text: "█", sector: SectorAt(sectors, math.Atan2(dy, dx))}
		}
	}

	placeLabels(grid, sectors, radius, cx, cy)

	var b strings.Builder
	for y, row := range grid {
		for _, c := range row {
			if c.skip {
				continue
			}
			b.WriteString(styleCell(c, sectors, highlight))
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// placeLabels writes the first rune of each prize name on the sector's
// bisector at 60% of the radius. Sectors too thin to hold a label are skipped.
func placeLabels(grid [][]cell, sectors []Sector, radius, cx, cy int) {
	minSweep := 2 / float64(radius)
	for i, s := range sectors {
		if s.Sweep() < minSweep {
			continue
		}
		label := firstRune(s.Prize.Name)
		w := lipgloss.Width(label)
		theta := s.Bisector()
		dist := 0.6 * float64(radius)
		y := cy + int(math.Round(dist*math.Sin(theta)))
		x := cx + int(math.Round(2*dist*math.Cos(theta)))
		if y < 0 || y >= len(grid) || x < 0 || x+w > len(grid[y]) {
			continue
		}
		if grid[y][x].sector != i {
			continue
		}
		grid[y][x] = cell{text: label, sector: i, label: true}
		for k := 1; k < w; k++ {
			grid[y][x+k].skip = true
		}
	}
}

func styleCell(c cell, sectors []Sector, highlight int) string {
	if c.sector < 0 {
		return c.text
	}
	color := lipgloss.Color(sectors[c.sector].Prize.Color)
	style := lipgloss.NewStyle().Foreground(color)
	if c.label {
		style = lipgloss.NewStyle().Background(color).Foreground(lipgloss.Color("#000000")).Bold(true)
	}
	if c.sector == highlight {
		if c.label {
			style = style.Reverse(true)
		} else {
			return style.Render("▓")
		}
	}
	return style.Render(c.text)
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
