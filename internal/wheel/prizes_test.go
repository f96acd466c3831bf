package wheel

import (
	"math"
	"strings"
	"testing"
)

func TestPrizeWeightsSumToTotal(t *testing.T) {
	t.Parallel()

	sum := 0
	for _, p := range Prizes() {
		sum += p.Weight
	}
	if sum != TotalWeight {
		t.Fatalf("weights sum = %d, want %d", sum, TotalWeight)
	}
}

func TestSectors_CoverFullRevolution(t *testing.T) {
	t.Parallel()

	sectors := Sectors()
	if len(sectors) != len(Prizes()) {
		t.Fatalf("sector count = %d, want %d", len(sectors), len(Prizes()))
	}
	if sectors[0].Start != 0 {
		t.Fatalf("first sector starts at %v, want 0", sectors[0].Start)
	}
	if last := sectors[len(sectors)-1].End; last != 2*math.Pi {
		t.Fatalf("last sector ends at %v, want 2π", last)
	}

	var total float64
	for i, s := range sectors {
		if i > 0 && s.Start != sectors[i-1].End {
			t.Fatalf("sector %d starts at %v, previous ended at %v", i, s.Start, sectors[i-1].End)
		}
		want := float64(s.Prize.Weight) / TotalWeight * 2 * math.Pi
		if math.Abs(s.Sweep()-want) > 1e-12 {
			t.Errorf("sector %q sweep = %v, want %v", s.Prize.Name, s.Sweep(), want)
		}
		total += s.Sweep()
	}
	if math.Abs(total-2*math.Pi) > 1e-12 {
		t.Fatalf("total sweep = %v, want 2π", total)
	}
}

func TestSectorAt(t *testing.T) {
	t.Parallel()

	sectors := Sectors()
	tests := []struct {
		name  string
		angle float64
		want  int
	}{
		{"zero", 0, 0},
		{"bisector of third", sectors[2].Bisector(), 2},
		{"full turn wraps", 2 * math.Pi, 0},
		{"negative wraps", -0.01, len(sectors) - 1},
		{"last bisector", sectors[len(sectors)-1].Bisector(), len(sectors) - 1},
	}
	for _, tt := range tests {
		if got := SectorAt(sectors, tt.angle); got != tt.want {
			t.Errorf("%s: SectorAt(%v) = %d, want %d", tt.name, tt.angle, got, tt.want)
		}
	}
}

func TestPick_FollowsCumulativeWeights(t *testing.T) {
	t.Parallel()

	counts := make(map[string]int)
	for roll := 0; roll < TotalWeight; roll++ {
		counts[Pick(roll).Name]++
	}
	for _, p := range Prizes() {
		if counts[p.Name] != p.Weight {
			t.Errorf("prize %q picked %d times over all rolls, want %d", p.Name, counts[p.Name], p.Weight)
		}
	}
	if got := Pick(TotalWeight + 5).Name; got != ConsolationPrize {
		t.Errorf("out of range roll picked %q, want %q", got, ConsolationPrize)
	}
}

func TestEmoji_DefaultsToGift(t *testing.T) {
	t.Parallel()

	if got := Emoji("特等奖"); got != "👑" {
		t.Errorf("Emoji(特等奖) = %q", got)
	}
	if got := Emoji("神秘大奖"); got != DefaultEmoji {
		t.Errorf("Emoji(unknown) = %q, want %q", got, DefaultEmoji)
	}
}

func TestRender_DrawsDisc(t *testing.T) {
	t.Parallel()

	out := Render(6, -1)
	lines := strings.Split(out, "\n")
	if len(lines) != 13 {
		t.Fatalf("line count = %d, want 13", len(lines))
	}
	if !strings.Contains(out, "█") {
		t.Fatal("wheel has no sector cells")
	}
	if Render(1, -1) != "" {
		t.Fatal("radius below 2 should render nothing")
	}
}
