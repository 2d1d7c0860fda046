package ranking

import (
	"testing"

	"github.com/semearhq/semear-backend/internal/model"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name     string
		position int
		total    int
		want     model.Tier
	}{
		{"single creator", 1, 1, model.TierSupreme},
		{"first of two", 1, 2, model.TierSupreme},
		{"second of two", 2, 2, model.TierNovice},
		{"first of ten", 1, 10, model.TierSupreme},
		{"third of ten", 3, 10, model.TierPartner},
		{"sixth of ten", 6, 10, model.TierCommon},
		{"seventh of ten", 7, 10, model.TierNovice},
		{"invalid position", 0, 10, model.TierNovice},
		{"position beyond total", 11, 10, model.TierNovice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierFor(tt.position, tt.total); got != tt.want {
				t.Fatalf("TierFor(%d, %d)=%s want=%s", tt.position, tt.total, got, tt.want)
			}
		})
	}
}

// The 200-entry bands are the canonical check: ceil(0.1*200)=20,
// ceil(0.3*200)=60, ceil(0.6*200)=120.
func TestTierForBands200(t *testing.T) {
	const total = 200
	counts := map[model.Tier]int{}
	for p := 1; p <= total; p++ {
		counts[TierFor(p, total)]++
	}
	want := map[model.Tier]int{
		model.TierSupreme: 20,
		model.TierPartner: 40,
		model.TierCommon:  60,
		model.TierNovice:  80,
	}
	for tier, n := range want {
		if counts[tier] != n {
			t.Fatalf("tier %s: got %d want %d", tier, counts[tier], n)
		}
	}
	if TierFor(20, total) != model.TierSupreme || TierFor(21, total) != model.TierPartner {
		t.Fatalf("supreme/partner boundary wrong")
	}
	if TierFor(60, total) != model.TierPartner || TierFor(61, total) != model.TierCommon {
		t.Fatalf("partner/common boundary wrong")
	}
	if TierFor(120, total) != model.TierCommon || TierFor(121, total) != model.TierNovice {
		t.Fatalf("common/novice boundary wrong")
	}
}

// Band sizes must follow the ceiling formula for arbitrary totals, including
// small ones where the bands overlap.
func TestTierForBandFormula(t *testing.T) {
	for _, total := range []int{1, 2, 3, 5, 7, 33, 101} {
		for p := 1; p <= total; p++ {
			got := TierFor(p, total)
			var want model.Tier
			switch {
			case p == 1 || p <= (total*10+99)/100:
				want = model.TierSupreme
			case p <= (total*30+99)/100:
				want = model.TierPartner
			case p <= (total*60+99)/100:
				want = model.TierCommon
			default:
				want = model.TierNovice
			}
			if got != want {
				t.Fatalf("TierFor(%d, %d)=%s want=%s", p, total, got, want)
			}
		}
	}
}
