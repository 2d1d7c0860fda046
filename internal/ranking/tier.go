package ranking

import "github.com/semearhq/semear-backend/internal/model"

// TierFor maps a 1-indexed rank position to a tier using ceiling-inclusive
// percentile bands: top 10% supreme, next 20% partner, next 30% common, rest
// novice. Position 1 is always supreme.
func TierFor(position, total int) model.Tier {
	if position < 1 || total < 1 || position > total {
		return model.TierNovice
	}
	if position == 1 {
		return model.TierSupreme
	}
	switch {
	case position <= ceilPct(total, 10):
		return model.TierSupreme
	case position <= ceilPct(total, 30):
		return model.TierPartner
	case position <= ceilPct(total, 60):
		return model.TierCommon
	default:
		return model.TierNovice
	}
}

// ceilPct returns ceil(total * pct / 100) without going through floats.
func ceilPct(total, pct int) int {
	return (total*pct + 99) / 100
}
