// Package ranking holds the pure pieces of the ranking pipeline: the
// composite score formula and the rank-position tier bands. Both are
// deterministic functions of their inputs so they can be tested against
// synthetic rankings of any size.
package ranking

// Inputs are the per-creator signals feeding the composite score. Each term
// is fetched independently; a term whose source failed is passed as zero.
type Inputs struct {
	SeedsReceived  int64
	ManualPoints   int64
	ContentViews   int64
	Polls          int64
	PublicMessages int64
}

// Score computes the composite score:
//
//	seeds + manual points + floor(0.1 * views) + 5*polls + 2*messages
//
// Negative inputs are treated as zero so a bad upstream aggregate can never
// push a score below zero.
func Score(in Inputs) int64 {
	return clamp(in.SeedsReceived) +
		clamp(in.ManualPoints) +
		clamp(in.ContentViews)/10 +
		5*clamp(in.Polls) +
		2*clamp(in.PublicMessages)
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
