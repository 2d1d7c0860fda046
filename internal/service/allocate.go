package service

import "sort"

// CohortMember is one eligible recipient and its fund-splitting weight.
type CohortMember struct {
	ID     uint64
	Weight int64
}

// allocate splits poolCents across members in proportion to their weights
// using largest-remainder rounding, so the returned amounts always sum to
// exactly poolCents. Members must be pre-sorted by ID; remainder ties go to
// the earlier member, keeping the result deterministic. Pools and weights
// are cents-scale values, far from int64 limits.
func allocate(poolCents int64, members []CohortMember) []int64 {
	shares := make([]int64, len(members))
	if poolCents <= 0 || len(members) == 0 {
		return shares
	}
	var totalWeight int64
	for _, m := range members {
		if m.Weight > 0 {
			totalWeight += m.Weight
		}
	}
	if totalWeight == 0 {
		return shares
	}

	type rem struct {
		idx int
		r   int64
	}
	var allocated int64
	rems := make([]rem, 0, len(members))
	for i, m := range members {
		w := m.Weight
		if w < 0 {
			w = 0
		}
		shares[i] = poolCents * w / totalWeight
		allocated += shares[i]
		rems = append(rems, rem{idx: i, r: poolCents * w % totalWeight})
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].r > rems[b].r })

	for i := int64(0); i < poolCents-allocated; i++ {
		shares[rems[i].idx]++
	}
	return shares
}
