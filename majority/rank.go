// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package majority

import "slices"

// Rank returns the dense 1-based rank of every option, parallel to votes.
// Each list must already be sorted (see Normalize). Ranks do not depend on
// the order of votes as long as all lists have the same length, which
// Normalize guarantees under Reject.
func Rank(votes [][]int) []int {
	ranks := make([]int, len(votes))
	if len(votes) == 0 {
		return ranks
	}

	order := make([]int, len(votes))
	for i := range order {
		order[i] = i
	}
	// Best first; equal options keep their original relative order
	slices.SortStableFunc(order, func(i, j int) int {
		return Compare(votes[j], votes[i])
	})

	rank := 1
	ranks[order[0]] = rank
	for k := 1; k < len(order); k++ {
		if Compare(votes[order[k]], votes[order[k-1]]) != 0 {
			rank++
		}
		ranks[order[k]] = rank
	}
	return ranks
}
