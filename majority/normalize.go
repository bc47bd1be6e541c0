// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package majority

import "slices"

// Normalize sorts every option's judgments ascending and, under Reject,
// pads shorter lists at the front with Sentinel so all options have as many
// judgments as the most-judged one. The input is left untouched.
func Normalize(votes [][]int, policy Policy) [][]int {
	out := make([][]int, len(votes))
	participants := 0
	for i, v := range votes {
		sorted := append(make([]int, 0, len(v)), v...)
		slices.Sort(sorted)
		out[i] = sorted
		participants = max(participants, len(v))
	}
	if policy != Reject {
		return out
	}

	for i, v := range out {
		missing := participants - len(v)
		if missing == 0 {
			continue
		}
		padded := make([]int, missing, participants)
		for j := range padded {
			padded[j] = Sentinel
		}
		out[i] = append(padded, v...)
	}
	return out
}
