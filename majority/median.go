// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package majority

// Sentinel is the lowest possible judgment. It stands in for missing
// judgments under Reject and for the median of an empty list.
const Sentinel = 0

// NthMedian returns the nth value of the median ladder of sorted votes.
// The second result is false once the ladder is exhausted (n >= len(votes)),
// except that the 0th median of an empty list is Sentinel.
func NthMedian(votes []int, n int) (int, bool) {
	l := len(votes)
	if l == 0 && n == 0 {
		return Sentinel, true
	}
	if n < 0 || n >= l {
		return 0, false
	}

	med := (l+1)/2 - 1
	i := (n + 1) / 2
	if (l-n)%2 == 0 {
		return votes[med-i], true
	}
	return votes[med+i], true
}

// Compare orders two sorted judgment lists by Majority Judgment.
// It returns +1 when a is the better option, -1 when b is, and 0 when
// their medians agree until the shorter list runs out.
// At least the 0th medians are always compared, so empty lists are ordered too.
func Compare(a, b []int) int {
	steps := max(1, min(len(a), len(b)))
	for n := 0; n < steps; n++ {
		ma, _ := NthMedian(a, n)
		mb, _ := NthMedian(b, n)
		switch {
		case ma > mb:
			return 1
		case ma < mb:
			return -1
		}
	}
	return 0
}
