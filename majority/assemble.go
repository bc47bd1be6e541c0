// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package majority

// Judgment is one stored vote: a value given to the option at index Option.
type Judgment struct {
	Option int
	Value  int
}

// Snapshot is a consistent read of one poll's judgments.
type Snapshot struct {
	Options int
	Policy  Policy
	Votes   []Judgment
}

// Result holds the normalized judgments and the ranking, both indexed by option.
type Result struct {
	Votes   [][]int
	Ranking []int
}

// Assemble groups judgments by option, normalizes them under the snapshot's
// policy and ranks the options. Judgments for options outside
// [0, Options) are dropped.
func Assemble(s Snapshot) Result {
	grouped := make([][]int, max(s.Options, 0))
	for _, j := range s.Votes {
		if j.Option < 0 || j.Option >= len(grouped) {
			continue
		}
		grouped[j.Option] = append(grouped[j.Option], j.Value)
	}

	votes := Normalize(grouped, s.Policy)
	return Result{
		Votes:   votes,
		Ranking: Rank(votes),
	}
}
