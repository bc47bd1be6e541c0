// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package majority

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func judgments(ballots []map[int]int) []Judgment {
	var out []Judgment
	for _, ballot := range ballots {
		for opt, v := range ballot {
			out = append(out, Judgment{Option: opt, Value: v})
		}
	}
	return out
}

func ballotMaps(ballots [][]int) []map[int]int {
	out := make([]map[int]int, len(ballots))
	for voter, ballot := range ballots {
		out[voter] = make(map[int]int, len(ballot))
		for opt, v := range ballot {
			out[voter][opt] = v
		}
	}
	return out
}

func TestAssemble_Reject(t *testing.T) {
	res := Assemble(Snapshot{
		Options: 4,
		Policy:  Reject,
		Votes:   judgments(ballotMaps(sixVoterBallots)),
	})
	assert.Equal(t, []int{1, 3, 2, 4}, res.Ranking)
	assert.Equal(t, []int{2, 3, 3, 4, 5, 5}, res.Votes[0])
}

func TestAssemble_PolicySensitivity(t *testing.T) {
	ballots := ballotMaps(sixVoterBallots)
	// Voter 4 skips option 1
	delete(ballots[3], 1)
	// Voter 6 later changes their mind on option 1
	ballots[5][1] = 4

	rows := judgments(ballots)

	ignored := Assemble(Snapshot{Options: 4, Policy: Ignore, Votes: rows})
	assert.Equal(t, []int{2, 3, 4, 5, 5}, ignored.Votes[1])
	assert.Equal(t, []int{2, 1, 3, 4}, ignored.Ranking)

	rejected := Assemble(Snapshot{Options: 4, Policy: Reject, Votes: rows})
	assert.Equal(t, []int{0, 2, 3, 4, 5, 5}, rejected.Votes[1])
	assert.Equal(t, []int{1, 3, 2, 4}, rejected.Ranking)
}

func TestAssemble_NoVotes(t *testing.T) {
	res := Assemble(Snapshot{Options: 3, Policy: Reject})
	assert.Equal(t, [][]int{{}, {}, {}}, res.Votes)
	assert.Equal(t, []int{1, 1, 1}, res.Ranking)
}

func TestAssemble_DropsUnknownOptions(t *testing.T) {
	res := Assemble(Snapshot{
		Options: 2,
		Policy:  Ignore,
		Votes: []Judgment{
			{Option: 0, Value: 3},
			{Option: 2, Value: 5},
			{Option: -1, Value: 5},
			{Option: 1, Value: 4},
		},
	})
	assert.Equal(t, [][]int{{3}, {4}}, res.Votes)
	assert.Equal(t, []int{2, 1}, res.Ranking)
}

func TestAssemble_NoOptions(t *testing.T) {
	res := Assemble(Snapshot{})
	assert.Empty(t, res.Votes)
	assert.Empty(t, res.Ranking)
}
