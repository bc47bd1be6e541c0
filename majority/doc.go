// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package majority implements the Majority Judgment ranking engine.

Every voter gives each option an integer judgment (for example 1-5).
An option's judgments are compared through a ladder of medians: the
usual median first, then neighboring values walking outward from it,
until one option pulls ahead.

# Pipeline

	normalized := majority.Normalize(raw, majority.Reject)
	ranking := majority.Rank(normalized)

Or in one step from grouped rows:

	res := majority.Assemble(majority.Snapshot{Options: 4, Policy: majority.Ignore, Votes: rows})

# Default-vote policy

Voters do not have to judge every option. The policy decides what a
missing judgment means:

  - Reject: a missing judgment counts as Sentinel (0), the worst possible
    grade. Every option ends up with the same number of judgments.
  - Ignore: a missing judgment is left out. Options may have judgment
    lists of different lengths.

# Median ladder

For a sorted list of length L the 0th median sits at index ceil(L/2)-1.
The nth median alternates above and below it:

	[1 2 3 3 5 5]   n=0 → 3, n=1 → 3, n=2 → 2, n=3 → 5, n=4 → 1, n=5 → 5

The 0th median of an empty list is Sentinel.

# Ranking

Ranks are dense: tied options share a rank and the next distinct group
gets exactly one more, whatever the size of the tie. Three options tied
for first are followed by a second place, not a fourth.

Everything in this package is pure and safe for concurrent use.
*/
package majority
