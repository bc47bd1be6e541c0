// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// String renders the poll as plain text, one block per option in option order.
func (p Poll) String() string {
	var b strings.Builder

	b.WriteString("(poll from " + p.Author + ")\n")
	b.WriteString(p.Description + "\n")

	state := "open"
	if !p.IsOpen {
		state = "closed"
	}
	b.WriteString(state + ", " + p.Policy.String() + " policy, " + english.Plural(p.Voters, "voter", "") + "\n")

	for i, opt := range p.Options {
		b.WriteString("\n")
		if i < len(p.Ranking) {
			b.WriteString("(" + humanize.Ordinal(p.Ranking[i]) + ") ")
		}
		b.WriteString(opt.Description + "\n")

		if i < len(p.Votes) {
			vals := make([]string, len(p.Votes[i]))
			for j, v := range p.Votes[i] {
				vals[j] = strconv.Itoa(v)
			}
			b.WriteString(strings.Join(vals, " ") + "\n")
		}
	}

	return b.String()
}
