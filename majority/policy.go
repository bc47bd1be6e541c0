// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package majority

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPolicy = errors.New("unknown default-vote policy")

// Policy decides how a voter's missing judgment on an option is treated.
type Policy uint8

const (
	// Reject counts a missing judgment as Sentinel.
	Reject Policy = iota
	// Ignore leaves a missing judgment out of the option's distribution.
	Ignore
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Ignore:
		return "ignore"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy decodes a stored or submitted policy name.
// Unknown names fail instead of falling back to a default.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject":
		return Reject, nil
	case "ignore":
		return Ignore, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (p Policy) MarshalText() ([]byte, error) {
	if p != Reject && p != Ignore {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
