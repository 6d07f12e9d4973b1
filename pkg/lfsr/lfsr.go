// Package lfsr implements a Fibonacci (shift-in/shift-out) linear
// feedback shift register, primitive-polynomial tap search, and
// keystream generation with cycle detection.
//
// The generated keystreams are pedagogical pseudorandom sequences, not
// cryptographically secure key material.
package lfsr

import "fmt"

// MaxWidth is the widest register the bounded simulation loops accept.
// The full-period loops run up to 2^m - 1 iterations and pack register
// states into a uint64 fingerprint, so m is capped well below both
// limits.
const MaxWidth = 30

// LFSR is a linear feedback shift register of fixed width. Index 0 is
// the input end where feedback enters; index m-1 is the output end.
type LFSR struct {
	register []int
	taps     []int
	m        int
}

// New constructs a register from a binary seed string and a set of
// feedback tap positions. The seed length fixes the register width for
// the lifetime of the instance. Every tap must index into the seed;
// duplicate taps are rejected since a repeated tap cancels itself out
// of the XOR.
func New(seed string, taps []int) (*LFSR, error) {
	m := len(seed)
	if m < 2 {
		return nil, fmt.Errorf("%w: seed must be at least 2 bits, got %d", ErrInvalidConfig, m)
	}

	register := make([]int, m)
	for i, c := range seed {
		switch c {
		case '0':
			register[i] = 0
		case '1':
			register[i] = 1
		default:
			return nil, fmt.Errorf("%w: seed may contain only '0' and '1', found %q at position %d", ErrInvalidConfig, c, i)
		}
	}

	seen := make(map[int]bool, len(taps))
	for _, tap := range taps {
		if tap < 0 || tap >= m {
			return nil, fmt.Errorf("%w: tap position %d out of range [0, %d]", ErrInvalidConfig, tap, m-1)
		}
		if seen[tap] {
			return nil, fmt.Errorf("%w: duplicate tap position %d", ErrInvalidConfig, tap)
		}
		seen[tap] = true
	}

	tapsCopy := make([]int, len(taps))
	copy(tapsCopy, taps)

	return &LFSR{
		register: register,
		taps:     tapsCopy,
		m:        m,
	}, nil
}

// allOnes returns a register of width m seeded with every bit set,
// the canonical starting state for primitivity testing.
func allOnes(m int, taps []int) (*LFSR, error) {
	seed := make([]byte, m)
	for i := range seed {
		seed[i] = '1'
	}
	return New(string(seed), taps)
}

// Shift performs one clock cycle: the feedback bit is the XOR of all
// tapped positions of the pre-shift state, the output bit is read from
// the output end, every bit moves one position toward the output end,
// and the feedback bit enters at index 0. Returns the output bit.
func (l *LFSR) Shift() int {
	feedback := 0
	for _, tap := range l.taps {
		feedback ^= l.register[tap]
	}

	output := l.register[l.m-1]

	copy(l.register[1:], l.register[:l.m-1])
	l.register[0] = feedback

	return output
}

// Size returns the register width in bits.
func (l *LFSR) Size() int {
	return l.m
}

// State returns a snapshot of the current register contents.
func (l *LFSR) State() []int {
	state := make([]int, l.m)
	copy(state, l.register)
	return state
}

// Taps returns a copy of the feedback tap positions.
func (l *LFSR) Taps() []int {
	taps := make([]int, len(l.taps))
	copy(taps, l.taps)
	return taps
}

// fingerprint packs the register state into a uint64, bit i of the
// word holding register[i]. Used as the seen-state key during cycle
// detection; valid for widths up to MaxWidth.
func (l *LFSR) fingerprint() uint64 {
	var fp uint64
	for i, bit := range l.register {
		if bit == 1 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}
