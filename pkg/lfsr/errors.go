package lfsr

import "errors"

var (
	// ErrInvalidConfig is returned when a seed or tap set cannot form a
	// valid register configuration.
	ErrInvalidConfig = errors.New("lfsr: invalid configuration")

	// ErrDegenerateKeystream is returned when a generated keystream
	// contains no 1 bits and is unusable as key material.
	ErrDegenerateKeystream = errors.New("lfsr: keystream is all zeros")

	// ErrNoPrimitiveTaps is returned together with the fallback tap set
	// when the search exhausted all candidates without finding a
	// primitive polynomial. The returned taps are usable but not
	// verified to produce a maximum-length sequence.
	ErrNoPrimitiveTaps = errors.New("lfsr: no primitive polynomial found")
)
