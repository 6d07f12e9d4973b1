package lfsr

import (
	"context"
	"fmt"
)

// FindPrimitiveTaps searches for a tap configuration whose feedback
// polynomial is primitive, guaranteeing a maximum-length sequence of
// 2^m - 1 states for a register of width m.
//
// Candidates are enumerated deterministically: every candidate includes
// the mandatory top tap m-1, and for each i in [1, 2^(m-1)) the
// remaining taps are the positions j in [0, m-2] where bit j of i is
// set. The first candidate that passes the primitivity test wins.
//
// If no candidate passes, the fallback tap set {m-1, m-2} is returned
// together with ErrNoPrimitiveTaps; the fallback is usable but not
// verified to be maximum-length.
func FindPrimitiveTaps(ctx context.Context, m int) ([]int, error) {
	if err := checkWidth(m); err != nil {
		return nil, err
	}

	for i := 1; i < 1<<uint(m-1); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		taps := candidateTaps(m, i)
		primitive, err := IsPrimitivePolynomial(ctx, m, taps)
		if err != nil {
			return nil, err
		}
		if primitive {
			return taps, nil
		}
	}

	return []int{m - 1, m - 2}, ErrNoPrimitiveTaps
}

// candidateTaps builds the i-th candidate: the top tap followed by the
// lower positions encoded in the bits of i, in ascending order.
func candidateTaps(m, i int) []int {
	taps := []int{m - 1}
	for j := 0; j < m-1; j++ {
		if i&(1<<uint(j)) != 0 {
			taps = append(taps, j)
		}
	}
	return taps
}

// IsPrimitivePolynomial reports whether the given tap configuration
// produces a maximum-length sequence for a register of width m. A test
// register seeded with all ones is clocked 2^m - 1 times; the
// configuration is primitive exactly when no state repeats and every
// non-zero state is visited.
func IsPrimitivePolynomial(ctx context.Context, m int, taps []int) (bool, error) {
	if err := checkWidth(m); err != nil {
		return false, err
	}

	test, err := allOnes(m, taps)
	if err != nil {
		return false, err
	}

	maxLength := 1<<uint(m) - 1
	seen := make(map[uint64]bool, maxLength)

	for i := 0; i < maxLength; i++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		fp := test.fingerprint()
		if seen[fp] {
			return false, nil
		}
		seen[fp] = true
		test.Shift()
	}

	return len(seen) == maxLength, nil
}

func checkWidth(m int) error {
	if m < 2 {
		return fmt.Errorf("%w: register width must be at least 2, got %d", ErrInvalidConfig, m)
	}
	if m > MaxWidth {
		return fmt.Errorf("%w: register width %d exceeds maximum %d", ErrInvalidConfig, m, MaxWidth)
	}
	return nil
}
