package lfsr

import (
	"context"
	"strings"
)

// CycleTrace records one clock cycle of keystream generation for
// external display: the pre-shift register snapshot, the feedback bit
// that entered on that cycle, and the bit shifted out.
type CycleTrace struct {
	Cycle    int
	State    []int
	Feedback int
	Output   int
}

// KeyStream is the captured output of a generation run. Bits is the
// output sequence rendered as a '0'/'1' string, ready for the XOR
// cipher; Trace holds one record per clock cycle.
type KeyStream struct {
	Bits  string
	Trace []CycleTrace
}

// Len returns the number of bits in the keystream.
func (ks *KeyStream) Len() int {
	return len(ks.Bits)
}

// GenerateKeyStream clocks the register until its state sequence
// closes, collecting every output bit. Before each clock the current
// state is fingerprinted; generation stops at the first repeated state
// or after the theoretical maximum of 2^m - 1 cycles, whichever comes
// first. The register is consumed: its state after the call is wherever
// the cycle closed.
//
// If the resulting stream contains no 1 bits it fails quality
// validation: the trace is still returned for display, Bits is empty,
// and the error is ErrDegenerateKeystream. The caller decides whether
// to retry with a different configuration.
func GenerateKeyStream(ctx context.Context, l *LFSR) (*KeyStream, error) {
	if err := checkWidth(l.m); err != nil {
		return nil, err
	}

	maxLength := 1<<uint(l.m) - 1
	seen := make(map[uint64]int, maxLength)

	var bits strings.Builder
	trace := make([]CycleTrace, 0, maxLength)
	hasOne := false

	for cycle := 0; cycle < maxLength; cycle++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fp := l.fingerprint()
		if _, repeated := seen[fp]; repeated {
			break
		}
		seen[fp] = cycle

		state := l.State()
		output := l.Shift()

		if output == 1 {
			hasOne = true
			bits.WriteByte('1')
		} else {
			bits.WriteByte('0')
		}

		trace = append(trace, CycleTrace{
			Cycle:    cycle,
			State:    state,
			Feedback: l.register[0],
			Output:   output,
		})
	}

	if !hasOne {
		return &KeyStream{Trace: trace}, ErrDegenerateKeystream
	}

	return &KeyStream{Bits: bits.String(), Trace: trace}, nil
}
