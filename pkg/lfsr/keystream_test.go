package lfsr

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyStreamFullPeriod(t *testing.T) {
	tests := []struct {
		name    string
		seed    string
		taps    []int
		wantLen int
	}{
		{
			name:    "Width 3 primitive taps",
			seed:    "111",
			taps:    []int{2, 1},
			wantLen: 7,
		},
		{
			name:    "Width 4 primitive taps",
			seed:    "1111",
			taps:    []int{3, 2},
			wantLen: 15,
		},
		{
			name:    "Width 4 short period taps",
			seed:    "1111",
			taps:    []int{3, 1},
			wantLen: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.seed, tt.taps)
			require.NoError(t, err)

			ks, err := GenerateKeyStream(context.Background(), l)
			require.NoError(t, err)

			assert.Len(t, ks.Bits, tt.wantLen)
			assert.Len(t, ks.Trace, tt.wantLen)
		})
	}
}

func TestGenerateKeyStreamTrace(t *testing.T) {
	l, err := New("111", []int{2, 1})
	require.NoError(t, err)

	ks, err := GenerateKeyStream(context.Background(), l)
	require.NoError(t, err)
	require.Len(t, ks.Trace, 7)

	for i, rec := range ks.Trace {
		assert.Equal(t, i, rec.Cycle)
		require.Len(t, rec.State, 3)
		assert.Contains(t, []int{0, 1}, rec.Feedback)
		assert.Equal(t, int(ks.Bits[i]-'0'), rec.Output)
	}

	// First cycle saw the seed state.
	assert.Equal(t, []int{1, 1, 1}, ks.Trace[0].State)
	assert.Equal(t, "1110010", ks.Bits)
}

func TestGenerateKeyStreamMatchesShift(t *testing.T) {
	build := func() *LFSR {
		l, err := New("1001011", []int{6, 5, 2})
		require.NoError(t, err)
		return l
	}

	ks, err := GenerateKeyStream(context.Background(), build())
	require.NoError(t, err)

	manual := build()
	var bits strings.Builder
	for range ks.Bits {
		bits.WriteByte(byte('0' + manual.Shift()))
	}

	assert.Equal(t, bits.String(), ks.Bits)
}

func TestGenerateKeyStreamDegenerate(t *testing.T) {
	tests := []struct {
		name string
		seed string
		taps []int
	}{
		{"All zero seed", "0000000", []int{6, 5}},
		{"Zero seed empty taps", "000", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.seed, tt.taps)
			require.NoError(t, err)

			ks, err := GenerateKeyStream(context.Background(), l)
			assert.ErrorIs(t, err, ErrDegenerateKeystream)
			require.NotNil(t, ks)
			assert.Empty(t, ks.Bits)
			assert.NotEmpty(t, ks.Trace)
		})
	}
}

func TestGenerateKeyStreamWidthBound(t *testing.T) {
	seed := strings.Repeat("1", MaxWidth+1)
	l, err := New(seed, []int{MaxWidth})
	require.NoError(t, err)

	_, err = GenerateKeyStream(context.Background(), l)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateKeyStreamCanceled(t *testing.T) {
	l, err := New("111111111111", []int{11, 10})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = GenerateKeyStream(ctx, l)
	assert.ErrorIs(t, err, context.Canceled)
}
