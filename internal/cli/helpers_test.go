package cli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSeed(t *testing.T) {
	seed := deriveSeed("correct horse battery staple", 16)

	assert.Len(t, seed, 16)
	for _, c := range seed {
		assert.Contains(t, []rune{'0', '1'}, c)
	}

	// Same passphrase and width derive the same seed.
	assert.Equal(t, seed, deriveSeed("correct horse battery staple", 16))

	// A different passphrase derives a different seed.
	assert.NotEqual(t, seed, deriveSeed("other passphrase", 16))
}

func TestBitsFromBytes(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		width int
		want  string
	}{
		{"Single byte full width", []byte{0xA5}, 8, "10100101"},
		{"Single byte truncated", []byte{0xA5}, 5, "10100"},
		{"Two bytes", []byte{0xFF, 0x00}, 12, "111111110000"},
		{"All zeros", []byte{0x00}, 8, "00000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bitsFromBytes(tt.data, tt.width))
		})
	}
}

func TestFormatTaps(t *testing.T) {
	assert.Equal(t, "[6, 5, 2]", formatTaps([]int{6, 5, 2}))
	assert.Equal(t, "[2]", formatTaps([]int{2}))
	assert.Equal(t, "[]", formatTaps(nil))
}

func TestFormatState(t *testing.T) {
	assert.Equal(t, "[1, 0, 1]", formatState([]int{1, 0, 1}))
}

func TestResolveSeedRequiresExactlyOneSource(t *testing.T) {
	_, err := resolveSeed("", false, 0, 16)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	_, err = resolveSeed("1001011", false, 12, 16)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	seed, err := resolveSeed("1001011", false, 0, 16)
	require.NoError(t, err)
	assert.Equal(t, "1001011", seed)
}

func TestRandomSeed(t *testing.T) {
	seed, err := randomSeed(12)
	require.NoError(t, err)
	assert.Len(t, seed, 12)
	assert.Contains(t, seed, "1")

	_, err = randomSeed(3)
	assert.Error(t, err)

	_, err = randomSeed(64)
	assert.Error(t, err)
}

func TestSeedFromEntropy(t *testing.T) {
	entropy := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	seed, err := seedFromEntropy(entropy, 16)
	require.NoError(t, err)
	assert.Equal(t, "1101111010101101", seed)

	_, err = seedFromEntropy(entropy, 3)
	assert.Error(t, err)

	_, err = seedFromEntropy(entropy, 33)
	assert.Error(t, err)

	_, err = seedFromEntropy([]byte{0x00, 0x00}, 16)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "all zeros")
}

func TestResolveKeyStreamFlagPrecedence(t *testing.T) {
	ks, err := resolveKeyStream("1011", "")
	require.NoError(t, err)
	assert.Equal(t, "1011", ks)

	_, err = resolveKeyStream("1011", "profile")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not both")

	_, err = resolveKeyStream("", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestReadYesNo(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("maybe\nyes\n"))

	ok, err := readYesNo(reader, "continue? ")
	require.NoError(t, err)
	assert.True(t, ok)

	reader = bufio.NewReader(strings.NewReader("N\n"))
	ok, err = readYesNo(reader, "continue? ")
	require.NoError(t, err)
	assert.False(t, ok)
}
