package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var binaryPattern = regexp.MustCompile(`^[01]+$`)

// MinSeedBits is the shortest seed the CLI accepts for key generation.
// The engine itself works from 2 bits up, but shorter registers produce
// keystreams too short to be interesting.
const MinSeedBits = 7

func ValidateBinaryString(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("binary string cannot be empty")
	}

	if !binaryPattern.MatchString(input) {
		return fmt.Errorf("binary string may contain only '0' and '1'")
	}

	return nil
}

// ValidateSeed checks a register seed for key generation: binary, at
// least MinSeedBits long, and containing at least one '1' so the
// register does not start in the absorbing all-zero state.
func ValidateSeed(seed string) error {
	if err := ValidateBinaryString(seed); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	if len(seed) < MinSeedBits {
		return fmt.Errorf("seed must be at least %d bits (got %d)", MinSeedBits, len(seed))
	}

	if !strings.Contains(seed, "1") {
		return fmt.Errorf("seed must contain at least one '1'")
	}

	return nil
}

func ValidateTaps(taps []int, width int) error {
	if len(taps) == 0 {
		return fmt.Errorf("at least one tap position is required")
	}

	seen := make(map[int]bool, len(taps))
	for _, tap := range taps {
		if tap < 0 || tap >= width {
			return fmt.Errorf("tap position %d must be between 0 and %d", tap, width-1)
		}
		if seen[tap] {
			return fmt.Errorf("duplicate tap position %d", tap)
		}
		seen[tap] = true
	}

	return nil
}

// ParseTaps parses a comma-separated tap list such as "6,5,2".
func ParseTaps(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("tap list cannot be empty")
	}

	parts := strings.Split(spec, ",")
	taps := make([]int, len(parts))
	for i, part := range parts {
		tap, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid tap position '%s'", strings.TrimSpace(part))
		}
		taps[i] = tap
	}

	return taps, nil
}

func ValidateProfileName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if len(name) > 64 {
		return fmt.Errorf("profile name too long (max 64 characters)")
	}

	for _, ch := range name {
		valid := ch == '-' || ch == '_' ||
			(ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9')
		if !valid {
			return fmt.Errorf("profile name contains invalid character %q", ch)
		}
	}

	return nil
}

func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n")
}

// ValidateEntropyBits reports whether a bit count is valid BIP-39
// entropy (128-256 bits in 32-bit steps).
func ValidateEntropyBits(bits int) bool {
	validSizes := []int{128, 160, 192, 224, 256}
	for _, valid := range validSizes {
		if bits == valid {
			return true
		}
	}
	return false
}
