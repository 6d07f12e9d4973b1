// Package seedshare backs up register seeds by splitting them into
// Shamir secret shares, so a seed can be reconstructed from a threshold
// of shares instead of being stored whole.
package seedshare

import (
	"fmt"

	"github.com/hashicorp/vault/shamir"
)

type Share struct {
	Index byte
	Data  []byte
}

type Config struct {
	Parts     int
	Threshold int
}

func (c *Config) Validate() error {
	if c.Parts < 2 {
		return fmt.Errorf("parts must be at least 2, got %d", c.Parts)
	}
	if c.Threshold < 2 {
		return fmt.Errorf("threshold must be at least 2, got %d", c.Threshold)
	}
	if c.Threshold > c.Parts {
		return fmt.Errorf("threshold (%d) cannot be greater than parts (%d)", c.Threshold, c.Parts)
	}
	if c.Parts > 255 {
		return fmt.Errorf("parts cannot exceed 255, got %d", c.Parts)
	}
	return nil
}

// Split divides a seed bit string into shares, any Threshold of which
// reconstruct it.
func Split(seed string, config Config) ([]Share, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if len(seed) == 0 {
		return nil, fmt.Errorf("seed cannot be empty")
	}

	shares, err := shamir.Split([]byte(seed), config.Parts, config.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split seed: %w", err)
	}

	result := make([]Share, len(shares))
	for i, share := range shares {
		result[i] = Share{
			Index: byte(i + 1),
			Data:  share,
		}
	}

	return result, nil
}

// Combine reconstructs the seed bit string from a threshold of shares.
func Combine(shares []Share) (string, error) {
	if len(shares) < 2 {
		return "", fmt.Errorf("at least 2 shares are required for reconstruction")
	}

	shareBytes := make([][]byte, len(shares))
	for i, share := range shares {
		if len(share.Data) == 0 {
			return "", fmt.Errorf("share %d has empty data", share.Index)
		}
		shareBytes[i] = share.Data
	}

	seed, err := shamir.Combine(shareBytes)
	if err != nil {
		return "", fmt.Errorf("failed to combine shares: %w", err)
	}

	return string(seed), nil
}
