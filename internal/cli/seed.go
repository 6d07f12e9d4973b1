package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitseq/lfsrkey/internal/validation"
	"github.com/bitseq/lfsrkey/pkg/lfsr"
	"github.com/bitseq/lfsrkey/pkg/seedshare"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
)

func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate, back up, and recover register seeds",
		Long: `Utilities around register seeds: random generation with optional
BIP-39 mnemonic backup, recovery of a seed from its mnemonic, and
Shamir secret-sharing backup of an existing seed.`,
	}

	cmd.AddCommand(
		newSeedRandomCommand(),
		newSeedFromMnemonicCommand(),
		newSeedSplitCommand(),
		newSeedCombineCommand(),
	)

	return cmd
}

func newSeedRandomCommand() *cobra.Command {
	var (
		width       int
		entropyBits int
		mnemonic    bool
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a random register seed",
		Long: `Generate a random register seed. With --mnemonic, the seed is cut
from fresh BIP-39 entropy and the mnemonic is printed so the same seed
can be re-derived later with 'seed from-mnemonic'.`,
		Example: `  # 16 random seed bits
  lfsrkey seed random --width 16

  # Seed with a mnemonic backup of the underlying entropy
  lfsrkey seed random --width 16 --mnemonic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !mnemonic {
				seed, err := randomSeed(width)
				if err != nil {
					return err
				}
				fmt.Printf("Seed: %s\n", seed)
				return nil
			}

			if !validation.ValidateEntropyBits(entropyBits) {
				return fmt.Errorf("entropy must be 128, 160, 192, 224, or 256 bits (got %d)", entropyBits)
			}

			entropy, err := bip39.NewEntropy(entropyBits)
			if err != nil {
				return fmt.Errorf("failed to generate entropy: %w", err)
			}

			words, err := bip39.NewMnemonic(entropy)
			if err != nil {
				return fmt.Errorf("failed to encode mnemonic: %w", err)
			}

			seed, err := seedFromEntropy(entropy, width)
			if err != nil {
				return err
			}

			fmt.Printf("Seed: %s\n", seed)

			yellow := color.New(color.FgYellow, color.Bold)
			yellow.Println("\n✨ Mnemonic backup (re-derives the same seed):")
			fmt.Println(words)

			red := color.New(color.FgRed, color.Bold)
			red.Println("\n⚠️  SAVE THIS MNEMONIC to recover the seed later.")
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 16, "Seed width in bits")
	cmd.Flags().IntVar(&entropyBits, "entropy", 128, "BIP-39 entropy size for --mnemonic")
	cmd.Flags().BoolVar(&mnemonic, "mnemonic", false, "Print a BIP-39 mnemonic backup")

	return cmd
}

func newSeedFromMnemonicCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:     "from-mnemonic [words...]",
		Short:   "Re-derive a register seed from its BIP-39 mnemonic",
		Example: `  lfsrkey seed from-mnemonic --width 16 word1 word2 ... word12`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words := strings.Join(args, " ")

			entropy, err := bip39.EntropyFromMnemonic(words)
			if err != nil {
				return fmt.Errorf("invalid mnemonic: %w", err)
			}

			seed, err := seedFromEntropy(entropy, width)
			if err != nil {
				return err
			}

			fmt.Printf("Seed: %s\n", seed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 16, "Seed width in bits")

	return cmd
}

func newSeedSplitCommand() *cobra.Command {
	var (
		seed      string
		parts     int
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a seed into Shamir secret shares",
		Long: `Back up a seed by splitting it into shares, any threshold of which
reconstruct it. Individual shares reveal nothing about the seed.`,
		Example: `  lfsrkey seed split --seed 1001011 --parts 5 --threshold 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateBinaryString(seed); err != nil {
				return fmt.Errorf("invalid seed: %w", err)
			}

			shares, err := seedshare.Split(seed, seedshare.Config{
				Parts:     parts,
				Threshold: threshold,
			})
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Printf("Created %d shares, any %d reconstruct the seed:\n\n", parts, threshold)
			for _, share := range shares {
				fmt.Printf("Share %d: %s\n", share.Index, hex.EncodeToString(share.Data))
			}

			red := color.New(color.FgRed, color.Bold)
			red.Println("\n⚠️  Store each share in a different location.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&seed, "seed", "s", "", "Binary seed string to split")
	cmd.Flags().IntVarP(&parts, "parts", "n", 3, "Number of shares to create")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "Shares required to reconstruct")
	cmd.MarkFlagRequired("seed")

	return cmd
}

func newSeedCombineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "combine [share...]",
		Short:   "Reconstruct a seed from Shamir shares",
		Example: `  lfsrkey seed combine 1a2b3c... 4d5e6f...`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares := make([]seedshare.Share, len(args))
			for i, arg := range args {
				data, err := hex.DecodeString(strings.TrimSpace(arg))
				if err != nil {
					return fmt.Errorf("share %d is not valid hex: %w", i+1, err)
				}
				shares[i] = seedshare.Share{Index: byte(i + 1), Data: data}
			}

			seed, err := seedshare.Combine(shares)
			if err != nil {
				return err
			}

			if err := validation.ValidateBinaryString(seed); err != nil {
				return fmt.Errorf("reconstructed value is not a binary seed; check that the shares belong together: %w", err)
			}

			fmt.Printf("Seed: %s\n", seed)
			return nil
		},
	}

	return cmd
}

// seedFromEntropy cuts the first width bits of an entropy buffer into a
// register seed.
func seedFromEntropy(entropy []byte, width int) (string, error) {
	maxBits := lfsr.MaxWidth
	if len(entropy)*8 < maxBits {
		maxBits = len(entropy) * 8
	}
	if width < validation.MinSeedBits || width > maxBits {
		return "", fmt.Errorf("seed width must be between %d and %d bits", validation.MinSeedBits, maxBits)
	}

	seed := bitsFromBytes(entropy, width)
	if !strings.Contains(seed, "1") {
		return "", fmt.Errorf("entropy window is all zeros; choose a different width or regenerate")
	}
	return seed, nil
}
