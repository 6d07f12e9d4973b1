package cli

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bitseq/lfsrkey/internal/validation"
	"github.com/bitseq/lfsrkey/pkg/keystore"
	"github.com/bitseq/lfsrkey/pkg/lfsr"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewGenerateCommand() *cobra.Command {
	var (
		seed       string
		tapSpec    string
		passphrase bool
		randomBits int
		width      int
		showTrace  bool
		saveName   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an LFSR keystream",
		Long: `Generate a pseudorandom keystream by clocking a linear feedback
shift register until its state sequence repeats.

The seed fixes the register width. Unless tap positions are given
explicitly, the primitive-polynomial search picks taps that make the
register walk every non-zero state, yielding the maximum keystream
length of 2^m - 1 bits for a width-m register.

The keystream is a pedagogical pseudorandom sequence, not
cryptographically secure key material.`,
		Example: `  # Generate from an explicit seed with automatic tap selection
  lfsrkey generate --seed 1001011

  # Choose taps manually and show the per-cycle trace
  lfsrkey generate --seed 1001011 --taps 6,5 --trace

  # Derive the seed from a passphrase
  lfsrkey generate --passphrase --width 16

  # Random 12-bit seed, saved as a named profile
  lfsrkey generate --random 12 --save session-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			seed, err := resolveSeed(seed, passphrase, randomBits, width)
			if err != nil {
				return err
			}
			if err := validation.ValidateSeed(seed); err != nil {
				return err
			}

			m := len(seed)
			if m > lfsr.MaxWidth {
				return fmt.Errorf("seed width %d exceeds maximum %d", m, lfsr.MaxWidth)
			}

			yellow := color.New(color.FgYellow, color.Bold)

			var taps []int
			verified := false
			if tapSpec != "" {
				taps, err = validation.ParseTaps(tapSpec)
				if err != nil {
					return err
				}
				if err := validation.ValidateTaps(taps, m); err != nil {
					return err
				}

				verified, err = lfsr.IsPrimitivePolynomial(cmd.Context(), m, taps)
				if err != nil {
					return err
				}
				if !verified {
					yellow.Println("⚠️  Chosen taps are not a primitive polynomial; the keystream will repeat early.")
				}
			} else {
				taps, err = lfsr.FindPrimitiveTaps(cmd.Context(), m)
				if errors.Is(err, lfsr.ErrNoPrimitiveTaps) {
					yellow.Printf("⚠️  No primitive polynomial found for width %d; using unverified fallback taps %s.\n", m, formatTaps(taps))
				} else if err != nil {
					return fmt.Errorf("tap search failed: %w", err)
				} else {
					verified = true
				}
				fmt.Printf("Selected taps: %s\n", formatTaps(taps))
			}

			register, err := lfsr.New(seed, taps)
			if err != nil {
				return err
			}

			ks, err := lfsr.GenerateKeyStream(cmd.Context(), register)
			if errors.Is(err, lfsr.ErrDegenerateKeystream) {
				red := color.New(color.FgRed, color.Bold)
				red.Println("Error: keystream consists entirely of zeros. Verify tap positions and seed values.")
				return err
			}
			if err != nil {
				return fmt.Errorf("keystream generation failed: %w", err)
			}

			if showTrace {
				printTraceTable(ks.Trace)
				fmt.Println()
			}

			if ks.Len() < cfg.UI.WarnBelowLen {
				yellow.Printf("Warning: keystream is only %d bits (less than %d).\n", ks.Len(), cfg.UI.WarnBelowLen)
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Printf("Generated keystream (%d bits):\n", ks.Len())
			displayKeyStream(ks.Bits, cfg.UI.ChunkBits)

			if saveName != "" {
				if err := validation.ValidateProfileName(saveName); err != nil {
					return err
				}

				store, err := openProfileStore()
				if err != nil {
					return err
				}

				profile := &keystore.Profile{
					Name:      saveName,
					Seed:      seed,
					Taps:      taps,
					Width:     m,
					KeyStream: ks.Bits,
					Verified:  verified,
				}
				if err := store.Save(profile); err != nil {
					return err
				}
				fmt.Printf("Saved profile '%s'\n", saveName)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&seed, "seed", "s", "", "Binary seed string (fixes the register width)")
	cmd.Flags().StringVarP(&tapSpec, "taps", "t", "", "Comma-separated tap positions (default: primitive-polynomial search)")
	cmd.Flags().BoolVar(&passphrase, "passphrase", false, "Derive the seed from a passphrase prompt")
	cmd.Flags().IntVar(&randomBits, "random", 0, "Generate a random seed of this many bits")
	cmd.Flags().IntVarP(&width, "width", "w", 16, "Register width for --passphrase seeds")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "Show the per-cycle register trace")
	cmd.Flags().StringVar(&saveName, "save", "", "Save the keystream as a named profile")

	return cmd
}

// resolveSeed picks the register seed from the mutually exclusive seed
// sources: explicit bits, passphrase derivation, or random generation.
func resolveSeed(seed string, passphrase bool, randomBits, width int) (string, error) {
	sources := 0
	if seed != "" {
		sources++
	}
	if passphrase {
		sources++
	}
	if randomBits > 0 {
		sources++
	}
	if sources == 0 {
		return "", fmt.Errorf("a seed is required: pass --seed, --passphrase, or --random")
	}
	if sources > 1 {
		return "", fmt.Errorf("--seed, --passphrase, and --random are mutually exclusive")
	}

	switch {
	case seed != "":
		return seed, nil

	case passphrase:
		pass, err := readPassphrase("Enter seed passphrase: ")
		if err != nil {
			return "", err
		}
		if pass == "" {
			return "", fmt.Errorf("passphrase cannot be empty")
		}
		return deriveSeed(pass, width), nil

	default:
		return randomSeed(randomBits)
	}
}

// randomSeed draws width random bits, retrying in the vanishingly
// unlikely case they are all zero.
func randomSeed(width int) (string, error) {
	if width < validation.MinSeedBits || width > lfsr.MaxWidth {
		return "", fmt.Errorf("random seed width must be between %d and %d", validation.MinSeedBits, lfsr.MaxWidth)
	}

	for {
		data := make([]byte, (width+7)/8)
		if _, err := io.ReadFull(rand.Reader, data); err != nil {
			return "", fmt.Errorf("failed to generate random seed: %w", err)
		}

		seed := bitsFromBytes(data, width)
		if strings.Contains(seed, "1") {
			return seed, nil
		}
	}
}
