package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bitseq/lfsrkey/internal/validation"
	"github.com/bitseq/lfsrkey/pkg/config"
	"github.com/bitseq/lfsrkey/pkg/lfsr"
	"github.com/bitseq/lfsrkey/pkg/xorcipher"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// session carries the state of one interactive run: the reader over
// stdin, the tool configuration, and the keystream currently in use.
type session struct {
	reader    *bufio.Reader
	cfg       *config.Config
	keyStream string
}

func NewInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Guided keystream generation and encryption session",
		Long: `Walk through seed entry, tap selection, keystream generation with
a full register trace, and message encryption in a prompt-driven loop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &session{
				reader: bufio.NewReader(os.Stdin),
				cfg:    loadConfig(),
			}
			return s.run(cmd.Context())
		},
	}
}

func (s *session) run(ctx context.Context) error {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Println("==============================================")
	cyan.Println("             LFSR Key Generator")
	cyan.Println("==============================================")
	fmt.Println("This program generates a key stream using a")
	fmt.Println("Linear Feedback Shift Register (LFSR), a core")
	fmt.Println("component in stream cipher encryption.")
	fmt.Println()
	fmt.Println("Start by entering your seed below!")
	fmt.Println("----------------------------------------------")

	for {
		seed, err := s.promptSeed()
		if err != nil {
			return err
		}

		if err := s.generateLoop(ctx, seed); err != nil {
			return err
		}

		if err := s.encryptLoop(); err != nil {
			return err
		}

		again, err := readYesNo(s.reader, "Do you want to generate another key? (yes/no): ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// promptSeed asks for a seed until it passes validation.
func (s *session) promptSeed() (string, error) {
	for {
		prompt := fmt.Sprintf("Enter seed (binary, at least %d bits, must contain at least one '1'): ",
			s.cfg.Defaults.MinSeedBits)
		seed, err := readLine(s.reader, prompt)
		if err != nil {
			return "", err
		}

		if err := validation.ValidateSeed(seed); err != nil {
			fmt.Printf("Invalid seed: %v\n", err)
			continue
		}
		if len(seed) > lfsr.MaxWidth {
			fmt.Printf("Seed is too wide: maximum is %d bits.\n", lfsr.MaxWidth)
			continue
		}

		return seed, nil
	}
}

// generateLoop selects taps and generates the keystream, offering a
// retry with different taps when the stream comes out short.
func (s *session) generateLoop(ctx context.Context, seed string) error {
	m := len(seed)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	for {
		recommended, err := lfsr.FindPrimitiveTaps(ctx, m)
		if errors.Is(err, lfsr.ErrNoPrimitiveTaps) {
			yellow.Printf("No primitive polynomial found; recommended fallback taps %s are unverified.\n",
				formatTaps(recommended))
		} else if err != nil {
			return err
		}
		fmt.Printf("Recommended taps: %s\n", formatTaps(recommended))

		manual, err := readYesNo(s.reader, "Do you want to manually choose taps? (yes/no): ")
		if err != nil {
			return err
		}

		taps := recommended
		if manual {
			taps, err = s.promptTaps(m)
			if err != nil {
				return err
			}
		} else {
			fmt.Printf("Using optimal taps: %s\n", formatTaps(taps))
		}

		register, err := lfsr.New(seed, taps)
		if err != nil {
			return err
		}

		ks, err := lfsr.GenerateKeyStream(ctx, register)
		if errors.Is(err, lfsr.ErrDegenerateKeystream) {
			red := color.New(color.FgRed, color.Bold)
			printTraceTable(ks.Trace)
			red.Println("Error: key stream consists entirely of zeros. Please verify tap positions and seed values.")
			continue
		}
		if err != nil {
			return err
		}

		printTraceTable(ks.Trace)

		if ks.Len() < s.cfg.UI.WarnBelowLen {
			yellow.Printf("Warning: key stream is less than %d bits.\n", s.cfg.UI.WarnBelowLen)
			retry, err := readYesNo(s.reader, "Choose new taps? (yes/no): ")
			if err != nil {
				return err
			}
			if retry {
				continue
			}
		}

		green.Println("Generated Key Stream:")
		displayKeyStream(ks.Bits, s.cfg.UI.ChunkBits)

		s.keyStream = ks.Bits
		return nil
	}
}

// promptTaps reads tap positions one comma-separated list at a time
// until a valid set is entered.
func (s *session) promptTaps(width int) ([]int, error) {
	for {
		prompt := fmt.Sprintf("Enter tap positions (0-based, comma-separated, less than %d): ", width)
		spec, err := readLine(s.reader, prompt)
		if err != nil {
			return nil, err
		}

		taps, err := validation.ParseTaps(spec)
		if err != nil {
			fmt.Printf("Invalid taps: %v\n", err)
			continue
		}
		if err := validation.ValidateTaps(taps, width); err != nil {
			fmt.Printf("Invalid taps: %v\n", err)
			continue
		}

		return taps, nil
	}
}

// encryptLoop repeatedly encrypts and decrypts user messages with the
// session keystream.
func (s *session) encryptLoop() error {
	for {
		choice, err := readLine(s.reader, "Do you want to encrypt\n1-Text\n2-Binary Data? (1/2): ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := s.encryptText(); err != nil {
				return err
			}
		case "2":
			if err := s.encryptBinary(); err != nil {
				return err
			}
		default:
			fmt.Println("Invalid choice! Try again.")
			continue
		}

		again, err := readYesNo(s.reader, "Do you want to encrypt another message? (yes/no): ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *session) encryptText() error {
	plaintext, err := readLine(s.reader, "Enter plaintext message: ")
	if err != nil {
		return err
	}

	ciphertext, err := xorcipher.Encrypt([]byte(plaintext), s.keyStream)
	if err != nil {
		return err
	}

	decrypted, err := xorcipher.Decrypt(ciphertext, s.keyStream)
	if err != nil {
		return err
	}

	fmt.Printf("Encrypted: %s\n", string(ciphertext))
	fmt.Printf("Decrypted: %s\n", string(decrypted))
	return nil
}

func (s *session) encryptBinary() error {
	bits, err := readLine(s.reader, "Enter binary plaintext (0s and 1s): ")
	if err != nil {
		return err
	}

	ciphertext, err := xorcipher.EncryptBinary(bits, s.keyStream)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}

	decrypted, err := xorcipher.DecryptBinary(ciphertext, s.keyStream)
	if err != nil {
		return err
	}

	fmt.Printf("Encrypted Binary: %s\n", ciphertext)
	fmt.Printf("Decrypted Binary: %s\n", decrypted)
	return nil
}
