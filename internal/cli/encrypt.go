package cli

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitseq/lfsrkey/internal/validation"
	"github.com/bitseq/lfsrkey/pkg/xorcipher"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewEncryptCommand() *cobra.Command {
	var (
		keyStream   string
		profileName string
		input       string
		output      string
		text        string
		binaryMode  bool
		armor       bool
	)

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text or binary data with an LFSR keystream",
		Long: `Encrypt data by XORing it with a keystream, cycling the keystream
when the message is longer. Decryption is the same operation with the
same keystream.

In binary mode the message must be a '0'/'1' string and is XORed bit
by bit; otherwise the message bytes are XORed with the keystream
characters directly.`,
		Example: `  # Encrypt text with an explicit keystream, base64 output
  lfsrkey encrypt --keystream 1110010 --text "attack at dawn" --armor

  # Encrypt a file using a saved profile
  lfsrkey encrypt --profile session-1 -i notes.txt -o notes.enc

  # Encrypt a binary message
  lfsrkey encrypt --keystream 1110010 --binary --text 110011`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := resolveKeyStream(keyStream, profileName)
			if err != nil {
				return err
			}

			plaintext, err := readMessage(text, input)
			if err != nil {
				return err
			}

			if binaryMode {
				ciphertext, err := xorcipher.EncryptBinary(strings.TrimSpace(string(plaintext)), ks)
				if err != nil {
					return err
				}
				return writeResult([]byte(ciphertext), output, false)
			}

			ciphertext, err := xorcipher.Encrypt(plaintext, ks)
			if err != nil {
				return err
			}
			return writeResult(ciphertext, output, armor)
		},
	}

	cmd.Flags().StringVarP(&keyStream, "keystream", "k", "", "Keystream bits to encrypt with")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Saved profile to take the keystream from")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file to encrypt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for encrypted data")
	cmd.Flags().StringVar(&text, "text", "", "Text to encrypt directly")
	cmd.Flags().BoolVar(&binaryMode, "binary", false, "Treat the message as a '0'/'1' bit string")
	cmd.Flags().BoolVar(&armor, "armor", false, "Output as base64 encoded text")

	return cmd
}

func NewDecryptCommand() *cobra.Command {
	var (
		keyStream   string
		profileName string
		input       string
		output      string
		text        string
		binaryMode  bool
		armor       bool
	)

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt data encrypted with an LFSR keystream",
		Long: `Decrypt data produced by the 'encrypt' command. XOR is an
involution, so decryption applies the same keystream the same way;
supplying the wrong keystream yields garbage rather than an error.`,
		Example: `  # Decrypt base64 ciphertext with an explicit keystream
  lfsrkey decrypt --keystream 1110010 --text "BVMFEQ==" --armor

  # Decrypt a file using a saved profile
  lfsrkey decrypt --profile session-1 -i notes.enc -o notes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := resolveKeyStream(keyStream, profileName)
			if err != nil {
				return err
			}

			message, err := readMessage(text, input)
			if err != nil {
				return err
			}

			if binaryMode {
				plaintext, err := xorcipher.DecryptBinary(strings.TrimSpace(string(message)), ks)
				if err != nil {
					return err
				}
				return writeResult([]byte(plaintext), output, false)
			}

			if armor {
				decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(message)))
				if err != nil {
					return fmt.Errorf("failed to decode base64: %w", err)
				}
				message = decoded
			}

			plaintext, err := xorcipher.Decrypt(message, ks)
			if err != nil {
				return err
			}
			return writeResult(plaintext, output, false)
		},
	}

	cmd.Flags().StringVarP(&keyStream, "keystream", "k", "", "Keystream bits to decrypt with")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Saved profile to take the keystream from")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file to decrypt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for decrypted data")
	cmd.Flags().StringVar(&text, "text", "", "Text to decrypt directly")
	cmd.Flags().BoolVar(&binaryMode, "binary", false, "Treat the message as a '0'/'1' bit string")
	cmd.Flags().BoolVar(&armor, "armor", false, "Input is base64 encoded")

	return cmd
}

// readMessage collects the message from --text, an input file, or
// stdin, in that order of precedence.
func readMessage(text, input string) ([]byte, error) {
	if text != "" && input != "" {
		return nil, fmt.Errorf("use either --text or --input, not both")
	}

	if text != "" {
		return []byte(text), nil
	}

	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		if err := validateMessageNotEmpty(data); err != nil {
			return nil, err
		}
		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if err := validateMessageNotEmpty(data); err != nil {
		return nil, err
	}
	return data, nil
}

func validateMessageNotEmpty(data []byte) error {
	if len(validation.SanitizeInput(string(data))) == 0 {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// writeResult sends the transformed message to a file or stdout.
func writeResult(data []byte, output string, armor bool) error {
	if armor {
		data = []byte(base64.StdEncoding.EncodeToString(data))
	}

	if output != "" {
		if err := os.WriteFile(output, data, 0600); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		green := color.New(color.FgGreen, color.Bold)
		green.Printf("✅ Written to: %s\n", output)
		return nil
	}

	if armor {
		fmt.Println(string(data))
	} else {
		os.Stdout.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Println()
		}
	}
	return nil
}
