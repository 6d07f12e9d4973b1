package cli

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/bitseq/lfsrkey/pkg/config"
	"github.com/bitseq/lfsrkey/pkg/keystore"
	"github.com/bitseq/lfsrkey/pkg/lfsr"
	"github.com/bitseq/lfsrkey/pkg/secure"
	"github.com/fatih/color"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

const seedDerivationSalt = "lfsrkey-seed-v1"

// readLine prompts and reads one trimmed line from the reader.
func readLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readYesNo prompts until the user answers yes or no.
func readYesNo(reader *bufio.Reader, prompt string) (bool, error) {
	for {
		answer, err := readLine(reader, prompt)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		fmt.Println("Please answer yes or no.")
	}
}

// readPassphrase reads a passphrase from the terminal without echo
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		passBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(passBytes), nil
	}

	// Fallback for non-terminal
	reader := bufio.NewReader(os.Stdin)
	pass, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pass), nil
}

// deriveSeed stretches a passphrase into a register seed of the given
// width using PBKDF2-SHA256. The same passphrase and width always
// produce the same seed.
func deriveSeed(passphrase string, width int) string {
	keyBytes := pbkdf2.Key([]byte(passphrase), []byte(seedDerivationSalt), 100000, (width+7)/8, sha256.New)
	defer secure.Zero(keyBytes)

	return bitsFromBytes(keyBytes, width)
}

// bitsFromBytes renders the first width bits of a byte slice as a
// '0'/'1' string, most significant bit first.
func bitsFromBytes(data []byte, width int) string {
	bits := make([]byte, width)
	for i := 0; i < width; i++ {
		bit := (data[i/8] >> uint(7-i%8)) & 1
		bits[i] = '0' + bit
	}
	return string(bits)
}

// formatTaps renders a tap list the way the trace table does, highest
// position first: [6, 5, 2].
func formatTaps(taps []int) string {
	parts := make([]string, len(taps))
	for i, tap := range taps {
		parts[i] = fmt.Sprintf("%d", tap)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatState renders a register snapshot as [1, 0, 1].
func formatState(state []int) string {
	parts := make([]string, len(state))
	for i, bit := range state {
		parts[i] = fmt.Sprintf("%d", bit)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// printTraceTable renders the per-cycle generation trace.
func printTraceTable(trace []lfsr.CycleTrace) {
	cyan := color.New(color.FgCyan, color.Bold)

	cyan.Println("Clock Cycle | Register State | Feedback Bit | Output Bit")
	fmt.Println("-------------------------------------------------------")

	for _, rec := range trace {
		fmt.Printf("%11d | %s | %d | %d\n", rec.Cycle, formatState(rec.State), rec.Feedback, rec.Output)
	}
}

// displayKeyStream prints a keystream in fixed-width rows.
func displayKeyStream(bits string, chunkBits int) {
	if chunkBits <= 0 {
		chunkBits = 50
	}

	for i := 0; i < len(bits); i += chunkBits {
		end := i + chunkBits
		if end > len(bits) {
			end = len(bits)
		}
		fmt.Println(bits[i:end])
	}
}

// loadConfig returns the tool configuration, falling back to defaults
// when no config can be read or written.
func loadConfig() *config.Config {
	cm, err := config.NewConfigManager()
	if err != nil {
		return config.DefaultConfig()
	}
	return cm.GetConfig()
}

// openProfileStore opens the keystream profile store at the configured
// location.
func openProfileStore() (*keystore.Store, error) {
	cm, err := config.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dir, err := cm.ProfileDir()
	if err != nil {
		return nil, err
	}

	return keystore.NewStore(dir)
}

// resolveKeyStream returns the keystream bits from an explicit flag or
// a saved profile name.
func resolveKeyStream(keyStream, profileName string) (string, error) {
	if keyStream != "" && profileName != "" {
		return "", fmt.Errorf("use either --keystream or --profile, not both")
	}

	if keyStream != "" {
		return keyStream, nil
	}

	if profileName != "" {
		store, err := openProfileStore()
		if err != nil {
			return "", err
		}

		profile, err := store.Load(profileName)
		if err != nil {
			return "", err
		}
		return profile.KeyStream, nil
	}

	return "", fmt.Errorf("a keystream is required: pass --keystream or --profile")
}
