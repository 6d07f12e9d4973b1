package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bitseq/lfsrkey/internal/cli"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "lfsrkey",
		Short: "LFSR keystream generator and XOR stream cipher",
		Long: `lfsrkey generates pseudorandom keystreams with a linear feedback
shift register and encrypts messages with them.

Features:
- Fibonacci LFSR simulation with a per-cycle register trace
- Automatic primitive-polynomial tap search for maximum-length streams
- XOR stream cipher for text and binary messages
- Passphrase, random, and BIP-39 mnemonic seed sources
- Shamir secret-sharing backup of seeds
- Named keystream profiles for later decryption

The keystreams are pedagogical: a plain LFSR is linear and easily
broken, so do not use this tool to protect real secrets.`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	}

	rootCmd.AddCommand(
		cli.NewGenerateCommand(),
		cli.NewTapsCommand(),
		cli.NewEncryptCommand(),
		cli.NewDecryptCommand(),
		cli.NewSeedCommand(),
		cli.NewProfileCommand(),
		cli.NewInteractiveCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
