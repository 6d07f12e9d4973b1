package cli

import (
	"encoding/json"
	"fmt"

	"github.com/bitseq/lfsrkey/internal/validation"
	"github.com/bitseq/lfsrkey/pkg/keystore"
	"github.com/bitseq/lfsrkey/pkg/secure"
	"github.com/bitseq/lfsrkey/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved keystream profiles",
		Long: `List, inspect, and delete keystream profiles saved with
'generate --save'. A profile stores the seed, taps, and captured
keystream of a generation run so the stream can be reused for
decryption.`,
	}

	cmd.AddCommand(
		newProfileListCommand(),
		newProfileShowCommand(),
		newProfileDeleteCommand(),
		newProfileExportCommand(),
		newProfileImportCommand(),
	)

	return cmd
}

func newProfileListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved keystream profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProfileStore()
			if err != nil {
				return err
			}

			profiles, err := store.List()
			if err != nil {
				return err
			}

			if len(profiles) == 0 {
				fmt.Println("No profiles saved.")
				return nil
			}

			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Println("Name | Width | Taps | Stream Bits | Verified | Created")
			fmt.Println("------------------------------------------------------")
			for _, p := range profiles {
				fmt.Printf("%s | %d | %s | %d | %t | %s\n",
					p.Name, p.Width, formatTaps(p.Taps), len(p.KeyStream),
					p.Verified, p.Created.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newProfileShowCommand() *cobra.Command {
	var showStream bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved keystream profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateProfileName(args[0]); err != nil {
				return err
			}

			store, err := openProfileStore()
			if err != nil {
				return err
			}

			profile, err := store.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Name:      %s\n", profile.Name)
			fmt.Printf("Seed:      %s\n", profile.Seed)
			fmt.Printf("Taps:      %s\n", formatTaps(profile.Taps))
			fmt.Printf("Width:     %d\n", profile.Width)
			fmt.Printf("Length:    %d bits\n", len(profile.KeyStream))
			fmt.Printf("Verified:  %t\n", profile.Verified)
			fmt.Printf("Created:   %s\n", profile.Created.Format("2006-01-02 15:04:05"))

			if showStream {
				cfg := loadConfig()
				fmt.Println("\nKeystream:")
				displayKeyStream(profile.KeyStream, cfg.UI.ChunkBits)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showStream, "stream", false, "Print the stored keystream bits")

	return cmd
}

func newProfileExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a profile as a passphrase-encrypted vault file",
		Long: `Export a saved profile to a portable encrypted file. The file can
be imported on another machine with 'profile import' and the same
passphrase.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateProfileName(args[0]); err != nil {
				return err
			}

			store, err := openProfileStore()
			if err != nil {
				return err
			}

			profile, err := store.Load(args[0])
			if err != nil {
				return err
			}

			data, err := json.Marshal(profile)
			if err != nil {
				return fmt.Errorf("failed to marshal profile: %w", err)
			}

			pass, err := readPassphrase("Enter export passphrase: ")
			if err != nil {
				return err
			}
			if pass == "" {
				return fmt.Errorf("passphrase cannot be empty")
			}

			passBytes := []byte(pass)
			defer secure.ClearBytes(&passBytes)

			if err := storage.NewVault(output).Save(data, passBytes); err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Printf("✅ Exported profile '%s' to %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Vault file to write")
	cmd.MarkFlagRequired("output")

	return cmd
}

func newProfileImportCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a profile from an encrypted vault file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := readPassphrase("Enter vault passphrase: ")
			if err != nil {
				return err
			}

			passBytes := []byte(pass)
			defer secure.ClearBytes(&passBytes)

			data, err := storage.NewVault(input).Load(passBytes)
			if err != nil {
				return err
			}

			profile := &keystore.Profile{}
			if err := json.Unmarshal(data, profile); err != nil {
				return fmt.Errorf("vault does not contain a profile: %w", err)
			}
			if err := validation.ValidateProfileName(profile.Name); err != nil {
				return err
			}

			store, err := openProfileStore()
			if err != nil {
				return err
			}

			if err := store.Save(profile); err != nil {
				return err
			}

			fmt.Printf("Imported profile '%s'\n", profile.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Vault file to read")
	cmd.MarkFlagRequired("input")

	return cmd
}

func newProfileDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved keystream profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateProfileName(args[0]); err != nil {
				return err
			}

			store, err := openProfileStore()
			if err != nil {
				return err
			}

			if err := store.Delete(args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted profile '%s'\n", args[0])
			return nil
		},
	}
}
