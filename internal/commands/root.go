package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/codahale/xtea"
	"github.com/codahale/xtea/internal/config"
	"github.com/codahale/xtea/internal/encryption"
)

// NewRootCommand creates the root command with common configuration. Flags shared by the encrypt and decrypt
// subcommands are registered as persistent flags.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "xtea [flags] command [flags]",
		Short: "File encryption utility",
		Long: `A file encryption utility built on the XTEA block cipher.
Provides commands for key generation, encryption, and decryption.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("key", "k", "", "Encryption key (16 bytes, hex-encoded)")
	root.PersistentFlags().IntP("rounds", "r", xtea.DefaultRounds, "Number of Feistel rounds")
	root.PersistentFlags().
		IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().String("suffix", ".xtea", "Suffix to append to encrypted files")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")

	root.AddCommand(NewEncryptCommand(cfg), NewDecryptCommand(cfg), NewKeygenCommand())

	return root
}

// Execute runs the root command against os.Args, returning any error encountered.
func Execute(version string) error {
	cfg := &config.Config{}

	return NewRootCommand(cfg, version).Execute()
}

// preRun returns a PreRunE handler that copies flag values and positional args into cfg and validates the
// configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		var err error
		if cfg.Key, err = flags.GetString("key"); err != nil {
			return err
		}
		if cfg.Rounds, err = flags.GetInt("rounds"); err != nil {
			return err
		}
		if cfg.Parallel, err = flags.GetInt("parallel"); err != nil {
			return err
		}
		if cfg.Suffix, err = flags.GetString("suffix"); err != nil {
			return err
		}
		if cfg.Quiet, err = flags.GetBool("quiet"); err != nil {
			return err
		}
		if cfg.Delete, err = flags.GetBool("delete"); err != nil {
			return err
		}

		cfg.Files = args

		return cfg.Validate()
	}
}

// runProcessor encrypts or decrypts the configured files.
func runProcessor(cfg *config.Config) error {
	proc, err := encryption.NewProcessor(cfg, afero.NewOsFs())
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	if _, _, err := proc.ProcessFiles(); err != nil {
		return err
	}

	return nil
}
