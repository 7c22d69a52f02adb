package main

import (
	"github.com/mr-shifu/paillier-lib/internal/configs"
	com_keystore "github.com/mr-shifu/paillier-lib/pkg/common/keystore"
	"github.com/mr-shifu/paillier-lib/pkg/keyopts"
	"github.com/mr-shifu/paillier-lib/pkg/keystore"
	"github.com/mr-shifu/paillier-lib/pkg/logging"
	"github.com/mr-shifu/paillier-lib/pkg/vault"
	"github.com/spf13/cobra"
)

// cli holds the state shared by every command of one invocation.
type cli struct {
	configPath string
	verbose    bool
	debug      bool

	cfg       *configs.Config
	logger    logging.Logger
	keystores com_keystore.KeystoreFactory
}

func newRootCmd() *cobra.Command {
	c := &cli{
		keystores: keystore.InMemoryKeystoreFactory{
			Vaults:  vault.InMemoryVaultFactory{},
			KeyOpts: keyopts.InMemoryKeyOptsFactory{},
		},
	}

	rootCmd := &cobra.Command{
		Use:   "paillier",
		Short: "Paillier key generation, encryption, decryption and homomorphism checks.",
		Long: `paillier generates Paillier key pairs from safe primes, encrypts and decrypts
text under them, and checks the additive and scalar homomorphic laws of a key pair.

Integers (n, g, lambda, mu and ciphertexts) are printed and read as the base64
encoding of their decimal string.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "enable debug output")

	rootCmd.AddCommand(newKeygenCmd(c))
	rootCmd.AddCommand(newEncryptCmd(c))
	rootCmd.AddCommand(newDecryptCmd(c))
	rootCmd.AddCommand(newVerifyCmd(c))
	rootCmd.AddCommand(newDemoCmd(c))

	return rootCmd
}

// setup loads the config file and builds the logger. --verbose and --debug
// override the configured level.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := configs.Load(c.configPath)
	if err != nil {
		return err
	}
	switch {
	case c.debug:
		cfg.LogLevel = "debug"
	case c.verbose:
		cfg.LogLevel = "info"
	}

	logger, err := logging.NewWithHandler(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	c.logger.Debug(cmd.Context(), "initialized", "command", cmd.Name(), "config", c.configPath, "bits", cfg.Bits)
	return nil
}
