package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func newKeygenCmd(c *cli) *cobra.Command {
	var bits int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a Paillier key pair",
		Long: `Generates two safe primes of --bits bits each and prints the public key (n, g)
and the secret key (lambda, mu).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := c.keyManager(bits)
			opts, err := newKeyOptions()
			if err != nil {
				return err
			}

			s, stop := c.startSpinner(cmd, "Generating safe primes...")
			key, err := mgr.GenerateKey(opts)
			if err != nil {
				s.FinalMSG = "key generation failed\n"
				stop()
				return err
			}
			s.FinalMSG = fmt.Sprintf("key pair generated (ski %s)\n", hex.EncodeToString(key.SKI()))
			stop()

			out := cmd.OutOrStdout()
			sk := key.SecretKeyRaw()
			printValue(out, "n", sk.N())
			printValue(out, "g", sk.G())
			printValue(out, "lambda", sk.Lambda())
			printValue(out, "mu", sk.Mu())
			return nil
		},
	}

	cmd.Flags().IntVarP(&bits, "bits", "b", 0, "bit length of each safe prime (default from config)")
	return cmd
}
