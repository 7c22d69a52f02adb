package main

import (
	"fmt"
	"math/big"

	pailliercore "github.com/mr-shifu/paillier-lib/core/paillier"
	"github.com/mr-shifu/paillier-lib/pkg/codec"
	"github.com/spf13/cobra"
)

func newDecryptCmd(c *cli) *cobra.Command {
	var (
		key map[string]*encodedInt
		g   *encodedInt
	)

	cmd := &cobra.Command{
		Use:   "decrypt <ciphertext>",
		Short: "Decrypt a ciphertext with a secret key",
		Long: `Decrypts <ciphertext> with the secret key (--n, --lambda, --mu) and prints
the text it encrypts. When --g is given, the key pair is checked first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := codec.DecodeInt(args[0])
			if err != nil {
				return err
			}

			n := key["n"].x
			dk, err := decryptionKey(n, g.x, key["lambda"].x, key["mu"].x)
			if err != nil {
				return err
			}

			m, err := pailliercore.Decrypt(ct, dk, n)
			if err != nil {
				return err
			}
			text, err := codec.IntToText(m)
			if err != nil {
				return err
			}
			c.logger.Debug(cmd.Context(), "decrypted", "bytes", len(m.Bytes()), "checked", g.x != nil)

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	key = intFlags(cmd, "n", "lambda", "mu")
	g = optionalIntFlag(cmd, "g")
	return cmd
}

// decryptionKey rebuilds the key from n, λ and μ. A non-nil g is used to
// validate μ against the full key pair.
func decryptionKey(n, g, lambda, mu *big.Int) (*pailliercore.DecryptionKey, error) {
	if g == nil {
		return pailliercore.NewDecryptionKey(n, lambda, mu)
	}
	pk, err := pailliercore.NewPublicKey(n, g)
	if err != nil {
		return nil, err
	}
	sk, err := pailliercore.NewSecretKey(pk, lambda, mu)
	if err != nil {
		return nil, err
	}
	return sk.DecryptionKey(), nil
}
