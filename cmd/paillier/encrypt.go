package main

import (
	pailliercore "github.com/mr-shifu/paillier-lib/core/paillier"
	"github.com/mr-shifu/paillier-lib/pkg/codec"
	sw_paillier "github.com/mr-shifu/paillier-lib/pkg/cryptosuite/sw/paillier"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newEncryptCmd(c *cli) *cobra.Command {
	var key map[string]*encodedInt

	cmd := &cobra.Command{
		Use:   "encrypt <text>",
		Short: "Encrypt text under a public key",
		Long: `Encrypts the UTF-8 bytes of <text>, read as a big-endian integer, under the
public key (--n, --g) and prints the ciphertext.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := pailliercore.NewPublicKey(key["n"].x, key["g"].x)
			if err != nil {
				return err
			}

			mgr := c.keyManager(0)
			opts, err := newKeyOptions()
			if err != nil {
				return err
			}
			if _, err := mgr.ImportKey(sw_paillier.NewPaillierKey(nil, pk, nil), opts); err != nil {
				return err
			}

			ct, err := mgr.Encrypt(codec.TextToInt(args[0]), opts)
			if errors.Is(err, pailliercore.ErrPlaintextOutOfRange) {
				return errors.WithMessage(err, "text is too long for this key")
			}
			if err != nil {
				return err
			}

			printValue(cmd.OutOrStdout(), "ciphertext", ct.Big())
			return nil
		},
	}

	key = intFlags(cmd, "n", "g")
	return cmd
}
