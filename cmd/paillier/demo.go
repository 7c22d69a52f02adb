package main

import (
	"fmt"

	pailliercore "github.com/mr-shifu/paillier-lib/core/paillier"
	"github.com/mr-shifu/paillier-lib/pkg/codec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ErrRoundTrip = errors.New("paillier: decrypted text differs from the original")

func newDemoCmd(c *cli) *cobra.Command {
	var (
		bits   int
		m1, m2 string
	)

	cmd := &cobra.Command{
		Use:   "demo <text>",
		Short: "Generate a key pair, then encrypt and decrypt text with it",
		Long: `Generates a key pair, encrypts <text>, decrypts it again and checks that the
result matches. With --m1 and --m2 the homomorphic laws are then checked on
those two texts under the same key pair.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := c.keyManager(bits)
			opts, err := newKeyOptions()
			if err != nil {
				return err
			}
			s, stop := c.startSpinner(cmd, "Generating safe primes...")
			if _, err := mgr.GenerateKey(opts); err != nil {
				s.FinalMSG = "key generation failed\n"
				stop()
				return err
			}
			stop()

			ct, err := mgr.Encrypt(codec.TextToInt(args[0]), opts)
			if errors.Is(err, pailliercore.ErrPlaintextOutOfRange) {
				return errors.WithMessage(err, "text is too long for this key")
			}
			if err != nil {
				return err
			}
			m, err := mgr.Decrypt(ct, opts)
			if err != nil {
				return err
			}
			text, err := codec.IntToText(m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "original: %s\n", args[0])
			printValue(out, "ciphertext", ct.Big())
			fmt.Fprintf(out, "decrypted: %s\n", text)
			if text != args[0] {
				failure(out, "decryption is incorrect")
				return ErrRoundTrip
			}
			success(out, "decryption is correct")

			if m1 == "" && m2 == "" {
				return nil
			}
			report, err := mgr.VerifyHomomorphism(codec.TextToInt(m1), codec.TextToInt(m2), opts)
			if errors.Is(err, pailliercore.ErrPlaintextOutOfRange) {
				return errors.WithMessage(err, "text is too long for this key")
			}
			if report != nil {
				printReport(out, report)
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&bits, "bits", "b", 0, "bit length of each safe prime (default from config)")
	cmd.Flags().StringVar(&m1, "m1", "", "first text of the homomorphism check")
	cmd.Flags().StringVar(&m2, "m2", "", "second text of the homomorphism check")
	cmd.MarkFlagsRequiredTogether("m1", "m2")
	return cmd
}
