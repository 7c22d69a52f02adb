package main

import (
	"fmt"
	"io"
	"math/big"

	pailliercore "github.com/mr-shifu/paillier-lib/core/paillier"
	"github.com/mr-shifu/paillier-lib/pkg/codec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ErrInvalidOperand = errors.New("paillier: operand is not a decimal integer")

func newVerifyCmd(c *cli) *cobra.Command {
	var (
		bits    int
		decimal bool
	)

	cmd := &cobra.Command{
		Use:   "verify <m1> <m2>",
		Short: "Check the homomorphic laws on two plaintexts",
		Long: `Generates a fresh key pair, encrypts <m1> and <m2> and checks that
  - each ciphertext decrypts to its plaintext,
  - the product of the ciphertexts decrypts to m1 + m2 (mod n),
  - multiplying by g^m2 decrypts to m1 + m2 (mod n),
  - raising either ciphertext to the other plaintext decrypts to m1 * m2 (mod n).

<m1> and <m2> are read as text, like the input of encrypt, unless --decimal is
set. Pass negative decimal operands after "--".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m1, err := operand(args[0], decimal)
			if err != nil {
				return err
			}
			m2, err := operand(args[1], decimal)
			if err != nil {
				return err
			}

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

			report, err := mgr.VerifyHomomorphism(m1, m2, opts)
			if errors.Is(err, pailliercore.ErrPlaintextOutOfRange) {
				return errors.WithMessage(err, "operand is out of range for this key")
			}
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&bits, "bits", "b", 0, "bit length of each safe prime (default from config)")
	cmd.Flags().BoolVar(&decimal, "decimal", false, "read m1 and m2 as decimal integers instead of text")
	return cmd
}

// operand converts a command line plaintext to an integer, either as text or
// as a decimal number.
func operand(arg string, decimal bool) (*big.Int, error) {
	if !decimal {
		return codec.TextToInt(arg), nil
	}
	m, ok := new(big.Int).SetString(arg, 10)
	if !ok {
		return nil, errors.WithMessagef(ErrInvalidOperand, "%q", arg)
	}
	return m, nil
}

func printReport(w io.Writer, report *pailliercore.Report) {
	for _, check := range report.Checks {
		msg := fmt.Sprintf("%s: expected %s, got %s", check.Law, check.Expected, check.Got)
		if check.Passed {
			success(w, msg)
		} else {
			failure(w, msg)
		}
	}
}
