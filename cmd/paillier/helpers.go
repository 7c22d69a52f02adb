package main

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mr-shifu/paillier-lib/pkg/codec"
	"github.com/mr-shifu/paillier-lib/pkg/common/keyopts"
	sw_paillier "github.com/mr-shifu/paillier-lib/pkg/cryptosuite/sw/paillier"
	pkg_keyopts "github.com/mr-shifu/paillier-lib/pkg/keyopts"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// keyManager returns a key manager over a fresh keystore.
// A zero bits falls back to the configured size.
func (c *cli) keyManager(bits int) *sw_paillier.PaillierKeyManager {
	if bits == 0 {
		bits = c.cfg.Bits
	}
	return sw_paillier.NewPaillierKeyManager(c.keystores.NewKeystore(), &sw_paillier.Config{
		Bits:   bits,
		Logger: c.logger,
	})
}

// newKeyOptions links a key to a random key ID.
func newKeyOptions() (keyopts.Options, error) {
	return pkg_keyopts.NewOptions().Set("id", uuid.NewString())
}

// startSpinner shows message next to a spinner on stderr until the returned
// func is called. Nothing is drawn in verbose or debug mode, or when stderr is
// not a terminal.
func (c *cli) startSpinner(cmd *cobra.Command, message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + message

	// continue without a coloured spinner if the colour is rejected
	_ = s.Color("cyan")

	if !c.verbose && !c.debug {
		s.Start()
	}
	return s, s.Stop
}

// encodedInt is a flag holding an integer in its transport encoding.
type encodedInt struct {
	x *big.Int
}

var _ pflag.Value = (*encodedInt)(nil)

func (v *encodedInt) String() string {
	if v.x == nil {
		return ""
	}
	return codec.EncodeInt(v.x)
}

func (v *encodedInt) Set(s string) error {
	x, err := codec.DecodeInt(s)
	if err != nil {
		return err
	}
	v.x = x
	return nil
}

func (v *encodedInt) Type() string {
	return "base64"
}

// intFlags registers one required encodedInt flag per name.
func intFlags(cmd *cobra.Command, names ...string) map[string]*encodedInt {
	flags := make(map[string]*encodedInt, len(names))
	for _, name := range names {
		flags[name] = optionalIntFlag(cmd, name)
		_ = cmd.MarkFlagRequired(name)
	}
	return flags
}

func optionalIntFlag(cmd *cobra.Command, name string) *encodedInt {
	v := &encodedInt{}
	cmd.Flags().Var(v, name, "key parameter "+name)
	return v
}

func printValue(w io.Writer, label string, x *big.Int) {
	fmt.Fprintf(w, "%s: %s\n", label, codec.EncodeInt(x))
}

func success(w io.Writer, msg string) {
	fmt.Fprintln(w, color.GreenString("✓")+" "+msg)
}

func failure(w io.Writer, msg string) {
	fmt.Fprintln(w, color.RedString("✗")+" "+msg)
}
