package paillier

import (
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Law is one algebraic property of the scheme checked by VerifyHomomorphism.
type Law int

const (
	// LawRoundTripFirst: Dec(Enc(m₁)) = m₁
	LawRoundTripFirst Law = iota
	// LawRoundTripSecond: Dec(Enc(m₂)) = m₂
	LawRoundTripSecond
	// LawCiphertextProduct: Dec(c₁⋅c₂ mod N²) = m₁ + m₂ (mod N)
	LawCiphertextProduct
	// LawGeneratorPower: Dec((c₁ mod N²)⋅g^m₂ mod N²) = m₁ + m₂ (mod N)
	LawGeneratorPower
	// LawScalarFirst: Dec(c₁^m₂ mod N²) = m₁⋅m₂ (mod N)
	LawScalarFirst
	// LawScalarSecond: Dec(c₂^m₁ mod N²) = m₁⋅m₂ (mod N)
	LawScalarSecond
)

var lawNames = map[Law]string{
	LawRoundTripFirst:    "decryption of Enc(m1) is m1",
	LawRoundTripSecond:   "decryption of Enc(m2) is m2",
	LawCiphertextProduct: "ciphertext product decrypts to plaintext sum",
	LawGeneratorPower:    "ciphertext times g^m2 decrypts to plaintext sum",
	LawScalarFirst:       "Enc(m1)^m2 decrypts to scalar product",
	LawScalarSecond:      "Enc(m2)^m1 decrypts to scalar product",
}

func (l Law) String() string {
	if name, ok := lawNames[l]; ok {
		return name
	}
	return fmt.Sprintf("law(%d)", int(l))
}

// Check is the outcome of verifying a single Law.
type Check struct {
	Law      Law
	Expected *big.Int
	Got      *big.Int
	Passed   bool
}

// Report lists the outcome of every law checked by VerifyHomomorphism.
type Report struct {
	Checks []Check
}

// Passed returns true if every law holds.
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the laws that did not hold.
func (r *Report) Failed() []Law {
	var failed []Law
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c.Law)
		}
	}
	return failed
}

// Check returns the outcome recorded for law.
func (r *Report) Check(law Law) (Check, bool) {
	for _, c := range r.Checks {
		if c.Law == law {
			return c, true
		}
	}
	return Check{}, false
}

// ViolationError names every law that failed. It matches ErrHomomorphismViolation
// under errors.Is.
type ViolationError struct {
	Laws []Law
}

func (e *ViolationError) Error() string {
	names := make([]string, len(e.Laws))
	for i, l := range e.Laws {
		names[i] = l.String()
	}
	return fmt.Sprintf("%s: %s", ErrHomomorphismViolation.Error(), strings.Join(names, "; "))
}

func (e *ViolationError) Is(target error) bool {
	return target == ErrHomomorphismViolation
}

// VerifyHomomorphism encrypts m₁ and m₂ independently under pk and checks every
// Law against their decryptions under sk.
//
// Encryption and decryption errors are returned as is. If any law fails, the
// full report is returned together with a *ViolationError; such a failure
// points at broken keys or arithmetic and must not be retried.
func VerifyHomomorphism(rand io.Reader, m1, m2 *big.Int, pk *PublicKey, sk *SecretKey) (*Report, error) {
	if sk == nil || sk.PublicKey == nil {
		return nil, ErrInvalidSecretKey
	}
	if pk == nil {
		return nil, ErrInvalidPublicKey
	}
	if !pk.Equal(sk.PublicKey) {
		return nil, ErrModulusMismatch
	}
	c1, err := pk.Encrypt(rand, m1)
	if err != nil {
		return nil, err
	}
	c2, err := pk.Encrypt(rand, m2)
	if err != nil {
		return nil, err
	}

	n := pk.N()
	sum := new(big.Int).Add(m1, m2)
	sum.Mod(sum, n)
	product := new(big.Int).Mul(m1, m2)
	product.Mod(product, n)

	c1g, err := c1.AddPlain(pk, m2)
	if err != nil {
		return nil, err
	}
	c1m2, err := c1.Mul(pk, m2)
	if err != nil {
		return nil, err
	}
	c2m1, err := c2.Mul(pk, m1)
	if err != nil {
		return nil, err
	}

	laws := []struct {
		law      Law
		ct       *Ciphertext
		expected *big.Int
	}{
		{LawRoundTripFirst, c1, m1},
		{LawRoundTripSecond, c2, m2},
		{LawCiphertextProduct, c1.Add(pk, c2), sum},
		{LawGeneratorPower, c1g, sum},
		{LawScalarFirst, c1m2, product},
		{LawScalarSecond, c2m1, product},
	}

	report := &Report{Checks: make([]Check, 0, len(laws))}
	for _, l := range laws {
		got, err := sk.Decrypt(l.ct)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, Check{
			Law:      l.law,
			Expected: l.expected,
			Got:      got,
			Passed:   got.Cmp(l.expected) == 0,
		})
	}

	if failed := report.Failed(); len(failed) > 0 {
		return report, &ViolationError{Laws: failed}
	}
	return report, nil
}
