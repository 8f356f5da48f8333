// Package field implements arithmetic in a prime field Z/pZ.
//
// Elements are immutable values: every operation returns a fresh element
// reduced to [0, p). The field itself is read-only configuration and may be
// shared freely between goroutines.
package field

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrDivisionByZero is returned when the multiplicative inverse of the zero
// element is requested.
var ErrDivisionByZero = errors.New("field: division by zero")

// primalityRounds is the number of Miller-Rabin rounds used when checking
// the modulus. big.Int.ProbablyPrime(20) is exact below 2^64 and leaves a
// negligible error probability above it.
const primalityRounds = 20

// Field describes the prime field Z/pZ.
type Field struct {
	p *big.Int
}

// New creates the field of integers modulo p. The modulus must be an odd
// prime.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, errors.New("field: modulus must be positive")
	}
	if p.Bit(0) == 0 || !p.ProbablyPrime(primalityRounds) {
		return nil, errors.New("field: modulus must be an odd prime")
	}
	return &Field{p: new(big.Int).Set(p)}, nil
}

// P returns the field modulus.
func (f *Field) P() *big.Int {
	return new(big.Int).Set(f.p)
}

// ByteLen returns the length of the fixed-width encoding of an element.
func (f *Field) ByteLen() int {
	return (f.p.BitLen() + 7) / 8
}

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return Element{fld: f, v: new(big.Int)}
}

// One returns the multiplicative identity.
func (f *Field) One() Element {
	return Element{fld: f, v: big.NewInt(1)}
}

// NewElement returns the element congruent to v modulo p.
func (f *Field) NewElement(v *big.Int) Element {
	r := new(big.Int).Mod(v, f.p)
	return Element{fld: f, v: r}
}

// NewElementInt64 returns the element congruent to v modulo p.
func (f *Field) NewElementInt64(v int64) Element {
	return f.NewElement(big.NewInt(v))
}

// FromBytes decodes a fixed-width big-endian encoding produced by
// Element.Bytes. The encoding must be exactly ByteLen bytes and must hold a
// canonical value, i.e. one below the modulus.
func (f *Field) FromBytes(b []byte) (Element, error) {
	if len(b) != f.ByteLen() {
		return Element{}, errors.Errorf("field: encoding must be %d bytes, got %d", f.ByteLen(), len(b))
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(f.p) >= 0 {
		return Element{}, errors.New("field: encoded value exceeds modulus")
	}
	return Element{fld: f, v: v}, nil
}

func (f *Field) equals(g *Field) bool {
	return f == g || f.p.Cmp(g.p) == 0
}

// Element is a residue modulo the field prime, always held reduced to
// [0, p).
type Element struct {
	fld *Field
	v   *big.Int
}

func (e Element) check(b Element) {
	if !e.fld.equals(b.fld) {
		panic("field: elements of different fields")
	}
}

// Field returns the field the element belongs to.
func (e Element) Field() *Field {
	return e.fld
}

// Add returns e + b.
func (e Element) Add(b Element) Element {
	e.check(b)
	r := new(big.Int).Add(e.v, b.v)
	r.Mod(r, e.fld.p)
	return Element{fld: e.fld, v: r}
}

// Sub returns e - b.
func (e Element) Sub(b Element) Element {
	e.check(b)
	r := new(big.Int).Sub(e.v, b.v)
	r.Mod(r, e.fld.p)
	return Element{fld: e.fld, v: r}
}

// Neg returns -e.
func (e Element) Neg() Element {
	r := new(big.Int).Neg(e.v)
	r.Mod(r, e.fld.p)
	return Element{fld: e.fld, v: r}
}

// Mul returns e * b.
func (e Element) Mul(b Element) Element {
	e.check(b)
	r := new(big.Int).Mul(e.v, b.v)
	r.Mod(r, e.fld.p)
	return Element{fld: e.fld, v: r}
}

// Square returns e * e.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Pow returns e raised to a non-negative exponent.
func (e Element) Pow(k *big.Int) Element {
	if k.Sign() < 0 {
		panic("field: negative exponent")
	}
	r := new(big.Int).Exp(e.v, k, e.fld.p)
	return Element{fld: e.fld, v: r}
}

// Inverse returns the multiplicative inverse of e, computed with the
// extended Euclidean algorithm. The zero element has no inverse.
func (e Element) Inverse() (Element, error) {
	if e.IsZero() {
		return Element{}, ErrDivisionByZero
	}
	r := new(big.Int).ModInverse(e.v, e.fld.p)
	if r == nil {
		// Unreachable for a prime modulus and a non-zero residue.
		return Element{}, ErrDivisionByZero
	}
	return Element{fld: e.fld, v: r}, nil
}

// Div returns e / b.
func (e Element) Div(b Element) (Element, error) {
	inv, err := b.Inverse()
	if err != nil {
		return Element{}, err
	}
	return e.Mul(inv), nil
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.v.Sign() == 0
}

// Equal reports whether e and b are the same residue.
func (e Element) Equal(b Element) bool {
	return e.fld.equals(b.fld) && e.v.Cmp(b.v) == 0
}

// BigInt returns a copy of the reduced value.
func (e Element) BigInt() *big.Int {
	return new(big.Int).Set(e.v)
}

// Bytes returns the fixed-width big-endian encoding of e, padded to the
// byte length of the modulus.
func (e Element) Bytes() []byte {
	return e.v.FillBytes(make([]byte, e.fld.ByteLen()))
}

// String returns the decimal representation of the residue.
func (e Element) String() string {
	return e.v.String()
}
