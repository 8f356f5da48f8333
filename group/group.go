// Package group provides an abelian group of points on a short Weierstrass
// curve over a prime field.
//
// The Group and Element interfaces form the capability boundary: the generic
// big.Int implementation created by NewWeierstrass works for any curve
// configuration, while wrapped backends (decred secp256k1, circl P-256)
// implement the same interfaces on top of specialised libraries. Which
// backend to use is decided once, at configuration time, and threaded
// explicitly through every operation.
package group

import (
	"crypto/rand"
	"encoding"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidPoint is returned when a point fails the curve-membership
	// check, or when a point encoding is malformed.
	ErrInvalidPoint = errors.New("group: invalid point")

	// ErrInvalidParams is returned when curve parameters describe a
	// singular curve, a base point off the curve, or an order that does
	// not annihilate the base point.
	ErrInvalidParams = errors.New("group: invalid curve parameters")
)

// Element represents a point on the curve: either an affine (x, y) pair
// satisfying the curve equation, or the point at infinity (the identity).
//
// Operations set the receiver to the result and return it, never mutating
// their operands. Elements of distinct groups must not be mixed; doing so
// panics.
type Element interface {
	// Add sets the receiver to X + Y, and returns it.
	Add(X, Y Element) Element
	// Double sets the receiver to X + X, and returns it.
	Double(X Element) Element
	// Negate sets the receiver to -X, and returns it.
	Negate(X Element) Element
	// Subtract sets the receiver to X - Y, and returns it.
	Subtract(X, Y Element) Element
	// Scale sets the receiver to k·X, and returns it. A negative k
	// scales the negation of X by |k|.
	Scale(X Element, k *big.Int) Element
	// BaseScale sets the receiver to k·G for the group's base point G,
	// and returns it.
	BaseScale(k *big.Int) Element
	// Set sets the receiver to X, and returns it.
	Set(X Element) Element
	// IsEqual reports whether the receiver and X are the same point.
	IsEqual(X Element) bool
	// IsIdentity reports whether the receiver is the point at infinity.
	IsIdentity() bool
	// IsOnCurve reports whether the receiver satisfies the curve
	// equation. The identity counts as on the curve.
	IsOnCurve() bool
	// Affine returns copies of the affine coordinates, or (nil, nil) for
	// the identity.
	Affine() (x, y *big.Int)
	// GroupOrder returns the order of the subgroup generated by G.
	GroupOrder() *big.Int
	// FieldOrder returns the order of the underlying prime field.
	FieldOrder() *big.Int
	// String returns a short human-readable form of the point.
	String() string

	// BinaryMarshaler emits the canonical encoding: a 1-byte tag
	// (0 identity, 1 affine) followed, when affine, by the two
	// fixed-width big-endian coordinates.
	encoding.BinaryMarshaler
	// BinaryUnmarshaler recovers a point from its canonical encoding,
	// rejecting malformed or off-curve input with ErrInvalidPoint.
	encoding.BinaryUnmarshaler
}

// Group describes a curve group: its parameters and element factory.
type Group interface {
	// Name returns the name of the curve.
	Name() string

	// Element creates a new element set to the identity.
	Element() Element
	// Generator creates an element set to the base point G.
	Generator() Element
	// Identity creates an element set to the point at infinity.
	Identity() Element
	// Point creates an element from affine coordinates, validating
	// curve membership.
	Point(x, y *big.Int) (Element, error)

	// Random returns rG for a scalar r drawn uniformly from [1, n-1].
	Random(rand io.Reader) (Element, error)
	// RandomScalar draws a scalar uniformly from [1, n-1].
	RandomScalar(rand io.Reader) (*big.Int, error)

	// P returns the order of the prime field.
	P() *big.Int
	// N returns the order of the subgroup generated by G.
	N() *big.Int
	// ElementLength returns the byte length of a canonically encoded
	// affine element.
	ElementLength() int
}

// randomScalar draws a uniform scalar from [1, n-1].
func randomScalar(r io.Reader, n *big.Int) (*big.Int, error) {
	bound := new(big.Int).Sub(n, big.NewInt(1))
	k, err := rand.Int(r, bound)
	if err != nil {
		return nil, errors.Wrap(err, "group: drawing random scalar")
	}
	return k.Add(k, big.NewInt(1)), nil
}
