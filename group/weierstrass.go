package group

import (
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/curvelab/curvecrypt/field"
)

// Params describes a short Weierstrass curve y² = x³ + Ax + B over the
// prime field of order P, with base point (Gx, Gy) of order N. A Params
// value is plain data; NewWeierstrass validates it and turns it into a
// usable group.
type Params struct {
	Name   string
	A, B   *big.Int
	P      *big.Int
	Gx, Gy *big.Int
	N      *big.Int
}

type wGroup struct {
	name   string
	fld    *field.Field
	a, b   field.Element
	gx, gy field.Element
	n      *big.Int
}

// NewWeierstrass builds the group of points on the curve described by
// params. It checks, once, everything later operations depend on: the field
// order is prime, the curve is non-singular, the base point satisfies the
// curve equation, and N annihilates the base point. Any violation yields
// ErrInvalidParams.
func NewWeierstrass(params Params) (Group, error) {
	if params.A == nil || params.B == nil || params.P == nil ||
		params.Gx == nil || params.Gy == nil || params.N == nil {
		return nil, errors.Wrap(ErrInvalidParams, "missing parameter")
	}
	fld, err := field.New(params.P)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidParams, "field order: %s", err)
	}

	g := &wGroup{
		name: params.Name,
		fld:  fld,
		a:    fld.NewElement(params.A),
		b:    fld.NewElement(params.B),
		gx:   fld.NewElement(params.Gx),
		gy:   fld.NewElement(params.Gy),
		n:    new(big.Int).Set(params.N),
	}

	// Non-singularity: 4A³ + 27B² ≠ 0 (mod p). The factor -16 of the
	// discriminant is a unit in any odd prime field.
	four := fld.NewElementInt64(4)
	twentySeven := fld.NewElementInt64(27)
	disc := four.Mul(g.a).Mul(g.a).Mul(g.a).Add(twentySeven.Mul(g.b).Mul(g.b))
	if disc.IsZero() {
		return nil, errors.Wrap(ErrInvalidParams, "curve is singular")
	}

	if !g.onCurve(g.gx, g.gy) {
		return nil, errors.Wrap(ErrInvalidParams, "base point not on curve")
	}
	if g.n.Cmp(big.NewInt(1)) <= 0 {
		return nil, errors.Wrap(ErrInvalidParams, "group order must exceed 1")
	}
	if !Mul(g, g.Generator(), g.n).IsIdentity() {
		return nil, errors.Wrap(ErrInvalidParams, "base point does not have the claimed order")
	}
	return g, nil
}

// onCurve checks y² = x³ + Ax + B.
func (g *wGroup) onCurve(x, y field.Element) bool {
	lhs := y.Square()
	rhs := x.Square().Mul(x).Add(g.a.Mul(x)).Add(g.b)
	return lhs.Equal(rhs)
}

func (g *wGroup) equals(h *wGroup) bool {
	if g == h {
		return true
	}
	return g.fld.P().Cmp(h.fld.P()) == 0 &&
		g.a.Equal(h.a) && g.b.Equal(h.b) &&
		g.gx.Equal(h.gx) && g.gy.Equal(h.gy)
}

func (g *wGroup) Name() string { return g.name }

func (g *wGroup) P() *big.Int { return g.fld.P() }

func (g *wGroup) N() *big.Int { return new(big.Int).Set(g.n) }

func (g *wGroup) ElementLength() int { return encodedLen(g.fld.ByteLen()) }

func (g *wGroup) Element() Element { return g.Identity() }

func (g *wGroup) Identity() Element {
	return &wPoint{grp: g, inf: true}
}

func (g *wGroup) Generator() Element {
	return &wPoint{grp: g, x: g.gx, y: g.gy}
}

func (g *wGroup) Point(x, y *big.Int) (Element, error) {
	if x == nil || y == nil ||
		x.Sign() < 0 || x.Cmp(g.fld.P()) >= 0 ||
		y.Sign() < 0 || y.Cmp(g.fld.P()) >= 0 {
		return nil, errors.Wrap(ErrInvalidPoint, "coordinate out of field range")
	}
	fx := g.fld.NewElement(x)
	fy := g.fld.NewElement(y)
	if !g.onCurve(fx, fy) {
		return nil, errors.Wrap(ErrInvalidPoint, "point not on curve")
	}
	return &wPoint{grp: g, x: fx, y: fy}, nil
}

func (g *wGroup) Random(rand io.Reader) (Element, error) {
	k, err := g.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	return g.Element().BaseScale(k), nil
}

func (g *wGroup) RandomScalar(rand io.Reader) (*big.Int, error) {
	return randomScalar(rand, g.n)
}

// wPoint is a point in affine coordinates, with inf marking the point at
// infinity. The coordinate fields are immutable field elements; operations
// replace them wholesale, so using the receiver as an operand is safe.
type wPoint struct {
	grp  *wGroup
	x, y field.Element
	inf  bool
}

func (e *wPoint) check(a Element) *wPoint {
	ea, ok := a.(*wPoint)
	if !ok {
		panic("group: incompatible group element type")
	}
	if !e.grp.equals(ea.grp) {
		panic("group: elements of different curves")
	}
	return ea
}

// mustDiv divides two field elements whose divisor is non-zero by
// construction. A failure here means the addition case analysis is broken.
func mustDiv(num, den field.Element) field.Element {
	q, err := num.Div(den)
	if err != nil {
		panic(fmt.Sprintf("group: internal invariant violated: %v", err))
	}
	return q
}

// Add implements the chord-tangent group law. Cases, in priority order:
// either operand is the identity; P = -Q; P = Q (tangent); distinct x
// (chord).
func (e *wPoint) Add(X, Y Element) Element {
	a := e.check(X)
	b := e.check(Y)
	switch {
	case a.inf:
		return e.Set(b)
	case b.inf:
		return e.Set(a)
	}
	if a.x.Equal(b.x) {
		if !a.y.Equal(b.y) || a.y.IsZero() {
			// P = -Q: same x with opposite (or zero) y sums to
			// the identity.
			return e.setInfinity()
		}
		return e.tangent(a)
	}
	// λ = (y₂ - y₁) / (x₂ - x₁)
	lambda := mustDiv(b.y.Sub(a.y), b.x.Sub(a.x))
	return e.fromSlope(lambda, a.x, b.x, a.y)
}

func (e *wPoint) Double(X Element) Element {
	a := e.check(X)
	if a.inf || a.y.IsZero() {
		// The tangent at y = 0 is vertical.
		return e.setInfinity()
	}
	return e.tangent(a)
}

// tangent doubles a non-identity point with y ≠ 0:
// λ = (3x² + A) / (2y).
func (e *wPoint) tangent(a *wPoint) Element {
	three := a.grp.fld.NewElementInt64(3)
	two := a.grp.fld.NewElementInt64(2)
	lambda := mustDiv(three.Mul(a.x.Square()).Add(a.grp.a), two.Mul(a.y))
	return e.fromSlope(lambda, a.x, a.x, a.y)
}

// fromSlope finishes both slope cases:
// x₃ = λ² - x₁ - x₂, y₃ = λ(x₁ - x₃) - y₁.
func (e *wPoint) fromSlope(lambda, x1, x2, y1 field.Element) Element {
	x3 := lambda.Square().Sub(x1).Sub(x2)
	y3 := lambda.Mul(x1.Sub(x3)).Sub(y1)
	e.x, e.y, e.inf = x3, y3, false
	return e
}

func (e *wPoint) setInfinity() Element {
	e.x, e.y = field.Element{}, field.Element{}
	e.inf = true
	return e
}

func (e *wPoint) Negate(X Element) Element {
	a := e.check(X)
	if a.inf {
		return e.setInfinity()
	}
	e.x, e.y, e.inf = a.x, a.y.Neg(), false
	return e
}

func (e *wPoint) Subtract(X, Y Element) Element {
	negY := e.grp.Element().Negate(Y)
	return e.Add(X, negY)
}

func (e *wPoint) Scale(X Element, k *big.Int) Element {
	e.check(X)
	return e.Set(Mul(e.grp, X, k))
}

func (e *wPoint) BaseScale(k *big.Int) Element {
	return e.Set(Mul(e.grp, e.grp.Generator(), k))
}

func (e *wPoint) Set(X Element) Element {
	a := e.check(X)
	e.x, e.y, e.inf = a.x, a.y, a.inf
	return e
}

func (e *wPoint) IsEqual(X Element) bool {
	a := e.check(X)
	if e.inf || a.inf {
		return e.inf == a.inf
	}
	return e.x.Equal(a.x) && e.y.Equal(a.y)
}

func (e *wPoint) IsIdentity() bool { return e.inf }

func (e *wPoint) IsOnCurve() bool {
	if e.inf {
		return true
	}
	return e.grp.onCurve(e.x, e.y)
}

func (e *wPoint) Affine() (x, y *big.Int) {
	if e.inf {
		return nil, nil
	}
	return e.x.BigInt(), e.y.BigInt()
}

func (e *wPoint) GroupOrder() *big.Int { return e.grp.N() }

func (e *wPoint) FieldOrder() *big.Int { return e.grp.P() }

func (e *wPoint) String() string {
	if e.inf {
		return "(identity)"
	}
	return fmt.Sprintf("(%s, %s)", e.x, e.y)
}

func (e *wPoint) MarshalBinary() ([]byte, error) {
	if e.inf {
		return marshalPoint(e.grp.fld.ByteLen(), nil, nil), nil
	}
	return marshalPoint(e.grp.fld.ByteLen(), e.x.BigInt(), e.y.BigInt()), nil
}

func (e *wPoint) UnmarshalBinary(data []byte) error {
	x, y, err := unmarshalPoint(e.grp.fld.ByteLen(), e.grp.fld.P(), data)
	if err != nil {
		return err
	}
	if x == nil {
		e.setInfinity()
		return nil
	}
	p, err := e.grp.Point(x, y)
	if err != nil {
		return err
	}
	e.Set(p)
	return nil
}
