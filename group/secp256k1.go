package group

import (
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// Secp256k1 returns the bitcoin curve backed by the decred secp256k1
// implementation. It is interchangeable with
// NewWeierstrass(Secp256k1Params()); the two share the curve, the canonical
// encoding, and therefore ciphertexts.
func Secp256k1() Group {
	params := Secp256k1Params()
	return &kGroup{
		curve:      secp256k1.S256(),
		fieldOrder: params.P,
		groupOrder: params.N,
		byteLen:    32,
		name:       params.Name,
	}
}

type kGroup struct {
	curve      *secp256k1.KoblitzCurve
	fieldOrder *big.Int
	groupOrder *big.Int
	byteLen    int
	name       string
}

func (g *kGroup) Name() string { return g.name }

func (g *kGroup) P() *big.Int { return new(big.Int).Set(g.fieldOrder) }

func (g *kGroup) N() *big.Int { return new(big.Int).Set(g.groupOrder) }

func (g *kGroup) ElementLength() int { return encodedLen(g.byteLen) }

func (g *kGroup) Element() Element { return g.Identity() }

func (g *kGroup) Identity() Element {
	return &kPoint{grp: g, inf: true}
}

func (g *kGroup) Generator() Element {
	p := g.curve.Params()
	return &kPoint{grp: g, x: new(big.Int).Set(p.Gx), y: new(big.Int).Set(p.Gy)}
}

func (g *kGroup) Point(x, y *big.Int) (Element, error) {
	if x == nil || y == nil ||
		x.Sign() < 0 || x.Cmp(g.fieldOrder) >= 0 ||
		y.Sign() < 0 || y.Cmp(g.fieldOrder) >= 0 {
		return nil, errors.Wrap(ErrInvalidPoint, "coordinate out of field range")
	}
	if !g.curve.IsOnCurve(x, y) {
		return nil, errors.Wrap(ErrInvalidPoint, "point not on curve")
	}
	return &kPoint{grp: g, x: new(big.Int).Set(x), y: new(big.Int).Set(y)}, nil
}

func (g *kGroup) Random(rand io.Reader) (Element, error) {
	k, err := g.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	return g.Element().BaseScale(k), nil
}

func (g *kGroup) RandomScalar(rand io.Reader) (*big.Int, error) {
	return randomScalar(rand, g.groupOrder)
}

// kPoint wraps affine coordinates handed to the decred curve operations.
// The library's (0, 0) convention for the point at infinity is mapped to an
// explicit flag at this boundary.
type kPoint struct {
	grp  *kGroup
	x, y *big.Int
	inf  bool
}

func (e *kPoint) check(a Element) *kPoint {
	ea, ok := a.(*kPoint)
	if !ok {
		panic("group: incompatible group element type")
	}
	return ea
}

// setCoords stores a library result, folding (0, 0) back into the identity.
func (e *kPoint) setCoords(x, y *big.Int) Element {
	if x.Sign() == 0 && y.Sign() == 0 {
		e.x, e.y, e.inf = nil, nil, true
		return e
	}
	e.x, e.y, e.inf = x, y, false
	return e
}

func (e *kPoint) Add(X, Y Element) Element {
	a := e.check(X)
	b := e.check(Y)
	switch {
	case a.inf:
		return e.Set(b)
	case b.inf:
		return e.Set(a)
	}
	return e.setCoords(e.grp.curve.Add(a.x, a.y, b.x, b.y))
}

func (e *kPoint) Double(X Element) Element {
	a := e.check(X)
	if a.inf {
		return e.setCoords(big.NewInt(0), big.NewInt(0))
	}
	return e.setCoords(e.grp.curve.Double(a.x, a.y))
}

func (e *kPoint) Negate(X Element) Element {
	a := e.check(X)
	if a.inf {
		return e.setCoords(big.NewInt(0), big.NewInt(0))
	}
	negY := new(big.Int).Sub(e.grp.fieldOrder, a.y)
	negY.Mod(negY, e.grp.fieldOrder)
	return e.setCoords(new(big.Int).Set(a.x), negY)
}

func (e *kPoint) Subtract(X, Y Element) Element {
	negY := e.grp.Element().Negate(Y)
	return e.Add(X, negY)
}

func (e *kPoint) Scale(X Element, k *big.Int) Element {
	a := e.check(X)
	r := new(big.Int).Mod(k, e.grp.groupOrder)
	if a.inf || r.Sign() == 0 {
		return e.setCoords(big.NewInt(0), big.NewInt(0))
	}
	return e.setCoords(e.grp.curve.ScalarMult(a.x, a.y, r.Bytes()))
}

func (e *kPoint) BaseScale(k *big.Int) Element {
	r := new(big.Int).Mod(k, e.grp.groupOrder)
	if r.Sign() == 0 {
		return e.setCoords(big.NewInt(0), big.NewInt(0))
	}
	return e.setCoords(e.grp.curve.ScalarBaseMult(r.Bytes()))
}

func (e *kPoint) Set(X Element) Element {
	a := e.check(X)
	if a.inf {
		e.x, e.y, e.inf = nil, nil, true
		return e
	}
	e.x, e.y, e.inf = new(big.Int).Set(a.x), new(big.Int).Set(a.y), false
	return e
}

func (e *kPoint) IsEqual(X Element) bool {
	a := e.check(X)
	if e.inf || a.inf {
		return e.inf == a.inf
	}
	return e.x.Cmp(a.x) == 0 && e.y.Cmp(a.y) == 0
}

func (e *kPoint) IsIdentity() bool { return e.inf }

func (e *kPoint) IsOnCurve() bool {
	if e.inf {
		return true
	}
	return e.grp.curve.IsOnCurve(e.x, e.y)
}

func (e *kPoint) Affine() (x, y *big.Int) {
	if e.inf {
		return nil, nil
	}
	return new(big.Int).Set(e.x), new(big.Int).Set(e.y)
}

func (e *kPoint) GroupOrder() *big.Int { return e.grp.N() }

func (e *kPoint) FieldOrder() *big.Int { return e.grp.P() }

func (e *kPoint) String() string {
	if e.inf {
		return "(identity)"
	}
	return fmt.Sprintf("(%s, %s)", e.x, e.y)
}

func (e *kPoint) MarshalBinary() ([]byte, error) {
	if e.inf {
		return marshalPoint(e.grp.byteLen, nil, nil), nil
	}
	return marshalPoint(e.grp.byteLen, e.x, e.y), nil
}

func (e *kPoint) UnmarshalBinary(data []byte) error {
	x, y, err := unmarshalPoint(e.grp.byteLen, e.grp.fieldOrder, data)
	if err != nil {
		return err
	}
	if x == nil {
		e.x, e.y, e.inf = nil, nil, true
		return nil
	}
	p, err := e.grp.Point(x, y)
	if err != nil {
		return err
	}
	e.Set(p)
	return nil
}
