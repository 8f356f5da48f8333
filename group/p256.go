package group

import (
	"fmt"
	"io"
	"math/big"

	circl "github.com/cloudflare/circl/group"
	"github.com/pkg/errors"
)

// P256 returns NIST P-256 backed by the circl implementation. It is
// interchangeable with NewWeierstrass(P256Params()).
func P256() Group {
	params := P256Params()
	return &cGroup{
		fieldOrder: params.P,
		groupOrder: params.N,
		byteLen:    32,
		name:       params.Name,
	}
}

type cGroup struct {
	fieldOrder *big.Int
	groupOrder *big.Int
	byteLen    int
	name       string
}

func (g *cGroup) Name() string { return g.name }

func (g *cGroup) P() *big.Int { return new(big.Int).Set(g.fieldOrder) }

func (g *cGroup) N() *big.Int { return new(big.Int).Set(g.groupOrder) }

func (g *cGroup) ElementLength() int { return encodedLen(g.byteLen) }

func (g *cGroup) Element() Element { return g.Identity() }

func (g *cGroup) Identity() Element {
	return &cPoint{grp: g, val: circl.P256.Identity()}
}

func (g *cGroup) Generator() Element {
	return &cPoint{grp: g, val: circl.P256.Generator()}
}

func (g *cGroup) Point(x, y *big.Int) (Element, error) {
	if x == nil || y == nil ||
		x.Sign() < 0 || x.Cmp(g.fieldOrder) >= 0 ||
		y.Sign() < 0 || y.Cmp(g.fieldOrder) >= 0 {
		return nil, errors.Wrap(ErrInvalidPoint, "coordinate out of field range")
	}
	val := circl.P256.NewElement()
	if err := val.UnmarshalBinary(g.sec1(x, y)); err != nil {
		return nil, errors.Wrap(ErrInvalidPoint, "point not on curve")
	}
	return &cPoint{grp: g, val: val}, nil
}

// sec1 builds the uncompressed SEC1 encoding circl consumes.
func (g *cGroup) sec1(x, y *big.Int) []byte {
	out := make([]byte, 1+2*g.byteLen)
	out[0] = 4
	x.FillBytes(out[1 : 1+g.byteLen])
	y.FillBytes(out[1+g.byteLen:])
	return out
}

func (g *cGroup) Random(rand io.Reader) (Element, error) {
	k, err := g.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	return g.Element().BaseScale(k), nil
}

func (g *cGroup) RandomScalar(rand io.Reader) (*big.Int, error) {
	return randomScalar(rand, g.groupOrder)
}

type cPoint struct {
	grp *cGroup
	val circl.Element
}

func (e *cPoint) check(a Element) *cPoint {
	ea, ok := a.(*cPoint)
	if !ok {
		panic("group: incompatible group element type")
	}
	return ea
}

func (e *cPoint) Add(X, Y Element) Element {
	a := e.check(X)
	b := e.check(Y)
	e.val = circl.P256.NewElement().Add(a.val, b.val)
	return e
}

func (e *cPoint) Double(X Element) Element {
	a := e.check(X)
	e.val = circl.P256.NewElement().Dbl(a.val)
	return e
}

func (e *cPoint) Negate(X Element) Element {
	a := e.check(X)
	e.val = circl.P256.NewElement().Neg(a.val)
	return e
}

func (e *cPoint) Subtract(X, Y Element) Element {
	negY := e.grp.Element().Negate(Y)
	return e.Add(X, negY)
}

func (e *cPoint) Scale(X Element, k *big.Int) Element {
	a := e.check(X)
	r := new(big.Int).Mod(k, e.grp.groupOrder)
	if r.Sign() == 0 {
		e.val = circl.P256.Identity()
		return e
	}
	s := circl.P256.NewScalar().SetBigInt(r)
	e.val = circl.P256.NewElement().Mul(a.val, s)
	return e
}

func (e *cPoint) BaseScale(k *big.Int) Element {
	r := new(big.Int).Mod(k, e.grp.groupOrder)
	if r.Sign() == 0 {
		e.val = circl.P256.Identity()
		return e
	}
	s := circl.P256.NewScalar().SetBigInt(r)
	e.val = circl.P256.NewElement().MulGen(s)
	return e
}

func (e *cPoint) Set(X Element) Element {
	a := e.check(X)
	e.val = circl.P256.NewElement().Set(a.val)
	return e
}

func (e *cPoint) IsEqual(X Element) bool {
	a := e.check(X)
	return e.val.IsEqual(a.val)
}

func (e *cPoint) IsIdentity() bool { return e.val.IsIdentity() }

// IsOnCurve always holds: circl elements cannot be constructed off-curve.
func (e *cPoint) IsOnCurve() bool { return true }

func (e *cPoint) Affine() (x, y *big.Int) {
	raw, err := e.val.MarshalBinary()
	if err != nil || len(raw) == 0 || raw[0] == 0 {
		return nil, nil
	}
	x = new(big.Int).SetBytes(raw[1 : 1+e.grp.byteLen])
	y = new(big.Int).SetBytes(raw[1+e.grp.byteLen:])
	return x, y
}

func (e *cPoint) GroupOrder() *big.Int { return e.grp.N() }

func (e *cPoint) FieldOrder() *big.Int { return e.grp.P() }

func (e *cPoint) String() string {
	x, y := e.Affine()
	if x == nil {
		return "(identity)"
	}
	return fmt.Sprintf("(%s, %s)", x, y)
}

func (e *cPoint) MarshalBinary() ([]byte, error) {
	x, y := e.Affine()
	if x == nil {
		return marshalPoint(e.grp.byteLen, nil, nil), nil
	}
	return marshalPoint(e.grp.byteLen, x, y), nil
}

func (e *cPoint) UnmarshalBinary(data []byte) error {
	x, y, err := unmarshalPoint(e.grp.byteLen, e.grp.fieldOrder, data)
	if err != nil {
		return err
	}
	if x == nil {
		e.val = circl.P256.Identity()
		return nil
	}
	val := circl.P256.NewElement()
	if err := val.UnmarshalBinary(e.grp.sec1(x, y)); err != nil {
		return errors.Wrap(ErrInvalidPoint, "point not on curve")
	}
	e.val = val
	return nil
}
