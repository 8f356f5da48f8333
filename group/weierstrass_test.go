package group

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
)

// Doubling the toy base point must reproduce coordinates computed
// independently with the same tangent formula. 3G pins the chord case.
func TestToyFixedVectors(t *testing.T) {
	g := toyGroup

	twoG := g.Element().Double(g.Generator())
	x, y := twoG.Affine()
	if x.Cmp(big.NewInt(52275388850)) != 0 || y.Cmp(big.NewInt(56753866489)) != 0 {
		t.Errorf("2G = (%s, %s), want (52275388850, 56753866489)", x, y)
	}

	threeG := g.Element().Add(twoG, g.Generator())
	x, y = threeG.Affine()
	if x.Cmp(big.NewInt(72570289723)) != 0 || y.Cmp(big.NewInt(2874605561)) != 0 {
		t.Errorf("3G = (%s, %s), want (72570289723, 2874605561)", x, y)
	}

	if !threeG.IsEqual(Mul(g, g.Generator(), big.NewInt(3))) {
		t.Error("Mul(3, G) != G + G + G")
	}
}

// On y² = x³ + x over F₂₃ the point (0, 0) has a vertical tangent; doubling
// it must short-circuit to the identity instead of dividing by zero.
func TestDoubleWithZeroY(t *testing.T) {
	g, err := NewWeierstrass(Params{
		Name: "tiny",
		A:    big.NewInt(1),
		B:    big.NewInt(0),
		P:    big.NewInt(23),
		Gx:   big.NewInt(11),
		Gy:   big.NewInt(10),
		N:    big.NewInt(24),
	})
	if err != nil {
		t.Fatal(err)
	}

	P, err := g.Point(big.NewInt(0), big.NewInt(0))
	if err != nil {
		t.Fatal(err)
	}
	if !g.Element().Double(P).IsIdentity() {
		t.Error("doubling a y = 0 point must give the identity")
	}
	if !g.Element().Add(P, P).IsIdentity() {
		t.Error("P + P with y = 0 must give the identity")
	}
	// (0, 0) is its own negation.
	if !g.Element().Negate(P).IsEqual(P) {
		t.Error("-(x, 0) != (x, 0)")
	}
}

func TestInversePairSumsToIdentity(t *testing.T) {
	g := toyGroup
	P := g.Generator()
	Q := g.Element().Negate(P)
	if !g.Element().Add(P, Q).IsIdentity() {
		t.Error("P + (-P) != identity")
	}
}

func TestNewWeierstrassRejects(t *testing.T) {
	valid := toyParams()

	cases := []struct {
		name   string
		mangle func(*Params)
	}{
		{"nil parameter", func(p *Params) { p.N = nil }},
		{"composite modulus", func(p *Params) { p.P = big.NewInt(15) }},
		{"singular curve", func(p *Params) { p.A = big.NewInt(0); p.B = big.NewInt(0) }},
		{"base point off curve", func(p *Params) { p.Gx = big.NewInt(3) }},
		{"wrong order", func(p *Params) { p.N = big.NewInt(7) }},
		{"order one", func(p *Params) { p.N = big.NewInt(1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := valid
			tc.mangle(&params)
			if _, err := NewWeierstrass(params); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("got %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestPointValidation(t *testing.T) {
	g := toyGroup

	if _, err := g.Point(big.NewInt(1), big.NewInt(1)); !errors.Is(err, ErrInvalidPoint) {
		t.Error("off-curve coordinates must be rejected")
	}
	if _, err := g.Point(g.P(), big.NewInt(1)); !errors.Is(err, ErrInvalidPoint) {
		t.Error("out-of-range coordinate must be rejected")
	}
	// (0, 1) satisfies y^2 = x^3 + 100x + 1 and must be accepted.
	if _, err := g.Point(big.NewInt(0), big.NewInt(1)); err != nil {
		t.Errorf("on-curve point rejected: %v", err)
	}
	P, err := g.Point(big.NewInt(2500), big.NewInt(125001))
	if err != nil {
		t.Fatal(err)
	}
	if !P.IsEqual(g.Generator()) {
		t.Error("Point(Gx, Gy) != Generator()")
	}
	if !P.IsOnCurve() {
		t.Error("generator reported off curve")
	}
}

func TestUnmarshalRejects(t *testing.T) {
	g := toyGroup
	byteLen := (g.P().BitLen() + 7) / 8

	// (1, 1) is off the toy curve: 1 != 1 + 100 + 1 (mod p).
	offCurve := make([]byte, 1+2*byteLen)
	offCurve[0] = 1
	offCurve[byteLen] = 1
	offCurve[len(offCurve)-1] = 1

	tooBig := make([]byte, 1+2*byteLen)
	tooBig[0] = 1
	new(big.Int).Add(g.P(), big.NewInt(1)).FillBytes(tooBig[1 : 1+byteLen])

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"unknown tag", []byte{0x04, 0x01}},
		{"trailing identity bytes", []byte{0x00, 0x00}},
		{"truncated", []byte{0x01, 0x02}},
		{"off curve", offCurve},
		{"coordinate exceeds modulus", tooBig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := g.Element().UnmarshalBinary(tc.data); !errors.Is(err, ErrInvalidPoint) {
				t.Errorf("got %v, want ErrInvalidPoint", err)
			}
		})
	}
}

func TestMulNegativeScalar(t *testing.T) {
	g := toyGroup
	P := g.Generator()

	minusTwo := Mul(g, P, big.NewInt(-2))
	twoNeg := Mul(g, g.Element().Negate(P), big.NewInt(2))
	if !minusTwo.IsEqual(twoNeg) {
		t.Error("(-2)·P != 2·(-P)")
	}
	if !Mul(g, P, big.NewInt(0)).IsIdentity() {
		t.Error("0·P != identity")
	}
	if !Mul(g, g.Identity(), big.NewInt(12345)).IsIdentity() {
		t.Error("k·identity != identity")
	}
}

// Scale must agree with the canonical double-and-add on every backend,
// including those with native scalar multiplication.
func TestScaleMatchesMul(t *testing.T) {
	for _, g := range allGroups {
		k := big.NewInt(0x1f2e3d4c)
		native := g.Element().Scale(g.Generator(), k)
		generic := Mul(g, g.Generator(), k)
		if !native.IsEqual(generic) {
			t.Errorf("%s: Scale and Mul disagree", g.Name())
		}
	}
}
