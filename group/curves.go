package group

import "math/big"

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("group: bad curve constant")
	}
	return v
}

// Secp256k1Params returns the parameters of the bitcoin curve
// y² = x³ + 7 (https://en.bitcoin.it/wiki/Secp256k1). Feed them to
// NewWeierstrass for the generic backend; Secp256k1 returns the wrapped
// backend over the same curve.
func Secp256k1Params() Params {
	return Params{
		Name: "secp256k1",
		A:    big.NewInt(0),
		B:    big.NewInt(7),
		P:    mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
		Gx:   mustHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
		Gy:   mustHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
		N:    mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
	}
}

// P256Params returns the parameters of NIST P-256 (a = -3).
func P256Params() Params {
	p := mustHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff")
	return Params{
		Name: "P-256",
		A:    new(big.Int).Sub(p, big.NewInt(3)),
		B:    mustHex("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
		P:    p,
		Gx:   mustHex("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
		Gy:   mustHex("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"),
		N:    mustHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
	}
}
