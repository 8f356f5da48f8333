package group

import "math/big"

// Mul computes k·P with binary double-and-add, scanning the bits of k from
// most significant to least significant. It is generic over any Element
// implementation and is the single canonical scalar multiplication: backends
// without a native routine delegate to it.
//
// k = 0 yields the identity for every P. A negative k multiplies the
// negation of P by |k|. The loop runs a fixed BitLen(k) iterations and
// always terminates.
func Mul(g Group, P Element, k *big.Int) Element {
	if k.Sign() < 0 {
		return Mul(g, g.Element().Negate(P), new(big.Int).Neg(k))
	}
	R := g.Identity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		R.Double(R)
		if k.Bit(i) == 1 {
			R.Add(R, P)
		}
	}
	return R
}
