package ecc

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/curvelab/curvecrypt/group"
)

// scalarLen returns the fixed width of an encoded scalar: the byte length
// of the group order.
func scalarLen(g group.Group) int {
	return (g.N().BitLen() + 7) / 8
}

// ScalarBytes encodes k as a fixed-width big-endian integer padded to the
// byte length of the group order. k must lie in [0, n).
func ScalarBytes(g group.Group, k *big.Int) []byte {
	if k.Sign() < 0 || k.Cmp(g.N()) >= 0 {
		panic("ecc: scalar out of range")
	}
	return k.FillBytes(make([]byte, scalarLen(g)))
}

// ParseScalar decodes a fixed-width scalar encoding, rejecting wrong
// lengths and values at or above the group order.
func ParseScalar(g group.Group, b []byte) (*big.Int, error) {
	if len(b) != scalarLen(g) {
		return nil, errors.Wrapf(ErrInvalidScalar, "encoding must be %d bytes, got %d", scalarLen(g), len(b))
	}
	k := new(big.Int).SetBytes(b)
	if k.Cmp(g.N()) >= 0 {
		return nil, errors.Wrap(ErrInvalidScalar, "value exceeds group order")
	}
	return k, nil
}
