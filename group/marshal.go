package group

import (
	"math/big"

	"github.com/pkg/errors"
)

// Canonical point encoding, shared by every backend: a 1-byte tag followed,
// for affine points, by the two coordinates in fixed-width big-endian form
// padded to the byte length of the field order.
const (
	tagIdentity byte = 0
	tagAffine   byte = 1
)

// encodedLen returns the length of an encoded affine point for a field of
// the given byte length.
func encodedLen(byteLen int) int {
	return 1 + 2*byteLen
}

// marshalPoint emits the canonical encoding of a point. Identity points
// carry no coordinates.
func marshalPoint(byteLen int, x, y *big.Int) []byte {
	if x == nil {
		return []byte{tagIdentity}
	}
	out := make([]byte, encodedLen(byteLen))
	out[0] = tagAffine
	x.FillBytes(out[1 : 1+byteLen])
	y.FillBytes(out[1+byteLen:])
	return out
}

// unmarshalPoint parses a canonical encoding. It checks structure and
// coordinate range only; curve membership is the caller's job. The returned
// coordinates are nil for the identity.
func unmarshalPoint(byteLen int, p *big.Int, data []byte) (x, y *big.Int, err error) {
	if len(data) == 0 {
		return nil, nil, errors.Wrap(ErrInvalidPoint, "empty encoding")
	}
	switch data[0] {
	case tagIdentity:
		if len(data) != 1 {
			return nil, nil, errors.Wrap(ErrInvalidPoint, "trailing bytes after identity tag")
		}
		return nil, nil, nil
	case tagAffine:
		if len(data) != encodedLen(byteLen) {
			return nil, nil, errors.Wrapf(ErrInvalidPoint, "encoding must be %d bytes, got %d", encodedLen(byteLen), len(data))
		}
		x = new(big.Int).SetBytes(data[1 : 1+byteLen])
		y = new(big.Int).SetBytes(data[1+byteLen:])
		if x.Cmp(p) >= 0 || y.Cmp(p) >= 0 {
			return nil, nil, errors.Wrap(ErrInvalidPoint, "coordinate exceeds field order")
		}
		return x, y, nil
	default:
		return nil, nil, errors.Wrapf(ErrInvalidPoint, "unknown tag 0x%02x", data[0])
	}
}
