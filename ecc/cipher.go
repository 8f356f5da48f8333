package ecc

import (
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/curvelab/curvecrypt/group"
)

// Cipher encrypts byte strings to a recipient's public point. Each call
// draws one ephemeral key pair (r, R = r·G); the shared point S = r·Q is
// stretched into a keystream and XORed with the plaintext. The recipient
// recomputes S = d·R and strips the keystream off again.
//
// This is a minimal shared-secret scheme: it hides content but does not
// authenticate it.
type Cipher struct {
	g   group.Group
	kdf KeyDerivation
}

// NewCipher returns a cipher over g with the default SHAKE256 key
// derivation.
func NewCipher(g group.Group) *Cipher {
	return NewCipherWithKDF(g, SHAKE256KDF())
}

// NewCipherWithKDF returns a cipher with a caller-supplied key derivation.
// Both ends must use the same one.
func NewCipherWithKDF(g group.Group, kdf KeyDerivation) *Cipher {
	return &Cipher{g: g, kdf: kdf}
}

// Ciphertext pairs the ephemeral public point R with the masked payload.
// Data has exactly the plaintext's length.
type Ciphertext struct {
	R    group.Element
	Data []byte
}

// MarshalBinary emits the canonical form: the encoded ephemeral point
// followed by the raw payload bytes.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	rb, err := ct.R.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(rb)+len(ct.Data))
	out = append(out, rb...)
	return append(out, ct.Data...), nil
}

// Encrypt encrypts plaintext to the recipient's public point. The supplied
// random source feeds the one ephemeral key draw; everything else is
// deterministic.
func (c *Cipher) Encrypt(recipient group.Element, plaintext []byte, rand io.Reader) (*Ciphertext, error) {
	if recipient == nil || !recipient.IsOnCurve() {
		return nil, errors.Wrap(group.ErrInvalidPoint, "recipient public key")
	}
	eph, err := GenerateKeyPair(c.g, rand)
	if err != nil {
		return nil, err
	}
	shared, err := eph.SharedSecret(recipient)
	if err != nil {
		return nil, err
	}
	stream, err := c.keystream(shared, len(plaintext))
	if err != nil {
		return nil, err
	}
	return &Ciphertext{R: eph.PublicKey(), Data: xorBytes(plaintext, stream)}, nil
}

// Decrypt recovers the plaintext with the recipient's private scalar. The
// ephemeral point is re-validated for curve membership before use.
func (c *Cipher) Decrypt(d *big.Int, ct *Ciphertext) ([]byte, error) {
	if d == nil || d.Sign() <= 0 || d.Cmp(c.g.N()) >= 0 {
		return nil, ErrInvalidScalar
	}
	if ct == nil || ct.R == nil || !ct.R.IsOnCurve() {
		return nil, errors.Wrap(group.ErrInvalidPoint, "ephemeral point")
	}
	shared := c.g.Element().Scale(ct.R, d)
	if shared.IsIdentity() {
		return nil, errors.Wrap(group.ErrInvalidPoint, "shared point is the identity")
	}
	stream, err := c.keystream(shared, len(ct.Data))
	if err != nil {
		return nil, err
	}
	return xorBytes(ct.Data, stream), nil
}

// ParseCiphertext splits a canonical encoding into the ephemeral point and
// the payload. The point length is implied by its tag; the payload is
// whatever follows.
func (c *Cipher) ParseCiphertext(b []byte) (*Ciphertext, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(group.ErrInvalidPoint, "empty ciphertext")
	}
	pointLen := 1
	if b[0] != 0 {
		pointLen = c.g.ElementLength()
	}
	if len(b) < pointLen {
		return nil, errors.Wrap(group.ErrInvalidPoint, "truncated ephemeral point")
	}
	R := c.g.Element()
	if err := R.UnmarshalBinary(b[:pointLen]); err != nil {
		return nil, err
	}
	data := make([]byte, len(b)-pointLen)
	copy(data, b[pointLen:])
	return &Ciphertext{R: R, Data: data}, nil
}

// keystream derives the symmetric stream from the shared point's
// x-coordinate in fixed-width form.
func (c *Cipher) keystream(shared group.Element, length int) ([]byte, error) {
	x, _ := shared.Affine()
	byteLen := (c.g.P().BitLen() + 7) / 8
	secret := x.FillBytes(make([]byte, byteLen))
	return c.kdf.Keystream(secret, length)
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
