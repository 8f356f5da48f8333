// Package ecc builds key exchange and a keystream cipher on top of a curve
// group: ECDH key pairs, shared-secret derivation, and an ephemeral-key
// encryption scheme in the ElGamal mould.
//
// Everything here is a pure function of its inputs plus the explicit random
// source passed in for key generation. No state is shared between calls.
package ecc

import (
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/curvelab/curvecrypt/group"
)

// ErrInvalidScalar is returned when a private scalar lies outside [1, n-1].
var ErrInvalidScalar = errors.New("ecc: invalid private scalar")

// KeyPair holds a private scalar d and the derived public point Q = d·G.
// The scalar never leaves the pair except through PrivateBytes, and is never
// part of String output.
type KeyPair struct {
	g   group.Group
	d   *big.Int
	pub group.Element
}

// GenerateKeyPair draws d uniformly from [1, n-1] using the supplied random
// source and derives Q = d·G.
func GenerateKeyPair(g group.Group, rand io.Reader) (*KeyPair, error) {
	d, err := g.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(g, d)
}

// NewKeyPair builds a key pair from an externally supplied scalar,
// rejecting values outside [1, n-1].
func NewKeyPair(g group.Group, d *big.Int) (*KeyPair, error) {
	if d == nil || d.Sign() <= 0 || d.Cmp(g.N()) >= 0 {
		return nil, ErrInvalidScalar
	}
	priv := new(big.Int).Set(d)
	return &KeyPair{g: g, d: priv, pub: g.Element().BaseScale(priv)}, nil
}

// Group returns the curve group the pair belongs to.
func (kp *KeyPair) Group() group.Group { return kp.g }

// PublicKey returns a copy of Q.
func (kp *KeyPair) PublicKey() group.Element {
	return kp.g.Element().Set(kp.pub)
}

// PrivateBytes returns the fixed-width encoding of d for persistence. The
// caller owns keeping it secret.
func (kp *KeyPair) PrivateBytes() []byte {
	return ScalarBytes(kp.g, kp.d)
}

// SharedSecret performs the ECDH step: S = d·peer. The peer point is
// validated for curve membership first, and a derived identity point
// (small-order or malicious peer key) is rejected.
func (kp *KeyPair) SharedSecret(peer group.Element) (group.Element, error) {
	if peer == nil || !peer.IsOnCurve() {
		return nil, errors.Wrap(group.ErrInvalidPoint, "peer public key")
	}
	s := kp.g.Element().Scale(peer, kp.d)
	if s.IsIdentity() {
		return nil, errors.Wrap(group.ErrInvalidPoint, "shared point is the identity")
	}
	return s, nil
}

// String deliberately shows the public half only.
func (kp *KeyPair) String() string {
	return fmt.Sprintf("KeyPair{pub: %s}", kp.pub)
}
