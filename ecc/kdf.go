package ecc

import (
	"io"

	"github.com/cloudflare/circl/xof"
	"github.com/pkg/errors"
)

// KeyDerivation stretches a shared secret into a keystream of the requested
// length. Implementations must be deterministic: the same secret always
// yields the same stream.
type KeyDerivation interface {
	Keystream(secret []byte, length int) ([]byte, error)
}

// shakeKDF derives the keystream with SHAKE256, an extendable-output hash:
// absorb the secret, squeeze as many bytes as the plaintext needs.
type shakeKDF struct{}

// SHAKE256KDF returns the default key derivation used by NewCipher.
func SHAKE256KDF() KeyDerivation { return shakeKDF{} }

func (shakeKDF) Keystream(secret []byte, length int) ([]byte, error) {
	h := xof.SHAKE256.New()
	if _, err := h.Write(secret); err != nil {
		return nil, errors.Wrap(err, "ecc: absorbing shared secret")
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, errors.Wrap(err, "ecc: squeezing keystream")
	}
	return out, nil
}
