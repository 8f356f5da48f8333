package ecc

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curvelab/curvecrypt/group"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	long := make([]byte, 1000)
	_, err := rand.Read(long)
	require.NoError(t, err)

	messages := [][]byte{
		nil,
		[]byte{0x00},
		[]byte("Hello, world!! :)"),
		long,
	}

	for _, g := range testGroups(t) {
		t.Run(g.Name(), func(t *testing.T) {
			c := NewCipher(g)
			kp, err := GenerateKeyPair(g, rand.Reader)
			require.NoError(t, err)

			for _, msg := range messages {
				ct, err := c.Encrypt(kp.PublicKey(), msg, rand.Reader)
				require.NoError(t, err)
				require.Len(t, ct.Data, len(msg), "payload length equals plaintext length")

				d, err := ParseScalar(g, kp.PrivateBytes())
				require.NoError(t, err)
				got, err := c.Decrypt(d, ct)
				require.NoError(t, err)
				// bytes.Equal treats a nil message and the empty
				// plaintext Decrypt returns for it as equal.
				assert.True(t, bytes.Equal(msg, got),
					"plaintext mismatch: want %x, got %x", msg, got)
			}
		})
	}
}

func TestCiphertextMarshalRoundTrip(t *testing.T) {
	g := toyGroup(t)
	c := NewCipher(g)
	kp, err := GenerateKeyPair(g, rand.Reader)
	require.NoError(t, err)

	msg := []byte("attack at dawn")
	ct, err := c.Encrypt(kp.PublicKey(), msg, rand.Reader)
	require.NoError(t, err)

	enc, err := ct.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, enc, g.ElementLength()+len(msg))

	back, err := c.ParseCiphertext(enc)
	require.NoError(t, err)
	assert.True(t, back.R.IsEqual(ct.R))
	assert.Equal(t, ct.Data, back.Data)

	d, err := ParseScalar(g, kp.PrivateBytes())
	require.NoError(t, err)
	got, err := c.Decrypt(d, back)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

// An encoded ephemeral point that does not satisfy the curve equation must
// surface as ErrInvalidPoint, never as silently wrong plaintext.
func TestParseCiphertextRejectsOffCurvePoint(t *testing.T) {
	g := toyGroup(t)
	c := NewCipher(g)

	bad := make([]byte, g.ElementLength())
	bad[0] = 1
	// x = 1, y = 1: 1 != 1 + 100 + 1 (mod p).
	byteLen := (g.ElementLength() - 1) / 2
	bad[byteLen] = 1
	bad[2*byteLen] = 1

	_, err := c.ParseCiphertext(append(bad, []byte("payload")...))
	assert.True(t, errors.Is(err, group.ErrInvalidPoint))

	_, err = c.ParseCiphertext(nil)
	assert.True(t, errors.Is(err, group.ErrInvalidPoint))

	_, err = c.ParseCiphertext([]byte{0x01, 0x02})
	assert.True(t, errors.Is(err, group.ErrInvalidPoint), "truncated point")
}

func TestDecryptRejectsBadScalar(t *testing.T) {
	g := toyGroup(t)
	c := NewCipher(g)
	kp, err := GenerateKeyPair(g, rand.Reader)
	require.NoError(t, err)

	ct, err := c.Encrypt(kp.PublicKey(), []byte("x"), rand.Reader)
	require.NoError(t, err)

	for _, d := range []*big.Int{nil, big.NewInt(0), g.N()} {
		_, err := c.Decrypt(d, ct)
		assert.True(t, errors.Is(err, ErrInvalidScalar), "d=%v", d)
	}
}

func TestDecryptRejectsIdentityEphemeral(t *testing.T) {
	g := toyGroup(t)
	c := NewCipher(g)

	ct := &Ciphertext{R: g.Identity(), Data: []byte("junk")}
	_, err := c.Decrypt(big.NewInt(7), ct)
	assert.True(t, errors.Is(err, group.ErrInvalidPoint))
}

func TestEncryptRejectsIdentityRecipient(t *testing.T) {
	g := toyGroup(t)
	c := NewCipher(g)

	_, err := c.Encrypt(g.Identity(), []byte("x"), rand.Reader)
	assert.True(t, errors.Is(err, group.ErrInvalidPoint))
}

// counterKDF is a deliberately different derivation used to exercise the
// pluggable KeyDerivation seam.
type counterKDF struct{}

func (counterKDF) Keystream(secret []byte, length int) ([]byte, error) {
	out := make([]byte, 0, length)
	var ctr uint32
	for len(out) < length {
		var block [4]byte
		binary.BigEndian.PutUint32(block[:], ctr)
		sum := sha256.Sum256(append(block[:], secret...))
		out = append(out, sum[:]...)
		ctr++
	}
	return out[:length], nil
}

func TestCustomKDFRoundTrip(t *testing.T) {
	g := toyGroup(t)
	c := NewCipherWithKDF(g, counterKDF{})
	kp, err := GenerateKeyPair(g, rand.Reader)
	require.NoError(t, err)

	msg := []byte("pluggable derivation")
	ct, err := c.Encrypt(kp.PublicKey(), msg, rand.Reader)
	require.NoError(t, err)

	d, err := ParseScalar(g, kp.PrivateBytes())
	require.NoError(t, err)
	got, err := c.Decrypt(d, ct)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

// A ciphertext produced over one secp256k1 backend must decrypt over the
// other: the curve, the shared point, and the canonical encoding all agree.
func TestCrossBackendDecrypt(t *testing.T) {
	wrapped := group.Secp256k1()
	generic, err := group.NewWeierstrass(group.Secp256k1Params())
	require.NoError(t, err)

	kp, err := GenerateKeyPair(wrapped, rand.Reader)
	require.NoError(t, err)

	msg := []byte("backends are interchangeable")
	ct, err := NewCipher(wrapped).Encrypt(kp.PublicKey(), msg, rand.Reader)
	require.NoError(t, err)

	enc, err := ct.MarshalBinary()
	require.NoError(t, err)

	genericCipher := NewCipher(generic)
	parsed, err := genericCipher.ParseCiphertext(enc)
	require.NoError(t, err)

	d, err := ParseScalar(generic, kp.PrivateBytes())
	require.NoError(t, err)
	got, err := genericCipher.Decrypt(d, parsed)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}
