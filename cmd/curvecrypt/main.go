// Command curvecrypt is a thin CLI over the curvecrypt library: key
// generation, encryption, and decryption with base64 key and ciphertext
// encodings. All algebra lives in the library packages.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/curvelab/curvecrypt/ecc"
	"github.com/curvelab/curvecrypt/group"
)

var curveName string

func selectGroup(name string) (group.Group, error) {
	switch name {
	case "secp256k1":
		return group.Secp256k1(), nil
	case "secp256k1-generic":
		return group.NewWeierstrass(group.Secp256k1Params())
	case "p256":
		return group.P256(), nil
	default:
		return nil, errors.Errorf("unknown curve %q", name)
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "curvecrypt",
		Short:         "Elliptic-curve key generation and keystream encryption",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&curveName, "curve", "secp256k1",
		"curve to use: secp256k1, secp256k1-generic, or p256")

	root.AddCommand(genkeyCmd(), encryptCmd(), decryptCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func genkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genkey",
		Short: "Generate a key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := selectGroup(curveName)
			if err != nil {
				return err
			}
			kp, err := ecc.GenerateKeyPair(g, rand.Reader)
			if err != nil {
				return err
			}
			pub, err := kp.PublicKey().MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Printf("PRIVATE: %s\n", base64.StdEncoding.EncodeToString(kp.PrivateBytes()))
			fmt.Printf("PUBLIC: %s\n", base64.StdEncoding.EncodeToString(pub))
			return nil
		},
	}
}

func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <pubkey> <message>",
		Short: "Encrypt a message to a base64 public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := selectGroup(curveName)
			if err != nil {
				return err
			}
			raw, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return errors.Wrap(err, "decoding public key")
			}
			pub := g.Element()
			if err := pub.UnmarshalBinary(raw); err != nil {
				return errors.Wrap(err, "parsing public key")
			}
			ct, err := ecc.NewCipher(g).Encrypt(pub, []byte(args[1]), rand.Reader)
			if err != nil {
				return err
			}
			enc, err := ct.MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Println(base64.StdEncoding.EncodeToString(enc))
			return nil
		},
	}
}

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <prikey> <ciphertext>",
		Short: "Decrypt a base64 ciphertext with a base64 private key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := selectGroup(curveName)
			if err != nil {
				return err
			}
			rawKey, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return errors.Wrap(err, "decoding private key")
			}
			d, err := ecc.ParseScalar(g, rawKey)
			if err != nil {
				return err
			}
			rawCt, err := base64.StdEncoding.DecodeString(args[1])
			if err != nil {
				return errors.Wrap(err, "decoding ciphertext")
			}
			cipher := ecc.NewCipher(g)
			ct, err := cipher.ParseCiphertext(rawCt)
			if err != nil {
				return err
			}
			plaintext, err := cipher.Decrypt(d, ct)
			if err != nil {
				return err
			}
			fmt.Println(string(plaintext))
			return nil
		},
	}
}
