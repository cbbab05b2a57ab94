package issuer

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKeyPair(t *testing.T) {
	t.Run("rsa pkcs1 private with pkix public", func(t *testing.T) {
		publicPEM, privatePEM := rsaPEM(t)

		kp, err := ParseKeyPair(publicPEM, privatePEM)
		require.NoError(t, err)
		require.IsType(t, &rsa.PublicKey{}, kp.Public)
		require.IsType(t, &rsa.PrivateKey{}, kp.Private)
		require.Equal(t, publicPEM, kp.PublicPEM())
		require.Equal(t, privatePEM, kp.PrivatePEM())
	})

	t.Run("rsa pkcs8 private", func(t *testing.T) {
		publicPEM, _ := rsaPEM(t)

		privDER, err := x509.MarshalPKCS8PrivateKey(testRSAKey(t))
		require.NoError(t, err)
		privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})

		kp, err := ParseKeyPair(publicPEM, privatePEM)
		require.NoError(t, err)
		require.IsType(t, &rsa.PrivateKey{}, kp.Private)
	})

	t.Run("ec sec1 private with pkix public", func(t *testing.T) {
		publicPEM, privatePEM := ecPEM(t)

		kp, err := ParseKeyPair(publicPEM, privatePEM)
		require.NoError(t, err)
		require.IsType(t, &ecdsa.PublicKey{}, kp.Public)
		require.IsType(t, &ecdsa.PrivateKey{}, kp.Private)
	})

	t.Run("malformed public pem", func(t *testing.T) {
		_, privatePEM := rsaPEM(t)

		_, err := ParseKeyPair([]byte("not a pem block"), privatePEM)
		require.Error(t, err)

		var parseErr *KeyParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, "public", parseErr.Key)
	})

	t.Run("malformed private pem", func(t *testing.T) {
		publicPEM, _ := rsaPEM(t)

		_, err := ParseKeyPair(publicPEM, []byte("-----BEGIN GARBAGE-----\nZm9v\n-----END GARBAGE-----\n"))
		require.Error(t, err)

		var parseErr *KeyParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, "private", parseErr.Key)
	})

	t.Run("unsupported key algorithm", func(t *testing.T) {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		privDER, err := x509.MarshalPKCS8PrivateKey(priv)
		require.NoError(t, err)
		privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})

		publicPEM, _ := rsaPEM(t)

		_, parseErr := ParseKeyPair(publicPEM, privatePEM)
		require.Error(t, parseErr)

		var keyErr *KeyParseError
		require.ErrorAs(t, parseErr, &keyErr)
		require.Equal(t, "private", keyErr.Key)
	})

	t.Run("mismatched pair still parses", func(t *testing.T) {
		// Correspondence is the caller's problem; the engine signs with
		// whatever it was given.
		publicPEM, _ := rsaPEM(t)
		_, privatePEM := ecPEM(t)

		kp, err := ParseKeyPair(publicPEM, privatePEM)
		require.NoError(t, err)
		require.IsType(t, &rsa.PublicKey{}, kp.Public)
		require.IsType(t, &ecdsa.PrivateKey{}, kp.Private)
	})
}
