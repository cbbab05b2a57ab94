package issuer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Key generation is the slow part of these tests, so each key is generated
// once and shared. Tests must treat the pairs as read-only.
var (
	rsaOnce sync.Once
	rsaKey  *rsa.PrivateKey

	ecOnce sync.Once
	ecKey  *ecdsa.PrivateKey
)

func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	rsaOnce.Do(func() {
		var err error
		rsaKey, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
	})
	return rsaKey
}

func testECKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	ecOnce.Do(func() {
		var err error
		ecKey, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			panic(err)
		}
	})
	return ecKey
}

func rsaPEM(t *testing.T) (publicPEM, privatePEM []byte) {
	t.Helper()
	key := testRSAKey(t)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return publicPEM, privatePEM
}

func ecPEM(t *testing.T) (publicPEM, privatePEM []byte) {
	t.Helper()
	key := testECKey(t)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	privDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privDER})
	return publicPEM, privatePEM
}

func testKeyPair(t *testing.T) *KeyPair {
	t.Helper()
	publicPEM, privatePEM := rsaPEM(t)
	kp, err := ParseKeyPair(publicPEM, privatePEM)
	require.NoError(t, err)
	return kp
}
