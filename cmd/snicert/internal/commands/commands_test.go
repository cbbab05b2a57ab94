package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/snicert/internal/keysource"
)

func writeTestKeys(t *testing.T) (pubPath, privPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	dir := t.TempDir()
	pubPath = filepath.Join(dir, "pub.pem")
	privPath = filepath.Join(dir, "priv.pem")

	require.NoError(t, os.WriteFile(pubPath,
		pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}), 0o600))
	require.NoError(t, os.WriteFile(privPath,
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}), 0o600))

	return pubPath, privPath
}

func TestKeyFlags(t *testing.T) {
	t.Run("resolves key pair from files", func(t *testing.T) {
		pubPath, privPath := writeTestKeys(t)

		flags := &KeyFlags{PublicKeyFile: pubPath, PrivateKeyFile: privPath}
		kp, err := flags.keyPair()
		require.NoError(t, err)
		require.NotNil(t, kp.Public)
		require.NotNil(t, kp.Private)
	})

	t.Run("resolves key pair from config file", func(t *testing.T) {
		pubPath, privPath := writeTestKeys(t)

		cfgPath := filepath.Join(t.TempDir(), "keys.yaml")
		require.NoError(t, os.WriteFile(cfgPath,
			[]byte("public_key_file: "+pubPath+"\nprivate_key_file: "+privPath+"\n"), 0o600))

		flags := &KeyFlags{Config: cfgPath}
		kp, err := flags.keyPair()
		require.NoError(t, err)
		require.NotNil(t, kp.Private)
	})

	t.Run("no key material", func(t *testing.T) {
		flags := &KeyFlags{}
		_, err := flags.keyPair()
		require.ErrorIs(t, err, keysource.ErrMissingKeyMaterial)
	})
}
