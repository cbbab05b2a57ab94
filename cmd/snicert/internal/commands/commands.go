package commands

import (
	"net/http"
	"time"

	"github.com/wolfeidau/snicert/internal/issuer"
	"github.com/wolfeidau/snicert/internal/keysource"
)

type Globals struct {
	Debug   bool
	Version string
}

// KeyFlags locate the signing key pair. Each key comes from an inline PEM
// value, a file path, or a YAML config file naming either.
type KeyFlags struct {
	Config         string `help:"path to a YAML key config file" env:"SNICERT_KEY_CONFIG"`
	PublicKey      string `help:"inline PEM public key" env:"SNICERT_PUBLIC_KEY"`
	PrivateKey     string `help:"inline PEM private key" env:"SNICERT_PRIVATE_KEY"`
	PublicKeyFile  string `help:"path to a PEM public key file" env:"SNICERT_PUBLIC_KEY_FILE"`
	PrivateKeyFile string `help:"path to a PEM private key file" env:"SNICERT_PRIVATE_KEY_FILE"`
}

func (k *KeyFlags) keyPair() (*issuer.KeyPair, error) {
	cfg := keysource.Config{
		PublicKeyPEM:   k.PublicKey,
		PrivateKeyPEM:  k.PrivateKey,
		PublicKeyFile:  k.PublicKeyFile,
		PrivateKeyFile: k.PrivateKeyFile,
	}

	// A config file stands in for the flags wholesale.
	if k.Config != "" {
		fileCfg, err := keysource.LoadFile(k.Config)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	publicPEM, privatePEM, err := keysource.Load(cfg)
	if err != nil {
		return nil, err
	}

	return issuer.ParseKeyPair(publicPEM, privatePEM)
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	// Create HTTP server
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}
