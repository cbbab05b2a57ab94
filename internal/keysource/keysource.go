// Package keysource resolves the PEM signing key material an issuer is
// constructed with, from inline strings or files on disk.
package keysource

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMissingKeyMaterial is returned when neither an inline PEM value nor a
// file path resolves to key bytes for one of the keys.
var ErrMissingKeyMaterial = errors.New("keysource: no key material supplied")

// Config describes where the public and private signing keys come from.
// For each key exactly one source must resolve to non-empty content; inline
// material wins when both are set.
type Config struct {
	// Inline PEM material
	PublicKeyPEM  string `yaml:"public_key_pem"`
	PrivateKeyPEM string `yaml:"private_key_pem"`

	// File paths
	PublicKeyFile  string `yaml:"public_key_file"`
	PrivateKeyFile string `yaml:"private_key_file"`
}

// LoadFile reads a YAML file describing the key sources.
func LoadFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read key config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse key config: %w", err)
	}

	return cfg, nil
}

// Load resolves the PEM bytes for both keys.
func Load(cfg Config) (publicPEM, privatePEM []byte, err error) {
	publicPEM, err = resolve("public key", cfg.PublicKeyPEM, cfg.PublicKeyFile)
	if err != nil {
		return nil, nil, err
	}

	privatePEM, err = resolve("private key", cfg.PrivateKeyPEM, cfg.PrivateKeyFile)
	if err != nil {
		return nil, nil, err
	}

	return publicPEM, privatePEM, nil
}

func resolve(name, inline, path string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s file: %w", name, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: %s file %s is empty", ErrMissingKeyMaterial, name, path)
		}
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrMissingKeyMaterial, name)
}
