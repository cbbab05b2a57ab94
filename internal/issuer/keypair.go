package issuer

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// KeyPair is the long-lived signing key material reused for every issued
// certificate. It is immutable once parsed; re-keying an Issuer swaps the
// whole pair.
type KeyPair struct {
	Public  crypto.PublicKey
	Private crypto.Signer

	publicPEM  []byte
	privatePEM []byte
}

// ParseKeyPair parses PEM-encoded public and private keys. The public key
// must be PKIX or PKCS#1, the private key PKCS#8, PKCS#1 or SEC1; RSA and
// ECDSA keys are supported.
//
// The pair is not checked for correspondence: a private key that does not
// match the public key still signs, the resulting certificate just fails
// verification.
func ParseKeyPair(publicPEM, privatePEM []byte) (*KeyPair, error) {
	pub, err := parsePublicKey(publicPEM)
	if err != nil {
		return nil, &KeyParseError{Key: "public", Err: err}
	}

	priv, err := parsePrivateKey(privatePEM)
	if err != nil {
		return nil, &KeyParseError{Key: "private", Err: err}
	}

	return &KeyPair{
		Public:     pub,
		Private:    priv,
		publicPEM:  bytes.Clone(publicPEM),
		privatePEM: bytes.Clone(privatePEM),
	}, nil
}

// PublicPEM returns the raw PEM bytes the public key was parsed from.
func (kp *KeyPair) PublicPEM() []byte { return kp.publicPEM }

// PrivatePEM returns the raw PEM bytes the private key was parsed from.
// Credentials hand these to the TLS layer verbatim.
func (kp *KeyPair) PrivatePEM() []byte { return kp.privatePEM }

func parsePublicKey(data []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		switch pub.(type) {
		case *rsa.PublicKey, *ecdsa.PublicKey:
			return pub, nil
		}
		return nil, fmt.Errorf("unsupported public key type %T", pub)
	}

	if pub, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return pub, nil
	}

	return nil, fmt.Errorf("unsupported public key encoding (block type %q)", block.Type)
}

func parsePrivateKey(data []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		switch key := key.(type) {
		case *rsa.PrivateKey:
			return key, nil
		case *ecdsa.PrivateKey:
			return key, nil
		}
		return nil, fmt.Errorf("unsupported private key type %T", key)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	return nil, fmt.Errorf("unsupported private key encoding (block type %q)", block.Type)
}
