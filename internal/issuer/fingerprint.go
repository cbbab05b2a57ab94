package issuer

import (
	"crypto"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"fmt"
)

// SPKIFingerprint returns the lowercase hex SHA-256 digest of the DER
// SubjectPublicKeyInfo encoding of pub. The digest is stable for the life of
// the key and safe to cache.
func SPKIFingerprint(pub crypto.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}

	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:]), nil
}

// TLSARecord returns the record data for a DANE-EE TLSA record of usage 3,
// selector 1 (SPKI) and matching type 1 (SHA-256), suitable for out-of-band
// publication in DNS.
func TLSARecord(pub crypto.PublicKey) (string, error) {
	fp, err := SPKIFingerprint(pub)
	if err != nil {
		return "", err
	}
	return "3 1 1 " + fp, nil
}
