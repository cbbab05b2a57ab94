// Package issuer mints ephemeral, self-signed X.509 server certificates on
// demand, keyed by the hostname a TLS client presents via SNI. A single
// long-lived signing key pair is reused for every certificate, so a TLS
// terminator can answer handshakes for arbitrary hostnames without
// pre-provisioning anything.
package issuer

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/wolfeidau/snicert/internal/telemetry"
)

// Certificate is a freshly issued, self-signed server certificate. Ownership
// passes to the caller; the Issuer keeps no reference to it.
type Certificate struct {
	DER  []byte
	Cert *x509.Certificate
}

// PEM returns the certificate encoded as a PEM CERTIFICATE block.
func (c *Certificate) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.DER})
}

// Issuer issues certificates from a shared signing key pair. It is safe for
// concurrent use: the key pair is held behind an atomic pointer and every
// issuance is independent.
type Issuer struct {
	kp    atomic.Pointer[KeyPair]
	cache *credentialCache
	now   func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithCache reuses issued credentials per hostname until the certificate
// expires. The stock behaviour signs a fresh certificate on every handshake;
// enabling the cache freezes the serial and validity window for a hostname
// until its certificate's NotAfter.
func WithCache() Option {
	return func(i *Issuer) { i.cache = newCredentialCache() }
}

// WithClock overrides the time source used for serials and validity windows.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// New creates an Issuer signing with kp.
func New(kp *KeyPair, opts ...Option) *Issuer {
	i := &Issuer{now: time.Now}
	i.kp.Store(kp)
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// SetKeyPair atomically replaces the signing key pair. In-flight issuances
// finish with the pair they loaded; certificates already handed out are
// immutable snapshots and unaffected. Any cached credentials are dropped.
func (i *Issuer) SetKeyPair(kp *KeyPair) {
	i.kp.Store(kp)
	if i.cache != nil {
		i.cache.flush()
	}
}

// KeyPair returns the current signing key pair.
func (i *Issuer) KeyPair() *KeyPair { return i.kp.Load() }

// Fingerprint returns the SPKI fingerprint of the current public key.
func (i *Issuer) Fingerprint() (string, error) {
	return SPKIFingerprint(i.kp.Load().Public)
}

// Issue builds and self-signs a certificate for hostname.
//
// The certificate carries the hostname as its sole subject attribute
// (CommonName), an identical issuer, a SAN list of the hostname plus its
// single-level wildcard, serverAuth/clientAuth usage, and a validity window
// of one calendar year (a Feb 29 start normalises to Mar 1, per Go's
// time.AddDate). Hostnames that are IP literals still get DNS SANs only.
func (i *Issuer) Issue(hostname string) (*Certificate, error) {
	return i.issueWith(hostname, i.kp.Load())
}

func (i *Issuer) issueWith(hostname string, kp *KeyPair) (*Certificate, error) {
	if hostname == "" {
		return nil, ErrInvalidHostname
	}

	ctx := context.Background()
	m := telemetry.GetMetrics()

	serial, ok := new(big.Int).SetString(SerialNumber(i.now()), 10)
	if !ok {
		return nil, &SigningError{Hostname: hostname, Err: fmt.Errorf("bad serial for %v", i.now())}
	}

	skid, err := subjectKeyID(kp.Public)
	if err != nil {
		m.IssueErrorsTotal.Add(ctx, 1)
		return nil, &SigningError{Hostname: hostname, Err: err}
	}

	alg, err := signatureAlgorithm(kp.Private.Public())
	if err != nil {
		m.IssueErrorsTotal.Add(ctx, 1)
		return nil, &SigningError{Hostname: hostname, Err: err}
	}

	notBefore := i.now()
	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: hostname},
		NotBefore:             notBefore,
		NotAfter:              notBefore.AddDate(1, 0, 0),
		BasicConstraintsValid: true,
		IsCA:                  false,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		DNSNames:              []string{hostname, "*." + hostname},
		SubjectKeyId:          skid,
		SignatureAlgorithm:    alg,
	}

	started := time.Now()
	// Template doubles as parent, and the embedded public key comes from the
	// stored pair rather than the signer: a mismatched pair produces a
	// certificate that signs fine but fails verification.
	der, err := x509.CreateCertificate(rand.Reader, template, template, kp.Public, kp.Private)
	if err != nil {
		m.IssueErrorsTotal.Add(ctx, 1)
		return nil, &SigningError{Hostname: hostname, Err: err}
	}
	m.SignDuration.Record(ctx, float64(time.Since(started).Microseconds())/1000.0)

	parsed, err := x509.ParseCertificate(der)
	if err != nil {
		m.IssueErrorsTotal.Add(ctx, 1)
		return nil, &SigningError{Hostname: hostname, Err: err}
	}

	m.CertificatesIssuedTotal.Add(ctx, 1)

	return &Certificate{DER: der, Cert: parsed}, nil
}

// subjectKeyID computes the RFC 5280 method 1 subject key identifier: the
// SHA-1 digest of the subjectPublicKey BIT STRING inside the SPKI.
func subjectKeyID(pub crypto.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}

	var spki struct {
		Algorithm        pkix.AlgorithmIdentifier
		SubjectPublicKey asn1.BitString
	}
	if _, err := asn1.Unmarshal(der, &spki); err != nil {
		return nil, fmt.Errorf("unmarshal SPKI: %w", err)
	}

	sum := sha1.Sum(spki.SubjectPublicKey.Bytes) // #nosec G401 - key identifier, not integrity
	return sum[:], nil
}

// signatureAlgorithm pins the digest to SHA-256 for the supported key types.
func signatureAlgorithm(pub crypto.PublicKey) (x509.SignatureAlgorithm, error) {
	switch pub.(type) {
	case *rsa.PublicKey:
		return x509.SHA256WithRSA, nil
	case *ecdsa.PublicKey:
		return x509.ECDSAWithSHA256, nil
	}
	return x509.UnknownSignatureAlgorithm, fmt.Errorf("unsupported signing key type %T", pub)
}
