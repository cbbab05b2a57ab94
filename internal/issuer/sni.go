package issuer

import (
	"context"
	"crypto/tls"

	"github.com/wolfeidau/snicert/internal/telemetry"
)

// Credential pairs an issued certificate with the signing private key, both
// PEM-encoded, in the form a TLS stack consumes to build a secure context
// for one connection.
type Credential struct {
	CertificatePEM []byte
	PrivateKeyPEM  []byte
}

// TLSCertificate converts the credential into a crypto/tls certificate.
func (c *Credential) TLSCertificate() (tls.Certificate, error) {
	return tls.X509KeyPair(c.CertificatePEM, c.PrivateKeyPEM)
}

// Credential issues a certificate for hostname and bundles it with the
// private key PEM. With caching enabled the previous bundle is reused until
// its certificate expires.
func (i *Issuer) Credential(hostname string) (*Credential, error) {
	if i.cache != nil {
		if cred, ok := i.cache.get(hostname); ok {
			telemetry.GetMetrics().CacheHitsTotal.Add(context.Background(), 1)
			return cred, nil
		}
	}

	kp := i.kp.Load()
	cert, err := i.issueWith(hostname, kp)
	if err != nil {
		return nil, err
	}

	cred := &Credential{
		CertificatePEM: cert.PEM(),
		PrivateKeyPEM:  kp.PrivatePEM(),
	}

	if i.cache != nil {
		i.cache.put(hostname, cred, cert.Cert.NotAfter)
	}

	return cred, nil
}

// GetCertificate is the per-handshake hook for tls.Config.GetCertificate.
// It issues a certificate for the SNI hostname of each inbound handshake and
// returns exactly one result per invocation, certificate or error. A failed
// hostname only fails its own handshake.
func (i *Issuer) GetCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	cred, err := i.Credential(hello.ServerName)
	if err != nil {
		return nil, err
	}

	cert, err := cred.TLSCertificate()
	if err != nil {
		return nil, &SigningError{Hostname: hello.ServerName, Err: err}
	}

	return &cert, nil
}
