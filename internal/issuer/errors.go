package issuer

import (
	"errors"
	"fmt"
)

// ErrInvalidHostname is returned when issuance is requested for an empty hostname.
var ErrInvalidHostname = errors.New("issuer: hostname is empty")

// KeyParseError reports key material that could not be parsed into a usable
// signing key. It is fatal: an Issuer cannot be constructed from it.
type KeyParseError struct {
	Key string // "public" or "private"
	Err error
}

func (e *KeyParseError) Error() string {
	return fmt.Sprintf("issuer: parse %s key: %v", e.Key, e.Err)
}

func (e *KeyParseError) Unwrap() error { return e.Err }

// SigningError reports a failed certificate signing operation for a single
// hostname. It is recoverable: other handshakes are unaffected.
type SigningError struct {
	Hostname string
	Err      error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("issuer: sign certificate for %q: %v", e.Hostname, e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }
