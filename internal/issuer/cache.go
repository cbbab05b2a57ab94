package issuer

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// credentialCache holds issued credentials per hostname, each entry expiring
// at its certificate's NotAfter.
type credentialCache struct {
	entries *gocache.Cache
}

func newCredentialCache() *credentialCache {
	return &credentialCache{
		entries: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (c *credentialCache) get(hostname string) (*Credential, bool) {
	v, ok := c.entries.Get(hostname)
	if !ok {
		return nil, false
	}
	return v.(*Credential), true
}

func (c *credentialCache) put(hostname string, cred *Credential, notAfter time.Time) {
	c.entries.Set(hostname, cred, time.Until(notAfter))
}

func (c *credentialCache) flush() {
	c.entries.Flush()
}
