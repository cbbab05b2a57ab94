package commands

import (
	"os"

	"github.com/wolfeidau/snicert/internal/issuer"
)

type IssueCmd struct {
	Hostname   string `arg:"" help:"hostname to issue a certificate for"`
	IncludeKey bool   `help:"also print the private key PEM" default:"false"`

	Keys KeyFlags `embed:""`
}

func (c *IssueCmd) Run(globals *Globals) error {
	kp, err := c.Keys.keyPair()
	if err != nil {
		return err
	}

	cred, err := issuer.New(kp).Credential(c.Hostname)
	if err != nil {
		return err
	}

	if _, err := os.Stdout.Write(cred.CertificatePEM); err != nil {
		return err
	}

	if c.IncludeKey {
		if _, err := os.Stdout.Write(cred.PrivateKeyPEM); err != nil {
			return err
		}
	}

	return nil
}
