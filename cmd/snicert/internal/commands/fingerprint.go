package commands

import (
	"fmt"

	"github.com/wolfeidau/snicert/internal/issuer"
)

type FingerprintCmd struct {
	TLSA bool `help:"print the full TLSA record data (usage 3, selector 1, matching type 1)" default:"false"`

	Keys KeyFlags `embed:""`
}

func (c *FingerprintCmd) Run(globals *Globals) error {
	kp, err := c.Keys.keyPair()
	if err != nil {
		return err
	}

	var out string
	if c.TLSA {
		out, err = issuer.TLSARecord(kp.Public)
	} else {
		out, err = issuer.SPKIFingerprint(kp.Public)
	}
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}
