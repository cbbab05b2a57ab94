package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/snicert/cmd/snicert/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool `help:"Enable debug mode."`
		Version kong.VersionFlag

		Serve       commands.ServeCmd       `cmd:"" help:"Serve HTTPS, issuing a self-signed certificate per handshake from the SNI hostname"`
		Issue       commands.IssueCmd       `cmd:"" help:"Issue a certificate for a hostname and print it as PEM"`
		Fingerprint commands.FingerprintCmd `cmd:"" help:"Print the SPKI fingerprint of the signing public key"`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
