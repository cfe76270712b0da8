package main

import (
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont/custody"
	"github.com/google/logger"
)

type issueTokenCmd struct {
	SecretKey string `arg:"" type:"existingfile" help:"The path to the holder's secret key."`
	Asset     string `arg:"" help:"The asset to request access to."`
	Output    string `arg:"" type:"path" default:"-" help:"The output path for the signed token."`

	TTL        time.Duration `name:"ttl" default:"1h" help:"How long the token is valid for."`
	Passphrase string        `env:"AONT_PASSPHRASE" help:"The secret key's passphrase. Prompted for if empty."`
}

func (cmd *issueTokenCmd) Run(_ *kong.Context, log *logger.Logger) error {
	sk, err := decryptSecretKey(cmd.SecretKey, cmd.Passphrase)
	if err != nil {
		return err
	}

	token, err := custody.IssueToken(sk, &custody.Token{
		Holder:  sk.PublicKey().String(),
		Asset:   cmd.Asset,
		Expires: time.Now().Add(cmd.TTL).UTC(),
	})
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	if _, err := io.WriteString(dst, token.String()+"\n"); err != nil {
		return err
	}

	log.Infof("issued token for %q valid for %s", cmd.Asset, cmd.TTL)

	return nil
}
