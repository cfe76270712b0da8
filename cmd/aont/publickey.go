package main

import (
	"io"

	"github.com/alecthomas/kong"
)

type publicKeyCmd struct {
	SecretKey string `arg:"" type:"existingfile" help:"The path to the secret key."`
	Output    string `arg:"" type:"path" default:"-" help:"The output path for the public key."`

	Passphrase string `env:"AONT_PASSPHRASE" help:"The secret key's passphrase. Prompted for if empty."`
}

func (cmd *publicKeyCmd) Run(_ *kong.Context) error {
	sk, err := decryptSecretKey(cmd.SecretKey, cmd.Passphrase)
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = io.WriteString(dst, sk.PublicKey().String()+"\n")

	return err
}
