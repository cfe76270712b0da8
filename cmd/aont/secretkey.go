package main

import (
	"bytes"
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont/sign"
	"github.com/google/logger"
)

type secretKeyCmd struct {
	Output string `arg:"" type:"path" help:"The output path for the encrypted secret key."`

	Passphrase string `env:"AONT_PASSPHRASE" help:"The passphrase to encrypt the secret key with. Prompted for if empty."`
	Space      uint32 `default:"1024" help:"The balloon hashing space parameter."`
	Time       uint32 `default:"16" help:"The balloon hashing time parameter."`
}

func (cmd *secretKeyCmd) Run(_ *kong.Context, log *logger.Logger) error {
	pwd, err := cmd.passphrase()
	if err != nil {
		return err
	}

	sk, err := sign.NewSecretKey()
	if err != nil {
		return err
	}

	esk, err := sign.EncryptSecretKey(sk, pwd, &sign.PBEParams{Space: cmd.Space, Time: cmd.Time})
	if err != nil {
		return err
	}

	if err := os.WriteFile(cmd.Output, esk, 0600); err != nil {
		return err
	}

	log.Infof("wrote secret key for %s to %s", sk.PublicKey(), cmd.Output)

	return nil
}

func (cmd *secretKeyCmd) passphrase() ([]byte, error) {
	if cmd.Passphrase != "" {
		return []byte(cmd.Passphrase), nil
	}

	pwd, err := askSecret("Enter passphrase: ")
	if err != nil {
		return nil, err
	}

	cfm, err := askSecret("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(pwd, cfm) {
		return nil, errPassphraseMismatch
	}

	return pwd, nil
}

var errPassphraseMismatch = errors.New("passphrase mismatch")
