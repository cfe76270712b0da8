package main

import (
	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont"
	"github.com/google/logger"
)

type inverseCmd struct {
	Input  string `arg:"" type:"path" help:"The path to the share set, or - for stdin."`
	Output string `arg:"" type:"path" help:"The output path for the recovered file, or - for stdout."`

	Key   string `name:"packaging-key" env:"AONT_PACKAGING_KEY" help:"The hex packaging key, or a path to a file containing it."`
	Armor bool   `help:"Decode the share set from base64."`
}

func (cmd *inverseCmd) Run(_ *kong.Context, log *logger.Logger) error {
	k, err := loadPackagingKey(cmd.Key)
	if err != nil {
		return err
	}

	shares, err := readShares(cmd.Input, cmd.Armor)
	if err != nil {
		return err
	}

	data, err := aont.InverseTransform(shares, k)
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	if _, err := dst.Write(data); err != nil {
		return err
	}

	log.Infof("recovered %d bytes from %d blocks", len(data), len(shares.Blocks()))

	return nil
}
