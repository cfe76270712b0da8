package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont"
	"github.com/codahale/aont/pkg/aont/sharing"
	"github.com/google/logger"
)

type splitKeyCmd struct {
	Input    string `arg:"" type:"path" help:"The path to the share set."`
	Blocks   string `arg:"" type:"path" help:"The output path for the share set without its key."`
	KeyParts string `arg:"" type:"path" default:"-" help:"The output path for the key parts, one per line."`

	Parts     int  `default:"3" help:"The number of key parts to create."`
	Threshold int  `default:"2" help:"The number of key parts needed to recombine the key."`
	Armor     bool `help:"Encode and decode share sets as base64."`
}

func (cmd *splitKeyCmd) Run(_ *kong.Context, log *logger.Logger) error {
	shares, err := readShares(cmd.Input, cmd.Armor)
	if err != nil {
		return err
	}

	parts, err := sharing.Shamir{}.Split(shares.Key(), cmd.Parts, cmd.Threshold)
	if err != nil {
		return err
	}

	if err := writeShares(cmd.Blocks, cmd.Armor, aont.NewShareSet(shares.Blocks(), nil)); err != nil {
		return err
	}

	dst, err := openOutput(cmd.KeyParts)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	for _, part := range parts {
		if _, err := fmt.Fprintf(dst, "%s\n", part); err != nil {
			return err
		}
	}

	log.Infof("split share key into %d parts, %d needed", cmd.Parts, cmd.Threshold)

	return nil
}
