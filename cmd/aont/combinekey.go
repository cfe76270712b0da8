package main

import (
	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont"
	"github.com/codahale/aont/pkg/aont/sharing"
	"github.com/google/logger"
)

type combineKeyCmd struct {
	Blocks   string   `arg:"" type:"path" help:"The path to the share set without its key."`
	Output   string   `arg:"" type:"path" help:"The output path for the complete share set."`
	KeyParts []string `arg:"" help:"Key parts, or paths to files of key parts."`

	Armor bool `help:"Encode and decode share sets as base64."`
}

func (cmd *combineKeyCmd) Run(_ *kong.Context, log *logger.Logger) error {
	shares, err := readShares(cmd.Blocks, cmd.Armor)
	if err != nil {
		return err
	}

	lines, err := readLines(cmd.KeyParts)
	if err != nil {
		return err
	}

	parts := make([][]byte, len(lines))
	for i, line := range lines {
		parts[i] = []byte(line)
	}

	key, err := sharing.Shamir{}.Combine(parts)
	if err != nil {
		return err
	}

	log.Infof("recombined share key from %d parts", len(parts))

	return writeShares(cmd.Output, cmd.Armor, aont.NewShareSet(shares.Blocks(), key))
}
