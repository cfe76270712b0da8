package main

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont"
	"github.com/google/logger"
)

type transformCmd struct {
	Input  string `arg:"" type:"path" help:"The path to the input file, or - for stdin."`
	Output string `arg:"" type:"path" help:"The output path for the share set, or - for stdout."`

	Key       string `name:"packaging-key" env:"AONT_PACKAGING_KEY" help:"The hex packaging key, or a path to a file containing it."`
	Blocks    int    `env:"AONT_BLOCKS" default:"1" help:"Split the input into this many blocks."`
	BlockSize int    `env:"AONT_BLOCK_SIZE" help:"Split the input into blocks of this size. Overrides --blocks."`
	Sizes     []int  `help:"Split the input into blocks of exactly these sizes. Overrides --block-size."`
	Armor     bool   `help:"Encode the share set as base64."`
}

func (cmd *transformCmd) Run(_ *kong.Context, log *logger.Logger) error {
	k, err := loadPackagingKey(cmd.Key)
	if err != nil {
		return err
	}

	src, err := openInput(cmd.Input)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	shares, err := aont.Transform(data, k, cmd.strategy())
	if err != nil {
		return err
	}

	log.Infof("transformed %d bytes into %d blocks", len(data), len(shares.Blocks()))

	return writeShares(cmd.Output, cmd.Armor, shares)
}

func (cmd *transformCmd) strategy() aont.Strategy {
	switch {
	case len(cmd.Sizes) > 0:
		return aont.Sizes(cmd.Sizes...)
	case cmd.BlockSize != 0:
		return aont.FixedSize(cmd.BlockSize)
	default:
		return aont.EqualCount(cmd.Blocks)
	}
}
