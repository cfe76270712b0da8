package main

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont"
	"github.com/google/logger"
)

type packagingKeyCmd struct {
	Output string `arg:"" type:"path" default:"-" help:"The output path for the packaging key."`
}

func (cmd *packagingKeyCmd) Run(_ *kong.Context, log *logger.Logger) error {
	k, err := aont.NewPackagingKey()
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	if _, err := io.WriteString(dst, k.String()+"\n"); err != nil {
		return err
	}

	log.Infof("wrote packaging key to %s", cmd.Output)

	return nil
}
