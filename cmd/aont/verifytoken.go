package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont/custody"
	"github.com/google/logger"
)

type verifyTokenCmd struct {
	Token  string   `arg:"" help:"The signed token, or a path to a file containing it."`
	Asset  string   `required:"" help:"The asset the token must grant access to."`
	Owners []string `help:"Public keys, or paths to files of public keys, entitled to the asset. If empty, any holder is."`
}

func (cmd *verifyTokenCmd) Run(_ *kong.Context, log *logger.Logger) error {
	lines, err := readLines([]string{cmd.Token})
	if err != nil {
		return err
	}

	if len(lines) != 1 {
		return custody.ErrInvalidToken
	}

	token, err := custody.ParseSignedToken(lines[0])
	if err != nil {
		return err
	}

	t, err := token.Verify(custody.PublicKeys, time.Now())
	if err != nil {
		return err
	}

	if t.Asset != cmd.Asset {
		return fmt.Errorf("%w: token is for %q", custody.ErrInvalidToken, t.Asset)
	}

	if len(cmd.Owners) > 0 {
		owners, err := readLines(cmd.Owners)
		if err != nil {
			return err
		}

		ok, err := ownerLedger(owners).Entitled(context.Background(), t.Holder, t.Asset)
		if err != nil {
			return err
		}

		if !ok {
			return custody.ErrNotEntitled
		}
	}

	log.Infof("token for %q held by %s is valid until %s", t.Asset, t.Holder, t.Expires)

	_, err = fmt.Fprintln(os.Stdout, t.Holder)

	return err
}

// ownerLedger entitles a fixed set of holders to every asset.
func ownerLedger(owners []string) custody.Ledger {
	set := make(map[string]bool, len(owners))
	for _, o := range owners {
		set[o] = true
	}

	return custody.LedgerFunc(func(_ context.Context, holder, _ string) (bool, error) {
		return set[holder], nil
	})
}
