package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/codahale/aont/pkg/aont"
	"github.com/codahale/aont/pkg/aont/armor"
	"github.com/codahale/aont/pkg/aont/sign"
	"github.com/google/logger"
	"golang.org/x/term"
)

type cli struct {
	Verbose bool `help:"Log each step to the terminal."`

	PackagingKey packagingKeyCmd `cmd:"" help:"Generate a new packaging key."`
	Transform    transformCmd    `cmd:"" help:"Transform a file into a share set."`
	Inverse      inverseCmd      `cmd:"" help:"Recover a file from a share set."`
	SplitKey     splitKeyCmd     `cmd:"" help:"Split the share key out of a share set."`
	CombineKey   combineKeyCmd   `cmd:"" help:"Recombine a share key into a share set."`
	SecretKey    secretKeyCmd    `cmd:"" help:"Generate a new signing key."`
	PublicKey    publicKeyCmd    `cmd:"" help:"Derive the public key of a signing key."`
	IssueToken   issueTokenCmd   `cmd:"" help:"Issue a signed access token for an asset."`
	VerifyToken  verifyTokenCmd  `cmd:"" help:"Verify a signed access token."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli,
		kong.Name("aont"),
		kong.Description("All-or-nothing transforms of files into share sets."),
		kong.Configuration(kong.JSON, "~/.aont.json", "./.aont.json"),
	)

	log := newLogger(cli.Verbose, os.Stderr)
	defer log.Close()

	err := ctx.Run(log)
	if err != nil {
		log.Errorf("%s: %v", ctx.Command(), err)
	}

	ctx.FatalIfErrorf(err)
}

// newLogger returns a logger which writes to w if verbose is set and discards everything otherwise.
// Logs never go to stdout, which may be carrying a share set or plaintext.
func newLogger(verbose bool, w io.Writer) *logger.Logger {
	if !verbose {
		return logger.Init("aont", false, false, io.Discard)
	}

	// Hide any Close method so closing the logger leaves w open.
	return logger.Init("aont", false, false, struct{ io.Writer }{w})
}

// loadPackagingKey decodes a hex packaging key given directly or as a path to a file containing it.
// If keyOrPath is empty, the key is prompted for.
func loadPackagingKey(keyOrPath string) (*aont.PackagingKey, error) {
	if keyOrPath == "" {
		text, err := askSecret("Enter packaging key: ")
		if err != nil {
			return nil, err
		}

		return aont.ParsePackagingKey(strings.TrimSpace(string(text)))
	}

	// Try decoding the key directly.
	if k, err := aont.ParsePackagingKey(keyOrPath); err == nil {
		return k, nil
	}

	// Otherwise, try reading the contents of it as a file.
	b, err := os.ReadFile(keyOrPath)
	if err != nil {
		return nil, err
	}

	return aont.ParsePackagingKey(string(bytes.TrimSpace(b)))
}

// decryptSecretKey reads an encrypted secret key, prompting for its passphrase if none is given.
func decryptSecretKey(path, passphrase string) (*sign.SecretKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pwd := []byte(passphrase)
	if len(pwd) == 0 {
		pwd, err = askSecret("Enter passphrase: ")
		if err != nil {
			return nil, err
		}
	}

	return sign.DecryptSecretKey(b, pwd)
}

func askSecret(prompt string) ([]byte, error) {
	defer func() { _, _ = fmt.Fprintln(os.Stderr) }()

	_, _ = fmt.Fprint(os.Stderr, prompt)

	return term.ReadPassword(int(os.Stdin.Fd()))
}

func readShares(path string, armored bool) (aont.ShareSet, error) {
	src, err := openInput(path)
	if err != nil {
		return nil, err
	}

	defer func() { _ = src.Close() }()

	var r io.Reader = src
	if armored {
		r = armor.NewDecoder(src)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var shares aont.ShareSet
	if err := shares.UnmarshalBinary(b); err != nil {
		return nil, err
	}

	return shares, nil
}

func writeShares(path string, armored bool, shares aont.ShareSet) error {
	b, err := shares.MarshalBinary()
	if err != nil {
		return err
	}

	dst, err := openOutput(path)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	var w io.WriteCloser = dst
	if armored {
		w = armor.NewEncoder(dst)
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return w.Close()
}

// readLines returns the non-empty lines of the given file, or of each argument which is not a file.
func readLines(pathsOrValues []string) ([]string, error) {
	var lines []string

	for _, s := range pathsOrValues {
		if fi, err := os.Stat(s); err != nil || fi.IsDir() {
			lines = append(lines, s)
			continue
		}

		f, err := os.Open(s)
		if err != nil {
			return nil, err
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				lines = append(lines, line)
			}
		}

		_ = f.Close()

		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	return lines, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}

	return os.Create(path)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
