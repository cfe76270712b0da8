// Package armor encodes share sets and other binary AONT artifacts as ASCII.
//
// Armored data is encoded with URL-safe base64 and wrapped at 76 characters, which survives
// text-based transports. Line breaks are ignored when decoding.
package armor

import (
	"encoding/base64"
	"io"

	"github.com/emersion/go-textwrapper"
)

// LineLength is the maximum length of an armored line.
const LineLength = 76

// NewEncoder returns an io.WriteCloser which armors data before writing it to dst. Close must be
// called to flush any partial block.
func NewEncoder(dst io.Writer) io.WriteCloser {
	return base64.NewEncoder(base64.URLEncoding, textwrapper.New(dst, "\n", LineLength))
}

// NewDecoder returns an io.Reader which de-armors data read from src.
func NewDecoder(src io.Reader) io.Reader {
	return base64.NewDecoder(base64.URLEncoding, src)
}
