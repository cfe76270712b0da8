package armor

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	message := bytes.Repeat([]byte("hello world "), 12)
	dst := bytes.NewBuffer(nil)

	enc := NewEncoder(dst)
	if _, err := enc.Write(message); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	armored := dst.String()
	lines := strings.Split(strings.TrimSpace(armored), "\n")

	assert.Equal(t, "line count", 3, len(lines))

	for _, line := range lines {
		if len(line) > LineLength {
			t.Errorf("line too long: %q", line)
		}
	}

	assert.Equal(t, "armored text",
		"aGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQg",
		strings.Join(lines, ""))

	decoded, err := io.ReadAll(NewDecoder(strings.NewReader(armored)))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "decoded message", message, decoded)
}

func TestDecoder_URLSafe(t *testing.T) {
	t.Parallel()

	decoded, err := io.ReadAll(NewDecoder(strings.NewReader("-_-_\n")))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "decoded", []byte{0xfb, 0xff, 0xbf}, decoded)
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := io.ReadAll(NewDecoder(strings.NewReader("+/+/"))); err == nil {
		t.Error("expected error for standard base64 alphabet")
	}
}
