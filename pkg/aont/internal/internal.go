// Package internal contains helpers shared by the AONT packages.
//
// The subpackages of internal contain the block cipher adapter, the byte codec, the splitter, and
// the STROBE protocols used for randomness and signatures.
package internal

// XOR returns a new slice containing a XOR b. If the operands differ in length, the longer one is
// truncated to the length of the shorter one.
func XOR(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	out := make([]byte, n)
	for i := range out {
		out[i] = a[i] ^ b[i]
	}

	return out
}

// XORInto XORs b into dst in place, stopping at the end of the shorter slice.
func XORInto(dst, b []byte) {
	n := len(dst)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		dst[i] ^= b[i]
	}
}

// Copy returns a copy of the given slice.
func Copy(b []byte) []byte {
	c := make([]byte, len(b))

	copy(c, b)

	return c
}

// SliceForAppend takes a slice and a requested number of bytes. It returns a slice with the
// contents of the given slice followed by that many bytes and a second slice that aliases into it
// and contains only the extra bytes. If the original slice has sufficient capacity then no
// allocation is performed.
func SliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}

	tail = head[len(in):]

	return
}
