package aont

import (
	"github.com/codahale/aont/pkg/aont/internal/split"
)

// Strategy splits data into the ordered blocks which Transform masks.
type Strategy func(data []byte) ([][]byte, error)

// EqualCount returns a Strategy which splits data into n blocks of len(data)/n bytes, with the
// remainder appended to the last block.
func EqualCount(n int) Strategy {
	return func(data []byte) ([][]byte, error) {
		return split.EqualCount(data, n)
	}
}

// Sizes returns a Strategy which splits data into blocks of the given sizes. Transform returns
// ErrSizeMismatch unless the sizes sum to the length of the data.
func Sizes(sizes ...int) Strategy {
	s := make([]int, len(sizes))
	copy(s, sizes)

	return func(data []byte) ([][]byte, error) {
		return split.Sizes(data, s)
	}
}

// FixedSize returns a Strategy which splits data into blocks of n bytes. The last block holds the
// remainder and may be shorter.
func FixedSize(n int) Strategy {
	return func(data []byte) ([][]byte, error) {
		return split.Fixed(data, n)
	}
}
