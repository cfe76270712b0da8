// Package split partitions byte slices into ordered chunks.
//
// Returned chunks alias the input slice; callers which modify them must copy first.
package split

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch is returned when explicit chunk sizes do not sum to the input length.
	ErrSizeMismatch = errors.New("chunk sizes do not match input length")

	// ErrInvalidStrategy is returned when a chunk count or chunk size is not positive.
	ErrInvalidStrategy = errors.New("invalid split strategy")
)

// EqualCount splits b into n chunks of len(b)/n bytes. The remainder is appended to the last chunk.
func EqualCount(b []byte, n int) ([][]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: chunk count must be positive, got %d", ErrInvalidStrategy, n)
	}

	size := len(b) / n
	chunks := make([][]byte, n)

	for i := 0; i < n-1; i++ {
		chunks[i] = b[i*size : (i+1)*size : (i+1)*size]
	}

	// The last chunk absorbs the remainder.
	chunks[n-1] = b[(n-1)*size:]

	return chunks, nil
}

// Sizes splits b into chunks of the given sizes, in order. The sizes must sum to len(b).
func Sizes(b []byte, sizes []int) ([][]byte, error) {
	total := 0

	for _, size := range sizes {
		if size < 0 {
			return nil, fmt.Errorf("%w: negative chunk size %d", ErrSizeMismatch, size)
		}

		// Checked before adding so the running total cannot overflow.
		if size > len(b)-total {
			return nil, fmt.Errorf("%w: sizes exceed input of %d bytes", ErrSizeMismatch, len(b))
		}

		total += size
	}

	if total != len(b) {
		return nil, fmt.Errorf("%w: sizes sum to %d, input is %d bytes", ErrSizeMismatch, total, len(b))
	}

	chunks := make([][]byte, len(sizes))
	offset := 0

	for i, size := range sizes {
		chunks[i] = b[offset : offset+size : offset+size]
		offset += size
	}

	return chunks, nil
}

// Fixed splits b into chunks of size bytes. The last chunk holds the remainder and may be shorter.
func Fixed(b []byte, size int) ([][]byte, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidStrategy, size)
	}

	chunks := make([][]byte, 0, (len(b)+size-1)/size)

	for offset := 0; offset < len(b); offset += size {
		end := offset + size
		if end > len(b) {
			end = len(b)
		}

		chunks = append(chunks, b[offset:end:end])
	}

	return chunks, nil
}
