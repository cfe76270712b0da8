package split

import (
	"bytes"
	"math"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func lengths(chunks [][]byte) []int {
	out := make([]int, len(chunks))
	for i, c := range chunks {
		out[i] = len(c)
	}

	return out
}

func TestEqualCount(t *testing.T) {
	t.Parallel()

	data := []byte("0123456789abcdefg")

	chunks, err := EqualCount(data, 3)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "lengths", []int{5, 5, 7}, lengths(chunks))
	assert.Equal(t, "rejoined", data, bytes.Join(chunks, nil))
}

func TestEqualCount_Single(t *testing.T) {
	t.Parallel()

	chunks, err := EqualCount([]byte("hello, symbol!!!"), 1)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "lengths", []int{16}, lengths(chunks))
}

func TestEqualCount_MoreChunksThanBytes(t *testing.T) {
	t.Parallel()

	chunks, err := EqualCount([]byte("abc"), 5)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "lengths", []int{0, 0, 0, 0, 3}, lengths(chunks))
}

func TestEqualCount_Invalid(t *testing.T) {
	t.Parallel()

	_, err := EqualCount([]byte("abc"), 0)

	assert.Equal(t, "error", ErrInvalidStrategy, err, cmpopts.EquateErrors())
}

func TestSizes(t *testing.T) {
	t.Parallel()

	data := []byte("0123456789abcdefg")

	chunks, err := Sizes(data, []int{5, 0, 12})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "lengths", []int{5, 0, 12}, lengths(chunks))
	assert.Equal(t, "first chunk", []byte("01234"), chunks[0])
	assert.Equal(t, "rejoined", data, bytes.Join(chunks, nil))
}

func TestSizes_Mismatch(t *testing.T) {
	t.Parallel()

	_, err := Sizes([]byte("0123456789abcdefg"), []int{5, 5})

	assert.Equal(t, "error", ErrSizeMismatch, err, cmpopts.EquateErrors())
}

func TestSizes_Negative(t *testing.T) {
	t.Parallel()

	_, err := Sizes([]byte("abc"), []int{5, -2})

	assert.Equal(t, "error", ErrSizeMismatch, err, cmpopts.EquateErrors())
}

func TestSizes_Overflow(t *testing.T) {
	t.Parallel()

	// These sizes wrap around to sum to len(b) in int arithmetic.
	_, err := Sizes([]byte{1}, []int{math.MaxInt, math.MaxInt, 3})

	assert.Equal(t, "error", ErrSizeMismatch, err, cmpopts.EquateErrors())
}

func TestFixed(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte{0x01}, 37)

	chunks, err := Fixed(data, 16)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "lengths", []int{16, 16, 5}, lengths(chunks))
	assert.Equal(t, "rejoined", data, bytes.Join(chunks, nil))
}

func TestFixed_Aligned(t *testing.T) {
	t.Parallel()

	chunks, err := Fixed(make([]byte, 32), 16)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "lengths", []int{16, 16}, lengths(chunks))
}

func TestFixed_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Fixed([]byte("abc"), -1)

	assert.Equal(t, "error", ErrInvalidStrategy, err, cmpopts.EquateErrors())
}

func TestChunksDoNotOverlap(t *testing.T) {
	t.Parallel()

	data := []byte("0123456789")

	chunks, err := EqualCount(data, 2)
	if err != nil {
		t.Fatal(err)
	}

	chunks[0] = append(chunks[0], 'X')

	assert.Equal(t, "input untouched", []byte("0123456789"), data)
}
