package sharing

import (
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

//nolint:gochecknoglobals // test fixture
var secret = []byte("ayellowsubmarine")

func TestSplitAndCombine(t *testing.T) {
	t.Parallel()

	parts, err := Shamir{}.Split(secret, 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "part count", 3, len(parts))

	for _, subset := range [][]int{{0, 1}, {0, 2}, {1, 2}, {2, 0}, {0, 1, 2}} {
		chosen := make([][]byte, len(subset))
		for i, j := range subset {
			chosen[i] = parts[j]
		}

		recovered, err := Shamir{}.Combine(chosen)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, "recovered secret", secret, recovered)
	}
}

func TestSplit_ZeroBytes(t *testing.T) {
	t.Parallel()

	s := []byte{0x00, 0x00, 0x01, 0x00}

	parts, err := Shamir{}.Split(s, 5, 3)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := Shamir{}.Combine(parts[2:])
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "recovered secret", s, recovered)
}

func TestSplit_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Shamir{}.Split(secret, 3, 1)
	assert.Equal(t, "threshold too low", ErrInvalidThreshold, err, cmpopts.EquateErrors())

	_, err = Shamir{}.Split(secret, 2, 3)
	assert.Equal(t, "threshold above parts", ErrInvalidThreshold, err, cmpopts.EquateErrors())

	_, err = Shamir{}.Split(secret, 256, 3)
	assert.Equal(t, "too many parts", ErrInvalidThreshold, err, cmpopts.EquateErrors())

	_, err = Shamir{}.Split(nil, 3, 2)
	assert.Equal(t, "empty secret", ErrEmptySecret, err, cmpopts.EquateErrors())
}

func TestCombine_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Shamir{}.Combine(nil)
	assert.Equal(t, "no parts", ErrInvalidPart, err, cmpopts.EquateErrors())

	_, err = Shamir{}.Combine([][]byte{[]byte("not a share")})
	assert.Equal(t, "garbage", ErrInvalidPart, err, cmpopts.EquateErrors())
}
