package custody_test

import (
	"context"
	"fmt"
	"time"

	"github.com/codahale/aont/pkg/aont"
	"github.com/codahale/aont/pkg/aont/custody"
	"github.com/codahale/aont/pkg/aont/sign"
)

func Example() {
	key, err := aont.NewPackagingKey()
	if err != nil {
		panic(err)
	}

	// The purchaser's signing key.
	purchaser, err := sign.NewSecretKey()
	if err != nil {
		panic(err)
	}

	owner := purchaser.PublicKey().String()
	gate := &custody.Gate{
		Key: key,
		Ledger: custody.LedgerFunc(func(_ context.Context, holder, asset string) (bool, error) {
			return holder == owner, nil
		}),
	}

	pkg, err := gate.Publish("song-42", []byte("never gonna give you up"), aont.EqualCount(3), 3, 2)
	if err != nil {
		panic(err)
	}

	token, err := custody.IssueToken(purchaser, &custody.Token{
		Holder:  owner,
		Asset:   "song-42",
		Expires: time.Now().Add(time.Minute),
	})
	if err != nil {
		panic(err)
	}

	data, err := gate.Release(context.Background(), pkg, pkg.KeyParts[1:], token)
	if err != nil {
		panic(err)
	}

	fmt.Println(string(data))
	// Output:
	// never gonna give you up
}
