package prf

import "crypto/cipher"

// ecb processes each block independently, with no feedback between blocks.
type ecb struct {
	b       cipher.Block
	decrypt bool
}

func newECBEncrypter(b cipher.Block) cipher.BlockMode {
	return &ecb{b: b}
}

func newECBDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecb{b: b, decrypt: true}
}

func (e *ecb) BlockSize() int {
	return e.b.BlockSize()
}

func (e *ecb) CryptBlocks(dst, src []byte) {
	size := e.b.BlockSize()

	if len(src)%size != 0 {
		panic("prf: input not full blocks")
	}

	if len(dst) < len(src) {
		panic("prf: output smaller than input")
	}

	for len(src) > 0 {
		if e.decrypt {
			e.b.Decrypt(dst, src[:size])
		} else {
			e.b.Encrypt(dst, src[:size])
		}

		src = src[size:]
		dst = dst[size:]
	}
}

var _ cipher.BlockMode = &ecb{}
