package sha1

import (
	"encoding/binary"
	"math/bits"
)

const (
	_K0 = 0x5a827999
	_K1 = 0x6ed9eba1
	_K2 = 0x8f1bbcdc
	_K3 = 0xca62c1d6
)

// compress is the block step used by Digest. It can be swapped for an
// accelerated version with the same signature and effect.
var compress = compressGeneric

// compressGeneric is a portable, pure Go version of the SHA-1 block step.
func compressGeneric(h *[5]uint32, p []byte) {
	if len(p) != BlockSize {
		panic("sha1: compress called with a partial block")
	}

	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]

	// The four 20-step stages differ only in f and K.
	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = b&c | (^b)&d
			k = _K0
		case i < 40:
			f = b ^ c ^ d
			k = _K1
		case i < 60:
			f = ((b | c) & d) | (b & c)
			k = _K2
		default:
			f = b ^ c ^ d
			k = _K3
		}
		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
}
