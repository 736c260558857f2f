// Package sha1 implements the SHA-1 hash algorithm as defined in RFC 3174.
//
// SHA-1 is cryptographically broken and should not be used for secure
// applications.
package sha1

import (
	"encoding/binary"

	"github.com/dcrodman/cipherkit/internal/buffer"
)

// The size of a SHA-1 checksum in bytes.
const Size = 20

// The blocksize of SHA-1 in bytes.
const BlockSize = buffer.BlockSize

var initial = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

// Digest represents the partial evaluation of a checksum.
type Digest struct {
	h    [5]uint32
	buf  buffer.Buffer64
	done bool
}

func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

func (d *Digest) Reset() {
	d.h = initial
	d.buf.Reset()
	d.done = false
}

func (d *Digest) Size() int      { return Size }
func (d *Digest) BlockSize() int { return BlockSize }

func (d *Digest) Update(p []byte) {
	if d.done {
		panic("sha1: Update called after Result")
	}
	d.buf.Input(p, func(block []byte) { compress(&d.h, block) })
}

func (d *Digest) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

// Result writes the checksum into out, which must hold at least Size bytes.
// The Digest cannot be used again until Reset.
func (d *Digest) Result(out []byte) {
	if d.done {
		panic("sha1: Result called twice")
	}
	if len(out) < Size {
		panic("sha1: output buffer smaller than digest size")
	}
	d.done = true

	process := func(block []byte) { compress(&d.h, block) }
	length := d.buf.Total() * 8
	d.buf.StandardPadding(8, process)
	binary.BigEndian.PutUint64(d.buf.Next(8), length)
	process(d.buf.Full())

	for i, h := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], h)
	}
}

// Sum returns the SHA-1 checksum of the data.
func Sum(data []byte) [Size]byte {
	var sum [Size]byte
	d := New()
	d.Update(data)
	d.Result(sum[:])
	return sum
}
