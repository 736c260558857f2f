// Package md5 implements the MD5 hash algorithm as defined in RFC 1321.
//
// MD5 is cryptographically broken and should not be used for secure
// applications.
package md5

import (
	"encoding/binary"

	"github.com/dcrodman/cipherkit/internal/buffer"
)

// The size of an MD5 checksum in bytes.
const Size = 16

// The blocksize of MD5 in bytes.
const BlockSize = buffer.BlockSize

const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
)

// Digest is the partial evaluation of an MD5 checksum. A Digest is finished
// by Result and cannot be written to afterwards.
type Digest struct {
	s    [4]uint32
	buf  buffer.Buffer64
	done bool
}

// New returns a Digest ready to accept input.
func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Reset returns d to its initial state, including after Result.
func (d *Digest) Reset() {
	d.s = [4]uint32{init0, init1, init2, init3}
	d.buf.Reset()
	d.done = false
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

func (d *Digest) processBlock(block []byte) { compress(&d.s, block) }

// Update feeds p into the running checksum.
func (d *Digest) Update(p []byte) {
	if d.done {
		panic("md5: Update called after Result")
	}
	d.buf.Input(p, d.processBlock)
}

// Write implements io.Writer. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

// Result pads the message, writes the Size byte checksum into out, and
// finishes the Digest. out must be at least Size bytes long.
func (d *Digest) Result(out []byte) {
	if d.done {
		panic("md5: Result called twice")
	}
	if len(out) < Size {
		panic("md5: output buffer smaller than digest size")
	}
	d.done = true

	length := d.buf.Total() << 3
	d.buf.StandardPadding(8, d.processBlock)
	binary.LittleEndian.PutUint64(d.buf.Next(8), length)
	d.processBlock(d.buf.Full())

	for i, s := range d.s {
		binary.LittleEndian.PutUint32(out[i*4:], s)
	}
}

// Sum returns the MD5 checksum of data.
func Sum(data []byte) [Size]byte {
	var sum [Size]byte
	d := New()
	d.Update(data)
	d.Result(sum[:])
	return sum
}
