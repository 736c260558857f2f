// Package buffer accumulates arbitrary-length input into the fixed-size
// blocks consumed by the digest compression functions.
package buffer

// BlockSize is the number of bytes held by a Buffer64 when full.
const BlockSize = 64

// Buffer64 collects bytes into 64-byte blocks. Between calls it never holds a
// full block: as soon as one fills it is handed to the caller's block function
// and the buffer starts over.
//
// The zero value is an empty buffer ready for use.
type Buffer64 struct {
	buf   [BlockSize]byte
	n     int
	total uint64
}

// Input appends data to the buffer, calling fn with exactly BlockSize bytes
// each time a block fills. Any remainder is kept for the next call. The
// slice passed to fn is only valid for the duration of the call.
func (b *Buffer64) Input(data []byte, fn func(block []byte)) {
	b.total += uint64(len(data))

	if b.n > 0 {
		c := copy(b.buf[b.n:], data)
		b.n += c
		data = data[c:]
		if b.n < BlockSize {
			return
		}
		fn(b.buf[:])
		b.n = 0
	}

	// Whole blocks go straight from the input without being copied.
	for len(data) >= BlockSize {
		fn(data[:BlockSize])
		data = data[BlockSize:]
	}

	b.n = copy(b.buf[:], data)
}

// StandardPadding appends the 0x80 marker byte followed by as many zero bytes
// as needed to leave exactly lengthField bytes free at the end of the block.
// If the marker does not leave enough room the block is zero-filled, drained
// through fn, and padding continues in a fresh block.
//
// The length field itself is written by the caller through Next, after
// which Full returns the final block.
func (b *Buffer64) StandardPadding(lengthField int, fn func(block []byte)) {
	if lengthField < 0 || lengthField >= BlockSize {
		panic("buffer: invalid length field size")
	}

	b.buf[b.n] = 0x80
	b.n++

	if b.n > BlockSize-lengthField {
		b.zeroUntil(BlockSize)
		fn(b.buf[:])
		b.n = 0
	}
	b.zeroUntil(BlockSize - lengthField)
}

func (b *Buffer64) zeroUntil(idx int) {
	for i := b.n; i < idx; i++ {
		b.buf[i] = 0
	}
	b.n = idx
}

// Next returns a writable window over the next n bytes of the buffer and
// marks them as used. Asking for more than Remaining bytes is a programming
// error.
func (b *Buffer64) Next(n int) []byte {
	if n < 0 || n > b.Remaining() {
		panic("buffer: Next called with more bytes than remain in the block")
	}
	start := b.n
	b.n += n
	return b.buf[start:b.n]
}

// Full returns the completed block and empties the buffer. It panics unless
// the buffer has been filled exactly, which only happens through Next.
func (b *Buffer64) Full() []byte {
	if b.n != BlockSize {
		panic("buffer: Full called on a partial block")
	}
	b.n = 0
	return b.buf[:]
}

// Reset discards any buffered bytes and clears the running total.
func (b *Buffer64) Reset() {
	b.n = 0
	b.total = 0
}

// Len is the number of bytes currently held.
func (b *Buffer64) Len() int { return b.n }

// Remaining is the number of bytes that can be added before the block fills.
func (b *Buffer64) Remaining() int { return BlockSize - b.n }

// Size is the block size.
func (b *Buffer64) Size() int { return BlockSize }

// Total is the number of bytes passed to Input since the last Reset. Padding
// does not count towards it.
func (b *Buffer64) Total() uint64 { return b.total }
