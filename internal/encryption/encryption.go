// Package encryption implements the Blowfish block cipher, including the
// salted key schedule that bcrypt builds on.
//
// Only single-block operations are provided. Blowfish's F function indexes
// its S-boxes with key-dependent data, so none of this runs in constant time.
package encryption

import (
	"crypto/rand"
	"fmt"
)

// BlockEncrypter encrypts exactly one block from src into dst.
type BlockEncrypter interface {
	BlockSize() int
	Encrypt(dst, src []byte)
}

// BlockDecrypter decrypts exactly one block from src into dst.
type BlockDecrypter interface {
	BlockSize() int
	Decrypt(dst, src []byte)
}

var (
	_ BlockEncrypter = (*Cipher)(nil)
	_ BlockDecrypter = (*Cipher)(nil)
)

// RandomKey generates a cryptographically secure random key of size bytes.
func RandomKey(size int) ([]byte, error) {
	if size < MinKeySize || size > MaxKeySize {
		return nil, KeySizeError(size)
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("reading random key: %w", err)
	}
	return key, nil
}

// Condense four bytes into a BE 32-bit value.
func be(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putBE(b []byte, v uint32) {
	b[0], b[1], b[2], b[3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
}
