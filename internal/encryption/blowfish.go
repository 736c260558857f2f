/* Copyright 2010 The Go Authors. All rights reserved.
* Use of this source code is governed by a BSD-style
* license that can be found in the LICENSE file.
*
* The code is a port of Bruce Schneier's C implementation.
* See http://www.schneier.com/blowfish.html.
 */

package encryption

import "strconv"

// The Blowfish block size in bytes.
const BlockSize = 8

// Bounds on the length of a key accepted by NewCipher.
const (
	MinKeySize = 4
	MaxKeySize = 56
)

// A Cipher is an instance of Blowfish encryption using a particular key.
//
// The tables are only written by the key schedule. Once keyed, a Cipher may
// be used from several goroutines at once.
type Cipher struct {
	p              [18]uint32
	s0, s1, s2, s3 [256]uint32
}

type KeySizeError int

func (k KeySizeError) Error() string {
	return "encryption/blowfish: invalid key size " + strconv.Itoa(int(k))
}

// NewCipher creates and returns a Cipher. The key argument should be the
// Blowfish key, from 4 to 56 bytes.
func NewCipher(key []byte) (*Cipher, error) {
	if k := len(key); k < MinKeySize || k > MaxKeySize {
		return nil, KeySizeError(k)
	}
	c := Initial()
	expandKey(key, c)
	return c, nil
}

// NewSaltedCipher returns a Cipher keyed with the salted schedule bcrypt
// uses for its first expansion. Neither key nor salt may be empty; unlike
// NewCipher, keys longer than 56 bytes are accepted.
func NewSaltedCipher(key, salt []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, KeySizeError(0)
	}
	if len(salt) == 0 {
		return nil, SaltSizeError(0)
	}
	c := Initial()
	expandKeyWithSalt(key, salt, c)
	return c, nil
}

type SaltSizeError int

func (s SaltSizeError) Error() string {
	return "encryption/blowfish: invalid salt size " + strconv.Itoa(int(s))
}

// Initial returns a Cipher holding the unkeyed tables.
func Initial() *Cipher {
	var c Cipher
	initCipher(&c)
	return &c
}

// ExpandKey runs the plain key schedule over the current tables, so repeated
// calls keep mixing into the previous state. The key may be any non-empty
// length; bytes past the 72nd do not influence the result.
func (c *Cipher) ExpandKey(key []byte) {
	if len(key) == 0 {
		panic("encryption: ExpandKey called with an empty key")
	}
	expandKey(key, c)
}

// ExpandKeyWithSalt runs the salted key schedule over the current tables.
func (c *Cipher) ExpandKeyWithSalt(key, salt []byte) {
	if len(key) == 0 || len(salt) == 0 {
		panic("encryption: ExpandKeyWithSalt called with an empty key or salt")
	}
	expandKeyWithSalt(key, salt, c)
}

// BlockSize returns the Blowfish block size, 8 bytes.
// It is necessary to satisfy the Block interface in the
// package "crypto/cipher".
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the 8-byte buffer src using the key k
// and stores the result in dst.
// Note that for amounts of data larger than a block,
// it is not safe to just call Encrypt on successive blocks;
// instead, use an encryption mode like CBC (see crypto/cipher/cbc.go).
func (c *Cipher) Encrypt(dst, src []byte) {
	checkBlock(dst, src)
	l := be(src[0:4])
	r := be(src[4:8])
	l, r = encryptBlock(l, r, c)
	putBE(dst[0:4], l)
	putBE(dst[4:8], r)
}

// Decrypt decrypts the 8-byte buffer src using the key k
// and stores the result in dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	checkBlock(dst, src)
	l := be(src[0:4])
	r := be(src[4:8])
	l, r = decryptBlock(l, r, c)
	putBE(dst[0:4], l)
	putBE(dst[4:8], r)
}

// EncryptWords encrypts a block already split into its two big-endian
// halves.
func (c *Cipher) EncryptWords(l, r uint32) (uint32, uint32) {
	return encryptBlock(l, r, c)
}

// DecryptWords reverses EncryptWords.
func (c *Cipher) DecryptWords(l, r uint32) (uint32, uint32) {
	return decryptBlock(l, r, c)
}

func checkBlock(dst, src []byte) {
	if len(src) != BlockSize {
		panic("encryption: input not a full block")
	}
	if len(dst) != BlockSize {
		panic("encryption: output not a full block")
	}
}

func (c *Cipher) sboxes() [4]*[256]uint32 {
	return [4]*[256]uint32{&c.s0, &c.s1, &c.s2, &c.s3}
}

func initCipher(c *Cipher) {
	copy(c.p[0:], p[0:])
	copy(c.s0[0:], s0[0:])
	copy(c.s1[0:], s1[0:])
	copy(c.s2[0:], s2[0:])
	copy(c.s3[0:], s3[0:])
}
