// Package bcrypt implements Provos and Mazières's bcrypt adaptive hashing
// algorithm on top of this module's Blowfish implementation. See
// http://www.usenix.org/event/usenix99/provos/provos.pdf
//
// Hash exposes the raw 24-byte output. GenerateFromPassword and
// CompareHashAndPassword wrap it in the usual "$2b$" text encoding.
package bcrypt

import (
	"strconv"

	"github.com/dcrodman/cipherkit/internal/encryption"
)

const (
	// Size is the length of the raw output of Hash.
	Size = 24
	// SaltSize is the only salt length Hash accepts.
	SaltSize = 16
	// MaxPasswordSize is the longest key Blowfish's schedule can absorb.
	MaxPasswordSize = 72
	// MaxRawCost keeps the 2^cost iteration count representable.
	MaxRawCost = 63
)

// magicCipherData is the "OrpheanBeholderScryDoubt" constant as
// big-endian words.
var magicCipherData = [6]uint32{
	0x4f727068, 0x65616e42, 0x65686f6c,
	0x64657253, 0x63727944, 0x6f756274,
}

type SaltSizeError int

func (s SaltSizeError) Error() string {
	return "bcrypt: salt must be 16 bytes, got " + strconv.Itoa(int(s))
}

type PasswordSizeError int

func (p PasswordSizeError) Error() string {
	return "bcrypt: password must be between 1 and 72 bytes, got " + strconv.Itoa(int(p))
}

type CostError int

func (c CostError) Error() string {
	return "bcrypt: cost " + strconv.Itoa(int(c)) + " is outside the supported range"
}

// Hash derives the bcrypt output for password under salt with 2^cost rounds
// of key expansion and writes all 24 bytes of it into dst. The password is
// used exactly as given; callers that want C-string semantics append the
// trailing NUL themselves.
//
// dst must be exactly Size bytes long; anything else is a programming error
// and panics. Invalid parameters are reported before any work is done.
func Hash(dst []byte, cost int, salt, password []byte) error {
	if len(dst) != Size {
		panic("bcrypt: output buffer must be exactly 24 bytes")
	}
	if len(salt) != SaltSize {
		return SaltSizeError(len(salt))
	}
	if n := len(password); n < 1 || n > MaxPasswordSize {
		return PasswordSizeError(n)
	}
	if cost < 0 || cost > MaxRawCost {
		return CostError(cost)
	}

	c := expensiveBlowfishSetup(cost, salt, password)

	cipherData := magicCipherData
	for i := 0; i < len(cipherData); i += 2 {
		l, r := cipherData[i], cipherData[i+1]
		for j := 0; j < 64; j++ {
			l, r = c.EncryptWords(l, r)
		}
		cipherData[i], cipherData[i+1] = l, r
	}

	for i, w := range cipherData {
		dst[i*4] = byte(w >> 24)
		dst[i*4+1] = byte(w >> 16)
		dst[i*4+2] = byte(w >> 8)
		dst[i*4+3] = byte(w)
	}
	return nil
}

// expensiveBlowfishSetup is the EksBlowfishSetup step: one salted schedule
// followed by 2^cost alternating plain expansions with the key and the salt,
// all applied to the same state.
func expensiveBlowfishSetup(cost int, salt, key []byte) *encryption.Cipher {
	c := encryption.Initial()
	c.ExpandKeyWithSalt(key, salt)

	rounds := uint64(1) << uint(cost)
	for i := uint64(0); i < rounds; i++ {
		c.ExpandKey(key)
		c.ExpandKey(salt)
	}
	return c
}
