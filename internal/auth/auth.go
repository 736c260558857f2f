// Package auth wraps the bcrypt text format with the handful of policy
// decisions a password store needs: the cost to hash at, Unicode
// normalization, and when an existing hash should be upgraded.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/dcrodman/cipherkit/internal/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("password does not match the stored hash")
	ErrMalformedHash      = errors.New("stored hash is not a valid bcrypt hash")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)

// Swapped out in tests.
var (
	generateFromPassword   = bcrypt.GenerateFromPassword
	compareHashAndPassword = bcrypt.CompareHashAndPassword
)

// Hasher hashes and verifies passwords according to a fixed policy.
type Hasher struct {
	// Cost is the bcrypt cost new hashes are created with.
	Cost int
	// Normalize converts passwords to Unicode NFC before hashing, so that
	// composed and decomposed spellings of the same text are accepted.
	Normalize bool
	// StripPadding drops trailing NUL bytes before hashing, for passwords
	// read from NUL padded fixed-width fields. Leave it off to verify hashes
	// of passwords that really end in NUL.
	StripPadding bool
}

// NewHasher returns a Hasher using cost, falling back to bcrypt.DefaultCost
// when cost is out of range.
func NewHasher(cost int, normalize bool) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{Cost: cost, Normalize: normalize}
}

// HashPassword returns the encoded bcrypt hash of password.
func (h *Hasher) HashPassword(password string) (string, error) {
	hash, err := generateFromPassword(h.key(password), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	} else if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks password against a hash previously returned by
// HashPassword (or any other $2a$/$2b$/$2y$ implementation).
func (h *Hasher) VerifyPassword(hash, password string) error {
	err := compareHashAndPassword([]byte(hash), h.key(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		// Nothing this long can have been hashed by HashPassword.
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

// NeedsRehash reports whether hash was created with a cost other than the
// Hasher's, or cannot be parsed at all.
func (h *Hasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != h.Cost
}

func (h *Hasher) key(password string) []byte {
	b := []byte(password)
	if h.Normalize {
		b = norm.NFC.Bytes(b)
	}
	if h.StripPadding {
		b = stripPadding(b)
	}
	return b
}

func stripPadding(b []byte) []byte {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			return b[:i+1]
		}
	}
	return b[:0]
}
