package bcrypt

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// Costs accepted by the text format. The two-digit cost field and
// compatibility with other implementations cap it at 31.
const (
	MinCost     int = 4
	MaxCost     int = 31
	DefaultCost int = 10
)

const (
	majorVersion       = '2'
	minorVersion       = 'b'
	maxCryptedHashSize = 23
	encodedSaltSize    = 22
	encodedHashSize    = 31
	encodedSize        = len("$2b$10$") + encodedSaltSize + encodedHashSize
)

var (
	// ErrMismatchedHashAndPassword is returned by CompareHashAndPassword when
	// the password does not match the hash.
	ErrMismatchedHashAndPassword = errors.New("bcrypt: hashedPassword is not the hash of the given password")
	// ErrHashTooShort is returned when a hash is too short to be a bcrypt hash.
	ErrHashTooShort = errors.New("bcrypt: hashedSecret too short to be a bcrypted password")
	// ErrPasswordTooLong is returned for passwords longer than 72 bytes,
	// which bcrypt would otherwise silently truncate.
	ErrPasswordTooLong = errors.New("bcrypt: password length exceeds 72 bytes")
)

type InvalidHashPrefixError string

func (ih InvalidHashPrefixError) Error() string {
	return fmt.Sprintf("bcrypt: bcrypt hashes must start with '$2a$', '$2b$' or '$2y$', but hashedSecret started with %q", string(ih))
}

type InvalidCostError int

func (ic InvalidCostError) Error() string {
	return fmt.Sprintf("bcrypt: cost %d is outside allowed range (%d,%d)", int(ic), MinCost, MaxCost)
}

const alphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var bcEncoding = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)

// hashed is the decoded form of "$2b$CC$<salt><hash>".
type hashed struct {
	minor byte
	cost  int
	salt  []byte
	hash  []byte
}

// GenerateFromPassword returns the "$2b$" encoded bcrypt hash of password at
// the given cost, under a freshly generated random salt. A cost below MinCost
// is replaced by DefaultCost.
func GenerateFromPassword(password []byte, cost int) ([]byte, error) {
	if len(password) > MaxPasswordSize {
		return nil, ErrPasswordTooLong
	}
	if cost < MinCost {
		cost = DefaultCost
	}
	if cost > MaxCost {
		return nil, InvalidCostError(cost)
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	h, err := newHashed(minorVersion, cost, salt, password)
	if err != nil {
		return nil, err
	}
	return h.encode(), nil
}

// CompareHashAndPassword compares a bcrypt encoded hash with its possible
// plaintext equivalent. It returns nil on success, or an error on failure.
func CompareHashAndPassword(hashedPassword, password []byte) error {
	if len(password) > MaxPasswordSize {
		return ErrPasswordTooLong
	}
	p, err := decode(hashedPassword)
	if err != nil {
		return err
	}

	other, err := newHashed(p.minor, p.cost, p.salt, password)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(p.hash, other.hash) == 1 {
		return nil
	}
	return ErrMismatchedHashAndPassword
}

// Cost returns the cost an encoded hash was created with.
func Cost(hashedPassword []byte) (int, error) {
	p, err := decode(hashedPassword)
	if err != nil {
		return 0, err
	}
	return p.cost, nil
}

func newHashed(minor byte, cost int, salt, password []byte) (*hashed, error) {
	var out [Size]byte
	if err := Hash(out[:], cost, salt, key(password)); err != nil {
		return nil, err
	}
	return &hashed{
		minor: minor,
		cost:  cost,
		salt:  salt,
		hash:  out[:maxCryptedHashSize],
	}, nil
}

// key turns a password into the Blowfish key the text format uses: the
// bytes followed by a NUL terminator, limited to 72 bytes in total.
func key(password []byte) []byte {
	k := make([]byte, len(password)+1)
	copy(k, password)
	if len(k) > MaxPasswordSize {
		k = k[:MaxPasswordSize]
	}
	return k
}

func (p *hashed) encode() []byte {
	out := make([]byte, 0, encodedSize)
	out = append(out, '$', majorVersion, p.minor, '$')
	out = append(out, fmt.Sprintf("%02d", p.cost)...)
	out = append(out, '$')
	out = append(out, bcEncoding.EncodeToString(p.salt)...)
	out = append(out, bcEncoding.EncodeToString(p.hash)...)
	return out
}

func decode(hashedPassword []byte) (*hashed, error) {
	if len(hashedPassword) < encodedSize {
		return nil, ErrHashTooShort
	}

	prefix := hashedPassword[:4]
	if prefix[0] != '$' || prefix[1] != majorVersion || prefix[3] != '$' {
		return nil, InvalidHashPrefixError(prefix)
	}
	switch minor := prefix[2]; minor {
	case 'a', 'b', 'y':
	default:
		return nil, InvalidHashPrefixError(prefix)
	}

	rest := hashedPassword[4:]
	if rest[2] != '$' {
		return nil, InvalidHashPrefixError(hashedPassword[:7])
	}
	cost, err := strconv.Atoi(string(rest[:2]))
	if err != nil {
		return nil, fmt.Errorf("bcrypt: parsing cost: %w", err)
	}
	if cost < MinCost || cost > MaxCost {
		return nil, InvalidCostError(cost)
	}

	rest = rest[3:]
	if len(rest) != encodedSaltSize+encodedHashSize {
		return nil, ErrHashTooShort
	}
	salt, err := bcEncoding.DecodeString(string(rest[:encodedSaltSize]))
	if err != nil {
		return nil, fmt.Errorf("bcrypt: decoding salt: %w", err)
	}
	hash, err := bcEncoding.DecodeString(string(rest[encodedSaltSize:]))
	if err != nil {
		return nil, fmt.Errorf("bcrypt: decoding hash: %w", err)
	}

	return &hashed{minor: hashedPassword[2], cost: cost, salt: salt, hash: hash}, nil
}
