package encryption

import (
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dcrodman/cipherkit/internal/digest/sha1"
)

// Cache keeps recently keyed ciphers around so that callers encrypting many
// blocks under a handful of keys only pay for each key schedule once.
// Entries are indexed by the SHA-1 of the key rather than the key itself.
type Cache struct {
	cacheInstance *gocache.Cache
}

// NewCache returns a Cache whose entries expire after ttl. A ttl of -1 keeps
// entries until Flush; cleanupInterval controls how often expired entries are
// purged.
func NewCache(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{cacheInstance: gocache.New(ttl, cleanupInterval)}
}

// Cipher returns the cipher for key, running the key schedule only if no
// live entry exists.
func (c *Cache) Cipher(key []byte) (*Cipher, error) {
	id := cacheKey(key)
	if v, ok := c.cacheInstance.Get(id); ok {
		return v.(*Cipher), nil
	}

	cipher, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	c.cacheInstance.SetDefault(id, cipher)
	return cipher, nil
}

// Len is the number of ciphers currently held, including expired entries
// that have not been cleaned up yet.
func (c *Cache) Len() int { return c.cacheInstance.ItemCount() }

// Flush drops every entry.
func (c *Cache) Flush() { c.cacheInstance.Flush() }

func cacheKey(key []byte) string {
	sum := sha1.Sum(key)
	return hex.EncodeToString(sum[:])
}
