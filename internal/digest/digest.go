// Package digest defines the capability shared by the streaming hash engines
// and a small registry for looking them up by name.
package digest

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dcrodman/cipherkit/internal/digest/md5"
	"github.com/dcrodman/cipherkit/internal/digest/sha1"
)

// Digest is implemented by every hash engine in this module.
//
// Update may be called any number of times. Result pads the message, writes
// Size bytes of output into out (which must be at least that long) and
// finishes the Digest; it panics on a short buffer or on reuse.
type Digest interface {
	io.Writer
	Update(p []byte)
	Result(out []byte)
	Size() int
	BlockSize() int
}

// Names of the registered algorithms.
const (
	MD5  = "md5"
	SHA1 = "sha1"
)

// UnknownAlgorithmError is returned when looking up an unregistered name.
type UnknownAlgorithmError string

func (e UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("digest: unknown algorithm %q", string(e))
}

var algorithms = map[string]func() Digest{
	MD5:  func() Digest { return md5.New() },
	SHA1: func() Digest { return sha1.New() },
}

// New returns a fresh Digest for the named algorithm. Names are matched
// case-insensitively and may contain a dash ("SHA-1").
func New(name string) (Digest, error) {
	fn, ok := algorithms[canonical(name)]
	if !ok {
		return nil, UnknownAlgorithmError(name)
	}
	return fn(), nil
}

// Algorithms lists the registered names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sum hashes data in one call.
func Sum(name string, data []byte) ([]byte, error) {
	d, err := New(name)
	if err != nil {
		return nil, err
	}
	d.Update(data)
	return Finish(d), nil
}

// SumReader hashes everything read from r.
func SumReader(name string, r io.Reader) ([]byte, error) {
	d, err := New(name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(d, r); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return Finish(d), nil
}

// Finish calls Result with a freshly allocated buffer of the right size.
func Finish(d Digest) []byte {
	out := make([]byte, d.Size())
	d.Result(out)
	return out
}

func canonical(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
}
