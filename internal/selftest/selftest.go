// Package selftest runs the known-answer vectors for every primitive in the
// module, so that a build (or an accelerated backend swapped in) can be
// checked on the machine it runs on.
package selftest

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/cipherkit/internal/bcrypt"
	"github.com/dcrodman/cipherkit/internal/digest"
	"github.com/dcrodman/cipherkit/internal/encryption"
)

// Result is the outcome of a single vector.
type Result struct {
	Suite string
	Name  string
	Err   error
}

// Report collects the results of a Run.
type Report struct {
	Results []Result
}

// Failed reports whether any vector did not produce its expected output.
func (r *Report) Failed() bool {
	return len(r.Failures()) > 0
}

// Failures returns the results that carry an error.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Run checks every vector, logging failures at error level and a summary per
// suite at info level.
func Run(logger *logrus.Logger) *Report {
	report := &Report{}
	suites := []struct {
		name string
		fn   func() []Result
	}{
		{"digest", checkDigests},
		{"blowfish", checkBlowfish},
		{"bcrypt", checkBcrypt},
	}
	for _, s := range suites {
		results := s.fn()
		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				logger.WithFields(logrus.Fields{"suite": res.Suite, "vector": res.Name}).Error(res.Err)
			}
		}
		logger.WithField("suite", s.name).Infof("%d/%d vectors passed", len(results)-failed, len(results))
		report.Results = append(report.Results, results...)
	}
	return report
}

func checkDigests() []Result {
	var results []Result
	for _, v := range digestVectors {
		res := Result{Suite: "digest", Name: fmt.Sprintf("%s(%q)", v.algorithm, truncate(v.input))}
		got, err := digest.Sum(v.algorithm, []byte(v.input))
		if err != nil {
			res.Err = err
		} else {
			res.Err = compareHex(v.want, got)
		}
		results = append(results, res)
	}
	return results
}

func checkBlowfish() []Result {
	var results []Result
	for _, v := range blockVectors {
		res := Result{Suite: "blowfish", Name: "key " + v.key}
		res.Err = checkBlock(v)
		results = append(results, res)
	}
	return results
}

func checkBlock(v blockVector) error {
	key, _ := hex.DecodeString(v.key)
	plaintext, _ := hex.DecodeString(v.plaintext)

	c, err := encryption.NewCipher(key)
	if err != nil {
		return err
	}
	ct := make([]byte, encryption.BlockSize)
	c.Encrypt(ct, plaintext)
	if err := compareHex(v.ciphertext, ct); err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	pt := make([]byte, encryption.BlockSize)
	c.Decrypt(pt, ct)
	if !bytes.Equal(pt, plaintext) {
		return fmt.Errorf("decrypt: want %x, got %x", plaintext, pt)
	}
	return nil
}

func checkBcrypt() []Result {
	var results []Result
	for _, v := range bcryptVectors {
		res := Result{Suite: "bcrypt", Name: fmt.Sprintf("cost %d password %s", v.cost, v.password)}
		salt, _ := hex.DecodeString(v.salt)
		password, _ := hex.DecodeString(v.password)

		out := make([]byte, bcrypt.Size)
		if err := bcrypt.Hash(out, v.cost, salt, password); err != nil {
			res.Err = err
		} else {
			res.Err = compareHex(v.want, out[:len(v.want)/2])
		}
		results = append(results, res)
	}

	res := Result{Suite: "bcrypt", Name: "encoded round trip"}
	res.Err = checkEncoded()
	return append(results, res)
}

func checkEncoded() error {
	password := []byte("selftest")
	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.MinCost)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(hash, password); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("selftesT")); err != bcrypt.ErrMismatchedHashAndPassword {
		return fmt.Errorf("wrong password accepted: %v", err)
	}
	return nil
}

func compareHex(want string, got []byte) error {
	if g := hex.EncodeToString(got); g != want {
		return fmt.Errorf("want %s, got %s", want, g)
	}
	return nil
}

func truncate(s string) string {
	if len(s) > 16 {
		return s[:16] + "..."
	}
	return s
}
