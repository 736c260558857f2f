package md5

import (
	stdmd5 "crypto/md5"
	"encoding/hex"
	"strings"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
)

// RFC 1321, appendix A.5.
var golden = []struct {
	in  string
	out string
}{
	{"", "d41d8cd98f00b204e9800998ecf8427e"},
	{"a", "0cc175b9c0f1b6a831c399e269772661"},
	{"abc", "900150983cd24fb0d6963f7d28e17f72"},
	{"message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
	{"abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
	{"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", "d174ab98d277d9f5a5611c2c9f419d9f"},
	{"12345678901234567890123456789012345678901234567890123456789012345678901234567890", "57edf4a22be3c955ac49da2e2107b67a"},
}

func TestGolden(t *testing.T) {
	for _, g := range golden {
		sum := Sum([]byte(g.in))
		if got := hex.EncodeToString(sum[:]); got != g.out {
			t.Errorf("Sum(%q) = %s, want %s", g.in, got, g.out)
		}

		// Feed the same input through every split point.
		for split := 0; split <= len(g.in); split++ {
			d := New()
			d.Update([]byte(g.in[:split]))
			d.Update([]byte(g.in[split:]))
			out := make([]byte, Size)
			d.Result(out)
			if got := hex.EncodeToString(out); got != g.out {
				t.Errorf("split %d of %q = %s, want %s", split, g.in, got, g.out)
			}
		}
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	// Lengths around the padding boundary are the interesting ones.
	for n := 0; n <= 3*BlockSize; n++ {
		msg := []byte(strings.Repeat("x", n))
		got := Sum(msg)
		want := stdmd5.Sum(msg)
		if diff := cmp.Diff(want[:], got[:]); diff != "" {
			t.Fatalf("Sum() of %d bytes differs from crypto/md5; diff:\n%s", n, diff)
		}
	}
}

func TestIncrementalEquivalence(t *testing.T) {
	f := func(a, b []byte) bool {
		d := New()
		d.Write(a)
		d.Write(b)
		var split [Size]byte
		d.Result(split[:])

		whole := Sum(append(append([]byte(nil), a...), b...))
		return split == whole && whole == stdmd5.Sum(append(append([]byte(nil), a...), b...))
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestResultLargerBuffer(t *testing.T) {
	out := make([]byte, Size+4)
	d := New()
	d.Update([]byte("abc"))
	d.Result(out)
	if got := hex.EncodeToString(out[:Size]); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("Result() = %s", got)
	}
	if diff := cmp.Diff([]byte{0, 0, 0, 0}, out[Size:]); diff != "" {
		t.Errorf("Result() wrote past the digest; diff:\n%s", diff)
	}
}

func TestMisuse(t *testing.T) {
	tests := map[string]func(){
		"short output buffer": func() { New().Result(make([]byte, Size-1)) },
		"update after result": func() {
			d := New()
			d.Result(make([]byte, Size))
			d.Update([]byte("x"))
		},
		"result twice": func() {
			d := New()
			d.Result(make([]byte, Size))
			d.Result(make([]byte, Size))
		},
		"partial block compress": func() {
			var s [4]uint32
			compress(&s, make([]byte, BlockSize-1))
		},
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected a panic")
				}
			}()
			fn()
		})
	}
}

func TestResetAfterResult(t *testing.T) {
	d := New()
	d.Update([]byte("discarded"))
	d.Result(make([]byte, Size))
	d.Reset()
	d.Update([]byte("abc"))
	out := make([]byte, Size)
	d.Result(out)
	if got := hex.EncodeToString(out); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("Result() after Reset = %s", got)
	}
}

func BenchmarkUpdate8K(b *testing.B) {
	buf := make([]byte, 8<<10)
	d := New()
	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Update(buf)
	}
}
