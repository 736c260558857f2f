package sha1

import (
	stdsha1 "crypto/sha1"
	"encoding/hex"
	"io"
	"strings"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
)

func TestVectors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"single byte", "a", "86f7e437faa5a7fce15d1ddcb9eaeaea377667b8"},
		{"abc", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"message digest", "message digest", "c12252ceda8be8994d5fa0290a47231c1d16aae3"},
		{"alphabet", "abcdefghijklmnopqrstuvwxyz", "32d10c7b8cf96570ca04ce37f2a19d84240d3a89"},
		{"alphanumeric", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", "761c457bf73b14d27e9e9265c46f4b4dda11f940"},
		{"eighty digits", strings.Repeat("1234567890", 8), "50abf5706a150990a08b2c5ea40fa0e585554732"},
		{"two block message", "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Sum([]byte(tt.in))
			if got := hex.EncodeToString(sum[:]); got != tt.want {
				t.Errorf("Sum() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMillionA(t *testing.T) {
	d := New()
	if _, err := io.Copy(d, strings.NewReader(strings.Repeat("a", 1000000))); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, Size)
	d.Result(out)
	if got := hex.EncodeToString(out); got != "34aa973cd4c4daa4f61eeb2bdbad27316534016f" {
		t.Errorf("Result() = %s", got)
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	f := func(msg []byte, split uint8) bool {
		cut := int(split)
		if cut > len(msg) {
			cut = len(msg)
		}
		d := New()
		d.Update(msg[:cut])
		d.Update(msg[cut:])
		var got [Size]byte
		d.Result(got[:])
		return got == stdsha1.Sum(msg) && got == Sum(msg)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}

	for n := 0; n <= 2*BlockSize+1; n++ {
		msg := []byte(strings.Repeat("q", n))
		got, want := Sum(msg), stdsha1.Sum(msg)
		if diff := cmp.Diff(want[:], got[:]); diff != "" {
			t.Fatalf("Sum() of %d bytes differs from crypto/sha1; diff:\n%s", n, diff)
		}
	}
}

func TestDeterministicAcrossInstances(t *testing.T) {
	msg := []byte("the same input, hashed twice")
	first, second := New(), New()
	first.Update(msg)
	second.Update(msg)
	a, b := make([]byte, Size), make([]byte, Size)
	first.Result(a)
	second.Result(b)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("independent digests disagree; diff:\n%s", diff)
	}
}

func TestMisuse(t *testing.T) {
	tests := map[string]func(){
		"short output buffer": func() { New().Result(make([]byte, Size-1)) },
		"update after result": func() {
			d := New()
			d.Result(make([]byte, Size))
			d.Update(nil)
		},
		"oversized block": func() {
			var h [5]uint32
			compress(&h, make([]byte, BlockSize+1))
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
