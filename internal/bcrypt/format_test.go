package bcrypt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	xbcrypt "golang.org/x/crypto/bcrypt"
)

func TestGenerateFromPassword(t *testing.T) {
	hash, err := GenerateFromPassword([]byte("mypassword"), MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if len(hash) != encodedSize {
		t.Errorf("GenerateFromPassword() length want = %d, got = %d", encodedSize, len(hash))
	}
	if !bytes.HasPrefix(hash, []byte("$2b$04$")) {
		t.Errorf("GenerateFromPassword() unexpected prefix in %s", hash)
	}
	if err := CompareHashAndPassword(hash, []byte("mypassword")); err != nil {
		t.Errorf("CompareHashAndPassword() want = nil, got = %v", err)
	}
	if err := CompareHashAndPassword(hash, []byte("notmypassword")); err != ErrMismatchedHashAndPassword {
		t.Errorf("CompareHashAndPassword() want = %v, got = %v", ErrMismatchedHashAndPassword, err)
	}

	other, err := GenerateFromPassword([]byte("mypassword"), MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(hash, other) {
		t.Errorf("GenerateFromPassword() reused a salt")
	}
}

func TestGenerateFromPassword_Cost(t *testing.T) {
	tests := map[string]struct {
		cost    int
		want    int
		wantErr error
	}{
		"min cost":        {cost: MinCost, want: MinCost},
		"below min cost":  {cost: 1, want: DefaultCost},
		"above max cost":  {cost: MaxCost + 1, wantErr: InvalidCostError(MaxCost + 1)},
		"explicit cost 5": {cost: 5, want: 5},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			hash, err := GenerateFromPassword([]byte("pw"), tt.cost)
			if err != tt.wantErr {
				t.Fatalf("GenerateFromPassword() want = %v, got = %v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			got, err := Cost(hash)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Cost() want = %d, got = %d", tt.want, got)
			}
		})
	}
}

func TestGenerateFromPassword_TooLong(t *testing.T) {
	if _, err := GenerateFromPassword(make([]byte, 73), MinCost); err != ErrPasswordTooLong {
		t.Errorf("GenerateFromPassword() want = %v, got = %v", ErrPasswordTooLong, err)
	}
	if _, err := GenerateFromPassword(bytes.Repeat([]byte("a"), 72), MinCost); err != nil {
		t.Errorf("GenerateFromPassword() want = nil, got = %v", err)
	}
}

func TestCompareHashAndPassword_KnownHash(t *testing.T) {
	hash := []byte("$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga")
	if err := CompareHashAndPassword(hash, []byte("allmine")); err != nil {
		t.Errorf("CompareHashAndPassword() want = nil, got = %v", err)
	}
}

func TestCompareHashAndPassword_Malformed(t *testing.T) {
	valid := "$2b$04$abcdefghijklmnopqrstuu" + strings.Repeat("a", encodedHashSize)
	tests := map[string]struct {
		hash string
		want error
	}{
		"empty":         {hash: "", want: ErrHashTooShort},
		"truncated":     {hash: valid[:len(valid)-1], want: ErrHashTooShort},
		"trailing data": {hash: valid + "x", want: ErrHashTooShort},
		"wrong major":   {hash: "$3" + valid[2:], want: InvalidHashPrefixError("$3b$")},
		"wrong minor":   {hash: "$2x" + valid[3:], want: InvalidHashPrefixError("$2x$")},
		"missing $":     {hash: "x" + valid[1:], want: InvalidHashPrefixError("x2b$")},
		"cost too low":  {hash: "$2b$03" + valid[6:], want: InvalidCostError(3)},
		"cost too high": {hash: "$2b$32" + valid[6:], want: InvalidCostError(32)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := CompareHashAndPassword([]byte(tt.hash), []byte("pw"))
			if !errors.Is(err, tt.want) {
				t.Errorf("CompareHashAndPassword() want = %v, got = %v", tt.want, err)
			}
		})
	}
}

func TestCompareHashAndPassword_AcceptsVariants(t *testing.T) {
	hash, err := GenerateFromPassword([]byte("variant"), MinCost)
	if err != nil {
		t.Fatal(err)
	}
	for _, minor := range []byte{'a', 'b', 'y'} {
		h := append([]byte(nil), hash...)
		h[2] = minor
		if err := CompareHashAndPassword(h, []byte("variant")); err != nil {
			t.Errorf("CompareHashAndPassword() with $2%c$ want = nil, got = %v", minor, err)
		}
	}
}

func TestInterop_XCrypto(t *testing.T) {
	passwords := []string{"", "a", "allmine", "correct horse battery staple", strings.Repeat("x", 72)}
	for _, pw := range passwords {
		ours, err := GenerateFromPassword([]byte(pw), MinCost)
		if err != nil {
			t.Fatal(err)
		}
		if err := xbcrypt.CompareHashAndPassword(ours, []byte(pw)); err != nil {
			t.Errorf("x/crypto rejected our hash of %q: %v", pw, err)
		}

		theirs, err := xbcrypt.GenerateFromPassword([]byte(pw), xbcrypt.MinCost)
		if err != nil {
			t.Fatal(err)
		}
		if err := CompareHashAndPassword(theirs, []byte(pw)); err != nil {
			t.Errorf("CompareHashAndPassword() rejected x/crypto's hash of %q: %v", pw, err)
		}
		if len(pw) < MaxPasswordSize {
			if err := CompareHashAndPassword(theirs, []byte(pw+"!")); err != ErrMismatchedHashAndPassword {
				t.Errorf("CompareHashAndPassword() accepted a wrong password for %q: %v", pw, err)
			}
		}
	}
}
