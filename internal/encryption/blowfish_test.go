package encryption

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/blowfish"
)

// Eric Young's Blowfish test vectors: key, plaintext, ciphertext.
var vectors = []struct {
	key, plaintext, ciphertext string
}{
	{"0000000000000000", "0000000000000000", "4EF997456198DD78"},
	{"FFFFFFFFFFFFFFFF", "FFFFFFFFFFFFFFFF", "51866FD5B85ECB8A"},
	{"3000000000000000", "1000000000000001", "7D856F9A613063F2"},
	{"1111111111111111", "1111111111111111", "2466DD878B963C9D"},
	{"0123456789ABCDEF", "1111111111111111", "61F9C3802281B096"},
	{"1111111111111111", "0123456789ABCDEF", "7D0CC630AFDA1EC7"},
	{"FEDCBA9876543210", "0123456789ABCDEF", "0ACEAB0FC6A0A28D"},
	{"7CA110454A1A6E57", "01A1D6D039776742", "59C68245EB05282B"},
	{"0131D9619DC1376E", "5CD54CA83DEF57DA", "B1B8CC0B250F09A0"},
	{"07A1133E4A0B2686", "0248D43806F67172", "1730E5778BEA1DA4"},
	{"3849674C2602319E", "51454B582DDF440A", "A25E7856CF2651EB"},
	{"04B915BA43FEB5B6", "42FD443059577FA2", "353882B109CE8F1A"},
	{"0113B970FD34F2CE", "059B5E0851CF143A", "48F4D0884C379918"},
	{"0170F175468FB5E6", "0756D8E0774761D2", "432193B78951FC98"},
	{"43297FAD38E373FE", "762514B829BF486A", "13F04154D69D1AE5"},
	{"07A7137045DA2A16", "3BDD119049372802", "2EEDDA93FFD39C79"},
	{"04689104C2FD3B2F", "26955F6835AF609A", "D887E0393C2DA6E3"},
	{"37D06BB516CB7546", "164D5E404F275232", "5F99D04F5B163969"},
	{"1F08260D1AC2465E", "6B056E18759F5CCA", "4A057A3B24D3977B"},
	{"584023641ABA6176", "004BD6EF09176062", "452031C1E4FADA8E"},
	{"025816164629B007", "480D39006EE762F2", "7555AE39F59B87BD"},
	{"49793EBC79B3258F", "437540C8698F3CFA", "53C55F9CB49FC019"},
	{"4FB05E1515AB73A7", "072D43A077075292", "7A8E7BFA937E89A3"},
	{"49E95D6D4CA229BF", "02FE55778117F12A", "CF9C5D7A4986ADB5"},
	{"018310DC409B26D6", "1D9D5C5018F728C2", "D1ABB290658BC778"},
	{"1C587F1C13924FEF", "305532286D6F295A", "55CB3774D13EF201"},
	{"0101010101010101", "0123456789ABCDEF", "FA34EC4847B268B2"},
	{"1F1F1F1F0E0E0E0E", "0123456789ABCDEF", "A790795108EA3CAE"},
	{"E0FEE0FEF1FEF1FE", "0123456789ABCDEF", "C39E072D9FAC631D"},
	{"0000000000000000", "FFFFFFFFFFFFFFFF", "014933E0CDAFF6E4"},
	{"FFFFFFFFFFFFFFFF", "0000000000000000", "F21E9A77B71C49BC"},
	{"0123456789ABCDEF", "0000000000000000", "245946885754369A"},
	{"FEDCBA9876543210", "FFFFFFFFFFFFFFFF", "6B5C5A9C5D9E0A5A"},
}

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad test vector %q: %v", s, err)
	}
	return b
}

func TestCipher_Vectors(t *testing.T) {
	for _, v := range vectors {
		key := decodeHex(t, v.key)
		c, err := NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher(%s) unexpected error: %v", v.key, err)
		}

		got := make([]byte, BlockSize)
		c.Encrypt(got, decodeHex(t, v.plaintext))
		if diff := cmp.Diff(decodeHex(t, v.ciphertext), got); diff != "" {
			t.Errorf("Encrypt() with key %s mismatch; diff:\n%s", v.key, diff)
		}

		c.Decrypt(got, got)
		if diff := cmp.Diff(decodeHex(t, v.plaintext), got); diff != "" {
			t.Errorf("Decrypt() with key %s mismatch; diff:\n%s", v.key, diff)
		}
	}
}

func TestCipher_RoundTrip(t *testing.T) {
	f := func(seed []byte, l, r uint32) bool {
		key := append([]byte{0x5a, 0x5a, 0x5a, 0x5a}, seed...)
		if len(key) > MaxKeySize {
			key = key[:MaxKeySize]
		}
		c, err := NewCipher(key)
		if err != nil {
			return false
		}
		var src, enc, dec [BlockSize]byte
		putBE(src[0:4], l)
		putBE(src[4:8], r)
		c.Encrypt(enc[:], src[:])
		c.Decrypt(dec[:], enc[:])

		wl, wr := c.DecryptWords(c.EncryptWords(l, r))
		return dec == src && wl == l && wr == r
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestCipher_MatchesXCrypto(t *testing.T) {
	f := func(seed, salt []byte, block [BlockSize]byte) bool {
		key := append([]byte("key!"), seed...)
		if len(key) > MaxKeySize {
			key = key[:MaxKeySize]
		}
		if len(salt) == 0 {
			salt = []byte{0}
		}

		ours, err := NewCipher(key)
		if err != nil {
			return false
		}
		theirs, err := blowfish.NewCipher(key)
		if err != nil {
			return false
		}
		var a, b [BlockSize]byte
		ours.Encrypt(a[:], block[:])
		theirs.Encrypt(b[:], block[:])
		if a != b {
			return false
		}

		// The salted schedule followed by further plain expansions is
		// the sequence bcrypt runs.
		saltedOurs, err := NewSaltedCipher(key, salt)
		if err != nil {
			return false
		}
		saltedTheirs, err := blowfish.NewSaltedCipher(key, salt)
		if err != nil {
			return false
		}
		saltedOurs.ExpandKey(salt)
		blowfish.ExpandKey(salt, saltedTheirs)
		saltedOurs.Encrypt(a[:], block[:])
		saltedTheirs.Encrypt(b[:], block[:])
		return a == b
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestNewCipher_KeySize(t *testing.T) {
	tests := map[string]struct {
		size    int
		wantErr bool
	}{
		"too short":   {size: 3, wantErr: true},
		"minimum":     {size: MinKeySize},
		"eight bytes": {size: 8},
		"maximum":     {size: MaxKeySize},
		"too long":    {size: 57, wantErr: true},
		"empty":       {size: 0, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := NewCipher(make([]byte, tt.size))
			if !tt.wantErr {
				if err != nil || c == nil {
					t.Fatalf("NewCipher() = %v, %v", c, err)
				}
				return
			}
			var sizeErr KeySizeError
			if !errors.As(err, &sizeErr) || int(sizeErr) != tt.size {
				t.Fatalf("NewCipher() error = %v, want KeySizeError(%d)", err, tt.size)
			}
		})
	}
}

func TestNewSaltedCipher_Errors(t *testing.T) {
	if _, err := NewSaltedCipher(nil, []byte("salt")); !errors.As(err, new(KeySizeError)) {
		t.Errorf("NewSaltedCipher() with empty key error = %v", err)
	}
	if _, err := NewSaltedCipher([]byte("key"), nil); !errors.As(err, new(SaltSizeError)) {
		t.Errorf("NewSaltedCipher() with empty salt error = %v", err)
	}
	// Long keys are fine here since bcrypt passwords run up to 72 bytes.
	if _, err := NewSaltedCipher(bytes.Repeat([]byte{1}, 72), []byte("salt")); err != nil {
		t.Errorf("NewSaltedCipher() with 72 byte key error = %v", err)
	}
}

func TestCipher_BlockPreconditions(t *testing.T) {
	c, err := NewCipher([]byte("abcdefgh"))
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]func(){
		"short src":        func() { c.Encrypt(make([]byte, 8), make([]byte, 7)) },
		"long src":         func() { c.Decrypt(make([]byte, 8), make([]byte, 9)) },
		"short dst":        func() { c.Encrypt(make([]byte, 4), make([]byte, 8)) },
		"empty expand key": func() { Initial().ExpandKey(nil) },
		"empty salt":       func() { Initial().ExpandKeyWithSalt([]byte("k"), nil) },
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

func TestInitialTables(t *testing.T) {
	c := Initial()
	checks := map[string]struct{ got, want uint32 }{
		"p[0]":    {c.p[0], 0x243f6a88},
		"p[17]":   {c.p[17], 0x8979fb1b},
		"s0[0]":   {c.s0[0], 0xd1310ba6},
		"s1[0]":   {c.s1[0], 0x4b7a70e9},
		"s2[0]":   {c.s2[0], 0xe93d5a68},
		"s3[0]":   {c.s3[0], 0x3a39ce37},
		"s3[255]": {c.s3[255], 0x3ac372e6},
	}
	for name, tt := range checks {
		if tt.got != tt.want {
			t.Errorf("%s = %#08x, want %#08x", name, tt.got, tt.want)
		}
	}

	// Keying a copy must never touch the package tables.
	if _, err := NewCipher([]byte("mutate?")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c.p, Initial().p); diff != "" {
		t.Errorf("initial P table changed after keying; diff:\n%s", diff)
	}
}

func TestRandomKey(t *testing.T) {
	a, err := RandomKey(16)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RandomKey(16)
	if len(a) != 16 || bytes.Equal(a, b) {
		t.Errorf("RandomKey() returned %x and %x", a, b)
	}
	if _, err := RandomKey(2); !errors.As(err, new(KeySizeError)) {
		t.Errorf("RandomKey(2) error = %v", err)
	}
}

func BenchmarkEncrypt(b *testing.B) {
	c, _ := NewCipher([]byte("benchmark key"))
	var block [BlockSize]byte
	b.SetBytes(BlockSize)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Encrypt(block[:], block[:])
	}
}

func BenchmarkNewCipher(b *testing.B) {
	key := []byte("benchmark key")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		NewCipher(key)
	}
}
