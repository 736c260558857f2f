package selftest

type digestVector struct {
	algorithm string
	input     string
	want      string
}

var digestVectors = []digestVector{
	{"md5", "", "d41d8cd98f00b204e9800998ecf8427e"},
	{"md5", "a", "0cc175b9c0f1b6a831c399e269772661"},
	{"md5", "abc", "900150983cd24fb0d6963f7d28e17f72"},
	{"md5", "message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
	{"md5", "abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
	{"md5", "12345678901234567890123456789012345678901234567890123456789012345678901234567890", "57edf4a22be3c955ac49da2e2107b67a"},
	{"sha1", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
	{"sha1", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
	{"sha1", "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
	{"sha1", "The quick brown fox jumps over the lazy dog", "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12"},
}

type blockVector struct {
	key, plaintext, ciphertext string
}

var blockVectors = []blockVector{
	{"0000000000000000", "0000000000000000", "4ef997456198dd78"},
	{"ffffffffffffffff", "ffffffffffffffff", "51866fd5b85ecb8a"},
	{"3000000000000000", "1000000000000001", "7d856f9a613063f2"},
	{"fedcba9876543210", "0123456789abcdef", "0aceab0fc6a0a28d"},
	{"0123456789abcdef", "0000000000000000", "245946885754369a"},
}

type bcryptVector struct {
	cost     int
	salt     string
	password string
	want     string
}

// Only the 23 bytes the text format keeps are checked.
var bcryptVectors = []bcryptVector{
	{5, "10410410410410410410410410410410", "552a5500", "1bb69143f9a8d304c8d23d99ab049a77a68e2ccc744206"},
	{5, "10410410410410410410410410410410", "552a552a00", "5c84350bdfbaa96ac16f615ae79f35cfdacd682d369f23"},
	{5, "65965965965965965965965965965965", "552a552a5500", "09e673a3f9a544818eb8dd69a8cb28b32f6f7be604cfa7"},
	{5, "10410410410410410410410410410410", "00", "f702365c4d4ae1d53d97cd28b0b93f11f79fce44d560fd"},
}
