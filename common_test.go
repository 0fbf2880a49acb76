package ubiqgcm

import (
	"crypto/aes"
	goCipher "crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"io"
	"testing"
)

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func mustRandom(t *testing.T, n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		t.Fatal(err)
	}
	return b
}

func randomKeyAndIV(t *testing.T) (Key, IV) {
	var key Key
	var iv IV
	copy(key[:], mustRandom(t, KeySize))
	copy(iv[:], mustRandom(t, IVSize))
	return key, iv
}

// referenceSeal seals with the Go runtime's GCM, returning ciphertext and
// tag separately.
func referenceSeal(t *testing.T, key *Key, iv *IV, plaintext, aad []byte) ([]byte, []byte) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		t.Fatal(err)
	}
	gogcm, err := goCipher.NewGCM(block)
	if err != nil {
		t.Fatal(err)
	}
	out := gogcm.Seal(nil, iv[:], plaintext, aad)
	return out[:len(out)-TagSize], out[len(out)-TagSize:]
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func fill(b []byte, v byte) []byte {
	for i := range b {
		b[i] = v
	}
	return b
}

// xorCipher is a trivially insecure BlockCipher with no allocations.
type xorCipher struct{}

func (xorCipher) EncryptBlock(dst, src *Block, key *Key) {
	for i := range dst {
		dst[i] = src[i] ^ key[i] ^ byte(i)
	}
}

type gcmVariant struct {
	name string
	g    *GCM
}

func allVariants() []gcmVariant {
	return []gcmVariant{
		{"aes/bit-serial", NewGCM(RuntimeAES{}, BitSerial{})},
		{"aes/constant-time", NewGCM(RuntimeAES{}, ConstantTime{})},
		{"bsaes/bit-serial", NewGCM(BitslicedAES{}, BitSerial{})},
		{"bsaes/constant-time", NewGCM(BitslicedAES{}, ConstantTime{})},
	}
}
