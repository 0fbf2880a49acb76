package ubiqgcm

const (
	BlockSize = 16
	KeySize   = 16
	IVSize    = 12
	TagSize   = 16
)

// Block is a single 128-bit GCM block. Plaintext and ciphertext chunks,
// counters, the hash accumulator and the tag all share this shape.
type Block [BlockSize]byte

// Key is an opaque AES-128 key. It is never modified.
type Key [KeySize]byte

// IV is the 96-bit nonce. It must be unique per (key, encryption) pair;
// this package does not and cannot enforce that.
type IV [IVSize]byte

// Tag is the authentication tag produced by encryption.
type Tag [TagSize]byte

// xorBlock sets dst ^= src.
func xorBlock(dst, src *Block) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// shiftBlockRight shifts the 128-bit big endian value in b right by
// one bit. The bit shifted out of the last byte is discarded.
func shiftBlockRight(b *Block) {
	for i := BlockSize - 1; i > 0; i-- {
		b[i] = b[i]>>1 | b[i-1]<<7
	}
	b[0] >>= 1
}

// Incr32 treats the final four bytes of counter as a big endian value
// and increments it modulo 2^32. The leading twelve bytes never change.
func Incr32(counter *Block) {
	for i := BlockSize - 1; i >= BlockSize-4; i-- {
		counter[i]++
		if counter[i] != 0 {
			return
		}
	}
}

// TagsEqual reports whether a and b are identical. It always examines
// every byte so the running time does not depend on where, or whether,
// the tags differ.
func TagsEqual(a, b *Tag) bool {
	var v byte
	for i := 0; i < TagSize; i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

// roundUp returns n rounded up to the next multiple of BlockSize.
func roundUp(n int) int {
	return (n + BlockSize - 1) &^ (BlockSize - 1)
}
