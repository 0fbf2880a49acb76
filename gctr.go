package ubiqgcm

// gctrSpace holds the working counter and the keystream block used for a
// trailing partial block.
type gctrSpace struct {
	counter *Block
	mask    *Block
}

// gctrPaddedSpace holds the working counter only; block aligned input
// never needs a separate keystream block.
type gctrPaddedSpace struct {
	counter *Block
}

// gctr crypts in to out in counter mode starting at icb. in may be any
// length; a trailing partial block consumes one more keystream block but
// the counter is not advanced past it. icb itself is not modified. out
// must be at least len(in) bytes and must not overlap in.
func gctr(s *gctrSpace, c BlockCipher, key *Key, icb *Block, in, out []byte) {
	if len(in) == 0 {
		return
	}

	*s.counter = *icb

	for len(in) >= BlockSize {
		dst := (*Block)(out[:BlockSize])
		c.EncryptBlock(dst, s.counter, key)
		xorBlock(dst, (*Block)(in[:BlockSize]))
		Incr32(s.counter)

		in = in[BlockSize:]
		out = out[BlockSize:]
	}

	if len(in) > 0 {
		c.EncryptBlock(s.mask, s.counter, key)
		for i := range in {
			out[i] = in[i] ^ s.mask[i]
		}
	}
}

// gctrPadded is gctr restricted to input that is a whole number of
// blocks. Any trailing partial block is ignored.
func gctrPadded(s *gctrPaddedSpace, c BlockCipher, key *Key, icb *Block, in, out []byte) {
	if len(in) == 0 {
		return
	}

	*s.counter = *icb

	for len(in) >= BlockSize {
		dst := (*Block)(out[:BlockSize])
		c.EncryptBlock(dst, s.counter, key)
		xorBlock(dst, (*Block)(in[:BlockSize]))
		Incr32(s.counter)

		in = in[BlockSize:]
		out = out[BlockSize:]
	}
}

// cdataSpace and cdataPaddedSpace hold inc32(J0), the first counter
// block of the data stream, plus the scratch of the underlying gctr.
type cdataSpace struct {
	counter *Block
	gctr    gctrSpace
}

type cdataPaddedSpace struct {
	counter *Block
	gctr    gctrPaddedSpace
}

// generateCDATA crypts in to out with the data counter stream, which
// starts at inc32(j0).
func generateCDATA(s *cdataSpace, c BlockCipher, key *Key, j0 *Block, in, out []byte) {
	if len(in) == 0 {
		return
	}
	*s.counter = *j0
	Incr32(s.counter)
	gctr(&s.gctr, c, key, s.counter, in, out)
}

func generateCDATAPadded(s *cdataPaddedSpace, c BlockCipher, key *Key, j0 *Block, in, out []byte) {
	if len(in) == 0 {
		return
	}
	*s.counter = *j0
	Incr32(s.counter)
	gctrPadded(&s.gctr, c, key, s.counter, in, out)
}
