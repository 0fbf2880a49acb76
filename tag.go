package ubiqgcm

// tagSpace is the scratch used while synthesizing a tag.
type tagSpace struct {
	lengths *Block
	s       *Block
	ghash   ghashSpace
	gctr    gctrPaddedSpace
}

// deriveAuthKey sets h to the authentication subkey E_k(0¹²⁸).
func deriveAuthKey(c BlockCipher, key *Key, h *Block) {
	*h = Block{}
	c.EncryptBlock(h, h, key)
}

// deriveICB sets j0 to IV || 0³¹ || 1, the initial counter block for a
// 96 bit IV. See NIST SP 800-38D, section 7.1.
func deriveICB(iv *IV, j0 *Block) {
	copy(j0[:], iv[:])
	for i := IVSize; i < BlockSize-1; i++ {
		j0[i] = 0
	}
	j0[BlockSize-1] = 1
}

// putLengths encodes the bit lengths of the AAD and the ciphertext. Only
// the low 16 bits of each 64 bit field are ever populated; the length
// caps enforced by the operations keep both values below 2¹⁶.
func putLengths(b *Block, aadLen, cdataLen int) {
	*b = Block{}

	a := uint16(aadLen * 8)
	b[6] = byte(a >> 8)
	b[7] = byte(a)

	c := uint16(cdataLen * 8)
	b[14] = byte(c >> 8)
	b[15] = byte(c)
}

// generateTag computes
//
//	S = GHASH_H(A || 0^v || C || 0^u || [len(A)]64 || [len(C)]64)
//	T = GCTR_K(J0, S)
//
// threading one accumulator through all three folds.
func generateTag(s *tagSpace, c BlockCipher, mul Multiplier,
	key *Key, h *Block, aad, cdata []byte, j0 *Block, tag *Block) {
	putLengths(s.lengths, len(aad), len(cdata))
	*s.s = Block{}

	ghash(&s.ghash, mul, s.s, h, aad)
	ghash(&s.ghash, mul, s.s, h, cdata)
	ghash(&s.ghash, mul, s.s, h, s.lengths[:])

	gctrPadded(&s.gctr, c, key, j0, s.s[:], tag[:])
}
