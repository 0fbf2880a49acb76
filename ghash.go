package ubiqgcm

// ghashSpace is the scratch needed by one GHASH fold: the product of the
// current step and the multiplier's working block.
type ghashSpace struct {
	product *Block
	v       *Block
}

// ghash extends the accumulator y with more polynomial terms from data,
// based on Horner's rule: for each block X, y = (y ^ X)·h. If data is not
// a multiple of BlockSize bytes long then the remainder is zero padded.
//
// y is not reset, so successive calls with the same h continue the same
// hash; callers start from the zero block.
func ghash(s *ghashSpace, mul Multiplier, y, h *Block, data []byte) {
	for len(data) >= BlockSize {
		xorBlock(y, (*Block)(data[:BlockSize]))
		mul.Multiply(s.product, y, h, s.v)
		*y = *s.product
		data = data[BlockSize:]
	}

	if len(data) > 0 {
		*s.product = Block{}
		copy(s.product[:], data)
		xorBlock(y, s.product)
		mul.Multiply(s.product, y, h, s.v)
		*y = *s.product
	}
}
