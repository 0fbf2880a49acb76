package ubiqgcm

import (
	bsghash "gitlab.com/yawning/bsaes.git/ghash"
)

// Multiplier computes products in GF(2¹²⁸) under the GCM reduction
// polynomial 1+x+x²+x⁷+x¹²⁸, using the GCM bit ordering (the first bit
// of the first byte is the coefficient of x⁰).
//
// Multiply sets z = x·y. v is one block of working storage taken from the
// caller's workspace; implementations that do not need it leave it alone.
// z must not alias x, y or v.
type Multiplier interface {
	Multiply(z, x, y, v *Block)
}

// BitSerial is the shift-and-add multiplier of NIST SP 800-38D,
// algorithm 1. It walks the bits of x from the most significant end and
// branches on their values, so its timing depends on x. That is
// acceptable where x is not an attacker-observable secret channel; use
// ConstantTime otherwise.
type BitSerial struct{}

func (BitSerial) Multiply(z, x, y, v *Block) {
	*z = Block{}
	*v = *y

	for i := 0; i < BlockSize; i++ {
		for j := 7; j >= 0; j-- {
			if (x[i]>>uint(j))&1 == 1 {
				// Z_(i+1) = Z_i ^ V_i
				xorBlock(z, v)
			}

			// V_(i+1) = V_i >> 1, reduced by R = 11100001 || 0¹²⁰
			// when the bit shifted out was set
			lsb := v[BlockSize-1] & 1
			shiftBlockRight(v)
			if lsb == 1 {
				v[0] ^= 0xe1
			}
		}
	}
}

// ConstantTime multiplies with a table-free, branch-free carry-less
// multiply, so its timing does not depend on either operand.
type ConstantTime struct{}

func (ConstantTime) Multiply(z, x, y, _ *Block) {
	// one GHASH step over a single block from a zero accumulator is
	// exactly (0 ^ x)·y
	*z = Block{}
	bsghash.Ghash((*[BlockSize]byte)(z), (*[BlockSize]byte)(y), x[:])
}
