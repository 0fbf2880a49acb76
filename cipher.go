package ubiqgcm

import (
	"crypto/aes"
	goCipher "crypto/cipher"
	"errors"
	"strings"

	"gitlab.com/yawning/bsaes.git"
	"golang.org/x/exp/slices"
	"golang.org/x/sys/cpu"
)

// BlockCipher encrypts exactly one block under a 128-bit key. It must
// behave as a pure function of (src, key) with no other side effects.
// dst and src may be the same block.
type BlockCipher interface {
	EncryptBlock(dst, src *Block, key *Key)
}

// RuntimeAES is AES-128 from the Go runtime (crypto/aes). It is only
// constant time on systems with hardware AES support.
//
// The key schedule is expanded for every block, on the heap, and crypto/aes
// offers no way to clear it, so each call allocates and leaves expanded
// key material for the garbage collector. Use BitslicedAES, or a
// BlockCipher that keeps its schedule in caller owned memory, where
// either matters.
type RuntimeAES struct{}

func (RuntimeAES) EncryptBlock(dst, src *Block, key *Key) {
	encryptBlock(aes.NewCipher, dst, src, key)
}

// BitslicedAES is a constant time, bitsliced AES-128. On systems where
// the runtime implementation is already constant time it defers to it.
// Its schedule is also expanded per block but is cleared through Reset
// before EncryptBlock returns, except when deferring to crypto/aes.
type BitslicedAES struct{}

func (BitslicedAES) EncryptBlock(dst, src *Block, key *Key) {
	encryptBlock(bsaes.NewCipher, dst, src, key)
}

type resetAble interface {
	Reset()
}

func encryptBlock(ctor func([]byte) (goCipher.Block, error),
	dst, src *Block, key *Key) {
	block, err := ctor(key[:])
	if err != nil {
		// a 16 byte key is always accepted
		panic("ubiqgcm: " + err.Error())
	}

	block.Encrypt(dst[:], src[:])

	// scrub the expanded key schedule where the implementation allows it
	if r, ok := block.(resetAble); ok {
		r.Reset()
	}
}

// hardwareAESSafe reports whether the runtime AES and the carry-less
// multiply it pairs with are hardware backed, and thus constant time.
func hardwareAESSafe() bool {
	if cpu.X86.HasAES && cpu.X86.HasPCLMULQDQ {
		return true
	}
	if cpu.ARM64.HasAES && cpu.ARM64.HasPMULL {
		return true
	}
	if cpu.S390X.HasAES && cpu.S390X.HasAESCTR && cpu.S390X.HasGHASH {
		return true
	}
	return false
}

type blockCipherAlgorithm struct {
	name      string
	newCipher func() BlockCipher
}

const (
	blockCipherAuto      = "auto"
	blockCipherRuntime   = "aes"
	blockCipherBitsliced = "bsaes"

	multiplierBitSerial    = "bit-serial"
	multiplierConstantTime = "constant-time"
)

func supportedBlockCiphers() *[]blockCipherAlgorithm {
	return &[]blockCipherAlgorithm{
		{name: blockCipherAuto,
			newCipher: func() BlockCipher {
				if hardwareAESSafe() {
					return RuntimeAES{}
				}
				return BitslicedAES{}
			}},
		{name: blockCipherRuntime,
			newCipher: func() BlockCipher {
				return RuntimeAES{}
			}},
		{name: blockCipherBitsliced,
			newCipher: func() BlockCipher {
				return BitslicedAES{}
			}},
	}
}

type multiplierAlgorithm struct {
	name          string
	newMultiplier func() Multiplier
}

func supportedMultipliers() *[]multiplierAlgorithm {
	return &[]multiplierAlgorithm{
		{name: multiplierBitSerial,
			newMultiplier: func() Multiplier {
				return BitSerial{}
			}},
		{name: multiplierConstantTime,
			newMultiplier: func() Multiplier {
				return ConstantTime{}
			}},
	}
}

func getBlockCipherByName(name string) (BlockCipher, error) {
	lowername := strings.ToLower(name)

	for _, a := range *supportedBlockCiphers() {
		if a.name == lowername {
			return a.newCipher(), nil
		}
	}

	return nil, errors.New("block cipher not found")
}

func getMultiplierByName(name string) (Multiplier, error) {
	lowername := strings.ToLower(name)

	for _, m := range *supportedMultipliers() {
		if m.name == lowername {
			return m.newMultiplier(), nil
		}
	}

	return nil, errors.New("multiplier not found")
}

// BlockCipherNames lists the block cipher names accepted in a
// Configuration, sorted.
func BlockCipherNames() []string {
	var names []string
	for _, a := range *supportedBlockCiphers() {
		names = append(names, a.name)
	}
	slices.Sort(names)
	return names
}

// MultiplierNames lists the multiplier names accepted in a
// Configuration, sorted.
func MultiplierNames() []string {
	var names []string
	for _, m := range *supportedMultipliers() {
		names = append(names, m.name)
	}
	slices.Sort(names)
	return names
}
