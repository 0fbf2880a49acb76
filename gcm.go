package ubiqgcm

import (
	"gopkg.in/op/go-logging.v1"

	"gitlab.com/ubiqsecurity/ubiq-gcm-go/internal/log"
)

// Length limits imposed by the single byte length encoding. The bit
// length of every input fits in the 16 bits populated in the GHASH
// length block, so lengths never wrap.
const (
	// MaxAADSize is the largest AAD accepted by any operation.
	MaxAADSize = 255
	// MaxPlaintextSize is the largest plaintext accepted by Encrypt; its
	// round up to the block size must still fit in one byte.
	MaxPlaintextSize = 255 - BlockSize
	// MaxPaddedSize is the largest block aligned text accepted by
	// EncryptPadded and Decrypt.
	MaxPaddedSize = 256 - BlockSize
)

const logModule = "ubiqgcm"

// GCM performs single shot AES-128-GCM operations in caller supplied
// workspaces. A GCM holds no secrets and no per-operation state; it may
// be shared by concurrent callers provided each uses its own workspace.
//
// The length fields hashed into the tag are the low 16 bits of the
// standard 64 bit fields, and the unpadded Encrypt authenticates its
// ciphertext rounded up to whole blocks. For block aligned input this is
// identical to standard GCM.
type GCM struct {
	cipher BlockCipher
	mul    Multiplier
	log    *logging.Logger
}

// NewGCM returns a GCM over the given block cipher. A nil mul selects
// BitSerial. Diagnostics are discarded.
func NewGCM(cipher BlockCipher, mul Multiplier) *GCM {
	if mul == nil {
		mul = BitSerial{}
	}
	return &GCM{cipher: cipher, mul: mul, log: log.Discard(logModule)}
}

// NewGCMWithConfiguration returns a GCM whose block cipher, multiplier
// and logging are chosen by cfg.
func NewGCMWithConfiguration(cfg Configuration) (*GCM, error) {
	var c BlockCipher
	var m Multiplier
	var b *log.Backend

	err := cfg.validate()
	if err == nil {
		c, err = getBlockCipherByName(cfg.Cipher.BlockCipher)
	}
	if err == nil {
		m, err = getMultiplierByName(cfg.Cipher.Multiplier)
	}
	if err == nil {
		b, err = log.New(cfg.Logging.File, cfg.Logging.Level, !cfg.Logging.Verbose)
	}
	if err != nil {
		return nil, err
	}

	g := &GCM{cipher: c, mul: m, log: b.GetLogger(logModule)}
	g.log.Debugf("using block cipher %T, multiplier %T", c, m)
	return g, nil
}

// Encrypt encrypts plaintext, which need not be block aligned, and
// authenticates it together with aad.
//
// ciphertext must be non-nil and hold at least len(plaintext) rounded up
// to a whole number of blocks; that many bytes are written, the bytes
// past len(plaintext) being zero. An empty plaintext computes a GMAC tag
// over aad alone. ws must be at least
// WorkspaceRequiredEnc bytes and is zeroed before Encrypt returns.
//
// No buffer may overlap another. An output overlapping any input, or any
// buffer overlapping ws, fails with ErrInvalidBuffer.
func (g *GCM) Encrypt(ws []byte, key *Key, iv *IV,
	plaintext, aad, ciphertext []byte, tag *Tag) error {
	if key == nil || iv == nil || tag == nil || ciphertext == nil {
		return ErrInvalidBuffer
	}
	if len(plaintext) == 0 && len(aad) == 0 {
		return ErrEmptyInput
	}
	if len(plaintext) > MaxPlaintextSize || len(aad) > MaxAADSize {
		g.log.Debugf("encrypt: rejecting %d bytes of plaintext, %d of aad",
			len(plaintext), len(aad))
		return ErrSizeOverflow
	}

	cdataLen := roundUp(len(plaintext))
	if len(ciphertext) < cdataLen {
		return ErrInvalidBuffer
	}
	ciphertext = ciphertext[:cdataLen]
	if overlapsAny(ciphertext, plaintext, aad, key[:], iv[:], tag[:]) ||
		overlapsAny(ws, key[:], iv[:], tag[:], plaintext, aad, ciphertext) {
		return ErrInvalidBuffer
	}

	if !IsWorkspaceSufficient(OpEncrypt, ws) {
		g.log.Errorf("insufficient workspace to encrypt: %d vs %d",
			len(ws), WorkspaceRequiredEnc)
		return ErrInsufficientWorkspace
	}

	w := newWorkspace(ws)
	defer w.wipe()
	s := w.encrypt()

	deriveAuthKey(g.cipher, key, s.h)
	deriveICB(iv, s.j0)

	generateCDATA(&s.cdata, g.cipher, key, s.j0, plaintext, ciphertext)
	// the tag covers whole blocks; pin the padding
	for i := len(plaintext); i < cdataLen; i++ {
		ciphertext[i] = 0
	}

	generateTag(&s.tag, g.cipher, g.mul,
		key, s.h, aad, ciphertext, s.j0, (*Block)(tag))

	return nil
}

// EncryptPadded is Encrypt for plaintext that is already a whole number
// of blocks, which it requires. A nil or empty plaintext computes a GMAC
// tag over aad alone; ciphertext must still be non-nil. ws must be at
// least WorkspaceRequiredEncPadded bytes and is zeroed before
// EncryptPadded returns.
func (g *GCM) EncryptPadded(ws []byte, key *Key, iv *IV,
	plaintext, aad, ciphertext []byte, tag *Tag) error {
	if key == nil || iv == nil || tag == nil || ciphertext == nil {
		return ErrInvalidBuffer
	}
	if len(plaintext)%BlockSize != 0 {
		return ErrUnalignedInput
	}
	if len(plaintext) == 0 && len(aad) == 0 {
		return ErrEmptyInput
	}
	if len(plaintext) > MaxPaddedSize || len(aad) > MaxAADSize {
		g.log.Debugf("encrypt-padded: rejecting %d bytes of plaintext, %d of aad",
			len(plaintext), len(aad))
		return ErrSizeOverflow
	}
	if len(ciphertext) < len(plaintext) {
		return ErrInvalidBuffer
	}
	ciphertext = ciphertext[:len(plaintext)]
	if overlapsAny(ciphertext, plaintext, aad, key[:], iv[:], tag[:]) ||
		overlapsAny(ws, key[:], iv[:], tag[:], plaintext, aad, ciphertext) {
		return ErrInvalidBuffer
	}

	if !IsWorkspaceSufficient(OpEncryptPadded, ws) {
		g.log.Errorf("insufficient workspace to encrypt-padded: %d vs %d",
			len(ws), WorkspaceRequiredEncPadded)
		return ErrInsufficientWorkspace
	}

	w := newWorkspace(ws)
	defer w.wipe()
	s := w.encryptPadded()

	deriveAuthKey(g.cipher, key, s.h)
	deriveICB(iv, s.j0)

	generateCDATAPadded(&s.cdata, g.cipher, key, s.j0, plaintext, ciphertext)
	generateTag(&s.tag, g.cipher, g.mul,
		key, s.h, aad, ciphertext, s.j0, (*Block)(tag))

	return nil
}

// Decrypt decrypts ciphertext, which must be a whole number of blocks,
// into plaintext and checks tag against ciphertext and aad.
//
// The plaintext is written BEFORE the tag is checked. When Decrypt
// returns ErrAuthenticationFailed, plaintext holds unauthenticated data
// that the caller must discard; only the workspace is cleared.
//
// plaintext must hold at least len(ciphertext) bytes. ws must be at least
// WorkspaceRequiredDec bytes and is zeroed before Decrypt returns.
func (g *GCM) Decrypt(ws []byte, key *Key, iv *IV,
	ciphertext, aad []byte, tag *Tag, plaintext []byte) error {
	if key == nil || iv == nil || tag == nil {
		return ErrInvalidBuffer
	}
	if len(ciphertext) == 0 && len(aad) == 0 {
		return ErrEmptyInput
	}
	if len(ciphertext)%BlockSize != 0 {
		return ErrUnalignedInput
	}
	if len(ciphertext) > MaxPaddedSize || len(aad) > MaxAADSize {
		g.log.Debugf("decrypt: rejecting %d bytes of ciphertext, %d of aad",
			len(ciphertext), len(aad))
		return ErrSizeOverflow
	}
	if len(plaintext) < len(ciphertext) {
		return ErrInvalidBuffer
	}
	plaintext = plaintext[:len(ciphertext)]
	if overlapsAny(plaintext, ciphertext, aad, key[:], iv[:], tag[:]) ||
		overlapsAny(ws, key[:], iv[:], tag[:], ciphertext, aad, plaintext) {
		return ErrInvalidBuffer
	}

	if !IsWorkspaceSufficient(OpDecrypt, ws) {
		g.log.Errorf("insufficient workspace to decrypt: %d vs %d",
			len(ws), WorkspaceRequiredDec)
		return ErrInsufficientWorkspace
	}

	w := newWorkspace(ws)
	defer w.wipe()
	s := w.decrypt()

	deriveAuthKey(g.cipher, key, s.h)
	deriveICB(iv, s.j0)

	generateCDATAPadded(&s.cdata, g.cipher, key, s.j0, ciphertext, plaintext)
	generateTag(&s.tag, g.cipher, g.mul,
		key, s.h, aad, ciphertext, s.j0, s.calculated)

	if !TagsEqual((*Tag)(s.calculated), tag) {
		return ErrAuthenticationFailed
	}
	return nil
}
