package ubiqgcm

// FixedTextSize is the text size of the fixed size adaptors: two blocks.
const FixedTextSize = 32

// checkWorkspace is the workspace check used by the adaptors; unlike the
// operations themselves it also reports oversized workspaces, since the
// whole buffer, however large, is cleared on every call.
func (g *GCM) checkWorkspace(op Operation, ws []byte) bool {
	need := WorkspaceRequired(op)
	if !IsWorkspaceSufficient(op, ws) {
		g.log.Errorf("insufficient workspace to %s: %d vs %d", op, len(ws), need)
		return false
	}
	if len(ws) > WorkspaceRequiredMax {
		g.log.Warningf("clearing excess workspace to %s: %d vs %d", op, len(ws), need)
	}
	return true
}

// SealFixed32 encrypts exactly FixedTextSize bytes of plaintext, or
// authenticates aad alone when plaintext is nil, using EncryptPadded.
// When plaintext is nil, ciphertext is left untouched but must still be
// supplied.
func (g *GCM) SealFixed32(ws []byte, key *Key, iv *IV, aad []byte,
	plaintext, ciphertext *[FixedTextSize]byte, tag *Tag) error {
	if key == nil || iv == nil || ciphertext == nil || tag == nil {
		return ErrInvalidBuffer
	}
	if !g.checkWorkspace(OpEncryptPadded, ws) {
		return ErrInsufficientWorkspace
	}

	pt, ct := []byte(nil), ciphertext[:0]
	if plaintext != nil {
		pt, ct = plaintext[:], ciphertext[:]
	}
	return g.EncryptPadded(ws, key, iv, pt, aad, ct, tag)
}

// OpenFixed32 decrypts and authenticates the output of SealFixed32. A nil
// ciphertext authenticates aad alone. As with Decrypt, plaintext is
// written before the tag is checked and must be discarded on error.
func (g *GCM) OpenFixed32(ws []byte, key *Key, iv *IV, aad []byte,
	ciphertext *[FixedTextSize]byte, tag *Tag, plaintext *[FixedTextSize]byte) error {
	if key == nil || iv == nil || tag == nil || plaintext == nil {
		return ErrInvalidBuffer
	}
	if !g.checkWorkspace(OpDecrypt, ws) {
		return ErrInsufficientWorkspace
	}

	var ct, pt []byte
	if ciphertext != nil {
		ct, pt = ciphertext[:], plaintext[:]
	}
	return g.Decrypt(ws, key, iv, ct, aad, tag, pt)
}
