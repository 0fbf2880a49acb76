package main

import (
	"crypto/rand"
	"errors"
	"io"

	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
)

var errInputTooLarge = errors.New("input exceeds the maximum plaintext size")

// encrypt reads the whole of ifp and writes header, ciphertext
// and tag to ofp
func encrypt(g *ubiqgcm.GCM, ws []byte, key *ubiqgcm.Key, aad []byte,
	ifp io.Reader, ofp io.Writer) error {
	// read one byte more than allowed to detect oversized input
	pt, err := io.ReadAll(io.LimitReader(ifp, ubiqgcm.MaxPlaintextSize+1))
	if err != nil {
		return err
	}
	defer clear(pt)
	if len(pt) > ubiqgcm.MaxPlaintextSize {
		return errInputTooLarge
	}

	var iv ubiqgcm.IV
	if _, err = io.ReadFull(rand.Reader, iv[:]); err != nil {
		return err
	}

	h := header{version: 0}
	h.v0.flags = headerV0FlagAAD
	h.v0.ptlen = uint8(len(pt))
	h.v0.iv = iv[:]
	hdr := h.serialize()

	var tag ubiqgcm.Tag
	ct := make([]byte, (len(pt)+ubiqgcm.BlockSize-1)/ubiqgcm.BlockSize*ubiqgcm.BlockSize)

	err = g.Encrypt(ws, key, &iv, pt, append(hdr[:len(hdr):len(hdr)], aad...), ct, &tag)
	if err == nil {
		_, err = ofp.Write(append(append(hdr, ct...), tag[:]...))
	}

	return err
}
