package main

import (
	"errors"
	"io"

	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
)

var (
	errInvalidHeader = errors.New("invalid or truncated header")
	errInvalidLength = errors.New("ciphertext length does not match header")
)

// decrypt reads the output of encrypt from ifp and writes the
// plaintext to ofp. nothing is written unless the tag is valid.
func decrypt(g *ubiqgcm.GCM, ws []byte, key *ubiqgcm.Key, aad []byte,
	ifp io.Reader, ofp io.Writer) error {
	// header, the largest ciphertext, and the tag
	const maxSize = headerV0FixedSize + ubiqgcm.IVSize +
		ubiqgcm.MaxPaddedSize + ubiqgcm.TagSize

	buf, err := io.ReadAll(io.LimitReader(ifp, maxSize+1))
	if err != nil {
		return err
	}

	hdrlen := headerValid(buf)
	if hdrlen <= 0 {
		return errInvalidHeader
	}
	h := newHeader(buf)

	body := buf[hdrlen:]
	ptlen := int(h.v0.ptlen)
	ctlen := (ptlen + ubiqgcm.BlockSize - 1) / ubiqgcm.BlockSize * ubiqgcm.BlockSize
	if len(body) != ctlen+ubiqgcm.TagSize {
		return errInvalidLength
	}

	var iv ubiqgcm.IV
	var tag ubiqgcm.Tag
	copy(iv[:], h.v0.iv)
	copy(tag[:], body[ctlen:])

	var ad []byte
	if h.v0.flags&headerV0FlagAAD != 0 {
		ad = append(ad, buf[:hdrlen]...)
	}
	ad = append(ad, aad...)

	pt := make([]byte, ctlen)
	defer clear(pt)

	err = g.Decrypt(ws, key, &iv, body[:ctlen], ad, &tag, pt)
	if err == nil {
		_, err = ofp.Write(pt[:ptlen])
	}

	return err
}
