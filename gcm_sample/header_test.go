package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
)

func testHeader() header {
	h := header{version: 0}
	h.v0.flags = headerV0FlagAAD
	h.v0.ptlen = 45
	h.v0.iv = make([]byte, ubiqgcm.IVSize)
	for i := range h.v0.iv {
		h.v0.iv[i] = byte(i)
	}
	return h
}

func TestHeaderSerialize(t *testing.T) {
	hdr := testHeader().serialize()

	require.Len(t, hdr, headerV0FixedSize+ubiqgcm.IVSize)
	assert.Equal(t, []byte{0, headerV0FlagAAD, 45, ubiqgcm.IVSize}, hdr[:headerV0FixedSize])

	h := newHeader(hdr)
	assert.Equal(t, testHeader(), h)
}

func TestHeaderValid(t *testing.T) {
	hdr := testHeader().serialize()

	// every proper prefix might still become valid
	for i := 0; i < len(hdr); i++ {
		assert.Equal(t, 0, headerValid(hdr[:i]), "prefix %d", i)
	}
	assert.Equal(t, len(hdr), headerValid(hdr))
	assert.Equal(t, len(hdr), headerValid(append(hdr, 1, 2, 3)))

	for name, mutate := range map[string]func(b []byte){
		"version": func(b []byte) { b[0] = 1 },
		"flags":   func(b []byte) { b[1] = 0x82 },
		"ptlen":   func(b []byte) { b[2] = ubiqgcm.MaxPlaintextSize + 1 },
		"ivlen":   func(b []byte) { b[3] = 16 },
	} {
		b := append([]byte{}, hdr...)
		mutate(b)
		assert.Equal(t, -1, headerValid(b), name)
	}
}
