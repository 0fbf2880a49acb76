package main

import (
	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
)

// flag indicates that the header is
// part of the authenticated data
const headerV0FlagAAD = 1

// version, flags, plaintext length, iv length
const headerV0FixedSize = 4

// the header is authenticated ahead of the user's aad
const maxUserAADSize = ubiqgcm.MaxAADSize - headerV0FixedSize - ubiqgcm.IVSize

type headerV0 struct {
	// version uint8
	flags uint8
	ptlen uint8
	// ivlen uint8
	iv []byte
}

type header struct {
	version uint8
	v0      headerV0
}

// -1 header isn't valid and never will be
// 0 header isn't valid, but more bytes could change that
// >0 header is valid and contains returned number of bytes
func headerValid(buf []byte) int {
	buflen := len(buf)

	if buflen == 0 {
		return 0
	}

	switch buf[0] {
	case 0:
		if buflen > 1 &&
			(buf[1]&^headerV0FlagAAD) != 0 {
			return -1
		}
		if buflen > 2 &&
			int(buf[2]) > ubiqgcm.MaxPlaintextSize {
			return -1
		}
		if buflen > 3 {
			if int(buf[3]) != ubiqgcm.IVSize {
				return -1
			}

			totlen := headerV0FixedSize + int(buf[3])
			if buflen >= totlen {
				return totlen
			}
		}
		return 0
	}

	return -1
}

func newHeader(buf []byte) header {
	var h header

	// if the header is valid, parse it into
	// a more readily usable data structure

	hdrlen := headerValid(buf)
	if hdrlen > 0 {
		h.version = buf[0]

		if h.version == 0 {
			h.v0.flags = buf[1]
			h.v0.ptlen = buf[2]

			ivlen := int(buf[3])

			h.v0.iv = buf[headerV0FixedSize : headerV0FixedSize+ivlen]
		}
	}

	return h
}

func (h header) serialize() []byte {
	var hdr []byte

	switch h.version {
	case 0:
		// 1 byte for each of version, flags, plaintext length
		// and iv length
		hdr = make([]byte, headerV0FixedSize)

		hdr[0] = h.version
		hdr[1] = h.v0.flags
		hdr[2] = h.v0.ptlen
		hdr[3] = uint8(len(h.v0.iv))

		hdr = append(hdr, h.v0.iv...)
	}

	return hdr
}
