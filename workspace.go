package ubiqgcm

import (
	"runtime"
)

// Operation identifies an operation variant for workspace sizing.
type Operation int

const (
	OpEncrypt Operation = iota
	OpEncryptPadded
	OpDecrypt
)

func (op Operation) String() string {
	switch op {
	case OpEncrypt:
		return "encrypt"
	case OpEncryptPadded:
		return "encrypt-padded"
	case OpDecrypt:
		return "decrypt"
	}
	return "unknown"
}

// scratch sizes of the nested workspace layouts, in bytes
const (
	ghashSpaceSize       = 2 * BlockSize
	gctrSpaceSize        = 2 * BlockSize
	gctrPaddedSpaceSize  = BlockSize
	cdataSpaceSize       = BlockSize + gctrSpaceSize
	cdataPaddedSpaceSize = BlockSize + gctrPaddedSpaceSize
	tagSpaceSize         = 2*BlockSize + ghashSpaceSize + gctrPaddedSpaceSize
)

// Minimum workspace sizes, in bytes, for each operation. Allocate one of
// these (or WorkspaceRequiredMax to serve every operation) up front and
// pass it to each call.
const (
	// H, J0, data stream, tag
	WorkspaceRequiredEnc = 2*BlockSize + cdataSpaceSize + tagSpaceSize
	// H, J0, padded data stream, tag
	WorkspaceRequiredEncPadded = 2*BlockSize + cdataPaddedSpaceSize + tagSpaceSize
	// H, J0, calculated tag, padded data stream, tag
	WorkspaceRequiredDec = 3*BlockSize + cdataPaddedSpaceSize + tagSpaceSize

	WorkspaceRequiredMax = max(WorkspaceRequiredEnc, WorkspaceRequiredEncPadded, WorkspaceRequiredDec)
)

// WorkspaceRequired returns the minimum workspace size for op, or -1 if
// op is not a known operation.
func WorkspaceRequired(op Operation) int {
	switch op {
	case OpEncrypt:
		return WorkspaceRequiredEnc
	case OpEncryptPadded:
		return WorkspaceRequiredEncPadded
	case OpDecrypt:
		return WorkspaceRequiredDec
	}
	return -1
}

// IsWorkspaceSufficient reports whether ws is large enough for op.
func IsWorkspaceSufficient(op Operation, ws []byte) bool {
	n := WorkspaceRequired(op)
	return n > 0 && len(ws) >= n
}

// workspace hands out consecutive blocks of a caller supplied buffer.
// The buffer must already have been checked with IsWorkspaceSufficient
// for the layout being carved.
type workspace struct {
	buf []byte
	off int
}

func newWorkspace(buf []byte) workspace {
	return workspace{buf: buf}
}

func (w *workspace) block() *Block {
	b := (*Block)(w.buf[w.off : w.off+BlockSize])
	w.off += BlockSize
	return b
}

func (w *workspace) ghash() ghashSpace {
	return ghashSpace{product: w.block(), v: w.block()}
}

func (w *workspace) gctr() gctrSpace {
	return gctrSpace{counter: w.block(), mask: w.block()}
}

func (w *workspace) gctrPadded() gctrPaddedSpace {
	return gctrPaddedSpace{counter: w.block()}
}

func (w *workspace) cdata() cdataSpace {
	return cdataSpace{counter: w.block(), gctr: w.gctr()}
}

func (w *workspace) cdataPadded() cdataPaddedSpace {
	return cdataPaddedSpace{counter: w.block(), gctr: w.gctrPadded()}
}

func (w *workspace) tag() tagSpace {
	return tagSpace{
		lengths: w.block(),
		s:       w.block(),
		ghash:   w.ghash(),
		gctr:    w.gctrPadded(),
	}
}

type encryptSpace struct {
	h, j0 *Block
	cdata cdataSpace
	tag   tagSpace
}

func (w *workspace) encrypt() encryptSpace {
	return encryptSpace{
		h:     w.block(),
		j0:    w.block(),
		cdata: w.cdata(),
		tag:   w.tag(),
	}
}

type encryptPaddedSpace struct {
	h, j0 *Block
	cdata cdataPaddedSpace
	tag   tagSpace
}

func (w *workspace) encryptPadded() encryptPaddedSpace {
	return encryptPaddedSpace{
		h:     w.block(),
		j0:    w.block(),
		cdata: w.cdataPadded(),
		tag:   w.tag(),
	}
}

type decryptSpace struct {
	h, j0, calculated *Block
	cdata             cdataPaddedSpace
	tag               tagSpace
}

func (w *workspace) decrypt() decryptSpace {
	return decryptSpace{
		h:          w.block(),
		j0:         w.block(),
		calculated: w.block(),
		cdata:      w.cdataPadded(),
		tag:        w.tag(),
	}
}

// wipe zeroes the entire buffer, including any excess beyond what the
// operation used.
func (w *workspace) wipe() {
	wipe(w.buf)
}

//go:noinline
func wipe(p []byte) {
	for i := range p {
		p[i] = 0
	}
	runtime.KeepAlive(p)
}
