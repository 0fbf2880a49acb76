package ubiqgcm

import (
	"errors"
)

var (
	// ErrInvalidBuffer is returned when a required buffer is missing, too
	// small for the output, or overlaps another buffer of the same call.
	ErrInvalidBuffer = errors.New("ubiqgcm: invalid buffer")

	// ErrUnalignedInput is returned when padded input is not a whole
	// number of blocks.
	ErrUnalignedInput = errors.New("ubiqgcm: input is not a multiple of the block size")

	// ErrEmptyInput is returned when there is neither text nor AAD.
	ErrEmptyInput = errors.New("ubiqgcm: nothing to encrypt or authenticate")

	// ErrSizeOverflow is returned when an input is too long for the
	// single byte length encoding.
	ErrSizeOverflow = errors.New("ubiqgcm: input too large")

	// ErrInsufficientWorkspace is returned when the workspace is smaller
	// than WorkspaceRequired for the operation.
	ErrInsufficientWorkspace = errors.New("ubiqgcm: insufficient workspace")

	// ErrAuthenticationFailed is returned by decryption when the tag does
	// not match. The plaintext buffer has already been written and must
	// be discarded.
	ErrAuthenticationFailed = errors.New("ubiqgcm: message authentication failed")
)
