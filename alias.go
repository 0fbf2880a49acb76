package ubiqgcm

import (
	"unsafe"
)

// anyOverlap reports whether x and y share any memory.
func anyOverlap(x, y []byte) bool {
	return len(x) > 0 && len(y) > 0 &&
		uintptr(unsafe.Pointer(&x[0])) <= uintptr(unsafe.Pointer(&y[len(y)-1])) &&
		uintptr(unsafe.Pointer(&y[0])) <= uintptr(unsafe.Pointer(&x[len(x)-1]))
}

// overlapsAny reports whether x shares memory with any of bufs.
func overlapsAny(x []byte, bufs ...[]byte) bool {
	for _, b := range bufs {
		if anyOverlap(x, b) {
			return true
		}
	}
	return false
}
