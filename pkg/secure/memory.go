// Package secure provides best-effort wiping of key material from
// memory. Go gives no hard guarantees about copies made by the runtime,
// so this reduces exposure rather than eliminating it.
package secure

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites a byte slice with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ClearBytes zeroes a slice and drops the reference.
func ClearBytes(b *[]byte) {
	if b == nil || *b == nil {
		return
	}
	Zero(*b)
	*b = nil
}

// ConstantTimeCompare reports whether x and y are equal without
// leaking where they differ through timing.
func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}
