// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package secret provides scoped handling of sensitive byte buffers.
//
// Seeds, private key material, and chain codes are exclusively owned by the
// caller that received them. Wrapping their use in Do guarantees the buffer
// is zeroed on every exit path, including early returns and panics, instead
// of relying on a clear method the caller may forget to call.
package secret

// Wipe overwrites b with zeros. It is safe to call on a nil or empty slice.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Do runs fn with buf and wipes buf when fn returns, on every exit path.
func Do(buf []byte, fn func([]byte) error) error {
	defer Wipe(buf)
	return fn(buf)
}

// Dup returns a fresh copy of b so the original can be wiped independently.
func Dup(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
