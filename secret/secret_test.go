// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package secret

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

// TestWipe zeroes buffers in place, including nil and empty ones.
func TestWipe(t *testing.T) {
	is := is.New(t)

	buf := []byte{1, 2, 3, 4}
	Wipe(buf)
	is.Equal(buf, []byte{0, 0, 0, 0})

	Wipe(nil)
	Wipe([]byte{})
}

// TestDo_WipesOnEveryExitPath verifies the buffer is wiped after a clean
// return, an error return, and a panic.
func TestDo_WipesOnEveryExitPath(t *testing.T) {
	is := is.New(t)

	clean := []byte{1, 2, 3}
	err := Do(clean, func(b []byte) error {
		is.Equal(b[0], byte(1))
		return nil
	})
	is.NoErr(err)
	is.Equal(clean, []byte{0, 0, 0})

	failed := []byte{4, 5, 6}
	wantErr := errors.New("boom")
	err = Do(failed, func([]byte) error { return wantErr })
	is.True(errors.Is(err, wantErr))
	is.Equal(failed, []byte{0, 0, 0})

	panicked := []byte{7, 8, 9}
	func() {
		defer func() { _ = recover() }()
		_ = Do(panicked, func([]byte) error { panic("boom") })
	}()
	is.Equal(panicked, []byte{0, 0, 0})
}

// TestDup copies are independent of the original.
func TestDup(t *testing.T) {
	is := is.New(t)

	orig := []byte{1, 2, 3}
	dup := Dup(orig)
	Wipe(orig)
	is.Equal(dup, []byte{1, 2, 3})
	is.Equal(Dup(nil), []byte{})
}
