// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package chainkey

import (
	"fmt"
	"strings"

	"github.com/complex-gh/chainkey/hashchain"
	"github.com/complex-gh/chainkey/hdkey"
)

// Wallet is the record the factory hands back for one derivation. It is a
// plain value object: never mutated after creation, owned by the caller, and
// retired only by an explicit Zeroize.
type Wallet struct {
	KeyType             hdkey.Curve
	HashTypes           []hashchain.Alg
	PrivateKey          string // Base58 of the canonical private key seed
	PublicKeyIdentifier string
	Address             string
	Path                string
	ExtendedPrivateKey  string
	ExtendedPublicKey   string
	Fingerprint         [hdkey.FingerprintLen]byte
	Depth               uint8
	Index               uint32 // hardened child index of the final node
}

// Zeroize blanks the fields holding private key material. Go strings are
// immutable, so the field values are dropped for the collector rather than
// overwritten in place; callers needing stronger guarantees should keep key
// material in byte slices via keypair and wipe those.
func (w *Wallet) Zeroize() {
	w.PrivateKey = ""
	w.ExtendedPrivateKey = ""
}

// String renders the public half of the record. Private key fields are
// deliberately omitted so a logged wallet never leaks secrets.
func (w *Wallet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s", w.PublicKeyIdentifier, w.KeyType)
	for _, alg := range w.HashTypes {
		fmt.Fprintf(&b, "/%s", alg)
	}
	fmt.Fprintf(&b, ") %s at %s", w.Address, w.Path)
	return b.String()
}
