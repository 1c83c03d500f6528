// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package account

import (
	"github.com/mr-tron/base58"

	"github.com/complex-gh/chainkey/hashchain"
)

// Address digests must decode to this length range.
const (
	MinAddressBytes = 16
	MaxAddressBytes = 128
)

// AddressOf derives an account address: the hash chain applied to the raw
// public key, Base58-encoded.
func AddressOf(hashTypes []hashchain.Alg, publicKey []byte) (string, error) {
	digest, err := hashchain.Chain(hashTypes, publicKey)
	if err != nil {
		return "", err
	}
	return base58.Encode(digest), nil
}

// IsValidAddress reports whether s is a plausible account address. Unlike
// the identifier parsers it never fails; callers use it for fast boolean
// checks in hot paths. An address is valid when it Base58-decodes to 16 to
// 128 bytes that are neither all zero nor all 0xff.
func IsValidAddress(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	if len(raw) < MinAddressBytes || len(raw) > MaxAddressBytes {
		return false
	}

	allZero, allOnes := true, true
	for _, b := range raw {
		if b != 0x00 {
			allZero = false
		}
		if b != 0xff {
			allOnes = false
		}
	}
	return !allZero && !allOnes
}
