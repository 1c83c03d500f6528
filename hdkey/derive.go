// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/complex-gh/chainkey/secret"
)

// MasterFromSeed derives the depth-0 master node for the given curve from a
// seed. The seed is HMAC-SHA512'd with the curve's fixed key; the first 32
// bytes of the output become the private key material and the last 32 bytes
// the chain code. The seed itself is not retained.
func MasterFromSeed(curve Curve, seed []byte) (*Node, error) {
	hmacKey, err := curve.hmacKey()
	if err != nil {
		return nil, fmt.Errorf("master derivation: %w", err)
	}
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		return nil, fmt.Errorf("master derivation: %w: got %d bytes", ErrInvalidSeed, len(seed))
	}

	mac := hmac.New(sha512.New, hmacKey)
	mac.Write(seed)
	sum := mac.Sum(nil)
	defer secret.Wipe(sum)

	return &Node{
		curve:     curve,
		key:       secret.Dup(sum[:KeyMaterialLen]),
		chainCode: secret.Dup(sum[KeyMaterialLen:]),
	}, nil
}

// Child derives the hardened child of n at index. The hardening bit is
// always forced on, whatever the caller passes: neither supported curve
// allows public-only child derivation safely, so a non-hardened variant does
// not exist in this tree.
func (n *Node) Child(index uint32) (*Node, error) {
	if n.depth == math.MaxUint8 {
		return nil, fmt.Errorf("child derivation at index %d: %w", index, ErrDepthExhausted)
	}
	hardened := index | HardenedOffset

	// 0x00 || parent key material || big-endian hardened index,
	// keyed by the parent chain code.
	data := make([]byte, 1+KeyMaterialLen+4)
	copy(data[1:], n.key)
	binary.BigEndian.PutUint32(data[1+KeyMaterialLen:], hardened)
	defer secret.Wipe(data)

	mac := hmac.New(sha512.New, n.chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	defer secret.Wipe(sum)

	return &Node{
		curve:     n.curve,
		key:       secret.Dup(sum[:KeyMaterialLen]),
		chainCode: secret.Dup(sum[KeyMaterialLen:]),
		depth:     n.depth + 1,
		parentFP:  n.Fingerprint(),
		index:     hardened,
	}, nil
}
