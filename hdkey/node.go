// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package hdkey implements hardened-only hierarchical-deterministic key
// derivation over the two supported signature curves.
//
// A master node is derived from a seed with HMAC-SHA512 keyed by a
// curve-specific constant; children are derived hardened-only, so a node's
// public key can never be used to derive siblings. Every derivation step
// returns a new node; nodes are never mutated in place. A node's lifetime
// ends when the caller wipes it with Zeroize.
package hdkey

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"
	"golang.org/x/crypto/sha3"

	"github.com/complex-gh/chainkey/secret"
)

// Curve tags one of the two supported signature curve families. The tag is
// shared by the whole module: key pairs, identifiers, and wallet options all
// dispatch on it.
type Curve uint8

const (
	// Ed25519 is the Edwards 25519 curve (64-byte signatures).
	Ed25519 Curve = iota + 1
	// Ed448 is the Edwards 448 "Goldilocks" curve (114-byte signatures).
	Ed448
)

const (
	// HardenedOffset is the child-index bit marking hardened derivation.
	HardenedOffset uint32 = 0x80000000

	// MinSeedBytes and MaxSeedBytes bound the accepted seed length.
	MinSeedBytes = 16
	MaxSeedBytes = 64

	// KeyMaterialLen and ChainCodeLen are the sizes of the two halves of
	// every HMAC-SHA512 derivation output.
	KeyMaterialLen = 32
	ChainCodeLen   = 32

	// FingerprintLen is the size of a node fingerprint.
	FingerprintLen = 4
)

var (
	// ErrUnknownCurve is returned for a Curve outside the supported set.
	ErrUnknownCurve = errors.New("unknown curve")
	// ErrInvalidSeed is returned for an empty seed or one of disallowed length.
	ErrInvalidSeed = fmt.Errorf("seed must be %d to %d bytes", MinSeedBytes, MaxSeedBytes)
	// ErrInvalidPath is returned for a malformed derivation path string.
	ErrInvalidPath = errors.New("invalid derivation path")
	// ErrDepthExhausted is returned when deriving below the deepest level.
	ErrDepthExhausted = errors.New("derivation depth exhausted")
)

// String returns the lowercase curve name.
func (c Curve) String() string {
	switch c {
	case Ed25519:
		return "ed25519"
	case Ed448:
		return "ed448"
	}
	return fmt.Sprintf("curve(%d)", uint8(c))
}

// ParseCurve maps a curve name (as printed by String) to its Curve.
func ParseCurve(name string) (Curve, error) {
	switch name {
	case "ed25519":
		return Ed25519, nil
	case "ed448":
		return Ed448, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}

// hmacKey returns the fixed HMAC key used for master derivation on c.
func (c Curve) hmacKey() ([]byte, error) {
	switch c {
	case Ed25519:
		return []byte("ed25519 seed"), nil
	case Ed448:
		return []byte("ed448 seed"), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownCurve, uint8(c))
}

// Node is one node of the hardened-only derivation tree. The zero value is
// not usable; nodes are created by MasterFromSeed, Child, or DerivePath.
type Node struct {
	curve     Curve
	key       []byte // 32 bytes of private key material
	chainCode []byte // 32 bytes
	depth     uint8
	parentFP  [FingerprintLen]byte
	index     uint32 // top bit set for every node below the master
}

// Curve returns the node's curve tag.
func (n *Node) Curve() Curve { return n.curve }

// Depth returns the node's depth; the master node is at depth 0.
func (n *Node) Depth() uint8 { return n.depth }

// Index returns the node's child index, hardening bit included.
// The master node's index is 0.
func (n *Node) Index() uint32 { return n.index }

// ParentFingerprint returns the fingerprint of the node's parent.
// It is all zeros for the master node.
func (n *Node) ParentFingerprint() [FingerprintLen]byte { return n.parentFP }

// KeyMaterial returns a copy of the node's raw private key material.
// The caller owns the copy and should wipe it when done.
func (n *Node) KeyMaterial() []byte { return secret.Dup(n.key) }

// ChainCode returns a copy of the node's chain code.
func (n *Node) ChainCode() []byte { return secret.Dup(n.chainCode) }

// PrivateKeySeed returns a copy of the canonical curve seed for the node's
// key material: the 32 bytes as-is for Ed25519, or a 57-byte SHAKE256
// expansion for Ed448 (whose native seed is longer than the material an HMAC
// split can carry). The expansion is deterministic, so the same node always
// yields the same key. The caller owns the copy.
func (n *Node) PrivateKeySeed() []byte {
	switch n.curve {
	case Ed448:
		seed := make([]byte, ed448.SeedSize)
		sha3.ShakeSum256(seed, n.key)
		return seed
	default:
		return secret.Dup(n.key)
	}
}

// PublicKey returns the raw public key for the node's private key material,
// computed by the curve's base-point multiplication.
func (n *Node) PublicKey() []byte {
	seed := n.PrivateKeySeed()
	defer secret.Wipe(seed)

	switch n.curve {
	case Ed25519:
		priv := ed25519.NewKeyFromSeed(seed)
		defer secret.Wipe(priv)
		return secret.Dup(priv[ed25519.SeedSize:])
	case Ed448:
		priv := ed448.NewKeyFromSeed(seed)
		defer secret.Wipe(priv)
		pub := priv.Public().(ed448.PublicKey)
		return secret.Dup(pub)
	}
	return nil
}

// Fingerprint returns the first FingerprintLen bytes of SHA-256 of the
// node's public key. It marks the node's children as theirs.
func (n *Node) Fingerprint() [FingerprintLen]byte {
	pub := n.PublicKey()
	sum := sha256.Sum256(pub)

	var fp [FingerprintLen]byte
	copy(fp[:], sum[:FingerprintLen])
	return fp
}

// Zeroize wipes the node's private key material and chain code. The node
// must not be used afterwards.
func (n *Node) Zeroize() {
	secret.Wipe(n.key)
	secret.Wipe(n.chainCode)
}
