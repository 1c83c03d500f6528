// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package keypair unifies the two supported signature curves behind one
// sign/verify contract. A key pair carries exactly one curve tag; dispatch
// happens on the tag, never on the shape of the key bytes.
package keypair

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"

	"github.com/complex-gh/chainkey/hdkey"
	"github.com/complex-gh/chainkey/secret"
)

// Signature sizes are fixed per curve and Sign output always matches exactly.
const (
	Ed25519SignatureSize = ed25519.SignatureSize
	Ed448SignatureSize   = ed448.SignatureSize
)

var (
	// ErrInvalidPrivateKey is returned for private key bytes of a length the
	// curve does not accept.
	ErrInvalidPrivateKey = errors.New("invalid private key length")
	// ErrNoKey is returned when signing with a zero-value or wiped key pair.
	ErrNoKey = errors.New("key pair holds no private key")
)

// KeyPair holds one curve-tagged private/public key pair.
type KeyPair struct {
	curve hdkey.Curve
	seed  []byte // canonical private key seed: 32 bytes (Ed25519) or 57 (Ed448)
	pub   []byte
}

// FromPrivateKey builds a key pair from raw private key bytes for the given
// curve. Canonical sizes are 32 bytes for Ed25519 and 57 for Ed448. Legacy
// double-length encodings (the seed with the public key appended: 64 and 114
// bytes) are accepted and reduced to their canonical prefix; the prefix alone
// decides which key is produced, so the reduction is deterministic and never
// changes the key a canonical-prefix encoding names.
func FromPrivateKey(curve hdkey.Curve, raw []byte) (*KeyPair, error) {
	canonical, err := canonicalSeed(curve, raw)
	if err != nil {
		return nil, err
	}
	kp := &KeyPair{curve: curve, seed: canonical}

	switch curve {
	case hdkey.Ed25519:
		priv := ed25519.NewKeyFromSeed(canonical)
		defer secret.Wipe(priv)
		kp.pub = secret.Dup(priv[ed25519.SeedSize:])
	case hdkey.Ed448:
		priv := ed448.NewKeyFromSeed(canonical)
		defer secret.Wipe(priv)
		kp.pub = secret.Dup(priv.Public().(ed448.PublicKey))
	}
	return kp, nil
}

// FromHDNode builds a key pair from a derivation node, using the node's
// canonical private key seed for its curve.
func FromHDNode(node *hdkey.Node) (*KeyPair, error) {
	seed := node.PrivateKeySeed()
	defer secret.Wipe(seed)
	return FromPrivateKey(node.Curve(), seed)
}

// canonicalSeed validates raw and returns a fresh copy of its canonical
// prefix.
func canonicalSeed(curve hdkey.Curve, raw []byte) ([]byte, error) {
	var want int
	switch curve {
	case hdkey.Ed25519:
		want = ed25519.SeedSize
	case hdkey.Ed448:
		want = ed448.SeedSize
	default:
		return nil, fmt.Errorf("%w: %d", hdkey.ErrUnknownCurve, uint8(curve))
	}
	if len(raw) != want && len(raw) != 2*want {
		return nil, fmt.Errorf("%w: %s takes %d or %d bytes, got %d",
			ErrInvalidPrivateKey, curve, want, 2*want, len(raw))
	}
	return secret.Dup(raw[:want]), nil
}

// Curve returns the key pair's curve tag.
func (kp *KeyPair) Curve() hdkey.Curve { return kp.curve }

// PublicKey returns a copy of the raw public key bytes.
func (kp *KeyPair) PublicKey() []byte { return secret.Dup(kp.pub) }

// PrivateKey returns a copy of the canonical private key seed. The caller
// owns the copy and should wipe it when done.
func (kp *KeyPair) PrivateKey() []byte { return secret.Dup(kp.seed) }

// SignatureSize returns the fixed signature size for the key pair's curve.
func (kp *KeyPair) SignatureSize() int {
	if kp.curve == hdkey.Ed448 {
		return Ed448SignatureSize
	}
	return Ed25519SignatureSize
}

// Sign signs message and returns a signature of exactly SignatureSize bytes.
func (kp *KeyPair) Sign(message []byte) ([]byte, error) {
	if len(kp.seed) == 0 {
		return nil, ErrNoKey
	}
	switch kp.curve {
	case hdkey.Ed25519:
		priv := ed25519.NewKeyFromSeed(kp.seed)
		defer secret.Wipe(priv)
		return ed25519.Sign(priv, message), nil
	case hdkey.Ed448:
		priv := ed448.NewKeyFromSeed(kp.seed)
		defer secret.Wipe(priv)
		return ed448.Sign(priv, message, ""), nil
	}
	return nil, fmt.Errorf("%w: %d", hdkey.ErrUnknownCurve, uint8(kp.curve))
}

// Verify reports whether signature is a valid signature of message under the
// key pair's public key. It never fails: any malformed, truncated, or
// mismatched signature simply yields false.
func (kp *KeyPair) Verify(message, signature []byte) bool {
	if len(signature) != kp.SignatureSize() {
		return false
	}
	switch kp.curve {
	case hdkey.Ed25519:
		if len(kp.pub) != ed25519.PublicKeySize {
			return false
		}
		return ed25519.Verify(ed25519.PublicKey(kp.pub), message, signature)
	case hdkey.Ed448:
		if len(kp.pub) != ed448.PublicKeySize {
			return false
		}
		return ed448.Verify(ed448.PublicKey(kp.pub), message, signature, "")
	}
	return false
}

// Zeroize wipes the private key seed. The key pair can still verify but can
// no longer sign.
func (kp *KeyPair) Zeroize() {
	secret.Wipe(kp.seed)
	kp.seed = nil
}
