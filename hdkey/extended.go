// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdkey

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// ErrMalformedExtendedKey is returned when an extended-key string does not
// decode to a well-formed envelope.
var ErrMalformedExtendedKey = errors.New("malformed extended key")

// Extended-key version tags, one per (curve, key class) pair. The decoder
// recovers both from the tag alone.
var (
	verEd25519Priv = [4]byte{0xbd, 0x3a, 0xed, 0x25}
	verEd25519Pub  = [4]byte{0xbd, 0x3b, 0xed, 0x25}
	verEd448Priv   = [4]byte{0xbd, 0x3c, 0xed, 0x44}
	verEd448Pub    = [4]byte{0xbd, 0x3d, 0xed, 0x44}
)

// ExtendedKey is the decoded form of an extended-key envelope. For private
// keys, Key holds the 32 bytes of key material; for public keys it holds the
// raw public key bytes.
type ExtendedKey struct {
	Curve             Curve
	Private           bool
	Depth             uint8
	ParentFingerprint [FingerprintLen]byte
	ChildIndex        uint32
	ChainCode         []byte
	Key               []byte
}

// Extended serializes the node as a Base58 extended-key string. With private
// set, the envelope carries the node's key material prefixed by a zero byte;
// otherwise it carries the zero-prefixed public key. The envelope layout is
//
//	version(4) || depth(1) || parent fingerprint(4) ||
//	child index(4, BE) || chain code(32) || key field
//
// and DecodeExtended is its exact inverse.
func (n *Node) Extended(private bool) string {
	version := versionTag(n.curve, private)

	var keyField []byte
	if private {
		keyField = append([]byte{0x00}, n.key...)
	} else {
		keyField = append([]byte{0x00}, n.PublicKey()...)
	}

	envelope := make([]byte, 0, 13+ChainCodeLen+len(keyField))
	envelope = append(envelope, version[:]...)
	envelope = append(envelope, n.depth)
	envelope = append(envelope, n.parentFP[:]...)
	envelope = binary.BigEndian.AppendUint32(envelope, n.index)
	envelope = append(envelope, n.chainCode...)
	envelope = append(envelope, keyField...)

	return base58.Encode(envelope)
}

// DecodeExtended parses a Base58 extended-key string produced by Extended.
// It fails with ErrMalformedExtendedKey on an undecodable payload, an unknown
// version tag, or a length that does not match the version.
func DecodeExtended(s string) (*ExtendedKey, error) {
	envelope, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: not base58: %v", ErrMalformedExtendedKey, err)
	}
	if len(envelope) < 4 {
		return nil, fmt.Errorf("%w: %d bytes is too short for a version tag", ErrMalformedExtendedKey, len(envelope))
	}

	curve, private, err := curveFromVersion(envelope[:4])
	if err != nil {
		return nil, err
	}

	keyLen := keyFieldLen(curve, private)
	if len(envelope) != 13+ChainCodeLen+keyLen {
		return nil, fmt.Errorf("%w: envelope is %d bytes, want %d for a %s %s key",
			ErrMalformedExtendedKey, len(envelope), 13+ChainCodeLen+keyLen, curve, keyClass(private))
	}
	if envelope[13+ChainCodeLen] != 0x00 {
		return nil, fmt.Errorf("%w: key field must start with a zero byte", ErrMalformedExtendedKey)
	}

	ext := &ExtendedKey{
		Curve:      curve,
		Private:    private,
		Depth:      envelope[4],
		ChildIndex: binary.BigEndian.Uint32(envelope[9:13]),
		ChainCode:  append([]byte(nil), envelope[13:13+ChainCodeLen]...),
		Key:        append([]byte(nil), envelope[13+ChainCodeLen+1:]...),
	}
	copy(ext.ParentFingerprint[:], envelope[5:9])
	return ext, nil
}

// Node rebuilds a derivation node from a decoded private extended key.
// Public extended keys carry no key material and cannot become nodes.
func (e *ExtendedKey) Node() (*Node, error) {
	if !e.Private {
		return nil, fmt.Errorf("%w: public extended key cannot rebuild a node", ErrMalformedExtendedKey)
	}
	return &Node{
		curve:     e.Curve,
		key:       append([]byte(nil), e.Key...),
		chainCode: append([]byte(nil), e.ChainCode...),
		depth:     e.Depth,
		parentFP:  e.ParentFingerprint,
		index:     e.ChildIndex,
	}, nil
}

func versionTag(curve Curve, private bool) [4]byte {
	switch {
	case curve == Ed25519 && private:
		return verEd25519Priv
	case curve == Ed25519:
		return verEd25519Pub
	case curve == Ed448 && private:
		return verEd448Priv
	default:
		return verEd448Pub
	}
}

func curveFromVersion(tag []byte) (Curve, bool, error) {
	switch {
	case bytes.Equal(tag, verEd25519Priv[:]):
		return Ed25519, true, nil
	case bytes.Equal(tag, verEd25519Pub[:]):
		return Ed25519, false, nil
	case bytes.Equal(tag, verEd448Priv[:]):
		return Ed448, true, nil
	case bytes.Equal(tag, verEd448Pub[:]):
		return Ed448, false, nil
	}
	return 0, false, fmt.Errorf("%w: unknown version tag %x", ErrMalformedExtendedKey, tag)
}

func keyClass(private bool) string {
	if private {
		return "private"
	}
	return "public"
}

// keyFieldLen returns the key-field size for a version: one prefix byte plus
// 32 bytes of material for private keys, or plus the curve's public key size.
func keyFieldLen(curve Curve, private bool) int {
	if private {
		return 1 + KeyMaterialLen
	}
	if curve == Ed448 {
		return 1 + 57
	}
	return 1 + 32
}
