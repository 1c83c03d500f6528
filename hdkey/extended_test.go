// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdkey

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/mr-tron/base58"
)

// TestExtended_RoundTrip verifies DecodeExtended is the exact inverse of
// Extended for private and public envelopes on both curves.
func TestExtended_RoundTrip(t *testing.T) {
	for _, curve := range []Curve{Ed25519, Ed448} {
		t.Run(curve.String(), func(t *testing.T) {
			is := is.New(t)

			master, err := MasterFromSeed(curve, make([]byte, 32))
			is.NoErr(err)
			node, err := master.DerivePath("m/44'/1110'/0'/0'/3'")
			is.NoErr(err)

			priv, err := DecodeExtended(node.Extended(true))
			is.NoErr(err)
			is.Equal(priv.Curve, curve)
			is.True(priv.Private)
			is.Equal(priv.Depth, uint8(5))
			is.Equal(priv.ChildIndex, uint32(3)|HardenedOffset)
			is.Equal(priv.ParentFingerprint, node.ParentFingerprint())
			is.Equal(priv.ChainCode, node.ChainCode())
			is.Equal(priv.Key, node.KeyMaterial())

			pub, err := DecodeExtended(node.Extended(false))
			is.NoErr(err)
			is.Equal(pub.Curve, curve)
			is.True(!pub.Private)
			is.Equal(pub.Key, node.PublicKey())
			is.Equal(pub.ChainCode, node.ChainCode())

			// A rebuilt node re-encodes to the identical string.
			rebuilt, err := priv.Node()
			is.NoErr(err)
			is.Equal(rebuilt.Extended(true), node.Extended(true))
			is.Equal(rebuilt.Extended(false), node.Extended(false))
		})
	}
}

// TestExtendedKey_NodeFromPublic verifies a public envelope cannot rebuild a
// derivation node.
func TestExtendedKey_NodeFromPublic(t *testing.T) {
	is := is.New(t)

	master, err := MasterFromSeed(Ed25519, make([]byte, 32))
	is.NoErr(err)

	pub, err := DecodeExtended(master.Extended(false))
	is.NoErr(err)

	_, err = pub.Node()
	is.True(errors.Is(err, ErrMalformedExtendedKey))
}

// TestDecodeExtended_Malformed verifies each malformation is rejected with
// ErrMalformedExtendedKey.
func TestDecodeExtended_Malformed(t *testing.T) {
	is := is.New(t)

	// Not base58 at all.
	_, err := DecodeExtended("0OIl+/=")
	is.True(errors.Is(err, ErrMalformedExtendedKey))

	// Too short for a version tag.
	_, err = DecodeExtended(base58.Encode([]byte{0xbd}))
	is.True(errors.Is(err, ErrMalformedExtendedKey))

	// Unknown version tag.
	_, err = DecodeExtended(base58.Encode(make([]byte, 78)))
	is.True(errors.Is(err, ErrMalformedExtendedKey))

	master, err := MasterFromSeed(Ed25519, make([]byte, 32))
	is.NoErr(err)
	envelope, err := base58.Decode(master.Extended(true))
	is.NoErr(err)

	// Right version, truncated envelope.
	_, err = DecodeExtended(base58.Encode(envelope[:len(envelope)-1]))
	is.True(errors.Is(err, ErrMalformedExtendedKey))

	// Right version, oversized envelope.
	_, err = DecodeExtended(base58.Encode(append(envelope, 0x00)))
	is.True(errors.Is(err, ErrMalformedExtendedKey))

	// Key field must carry its zero prefix byte.
	corrupted := append([]byte(nil), envelope...)
	corrupted[13+ChainCodeLen] = 0x01
	_, err = DecodeExtended(base58.Encode(corrupted))
	is.True(errors.Is(err, ErrMalformedExtendedKey))
}
