// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package account encodes and decodes the self-describing public-key
// identifier grammar and derives addresses from it.
//
// An identifier is
//
//	key-type token ++ "_" ++ hash-stage tokens ++ "_" ++ base58(public key)
//
// for example "A_c_..." for an Ed25519 key whose address is a single
// SHA3-256 stage. The tokens record exactly the curve and hash chain that
// produced the account, so parsing always recovers what encoding used. Two
// reserved literal identifiers, Contract and Governance, denote non-derived
// accounts and carry no key or hash metadata at all.
package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/complex-gh/chainkey/hashchain"
	"github.com/complex-gh/chainkey/hdkey"
)

// Reserved literal identifiers for non-derived accounts. They bypass the
// token grammar entirely and are accepted and returned as opaque strings.
const (
	Contract   = "contract"
	Governance = "governance"
)

var (
	// ErrMalformedIdentifier is returned for a string that does not follow
	// the identifier grammar.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrReservedIdentifier is returned when a caller asks a reserved
	// identifier for key or hash metadata it does not carry.
	ErrReservedIdentifier = errors.New("reserved identifier carries no key metadata")
)

// keyTypeToken returns the identifier token for a curve.
func keyTypeToken(curve hdkey.Curve) (string, error) {
	switch curve {
	case hdkey.Ed25519:
		return "A", nil
	case hdkey.Ed448:
		return "B", nil
	}
	return "", fmt.Errorf("%w: %d", hdkey.ErrUnknownCurve, uint8(curve))
}

// curveFromToken is the inverse of keyTypeToken.
func curveFromToken(tok string) (hdkey.Curve, error) {
	switch tok {
	case "A":
		return hdkey.Ed25519, nil
	case "B":
		return hdkey.Ed448, nil
	}
	return 0, fmt.Errorf("%w: unknown key-type token %q", ErrMalformedIdentifier, tok)
}

// IsReserved reports whether id is one of the reserved non-derived
// identifiers. Reserved identifiers are matched on their literal prefix and
// never enter the token grammar.
func IsReserved(id string) bool {
	return strings.HasPrefix(id, Contract) || strings.HasPrefix(id, Governance)
}

// EncodeIdentifier encodes a public-key identifier from a curve tag, the
// hash-chain spec used for the account's address (one stage token per entry,
// in hashing order), and the raw public key bytes.
func EncodeIdentifier(keyType hdkey.Curve, hashTypes []hashchain.Alg, publicKey []byte) (string, error) {
	keyTok, err := keyTypeToken(keyType)
	if err != nil {
		return "", err
	}
	if len(publicKey) == 0 {
		return "", fmt.Errorf("%w: empty public key", ErrMalformedIdentifier)
	}

	var b strings.Builder
	b.WriteString(keyTok)
	b.WriteByte('_')
	for _, alg := range hashTypes {
		tok, err := alg.Token()
		if err != nil {
			return "", err
		}
		b.WriteString(tok)
	}
	b.WriteByte('_')
	b.WriteString(base58.Encode(publicKey))
	return b.String(), nil
}

// identifier is the fully parsed form of a derived identifier.
type identifier struct {
	curve   hdkey.Curve
	algs    []hashchain.Alg
	payload string
}

// parseIdentifier walks the token grammar from the start of the string:
// a key-type token, zero or more hash-stage tokens, and the Base58 payload.
// Reserved identifiers are rejected with ErrReservedIdentifier since they
// carry none of those.
func parseIdentifier(id string) (*identifier, error) {
	if IsReserved(id) {
		return nil, fmt.Errorf("%w: %q", ErrReservedIdentifier, id)
	}

	parts := strings.SplitN(id, "_", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q needs a key-type token, stage tokens, and a payload", ErrMalformedIdentifier, id)
	}

	curve, err := curveFromToken(parts[0])
	if err != nil {
		return nil, err
	}

	algs := make([]hashchain.Alg, 0, len(parts[1]))
	for i := 0; i < len(parts[1]); i++ {
		alg, err := hashchain.AlgFromToken(parts[1][i])
		if err != nil {
			return nil, fmt.Errorf("%w: stage %d: %v", ErrMalformedIdentifier, i, err)
		}
		algs = append(algs, alg)
	}

	if parts[2] == "" {
		return nil, fmt.Errorf("%w: empty public key payload", ErrMalformedIdentifier)
	}
	return &identifier{curve: curve, algs: algs, payload: parts[2]}, nil
}

// KeyTypeOf returns the curve recorded in a derived identifier.
func KeyTypeOf(id string) (hdkey.Curve, error) {
	parsed, err := parseIdentifier(id)
	if err != nil {
		return 0, err
	}
	return parsed.curve, nil
}

// HashTypesOf returns the hash-chain spec recorded in a derived identifier,
// in the order the stages were applied.
func HashTypesOf(id string) ([]hashchain.Alg, error) {
	parsed, err := parseIdentifier(id)
	if err != nil {
		return nil, err
	}
	return parsed.algs, nil
}

// PublicKeyBytesOf returns the raw public key bytes carried by a derived
// identifier.
func PublicKeyBytesOf(id string) ([]byte, error) {
	parsed, err := parseIdentifier(id)
	if err != nil {
		return nil, err
	}
	pub, err := base58.Decode(parsed.payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not base58: %v", ErrMalformedIdentifier, err)
	}
	return pub, nil
}
