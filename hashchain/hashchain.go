// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package hashchain composes digest algorithms into a single output.
//
// A chain is an ordered, non-empty list of algorithms. The input is digested
// by the algorithm at position 0, that digest is fed to position 1, and so on;
// the final stage's digest is the chain's output. The same order decides which
// stage tokens appear in a public-key identifier, so the order is part of the
// on-chain encoding and must never be reinterpreted.
package hashchain

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Alg identifies a single digest algorithm usable as a chain stage.
type Alg uint8

// The closed set of supported stage algorithms.
const (
	SHA256 Alg = iota + 1
	BLAKE2b256
	SHA3256
)

var (
	// ErrEmptyChain is returned when a chain spec contains no algorithms.
	ErrEmptyChain = errors.New("hash chain must contain at least one algorithm")
	// ErrUnknownAlg is returned for an algorithm outside the supported set.
	ErrUnknownAlg = errors.New("unknown hash algorithm")
)

// String returns the lowercase algorithm name.
func (a Alg) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case BLAKE2b256:
		return "blake2b-256"
	case SHA3256:
		return "sha3-256"
	}
	return fmt.Sprintf("alg(%d)", uint8(a))
}

// Token returns the single-letter stage token used in public-key identifiers.
func (a Alg) Token() (string, error) {
	switch a {
	case SHA256:
		return "a", nil
	case BLAKE2b256:
		return "b", nil
	case SHA3256:
		return "c", nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownAlg, uint8(a))
}

// AlgFromToken maps a stage token back to its algorithm.
func AlgFromToken(tok byte) (Alg, error) {
	switch tok {
	case 'a':
		return SHA256, nil
	case 'b':
		return BLAKE2b256, nil
	case 'c':
		return SHA3256, nil
	}
	return 0, fmt.Errorf("%w: token %q", ErrUnknownAlg, string(tok))
}

// ParseAlg maps an algorithm name (as printed by String) to its Alg.
// It is intended for flag and config parsing.
func ParseAlg(name string) (Alg, error) {
	switch name {
	case "sha256":
		return SHA256, nil
	case "blake2b-256", "blake2b":
		return BLAKE2b256, nil
	case "sha3-256", "sha3":
		return SHA3256, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlg, name)
}

// digest applies a single stage.
func (a Alg) digest(input []byte) ([]byte, error) {
	switch a {
	case SHA256:
		sum := sha256.Sum256(input)
		return sum[:], nil
	case BLAKE2b256:
		sum := blake2b.Sum256(input)
		return sum[:], nil
	case SHA3256:
		sum := sha3.Sum256(input)
		return sum[:], nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownAlg, uint8(a))
}

// Chain applies each algorithm in order, feeding every stage's digest to the
// next stage, and returns the final digest. Position 0 is applied first.
// The input is never modified. An empty algorithm list is rejected with
// ErrEmptyChain.
func Chain(algs []Alg, input []byte) ([]byte, error) {
	if len(algs) == 0 {
		return nil, ErrEmptyChain
	}
	out := input
	for i, alg := range algs {
		d, err := alg.digest(out)
		if err != nil {
			return nil, fmt.Errorf("hash chain stage %d: %w", i, err)
		}
		out = d
	}
	return out, nil
}
