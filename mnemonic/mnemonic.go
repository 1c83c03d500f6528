// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package mnemonic wraps BIP39 phrase handling for the wallet factory.
//
// Phrases and passphrases are normalized to NFKD before seed derivation, as
// BIP39 requires, so a phrase typed with composed characters derives the same
// seed as its decomposed form.
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// New generates a fresh mnemonic phrase with the given entropy size in bits
// (128 for 12 words up to 256 for 24 words, in 32-bit steps).
func New(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("could not generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("could not create a mnemonic set of words: %w", err)
	}
	return phrase, nil
}

// IsValid reports whether phrase is a well-formed mnemonic in the active
// word list, checksum included.
func IsValid(phrase string) bool {
	return bip39.IsMnemonicValid(normalize(phrase))
}

// Seed derives the binary seed for a phrase and optional passphrase. The
// phrase is checksum-validated first; a malformed phrase fails rather than
// deriving a seed for a typo.
func Seed(phrase, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(normalize(phrase), norm.NFKD.String(passphrase))
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return seed, nil
}

// normalize trims outer whitespace, collapses inner runs of it, and applies
// NFKD.
func normalize(phrase string) string {
	return norm.NFKD.String(strings.Join(strings.Fields(phrase), " "))
}
