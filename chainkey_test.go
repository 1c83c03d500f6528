// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package chainkey

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/mr-tron/base58"

	"github.com/complex-gh/chainkey/account"
	"github.com/complex-gh/chainkey/hashchain"
	"github.com/complex-gh/chainkey/hdkey"
	"github.com/complex-gh/chainkey/keypair"
	"github.com/complex-gh/chainkey/mnemonic"
)

// Fixture phrases for the test users used throughout; the reference BIP39
// phrase and a second distinct one.
const (
	alicePhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	bobPhrase   = "legal winner thank year wave sausage worth useful legal winner thank yellow"
)

// TestCreate_Deterministic verifies repeated derivation from the same seed
// and options produces byte-identical records.
func TestCreate_Deterministic(t *testing.T) {
	is := is.New(t)

	seed, err := mnemonic.Seed(alicePhrase, "")
	is.NoErr(err)

	opts := Options{KeyType: hdkey.Ed25519, HashTypes: []hashchain.Alg{hashchain.SHA3256}}
	w1, err := Create(seed, opts)
	is.NoErr(err)
	w2, err := Create(seed, opts)
	is.NoErr(err)

	is.Equal(w1.PrivateKey, w2.PrivateKey)
	is.Equal(w1.PublicKeyIdentifier, w2.PublicKeyIdentifier)
	is.Equal(w1.Address, w2.Address)
	is.Equal(w1.ExtendedPrivateKey, w2.ExtendedPrivateKey)
	is.Equal(w1.ExtendedPublicKey, w2.ExtendedPublicKey)
	is.Equal(w1.Fingerprint, w2.Fingerprint)
}

// TestCreate_RecordShape checks every field of a derived record against the
// component layers it was assembled from.
func TestCreate_RecordShape(t *testing.T) {
	is := is.New(t)

	seed, err := mnemonic.Seed(alicePhrase, "")
	is.NoErr(err)

	opts := Options{
		KeyType:   hdkey.Ed25519,
		HashTypes: []hashchain.Alg{hashchain.SHA3256},
		Account:   2,
		Change:    1,
		Index:     7,
	}
	w, err := Create(seed, opts)
	is.NoErr(err)

	is.Equal(w.Path, "m/44'/1110'/2'/1'/7'")
	is.Equal(w.Depth, uint8(5))
	is.Equal(w.Index, uint32(7)|hdkey.HardenedOffset)
	is.True(strings.HasPrefix(w.PublicKeyIdentifier, "A_c_"))
	is.True(account.IsValidAddress(w.Address))

	// The identifier's metadata and payload agree with the record.
	kt, err := account.KeyTypeOf(w.PublicKeyIdentifier)
	is.NoErr(err)
	is.Equal(kt, w.KeyType)
	algs, err := account.HashTypesOf(w.PublicKeyIdentifier)
	is.NoErr(err)
	is.Equal(algs, w.HashTypes)

	pub, err := account.PublicKeyBytesOf(w.PublicKeyIdentifier)
	is.NoErr(err)
	addr, err := account.AddressOf(w.HashTypes, pub)
	is.NoErr(err)
	is.Equal(addr, w.Address)

	// The private key reconstructs a key pair with that exact public key.
	priv, err := base58.Decode(w.PrivateKey)
	is.NoErr(err)
	kp, err := keypair.FromPrivateKey(w.KeyType, priv)
	is.NoErr(err)
	is.Equal(kp.PublicKey(), pub)

	// The extended private key round-trips to the same node.
	ext, err := hdkey.DecodeExtended(w.ExtendedPrivateKey)
	is.NoErr(err)
	is.Equal(ext.Depth, w.Depth)
	is.Equal(ext.ChildIndex, w.Index)
	node, err := ext.Node()
	is.NoErr(err)
	is.Equal(node.Extended(false), w.ExtendedPublicKey)
	is.Equal(node.Fingerprint(), w.Fingerprint)
}

// TestCreate_Defaults verifies the zero-value options derive ed25519 with a
// single sha3-256 stage at path m/44'/1110'/0'/0'/0'.
func TestCreate_Defaults(t *testing.T) {
	is := is.New(t)

	seed, err := mnemonic.Seed(alicePhrase, "")
	is.NoErr(err)

	w, err := Create(seed, Options{})
	is.NoErr(err)
	is.Equal(w.KeyType, hdkey.Ed25519)
	is.Equal(w.HashTypes, []hashchain.Alg{hashchain.SHA3256})
	is.Equal(w.Path, "m/44'/1110'/0'/0'/0'")
}

// TestCreate_BadSeed verifies seed validation propagates from the HD layer.
func TestCreate_BadSeed(t *testing.T) {
	is := is.New(t)

	_, err := Create(nil, Options{})
	is.True(errors.Is(err, hdkey.ErrInvalidSeed))

	_, err = Create(make([]byte, 8), Options{})
	is.True(errors.Is(err, hdkey.ErrInvalidSeed))
}

// TestCreateFromMnemonic verifies phrase resolution matches explicit seed
// derivation and rejects invalid phrases.
func TestCreateFromMnemonic(t *testing.T) {
	is := is.New(t)

	seed, err := mnemonic.Seed(bobPhrase, "trustno1")
	is.NoErr(err)

	direct, err := Create(seed, Options{})
	is.NoErr(err)
	viaPhrase, err := CreateFromMnemonic(bobPhrase, "trustno1", Options{})
	is.NoErr(err)
	is.Equal(direct.Address, viaPhrase.Address)
	is.Equal(direct.PrivateKey, viaPhrase.PrivateKey)

	_, err = CreateFromMnemonic("definitely not a phrase", "", Options{})
	is.True(err != nil)
}

// TestDeriveWallets_Uniqueness verifies batch derivation yields ordered,
// pairwise-distinct records with sequential hardened indices.
func TestDeriveWallets_Uniqueness(t *testing.T) {
	is := is.New(t)

	seed, err := mnemonic.Seed(alicePhrase, "")
	is.NoErr(err)

	const n = 8
	wallets, err := DeriveWallets(seed, Options{Index: 3}, n)
	is.NoErr(err)
	is.Equal(len(wallets), n)

	seen := make(map[string]bool, n)
	for i, w := range wallets {
		is.Equal(w.Index, uint32(3+i)|hdkey.HardenedOffset)
		is.True(!seen[w.Address])
		is.True(!seen[w.PrivateKey])
		seen[w.Address] = true
		seen[w.PrivateKey] = true
	}
}

// TestDeriveWallets_BadCount verifies count validation including index
// overflow.
func TestDeriveWallets_BadCount(t *testing.T) {
	is := is.New(t)

	seed, err := mnemonic.Seed(alicePhrase, "")
	is.NoErr(err)

	_, err = DeriveWallets(seed, Options{}, 0)
	is.True(errors.Is(err, ErrInvalidCount))
	_, err = DeriveWallets(seed, Options{}, -4)
	is.True(errors.Is(err, ErrInvalidCount))
	_, err = DeriveWallets(seed, Options{Index: hdkey.HardenedOffset - 1}, 2)
	is.True(errors.Is(err, ErrInvalidCount))
}

// TestCrossCurveIsolation verifies the same seed and path under different
// key types yields disjoint keys, identifiers, and addresses.
func TestCrossCurveIsolation(t *testing.T) {
	is := is.New(t)

	seed, err := mnemonic.Seed(alicePhrase, "")
	is.NoErr(err)

	w25519, err := Create(seed, Options{KeyType: hdkey.Ed25519})
	is.NoErr(err)
	w448, err := Create(seed, Options{KeyType: hdkey.Ed448})
	is.NoErr(err)

	is.True(w25519.PrivateKey != w448.PrivateKey)
	is.True(w25519.Address != w448.Address)
	is.True(strings.HasPrefix(w25519.PublicKeyIdentifier, "A_"))
	is.True(strings.HasPrefix(w448.PublicKeyIdentifier, "B_"))
}

// TestWallet_Zeroize verifies private fields are blanked and public fields
// survive.
func TestWallet_Zeroize(t *testing.T) {
	is := is.New(t)

	w, err := CreateFromMnemonic(alicePhrase, "", Options{})
	is.NoErr(err)

	address := w.Address
	w.Zeroize()
	is.Equal(w.PrivateKey, "")
	is.Equal(w.ExtendedPrivateKey, "")
	is.Equal(w.Address, address)
}

// TestWallet_StringRedactsSecrets verifies the printable form never carries
// private key material.
func TestWallet_StringRedactsSecrets(t *testing.T) {
	is := is.New(t)

	w, err := CreateFromMnemonic(alicePhrase, "", Options{})
	is.NoErr(err)

	s := w.String()
	is.True(strings.Contains(s, w.Address))
	is.True(strings.Contains(s, w.PublicKeyIdentifier))
	is.True(!strings.Contains(s, w.PrivateKey))
	is.True(!strings.Contains(s, w.ExtendedPrivateKey))
}
