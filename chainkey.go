// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package chainkey derives wallet records deterministically from one seed.
//
// The factory walks a hardened BIP44-shaped path (purpose 44, coin type
// 1110) to a derivation node, builds a curve-tagged key pair from it, and
// encodes the public key into a self-describing identifier and a hash-chain
// address. Every operation is a pure function of its inputs: the same seed,
// path, and options always produce byte-identical keys and addresses, and no
// secret material is retained beyond the call that produced it.
package chainkey

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/complex-gh/chainkey/account"
	"github.com/complex-gh/chainkey/hashchain"
	"github.com/complex-gh/chainkey/hdkey"
	"github.com/complex-gh/chainkey/keypair"
	"github.com/complex-gh/chainkey/mnemonic"
	"github.com/complex-gh/chainkey/secret"
)

// Derivation path constants: purpose per BIP43/BIP44, and the chain's
// registered coin type.
const (
	Purpose  = 44
	CoinType = 1110
)

// ErrInvalidCount is returned when a batch derivation asks for a
// non-positive number of wallets or would overflow the address index space.
var ErrInvalidCount = errors.New("invalid wallet count")

// Options selects what to derive. The zero value derives an Ed25519 wallet
// with a single SHA3-256 address stage at account 0, change 0, index 0.
type Options struct {
	// KeyType is the signature curve; defaults to Ed25519.
	KeyType hdkey.Curve
	// HashTypes is the address hash chain, applied in order; defaults to a
	// single SHA3-256 stage.
	HashTypes []hashchain.Alg
	// Account, Change, and Index are the three variable path components of
	// m/44'/1110'/account'/change'/index'.
	Account uint32
	Change  uint32
	Index   uint32
}

// withDefaults fills in the zero-value defaults without mutating o.
func (o Options) withDefaults() Options {
	if o.KeyType == 0 {
		o.KeyType = hdkey.Ed25519
	}
	if len(o.HashTypes) == 0 {
		o.HashTypes = []hashchain.Alg{hashchain.SHA3256}
	}
	return o
}

// Path builds the derivation path string for the three variable components,
// every component hardened.
func Path(accountIdx, change, index uint32) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d'/%d'", Purpose, CoinType, accountIdx, change, index)
}

// Create derives one wallet record from seed bytes. All intermediate key
// material (master node, path node, key pair) is wiped before returning; the
// record is the only thing that leaves, and the caller retires it with
// Zeroize.
func Create(seed []byte, opts Options) (*Wallet, error) {
	opts = opts.withDefaults()

	master, err := hdkey.MasterFromSeed(opts.KeyType, seed)
	if err != nil {
		return nil, fmt.Errorf("could not derive master node: %w", err)
	}
	defer master.Zeroize()

	path := Path(opts.Account, opts.Change, opts.Index)
	node, err := master.DerivePath(path)
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", path, err)
	}
	defer node.Zeroize()

	kp, err := keypair.FromHDNode(node)
	if err != nil {
		return nil, fmt.Errorf("could not build key pair: %w", err)
	}
	defer kp.Zeroize()

	pub := kp.PublicKey()
	id, err := account.EncodeIdentifier(opts.KeyType, opts.HashTypes, pub)
	if err != nil {
		return nil, fmt.Errorf("could not encode identifier: %w", err)
	}
	addr, err := account.AddressOf(opts.HashTypes, pub)
	if err != nil {
		return nil, fmt.Errorf("could not derive address: %w", err)
	}

	priv := kp.PrivateKey()
	defer secret.Wipe(priv)

	return &Wallet{
		KeyType:             opts.KeyType,
		HashTypes:           append([]hashchain.Alg(nil), opts.HashTypes...),
		PrivateKey:          base58.Encode(priv),
		PublicKeyIdentifier: id,
		Address:             addr,
		Path:                path,
		ExtendedPrivateKey:  node.Extended(true),
		ExtendedPublicKey:   node.Extended(false),
		Fingerprint:         node.Fingerprint(),
		Depth:               node.Depth(),
		Index:               node.Index(),
	}, nil
}

// CreateFromMnemonic resolves a BIP39 phrase and optional passphrase to seed
// bytes and derives one wallet record from them. The seed is wiped before
// returning.
func CreateFromMnemonic(phrase, passphrase string, opts Options) (*Wallet, error) {
	seed, err := mnemonic.Seed(phrase, passphrase)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(seed)
	return Create(seed, opts)
}

// DeriveWallets derives count wallet records from one seed, incrementing the
// address index by one per record starting at opts.Index. Distinct indices
// feed distinct HMAC inputs, so the records are pairwise distinct.
func DeriveWallets(seed []byte, opts Options, count int) ([]*Wallet, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	opts = opts.withDefaults()
	if uint64(opts.Index)+uint64(count-1) >= uint64(hdkey.HardenedOffset) {
		return nil, fmt.Errorf("%w: index %d + count %d exceeds 31 bits", ErrInvalidCount, opts.Index, count)
	}

	wallets := make([]*Wallet, 0, count)
	start := opts.Index
	for i := 0; i < count; i++ {
		opts.Index = start + uint32(i)
		w, err := Create(seed, opts)
		if err != nil {
			for _, prior := range wallets {
				prior.Zeroize()
			}
			return nil, fmt.Errorf("wallet %d: %w", i, err)
		}
		wallets = append(wallets, w)
	}
	return wallets, nil
}

// DeriveWalletsFromMnemonic is DeriveWallets taking a BIP39 phrase instead of
// seed bytes.
func DeriveWalletsFromMnemonic(phrase, passphrase string, opts Options, count int) ([]*Wallet, error) {
	seed, err := mnemonic.Seed(phrase, passphrase)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(seed)
	return DeriveWallets(seed, opts, count)
}
