// derive_vectors prints the derivation chain for a hex seed, for
// regenerating golden test vectors.
//
// Usage:
//
//	go run ./scripts/derive_vectors 000102030405060708090a0b0c0d0e0f
//
// Or with stdin:
//
//	echo 000102030405060708090a0b0c0d0e0f | go run ./scripts/derive_vectors
//
// For each step of m/44'/1110'/0'/0'/0' on both curves it prints the chain
// code, key material, public key, fingerprint, and extended keys. Output is
// secret-bearing; only use throwaway seeds.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/chainkey"
	"github.com/complex-gh/chainkey/hdkey"
)

func main() {
	var seedHex string

	if len(os.Args) > 1 {
		seedHex = strings.TrimSpace(os.Args[1])
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			seedHex = strings.TrimSpace(scanner.Text())
		}
	}

	if seedHex == "" {
		fmt.Fprintln(os.Stderr, "usage: derive_vectors <hex-seed>")
		os.Exit(1)
	}

	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "not a hex seed: %v\n", err)
		os.Exit(1)
	}

	paths := []string{
		"m",
		"m/44'",
		"m/44'/1110'",
		"m/44'/1110'/0'",
		"m/44'/1110'/0'/0'",
		chainkey.Path(0, 0, 0),
	}

	for _, curve := range []hdkey.Curve{hdkey.Ed25519, hdkey.Ed448} {
		master, err := hdkey.MasterFromSeed(curve, seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "master derivation failed: %v\n", err)
			os.Exit(1)
		}

		for _, path := range paths {
			node, err := master.DerivePath(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "path %s failed: %v\n", path, err)
				os.Exit(1)
			}

			fp := node.Fingerprint()
			fmt.Printf("[%s %s]\n", curve, path)
			fmt.Println()
			fmt.Printf("%x (chain code)\n", node.ChainCode())
			fmt.Printf("%x (key material)\n", node.KeyMaterial())
			fmt.Printf("%x (public key)\n", node.PublicKey())
			fmt.Printf("%x (fingerprint)\n", fp[:])
			fmt.Printf("%s (extended private key)\n", node.Extended(true))
			fmt.Printf("%s (extended public key)\n", node.Extended(false))
			fmt.Println()
		}
	}
}
