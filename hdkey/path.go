// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdkey

import (
	"fmt"
	"strconv"
	"strings"
)

// DerivePath walks a derivation path like "m/44'/1110'/0'/0'/0'" from n and
// returns the final node. Components may carry a ' or h hardened marker; the
// marker is accepted and ignored because every component is derived hardened
// regardless, so "m/44'/1110'/0'/0'/0'" and "m/44/1110/0/0/0" name the same
// node. Intermediate nodes are wiped before returning.
//
// The path must start at the master marker "m" (or "M"); "m" alone returns n
// itself.
func (n *Node) DerivePath(path string) (*Node, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed != "m" && trimmed != "M" &&
		!strings.HasPrefix(trimmed, "m/") && !strings.HasPrefix(trimmed, "M/") {
		return nil, fmt.Errorf("%w: %q must start at \"m\"", ErrInvalidPath, path)
	}
	if trimmed == "m" || trimmed == "M" {
		return n, nil
	}

	current := n
	for _, component := range strings.Split(trimmed[2:], "/") {
		index, err := parsePathComponent(component)
		if err != nil {
			return nil, fmt.Errorf("%w: component %q of %q: %v", ErrInvalidPath, component, path, err)
		}

		next, err := current.Child(index)
		if err != nil {
			if current != n {
				current.Zeroize()
			}
			return nil, fmt.Errorf("path %q: %w", path, err)
		}
		if current != n {
			current.Zeroize()
		}
		current = next
	}
	return current, nil
}

// parsePathComponent parses one numeric path component, accepting and
// discarding a trailing hardened marker. The numeric value must fit in 31
// bits; the hardening bit is not spelled numerically.
func parsePathComponent(component string) (uint32, error) {
	if component == "" {
		return 0, fmt.Errorf("empty component")
	}
	if strings.HasSuffix(component, "'") || strings.HasSuffix(component, "h") ||
		strings.HasSuffix(component, "H") {
		component = component[:len(component)-1]
	}
	value, err := strconv.ParseUint(component, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not a decimal index: %v", err)
	}
	if value >= uint64(HardenedOffset) {
		return 0, fmt.Errorf("index %d exceeds 31 bits", value)
	}
	return uint32(value), nil
}
