package core

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizeAddress lowercases an address for comparison. All membership and
// equality checks in this package are checksum-agnostic: EIP-55 casing is a
// display convention, not an identity.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsHexAddress reports whether the string has the shape of an Ethereum
// address, with or without the 0x prefix.
func IsHexAddress(address string) bool {
	return common.IsHexAddress(address)
}
