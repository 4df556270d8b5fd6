package core

import "strings"

// Allowlist is the static set of wallet addresses authorized to hold admin
// sessions. It is built once at startup and never mutated; membership is the
// sole authorization fact in the system.
type Allowlist struct {
	addresses map[string]struct{}
}

// NewAllowlist builds an allowlist from explicit entries. Entries are
// normalized to lowercase so that lookups are case-insensitive regardless of
// how operators wrote them.
func NewAllowlist(addresses []string) *Allowlist {
	set := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		addr = NormalizeAddress(addr)
		if addr == "" {
			continue
		}
		set[addr] = struct{}{}
	}
	return &Allowlist{addresses: set}
}

// ParseAllowlist builds an allowlist from a comma-separated string, the
// format used by the ADMIN_ADDRESSES environment variable.
func ParseAllowlist(csv string) *Allowlist {
	return NewAllowlist(strings.Split(csv, ","))
}

// Contains reports whether the address is on the allowlist.
func (a *Allowlist) Contains(address string) bool {
	_, ok := a.addresses[NormalizeAddress(address)]
	return ok
}

// Len returns the number of allowlisted addresses.
func (a *Allowlist) Len() int {
	return len(a.addresses)
}
