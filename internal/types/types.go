package types

import (
	"sort"
	"strings"
)

const (
	// UnknownAddress is reported when the public address could not be resolved
	UnknownAddress = "Unknown IP"
	// UnknownProvider is reported when the provider could not be resolved
	UnknownProvider = "Unknown ISP"
)

// UnknownIdentity is the sentinel returned by a failed lookup
var UnknownIdentity = Identity{Address: UnknownAddress, Provider: UnknownProvider}

// DeviceSet represents the addresses currently visible on the local segment
type DeviceSet map[string]struct{}

// NewDeviceSet creates a device set from the given addresses
func NewDeviceSet(addrs ...string) DeviceSet {
	s := make(DeviceSet, len(addrs))
	for _, addr := range addrs {
		s.Add(addr)
	}
	return s
}

// Add adds an address to the set
func (s DeviceSet) Add(addr string) {
	s[addr] = struct{}{}
}

// Has reports whether the address is in the set
func (s DeviceSet) Has(addr string) bool {
	_, ok := s[addr]
	return ok
}

// Minus returns the addresses in s that are not in other, sorted
func (s DeviceSet) Minus(other DeviceSet) []string {
	var out []string
	for addr := range s {
		if !other.Has(addr) {
			out = append(out, addr)
		}
	}
	sort.Strings(out)
	return out
}

// Sorted returns the addresses in lexical order
func (s DeviceSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for addr := range s {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// Identity represents the externally observed address and provider
type Identity struct {
	Address  string `json:"ip"`
	Provider string `json:"org"`
}

// Known reports whether both address and provider were resolved
func (i Identity) Known() bool {
	return isResolved(i.Address, UnknownAddress) && isResolved(i.Provider, UnknownProvider)
}

func isResolved(value, marker string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != marker
}
