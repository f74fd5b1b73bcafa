package lnxconfig

import (
	"net/netip"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// CompareOptions are the go-cmp options that make two IPConfig values
// comparable. A nil and an empty collection are treated as equal.
func CompareOptions() cmp.Options {
	return cmp.Options{
		cmp.Comparer(func(a, b netip.Addr) bool { return a == b }),
		cmp.Comparer(func(a, b netip.AddrPort) bool { return a == b }),
		cmpopts.EquateEmpty(),
	}
}

// Equal reports whether a and b describe the same configuration
func Equal(a, b *IPConfig) bool {
	return cmp.Equal(a, b, CompareOptions())
}

// Diff returns a human-readable report of the differences between a and b,
// or an empty string if they are equal. Lines prefixed with "-" are from a.
func Diff(a, b *IPConfig) string {
	return cmp.Diff(a, b, CompareOptions())
}
