// Package util holds generic helpers for slices, maps, and sets that are
// shared across packages.
package util

import (
	"sort"
)

// SortBy sorts sl in place using less and returns it for convenience. The sort
// is stable.
func SortBy[E any](sl []E, less func(l, r E) bool) []E {
	sort.SliceStable(sl, func(i, j int) bool {
		return less(sl[i], sl[j])
	})
	return sl
}

// EqualSlices returns whether the two slices have equal elements in the same
// order.
func EqualSlices[E comparable](sl1 []E, sl2 []E) bool {
	if len(sl1) != len(sl2) {
		return false
	}

	for i := range sl1 {
		if sl1[i] != sl2[i] {
			return false
		}
	}

	return true
}

// CommonPrefixLen returns the number of leading elements that sl1 and sl2
// have in common.
func CommonPrefixLen[E comparable](sl1 []E, sl2 []E) int {
	n := 0
	for n < len(sl1) && n < len(sl2) && sl1[n] == sl2[n] {
		n++
	}
	return n
}

// HasPrefix returns whether sl begins with every element of prefix, in order.
func HasPrefix[E comparable](sl []E, prefix []E) bool {
	if len(prefix) > len(sl) {
		return false
	}
	return CommonPrefixLen(sl, prefix) == len(prefix)
}

// Concat returns a new slice holding the elements of every given slice in
// order. None of the arguments are modified.
func Concat[E any](sls ...[]E) []E {
	total := 0
	for _, sl := range sls {
		total += len(sl)
	}

	out := make([]E, 0, total)
	for _, sl := range sls {
		out = append(out, sl...)
	}
	return out
}
