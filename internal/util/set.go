package util

import (
	"fmt"
	"sort"
	"strings"
)

// KeySet is a map[E comparable]bool used as a set of E. Only keys mapped to
// true are considered members; Remove deletes the key outright.
type KeySet[E comparable] map[E]bool

// NewKeySet creates a new KeySet holding every key of the given maps that is
// mapped to true.
func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}

	for _, m := range of {
		for k := range m {
			if m[k] {
				s.Add(k)
			}
		}
	}

	return s
}

// KeySetOf creates a new KeySet holding the elements of sl.
func KeySetOf[E comparable](sl []E) KeySet[E] {
	s := NewKeySet[E]()
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

// Copy returns a copy of the set.
func (s KeySet[E]) Copy() KeySet[E] {
	return NewKeySet[E](s)
}

// Add adds value to the set. Adding a value already in it has no effect.
func (s KeySet[E]) Add(value E) {
	s[value] = true
}

// AddAll adds every element of o to s and returns whether s grew as a result.
func (s KeySet[E]) AddAll(o KeySet[E]) bool {
	grew := false
	for k := range o {
		if !s[k] {
			s[k] = true
			grew = true
		}
	}
	return grew
}

// Remove removes value from the set if it is in it.
func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

// Has returns whether value is in the set.
func (s KeySet[E]) Has(value E) bool {
	return s[value]
}

// Len returns the number of elements in the set.
func (s KeySet[E]) Len() int {
	return len(s)
}

// Empty returns whether the set has no elements.
func (s KeySet[E]) Empty() bool {
	return len(s) == 0
}

// Union returns a new set with the elements of both s and o.
func (s KeySet[E]) Union(o KeySet[E]) KeySet[E] {
	newSet := s.Copy()
	newSet.AddAll(o)
	return newSet
}

// Intersection returns a new set with the elements that are in both s and o.
func (s KeySet[E]) Intersection(o KeySet[E]) KeySet[E] {
	newSet := NewKeySet[E]()
	for k := range s {
		if o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

// Without returns a new set with every element of s except value.
func (s KeySet[E]) Without(value E) KeySet[E] {
	newSet := s.Copy()
	newSet.Remove(value)
	return newSet
}

// DisjointWith returns whether s and o have no elements in common.
func (s KeySet[E]) DisjointWith(o KeySet[E]) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

// Any returns whether any element in the set meets predicate.
func (s KeySet[E]) Any(predicate func(v E) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

// Equal returns whether o is a KeySet[E] with exactly the same elements as s.
// Ordering is not considered.
func (s KeySet[E]) Equal(o any) bool {
	other, ok := o.(KeySet[E])
	if !ok {
		otherPtr, ok := o.(*KeySet[E])
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if s.Len() != other.Len() {
		return false
	}

	for k := range s {
		if !other.Has(k) {
			return false
		}
	}

	return true
}

// Elements returns the elements of the set in no particular order.
func (s KeySet[E]) Elements() []E {
	elems := make([]E, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

// SortedElements returns the elements of the set ordered by less.
func (s KeySet[E]) SortedElements(less func(l, r E) bool) []E {
	return SortBy(s.Elements(), less)
}

// String returns a string of the set's contents, ordered by their string
// representation so that output is stable.
func (s KeySet[E]) String() string {
	convs := make([]string, 0, len(s))
	for k := range s {
		convs = append(convs, fmt.Sprintf("%v", k))
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	sb.WriteString(strings.Join(convs, ", "))
	sb.WriteRune('}')
	return sb.String()
}
