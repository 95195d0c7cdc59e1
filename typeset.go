package graphrefs

import (
	"reflect"
	"sort"
	"strings"
)

// TypeSet is an unordered set of record types, keyed by reflect.Type
// identity. It is the result type of dependency queries. Membership is
// the contract; ordering helpers exist only for deterministic output.
type TypeSet map[reflect.Type]struct{}

// NewTypeSet builds a set from the given types.
func NewTypeSet(types ...reflect.Type) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s.Add(t)
	}
	return s
}

// Add inserts a type into the set.
func (s TypeSet) Add(t reflect.Type) {
	s[t] = struct{}{}
}

// Contains reports whether the set holds t.
func (s TypeSet) Contains(t reflect.Type) bool {
	_, ok := s[t]
	return ok
}

// ContainsAll reports whether every member of other is in s.
func (s TypeSet) ContainsAll(other TypeSet) bool {
	for t := range other {
		if !s.Contains(t) {
			return false
		}
	}
	return true
}

// Len returns the number of types in the set.
func (s TypeSet) Len() int {
	return len(s)
}

// Slice returns the members sorted by package path and name.
func (s TypeSet) Slice() []reflect.Type {
	out := make([]reflect.Type, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PkgPath() != out[j].PkgPath() {
			return out[i].PkgPath() < out[j].PkgPath()
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Names returns the sorted unqualified names of the members.
func (s TypeSet) Names() []string {
	members := s.Slice()
	names := make([]string, len(members))
	for i, t := range members {
		names[i] = t.Name()
	}
	return names
}

// String formats the set for logs and test failures.
func (s TypeSet) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}
