package graphrefs

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Scope is an explicit resolution namespace for named references. It
// maps record names to types and memoizes extraction results. A Scope
// is safe for concurrent use.
//
// There is deliberately no package-global scope: every caller that
// needs named references constructs one and registers the record types
// that participate, which keeps resolution visible at the call site.
type Scope struct {
	mu    sync.RWMutex
	types map[string]reflect.Type

	// Extraction cache. Only successful results are stored: a failed
	// extraction may become resolvable once more types are registered,
	// while a successful one can never be changed by further
	// registration (duplicate names are rejected). Entries are
	// canonical; readers always receive copies.
	cacheMu sync.RWMutex
	cache   map[reflect.Type]map[string]RefInfo

	log *zap.Logger
}

// ScopeOption configures a Scope at construction time.
type ScopeOption func(*Scope)

// WithLogger attaches a logger for debug-level registration and
// extraction traces. The default is a no-op logger.
func WithLogger(log *zap.Logger) ScopeOption {
	return func(s *Scope) {
		if log != nil {
			s.log = log
		}
	}
}

// NewScope creates an empty resolution scope.
func NewScope(opts ...ScopeOption) *Scope {
	s := &Scope{
		types: make(map[string]reflect.Type),
		cache: make(map[reflect.Type]map[string]RefInfo),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds record types to the scope under their type names.
// Types may be given as struct values, pointers to struct, or
// reflect.Types. Registering the same type again is a no-op; a
// different type under an already-registered name is rejected with
// ErrDuplicateName, and non-struct values with ErrNotRecord.
func (s *Scope) Register(recordTypes ...any) error {
	for _, v := range recordTypes {
		rt, err := structTypeOf(v)
		if err != nil {
			return err
		}
		name := rt.Name()

		s.mu.Lock()
		existing, ok := s.types[name]
		if ok && existing != rt {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s (%s and %s)", ErrDuplicateName, name, existing, rt)
		}
		if !ok {
			s.types[name] = rt
		}
		s.mu.Unlock()

		if !ok {
			s.log.Debug("registered record type",
				zap.String("name", name),
				zap.String("type", rt.String()))
		}
	}
	return nil
}

// MustRegister is Register for package-level schema setup; it panics on
// registration failure.
func (s *Scope) MustRegister(recordTypes ...any) {
	if err := s.Register(recordTypes...); err != nil {
		panic(err)
	}
}

// Lookup resolves a record name to its registered type.
func (s *Scope) Lookup(name string) (reflect.Type, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.types[name]
	return rt, ok
}

// Contains reports whether a record name is registered.
func (s *Scope) Contains(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Count returns the number of registered record types.
func (s *Scope) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.types)
}

// Names returns the registered record names in sorted order.
func (s *Scope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns a name-sorted snapshot of the registered record types.
func (s *Scope) Types() []reflect.Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]reflect.Type, len(names))
	for i, name := range names {
		out[i] = s.types[name]
	}
	return out
}

// Refs extracts reference descriptors from a record type, resolving
// named references against this scope. Successful results are
// memoized; the returned map is a copy and safe to mutate.
func (s *Scope) Refs(recordType any) (map[string]RefInfo, error) {
	rt, err := structTypeOf(recordType)
	if err != nil {
		return nil, &ResolutionError{Record: rt, Err: err}
	}

	s.cacheMu.RLock()
	cached, ok := s.cache[rt]
	s.cacheMu.RUnlock()
	if ok {
		return copyRefs(cached), nil
	}

	refs, err := extract(rt, s)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	s.cache[rt] = refs
	s.cacheMu.Unlock()

	s.log.Debug("extracted references",
		zap.String("record", rt.String()),
		zap.Int("count", len(refs)))

	return copyRefs(refs), nil
}

// Dependencies computes the record types that recordType references,
// resolving named references against this scope. See the package-level
// Dependencies for the exact contract.
func (s *Scope) Dependencies(recordType any, transitive bool) (TypeSet, error) {
	return dependencies(recordType, transitive, s)
}
