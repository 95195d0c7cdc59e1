// Package graphrefs provides typed reference markers and runtime
// introspection for graph-shaped relationships between record types.
//
// # Overview
//
// Go structs compose into trees: a field either owns its value or
// points at one. Infrastructure schemas, resource models, and other
// declarative systems need to state "this record refers to that
// record" as a typed, introspectable fact rather than an embedded
// value or a bare ID with the type information lost. graphrefs closes
// that gap with zero-sized generic marker types
// that make reference structure part of a struct's declaration, plus a
// reflection API that recovers the full reference graph at runtime.
//
// The library analyzes declarations only. It never validates reference
// values, never serializes records, and never stores a graph; those
// policies belong to the frameworks built on top of it.
//
// # Markers
//
// Five markers cover the reference shapes:
//
//   - Ref[T]: a single reference to the record type T
//   - Attr[T]: a reference to one named attribute of T
//   - RefList[T]: an ordered collection of references to T
//   - RefDict[K, V]: a keyed collection of references to V
//   - ContextRef: a value resolved from ambient context, not a record
//
// NamedRef is the sixth, textual form: it names its target in a struct
// tag and resolves against a Scope, which is how forward references and
// cross-package references are spelled.
//
// A marker field declares intent; it holds no data. Plain []Ref[T] and
// map[K]Ref[V] fields classify exactly like their named counterparts.
//
// # Tag Convention
//
// Names ride in the `ref` struct tag: the attribute name for Attr, the
// context value name for ContextRef, and the target record name for
// NamedRef. A marker that needs a name and lacks the tag fails
// extraction with ErrMissingName.
//
//	type Deployment struct {
//	    Cluster  graphrefs.Ref[Cluster]
//	    RoleArn  graphrefs.Attr[Role]      `ref:"Arn"`
//	    Replicas graphrefs.RefList[Pod]
//	    Region   graphrefs.ContextRef      `ref:"region"`
//	    Mesh     graphrefs.NamedRef        `ref:"ServiceMesh"`
//	}
//
// # Extraction
//
// Refs returns one RefInfo per reference field, keyed by field name:
//
//	refs, err := graphrefs.Refs(Deployment{})
//	if err != nil {
//	    return err
//	}
//	info := refs["Cluster"]
//	// info.Target == reflect.TypeOf(Cluster{}), info.Kind() == KindSingle
//
// Pointer fields mark the reference optional; any depth of pointers
// collapses to a single optional bit. Embedded structs contribute their
// promoted reference fields under Go visibility rules, so record
// composition behaves like inheritance of the reference surface.
// Fields without a marker are simply not references: value structs,
// IDs, and timestamps pass through unreported.
//
// # Dependencies
//
// Dependencies folds the extracted references of a record into the set
// of record types it depends on. The transitive form computes the full
// closure and is cycle-safe: mutually referencing records terminate,
// and a record appears in its own closure exactly when a reference
// chain loops back to it. Context references are never dependencies.
//
//	deps, err := graphrefs.Dependencies(Deployment{}, true)
//
// # Scopes
//
// A Scope is an explicit resolution namespace: register the record
// types that participate in a schema, then extract against it. Named
// references resolve through the scope's registry, and successful
// extractions are memoized there. There is no global registry; what a
// name means is always decided by a scope the caller can see.
//
//	scope := graphrefs.NewScope()
//	if err := scope.Register(Cluster{}, Role{}, Pod{}, ServiceMesh{}, Deployment{}); err != nil {
//	    return err
//	}
//	refs, err := scope.Refs(Deployment{})
//	deps, err := scope.Dependencies(Deployment{}, true)
//
// # Errors
//
// Extraction failures are loud. Unresolvable names, missing tag names,
// interface-typed targets, and non-record inputs all fail with a
// *ResolutionError wrapping one of the package sentinels, and a failure
// anywhere in a dependency walk aborts the whole walk. There are no
// partial results to misread.
//
//	_, err := scope.Refs(Deployment{})
//	if errors.Is(err, graphrefs.ErrUnknownName) {
//	    // a NamedRef target is not registered in the scope
//	}
//
// # Concurrency
//
// Refs and Dependencies are pure functions over type information.
// Scopes are safe for concurrent registration and extraction, and every
// map returned to a caller is a defensive copy.
package graphrefs
