package graphrefs

import "reflect"

// Dependencies computes the set of record types that recordType
// references. With transitive false, the set holds the distinct targets
// of the record's own reference fields. With transitive true, the set
// is the full closure: dependencies, their dependencies, and so on.
//
// Context references never contribute: they resolve from ambient
// context, not from records in the graph.
//
// Cycles are safe. A record is expanded at most once, and the starting
// record appears in its own transitive set exactly when some dependency
// chain leads back to it.
//
// Any extraction failure along the walk aborts it; there are no partial
// results. Named references require a scope; use (*Scope).Dependencies.
func Dependencies(recordType any, transitive bool) (TypeSet, error) {
	return dependencies(recordType, transitive, nil)
}

func dependencies(recordType any, transitive bool, scope *Scope) (TypeSet, error) {
	rt, err := structTypeOf(recordType)
	if err != nil {
		return nil, &ResolutionError{Record: rt, Err: err}
	}

	direct, err := directDependencies(rt, scope)
	if err != nil {
		return nil, err
	}
	if !transitive {
		return direct, nil
	}

	// Iterative closure. The start record is not pre-seeded into the
	// visited set, so it is included only when a cycle reaches it.
	visited := make(TypeSet, len(direct))
	queue := make([]reflect.Type, 0, len(direct))
	for t := range direct {
		queue = append(queue, t)
	}
	for len(queue) > 0 {
		current := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if visited.Contains(current) {
			continue
		}
		visited.Add(current)

		nested, err := directDependencies(current, scope)
		if err != nil {
			return nil, err
		}
		for t := range nested {
			if !visited.Contains(t) {
				queue = append(queue, t)
			}
		}
	}
	return visited, nil
}

// directDependencies collects the distinct non-context targets of a
// record's reference fields. Scoped walks go through the scope's memo
// cache; unscoped walks extract directly.
func directDependencies(rt reflect.Type, scope *Scope) (TypeSet, error) {
	var (
		refs map[string]RefInfo
		err  error
	)
	if scope != nil {
		refs, err = scope.Refs(rt)
	} else {
		refs, err = extract(rt, nil)
	}
	if err != nil {
		return nil, err
	}

	deps := make(TypeSet, len(refs))
	for _, info := range refs {
		if info.IsContext {
			continue
		}
		deps.Add(info.Target)
	}
	return deps, nil
}
