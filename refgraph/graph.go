// Package refgraph provides whole-scope reference graph analysis:
// cycle detection, creation ordering, and dependency reporting.
package refgraph

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/graphrefs/graphrefs"
)

// Graph is the direct-dependency graph over the record types of one
// scope. Nodes are record types; an edge A -> B means A references B
// through a non-context reference field. A Graph is a snapshot: it does
// not observe registrations made after Build.
type Graph struct {
	nodes      []reflect.Type                  // sorted by package path and name
	edges      map[reflect.Type][]reflect.Type // direct dependencies, sorted
	registered map[reflect.Type]bool
}

// Build extracts the direct dependencies of every record type
// registered in the scope. Types that are referenced but not registered
// still become nodes, so the graph is closed over its own edges. Any
// extraction failure aborts the build.
func Build(scope *graphrefs.Scope) (*Graph, error) {
	g := &Graph{
		edges:      make(map[reflect.Type][]reflect.Type),
		registered: make(map[reflect.Type]bool),
	}

	seen := make(map[reflect.Type]bool)
	for _, rt := range scope.Types() {
		deps, err := scope.Dependencies(rt, false)
		if err != nil {
			return nil, err
		}
		g.edges[rt] = deps.Slice()
		g.registered[rt] = true
		if !seen[rt] {
			seen[rt] = true
			g.nodes = append(g.nodes, rt)
		}
		for _, dep := range g.edges[rt] {
			if !seen[dep] {
				seen[dep] = true
				g.nodes = append(g.nodes, dep)
			}
		}
	}

	sort.Slice(g.nodes, func(i, j int) bool {
		if g.nodes[i].PkgPath() != g.nodes[j].PkgPath() {
			return g.nodes[i].PkgPath() < g.nodes[j].PkgPath()
		}
		return g.nodes[i].Name() < g.nodes[j].Name()
	})
	return g, nil
}

// Types returns every node in the graph in sorted order.
func (g *Graph) Types() []reflect.Type {
	out := make([]reflect.Type, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Dependencies returns the direct dependencies of a record type.
func (g *Graph) Dependencies(rt reflect.Type) []reflect.Type {
	deps := g.edges[rt]
	out := make([]reflect.Type, len(deps))
	copy(out, deps)
	return out
}

// Dependents returns the record types that directly reference rt.
func (g *Graph) Dependents(rt reflect.Type) []reflect.Type {
	dependents := []reflect.Type{}
	for _, node := range g.nodes {
		for _, dep := range g.edges[node] {
			if dep == rt {
				dependents = append(dependents, node)
				break
			}
		}
	}
	return dependents
}

// DetectCycles finds reference cycles. Each cycle is reported as the
// sequence of types along it, starting at the first type revisited.
func (g *Graph) DetectCycles() [][]reflect.Type {
	var cycles [][]reflect.Type
	visited := make(map[reflect.Type]bool)
	recursionStack := make(map[reflect.Type]bool)

	var dfs func(node reflect.Type, path []reflect.Type) bool
	dfs = func(node reflect.Type, path []reflect.Type) bool {
		visited[node] = true
		recursionStack[node] = true
		path = append(path, node)

		for _, neighbor := range g.edges[node] {
			if !visited[neighbor] {
				if dfs(neighbor, path) {
					return true
				}
			} else if recursionStack[neighbor] {
				// Found cycle
				cycleStart := -1
				for i, n := range path {
					if n == neighbor {
						cycleStart = i
						break
					}
				}
				if cycleStart >= 0 {
					cycle := make([]reflect.Type, len(path)-cycleStart)
					copy(cycle, path[cycleStart:])
					cycles = append(cycles, cycle)
				}
				return true
			}
		}

		recursionStack[node] = false
		return false
	}

	for _, node := range g.nodes {
		if !visited[node] {
			dfs(node, nil)
		}
	}

	return cycles
}

// CreationOrder returns the record types ordered so that every type
// comes after the types it references. When a cycle makes that order
// impossible, the error names the cycles.
func (g *Graph) CreationOrder() ([]reflect.Type, error) {
	// Out-degree counting: types with no dependencies come first.
	outDegree := make(map[reflect.Type]int, len(g.nodes))
	for _, node := range g.nodes {
		outDegree[node] = len(g.edges[node])
	}

	reverseEdges := make(map[reflect.Type][]reflect.Type)
	for _, source := range g.nodes {
		for _, target := range g.edges[source] {
			reverseEdges[target] = append(reverseEdges[target], source)
		}
	}

	queue := []reflect.Type{}
	for _, node := range g.nodes {
		if outDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	result := []reflect.Type{}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, dependent := range reverseEdges[node] {
			outDegree[dependent]--
			if outDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		if cycles := g.DetectCycles(); len(cycles) > 0 {
			return nil, fmt.Errorf("circular reference detected: %s", formatCycles(cycles))
		}
		return nil, fmt.Errorf("circular reference detected")
	}

	return result, nil
}

// Validate reports cycles and edges that leave the registered set. A
// graph can be built and queried in either condition; Validate exists
// for callers that require a complete, acyclic schema.
func (g *Graph) Validate() error {
	if cycles := g.DetectCycles(); len(cycles) > 0 {
		return fmt.Errorf("circular references detected:\n%s", formatCycles(cycles))
	}

	for _, node := range g.nodes {
		for _, dep := range g.edges[node] {
			if !g.registered[dep] {
				return fmt.Errorf("%s references %s, which is not registered in the scope",
					node.Name(), dep.Name())
			}
		}
	}

	return nil
}

// formatCycles formats cycle information for error messages
func formatCycles(cycles [][]reflect.Type) string {
	var b strings.Builder
	for i, cycle := range cycles {
		if i > 0 {
			b.WriteString("\n")
		}
		names := typeNames(cycle)
		b.WriteString(fmt.Sprintf("  Cycle %d: %s -> %s",
			i+1,
			strings.Join(names, " -> "),
			names[0])) // Complete the cycle
	}
	return b.String()
}

func typeNames(types []reflect.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name()
	}
	return names
}
