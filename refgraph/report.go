package refgraph

import (
	"fmt"
	"strings"

	"github.com/graphrefs/graphrefs"
)

// Analyze builds the reference graph for a scope and summarizes it.
func Analyze(scope *graphrefs.Scope) (*Report, error) {
	g, err := Build(scope)
	if err != nil {
		return nil, err
	}
	return g.Report(), nil
}

// Report contains the results of whole-scope reference analysis.
type Report struct {
	TotalRecords  int
	Dependencies  map[string][]string // record -> direct dependencies
	Dependents    map[string][]string // record -> records that reference it
	Cycles        [][]string          // reference cycles, if any
	HasCycles     bool
	CreationOrder []string // dependency-ordered records; empty when cyclic
}

// Report summarizes the graph by record name.
func (g *Graph) Report() *Report {
	report := &Report{
		TotalRecords: len(g.nodes),
		Dependencies: make(map[string][]string),
		Dependents:   make(map[string][]string),
		Cycles:       make([][]string, 0),
	}

	for _, node := range g.nodes {
		name := node.Name()
		report.Dependencies[name] = typeNames(g.edges[node])
		report.Dependents[name] = typeNames(g.Dependents(node))
	}

	if cycles := g.DetectCycles(); len(cycles) > 0 {
		for _, cycle := range cycles {
			report.Cycles = append(report.Cycles, typeNames(cycle))
		}
		report.HasCycles = true
	}

	if order, err := g.CreationOrder(); err == nil {
		report.CreationOrder = typeNames(order)
	}

	return report
}

// String formats the report
func (r *Report) String() string {
	var b strings.Builder

	b.WriteString("Reference Analysis Report\n")
	b.WriteString(fmt.Sprintf("Total Records: %d\n\n", r.TotalRecords))

	if r.HasCycles {
		b.WriteString("Circular references detected:\n")
		for i, cycle := range r.Cycles {
			b.WriteString(fmt.Sprintf("  Cycle %d: %s -> %s\n",
				i+1, strings.Join(cycle, " -> "), cycle[0]))
		}
		b.WriteString("\n")
	}

	if len(r.CreationOrder) > 0 {
		b.WriteString("Creation Order (dependencies first):\n")
		for i, record := range r.CreationOrder {
			deps := r.Dependencies[record]
			if len(deps) > 0 {
				b.WriteString(fmt.Sprintf("  %d. %s (depends on: %s)\n",
					i+1, record, strings.Join(deps, ", ")))
			} else {
				b.WriteString(fmt.Sprintf("  %d. %s (no dependencies)\n", i+1, record))
			}
		}
	}

	return b.String()
}
