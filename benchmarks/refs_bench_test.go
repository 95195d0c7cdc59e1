package benchmarks

import (
	"testing"

	"github.com/graphrefs/graphrefs/internal/infra"
	"github.com/graphrefs/graphrefs/refgraph"
)

// BenchmarkRefsCached benchmarks extraction of an already-memoized record
func BenchmarkRefsCached(b *testing.B) {
	scope := infra.Scope()
	if _, err := scope.Refs(infra.Instance{}); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := scope.Refs(infra.Instance{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRefsCold benchmarks first-time extraction, including scope
// construction and registration
func BenchmarkRefsCold(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		scope := infra.Scope()
		if _, err := scope.Refs(infra.Instance{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDependenciesDirect benchmarks a direct dependency query
func BenchmarkDependenciesDirect(b *testing.B) {
	scope := infra.Scope()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := scope.Dependencies(infra.Instance{}, false); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDependenciesTransitive benchmarks the transitive closure walk
func BenchmarkDependenciesTransitive(b *testing.B) {
	scope := infra.Scope()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := scope.Dependencies(infra.LoadBalancer{}, true); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCreationOrder benchmarks whole-scope graph construction plus
// topological ordering
func BenchmarkCreationOrder(b *testing.B) {
	scope := infra.Scope()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		g, err := refgraph.Build(scope)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := g.CreationOrder(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkConcurrentRefs benchmarks concurrent cache reads on one scope
func BenchmarkConcurrentRefs(b *testing.B) {
	scope := infra.Scope()
	records := []any{infra.Network{}, infra.Subnet{}, infra.Instance{}, infra.LoadBalancer{}}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, err := scope.Refs(records[i%len(records)]); err != nil {
				b.Fatal(err)
			}
			i++
		}
	})
}
