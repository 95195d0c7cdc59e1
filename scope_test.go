package graphrefs

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Records wired through named references. Peering points at Network by
// name, so it only resolves inside a scope that has Network registered.

type Peering struct {
	Remote NamedRef `ref:"Network"`
	Local  Ref[Subnet]
}

type Mesh struct {
	Members []NamedRef       `ref:"Peering"`
	ByName  map[int]NamedRef `ref:"Peering"`
}

func conflictingNetwork() any {
	type Network struct {
		Zone string
	}
	return Network{}
}

func TestScope_RegisterAndLookup(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Network{}, &Subnet{}, reflect.TypeOf(Instance{})); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if scope.Count() != 3 {
		t.Errorf("Count: got %d, want 3", scope.Count())
	}
	if !scope.Contains("Subnet") {
		t.Error("Contains(Subnet): got false, want true")
	}
	if scope.Contains("Gateway") {
		t.Error("Contains(Gateway): got true, want false")
	}

	rt, ok := scope.Lookup("Network")
	if !ok {
		t.Fatal("Lookup(Network) failed")
	}
	if rt != reflect.TypeOf(Network{}) {
		t.Errorf("Lookup(Network): got %v, want Network", rt)
	}

	wantNames := []string{"Instance", "Network", "Subnet"}
	if !reflect.DeepEqual(scope.Names(), wantNames) {
		t.Errorf("Names: got %v, want %v", scope.Names(), wantNames)
	}

	types := scope.Types()
	if len(types) != 3 || types[1] != reflect.TypeOf(Network{}) {
		t.Errorf("Types: got %v, want name-sorted [Instance Network Subnet]", types)
	}
}

func TestScope_RegisterSameTypeIdempotent(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Network{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := scope.Register(Network{}, &Network{}); err != nil {
		t.Errorf("Re-registering the same type failed: %v", err)
	}
	if scope.Count() != 1 {
		t.Errorf("Count: got %d, want 1", scope.Count())
	}
}

func TestScope_DuplicateNameRejected(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Network{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := scope.Register(conflictingNetwork())
	if err == nil {
		t.Fatal("Expected error for conflicting registration")
	}
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
}

func TestScope_RegisterNonStruct(t *testing.T) {
	scope := NewScope()
	for _, input := range []any{nil, 7, "Network", map[string]int{}} {
		if err := scope.Register(input); !errors.Is(err, ErrNotRecord) {
			t.Errorf("Register(%#v): expected ErrNotRecord, got %v", input, err)
		}
	}
	if scope.Count() != 0 {
		t.Errorf("Count after failed registrations: got %d, want 0", scope.Count())
	}
}

func TestScope_MustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustRegister to panic on invalid input")
		}
	}()
	NewScope().MustRegister(42)
}

func TestScope_RefsResolvesNamedRef(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Network{}, Subnet{}, Peering{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	refs, err := scope.Refs(Peering{})
	if err != nil {
		t.Fatalf("Refs failed: %v", err)
	}

	remote := refs["Remote"]
	if remote.Target != reflect.TypeOf(Network{}) {
		t.Errorf("Remote target: got %v, want Network", remote.Target)
	}
	if remote.Kind() != KindSingle {
		t.Errorf("Remote kind: got %s, want single", remote.Kind())
	}
	if refs["Local"].Target != reflect.TypeOf(Subnet{}) {
		t.Errorf("Local target: got %v, want Subnet", refs["Local"].Target)
	}
}

func TestScope_NamedRefCollections(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Network{}, Subnet{}, Peering{}, Mesh{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	refs, err := scope.Refs(Mesh{})
	if err != nil {
		t.Fatalf("Refs failed: %v", err)
	}

	members := refs["Members"]
	if !members.IsList || members.Target != reflect.TypeOf(Peering{}) {
		t.Errorf("Members: got %+v, want list of Peering", members)
	}
	byName := refs["ByName"]
	if !byName.IsDict || byName.Target != reflect.TypeOf(Peering{}) {
		t.Errorf("ByName: got %+v, want dict of Peering", byName)
	}
}

func TestScope_UnknownNameFails(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Subnet{}, Peering{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := scope.Refs(Peering{})
	if err == nil {
		t.Fatal("Expected error for unresolvable named reference")
	}
	if !errors.Is(err, ErrUnknownName) {
		t.Errorf("Expected ErrUnknownName, got %v", err)
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("Expected *ResolutionError, got %T", err)
	}
	if resErr.Record != reflect.TypeOf(Peering{}) || resErr.Field != "Remote" {
		t.Errorf("Error location: got %v.%s, want Peering.Remote", resErr.Record, resErr.Field)
	}
}

func TestScope_FailureNotCached(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Subnet{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := scope.Refs(Peering{}); !errors.Is(err, ErrUnknownName) {
		t.Fatalf("Expected ErrUnknownName before registration, got %v", err)
	}

	// Registering the missing target makes the same extraction succeed.
	if err := scope.Register(Network{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	refs, err := scope.Refs(Peering{})
	if err != nil {
		t.Fatalf("Refs after registration failed: %v", err)
	}
	if refs["Remote"].Target != reflect.TypeOf(Network{}) {
		t.Errorf("Remote target: got %v, want Network", refs["Remote"].Target)
	}
}

func TestScope_DefensiveCopy(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Network{}, Subnet{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	first, err := scope.Refs(Subnet{})
	if err != nil {
		t.Fatalf("Refs failed: %v", err)
	}
	first["Network"] = RefInfo{Field: "tampered"}
	delete(first, "Gateway")

	second, err := scope.Refs(Subnet{})
	if err != nil {
		t.Fatalf("Refs failed: %v", err)
	}
	if second["Network"].Field != "Network" {
		t.Error("cached result visible through mutated copy")
	}
	if _, ok := second["Gateway"]; !ok {
		t.Error("cached result lost entry deleted from a copy")
	}
}

func TestScope_Dependencies(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Network{}, Subnet{}, Peering{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	direct, err := scope.Dependencies(Peering{}, false)
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	assertSameSet(t, direct, typeSetOf(Network{}, Subnet{}))

	transitive, err := scope.Dependencies(Peering{}, true)
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	assertSameSet(t, transitive, typeSetOf(Network{}, Subnet{}, Gateway{}))
}

func TestScope_Concurrent(t *testing.T) {
	scope := NewScope()
	if err := scope.Register(Network{}, Subnet{}, Instance{}, LoadBalancer{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 10; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			_, err := scope.Refs(Subnet{})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := scope.Refs(LoadBalancer{})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := scope.Dependencies(Instance{}, true)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			errs <- scope.Register(Gateway{})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Concurrent operation failed: %v", err)
		}
	}
}

func TestScope_Logger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	scope := NewScope(WithLogger(zap.New(core)))

	if err := scope.Register(Network{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := scope.Refs(Network{}); err != nil {
		t.Fatalf("Refs failed: %v", err)
	}

	if logs.FilterMessage("registered record type").Len() != 1 {
		t.Error("registration not logged")
	}
	if logs.FilterMessage("extracted references").Len() != 1 {
		t.Error("extraction not logged")
	}
}

func TestResolutionError_Format(t *testing.T) {
	cases := []struct {
		err  *ResolutionError
		want string
	}{
		{
			err:  &ResolutionError{Err: fmt.Errorf("%w: <nil>", ErrNotRecord)},
			want: "resolve: not a record type: <nil>",
		},
		{
			err:  &ResolutionError{Record: reflect.TypeOf(Network{}), Err: ErrNotRecord},
			want: "resolve graphrefs.Network: not a record type",
		},
		{
			err: &ResolutionError{
				Record: reflect.TypeOf(Peering{}),
				Field:  "Remote",
				Err:    fmt.Errorf("%w: %q", ErrUnknownName, "Network"),
			},
			want: `resolve graphrefs.Peering.Remote: unknown record name: "Network"`,
		},
	}

	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error(): got %q, want %q", got, tc.want)
		}
	}

	wrapped := &ResolutionError{Record: reflect.TypeOf(Network{}), Err: ErrAbstractTarget}
	if !errors.Is(wrapped, ErrAbstractTarget) {
		t.Error("errors.Is failed to match sentinel through ResolutionError")
	}
}
