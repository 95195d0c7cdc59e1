package graphrefs

import "reflect"

// Ref marks a struct field as a single reference to the record type T.
// The marker carries no value at runtime; it exists so that Refs can
// recover the referenced type from the field's declaration.
//
//	type Subnet struct {
//	    Network graphrefs.Ref[Network]
//	    CIDR    string
//	}
type Ref[T any] struct{}

// refTarget recovers the type argument. Keeping the method unexported
// seals recognition to types declared in this package: a foreign type
// cannot satisfy the marker interfaces.
func (Ref[T]) refTarget() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Attr marks a struct field as a reference to a single named attribute
// of the record type T rather than to the record as a whole. The
// attribute name is carried in the field's `ref` tag:
//
//	type Function struct {
//	    RoleArn graphrefs.Attr[Role] `ref:"Arn"`
//	}
type Attr[T any] struct{}

func (Attr[T]) attrTarget() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RefList marks a struct field as an ordered collection of references
// to the record type T. A plain []Ref[T] field classifies identically.
type RefList[T any] []Ref[T]

// RefDict marks a struct field as a keyed collection of references to
// the record type V. The key type K is opaque to reference analysis;
// only the value side participates. A plain map[K]Ref[V] field
// classifies identically.
type RefDict[K comparable, V any] map[K]Ref[V]

// ContextRef marks a struct field as resolved from ambient execution
// context rather than from another record. The context value name is
// carried in the field's `ref` tag:
//
//	type Instance struct {
//	    Region graphrefs.ContextRef `ref:"region"`
//	}
//
// Context references never contribute to dependency sets.
type ContextRef struct{}

// NamedRef marks a struct field as a reference to a record type
// identified by name in the field's `ref` tag. The name is resolved
// against a Scope, which makes forward and cross-package references
// possible without an import cycle:
//
//	type Subnet struct {
//	    Gateway graphrefs.NamedRef `ref:"Gateway"`
//	}
//
// Extracting a NamedRef field without a Scope, or with a name the
// Scope does not contain, fails with a ResolutionError.
type NamedRef struct{}

// singleRef is satisfied by every instantiation of Ref.
type singleRef interface {
	refTarget() reflect.Type
}

// attrRef is satisfied by every instantiation of Attr.
type attrRef interface {
	attrTarget() reflect.Type
}

var (
	singleRefIface = reflect.TypeOf((*singleRef)(nil)).Elem()
	attrRefIface   = reflect.TypeOf((*attrRef)(nil)).Elem()
	contextRefType = reflect.TypeOf(ContextRef{})
	namedRefType   = reflect.TypeOf(NamedRef{})
)
