package graphrefs

import (
	"fmt"
	"reflect"
)

// RefKind identifies the shape of a reference field.
type RefKind int

const (
	KindSingle RefKind = iota
	KindList
	KindDict
	KindContext
)

// String returns the string representation of the reference kind
func (k RefKind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindContext:
		return "context"
	default:
		return "unknown"
	}
}

// RefInfo describes one reference field of a record type. Values are
// immutable once returned; callers may keep them without copying.
type RefInfo struct {
	Field      string       `json:"field"`                 // Field name, unique within the record type
	Target     reflect.Type `json:"-"`                     // Referenced record type; nil for context references
	Attr       string       `json:"attr,omitempty"`        // Attribute or context value name; "" when absent
	IsList     bool         `json:"is_list,omitempty"`     // Field is an ordered collection of references
	IsDict     bool         `json:"is_dict,omitempty"`     // Field is a keyed collection of references
	IsOptional bool         `json:"is_optional,omitempty"` // Field type was pointer-wrapped
	IsContext  bool         `json:"is_context,omitempty"`  // Field resolves from ambient context
}

// Kind derives the reference shape. Exactly one shape holds per field.
func (r RefInfo) Kind() RefKind {
	switch {
	case r.IsContext:
		return KindContext
	case r.IsList:
		return KindList
	case r.IsDict:
		return KindDict
	default:
		return KindSingle
	}
}

// TargetName returns the unqualified name of the referenced record
// type, or "" for context references.
func (r RefInfo) TargetName() string {
	if r.Target == nil {
		return ""
	}
	return r.Target.Name()
}

// String formats the descriptor for logs and error messages.
func (r RefInfo) String() string {
	var dest string
	switch {
	case r.IsContext:
		dest = fmt.Sprintf("context %q", r.Attr)
	case r.Attr != "":
		dest = fmt.Sprintf("%s %s.%s", r.Kind(), r.TargetName(), r.Attr)
	default:
		dest = fmt.Sprintf("%s %s", r.Kind(), r.TargetName())
	}
	if r.IsOptional {
		return fmt.Sprintf("%s -> %s (optional)", r.Field, dest)
	}
	return fmt.Sprintf("%s -> %s", r.Field, dest)
}

// copyRefs clones an extraction result so cached entries cannot be
// mutated through a returned map.
func copyRefs(refs map[string]RefInfo) map[string]RefInfo {
	out := make(map[string]RefInfo, len(refs))
	for name, info := range refs {
		out[name] = info
	}
	return out
}
