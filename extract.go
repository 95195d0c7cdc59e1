package graphrefs

import (
	"fmt"
	"reflect"
)

// refTagKey is the struct tag key that carries attribute names, context
// value names, and the target names of named references.
const refTagKey = "ref"

// Refs extracts reference descriptors from a record type without a
// resolution scope. The record may be given as a struct value, a
// pointer to struct, or a reflect.Type. The result maps field names to
// descriptors; fields that are not references are not included.
//
// NamedRef fields cannot be resolved without a Scope and fail with a
// ResolutionError wrapping ErrUnknownName. Use (*Scope).Refs when the
// schema contains named references.
func Refs(recordType any) (map[string]RefInfo, error) {
	rt, err := structTypeOf(recordType)
	if err != nil {
		return nil, &ResolutionError{Record: rt, Err: err}
	}
	return extract(rt, nil)
}

// structTypeOf normalizes the accepted input forms to a named struct
// type. On failure it returns the offending type (nil for nil input)
// alongside a plain error wrapping ErrNotRecord; callers decide whether
// to surface it as a ResolutionError.
func structTypeOf(v any) (reflect.Type, error) {
	var rt reflect.Type
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: <nil>", ErrNotRecord)
	case reflect.Type:
		rt = t
	default:
		rt = reflect.TypeOf(v)
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct || rt.Name() == "" {
		return rt, fmt.Errorf("%w: %s", ErrNotRecord, rt)
	}
	return rt, nil
}

// extract walks the visible fields of rt and classifies each one.
// Promoted fields of embedded structs participate under Go visibility
// rules: shadowed fields are replaced by the shadowing field, and
// same-depth ambiguous promotions are not visible at all. Unexported
// fields are skipped; a record's shape is its exported surface.
func extract(rt reflect.Type, scope *Scope) (map[string]RefInfo, error) {
	refs := make(map[string]RefInfo)
	for _, field := range reflect.VisibleFields(rt) {
		if field.PkgPath != "" {
			continue
		}
		info, ok, err := classifyField(rt, field, scope)
		if err != nil {
			return nil, err
		}
		if ok {
			refs[field.Name] = info
		}
	}
	return refs, nil
}

// classifyField decides whether a single field is a reference and, if
// so, builds its descriptor. The boolean reports whether the field is a
// reference at all; non-reference fields are not errors.
func classifyField(rt reflect.Type, field reflect.StructField, scope *Scope) (RefInfo, bool, error) {
	ft := field.Type

	// Any number of pointer wrappers collapses to a single optional bit.
	optional := false
	for ft.Kind() == reflect.Pointer {
		optional = true
		ft = ft.Elem()
	}

	info := RefInfo{Field: field.Name, IsOptional: optional}

	switch {
	case ft == contextRefType:
		name := field.Tag.Get(refTagKey)
		if name == "" {
			return RefInfo{}, false, resolutionErr(rt, field.Name, fmt.Errorf("%w: context value name", ErrMissingName))
		}
		info.Attr = name
		info.IsContext = true
		return info, true, nil

	case ft == namedRefType:
		target, err := resolveNamed(rt, field, scope)
		if err != nil {
			return RefInfo{}, false, err
		}
		info.Target = target
		return info, true, nil

	case ft.Implements(singleRefIface):
		target := reflect.Zero(ft).Interface().(singleRef).refTarget()
		if err := checkTarget(rt, field.Name, target); err != nil {
			return RefInfo{}, false, err
		}
		info.Target = target
		return info, true, nil

	case ft.Implements(attrRefIface):
		target := reflect.Zero(ft).Interface().(attrRef).attrTarget()
		if err := checkTarget(rt, field.Name, target); err != nil {
			return RefInfo{}, false, err
		}
		name := field.Tag.Get(refTagKey)
		if name == "" {
			return RefInfo{}, false, resolutionErr(rt, field.Name, fmt.Errorf("%w: attribute name", ErrMissingName))
		}
		info.Target = target
		info.Attr = name
		return info, true, nil

	case ft.Kind() == reflect.Slice:
		target, ok, err := elementTarget(rt, field, ft.Elem(), scope)
		if err != nil || !ok {
			return RefInfo{}, false, err
		}
		info.Target = target
		info.IsList = true
		return info, true, nil

	case ft.Kind() == reflect.Map:
		// The key type is opaque: only the value side is analyzed.
		target, ok, err := elementTarget(rt, field, ft.Elem(), scope)
		if err != nil || !ok {
			return RefInfo{}, false, err
		}
		info.Target = target
		info.IsDict = true
		return info, true, nil
	}

	return RefInfo{}, false, nil
}

// elementTarget resolves the target of a collection element. Pointer
// elements are tolerated without affecting the field's optional bit.
// Elements that are not single or named references make the whole field
// a non-reference.
func elementTarget(rt reflect.Type, field reflect.StructField, elem reflect.Type, scope *Scope) (reflect.Type, bool, error) {
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	switch {
	case elem == namedRefType:
		target, err := resolveNamed(rt, field, scope)
		if err != nil {
			return nil, false, err
		}
		return target, true, nil
	case elem.Implements(singleRefIface):
		target := reflect.Zero(elem).Interface().(singleRef).refTarget()
		if err := checkTarget(rt, field.Name, target); err != nil {
			return nil, false, err
		}
		return target, true, nil
	}
	return nil, false, nil
}

// resolveNamed looks up the target of a named reference in the scope.
func resolveNamed(rt reflect.Type, field reflect.StructField, scope *Scope) (reflect.Type, error) {
	name := field.Tag.Get(refTagKey)
	if name == "" {
		return nil, resolutionErr(rt, field.Name, fmt.Errorf("%w: target record name", ErrMissingName))
	}
	if scope == nil {
		return nil, resolutionErr(rt, field.Name, fmt.Errorf("%w: %q (no scope)", ErrUnknownName, name))
	}
	target, ok := scope.Lookup(name)
	if !ok {
		return nil, resolutionErr(rt, field.Name, fmt.Errorf("%w: %q", ErrUnknownName, name))
	}
	return target, nil
}

// checkTarget rejects reference targets that name no concrete record
// type. Interface targets are reported separately: they are the one
// way a marker's type argument can remain abstract.
func checkTarget(rt reflect.Type, fieldName string, target reflect.Type) error {
	switch {
	case target.Kind() == reflect.Interface:
		return resolutionErr(rt, fieldName, fmt.Errorf("%w: %s", ErrAbstractTarget, target))
	case target.Kind() != reflect.Struct || target.Name() == "":
		return resolutionErr(rt, fieldName, fmt.Errorf("%w: target %s", ErrNotRecord, target))
	}
	return nil
}
