package reflectutils

import (
	"reflect"
)

// AnyType is the reflected type of the empty interface.
var AnyType = reflect.TypeOf((*any)(nil)).Elem()

// Deref dereferences recursively a reflect.Value until it reaches a non-pointer or non-interface value
func Deref(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		return Deref(value.Elem())
	}
	return value
}

// Indirect strips every pointer level from the given type.
func Indirect(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// QualifiedName returns the "package.Type" name of the value's concrete type, pointers stripped.
//
// The boolean is false for nil values and unnamed types (slices, maps, anonymous structs...).
func QualifiedName(value any) (string, bool) {
	return QualifiedTypeName(reflect.TypeOf(value))
}

// QualifiedTypeName is the reflect.Type flavor of QualifiedName.
func QualifiedTypeName(typ reflect.Type) (string, bool) {
	typ = Indirect(typ)
	if typ == nil || typ.Name() == "" {
		return "", false
	}
	return typ.String(), true
}

// IsNil reports whether the value is nil, including typed nil pointers, maps, slices... wrapped in an interface.
func IsNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// CanHold reports whether a container whose element type is typ can store value.
func CanHold(typ reflect.Type, value any) bool {
	if value == nil {
		switch typ.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return true
		default:
			return false
		}
	}
	return reflect.TypeOf(value).AssignableTo(typ)
}

// ValueFor returns the reflect.Value to store value into a container whose element type is typ.
//
// It must only be called when CanHold(typ, value) is true.
func ValueFor(typ reflect.Type, value any) reflect.Value {
	if value == nil {
		return reflect.Zero(typ)
	}
	return reflect.ValueOf(value)
}
