package godeco

import (
	"reflect"
	"strings"

	"github.com/a-peyrard/godeco/slices"
)

var ErrorType = TypeOf[error]()

// TypeOf returns the reflect.Type of T, interface types included.
func TypeOf[T any]() reflect.Type {
	var t T
	typ := reflect.TypeOf(t)
	if typ == nil {
		typ = reflect.TypeOf((*T)(nil)).Elem()
	}
	return typ
}

// matchType reports whether a value of the provided type can be passed where paramType is expected.
func matchType(paramType, providedType reflect.Type) bool {
	if paramType == providedType {
		return true
	}
	return providedType.AssignableTo(paramType)
}

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "<nil>"
	}
	return typ.String()
}

func signature(types []reflect.Type) string {
	return "(" + strings.Join(slices.Map(types, typeName), ", ") + ")"
}

func typesOf(args []any) ([]reflect.Type, int) {
	types := make([]reflect.Type, len(args))
	for i, arg := range args {
		if arg == nil {
			return nil, i
		}
		types[i] = reflect.TypeOf(arg)
	}
	return types, -1
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}
