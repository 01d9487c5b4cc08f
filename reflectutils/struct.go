package reflectutils

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/a-peyrard/godeco/fn"
	"github.com/a-peyrard/godeco/set"
)

// Field is a struct field reachable from a root struct, either declared on it
// or promoted from one of its embedded structs.
type Field struct {
	reflect.StructField

	// Path is the index sequence from the root struct, usable with FieldByIndex.
	Path []int
	// Owner is the struct type declaring the field.
	Owner reflect.Type
}

func (f Field) String() string {
	return fmt.Sprintf("%s.%s (%s)", f.Owner.Name(), f.Name, f.Type)
}

// Fields lists all the fields of a struct type, including the ones of its embedded
// structs (depth first, declaration order), keeping only the fields accepted by the filters.
//
// Embedded pointers to structs are listed but not walked: they are nil on a freshly
// built instance, so there is nothing to reach through them.
func Fields(typ reflect.Type, filters ...fn.Predicate[Field]) []Field {
	typ = DerefType(typ)
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var (
		accept = fn.And(filters...)
		result []Field
	)
	walkFields(typ, nil, set.New[reflect.Type](), func(f Field) {
		if accept(f) {
			result = append(result, f)
		}
	})
	return result
}

func walkFields(typ reflect.Type, parent []int, visited set.Set[reflect.Type], consumer func(Field)) {
	if !visited.Add(typ) {
		return
	}
	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		path := append(append(make([]int, 0, len(parent)+1), parent...), i)

		consumer(Field{StructField: structField, Path: path, Owner: typ})

		if structField.Anonymous && structField.Type.Kind() == reflect.Struct {
			walkFields(structField.Type, path, visited, consumer)
		}
	}
}

// WithTypeAssignableFrom keeps the fields able to hold a value of the given type.
func WithTypeAssignableFrom(typ reflect.Type) fn.Predicate[Field] {
	return func(f Field) bool {
		return typ.AssignableTo(f.Type)
	}
}

// WithInterfaceType keeps the fields declared with an interface type.
func WithInterfaceType() fn.Predicate[Field] {
	return func(f Field) bool {
		return f.Type.Kind() == reflect.Interface
	}
}

// WithTag keeps the fields carrying the given struct tag key with the given value.
//
// The tag value is matched on its first comma separated element, so `godeco:"inject,override"`
// matches value "inject".
func WithTag(key, value string) fn.Predicate[Field] {
	return func(f Field) bool {
		raw, ok := f.Tag.Lookup(key)
		if !ok {
			return false
		}
		for i := 0; i < len(raw); i++ {
			if raw[i] == ',' {
				raw = raw[:i]
				break
			}
		}
		return raw == value
	}
}

// Embedded keeps the anonymous fields.
func Embedded() fn.Predicate[Field] {
	return func(f Field) bool {
		return f.Anonymous
	}
}

var ErrNotAddressable = errors.New("value is not addressable")

// Writable returns a settable view of the given value, even for unexported fields.
//
// The value must be addressable, which is the case for any field reached from a pointer.
func Writable(value reflect.Value) (reflect.Value, error) {
	if value.CanSet() {
		return value, nil
	}
	if !value.CanAddr() {
		return reflect.Value{}, ErrNotAddressable
	}
	return reflect.NewAt(value.Type(), unsafe.Pointer(value.UnsafeAddr())).Elem(), nil
}

// Deref dereferences recursively a reflect.Value until it reaches a non-pointer or non-interface value
func Deref(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		return Deref(value.Elem())
	}
	return value
}

// DerefType strips all the pointer levels of a type.
func DerefType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}
