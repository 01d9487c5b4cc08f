package godeco

import (
	"reflect"
	"slices"

	"github.com/a-peyrard/godeco/reflectutils"
	"github.com/puzpuzpuz/xsync/v3"
)

type slotKey struct {
	structType reflect.Type
	capability reflect.Type
}

var (
	// embedded interface fields of a struct, shallowest first
	slotCandidates = xsync.NewMapOf[reflect.Type, [][]int]()
	slots          = xsync.NewMapOf[slotKey, []int]()
)

// DelegateOf returns the immediate delegate of an instance built by a decoration.
//
// Proxies give their target. Synthesized structs give the content of their delegate slot,
// unwrapping it when it holds a proxy. Without the capability at hand, the slot is the
// shallowest embedded interface field holding a value, use Unwrap to resolve it from the
// capability instead.
func DelegateOf(v any) (any, bool) {
	if provider, ok := v.(DelegateProvider); ok {
		return provider.Delegate(), true
	}

	value, ok := structValue(v)
	if !ok {
		return nil, false
	}
	paths, _ := slotCandidates.LoadOrCompute(value.Type(), func() [][]int {
		fields := reflectutils.Fields(value.Type(), reflectutils.Embedded(), reflectutils.WithInterfaceType())
		slices.SortStableFunc(fields, func(a, b reflectutils.Field) int {
			return len(a.Path) - len(b.Path)
		})
		paths := make([][]int, len(fields))
		for i, field := range fields {
			paths[i] = field.Path
		}
		return paths
	})
	for _, path := range paths {
		if delegate, found := readSlot(value, path); found {
			return delegate, true
		}
	}
	return nil, false
}

// Unwrap returns the delegate of an instance decorating I.
func Unwrap[I any](v any) (I, bool) {
	var zero I
	capability := TypeOf[I]()
	if _, isProxy := v.(DelegateProvider); isProxy || capability.Kind() != reflect.Interface {
		return typed[I](DelegateOf(v))
	}

	value, ok := structValue(v)
	if !ok {
		return zero, false
	}
	path, _ := slots.LoadOrCompute(slotKey{structType: value.Type(), capability: capability}, func() []int {
		slot, found := findSlot(value.Type(), capability)
		if !found {
			return nil
		}
		return slot.Path
	})
	if path == nil {
		return zero, false
	}
	return typed[I](readSlot(value, path))
}

func typed[I any](delegate any, found bool) (I, bool) {
	if !found {
		var zero I
		return zero, false
	}
	i, ok := delegate.(I)
	return i, ok
}

func structValue(v any) (reflect.Value, bool) {
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return value.Elem(), true
}

// readSlot reads the interface field at path, a nil field holds no delegate.
func readSlot(value reflect.Value, path []int) (any, bool) {
	field, err := value.FieldByIndexErr(path)
	if err != nil {
		return nil, false
	}
	readable, err := reflectutils.Writable(field)
	if err != nil || readable.IsNil() {
		return nil, false
	}
	delegate := readable.Interface()
	if provider, ok := delegate.(DelegateProvider); ok {
		return provider.Delegate(), true
	}
	return delegate, true
}
