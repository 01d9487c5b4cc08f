package godeco

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/a-peyrard/godeco/reflectutils"
)

// injectFields sets the delegate into every field of the instance, skipping the excluded path.
//
// A field already holding the delegate is left alone. A field holding another value is only
// replaced with override, otherwise an injection failure is reported. Failures never stop the
// injection of the remaining fields, they are all returned joined.
func injectFields(instance reflect.Value, fields []reflectutils.Field, delegate reflect.Value, override bool, exclude []int) (injected int, err error) {
	root := reflectutils.Deref(instance)
	if root.Kind() != reflect.Struct || !root.CanAddr() {
		if len(fields) == 0 {
			return 0, nil
		}
		return 0, errorf(InjectionFailure, instance.Type(), "cannot inject fields into a non addressable %s", instance.Type())
	}

	var failures []error
	for _, field := range fields {
		if exclude != nil && slices.Equal(field.Path, exclude) {
			continue
		}
		ok, injectErr := injectField(root, field, delegate, override)
		if injectErr != nil {
			failures = append(failures, injectErr)
			continue
		}
		if ok {
			injected++
		}
	}
	return injected, errors.Join(failures...)
}

func injectField(root reflect.Value, field reflectutils.Field, delegate reflect.Value, override bool) (bool, error) {
	writable, err := reflectutils.Writable(root.FieldByIndex(field.Path))
	if err != nil {
		return false, newError(InjectionFailure, root.Type(), fmt.Errorf("field %s:\n\t%w", field, err))
	}
	if !writable.IsZero() && !override {
		if sameValue(writable, delegate) {
			return false, nil
		}
		return false, errorf(InjectionFailure, root.Type(), "field %s is already set, and override is disabled", field)
	}
	writable.Set(delegate)
	return true, nil
}

// sameValue compares the field content with the delegate. Values whose comparison panics,
// such as proxies holding functions, are reported as different.
func sameValue(current, delegate reflect.Value) (same bool) {
	if !delegate.IsValid() {
		return false
	}
	a, b := current.Interface(), delegate.Interface()
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// delegateValue returns the delegate as a value assignable to the capability, nil included.
func delegateValue(target any, capability reflect.Type) reflect.Value {
	if target == nil {
		return reflect.Zero(capability)
	}
	return reflect.ValueOf(target)
}
