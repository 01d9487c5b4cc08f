package godeco

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync/atomic"

	"github.com/a-peyrard/godeco/fn"
	"github.com/a-peyrard/godeco/reflectutils"
	"github.com/puzpuzpuz/xsync/v3"
)

type (
	// Constructor is a function building instances of one type, the Go counterpart of a class constructor.
	Constructor struct {
		name     string
		factory  reflect.Value
		params   []reflect.Type
		produces reflect.Type
	}

	// Constructors indexes constructors by the type they produce.
	Constructors struct {
		byType  *xsync.MapOf[reflect.Type, *SortedCOWSlice[*Constructor]]
		version atomic.Uint64
	}
)

var defaultConstructors = NewConstructors()

// NewConstructor validates a constructor function.
//
// Accepted shapes are func(...) T, func(...) *T and func(...) (T or *T, error).
func NewConstructor(factoryMethod any) (*Constructor, error) {
	if factoryMethod == nil {
		return nil, errors.New("constructor must not be nil")
	}
	t := reflect.TypeOf(factoryMethod)
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %s", t)
	}
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return nil, errors.New("constructor must either return the instance and an error, or just the instance")
	}
	if t.NumOut() == 2 && t.Out(1) != ErrorType {
		return nil, errors.New("if constructor returns two elements, it must return an error as the second element")
	}
	if t.IsVariadic() {
		return nil, errors.New("variadic constructors are not supported")
	}

	if t.Out(0).Kind() == reflect.Interface {
		return nil, fmt.Errorf("constructor must return a concrete type, got %s", t.Out(0))
	}

	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}

	return &Constructor{
		name:     runtime.FuncForPC(reflect.ValueOf(factoryMethod).Pointer()).Name(),
		factory:  reflect.ValueOf(factoryMethod),
		params:   params,
		produces: reflectutils.DerefType(t.Out(0)),
	}, nil
}

// Produces returns the type built by the constructor, pointers stripped.
func (c *Constructor) Produces() reflect.Type {
	return c.produces
}

// Params returns the parameter types of the constructor.
func (c *Constructor) Params() []reflect.Type {
	return c.params
}

// Call invokes the constructor, recovering from panics, and returns a pointer to the built struct.
func (c *Constructor) Call(args []reflect.Value) (comp reflect.Value, err error) {
	// panic recovery, as `Call` can panic if the constructor has a panic
	var results []reflect.Value
	var callErr error

	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("panic calling constructor %s: %v", c.name, r)
			}
		}()
		results = c.factory.Call(args)
	}()

	if callErr != nil {
		return reflect.Value{}, callErr
	}

	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}

	return addressable(results[0])
}

func (c *Constructor) String() string {
	return fmt.Sprintf("Constructor(%s%s)", c.name, signature(c.params))
}

// addressable turns a constructed struct value into a pointer, so its fields can be injected.
func addressable(value reflect.Value) (reflect.Value, error) {
	switch {
	case value.Kind() == reflect.Ptr:
		if value.IsNil() {
			return reflect.Value{}, errors.New("constructor returned a nil pointer")
		}
		return value, nil
	case value.Kind() == reflect.Struct:
		ptr := reflect.New(value.Type())
		ptr.Elem().Set(value)
		return ptr, nil
	default:
		return value, nil
	}
}

func NewConstructors() *Constructors {
	return &Constructors{
		byType: xsync.NewMapOf[reflect.Type, *SortedCOWSlice[*Constructor]](),
	}
}

// DefaultConstructors is the process wide registry used when no other one is configured.
func DefaultConstructors() *Constructors {
	return defaultConstructors
}

// Register adds constructor functions to the registry.
func (r *Constructors) Register(factoryMethods ...any) error {
	for _, factoryMethod := range factoryMethods {
		constructor, err := NewConstructor(factoryMethod)
		if err != nil {
			return fmt.Errorf("failed to register constructor %T:\n\t%w", factoryMethod, err)
		}
		constructors, _ := r.byType.LoadOrCompute(constructor.produces, func() *SortedCOWSlice[*Constructor] {
			return NewSortedCOWSlice[*Constructor](compareByArity)
		})
		constructors.Add(constructor)
		r.version.Add(1)
	}
	return nil
}

func (r *Constructors) MustRegister(factoryMethods ...any) *Constructors {
	if err := r.Register(factoryMethods...); err != nil {
		panic(err.Error())
	}
	return r
}

// For returns the constructors producing the given type, by ascending arity.
func (r *Constructors) For(typ reflect.Type) []*Constructor {
	constructors, found := r.byType.Load(reflectutils.DerefType(typ))
	if !found {
		return nil
	}
	return constructors.All()
}

// Version changes every time a constructor is registered.
func (r *Constructors) Version() uint64 {
	return r.version.Load()
}

// RegisterConstructor registers constructor functions in the default registry.
func RegisterConstructor(factoryMethods ...any) error {
	return defaultConstructors.Register(factoryMethods...)
}

// MustRegisterConstructor is RegisterConstructor panicking on invalid constructors.
func MustRegisterConstructor(factoryMethods ...any) {
	defaultConstructors.MustRegister(factoryMethods...)
}

func compareByArity(c1, c2 *Constructor) fn.ComparisonResult {
	return fn.CompareInts(len(c1.params), len(c2.params))
}
