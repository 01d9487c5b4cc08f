package godeco

import (
	"fmt"
	"reflect"
)

type (
	// Operation describes an invoked method, with enough structure for a handler to route it.
	Operation struct {
		Name     string
		NumIn    int
		NumOut   int
		Variadic bool
		// ReturnsError is true when the last result of the method is an error.
		ReturnsError bool
	}

	// Handler receives every call made on an instance produced by interception.
	//
	// The target is the delegate the decoration wraps. The results must follow the
	// method signature, the error slot included. A non nil error is a failure of the
	// handler itself: it is returned through the error slot when the method has one,
	// and raised as a panic otherwise.
	Handler interface {
		Invoke(target any, op Operation, args []any) ([]any, error)
	}

	// HandlerFunc adapts a plain function to a Handler.
	HandlerFunc func(target any, op Operation, args []any) ([]any, error)

	// DelegateProvider is implemented by the proxies, it exposes the decorated delegate.
	DelegateProvider interface {
		Delegate() any
	}
)

func (f HandlerFunc) Invoke(target any, op Operation, args []any) ([]any, error) {
	return f(target, op, args)
}

func (o Operation) String() string {
	return fmt.Sprintf("%s/%d", o.Name, o.NumIn)
}

// OperationOf describes an interface method, or a method of a concrete type (receiver excluded).
func OperationOf(method reflect.Method) Operation {
	typ := method.Type
	numIn := typ.NumIn()
	if method.Func.IsValid() {
		// methods of concrete types carry their receiver as first parameter
		numIn--
	}
	numOut := typ.NumOut()
	return Operation{
		Name:         method.Name,
		NumIn:        numIn,
		NumOut:       numOut,
		Variadic:     typ.IsVariadic(),
		ReturnsError: numOut > 0 && typ.Out(numOut-1) == ErrorType,
	}
}

// Forward calls the operation on the target through reflection, and returns all of its results.
//
// Errors returned by the called method are part of the results, the returned error is only
// set when the call itself cannot be made. For variadic operations the last argument is the
// slice of variadic values.
func Forward(target any, op Operation, args []any) (results []any, err error) {
	if target == nil {
		return nil, fmt.Errorf("cannot forward %s to a nil target", op)
	}
	method := reflect.ValueOf(target).MethodByName(op.Name)
	if !method.IsValid() {
		return nil, fmt.Errorf("%T has no method %s", target, op.Name)
	}
	methodType := method.Type()
	if methodType.NumIn() != len(args) {
		return nil, fmt.Errorf("%T.%s expects %d arguments, got %d", target, op.Name, methodType.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		paramType := methodType.In(i)
		if arg == nil {
			in[i] = reflect.Zero(paramType)
			continue
		}
		value := reflect.ValueOf(arg)
		if !value.Type().AssignableTo(paramType) {
			return nil, fmt.Errorf("argument %d of %T.%s: %s is not assignable to %s", i, target, op.Name, value.Type(), paramType)
		}
		in[i] = value
	}

	var out []reflect.Value
	if methodType.IsVariadic() {
		out = method.CallSlice(in)
	} else {
		out = method.Call(in)
	}

	results = make([]any, len(out))
	for i, value := range out {
		results[i] = value.Interface()
	}
	return results, nil
}

// Invoker binds a handler to a target, generated proxies route every call through it.
type Invoker struct {
	target  any
	handler Handler
}

func NewInvoker(target any, handler Handler) Invoker {
	return Invoker{target: target, handler: handler}
}

// Invoke calls the handler and returns exactly op.NumOut results.
func (i Invoker) Invoke(op Operation, args ...any) []any {
	results, err := i.handler.Invoke(i.target, op, args)
	out := make([]any, op.NumOut)
	if err != nil {
		if !op.ReturnsError {
			panic(err)
		}
		out[op.NumOut-1] = err
		return out
	}
	if len(results) > op.NumOut {
		panic(fmt.Errorf("handler returned %d results on %s, the method has %d", len(results), op, op.NumOut))
	}
	copy(out, results)
	return out
}

// Result returns the i-th result of an invocation as a T.
//
// Absent and nil results give the zero value of T, a result of another type panics.
func Result[T any](results []any, i int) T {
	var zero T
	if i >= len(results) || results[i] == nil {
		return zero
	}
	typed, ok := results[i].(T)
	if !ok {
		panic(fmt.Errorf("result %d is a %T, expected %s", i, results[i], TypeOf[T]()))
	}
	return typed
}

// Delegate returns the target the invoker forwards to.
func (i Invoker) Delegate() any {
	return i.target
}
