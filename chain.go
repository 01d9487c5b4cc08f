package godeco

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/godeco/option"
)

// Chain is one step of a decoration. Every With call returns a new Chain wrapping the
// instance of the previous one, chains are never modified once built.
type Chain[I any] struct {
	prev       *Chain[I]
	target     I
	capability reflect.Type
	generator  Generator
	step       string
}

// Of starts a decoration of target, every decoration of the chain will implement I.
//
// Without options, chains share the default generator and the process wide cache.
func Of[I any](target I, opts ...option.Option[Options]) *Chain[I] {
	var generator Generator
	if len(opts) == 0 {
		generator = Default()
	} else {
		options := buildOptions(opts...)
		generator = options.generator
		if generator == nil {
			generator = newGenerator(options)
		}
	}
	return &Chain[I]{
		target:     target,
		capability: TypeOf[I](),
		generator:  generator,
		step:       "root",
	}
}

// Must returns the chain, and panics when err is not nil.
func Must[I any](c *Chain[I], err error) *Chain[I] {
	if err != nil {
		panic(err)
	}
	return c
}

// WithHandler decorates with a proxy of the capability, every call going through the handler.
func (c *Chain[I]) WithHandler(handler Handler) (*Chain[I], error) {
	return c.WithHandlerAs(handler, c.capability)
}

// WithHandlerAs decorates with an instance of resultType routing calls to the handler.
//
// The result type is either an interface extending the capability, or a struct embedding
// it, in which case only the operations the struct does not declare reach the handler.
func (c *Chain[I]) WithHandlerAs(handler Handler, resultType reflect.Type) (*Chain[I], error) {
	if err := c.checkCapability(resultType); err != nil {
		return nil, err
	}
	if resultType == nil {
		return nil, errorf(GenerationFailure, nil, "result type must not be nil")
	}
	decorated, err := c.generator.Handle(c.target, handler, resultType, c.capability)
	if err != nil {
		return nil, normalize(GenerationFailure, resultType, err)
	}
	return c.next(decorated, "handler "+resultType.String(), resultType)
}

// WithFactory decorates with the result of fn applied to the current instance.
func (c *Chain[I]) WithFactory(fn func(I) I) (*Chain[I], error) {
	if fn == nil {
		return nil, errorf(InstantiationFailure, c.capability, "factory must not be nil")
	}
	decorated, err := protect(func() I {
		return fn(c.target)
	})
	if err != nil {
		return nil, newError(InstantiationFailure, c.capability, err)
	}
	return c.next(decorated, "factory", c.capability)
}

// WithType decorates with an instance of typ, built from args and the current instance.
//
// Argument types are the dynamic types of args, use WithTypeArgs to pass nil arguments.
func (c *Chain[I]) WithType(typ reflect.Type, args ...any) (*Chain[I], error) {
	argTypes, nilAt := typesOf(args)
	if nilAt >= 0 {
		return nil, errorf(
			InstantiationFailure,
			typ,
			"cannot infer the type of the nil argument at position %d, use WithTypeArgs",
			nilAt,
		)
	}
	return c.WithTypeArgs(typ, args, argTypes)
}

// WithTypeArgs is WithType with explicit argument types.
func (c *Chain[I]) WithTypeArgs(typ reflect.Type, args []any, argTypes []reflect.Type) (*Chain[I], error) {
	if err := c.checkCapability(typ); err != nil {
		return nil, err
	}
	if typ == nil {
		return nil, errorf(GenerationFailure, nil, "requested type must not be nil")
	}
	if len(args) != len(argTypes) {
		return nil, errorf(
			InstantiationFailure,
			typ,
			"%d arguments given with %d argument types",
			len(args),
			len(argTypes),
		)
	}
	for i, argType := range argTypes {
		if argType == nil {
			return nil, errorf(InstantiationFailure, typ, "argument type at position %d must not be nil", i)
		}
		if args[i] != nil && !reflect.TypeOf(args[i]).AssignableTo(argType) {
			return nil, errorf(InstantiationFailure, typ, "argument %d of type %T is not a %s", i, args[i], argType)
		}
	}

	decorated, err := c.generator.Construct(c.target, typ, c.capability, args, argTypes)
	if err != nil {
		return nil, normalize(InstantiationFailure, typ, err)
	}
	return c.next(decorated, "type "+typ.String()+signature(argTypes), typ)
}

// WithSupplier decorates with whatever the supplier returns.
func (c *Chain[I]) WithSupplier(supplier func() I) (*Chain[I], error) {
	if supplier == nil {
		return nil, errorf(InstantiationFailure, c.capability, "supplier must not be nil")
	}
	decorated, err := protect(supplier)
	if err != nil {
		return nil, newError(InstantiationFailure, c.capability, err)
	}
	return c.next(decorated, "supplier", c.capability)
}

// Make returns the outermost instance of the chain.
func (c *Chain[I]) Make() I {
	return c.target
}

// MakeAs returns the outermost instance of the chain as a D, the type produced by the last step.
func MakeAs[D any, I any](c *Chain[I]) (D, bool) {
	d, ok := any(c.target).(D)
	return d, ok
}

// Prev returns the chain this one decorates, nil for the root.
func (c *Chain[I]) Prev() *Chain[I] {
	return c.prev
}

// Depth returns the number of decorations applied since the root.
func (c *Chain[I]) Depth() int {
	depth := 0
	for node := c.prev; node != nil; node = node.prev {
		depth++
	}
	return depth
}

// Capability returns the type every instance of the chain implements.
func (c *Chain[I]) Capability() reflect.Type {
	return c.capability
}

// Describe lists the steps of the chain, from the root.
func (c *Chain[I]) Describe() string {
	var nodes []*Chain[I]
	for node := c; node != nil; node = node.prev {
		nodes = append(nodes, node)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("* Decoration of %s:\n", c.capability))
	for i := len(nodes) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("\t%d. %s -> %T\n", len(nodes)-1-i, nodes[i].step, any(nodes[i].target)))
	}
	return b.String()
}

func (c *Chain[I]) checkCapability(requested reflect.Type) error {
	if c.capability.Kind() != reflect.Interface {
		return errorf(GenerationFailure, requested, "capability %s is not an interface", c.capability)
	}
	return nil
}

func (c *Chain[I]) next(decorated any, step string, requested reflect.Type) (*Chain[I], error) {
	if isNil(decorated) {
		return nil, errorf(InstantiationFailure, requested, "%s produced a nil instance", step)
	}
	target, ok := decorated.(I)
	if !ok {
		return nil, errorf(GenerationFailure, requested, "%T does not implement %s", decorated, c.capability)
	}
	return &Chain[I]{
		prev:       c,
		target:     target,
		capability: c.capability,
		generator:  c.generator,
		step:       step,
	}, nil
}

// protect runs a caller function, turning its panic into an error.
func protect[T any](f func() T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in decoration: %v", r)
		}
	}()
	return f(), nil
}
