package godeco

import (
	"context"
	"reflect"
	"sync"

	"github.com/a-peyrard/godeco/option"
	"github.com/a-peyrard/godeco/reflectutils"
	"github.com/a-peyrard/godeco/runner"
	"github.com/rs/zerolog"
)

type (
	// Generator materializes the instance of one decoration step.
	Generator interface {
		// Handle builds an instance of resultType whose operations are routed to the handler.
		Handle(target any, handler Handler, resultType, capability reflect.Type) (any, error)
		// Construct builds an instance of requested around the target, using the constructor arguments.
		Construct(target any, requested, capability reflect.Type, args []any, argTypes []reflect.Type) (any, error)
	}

	// DefaultGenerator picks the strategy from the shape of the requested type:
	//  - interfaces are served by a proxy routing every call to a handler,
	//  - abstract structs are synthesized, their delegate slot being filled with the target
	//    (auto-forward) or with a proxy of the capability (handler-forward),
	//  - any other type is built by its constructors, the target being injected.
	DefaultGenerator struct {
		cache        *Cache
		constructors *Constructors
		logger       zerolog.Logger
		policy       injectionPolicy
		override     bool
	}
)

var defaultGenerator = sync.OnceValue(func() *DefaultGenerator {
	return NewGenerator()
})

// Default returns the generator shared by the chains built without options.
func Default() *DefaultGenerator {
	return defaultGenerator()
}

func NewGenerator(opts ...option.Option[Options]) *DefaultGenerator {
	return newGenerator(buildOptions(opts...))
}

func newGenerator(options *Options) *DefaultGenerator {
	return &DefaultGenerator{
		cache:        options.cache,
		constructors: options.constructors,
		logger:       *options.logger,
		policy: injectionPolicy{
			tag:    *options.injectTag,
			strict: *options.strictMarkers,
		},
		override: *options.override,
	}
}

// Cache returns the cache holding the shapes synthesized by this generator.
func (g *DefaultGenerator) Cache() *Cache {
	return g.cache
}

func (g *DefaultGenerator) Handle(target any, handler Handler, resultType, capability reflect.Type) (any, error) {
	if handler == nil {
		return nil, errorf(GenerationFailure, resultType, "handler must not be nil")
	}
	if resultType == nil {
		resultType = capability
	}

	if resultType.Kind() == reflect.Interface {
		if !resultType.Implements(capability) {
			return nil, errorf(GenerationFailure, resultType, "%s does not extend %s", resultType, capability)
		}
		g.logger.Debug().Stringer("type", resultType).Str("strategy", "proxy").Msg("Generating delegate")
		return newProxy(resultType, target, handler)
	}

	if !isAbstract(resultType, capability) {
		return nil, errorf(
			GenerationFailure,
			resultType,
			"handlers can only decorate interfaces or structs embedding %s",
			capability,
		)
	}

	shape, err := g.shape(resultType, capability)
	if err != nil {
		return nil, err
	}
	slot, err := newProxy(capability, target, handler)
	if err != nil {
		return nil, err
	}

	g.logger.Debug().Stringer("type", resultType).Str("strategy", "handler-forward").Msg("Generating delegate")
	instance, plan, err := g.instantiate(resultType, capability, target, nil, nil)
	if err != nil {
		return nil, err
	}

	// the slot is the synthesized wiring, it always routes to the handler
	if err := fillSlot(instance, shape, reflect.ValueOf(slot), true); err != nil {
		return nil, err
	}

	g.inject(instance, plan, target, shape.Slot)
	return instance.Interface(), nil
}

func (g *DefaultGenerator) Construct(
	target any,
	requested, capability reflect.Type,
	args []any,
	argTypes []reflect.Type,
) (any, error) {
	if requested == nil {
		return nil, errorf(GenerationFailure, nil, "requested type must not be nil")
	}
	if requested.Kind() == reflect.Interface {
		return nil, errorf(GenerationFailure, requested, "interfaces cannot be constructed, decorate them with a handler")
	}

	var shape *Shape
	if isAbstract(requested, capability) {
		var err error
		if shape, err = g.shape(requested, capability); err != nil {
			return nil, err
		}
		g.logger.Debug().Stringer("type", requested).Str("strategy", "auto-forward").Msg("Generating delegate")
	} else {
		g.logger.Debug().Stringer("type", requested).Str("strategy", "direct").Msg("Generating delegate")
	}

	instance, plan, err := g.instantiate(requested, capability, target, args, argTypes)
	if err != nil {
		return nil, err
	}

	if shape == nil {
		g.inject(instance, plan, target, nil)
		return instance.Interface(), nil
	}

	// a constructor taking the delegate may already have filled the slot
	if err := fillSlot(instance, shape, delegateValue(target, capability), g.override); err != nil {
		return nil, err
	}
	g.inject(instance, plan, target, shape.Slot)

	return instance.Interface(), nil
}

func (g *DefaultGenerator) shape(requested, capability reflect.Type) (*Shape, error) {
	key := Key{Requested: reflectutils.DerefType(requested), Capability: capability}
	return g.cache.Shape(key, func() (*Shape, error) {
		shape, err := synthesize(requested, capability)
		if err != nil {
			return nil, err
		}
		g.logger.Debug().Stringer("shape", shape).Msg("Synthesized shape")
		return shape, nil
	})
}

func (g *DefaultGenerator) instantiate(
	typ, capability reflect.Type,
	target any,
	args []any,
	argTypes []reflect.Type,
) (reflect.Value, *Plan, error) {
	key := planKey{
		typ:          reflectutils.DerefType(typ),
		capability:   capability,
		args:         argsKey(argTypes),
		policy:       g.policy,
		constructors: g.constructors,
		version:      g.constructors.Version(),
	}
	plan, err := g.cache.plan(key, func() (*Plan, error) {
		plan, err := findPlan(g.constructors, typ, capability, argTypes, g.policy)
		if err != nil {
			return nil, err
		}
		g.logger.Debug().Stringer("plan", plan).Msg("Resolved instantiation plan")
		return plan, nil
	})
	if err != nil {
		return reflect.Value{}, nil, err
	}

	instance, err := plan.instantiate(delegateValue(target, capability), args, argTypes)
	if err != nil {
		return reflect.Value{}, nil, err
	}
	return instance, plan, nil
}

func fillSlot(instance reflect.Value, shape *Shape, value reflect.Value, override bool) error {
	writable, err := reflectutils.Writable(instance.Elem().FieldByIndex(shape.Slot))
	if err != nil {
		return newError(GenerationFailure, shape.Type, err)
	}
	if !writable.IsZero() && !override {
		return nil
	}
	writable.Set(value)
	return nil
}

// inject populates the plan fields, failures are only reported in the logs.
func (g *DefaultGenerator) inject(instance reflect.Value, plan *Plan, target any, exclude []int) {
	injected, err := injectFields(instance, plan.Fields, delegateValue(target, plan.Capability), g.override, exclude)
	if err != nil {
		g.logger.Warn().Err(err).Stringer("type", instance.Type()).Msg("Delegate injection failed")
		return
	}
	if injected > 0 {
		g.logger.Debug().Int("fields", injected).Stringer("type", instance.Type()).Msg("Delegate injected")
	}
}

// Prepare synthesizes the shapes of the given types concurrently, so the first decorations
// do not pay for it. Types that are not abstract are skipped.
func (g *DefaultGenerator) Prepare(ctx context.Context, capability reflect.Type, types ...reflect.Type) error {
	if capability == nil || capability.Kind() != reflect.Interface {
		return errorf(GenerationFailure, capability, "capability %s must be an interface", typeName(capability))
	}
	tasks := make([]runner.Task, 0, len(types))
	for i, typ := range types {
		if typ == nil {
			return errorf(GenerationFailure, nil, "type at position %d must not be nil", i)
		}
		if !isAbstract(typ, capability) {
			g.logger.Debug().Stringer("type", typ).Msg("Skipping preparation of a concrete type")
			continue
		}
		typ := typ
		tasks = append(tasks, func(ctx context.Context) error {
			_, err := g.shape(typ, capability)
			return err
		})
	}
	return runner.RunAll(ctx, 0, tasks...)
}
