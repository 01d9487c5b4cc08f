package godeco

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/godeco/fn"
	"github.com/a-peyrard/godeco/reflectutils"
	"github.com/a-peyrard/godeco/slices"
)

// NoInsertion is the insertion index of plans whose constructor takes no delegate.
const NoInsertion = -1

const injectMarker = "inject"

type (
	// Plan tells how to build an instance of a type around a delegate.
	Plan struct {
		Type       reflect.Type
		Capability reflect.Type
		// Constructor is nil when the zero value of Type is used.
		Constructor *Constructor
		// InsertAt is the position of the delegate in the constructor parameters, or NoInsertion.
		InsertAt int
		// Fields receive the delegate once the instance is built.
		Fields []reflectutils.Field
	}

	injectionPolicy struct {
		tag    string
		strict bool
	}
)

// Params returns the formal parameters of the chosen constructor.
func (p *Plan) Params() []reflect.Type {
	if p.Constructor == nil {
		return nil
	}
	return p.Constructor.params
}

func (p *Plan) String() string {
	constructor := "zero value"
	if p.Constructor != nil {
		constructor = p.Constructor.String()
	}
	fields := slices.Map(p.Fields, reflectutils.Field.String)
	return fmt.Sprintf(
		"Plan(%s, %s, insertAt=%d, fields=[%s])",
		typeName(p.Type),
		constructor,
		p.InsertAt,
		strings.Join(fields, ", "),
	)
}

// findPlan matches the caller arguments against the constructors of typ.
//
// The delegate is tried at every position of the arguments, lowest first. Without any
// match, a constructor taking the arguments alone is looked up, the delegate then only
// reaches the instance through its fields.
func findPlan(
	constructors *Constructors,
	typ reflect.Type,
	capability reflect.Type,
	argTypes []reflect.Type,
	policy injectionPolicy,
) (*Plan, error) {
	var (
		structType = reflectutils.DerefType(typ)
		candidates = constructors.For(structType)
		fields     = candidateFields(structType, capability, policy)
		attempted  = make([]string, 0, len(argTypes)+2)
	)

	for i := 0; i <= len(argTypes); i++ {
		wanted := slices.Insert(argTypes, i, capability)
		attempted = append(attempted, signature(wanted))
		if constructor := findConstructor(candidates, wanted, i); constructor != nil {
			return &Plan{Type: structType, Capability: capability, Constructor: constructor, InsertAt: i, Fields: fields}, nil
		}
	}

	attempted = append(attempted, signature(argTypes))
	if constructor := findConstructor(candidates, argTypes, NoInsertion); constructor != nil {
		return &Plan{Type: structType, Capability: capability, Constructor: constructor, InsertAt: NoInsertion, Fields: fields}, nil
	}

	if len(argTypes) == 0 && structType.Kind() == reflect.Struct {
		return &Plan{Type: structType, Capability: capability, InsertAt: NoInsertion, Fields: fields}, nil
	}

	return nil, &Error{
		Kind:      InstantiationFailure,
		Type:      typ,
		Attempted: attempted,
		Err:       fmt.Errorf("no constructor of %s matches the arguments %s", structType, signature(argTypes)),
	}
}

func findConstructor(candidates []*Constructor, wanted []reflect.Type, delegateAt int) *Constructor {
	for _, candidate := range candidates {
		if len(candidate.params) != len(wanted) {
			continue
		}
		matches := true
		for j, param := range candidate.params {
			if j == delegateAt {
				// the capability is an interface: the delegate fits any parameter it implements
				matches = wanted[j].AssignableTo(param)
			} else {
				matches = matchType(param, wanted[j])
			}
			if !matches {
				break
			}
		}
		if matches {
			return candidate
		}
	}
	return nil
}

// candidateFields returns the fields of typ able to hold the delegate.
//
// When the type tags some of its fields, only those are returned. Untagged fields
// of the empty interface are never candidates.
func candidateFields(typ reflect.Type, capability reflect.Type, policy injectionPolicy) []reflectutils.Field {
	if typ.Kind() != reflect.Struct {
		return nil
	}

	tagged := reflectutils.Fields(
		typ,
		reflectutils.WithTag(policy.tag, injectMarker),
		reflectutils.WithTypeAssignableFrom(capability),
	)
	if len(tagged) > 0 || policy.strict {
		return tagged
	}

	return reflectutils.Fields(
		typ,
		reflectutils.WithInterfaceType(),
		withMethods(),
		reflectutils.WithTypeAssignableFrom(capability),
	)
}

func withMethods() fn.Predicate[reflectutils.Field] {
	return func(f reflectutils.Field) bool {
		return f.Type.NumMethod() > 0
	}
}

// instantiate runs the plan, the delegate being inserted in the constructor arguments when planned.
func (p *Plan) instantiate(delegate reflect.Value, args []any, argTypes []reflect.Type) (reflect.Value, error) {
	if p.Constructor == nil {
		return reflect.New(p.Type), nil
	}

	values := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			values[i] = reflect.Zero(argTypes[i])
		} else {
			values[i] = reflect.ValueOf(arg)
		}
	}

	instance, err := p.Constructor.Call(slices.Insert(values, p.InsertAt, delegate))
	if err != nil {
		return reflect.Value{}, &Error{
			Kind:      InstantiationFailure,
			Type:      p.Type,
			Attempted: []string{signature(p.Constructor.params)},
			Err:       err,
		}
	}
	return instance, nil
}
