package godeco

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/a-peyrard/godeco/reflectutils"
	"github.com/a-peyrard/godeco/set"
)

// Shape is the synthesized layout of an abstract struct decorating a capability.
//
// An abstract struct embeds an interface able to hold the capability: the embedded field is
// the delegate slot, and every capability operation the struct does not declare is promoted
// from it. A shape is immutable and shared by all the instances built from it.
type Shape struct {
	Type       reflect.Type
	Capability reflect.Type
	// Slot is the index path of the embedded delegate field.
	Slot     []int
	SlotType reflect.Type
	// Own lists the capability operations declared by the struct or its embedded structs.
	Own []string
	// Forwarded lists the capability operations promoted from the delegate slot.
	Forwarded []string
}

func (s *Shape) String() string {
	return fmt.Sprintf(
		"Shape(%s over %s, slot=%s, own=[%s], forwarded=[%s])",
		s.Type,
		s.Capability,
		s.SlotType,
		strings.Join(s.Own, ", "),
		strings.Join(s.Forwarded, ", "),
	)
}

// isAbstract reports whether typ is a struct embedding an interface able to hold the capability.
func isAbstract(typ reflect.Type, capability reflect.Type) bool {
	_, found := findSlot(reflectutils.DerefType(typ), capability)
	return found
}

// findSlot returns the shallowest embedded interface field able to hold the capability.
func findSlot(structType reflect.Type, capability reflect.Type) (reflectutils.Field, bool) {
	if structType.Kind() != reflect.Struct {
		return reflectutils.Field{}, false
	}
	slots := reflectutils.Fields(
		structType,
		reflectutils.Embedded(),
		reflectutils.WithInterfaceType(),
		reflectutils.WithTypeAssignableFrom(capability),
	)
	if len(slots) == 0 {
		return reflectutils.Field{}, false
	}
	slot := slots[0]
	for _, candidate := range slots[1:] {
		if len(candidate.Path) < len(slot.Path) {
			slot = candidate
		}
	}
	return slot, true
}

func synthesize(requested reflect.Type, capability reflect.Type) (*Shape, error) {
	structType := reflectutils.DerefType(requested)
	if structType.Kind() != reflect.Struct {
		return nil, errorf(GenerationFailure, requested, "only structs can be synthesized, got %s", structType.Kind())
	}
	if capability.Kind() != reflect.Interface {
		return nil, errorf(GenerationFailure, requested, "capability %s is not an interface", capability)
	}

	slot, found := findSlot(structType, capability)
	if !found {
		return nil, errorf(GenerationFailure, requested, "%s does not embed any interface able to hold %s", structType, capability)
	}

	ptrType := reflect.PointerTo(structType)
	if !ptrType.Implements(capability) {
		return nil, errorf(GenerationFailure, requested, "%s does not implement %s", ptrType, capability)
	}

	shape := &Shape{
		Type:       structType,
		Capability: capability,
		Slot:       slot.Path,
		SlotType:   slot.Type,
	}
	for i := 0; i < capability.NumMethod(); i++ {
		name := capability.Method(i).Name
		if declares(structType, name, set.New[reflect.Type]()) {
			shape.Own = append(shape.Own, name)
		} else {
			shape.Forwarded = append(shape.Forwarded, name)
		}
	}
	return shape, nil
}

// declares reports whether the struct, or one of its embedded structs, has a body for the method.
//
// Methods promoted from embedded fields are compiler generated wrappers, which is how
// they are told apart from the declared ones.
func declares(structType reflect.Type, name string, visited set.Set[reflect.Type]) bool {
	if !visited.Add(structType) {
		return false
	}

	if method, found := structType.MethodByName(name); found {
		if !isWrapper(method.Func) {
			return true
		}
	} else if method, found := reflect.PointerTo(structType).MethodByName(name); found && !isWrapper(method.Func) {
		return true
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.Anonymous {
			continue
		}
		embedded := reflectutils.DerefType(field.Type)
		if embedded.Kind() == reflect.Struct && declares(embedded, name, visited) {
			return true
		}
	}
	return false
}

func isWrapper(method reflect.Value) bool {
	if !method.IsValid() {
		return true
	}
	f := runtime.FuncForPC(method.Pointer())
	if f == nil {
		return true
	}
	file, _ := f.FileLine(f.Entry())
	return file == "<autogenerated>"
}
