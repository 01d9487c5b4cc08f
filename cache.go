package godeco

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

type (
	// Key identifies a synthesized shape: the requested type decorating a capability.
	Key struct {
		Requested  reflect.Type
		Capability reflect.Type
	}

	planKey struct {
		typ          reflect.Type
		capability   reflect.Type
		args         string
		policy       injectionPolicy
		constructors *Constructors
		version      uint64
	}

	// Cache stores synthesized shapes and instantiation plans.
	//
	// Lookups never lock once a key is populated. A missing key is computed at most once,
	// concurrent callers all observe the same result. Failures are not stored.
	Cache struct {
		shapes *xsync.MapOf[Key, *Shape]
		plans  *xsync.MapOf[planKey, *Plan]
	}
)

var defaultCache = NewCache()

func NewCache() *Cache {
	return &Cache{
		shapes: xsync.NewMapOf[Key, *Shape](),
		plans:  xsync.NewMapOf[planKey, *Plan](),
	}
}

// DefaultCache is the process wide cache.
func DefaultCache() *Cache {
	return defaultCache
}

func (k Key) String() string {
	return fmt.Sprintf("(%s, %s)", typeName(k.Requested), typeName(k.Capability))
}

// Shape returns the shape cached under key, synthesizing it on first use.
func (c *Cache) Shape(key Key, synthesize func() (*Shape, error)) (*Shape, error) {
	if shape, found := c.shapes.Load(key); found {
		return shape, nil
	}
	return computeOnce(c.shapes, key, synthesize)
}

// LookupShape returns the shape cached under key, if any.
func (c *Cache) LookupShape(key Key) (*Shape, bool) {
	return c.shapes.Load(key)
}

// Size returns the number of synthesized shapes.
func (c *Cache) Size() int {
	return c.shapes.Size()
}

// Range calls f for every cached shape, until f returns false.
func (c *Cache) Range(f func(key Key, shape *Shape) bool) {
	c.shapes.Range(f)
}

// Plans returns the number of cached instantiation plans.
func (c *Cache) Plans() int {
	return c.plans.Size()
}

func (c *Cache) plan(key planKey, find func() (*Plan, error)) (*Plan, error) {
	if plan, found := c.plans.Load(key); found {
		return plan, nil
	}
	return computeOnce(c.plans, key, find)
}

func computeOnce[K comparable, V any](m *xsync.MapOf[K, V], key K, compute func() (V, error)) (V, error) {
	var computeErr error
	value, _ := m.Compute(key, func(old V, loaded bool) (V, bool) {
		if loaded {
			return old, false
		}
		computed, err := compute()
		if err != nil {
			computeErr = err
			// nothing is stored for the key
			return computed, true
		}
		return computed, false
	})
	if computeErr != nil {
		var zero V
		return zero, computeErr
	}
	return value, nil
}

// argsKey identifies a list of types by identity, names are not unique across packages.
func argsKey(types []reflect.Type) string {
	var b strings.Builder
	for _, typ := range types {
		fmt.Fprintf(&b, "%p;", typ)
	}
	return b.String()
}
