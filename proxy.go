package godeco

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// ProxyFactory builds a proxy implementing one interface, every call being routed to the invoker.
type ProxyFactory func(inv Invoker) any

var proxies = xsync.NewMapOf[reflect.Type, ProxyFactory]()

// RegisterProxy registers the proxy factory of interface I.
//
// Factories are usually registered from the init function of the files written by godeco-gen.
// Registering twice for the same interface replaces the previous factory.
func RegisterProxy[I any](factory func(inv Invoker) I) {
	typ := TypeOf[I]()
	if typ.Kind() != reflect.Interface {
		panic(fmt.Sprintf("proxies can only be registered for interfaces, got %s", typ))
	}
	proxies.Store(typ, func(inv Invoker) any {
		return factory(inv)
	})
}

func newProxy(iface reflect.Type, target any, handler Handler) (any, error) {
	factory, found := proxies.Load(iface)
	if !found {
		return nil, errorf(
			GenerationFailure,
			iface,
			"no proxy registered for %s, annotate it with @proxy and run godeco-gen, or call godeco.RegisterProxy",
			iface,
		)
	}
	proxy := factory(NewInvoker(target, handler))
	if proxy == nil || !reflect.TypeOf(proxy).Implements(iface) {
		return nil, errorf(GenerationFailure, iface, "proxy factory returned %T which does not implement %s", proxy, iface)
	}
	return proxy, nil
}
