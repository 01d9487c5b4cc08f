package godeco

import (
	"context"
	"reflect"
)

// Prepare synthesizes with the default generator the shapes of abstract types decorating I.
func Prepare[I any](ctx context.Context, types ...reflect.Type) error {
	return Default().Prepare(ctx, TypeOf[I](), types...)
}
