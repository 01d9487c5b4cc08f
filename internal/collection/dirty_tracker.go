package collection

import (
	"strings"
	"sync/atomic"

	"github.com/a-peyrard/godeco"
)

var mutations = []string{"Add", "Set", "Remove"}

// DirtyTracker is a handler answering IsDirty, every other operation being forwarded.
//
// An operation whose name contains Add, Set or Remove marks the list as dirty.
type DirtyTracker struct {
	dirty atomic.Bool
}

func (t *DirtyTracker) Invoke(target any, op godeco.Operation, args []any) ([]any, error) {
	if op.Name == "IsDirty" && op.NumIn == 0 {
		return []any{t.dirty.Load()}, nil
	}
	for _, mutation := range mutations {
		if strings.Contains(op.Name, mutation) {
			t.dirty.Store(true)
			break
		}
	}
	return godeco.Forward(target, op, args)
}

func (t *DirtyTracker) IsDirty() bool {
	return t.dirty.Load()
}
