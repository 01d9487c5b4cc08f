package intercept

import (
	"github.com/a-peyrard/godeco"
	"github.com/a-peyrard/godeco/concurrent"
	"github.com/a-peyrard/godeco/slices"
)

// Call is one operation seen by a Recorder.
type Call struct {
	Operation godeco.Operation
	Args      []any
	Results   []any
	Err       error
}

// Recorder remembers the calls going through it. It is safe for concurrent use.
type Recorder struct {
	calls *concurrent.Slice[Call]
}

func NewRecorder() *Recorder {
	return &Recorder{calls: concurrent.NewSlice[Call]()}
}

// Intercept is the Recorder as an Interceptor.
func (r *Recorder) Intercept(_ any, op godeco.Operation, args []any, next Next) ([]any, error) {
	results, err := next(args)
	r.calls.Append(Call{Operation: op, Args: args, Results: results, Err: err})
	return results, err
}

// Invoke records the call and forwards it to the target.
func (r *Recorder) Invoke(target any, op godeco.Operation, args []any) ([]any, error) {
	return r.Intercept(target, op, args, func(args []any) ([]any, error) {
		return godeco.Forward(target, op, args)
	})
}

func (r *Recorder) Calls() []Call {
	return r.calls.Snapshot()
}

// Operations returns the names of the recorded operations, in call order.
func (r *Recorder) Operations() []string {
	return slices.Map(r.calls.Snapshot(), func(c Call) string {
		return c.Operation.Name
	})
}

func (r *Recorder) Reset() {
	r.calls.Reset()
}
