package godeco

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type joiner struct{}

func (joiner) Join(sep string, parts ...string) (string, error) {
	if len(parts) == 0 {
		return "", errors.New("nothing to join")
	}
	return strings.Join(parts, sep), nil
}

func (joiner) Reset() {}

func TestOperationOf(t *testing.T) {
	t.Run("it should describe interface methods", func(t *testing.T) {
		// GIVEN
		method, _ := TypeOf[counter]().MethodByName("Value")

		// WHEN
		op := OperationOf(method)

		// THEN
		assert.Equal(t, Operation{Name: "Value", NumOut: 1}, op)
		assert.Equal(t, "Value/0", op.String())
	})

	t.Run("it should describe concrete methods without their receiver", func(t *testing.T) {
		// GIVEN
		method, _ := TypeOf[joiner]().MethodByName("Join")

		// WHEN
		op := OperationOf(method)

		// THEN
		assert.Equal(t, Operation{Name: "Join", NumIn: 2, NumOut: 2, Variadic: true, ReturnsError: true}, op)
	})
}

func TestForward(t *testing.T) {
	join := Operation{Name: "Join", NumIn: 2, NumOut: 2, Variadic: true, ReturnsError: true}

	t.Run("it should call the target and return all the results", func(t *testing.T) {
		// WHEN
		results, err := Forward(joiner{}, join, []any{"-", []string{"a", "b"}})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, []any{"a-b", nil}, results)
	})

	t.Run("it should return the method error among the results", func(t *testing.T) {
		// WHEN
		results, err := Forward(joiner{}, join, []any{"-", []string(nil)})

		// THEN
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.EqualError(t, results[1].(error), "nothing to join")
	})

	t.Run("it should fail when the call cannot be made", func(t *testing.T) {
		_, err := Forward(nil, join, nil)
		assert.Error(t, err)

		_, err = Forward(joiner{}, Operation{Name: "Split"}, nil)
		assert.Error(t, err)

		_, err = Forward(joiner{}, join, []any{"-"})
		assert.Error(t, err)

		_, err = Forward(joiner{}, join, []any{1, []string{"a"}})
		assert.Error(t, err)
	})
}

func TestInvoker(t *testing.T) {
	join := Operation{Name: "Join", NumIn: 2, NumOut: 2, Variadic: true, ReturnsError: true}
	reset := Operation{Name: "Reset"}
	failing := HandlerFunc(func(target any, op Operation, args []any) ([]any, error) {
		return nil, fmt.Errorf("handler failed on %s", op)
	})

	t.Run("it should route calls to the handler", func(t *testing.T) {
		// GIVEN
		var seen []string
		inv := NewInvoker(joiner{}, HandlerFunc(func(target any, op Operation, args []any) ([]any, error) {
			seen = append(seen, op.Name)
			return Forward(target, op, args)
		}))

		// WHEN
		results := inv.Invoke(join, "+", []string{"a", "b"})

		// THEN
		assert.Equal(t, []any{"a+b", nil}, results)
		assert.Equal(t, []string{"Join"}, seen)
		assert.Equal(t, joiner{}, inv.Delegate())
	})

	t.Run("it should pad missing results", func(t *testing.T) {
		// GIVEN
		inv := NewInvoker(joiner{}, HandlerFunc(func(target any, op Operation, args []any) ([]any, error) {
			return nil, nil
		}))

		// WHEN
		results := inv.Invoke(join, "+", []string{"a"})

		// THEN
		assert.Equal(t, []any{nil, nil}, results)
	})

	t.Run("it should put the handler error in the error slot", func(t *testing.T) {
		// GIVEN
		inv := NewInvoker(joiner{}, failing)

		// WHEN
		results := inv.Invoke(join, "+", []string{"a"})

		// THEN
		require.Len(t, results, 2)
		assert.EqualError(t, results[1].(error), "handler failed on Join/2")
	})

	t.Run("it should panic when the operation has no error slot", func(t *testing.T) {
		// GIVEN
		inv := NewInvoker(joiner{}, failing)

		// THEN
		assert.PanicsWithError(t, "handler failed on Reset/0", func() {
			inv.Invoke(reset)
		})
	})

	t.Run("it should panic when the handler returns more results than the method has", func(t *testing.T) {
		// GIVEN
		inv := NewInvoker(joiner{}, HandlerFunc(func(target any, op Operation, args []any) ([]any, error) {
			return []any{"a", nil, "extra"}, nil
		}))

		// THEN
		assert.PanicsWithError(t, "handler returned 3 results on Join/2, the method has 2", func() {
			inv.Invoke(join, "+", []string{"a"})
		})
	})
}

func TestResult(t *testing.T) {
	t.Run("it should return the typed result", func(t *testing.T) {
		// GIVEN
		results := []any{7, "seven"}

		// WHEN
		n := Result[int](results, 0)
		s := Result[string](results, 1)

		// THEN
		assert.Equal(t, 7, n)
		assert.Equal(t, "seven", s)
	})

	t.Run("it should give the zero value for nil and absent results", func(t *testing.T) {
		// GIVEN
		results := []any{nil}

		// THEN
		assert.Equal(t, 0, Result[int](results, 0))
		assert.Nil(t, Result[error](results, 0))
		assert.Equal(t, "", Result[string](results, 1))
	})

	t.Run("it should keep interface results", func(t *testing.T) {
		// GIVEN
		failure := errors.New("failure")

		// WHEN
		err := Result[error]([]any{failure}, 0)

		// THEN
		assert.Same(t, failure, err)
	})

	t.Run("it should panic when the result has another type", func(t *testing.T) {
		// GIVEN
		results := []any{"seven"}

		// THEN
		assert.PanicsWithError(t, "result 0 is a string, expected int", func() {
			Result[int](results, 0)
		})
	})

	t.Run("it should panic through a proxy when the handler returns a mistyped result", func(t *testing.T) {
		// GIVEN
		join := Operation{Name: "Join", NumIn: 2, NumOut: 2, Variadic: true, ReturnsError: true}
		inv := NewInvoker(joiner{}, HandlerFunc(func(target any, op Operation, args []any) ([]any, error) {
			return []any{42, nil}, nil
		}))

		// THEN
		assert.PanicsWithError(t, "result 0 is a int, expected string", func() {
			res := inv.Invoke(join, "+", []string{"a"})
			Result[string](res, 0)
		})
	})
}
