package godeco

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectFields(t *testing.T) {
	capability := TypeOf[counter]()

	t.Run("it should set unexported fields", func(t *testing.T) {
		// GIVEN
		instance := &taggedCounter{}
		fields := candidateFields(TypeOf[taggedCounter](), capability, defaultPolicy)
		delegate := &baseCounter{value: 1}

		// WHEN
		injected, err := injectFields(reflect.ValueOf(instance), fields, reflect.ValueOf(delegate), false, nil)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 1, injected)
		assert.Same(t, delegate, instance.primary)
		assert.Nil(t, instance.secondary)
	})

	t.Run("it should leave fields already holding the delegate", func(t *testing.T) {
		// GIVEN
		delegate := &baseCounter{}
		instance := &plainCounter{inner: delegate}
		fields := candidateFields(TypeOf[plainCounter](), capability, defaultPolicy)

		// WHEN
		injected, err := injectFields(reflect.ValueOf(instance), fields, reflect.ValueOf(delegate), false, nil)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 1, injected)
		assert.Same(t, delegate, instance.inner)
		assert.Same(t, delegate, instance.other)
	})

	t.Run("it should report fields holding another value", func(t *testing.T) {
		// GIVEN
		previous := &baseCounter{value: 1}
		instance := &plainCounter{inner: previous}
		fields := candidateFields(TypeOf[plainCounter](), capability, defaultPolicy)

		// WHEN
		injected, err := injectFields(reflect.ValueOf(instance), fields, reflect.ValueOf(&baseCounter{value: 2}), false, nil)

		// THEN
		assert.ErrorIs(t, err, ErrInjection)
		assert.Equal(t, 1, injected)
		assert.Same(t, previous, instance.inner)
		assert.NotNil(t, instance.other)
	})

	t.Run("it should replace fields holding another value with override", func(t *testing.T) {
		// GIVEN
		instance := &plainCounter{inner: &baseCounter{value: 1}}
		fields := candidateFields(TypeOf[plainCounter](), capability, defaultPolicy)
		delegate := &baseCounter{value: 2}

		// WHEN
		injected, err := injectFields(reflect.ValueOf(instance), fields, reflect.ValueOf(delegate), true, nil)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 2, injected)
		assert.Same(t, delegate, instance.inner)
	})

	t.Run("it should skip the excluded path", func(t *testing.T) {
		// GIVEN
		instance := &taggedCounter{}
		fields := candidateFields(TypeOf[taggedCounter](), capability, injectionPolicy{tag: "other"})
		delegate := &baseCounter{}

		// WHEN
		injected, err := injectFields(reflect.ValueOf(instance), fields, reflect.ValueOf(delegate), false, []int{0})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 2, injected)
		assert.Nil(t, instance.counter)
		assert.Same(t, delegate, instance.primary)
		assert.Same(t, delegate, instance.secondary)
	})
}
