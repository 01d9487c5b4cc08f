package godeco

import "errors"

type (
	counter interface {
		Value() int
		Name() string
	}

	valuer interface {
		Value() int
	}

	baseCounter struct {
		value int
	}

	// renamedCounter declares Name, Value is promoted from the slot.
	renamedCounter struct {
		counter
	}

	scaledCounter struct {
		counter
		factor int
	}

	swappedCounter struct {
		counter
		label string
	}

	// partialCounter embeds an interface too narrow to implement counter.
	partialCounter struct {
		valuer
	}

	// nestedCounter declares Name through an embedded struct, its slot being nested.
	nestedCounter struct {
		named
		nestedSlot
	}

	named struct{}

	nestedSlot struct {
		counter
	}

	taggedCounter struct {
		counter
		primary   counter `godeco:"inject"`
		secondary counter
	}

	plainCounter struct {
		inner  counter
		other  valuer
		anyRef any
	}

	failingCounter struct {
		counter
	}
)

var errFailing = errors.New("failing constructor")

func (c *baseCounter) Value() int   { return c.value }
func (c *baseCounter) Name() string { return "base" }

func (c *renamedCounter) Name() string { return "renamed" }

func newScaledCounter(factor int, delegate counter) *scaledCounter {
	return &scaledCounter{counter: delegate, factor: factor}
}

func (c *scaledCounter) Value() int { return c.counter.Value() * c.factor }

func newSwappedFirst(delegate counter, label string) *swappedCounter {
	return &swappedCounter{counter: delegate, label: "first:" + label}
}

func newSwappedSecond(label string, delegate counter) *swappedCounter {
	return &swappedCounter{counter: delegate, label: "second:" + label}
}

func (named) Name() string { return "named" }

func newTaggedCounter() taggedCounter {
	return taggedCounter{}
}

func newPlainCounter(inner valuer) *plainCounter {
	return &plainCounter{other: inner}
}

func (c *plainCounter) Value() int   { return c.other.Value() + 1 }
func (c *plainCounter) Name() string { return "plain" }

func newFailingCounter(delegate counter) (*failingCounter, error) {
	return nil, errFailing
}
