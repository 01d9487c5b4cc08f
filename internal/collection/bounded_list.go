package collection

// DefaultCapacity is the capacity of the bounded lists built without one.
const DefaultCapacity = 100

// BoundedList rejects the additions exceeding its capacity with ErrCapacityExceeded.
type BoundedList struct {
	List
	max int
}

// NewBoundedList builds a list holding at most max values.
//
// @constructor
func NewBoundedList(max int, delegate List) *BoundedList {
	return &BoundedList{List: delegate, max: max}
}

// NewDefaultBoundedList builds a list holding at most DefaultCapacity values.
//
// @constructor
func NewDefaultBoundedList(delegate List) *BoundedList {
	return NewBoundedList(DefaultCapacity, delegate)
}

func (l *BoundedList) Max() int {
	return l.max
}

func (l *BoundedList) Add(value any) error {
	if l.List.Len() >= l.max {
		return ErrCapacityExceeded
	}
	return l.List.Add(value)
}

func (l *BoundedList) AddAll(values ...any) error {
	if l.List.Len()+len(values) > l.max {
		return ErrCapacityExceeded
	}
	return l.List.AddAll(values...)
}

// BoundedListWithField is a bounded list whose constructor does not take the delegate,
// the delegate reaching it through the tagged field.
type BoundedListWithField struct {
	List
	max      int
	delegate List `godeco:"inject"`
	spare    List
}

// NewBoundedListWithField builds a list holding at most max values.
//
// @constructor
func NewBoundedListWithField(max int) *BoundedListWithField {
	return &BoundedListWithField{max: max}
}

func (l *BoundedListWithField) Add(value any) error {
	if l.delegate.Len() >= l.max {
		return ErrCapacityExceeded
	}
	return l.delegate.Add(value)
}

// Spare is never injected, it is not tagged.
func (l *BoundedListWithField) Spare() List {
	return l.spare
}
