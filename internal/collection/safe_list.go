package collection

// Cloner is implemented by values a SafeList copies before storing them.
type Cloner interface {
	Clone() any
}

// SafeList stores copies of the values implementing Cloner, the caller keeping no handle on them.
type SafeList struct {
	List
}

func (l *SafeList) Add(value any) error {
	return l.List.Add(clone(value))
}

func (l *SafeList) AddAll(values ...any) error {
	cloned := make([]any, len(values))
	for i, value := range values {
		cloned[i] = clone(value)
	}
	return l.List.AddAll(cloned...)
}

func (l *SafeList) Set(index int, value any) (any, error) {
	return l.List.Set(index, clone(value))
}

func clone(value any) any {
	if cloner, ok := value.(Cloner); ok {
		return cloner.Clone()
	}
	return value
}
