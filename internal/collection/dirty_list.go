package collection

// DirtyList records whether its content changed since it was built, or last cleaned.
type DirtyList struct {
	List
	dirty bool
}

func (l *DirtyList) IsDirty() bool {
	return l.dirty
}

func (l *DirtyList) Clean() {
	l.dirty = false
}

func (l *DirtyList) Add(value any) error {
	return l.mark(l.List.Add(value))
}

func (l *DirtyList) AddAll(values ...any) error {
	return l.mark(l.List.AddAll(values...))
}

func (l *DirtyList) Set(index int, value any) (any, error) {
	previous, err := l.List.Set(index, value)
	return previous, l.mark(err)
}

func (l *DirtyList) Remove(value any) bool {
	removed := l.List.Remove(value)
	l.dirty = l.dirty || removed
	return removed
}

func (l *DirtyList) RemoveIf(predicate func(any) bool) bool {
	removed := l.List.RemoveIf(predicate)
	l.dirty = l.dirty || removed
	return removed
}

func (l *DirtyList) mark(err error) error {
	if err == nil {
		l.dirty = true
	}
	return err
}
