package domain

// SelectableList is an ordered sequence with a single optional cursor.
// Navigation wraps around at both ends. Items are mutated by the owner
// through Items after reading Selected.
type SelectableList[T any] struct {
	Items    []T
	selected int
	hasSel   bool
}

// NewSelectableList wraps items. The cursor starts unset.
func NewSelectableList[T any](items []T) *SelectableList[T] {
	return &SelectableList[T]{Items: items}
}

// Next moves the cursor forward, wrapping to the first item after the last.
// An unset cursor moves to the first item.
func (l *SelectableList[T]) Next() {
	if len(l.Items) == 0 {
		l.hasSel = false
		return
	}
	if !l.hasSel || l.selected >= len(l.Items)-1 {
		l.selected = 0
	} else {
		l.selected++
	}
	l.hasSel = true
}

// Previous moves the cursor backward, wrapping to the last item before the
// first. An unset cursor moves to the first item.
func (l *SelectableList[T]) Previous() {
	if len(l.Items) == 0 {
		l.hasSel = false
		return
	}
	switch {
	case !l.hasSel:
		l.selected = 0
	case l.selected <= 0:
		l.selected = len(l.Items) - 1
	default:
		l.selected--
	}
	l.hasSel = true
}

// Selected returns the cursor index and whether one is set.
func (l *SelectableList[T]) Selected() (int, bool) {
	if !l.hasSel || l.selected >= len(l.Items) {
		return 0, false
	}
	return l.selected, true
}

// Current returns a pointer to the selected item, or nil.
func (l *SelectableList[T]) Current() *T {
	i, ok := l.Selected()
	if !ok {
		return nil
	}
	return &l.Items[i]
}

// Len returns the number of items.
func (l *SelectableList[T]) Len() int {
	return len(l.Items)
}
