package primitive

// Iterator is a single-pass forward cursor over a List.
//
// The iterator holds a non-owning reference: it does not extend the list's
// lifetime and must not be used concurrently with mutation. It is a live
// view: HasNext re-reads the list's current length on every call, so
// elements appended after the iterator was created are still observed. There
// is no reset.
type Iterator struct {
	list  *List
	index int
}

// NewIterator creates a cursor over list starting at position 0.
func NewIterator(list *List) *Iterator {
	return &Iterator{list: list}
}

// HasNext reports whether Next would yield an element. Pure; calling it any
// number of times does not advance the cursor.
func (it *Iterator) HasNext() bool {
	return it.index < it.list.Len()
}

// Next returns the element at the cursor and advances. Returns (nil, false)
// once the iterator is exhausted.
func (it *Iterator) Next() (Value, bool) {
	v, ok := it.list.Get(it.index)
	if !ok {
		return nil, false
	}
	it.index++
	return v, true
}
