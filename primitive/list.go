package primitive

// Value is an opaque element held by a List. The list attaches no meaning to
// its elements; ownership semantics are the caller's.
type Value = any

// initialListCapacity matches the original runtime: lists start with room
// for four elements and double from there.
const initialListCapacity = 4

// List is an untyped growable sequence of opaque values.
//
// Lists are append-only: there is no remove, shrink, or positional write.
// Capacity only ever grows. The list owns its backing array but not the
// elements it holds.
type List struct {
	data []Value
}

// NewList creates an empty list with the initial capacity.
func NewList() *List {
	return &List{data: make([]Value, 0, initialListCapacity)}
}

// Append adds v at the end of the list. When the list is full its capacity
// doubles and the backing array is reallocated with contents preserved, so
// the amortized cost per append is constant.
func (l *List) Append(v Value) {
	if len(l.data) == cap(l.data) {
		grown := make([]Value, len(l.data), cap(l.data)*2)
		copy(grown, l.data)
		l.data = grown
	}
	l.data = append(l.data, v)
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.data)
}

// Cap returns the allocated slot count.
func (l *List) Cap() int {
	return cap(l.data)
}

// Get returns the element at index i, or (nil, false) if i is out of range.
func (l *List) Get(i int) (Value, bool) {
	if i < 0 || i >= len(l.data) {
		return nil, false
	}
	return l.data[i], true
}
