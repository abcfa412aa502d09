package handle

import (
	"sync"
)

// Table maps generational handles to host-side objects.
//
// The runtime's callers are single-threaded (the generated code never shares
// objects across goroutines), but the table keeps an internal mutex so
// lifecycle observers such as a trace view can read it safely.
type Table struct {
	entries   []entry
	freeList  []uint32
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value  any
	typeID uint32
	gen    uint8
	valid  bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

// Insert stores a value and returns its handle.
// Returns 0 if the table is closed or the slot space is exhausted.
func (t *Table) Insert(typeID uint32, value any) Handle {
	t.mu.Lock()

	if t.closed {
		t.mu.Unlock()
		return 0
	}

	var h Handle
	if n := len(t.freeList); n > 0 {
		slot := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		e := &t.entries[slot-1]
		e.value = value
		e.typeID = typeID
		e.valid = true
		h = makeHandle(slot, e.gen)
	} else {
		if len(t.entries) >= maxSlots {
			t.mu.Unlock()
			return 0
		}
		t.entries = append(t.entries, entry{value: value, typeID: typeID, valid: true})
		h = makeHandle(uint32(len(t.entries)), 0)
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: h, TypeID: typeID, Value: value})
	return h
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *Table) GetTyped(h Handle, typeID uint32) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil || e.typeID != typeID {
		return nil, false
	}
	return e.value, true
}

// TypeID returns the type ID for a live handle.
func (t *Table) TypeID(h Handle) (uint32, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil {
		return 0, false
	}
	return e.typeID, true
}

// Remove drops an object and returns (value, true) if it was live.
// The slot's generation advances, invalidating any outstanding copies of the
// handle. Runs the value's Drop method if it implements Dropper.
func (t *Table) Remove(h Handle) (any, bool) {
	t.mu.Lock()

	e := t.lookup(h)
	if e == nil {
		t.mu.Unlock()
		return nil, false
	}

	value := e.value
	typeID := e.typeID
	e.valid = false
	e.value = nil
	e.gen++
	t.freeList = append(t.freeList, h.Slot())
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{Type: EventDropped, Handle: h, TypeID: typeID, Value: value})
	return value, true
}

// Len returns the number of live objects.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for i := range t.entries {
		if t.entries[i].valid {
			count++
		}
	}
	return count
}

// Each iterates over all live objects.
func (t *Table) Each(fn func(Handle, uint32, any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.entries {
		e := &t.entries[i]
		if e.valid {
			if !fn(makeHandle(uint32(i+1), e.gen), e.typeID, e.value) {
				break
			}
		}
	}
}

// Clear drops all live objects.
func (t *Table) Clear() {
	var handles []Handle
	t.Each(func(h Handle, typeID uint32, value any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close drops all objects and stops accepting inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var dropped []Event
	for i := range t.entries {
		e := &t.entries[i]
		if e.valid {
			if d, ok := e.value.(Dropper); ok {
				d.Drop()
			}
			dropped = append(dropped, Event{
				Type:   EventDropped,
				Handle: makeHandle(uint32(i+1), e.gen),
				TypeID: e.typeID,
				Value:  e.value,
			})
			e.valid = false
			e.value = nil
		}
	}
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	for _, ev := range dropped {
		t.notify(ev)
	}
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// lookup resolves a handle to its entry. Caller holds t.mu.
func (t *Table) lookup(h Handle) *entry {
	slot := h.Slot()
	if slot == 0 || int(slot) > len(t.entries) {
		return nil
	}
	e := &t.entries[slot-1]
	if !e.valid || e.gen != h.Generation() {
		return nil
	}
	return e
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}
