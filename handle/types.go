package handle

// Handle is an opaque reference to an object in a Table.
// Handle 0 is reserved and always invalid.
//
// The low 24 bits hold a 1-based slot index; the high 8 bits hold the slot's
// generation. Dropping an object bumps the slot generation, so a handle kept
// past Remove misses instead of aliasing whatever reuses the slot.
type Handle uint32

const (
	slotBits = 24
	slotMask = (1 << slotBits) - 1
	maxSlots = slotMask
)

// Slot returns the 1-based slot index encoded in the handle.
func (h Handle) Slot() uint32 {
	return uint32(h) & slotMask
}

// Generation returns the generation encoded in the handle.
func (h Handle) Generation() uint8 {
	return uint8(uint32(h) >> slotBits)
}

func makeHandle(slot uint32, gen uint8) Handle {
	return Handle(uint32(gen)<<slotBits | slot)
}

// EventType identifies a lifecycle event.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

// Event represents an object lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about object lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup on Remove.
type Dropper interface {
	Drop()
}
