// Package handle provides the generational handle table backing the Coral
// runtime's opaque object references.
//
// Every runtime object (list, string, iterator) lives behind a Handle: an
// integer the generated code passes around without knowledge of the object's
// layout. The original C runtime used raw pointers for this, trusting callers
// never to touch a freed object. Here a handle carries a slot index plus a
// generation counter; slots are reused, but dropping an object advances its
// slot's generation, so a stale handle is a checked miss rather than silent
// corruption.
//
//	table := handle.NewTable()
//
//	h := table.Insert(typeID, myValue)
//	value, ok := table.Get(h)
//	value, ok = table.GetTyped(h, typeID)
//	table.Remove(h) // later Gets on h report !ok
//
// # Observers
//
// Register observers to track object lifecycle events:
//
//	table.Subscribe(obs) // receives EventCreated / EventDropped
//
// The coralrun trace view is built on this.
//
// # Memory Management
//
// Objects are not garbage collected out of the table; the ABI layer removes
// them when the guest's environment is closed. Call Close to drop everything
// when an environment is torn down.
package handle
