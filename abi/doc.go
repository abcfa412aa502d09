// Package abi implements the flat function surface generated Coral code
// links against.
//
// The twelve operations mirror the original C runtime one for one:
//
//	list_new() -> handle
//	list_append(list, element)
//	string_new() -> handle
//	string_concat(a, b) -> handle
//	string_from_int(i64) -> handle
//	string_from_float(f64) -> handle
//	print_string(s)
//	iterator_new(list) -> handle
//	iterator_next(iter) -> bool        (has-next check)
//	iterator_get_value(iter) -> element (read + advance)
//	store_save(key, value)
//	store_load(key) -> value            (0 = not found)
//
// Handles are generational table indices rather than raw pointers; elements,
// keys and values are opaque 64-bit payloads the runtime never interprets.
// Misuse that the C layer left undefined (stale handles, mistyped handles,
// advancing an exhausted iterator) returns a structured error here. The
// linker package surfaces these operations to wasm guests as the
// coral_runtime host module.
package abi
