// Package primitive implements the Coral runtime's core containers: the
// growable list, the immutable string, and the forward iterator.
//
// These are the host-side objects behind the handles the generated code
// manipulates. Semantics follow the original C runtime exactly where output
// is observable: lists start at capacity four and double, float formatting
// is fixed six-digit %f, iteration is a live view of the list. Misuse that
// was undefined behavior in C (reading past the end, advancing an exhausted
// iterator) is a checked miss here.
package primitive
