// Package rterrors provides structured error types for the Coral runtime.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Conditions that were undefined behavior in the original C
// runtime, such as stale handles and exhausted iterators, surface here as
// checked errors instead.
//
// Use the Builder for structured error construction:
//
//	err := rterrors.New(rterrors.PhaseHost, rterrors.KindInvalidInput).
//		Path("list_append").
//		Detail("element handle is zero").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := rterrors.BadHandle("string_concat", h)
//	err := rterrors.Exhausted("iterator_get_value")
//
// All errors implement the standard error interface and support errors.Is/As.
package rterrors
