// Package store defines the runtime's key/value persistence contract.
//
// The original runtime stubbed persistence with a global no-op pair
// (store_save / store_load). Here the contract is an injectable Store
// interface so a real backend can be substituted without touching callers.
// NoopStore is the default and preserves the stub's observable behavior:
// saves succeed without effect and loads always report ErrNotFound. MemStore
// is a map-backed substitute used to exercise the injection point.
package store
