// Package linker exposes the Coral support runtime to WebAssembly guests.
//
// The original C runtime was linked into native Coral binaries by the
// compiler's LLVM backend. For the wasm target the same twelve functions are
// provided as a wazero host module named coral_runtime; generated code
// imports them by name:
//
//	(import "coral_runtime" "list_new" (func (result i32)))
//	(import "coral_runtime" "print_string" (func (param i32)))
//
// Typical use:
//
//	lk := linker.New(ctx)
//	defer lk.Close(ctx)
//
//	env := abi.NewEnv()
//	if _, err := lk.InstantiateRuntime(ctx, env); err != nil { ... }
//	if err := lk.RunModule(ctx, wasmBytes, "main"); err != nil { ... }
//
// Checked runtime errors trap the guest; the support layer never lets a
// misbehaving program continue on corrupted state.
package linker
