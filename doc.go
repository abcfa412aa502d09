// Package coralruntime provides the Coral language's runtime support layer.
//
// Generated Coral code does not manage containers itself; it calls into this
// layer for lists, strings, iteration and persistence. The layer is
// deliberately small: a handful of primitives and a store hook, not an
// engine.
//
// # Architecture Overview
//
//	coralruntime/        Root package with the one-call Run helper
//	├── primitive/       List, Str and Iterator container semantics
//	├── handle/          Generational handle table behind all object refs
//	├── abi/             The flat twelve-function surface generated code uses
//	├── linker/          wazero host module exposing the abi to wasm guests
//	├── store/           Injectable key/value persistence contract
//	├── rterrors/        Structured error types
//	└── config/          coralrun CLI configuration
//
// # Quick Start
//
// Run a compiled Coral program:
//
//	err := coralruntime.Run(ctx, wasmBytes)
//
// Or assemble the pieces for control over the environment:
//
//	lk := linker.New(ctx)
//	defer lk.Close(ctx)
//
//	env := abi.NewEnv(abi.WithStore(store.NewMemStore()))
//	defer env.Close()
//
//	lk.InstantiateRuntime(ctx, env)
//	lk.RunModule(ctx, wasmBytes, "main")
//
// # Contract
//
// The layer trusts the compiler, not the program: handles are validated on
// every use and misuse traps the guest with a structured error instead of
// corrupting state. Within one environment all operations are
// single-threaded, matching the execution model of generated Coral code;
// nothing here provides internal synchronization for concurrent mutation of
// the same object.
package coralruntime
