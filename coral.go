package coralruntime

import (
	"context"

	"github.com/coral-lang/runtime/abi"
	"github.com/coral-lang/runtime/linker"
)

// Run executes a compiled Coral guest module against a fresh environment:
// it links the coral_runtime host module, calls the guest's main, and tears
// everything down. Options configure the environment (store backend, output
// stream, logger).
func Run(ctx context.Context, wasmBytes []byte, opts ...abi.Option) error {
	lk := linker.New(ctx)
	defer lk.Close(ctx)

	env := abi.NewEnv(opts...)
	defer env.Close()

	if _, err := lk.InstantiateRuntime(ctx, env); err != nil {
		return err
	}
	return lk.RunModule(ctx, wasmBytes, "main")
}
