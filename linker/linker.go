package linker

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/coral-lang/runtime/abi"
	"github.com/coral-lang/runtime/rterrors"
)

// HostModuleName is the import module name generated Coral code links
// against. The compiler emits calls like (import "coral_runtime" "list_new").
const HostModuleName = "coral_runtime"

// Linker owns a wazero runtime and instantiates the Coral support layer as a
// host module for guest programs.
type Linker struct {
	runtime wazero.Runtime
}

// New creates a Linker with a default wazero runtime.
func New(ctx context.Context) *Linker {
	return &Linker{
		runtime: wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig()),
	}
}

// Runtime returns the underlying wazero runtime.
func (l *Linker) Runtime() wazero.Runtime {
	return l.runtime
}

// InstantiateRuntime builds the coral_runtime host module over env and
// instantiates it, making the twelve support functions importable by guests
// compiled from Coral source.
func (l *Linker) InstantiateRuntime(ctx context.Context, env *abi.Env) (api.Module, error) {
	builder := l.runtime.NewHostModuleBuilder(HostModuleName)

	for _, f := range hostFuncs(env) {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			Export(f.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, rterrors.Registration(HostModuleName, "*", err)
	}

	Logger().Debug("runtime host module instantiated", zap.String("module", HostModuleName))
	return mod, nil
}

// RunModule compiles and instantiates a guest module with the runtime host
// module already linked, then calls the entry function (default "main").
// InstantiateRuntime must have been called on this Linker first.
func (l *Linker) RunModule(ctx context.Context, wasmBytes []byte, entry string) error {
	if entry == "" {
		entry = "main"
	}

	compiled, err := l.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return rterrors.Load("compile guest module", err)
	}

	mod, err := l.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return rterrors.Instantiation(err)
	}
	defer mod.Close(ctx)

	fn := mod.ExportedFunction(entry)
	if fn == nil {
		return rterrors.NotFound(rterrors.PhaseRuntime, "entry function", entry)
	}

	Logger().Debug("calling guest entry", zap.String("entry", entry))
	if _, err := fn.Call(ctx); err != nil {
		return rterrors.Wrap(rterrors.PhaseRuntime, rterrors.KindInvalidData, err, "guest trapped")
	}
	return nil
}

// Close releases the wazero runtime and all instantiated modules.
func (l *Linker) Close(ctx context.Context) error {
	return l.runtime.Close(ctx)
}
