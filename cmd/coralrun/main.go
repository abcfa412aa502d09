package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/coral-lang/runtime/abi"
	"github.com/coral-lang/runtime/config"
	"github.com/coral-lang/runtime/linker"
	"github.com/coral-lang/runtime/store"
)

func main() {
	var (
		wasmFile   = flag.String("wasm", "", "Path to compiled Coral wasm module")
		entry      = flag.String("entry", "", "Entry function (default from config, usually main)")
		configFile = flag.String("config", "", "Path to coralrun.yaml")
		trace      = flag.Bool("trace", false, "Interactive handle lifecycle view")
		storeKind  = flag.String("store", "", "Store backend: noop or memory (overrides config)")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: coralrun -wasm <prog.wasm> [-entry main] [-config coralrun.yaml]")
		fmt.Fprintln(os.Stderr, "       coralrun -wasm <prog.wasm> -trace  (interactive mode)")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *entry != "" {
		cfg.Entry = *entry
	}
	if *storeKind != "" {
		cfg.Store = *storeKind
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *trace {
		cfg.Trace = true
	}

	if cfg.Trace {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -trace requires a terminal")
			os.Exit(1)
		}
		if err := runTrace(*wasmFile, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile string, cfg config.Config) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()
	linker.SetLogger(log.Named("linker"))
	store.SetLogger(log.Named("store"))

	lk := linker.New(ctx)
	defer lk.Close(ctx)

	env := abi.NewEnv(
		abi.WithStore(newStore(cfg.Store)),
		abi.WithLogger(log.Named("abi")),
	)
	defer env.Close()

	if _, err := lk.InstantiateRuntime(ctx, env); err != nil {
		return err
	}
	return lk.RunModule(ctx, data, cfg.Entry)
}

func newStore(kind string) store.Store {
	if kind == "memory" {
		return store.NewMemStore()
	}
	return store.NewNoopStore()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = lvl
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}
