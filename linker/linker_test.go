package linker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/coral-lang/runtime/abi"
	"github.com/coral-lang/runtime/rterrors"
	"github.com/coral-lang/runtime/store"
)

func newTestLinker(t *testing.T) (*Linker, *abi.Env, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	lk := New(ctx)
	t.Cleanup(func() { lk.Close(ctx) })

	var out bytes.Buffer
	env := abi.NewEnv(abi.WithOutput(&out), abi.WithStore(store.NewMemStore()))
	t.Cleanup(func() { env.Close() })

	if _, err := lk.InstantiateRuntime(ctx, env); err != nil {
		t.Fatalf("InstantiateRuntime failed: %v", err)
	}
	return lk, env, &out
}

func call(t *testing.T, lk *Linker, name string, params ...uint64) []uint64 {
	t.Helper()
	mod := lk.Runtime().Module(HostModuleName)
	if mod == nil {
		t.Fatal("host module not instantiated")
	}
	fn := mod.ExportedFunction(name)
	if fn == nil {
		t.Fatalf("host function %q not exported", name)
	}
	results, err := fn.Call(context.Background(), params...)
	if err != nil {
		t.Fatalf("%s trapped: %v", name, err)
	}
	return results
}

func TestHostModule_ExportsFullSurface(t *testing.T) {
	lk, _, _ := newTestLinker(t)

	mod := lk.Runtime().Module(HostModuleName)
	for _, name := range []string{
		"list_new", "list_append",
		"string_new", "string_concat", "string_from_int", "string_from_float",
		"print_string",
		"iterator_new", "iterator_next", "iterator_get_value",
		"store_save", "store_load",
	} {
		if mod.ExportedFunction(name) == nil {
			t.Errorf("host function %q not exported", name)
		}
	}
}

func TestHostModule_ListRoundTrip(t *testing.T) {
	lk, _, _ := newTestLinker(t)

	list := call(t, lk, "list_new")[0]
	for i := uint64(0); i < 3; i++ {
		call(t, lk, "list_append", list, i+10)
	}

	iter := call(t, lk, "iterator_new", list)[0]
	var got []uint64
	for call(t, lk, "iterator_next", iter)[0] == 1 {
		got = append(got, call(t, lk, "iterator_get_value", iter)[0])
	}

	want := []uint64{10, 11, 12}
	if len(got) != len(want) {
		t.Fatalf("drained %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestHostModule_StringsAndPrint(t *testing.T) {
	lk, _, out := newTestLinker(t)

	a := call(t, lk, "string_from_int", uint64(7))[0]
	b := call(t, lk, "string_from_float", api.EncodeF64(2.5))[0]
	c := call(t, lk, "string_concat", a, b)[0]
	call(t, lk, "print_string", c)

	if out.String() != "72.500000\n" {
		t.Fatalf("printed %q, want %q", out.String(), "72.500000\n")
	}
}

func TestHostModule_Store(t *testing.T) {
	lk, _, _ := newTestLinker(t)

	call(t, lk, "store_save", 5, 500)
	if v := call(t, lk, "store_load", 5)[0]; v != 500 {
		t.Fatalf("store_load returned %d, want 500", v)
	}
	if v := call(t, lk, "store_load", 6)[0]; v != 0 {
		t.Fatalf("unknown key should load 0, got %d", v)
	}
}

func TestHostModule_MisuseTraps(t *testing.T) {
	lk, _, _ := newTestLinker(t)

	mod := lk.Runtime().Module(HostModuleName)
	fn := mod.ExportedFunction("list_append")
	if _, err := fn.Call(context.Background(), 9999, 1); err == nil {
		t.Fatal("appending to an unknown handle should trap")
	}
}

// guestProgram is a hand-assembled wasm module equivalent to the generated
// code for a Coral program that prints the integer 42:
//
//	(module
//	  (import "coral_runtime" "string_from_int" (func $sfi (param i64) (result i32)))
//	  (import "coral_runtime" "print_string" (func $ps (param i32)))
//	  (func $main (i64.const 42) (call $sfi) (call $ps))
//	  (export "main" (func $main)))
var guestProgram = []byte{
	0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00, // magic + version
	// type section: (i64)->(i32), (i32)->(), ()->()
	0x01, 0x0D, 0x03,
	0x60, 0x01, 0x7E, 0x01, 0x7F,
	0x60, 0x01, 0x7F, 0x00,
	0x60, 0x00, 0x00,
	// import section: coral_runtime.string_from_int, coral_runtime.print_string
	0x02, 0x3E, 0x02,
	0x0D, 'c', 'o', 'r', 'a', 'l', '_', 'r', 'u', 'n', 't', 'i', 'm', 'e',
	0x0F, 's', 't', 'r', 'i', 'n', 'g', '_', 'f', 'r', 'o', 'm', '_', 'i', 'n', 't',
	0x00, 0x00,
	0x0D, 'c', 'o', 'r', 'a', 'l', '_', 'r', 'u', 'n', 't', 'i', 'm', 'e',
	0x0C, 'p', 'r', 'i', 'n', 't', '_', 's', 't', 'r', 'i', 'n', 'g',
	0x00, 0x01,
	// function section: one function of type 2
	0x03, 0x02, 0x01, 0x02,
	// export section: "main" -> func 2
	0x07, 0x08, 0x01, 0x04, 'm', 'a', 'i', 'n', 0x00, 0x02,
	// code section: i64.const 42; call 0; call 1; end
	0x0A, 0x0A, 0x01, 0x08, 0x00,
	0x42, 0x2A, 0x10, 0x00, 0x10, 0x01, 0x0B,
}

func TestRunModule_GuestPrints(t *testing.T) {
	lk, _, out := newTestLinker(t)

	if err := lk.RunModule(context.Background(), guestProgram, "main"); err != nil {
		t.Fatalf("RunModule failed: %v", err)
	}
	if out.String() != "42\n" {
		t.Fatalf("guest printed %q, want %q", out.String(), "42\n")
	}
}

func TestRunModule_DefaultEntry(t *testing.T) {
	lk, _, out := newTestLinker(t)

	if err := lk.RunModule(context.Background(), guestProgram, ""); err != nil {
		t.Fatalf("RunModule failed: %v", err)
	}
	if !strings.HasSuffix(out.String(), "42\n") {
		t.Fatalf("guest printed %q", out.String())
	}
}

func TestRunModule_InvalidBinary(t *testing.T) {
	lk, _, _ := newTestLinker(t)

	err := lk.RunModule(context.Background(), []byte("not wasm"), "main")
	if err == nil {
		t.Fatal("invalid binary should fail")
	}
	want := &rterrors.Error{Phase: rterrors.PhaseLoad, Kind: rterrors.KindInvalidData}
	if !errors.Is(err, want) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestRunModule_MissingEntry(t *testing.T) {
	lk, _, _ := newTestLinker(t)

	err := lk.RunModule(context.Background(), guestProgram, "start")
	if err == nil {
		t.Fatal("missing entry should fail")
	}
	want := &rterrors.Error{Phase: rterrors.PhaseRuntime, Kind: rterrors.KindNotFound}
	if !errors.Is(err, want) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}
