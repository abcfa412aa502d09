package linker

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/coral-lang/runtime/abi"
)

type hostFunc struct {
	fn      api.GoModuleFunc
	name    string
	params  []api.ValueType
	results []api.ValueType
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
	f64 = api.ValueTypeF64
)

// hostFuncs maps the abi surface onto wasm signatures. Handles cross the
// boundary as i32, elements/keys/values as opaque i64 payloads.
//
// A checked runtime error (stale handle, exhausted iterator) panics here,
// which wazero turns into a guest trap. That keeps the original contract at
// this boundary: misuse is fatal to the program, never a silent corruption.
func hostFuncs(env *abi.Env) []hostFunc {
	return []hostFunc{
		{
			name:    "list_new",
			params:  nil,
			results: []api.ValueType{i32},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				stack[0] = uint64(env.ListNew())
			},
		},
		{
			name:    "list_append",
			params:  []api.ValueType{i32, i64},
			results: nil,
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				if err := env.ListAppend(uint32(stack[0]), stack[1]); err != nil {
					panic(err)
				}
			},
		},
		{
			name:    "string_new",
			params:  nil,
			results: []api.ValueType{i32},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				stack[0] = uint64(env.StringNew())
			},
		},
		{
			name:    "string_concat",
			params:  []api.ValueType{i32, i32},
			results: []api.ValueType{i32},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				h, err := env.StringConcat(uint32(stack[0]), uint32(stack[1]))
				if err != nil {
					panic(err)
				}
				stack[0] = uint64(h)
			},
		},
		{
			name:    "string_from_int",
			params:  []api.ValueType{i64},
			results: []api.ValueType{i32},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				stack[0] = uint64(env.StringFromInt(int64(stack[0])))
			},
		},
		{
			name:    "string_from_float",
			params:  []api.ValueType{f64},
			results: []api.ValueType{i32},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				stack[0] = uint64(env.StringFromFloat(api.DecodeF64(stack[0])))
			},
		},
		{
			name:    "print_string",
			params:  []api.ValueType{i32},
			results: nil,
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				if err := env.PrintString(uint32(stack[0])); err != nil {
					panic(err)
				}
			},
		},
		{
			name:    "iterator_new",
			params:  []api.ValueType{i32},
			results: []api.ValueType{i32},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				h, err := env.IteratorNew(uint32(stack[0]))
				if err != nil {
					panic(err)
				}
				stack[0] = uint64(h)
			},
		},
		{
			name:    "iterator_next",
			params:  []api.ValueType{i32},
			results: []api.ValueType{i32},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				more, err := env.IteratorNext(uint32(stack[0]))
				if err != nil {
					panic(err)
				}
				if more {
					stack[0] = 1
				} else {
					stack[0] = 0
				}
			},
		},
		{
			name:    "iterator_get_value",
			params:  []api.ValueType{i32},
			results: []api.ValueType{i64},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				v, err := env.IteratorGetValue(uint32(stack[0]))
				if err != nil {
					panic(err)
				}
				stack[0] = v
			},
		},
		{
			name:    "store_save",
			params:  []api.ValueType{i64, i64},
			results: nil,
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				env.StoreSave(stack[0], stack[1])
			},
		},
		{
			name:    "store_load",
			params:  []api.ValueType{i64},
			results: []api.ValueType{i64},
			fn: func(ctx context.Context, mod api.Module, stack []uint64) {
				stack[0] = env.StoreLoad(stack[0])
			},
		},
	}
}
