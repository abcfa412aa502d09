package abi

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/coral-lang/runtime/handle"
	"github.com/coral-lang/runtime/primitive"
	"github.com/coral-lang/runtime/rterrors"
	"github.com/coral-lang/runtime/store"
)

// Type IDs for runtime objects in the handle table.
const (
	TypeList uint32 = iota + 1
	TypeString
	TypeIterator
)

// Env holds the runtime state behind one guest program: the handle table for
// its lists, strings and iterators, its store backend, and its output stream.
//
// Env is not safe for concurrent use; generated Coral code is
// single-threaded and an Env belongs to exactly one guest instance.
type Env struct {
	table *handle.Table
	store store.Store
	out   io.Writer
	log   *zap.Logger
}

// Option configures an Env.
type Option func(*Env)

// WithStore injects a store backend. Default is the no-op store.
func WithStore(s store.Store) Option {
	return func(e *Env) { e.store = s }
}

// WithOutput redirects print_string output. Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Env) { e.out = w }
}

// WithLogger enables operation tracing. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Env) { e.log = l }
}

// NewEnv creates an environment with an empty handle table.
func NewEnv(opts ...Option) *Env {
	e := &Env{
		table: handle.NewTable(),
		store: store.NewNoopStore(),
		out:   os.Stdout,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table exposes the handle table for lifecycle observers (the trace view).
func (e *Env) Table() *handle.Table {
	return e.table
}

// Close drops every live object.
func (e *Env) Close() error {
	return e.table.Close()
}

// ListNew creates an empty list and returns its handle.
func (e *Env) ListNew() uint32 {
	h := e.table.Insert(TypeList, primitive.NewList())
	e.log.Debug("list_new", zap.Uint32("handle", uint32(h)))
	return uint32(h)
}

// ListAppend appends an opaque element to the list.
func (e *Env) ListAppend(list uint32, elem uint64) error {
	l, err := e.list("list_append", list)
	if err != nil {
		return err
	}
	l.Append(elem)
	e.log.Debug("list_append", zap.Uint32("handle", list), zap.Int("size", l.Len()))
	return nil
}

// StringNew creates the empty string and returns its handle.
func (e *Env) StringNew() uint32 {
	h := e.table.Insert(TypeString, primitive.EmptyStr())
	e.log.Debug("string_new", zap.Uint32("handle", uint32(h)))
	return uint32(h)
}

// StringConcat creates a new string from a's content followed by b's.
// Operands stay valid and unmodified.
func (e *Env) StringConcat(a, b uint32) (uint32, error) {
	sa, err := e.str("string_concat", a)
	if err != nil {
		return 0, err
	}
	sb, err := e.str("string_concat", b)
	if err != nil {
		return 0, err
	}
	h := e.table.Insert(TypeString, primitive.Concat(sa, sb))
	e.log.Debug("string_concat", zap.Uint32("a", a), zap.Uint32("b", b), zap.Uint32("handle", uint32(h)))
	return uint32(h), nil
}

// StringFromInt creates the base-10 text of v and returns its handle.
func (e *Env) StringFromInt(v int64) uint32 {
	h := e.table.Insert(TypeString, primitive.StrFromInt(v))
	e.log.Debug("string_from_int", zap.Int64("value", v), zap.Uint32("handle", uint32(h)))
	return uint32(h)
}

// StringFromFloat creates the fixed six-digit text of v and returns its handle.
func (e *Env) StringFromFloat(v float64) uint32 {
	h := e.table.Insert(TypeString, primitive.StrFromFloat(v))
	e.log.Debug("string_from_float", zap.Float64("value", v), zap.Uint32("handle", uint32(h)))
	return uint32(h)
}

// PrintString writes the string's content and a trailing newline to the
// environment's output stream.
func (e *Env) PrintString(s uint32) error {
	str, err := e.str("print_string", s)
	if err != nil {
		return err
	}
	return str.Print(e.out)
}

// IteratorNew binds a fresh cursor to the list at position 0. The iterator
// does not own the list.
func (e *Env) IteratorNew(list uint32) (uint32, error) {
	l, err := e.list("iterator_new", list)
	if err != nil {
		return 0, err
	}
	h := e.table.Insert(TypeIterator, primitive.NewIterator(l))
	e.log.Debug("iterator_new", zap.Uint32("list", list), zap.Uint32("handle", uint32(h)))
	return uint32(h), nil
}

// IteratorNext reports whether the iterator has more elements. It does not
// advance the cursor.
func (e *Env) IteratorNext(iter uint32) (bool, error) {
	it, err := e.iterator("iterator_next", iter)
	if err != nil {
		return false, err
	}
	return it.HasNext(), nil
}

// IteratorGetValue returns the element at the cursor and advances. Advancing
// an exhausted iterator is a checked error, not undefined behavior.
func (e *Env) IteratorGetValue(iter uint32) (uint64, error) {
	it, err := e.iterator("iterator_get_value", iter)
	if err != nil {
		return 0, err
	}
	v, ok := it.Next()
	if !ok {
		return 0, rterrors.Exhausted("iterator_get_value")
	}
	elem, ok := v.(uint64)
	if !ok {
		// Lists filled through the Go API may hold arbitrary values; the
		// flat ABI only ever stores uint64 payloads.
		return 0, rterrors.New(rterrors.PhaseHost, rterrors.KindTypeMismatch).
			Path("iterator_get_value").
			Detail("element is not an opaque 64-bit payload").
			Build()
	}
	return elem, nil
}

// StoreSave persists an association from key to value. Failures from an
// injected backend are logged, never surfaced: the generated-code contract
// is fire-and-forget.
func (e *Env) StoreSave(key, value uint64) {
	if err := e.store.Save(context.Background(), encodeWord(key), encodeWord(value)); err != nil {
		e.log.Warn("store_save failed", zap.Uint64("key", key), zap.Error(err))
	}
}

// StoreLoad retrieves the value associated with key, or 0 when the backend
// has no association (the ABI's "not found").
func (e *Env) StoreLoad(key uint64) uint64 {
	v, err := e.store.Load(context.Background(), encodeWord(key))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.log.Warn("store_load failed", zap.Uint64("key", key), zap.Error(err))
		}
		return 0
	}
	if len(v) != 8 {
		e.log.Warn("store_load value is not an opaque word", zap.Uint64("key", key), zap.Int("len", len(v)))
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

func (e *Env) list(op string, h uint32) (*primitive.List, error) {
	v, ok := e.table.Get(handle.Handle(h))
	if !ok {
		return nil, rterrors.BadHandle(op, h)
	}
	l, ok := v.(*primitive.List)
	if !ok {
		return nil, rterrors.WrongType(op, h, "list")
	}
	return l, nil
}

func (e *Env) str(op string, h uint32) (*primitive.Str, error) {
	v, ok := e.table.Get(handle.Handle(h))
	if !ok {
		return nil, rterrors.BadHandle(op, h)
	}
	s, ok := v.(*primitive.Str)
	if !ok {
		return nil, rterrors.WrongType(op, h, "string")
	}
	return s, nil
}

func (e *Env) iterator(op string, h uint32) (*primitive.Iterator, error) {
	v, ok := e.table.Get(handle.Handle(h))
	if !ok {
		return nil, rterrors.BadHandle(op, h)
	}
	it, ok := v.(*primitive.Iterator)
	if !ok {
		return nil, rterrors.WrongType(op, h, "iterator")
	}
	return it, nil
}

func encodeWord(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}
