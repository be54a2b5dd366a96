//go:build cgo
// +build cgo

// Package z3 provides a minimal Go binding to Z3's C API.
// It covers what a constraint front end needs: contexts, the Int/Real/Bool
// sorts, constants and exact numerals, operator construction by declaration
// kind, solvers, and models.
package z3

/*
// cgo headers (linker flags are provided via separate build-tagged files).
#include <stdlib.h>
#include "z3.h"

int model_eval_wrap(Z3_context c, Z3_model m, Z3_ast a, int model_completion, Z3_ast* out) {
	return Z3_model_eval(c, m, a, model_completion, out);
}

// Install a no-op error handler so Z3 doesn't abort on errors; we'll query errors from Go.
void go_z3_error_handler(Z3_context c, Z3_error_code e) {
	// no-op
}
static void z3_set_noop_error_handler(Z3_context c) {
	Z3_set_error_handler(c, go_z3_error_handler);
}
*/
import "C"
import (
	"runtime"
	"strconv"
	"unsafe"
)

// Context wraps Z3_context. A Context is not safe for concurrent use; every
// AST, Sort and Solver created from it must not outlive it.
type Context struct {
	c C.Z3_context
}

// Config wraps Z3_config.
type Config struct{ cfg C.Z3_config }

// NewConfig creates a default config with model construction and auto
// configuration enabled. Callers can mutate the returned Config via SetParam
// before NewContext consumes it.
func NewConfig() *Config {
	cfg := &Config{cfg: C.Z3_mk_config()}
	cfg.SetParam("model", "true")
	cfg.SetParam("auto_config", "true")
	return cfg
}

// SetParam sets a configuration parameter before creating a context. Z3 only
// consults these parameters at context creation time.
func (cfg *Config) SetParam(key, value string) {
	if cfg == nil || cfg.cfg == nil {
		return
	}
	k := C.CString(key)
	v := C.CString(value)
	C.Z3_set_param_value(cfg.cfg, k, v)
	C.free(unsafe.Pointer(k))
	C.free(unsafe.Pointer(v))
}

// Close frees the config. It is safe to call multiple times or on a nil
// receiver.
func (cfg *Config) Close() {
	if cfg != nil && cfg.cfg != nil {
		C.Z3_del_config(cfg.cfg)
		cfg.cfg = nil
	}
}

// NewContext creates a new Z3 context with the given config (optional).
// Contexts install a no-op error handler so Z3 surfaces errors through Go
// return values instead of aborting the process.
func NewContext(cfg *Config) *Context {
	var c C.Z3_context
	if cfg != nil {
		c = C.Z3_mk_context(cfg.cfg)
	} else {
		tmp := C.Z3_mk_config()
		c = C.Z3_mk_context(tmp)
		C.Z3_del_config(tmp)
	}
	C.z3_set_noop_error_handler(c)
	ctx := &Context{c: c}
	runtime.SetFinalizer(ctx, func(x *Context) { x.Close() })
	return ctx
}

// Close deletes the context. After Close returns the context and everything
// created from it must not be used.
func (ctx *Context) Close() {
	if ctx != nil && ctx.c != nil {
		C.Z3_del_context(ctx.c)
		ctx.c = nil
	}
}

// Interrupt asks a running Check on any solver of this context to stop. It is
// the only Context method that may be called from another goroutine.
func (ctx *Context) Interrupt() {
	if ctx != nil && ctx.c != nil {
		C.Z3_interrupt(ctx.c)
	}
}

// err returns the error recorded by the last API call on this context.
func (ctx *Context) err(op string) error {
	if code := C.Z3_get_error_code(ctx.c); code != C.Z3_OK {
		msg := C.Z3_get_error_msg(ctx.c, code)
		e := &Error{Code: int(code), Op: op}
		if msg != nil {
			e.Message = C.GoString(msg)
		}
		return e
	}
	return nil
}

// Sort wraps Z3_sort.
type Sort struct {
	ctx *Context
	s   C.Z3_sort
}

// AST wraps Z3_ast. Two ASTs compare equal with == exactly when they refer to
// the same node of the same context.
type AST struct {
	ctx *Context
	a   C.Z3_ast
}

// FuncDecl wraps Z3_func_decl.
type FuncDecl struct {
	ctx *Context
	d   C.Z3_func_decl
}

// BoolSort returns the boolean sort.
func (ctx *Context) BoolSort() Sort {
	return Sort{ctx, C.Z3_mk_bool_sort(ctx.c)}
}

// IntSort returns the integer sort representing mathematical integers.
func (ctx *Context) IntSort() Sort {
	return Sort{ctx, C.Z3_mk_int_sort(ctx.c)}
}

// RealSort returns the real-number sort.
func (ctx *Context) RealSort() Sort {
	return Sort{ctx, C.Z3_mk_real_sort(ctx.c)}
}

func (ctx *Context) symbol(name string) C.Z3_symbol {
	cstr := C.CString(name)
	defer C.free(unsafe.Pointer(cstr))
	return C.Z3_mk_string_symbol(ctx.c, cstr)
}

// wrap takes a reference on a and ties it to ctx. A nil a yields the nil AST.
func (ctx *Context) wrap(a C.Z3_ast) AST {
	if a == nil {
		return AST{}
	}
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// Const creates an uninterpreted constant with the given name and sort.
func (ctx *Context) Const(name string, s Sort) AST {
	return ctx.wrap(C.Z3_mk_const(ctx.c, ctx.symbol(name), s.s))
}

// Numeral creates a numeral of sort s from its textual form. Z3 reads the
// text exactly, so "1/10" and "0.1" both denote one tenth.
func (ctx *Context) Numeral(lit string, s Sort) (AST, error) {
	cstr := C.CString(lit)
	defer C.free(unsafe.Pointer(cstr))
	a := C.Z3_mk_numeral(ctx.c, cstr, s.s)
	if err := ctx.err("Z3_mk_numeral"); err != nil {
		return AST{}, err
	}
	return ctx.wrap(a), nil
}

// IntVal creates an integer numeral AST from the provided value.
func (ctx *Context) IntVal(v int64) AST {
	a, _ := ctx.Numeral(strconv.FormatInt(v, 10), ctx.IntSort())
	return a
}

// RealVal creates a real numeral from a string like "1/3" or "2". It returns
// the zero AST if Z3 rejects the text; use Numeral to see the error.
func (ctx *Context) RealVal(num string) AST {
	a, _ := ctx.Numeral(num, ctx.RealSort())
	return a
}

// BoolVal creates a boolean constant true/false.
func (ctx *Context) BoolVal(b bool) AST {
	var a C.Z3_ast
	if b {
		a = C.Z3_mk_true(ctx.c)
	} else {
		a = C.Z3_mk_false(ctx.c)
	}
	return ctx.wrap(a)
}

// IsNil reports whether the AST does not refer to any Z3 node.
func (a AST) IsNil() bool { return a.ctx == nil || a.a == nil }

// Sort returns the sort of the AST.
func (a AST) Sort() Sort {
	if a.IsNil() {
		return Sort{}
	}
	return Sort{a.ctx, C.Z3_get_sort(a.ctx.c, a.a)}
}

// Equal reports whether both ASTs are the same Z3 node. Z3 hash-conses terms,
// so structurally identical terms built in one context are Equal.
func (a AST) Equal(b AST) bool {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() && b.IsNil()
	}
	return a.ctx == b.ctx && bool(C.Z3_is_eq_ast(a.ctx.c, a.a, b.a))
}

// String returns an SMT-LIB-like textual representation of the AST.
func (a AST) String() string {
	if a.a == nil {
		return "<nil>"
	}
	s := C.Z3_ast_to_string(a.ctx.c, a.a)
	if s == nil {
		return "<invalid>"
	}
	return C.GoString(s)
}

// SortKind classifies a sort.
type SortKind int

const (
	SortKindUnknown SortKind = iota
	SortKindBool
	SortKindInt
	SortKindReal
	SortKindOther
)

// Kind returns the sort's kind.
func (s Sort) Kind() SortKind {
	if s.ctx == nil || s.s == nil {
		return SortKindUnknown
	}
	switch C.Z3_get_sort_kind(s.ctx.c, s.s) {
	case C.Z3_BOOL_SORT:
		return SortKindBool
	case C.Z3_INT_SORT:
		return SortKindInt
	case C.Z3_REAL_SORT:
		return SortKindReal
	default:
		return SortKindOther
	}
}

// String returns an SMT-LIB-like textual representation of the sort.
func (s Sort) String() string {
	if s.ctx == nil || s.s == nil {
		return ""
	}
	str := C.Z3_sort_to_string(s.ctx.c, s.s)
	if str == nil {
		return "<invalid-sort>"
	}
	return C.GoString(str)
}

// NumeralString returns a textual numeral if the AST is numeric.
func (a AST) NumeralString() string {
	if a.a == nil {
		return ""
	}
	s := C.Z3_get_numeral_string(a.ctx.c, a.a)
	if s == nil {
		return ""
	}
	return C.GoString(s)
}
