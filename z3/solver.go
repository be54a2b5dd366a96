//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"

import (
	"errors"
	"runtime"
	"unsafe"
)

// Solver wraps a Z3_solver handle tied to the owning Context.
type Solver struct {
	ctx *Context
	s   C.Z3_solver
}

// NewSolver creates a fresh solver attached to the context. The returned
// solver carries a finalizer so leaked solver handles are still released when
// the GC runs.
func (ctx *Context) NewSolver() *Solver {
	s := &Solver{ctx, C.Z3_mk_solver(ctx.c)}
	C.Z3_solver_inc_ref(ctx.c, s.s)
	runtime.SetFinalizer(s, func(x *Solver) { x.Close() })
	return s
}

// Close releases the underlying Z3 solver reference. Repeated calls are
// no-ops.
func (s *Solver) Close() {
	if s != nil && s.s != nil {
		C.Z3_solver_dec_ref(s.ctx.c, s.s)
		s.s = nil
	}
}

// SetGlobalParam sets a global Z3 parameter. Global parameters affect every
// context in the current process.
func SetGlobalParam(key, value string) {
	k := C.CString(key)
	v := C.CString(value)
	C.Z3_global_param_set(k, v)
	C.free(unsafe.Pointer(k))
	C.free(unsafe.Pointer(v))
}

// SetTimeout bounds every subsequent Check to ms milliseconds. Zero removes
// the bound.
func (s *Solver) SetTimeout(ms uint) error {
	return s.setParams(func(p C.Z3_params) {
		k := C.CString("timeout")
		defer C.free(unsafe.Pointer(k))
		v := C.uint(ms)
		if ms == 0 {
			v = C.uint(^uint32(0))
		}
		C.Z3_params_set_uint(s.ctx.c, p, C.Z3_mk_string_symbol(s.ctx.c, k), v)
	})
}

// SetBoolParam sets a boolean solver parameter such as "model".
func (s *Solver) SetBoolParam(name string, value bool) error {
	return s.setParams(func(p C.Z3_params) {
		k := C.CString(name)
		defer C.free(unsafe.Pointer(k))
		C.Z3_params_set_bool(s.ctx.c, p, C.Z3_mk_string_symbol(s.ctx.c, k), C.bool(value))
	})
}

func (s *Solver) setParams(fill func(C.Z3_params)) error {
	if s == nil || s.s == nil {
		return errors.New("nil solver")
	}
	p := C.Z3_mk_params(s.ctx.c)
	C.Z3_params_inc_ref(s.ctx.c, p)
	defer C.Z3_params_dec_ref(s.ctx.c, p)
	fill(p)
	C.Z3_solver_set_params(s.ctx.c, s.s, p)
	return s.ctx.err("Z3_solver_set_params")
}

// Assert adds a constraint to the solver without copying it. The AST must have
// been created in the same context as the solver.
func (s *Solver) Assert(a AST) error {
	if a.IsNil() || a.ctx != s.ctx {
		return &Error{Code: ErrorCodeInvalidArg, Op: "Z3_solver_assert", Message: "assertion from a different context"}
	}
	C.Z3_solver_assert(s.ctx.c, s.s, a.a)
	return s.ctx.err("Z3_solver_assert")
}

// Push creates a new solver scope, allowing constraints to be added and later
// discarded with a matching Pop.
func (s *Solver) Push() {
	C.Z3_solver_push(s.ctx.c, s.s)
}

// Pop removes the given number of solver scopes.
func (s *Solver) Pop(n uint) {
	C.Z3_solver_pop(s.ctx.c, s.s, C.uint(n))
}

// NumScopes returns the number of open Push scopes.
func (s *Solver) NumScopes() uint {
	return uint(C.Z3_solver_get_num_scopes(s.ctx.c, s.s))
}

// Check runs the solver with the currently asserted constraints. An Unknown
// result is not an error; ReasonUnknown explains it. Errors are reserved for
// failures reported by Z3.
func (s *Solver) Check() (CheckResult, error) {
	r := C.Z3_solver_check(s.ctx.c, s.s)
	if err := s.ctx.err("Z3_solver_check"); err != nil {
		return Unknown, err
	}
	switch r {
	case C.Z3_L_TRUE:
		return Sat, nil
	case C.Z3_L_FALSE:
		return Unsat, nil
	default:
		return Unknown, nil
	}
}

// ReasonUnknown returns Z3's explanation for an "unknown" result.
func (s *Solver) ReasonUnknown() string {
	if s == nil || s.s == nil {
		return ""
	}
	rstr := C.Z3_solver_get_reason_unknown(s.ctx.c, s.s)
	if rstr == nil {
		return ""
	}
	return C.GoString(rstr)
}

// Model retrieves the model of the last satisfiable Check. The returned
// model must be closed by the caller.
func (s *Solver) Model() (*Model, error) {
	m := C.Z3_solver_get_model(s.ctx.c, s.s)
	if err := s.ctx.err("Z3_solver_get_model"); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("z3: no model available")
	}
	C.Z3_model_inc_ref(s.ctx.c, m)
	mod := &Model{s.ctx, m}
	runtime.SetFinalizer(mod, func(x *Model) { x.Close() })
	return mod, nil
}

// String prints the asserted constraints in SMT-LIB form.
func (s *Solver) String() string {
	if s == nil || s.s == nil {
		return "<nil-solver>"
	}
	return C.GoString(C.Z3_solver_to_string(s.ctx.c, s.s))
}
