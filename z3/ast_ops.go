//go:build cgo
// +build cgo

package z3

/*
#include "z3.h"
*/
import "C"

import "unsafe"

type naryFn func(C.Z3_context, C.uint, *C.Z3_ast) C.Z3_ast

type binaryFn func(C.Z3_context, C.Z3_ast, C.Z3_ast) C.Z3_ast

type unaryFn func(C.Z3_context, C.Z3_ast) C.Z3_ast

// Builders for every DeclKind Apply understands. Each entry is either n-ary,
// binary or unary.
var (
	naryOps = map[DeclKind]naryFn{
		DeclOpAnd: func(c C.Z3_context, n C.uint, args *C.Z3_ast) C.Z3_ast { return C.Z3_mk_and(c, n, args) },
		DeclOpOr:  func(c C.Z3_context, n C.uint, args *C.Z3_ast) C.Z3_ast { return C.Z3_mk_or(c, n, args) },
		DeclOpAdd: func(c C.Z3_context, n C.uint, args *C.Z3_ast) C.Z3_ast { return C.Z3_mk_add(c, n, args) },
		DeclOpSub: func(c C.Z3_context, n C.uint, args *C.Z3_ast) C.Z3_ast { return C.Z3_mk_sub(c, n, args) },
		DeclOpMul: func(c C.Z3_context, n C.uint, args *C.Z3_ast) C.Z3_ast { return C.Z3_mk_mul(c, n, args) },
		DeclOpDistinct: func(c C.Z3_context, n C.uint, args *C.Z3_ast) C.Z3_ast {
			return C.Z3_mk_distinct(c, n, args)
		},
	}
	binaryOps = map[DeclKind]binaryFn{
		DeclOpEq:      func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_eq(c, x, y) },
		DeclOpXor:     func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_xor(c, x, y) },
		DeclOpImplies: func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_implies(c, x, y) },
		DeclOpDiv:     func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_div(c, x, y) },
		DeclOpIDiv:    func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_div(c, x, y) },
		DeclOpRem:     func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_rem(c, x, y) },
		DeclOpMod:     func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_mod(c, x, y) },
		DeclOpLE:      func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_le(c, x, y) },
		DeclOpGE:      func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_ge(c, x, y) },
		DeclOpLT:      func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_lt(c, x, y) },
		DeclOpGT:      func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_gt(c, x, y) },
	}
	unaryOps = map[DeclKind]unaryFn{
		DeclOpNot:    func(c C.Z3_context, x C.Z3_ast) C.Z3_ast { return C.Z3_mk_not(c, x) },
		DeclOpUMinus: func(c C.Z3_context, x C.Z3_ast) C.Z3_ast { return C.Z3_mk_unary_minus(c, x) },
		DeclOpToReal: func(c C.Z3_context, x C.Z3_ast) C.Z3_ast { return C.Z3_mk_int2real(c, x) },
	}
)

// Apply builds the application of the operator identified by k to args. The
// operator kinds accepted are the boolean connectives (and, or, xor, not,
// implies), equality and distinct, the arithmetic operators (add, sub, mul,
// div, idiv, rem, mod, unary minus, to_real) and the orderings (le, ge, lt,
// gt). Sort errors reported by Z3 are returned as *Error.
func (ctx *Context) Apply(k DeclKind, args ...AST) (AST, error) {
	for _, arg := range args {
		if arg.IsNil() || arg.ctx != ctx {
			return AST{}, &Error{Code: ErrorCodeInvalidArg, Op: k.String(), Message: "argument from a different context"}
		}
	}
	var a C.Z3_ast
	if fn, ok := naryOps[k]; ok {
		if len(args) == 0 {
			return AST{}, arityError(k, "at least 1", 0)
		}
		cargs := rawArgs(args)
		a = fn(ctx.c, C.uint(len(cargs)), (*C.Z3_ast)(unsafe.Pointer(&cargs[0])))
	} else if fn, ok := binaryOps[k]; ok {
		if len(args) != 2 {
			return AST{}, arityError(k, "2", len(args))
		}
		a = fn(ctx.c, args[0].a, args[1].a)
	} else if fn, ok := unaryOps[k]; ok {
		if len(args) != 1 {
			return AST{}, arityError(k, "1", len(args))
		}
		a = fn(ctx.c, args[0].a)
	} else {
		return AST{}, &Error{Code: ErrorCodeInvalidArg, Op: k.String(), Message: "operator not supported by Apply"}
	}
	if err := ctx.err(k.String()); err != nil {
		return AST{}, err
	}
	return ctx.wrap(a), nil
}

func rawArgs(args []AST) []C.Z3_ast {
	cargs := make([]C.Z3_ast, len(args))
	for i, a := range args {
		cargs[i] = a.a
	}
	return cargs
}

// must backs the free-function builders below, which panic on misuse in the
// same way as Go's own arithmetic on mismatched operands.
func must(k DeclKind, args ...AST) AST {
	if len(args) == 0 {
		panic(k.String() + " requires at least one arg")
	}
	a, err := args[0].ctx.Apply(k, args...)
	if err != nil {
		panic(err)
	}
	return a
}

// Not returns the logical negation of the AST.
func (t AST) Not() AST { return must(DeclOpNot, t) }

// Neg returns the arithmetic negation of the AST.
func (t AST) Neg() AST { return must(DeclOpUMinus, t) }

// ToReal converts an Int AST into the Real sort.
func (t AST) ToReal() AST { return must(DeclOpToReal, t) }

// And builds a conjunction over all provided ASTs.
func And(args ...AST) AST { return must(DeclOpAnd, args...) }

// Or builds a disjunction over all provided ASTs.
func Or(args ...AST) AST { return must(DeclOpOr, args...) }

// Xor builds the exclusive or of two boolean ASTs.
func Xor(x, y AST) AST { return must(DeclOpXor, x, y) }

// Implies builds the implication x => y.
func Implies(x, y AST) AST { return must(DeclOpImplies, x, y) }

// Eq builds an equality between two ASTs.
func Eq(x, y AST) AST { return must(DeclOpEq, x, y) }

// Distinct enforces that all provided ASTs take pairwise different values.
func Distinct(args ...AST) AST { return must(DeclOpDistinct, args...) }

// Add sums all provided numeric ASTs.
func Add(args ...AST) AST { return must(DeclOpAdd, args...) }

// Sub subtracts subsequent ASTs from the first argument.
func Sub(args ...AST) AST { return must(DeclOpSub, args...) }

// Mul multiplies all provided numeric ASTs.
func Mul(args ...AST) AST { return must(DeclOpMul, args...) }

// Div divides x by y: integer division for Int operands, real division
// otherwise.
func Div(x, y AST) AST { return must(DeclOpDiv, x, y) }

// Le builds the constraint x <= y.
func Le(x, y AST) AST { return must(DeclOpLE, x, y) }

// Lt builds the constraint x < y.
func Lt(x, y AST) AST { return must(DeclOpLT, x, y) }

// Ge builds the constraint x >= y.
func Ge(x, y AST) AST { return must(DeclOpGE, x, y) }

// Gt builds the constraint x > y.
func Gt(x, y AST) AST { return must(DeclOpGT, x, y) }
