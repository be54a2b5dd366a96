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
	"math/big"
	"strconv"
	"unsafe"
)

// ASTKind mirrors Z3_ast_kind.
type ASTKind int

// Enumeration of supported AST kinds.
const (
	ASTKindNumeral    ASTKind = ASTKind(C.Z3_NUMERAL_AST)
	ASTKindApp        ASTKind = ASTKind(C.Z3_APP_AST)
	ASTKindVar        ASTKind = ASTKind(C.Z3_VAR_AST)
	ASTKindQuantifier ASTKind = ASTKind(C.Z3_QUANTIFIER_AST)
	ASTKindSort       ASTKind = ASTKind(C.Z3_SORT_AST)
	ASTKindFuncDecl   ASTKind = ASTKind(C.Z3_FUNC_DECL_AST)
	ASTKindUnknown    ASTKind = ASTKind(C.Z3_UNKNOWN_AST)
)

func (k ASTKind) String() string {
	switch k {
	case ASTKindNumeral:
		return "numeral"
	case ASTKindApp:
		return "app"
	case ASTKindVar:
		return "var"
	case ASTKindQuantifier:
		return "quantifier"
	case ASTKindSort:
		return "sort"
	case ASTKindFuncDecl:
		return "func-decl"
	case ASTKindUnknown:
		return "unknown"
	}
	return "ASTKind(" + strconv.Itoa(int(k)) + ")"
}

// DeclKind mirrors Z3_decl_kind for the operators of linear arithmetic and
// propositional logic. It doubles as the operator tag accepted by Apply.
type DeclKind int

const (
	DeclOpTrue          DeclKind = DeclKind(C.Z3_OP_TRUE)
	DeclOpFalse         DeclKind = DeclKind(C.Z3_OP_FALSE)
	DeclOpEq            DeclKind = DeclKind(C.Z3_OP_EQ)
	DeclOpDistinct      DeclKind = DeclKind(C.Z3_OP_DISTINCT)
	DeclOpIte           DeclKind = DeclKind(C.Z3_OP_ITE)
	DeclOpAnd           DeclKind = DeclKind(C.Z3_OP_AND)
	DeclOpOr            DeclKind = DeclKind(C.Z3_OP_OR)
	DeclOpXor           DeclKind = DeclKind(C.Z3_OP_XOR)
	DeclOpNot           DeclKind = DeclKind(C.Z3_OP_NOT)
	DeclOpImplies       DeclKind = DeclKind(C.Z3_OP_IMPLIES)
	DeclOpAdd           DeclKind = DeclKind(C.Z3_OP_ADD)
	DeclOpSub           DeclKind = DeclKind(C.Z3_OP_SUB)
	DeclOpMul           DeclKind = DeclKind(C.Z3_OP_MUL)
	DeclOpDiv           DeclKind = DeclKind(C.Z3_OP_DIV)
	DeclOpIDiv          DeclKind = DeclKind(C.Z3_OP_IDIV)
	DeclOpRem           DeclKind = DeclKind(C.Z3_OP_REM)
	DeclOpMod           DeclKind = DeclKind(C.Z3_OP_MOD)
	DeclOpUMinus        DeclKind = DeclKind(C.Z3_OP_UMINUS)
	DeclOpToReal        DeclKind = DeclKind(C.Z3_OP_TO_REAL)
	DeclOpLE            DeclKind = DeclKind(C.Z3_OP_LE)
	DeclOpGE            DeclKind = DeclKind(C.Z3_OP_GE)
	DeclOpLT            DeclKind = DeclKind(C.Z3_OP_LT)
	DeclOpGT            DeclKind = DeclKind(C.Z3_OP_GT)
	DeclOpANum          DeclKind = DeclKind(C.Z3_OP_ANUM)
	DeclOpUninterpreted DeclKind = DeclKind(C.Z3_OP_UNINTERPRETED)
)

// Kind reports the Z3 kind of a.
func (a AST) Kind() ASTKind {
	if a.IsNil() {
		return ASTKindUnknown
	}
	return ASTKind(C.Z3_get_ast_kind(a.ctx.c, a.a))
}

// app returns a as an application, or false for numerals bound as
// non-applications, quantifiers and nil.
func (a AST) app() (C.Z3_app, bool) {
	if a.IsNil() || !bool(C.Z3_is_app(a.ctx.c, a.a)) {
		return nil, false
	}
	return C.Z3_to_app(a.ctx.c, a.a), true
}

// IsApp reports whether a is a function application. Constants and
// numerals are nullary applications.
func (a AST) IsApp() bool {
	_, ok := a.app()
	return ok
}

// NumChildren returns the number of arguments of an application.
func (a AST) NumChildren() int {
	app, ok := a.app()
	if !ok {
		return 0
	}
	return int(C.Z3_get_app_num_args(a.ctx.c, app))
}

// Child returns argument i, or a nil AST when out of range.
func (a AST) Child(i int) AST {
	app, ok := a.app()
	if !ok || i < 0 || i >= int(C.Z3_get_app_num_args(a.ctx.c, app)) {
		return AST{}
	}
	return a.ctx.wrap(C.Z3_get_app_arg(a.ctx.c, app, C.uint(i)))
}

// Children returns every argument of an application.
func (a AST) Children() []AST {
	app, ok := a.app()
	if !ok {
		return nil
	}
	n := int(C.Z3_get_app_num_args(a.ctx.c, app))
	if n == 0 {
		return nil
	}
	out := make([]AST, n)
	for i := range out {
		out[i] = a.ctx.wrap(C.Z3_get_app_arg(a.ctx.c, app, C.uint(i)))
	}
	return out
}

// Decl returns the declaration applied by a.
func (a AST) Decl() FuncDecl {
	app, ok := a.app()
	if !ok {
		return FuncDecl{}
	}
	return FuncDecl{ctx: a.ctx, d: C.Z3_get_app_decl(a.ctx.c, app)}
}

// Op returns the operator tag of an application, or DeclOpUninterpreted.
func (a AST) Op() DeclKind {
	if !a.IsApp() {
		return DeclOpUninterpreted
	}
	return a.Decl().Kind()
}

func (d FuncDecl) valid() bool { return d.ctx != nil && d.ctx.c != nil && d.d != nil }

// Kind returns the operator tag of d, or 0 for a zero FuncDecl.
func (d FuncDecl) Kind() DeclKind {
	if !d.valid() {
		return 0
	}
	return DeclKind(C.Z3_get_decl_kind(d.ctx.c, d.d))
}

// Arity returns the number of parameters of d.
func (d FuncDecl) Arity() int {
	if !d.valid() {
		return 0
	}
	return int(C.Z3_get_arity(d.ctx.c, d.d))
}

// Name returns the declared name; numbered symbols render as "#n".
func (d FuncDecl) Name() string {
	if !d.valid() {
		return ""
	}
	sym := C.Z3_get_decl_name(d.ctx.c, d.d)
	switch C.Z3_get_symbol_kind(d.ctx.c, sym) {
	case C.Z3_INT_SYMBOL:
		return "#" + strconv.Itoa(int(C.Z3_get_symbol_int(d.ctx.c, sym)))
	case C.Z3_STRING_SYMBOL:
		return C.GoString(C.Z3_get_symbol_string(d.ctx.c, sym))
	}
	return ""
}

// Walk visits a and its descendants depth first, parents before children.
// Returning false from fn prunes the subtree below the node.
func (a AST) Walk(fn ASTVisitFunc) {
	if fn == nil || a.IsNil() || !fn(a) {
		return
	}
	for _, c := range a.Children() {
		c.Walk(fn)
	}
}

// BoolValue attempts to interpret the AST as a boolean literal.
func (a AST) BoolValue() (bool, bool) {
	if a.IsNil() {
		return false, false
	}
	switch C.Z3_get_bool_value(a.ctx.c, a.a) {
	case C.Z3_L_TRUE:
		return true, true
	case C.Z3_L_FALSE:
		return false, true
	default:
		return false, false
	}
}

// AsRat reads a numeral AST as an exact rational. Negated numerals, as Z3
// sometimes prints model values, and to_real wrappers are accepted too.
func (a AST) AsRat() (*big.Rat, bool) {
	if a.IsNil() {
		return nil, false
	}
	if a.Kind() == ASTKindNumeral {
		r, ok := new(big.Rat).SetString(a.NumeralString())
		return r, ok
	}
	switch a.Op() {
	case DeclOpUMinus:
		if r, ok := a.Child(0).AsRat(); ok {
			return r.Neg(r), true
		}
	case DeclOpToReal:
		return a.Child(0).AsRat()
	}
	return nil, false
}

// AsInt64 tries to read the AST as an Int numeral.
func (a AST) AsInt64() (int64, bool) {
	if a.IsNil() {
		return 0, false
	}
	if a.Kind() == ASTKindNumeral {
		var out C.longlong
		if bool(C.Z3_get_numeral_int64(a.ctx.c, a.a, &out)) {
			return int64(out), true
		}
	}
	rat, ok := a.AsRat()
	if !ok || !rat.IsInt() || !rat.Num().IsInt64() {
		return 0, false
	}
	return rat.Num().Int64(), true
}

// ParseSMTLIB2String parses an SMT-LIB 2 script and returns its
// assertions.
func (ctx *Context) ParseSMTLIB2String(input string) ([]AST, error) {
	if ctx == nil || ctx.c == nil {
		return nil, errors.New("z3: nil context")
	}
	script := C.CString(input)
	defer C.free(unsafe.Pointer(script))
	vec := C.Z3_parse_smtlib2_string(ctx.c, script, 0, nil, nil, 0, nil, nil)
	if err := ctx.err("Z3_parse_smtlib2_string"); err != nil {
		return nil, err
	}
	return ctx.vector(vec), nil
}

// vector copies the elements of an AST vector, taking a reference on each.
func (ctx *Context) vector(vec C.Z3_ast_vector) []AST {
	if vec == nil {
		return nil
	}
	C.Z3_ast_vector_inc_ref(ctx.c, vec)
	defer C.Z3_ast_vector_dec_ref(ctx.c, vec)
	out := make([]AST, 0, int(C.Z3_ast_vector_size(ctx.c, vec)))
	for i := C.uint(0); i < C.Z3_ast_vector_size(ctx.c, vec); i++ {
		if a := ctx.wrap(C.Z3_ast_vector_get(ctx.c, vec, i)); !a.IsNil() {
			out = append(out, a)
		}
	}
	return out
}
