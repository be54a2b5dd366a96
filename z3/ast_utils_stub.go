//go:build !cgo
// +build !cgo

package z3

import "math/big"

// ASTKind is a placeholder when cgo is disabled.
type ASTKind int

const (
	ASTKindNumeral ASTKind = iota
	ASTKindApp
	ASTKindVar
	ASTKindQuantifier
	ASTKindSort
	ASTKindFuncDecl
	ASTKindUnknown
)

func (k ASTKind) String() string { return "ast-kind" }

// DeclKind is a placeholder when cgo is disabled. The values are distinct so
// operator tags still compare and print correctly.
type DeclKind int

const (
	DeclOpTrue DeclKind = iota + 0x100
	DeclOpFalse
	DeclOpEq
	DeclOpDistinct
	DeclOpIte
	DeclOpAnd
	DeclOpOr
	DeclOpXor
	DeclOpNot
	DeclOpImplies
	DeclOpAdd
	DeclOpSub
	DeclOpMul
	DeclOpDiv
	DeclOpIDiv
	DeclOpRem
	DeclOpMod
	DeclOpUMinus
	DeclOpToReal
	DeclOpLE
	DeclOpGE
	DeclOpLT
	DeclOpGT
	DeclOpANum
	DeclOpUninterpreted
)

func (a AST) Kind() ASTKind           { return ASTKindUnknown }
func (a AST) IsApp() bool             { return false }
func (a AST) NumChildren() int        { return 0 }
func (a AST) Child(int) AST           { return AST{} }
func (a AST) Children() []AST         { return nil }
func (a AST) Decl() FuncDecl          { return FuncDecl{} }
func (a AST) Op() DeclKind            { return DeclOpUninterpreted }
func (a AST) Walk(ASTVisitFunc)       {}
func (a AST) BoolValue() (bool, bool) { return false, false }
func (a AST) AsRat() (*big.Rat, bool) { return nil, false }
func (a AST) AsInt64() (int64, bool)  { return 0, false }
func (a AST) Not() AST                { return AST{} }
func (a AST) Neg() AST                { return AST{} }
func (a AST) ToReal() AST             { return AST{} }

func (d FuncDecl) Kind() DeclKind { return DeclOpUninterpreted }
func (d FuncDecl) Arity() int     { return 0 }
func (d FuncDecl) Name() string   { return "" }

func (ctx *Context) ParseSMTLIB2String(string) ([]AST, error) { return nil, errNoCgo }
