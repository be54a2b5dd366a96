//go:build !cgo
// +build !cgo

// Package z3 provides a minimal Go binding to Z3's C API.
// This stub allows the package to build without cgo available: every
// constructor returns zero values and every fallible call reports that cgo
// is required. Install Z3 and enable cgo to use the real binding.
package z3

import "errors"

var errNoCgo = errors.New("z3: cgo support is required")

type Context struct{}

type Config struct{}

type Sort struct{}

type AST struct{}

type FuncDecl struct{}

type Solver struct{}

type Model struct{}

type SortKind int

const (
	SortKindUnknown SortKind = iota
	SortKindBool
	SortKindInt
	SortKindReal
	SortKindOther
)

func NewConfig() *Config                       { return &Config{} }
func (cfg *Config) SetParam(key, value string) {}
func (cfg *Config) Close()                     {}

func NewContext(cfg *Config) *Context { return &Context{} }
func (ctx *Context) Close()           {}
func (ctx *Context) Interrupt()       {}

func (ctx *Context) BoolSort() Sort                { return Sort{} }
func (ctx *Context) IntSort() Sort                 { return Sort{} }
func (ctx *Context) RealSort() Sort                { return Sort{} }
func (ctx *Context) Const(name string, s Sort) AST { return AST{} }
func (ctx *Context) IntVal(v int64) AST            { return AST{} }
func (ctx *Context) RealVal(num string) AST        { return AST{} }
func (ctx *Context) BoolVal(b bool) AST            { return AST{} }
func (ctx *Context) Numeral(string, Sort) (AST, error) {
	return AST{}, errNoCgo
}
func (ctx *Context) Apply(DeclKind, ...AST) (AST, error) { return AST{}, errNoCgo }

func (a AST) IsNil() bool           { return true }
func (a AST) Sort() Sort            { return Sort{} }
func (a AST) Equal(b AST) bool      { return true }
func (a AST) String() string        { return "<nil>" }
func (a AST) NumeralString() string { return "" }
func (s Sort) Kind() SortKind       { return SortKindUnknown }
func (s Sort) String() string       { return "" }

func SetGlobalParam(key, value string)            {}
func (ctx *Context) NewSolver() *Solver           { return &Solver{} }
func (s *Solver) Close()                          {}
func (s *Solver) SetTimeout(uint) error           { return errNoCgo }
func (s *Solver) SetBoolParam(string, bool) error { return errNoCgo }
func (s *Solver) Assert(AST) error                { return errNoCgo }
func (s *Solver) Push()                           {}
func (s *Solver) Pop(uint)                        {}
func (s *Solver) NumScopes() uint                 { return 0 }
func (s *Solver) Check() (CheckResult, error)     { return Unknown, errNoCgo }
func (s *Solver) ReasonUnknown() string           { return "" }
func (s *Solver) Model() (*Model, error)          { return nil, errNoCgo }
func (s *Solver) String() string                  { return "<nil-solver>" }

func (m *Model) Close()                      {}
func (m *Model) Eval(AST, bool) (AST, error) { return AST{}, errNoCgo }
func (m *Model) String() string              { return "<nil-model>" }
