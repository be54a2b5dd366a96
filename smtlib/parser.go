// Package smtlib reads constraint problems written in the quantifier-free
// linear arithmetic fragment of SMT-LIB v2 (QF_LIA, QF_LRA and their mix)
// into expr formulas.
//
// Only zero-arity Int and Real declarations are accepted. Boolean literals,
// let bindings, ite and quantifiers are rejected with an error wrapping
// ErrUnsupported.
package smtlib

import (
	"fmt"
	"io"
	"strings"

	"github.com/vhavlena/z3-constraints/expr"
)

// Problem is a parsed script.
type Problem struct {
	Logic      string
	Vars       []expr.Variable
	Assertions []expr.Node
	// CheckSat reports whether the script issued check-sat.
	CheckSat bool
}

// Conjunction returns the conjunction of all assertions, or nil if there
// are none.
func (p *Problem) Conjunction() expr.Node { return expr.And(p.Assertions...) }

// WriteTo renders p as an SMT-LIB script that Parse reads back into an
// equivalent problem.
func (p *Problem) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	if p.Logic != "" {
		fmt.Fprintf(&b, "(set-logic %s)\n", p.Logic)
	}
	for i := range p.Vars {
		fmt.Fprintf(&b, "(declare-const %s %s)\n", p.Vars[i].String(), p.Vars[i].Sort)
	}
	for _, a := range p.Assertions {
		fmt.Fprintf(&b, "(assert %s)\n", a)
	}
	if p.CheckSat {
		b.WriteString("(check-sat)\n")
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Parse reads a script from r.
func Parse(r io.Reader) (*Problem, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("smtlib: read: %w", err)
	}
	return ParseString(string(b))
}

// ParseString reads a script held in a string.
func ParseString(script string) (*Problem, error) {
	p := &parser{
		input: script,
		decls: make(map[string]expr.Sort),
		prob:  &Problem{},
	}
	rd := newReader(script)
	for !p.exited {
		cmd, err := rd.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := p.command(cmd); err != nil {
			return nil, err
		}
	}
	return p.prob, nil
}

type parser struct {
	input  string
	decls  map[string]expr.Sort
	prob   *Problem
	exited bool
}

func (p *parser) errorf(s *sexp, format string, args ...any) error {
	return errorAt(p.input, s.tok.pos, format, args...)
}

func (p *parser) unsupported(s *sexp, format string, args ...any) error {
	return unsupportedAt(p.input, s.tok.pos, format, args...)
}

func (p *parser) command(s *sexp) error {
	if s.atom || len(s.list) == 0 {
		return p.errorf(s, "expected a command")
	}
	name, ok := s.list[0].symbol()
	if !ok {
		return p.errorf(s, "expected a command name")
	}
	args := s.list[1:]
	switch name {
	case "set-logic":
		if len(args) != 1 {
			return p.errorf(s, "set-logic takes one argument")
		}
		logic, ok := args[0].symbol()
		if !ok {
			return p.errorf(args[0], "expected a logic name")
		}
		p.prob.Logic = logic
	case "set-info", "set-option", "get-model":
	case "check-sat":
		p.prob.CheckSat = true
	case "exit":
		p.exited = true
	case "declare-const":
		if len(args) != 2 {
			return p.errorf(s, "declare-const takes a name and a sort")
		}
		return p.declare(args[0], args[1])
	case "declare-fun":
		if len(args) != 3 {
			return p.errorf(s, "declare-fun takes a name, parameter sorts and a sort")
		}
		if args[1].atom {
			return p.errorf(args[1], "expected a parameter list")
		}
		if len(args[1].list) != 0 {
			return p.unsupported(s, "function declaration with parameters")
		}
		return p.declare(args[0], args[2])
	case "assert":
		if len(args) != 1 {
			return p.errorf(s, "assert takes one term")
		}
		n, err := p.term(args[0])
		if err != nil {
			return err
		}
		if n.Type() != expr.Bool {
			return p.errorf(args[0], "asserted term has sort %s, want Bool", n.Type())
		}
		p.prob.Assertions = append(p.prob.Assertions, n)
	default:
		return p.unsupported(s, "command %s", name)
	}
	return nil
}

func (p *parser) declare(nameExpr, sortExpr *sexp) error {
	name, ok := nameExpr.symbol()
	if !ok {
		return p.errorf(nameExpr, "expected a symbol")
	}
	if _, dup := p.decls[name]; dup {
		return p.errorf(nameExpr, "%s is already declared", name)
	}
	sortName, ok := sortExpr.symbol()
	if !ok {
		return p.unsupported(sortExpr, "parametric sort")
	}
	s, ok := expr.ParseSort(sortName)
	if !ok || !s.Numeric() {
		return p.unsupported(sortExpr, "sort %s", sortName)
	}
	p.decls[name] = s
	p.prob.Vars = append(p.prob.Vars, expr.Variable{Name: name, Sort: s})
	return nil
}

func (p *parser) term(s *sexp) (expr.Node, error) {
	if s.atom {
		return p.atom(s)
	}
	if len(s.list) == 0 {
		return nil, p.errorf(s, "empty application")
	}
	head, ok := s.list[0].symbol()
	if !ok {
		return nil, p.unsupported(s, "application of a compound term")
	}
	args := s.list[1:]
	switch head {
	case "-":
		if len(args) == 1 {
			return p.negate(args[0])
		}
		return p.arith(s, expr.MINUS, args)
	case "+":
		return p.arith(s, expr.PLUS, args)
	case "*":
		return p.arith(s, expr.MUL, args)
	case "/":
		return p.realDiv(s, args)
	case "div":
		return p.intArith(s, expr.DIV, args)
	case "mod":
		if len(args) != 2 {
			return nil, p.errorf(s, "mod takes two arguments")
		}
		return p.intArith(s, expr.REM, args)
	case "=":
		return p.equal(s, args)
	case "distinct":
		return p.distinct(s, args)
	case "<=":
		return p.chain(s, expr.LE, args)
	case "<":
		return p.chain(s, expr.LT, args)
	case ">=":
		return p.chain(s, expr.GE, args)
	case ">":
		return p.chain(s, expr.GT, args)
	case "and":
		return p.connective(s, expr.AND, args)
	case "or":
		return p.connective(s, expr.OR, args)
	case "xor":
		return p.connective(s, expr.XOR, args)
	case "not":
		if len(args) != 1 {
			return nil, p.errorf(s, "not takes one argument")
		}
		fs, err := p.formulas(args)
		if err != nil {
			return nil, err
		}
		return expr.Not(fs[0]), nil
	case "=>":
		fs, err := p.formulas(args)
		if err != nil {
			return nil, err
		}
		if len(fs) < 2 {
			return nil, p.errorf(s, "=> takes at least two arguments")
		}
		acc := fs[len(fs)-1]
		for i := len(fs) - 2; i >= 0; i-- {
			acc = expr.Logic(fs[i], expr.IMPLY, acc)
		}
		return acc, nil
	case "let", "forall", "exists", "ite", "!", "abs", "to_real", "to_int", "is_int":
		return nil, p.unsupported(s, "operator %s", head)
	}
	if _, ok := p.decls[head]; ok {
		return nil, p.unsupported(s, "application of constant %s", head)
	}
	return nil, p.errorf(s, "unknown function %s", head)
}

func (p *parser) atom(s *sexp) (expr.Node, error) {
	switch s.tok.typ {
	case tokNumeral:
		return expr.IntConst(s.tok.val), nil
	case tokDecimal:
		return expr.RealConst(s.tok.val), nil
	case tokSymbol:
		name := s.tok.val
		if sort, ok := p.decls[name]; ok {
			return expr.Var(name, sort), nil
		}
		if name == "true" || name == "false" {
			return nil, p.unsupported(s, "boolean literal %s", name)
		}
		return nil, p.errorf(s, "unknown symbol %s", name)
	}
	return nil, p.unsupported(s, "%s literal", s.tok.typ)
}

// negate folds (- c) of a literal into a negative constant.
func (p *parser) negate(arg *sexp) (expr.Node, error) {
	x, err := p.numeric(arg)
	if err != nil {
		return nil, err
	}
	if c, ok := x.(*expr.Constant); ok && !strings.HasPrefix(c.Value, "-") {
		return &expr.Constant{Sort: c.Sort, Value: "-" + c.Value}, nil
	}
	return expr.Neg(x), nil
}

func (p *parser) numeric(s *sexp) (expr.Node, error) {
	n, err := p.term(s)
	if err != nil {
		return nil, err
	}
	if !n.Type().Numeric() {
		return nil, p.errorf(s, "expected a numeric term, got %s", n.Type())
	}
	return n, nil
}

func (p *parser) numerics(args []*sexp) ([]expr.Node, error) {
	out := make([]expr.Node, len(args))
	for i, a := range args {
		n, err := p.numeric(a)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (p *parser) formulas(args []*sexp) ([]expr.Node, error) {
	out := make([]expr.Node, len(args))
	for i, a := range args {
		n, err := p.term(a)
		if err != nil {
			return nil, err
		}
		if n.Type() != expr.Bool {
			return nil, p.errorf(a, "expected a formula, got %s", n.Type())
		}
		out[i] = n
	}
	return out, nil
}

func (p *parser) arith(s *sexp, op expr.NumericOperator, args []*sexp) (expr.Node, error) {
	if len(args) < 2 {
		return nil, p.errorf(s, "%s takes at least two arguments", op)
	}
	xs, err := p.numerics(args)
	if err != nil {
		return nil, err
	}
	return foldArith(op, xs), nil
}

func (p *parser) intArith(s *sexp, op expr.NumericOperator, args []*sexp) (expr.Node, error) {
	n, err := p.arith(s, op, args)
	if err != nil {
		return nil, err
	}
	if n.Type() != expr.Int {
		return nil, p.errorf(s, "%s needs Int arguments", s.list[0].tok.val)
	}
	return n, nil
}

// realDiv reads (/ a b ...). Literal fractions become a single exact Real
// constant; Int literals among the operands are read as Real.
func (p *parser) realDiv(s *sexp, args []*sexp) (expr.Node, error) {
	if len(args) < 2 {
		return nil, p.errorf(s, "/ takes at least two arguments")
	}
	xs, err := p.numerics(args)
	if err != nil {
		return nil, err
	}
	for i, x := range xs {
		if c, ok := x.(*expr.Constant); ok && c.Sort == expr.Int {
			xs[i] = expr.RealConst(c.Value)
		}
	}
	if q, ok := foldLiteral(xs); ok {
		return q, nil
	}
	n := foldArith(expr.DIV, xs)
	if n.Type() != expr.Real {
		return nil, p.errorf(s, "/ of Int terms; use div")
	}
	return n, nil
}

func (p *parser) equal(s *sexp, args []*sexp) (expr.Node, error) {
	if len(args) < 2 {
		return nil, p.errorf(s, "= takes at least two arguments")
	}
	first, err := p.term(args[0])
	if err != nil {
		return nil, err
	}
	if first.Type() == expr.Bool {
		fs, err := p.formulas(args)
		if err != nil {
			return nil, err
		}
		var out []expr.Node
		for i := 1; i < len(fs); i++ {
			out = append(out, expr.Logic(fs[i-1], expr.EQUIV, fs[i]))
		}
		return expr.And(out...), nil
	}
	return p.chain(s, expr.EQ, args)
}

func (p *parser) chain(s *sexp, cmp expr.Comparator, args []*sexp) (expr.Node, error) {
	if len(args) < 2 {
		return nil, p.errorf(s, "%s takes at least two arguments", s.list[0].tok.val)
	}
	xs, err := p.numerics(args)
	if err != nil {
		return nil, err
	}
	var out []expr.Node
	for i := 1; i < len(xs); i++ {
		out = append(out, expr.Cmp(xs[i-1], cmp, xs[i]))
	}
	return expr.And(out...), nil
}

func (p *parser) distinct(s *sexp, args []*sexp) (expr.Node, error) {
	if len(args) < 2 {
		return nil, p.errorf(s, "distinct takes at least two arguments")
	}
	xs, err := p.numerics(args)
	if err != nil {
		return nil, err
	}
	var out []expr.Node
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			out = append(out, expr.Cmp(xs[i], expr.NE, xs[j]))
		}
	}
	return expr.And(out...), nil
}

func (p *parser) connective(s *sexp, op expr.LogicalOperator, args []*sexp) (expr.Node, error) {
	if len(args) == 0 {
		return nil, p.errorf(s, "%s takes at least one argument", op)
	}
	fs, err := p.formulas(args)
	if err != nil {
		return nil, err
	}
	acc := fs[0]
	for _, f := range fs[1:] {
		acc = expr.Logic(acc, op, f)
	}
	return acc, nil
}

func foldArith(op expr.NumericOperator, xs []expr.Node) expr.Node {
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = expr.Arith(acc, op, x)
	}
	return acc
}

// foldLiteral divides constant operands exactly. It fails on non-constant
// operands and on a zero divisor, which is left for the solver.
func foldLiteral(xs []expr.Node) (expr.Node, bool) {
	c, ok := xs[0].(*expr.Constant)
	if !ok {
		return nil, false
	}
	q, err := expr.ParseLiteral(c.Value)
	if err != nil {
		return nil, false
	}
	for _, x := range xs[1:] {
		c, ok := x.(*expr.Constant)
		if !ok {
			return nil, false
		}
		d, err := expr.ParseLiteral(c.Value)
		if err != nil || d.Sign() == 0 {
			return nil, false
		}
		q.Quo(q, d)
	}
	return expr.RealConst(q.RatString()), true
}
