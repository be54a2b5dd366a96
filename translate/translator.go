// Package translate turns expr formulas into expressions of an SMT engine.
//
// A Translator is bound to one engine Manager (in practice a *z3.Context)
// and owns the symbol table mapping each (name, sort) variable to the
// engine handle built for it. Repeated references to a variable, within one
// formula or across several Translate calls, yield the identical handle, so
// models read back through the table line up with the source variables.
//
// Only Int and Real variables are supported. Constructs without a mapping
// (remainder, equivalence, implication, function calls, and logical
// negation unless enabled with WithNegation) fail with an error wrapping
// ErrUnsupported; the translator never substitutes a placeholder term.
//
// A Translator is not safe for concurrent use.
package translate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vhavlena/z3-constraints/expr"
	"github.com/vhavlena/z3-constraints/z3"
)

// Manager is the expression factory of the engine. H is the engine's
// expression handle and S its sort token.
type Manager[H, S any] interface {
	IntSort() S
	RealSort() S
	// Const returns the symbol name of sort s.
	Const(name string, s S) H
	// Numeral returns the constant of sort s denoted by lit, an exact
	// integer or fraction such as "-7" or "1/10".
	Numeral(lit string, s S) (H, error)
	// Apply builds the application of operator op to args.
	Apply(op z3.DeclKind, args ...H) (H, error)
}

var (
	comparisons = map[expr.Comparator]z3.DeclKind{
		expr.EQ: z3.DeclOpEq,
		expr.GE: z3.DeclOpGE,
		expr.GT: z3.DeclOpGT,
		expr.LE: z3.DeclOpLE,
		expr.LT: z3.DeclOpLT,
	}
	arithmetic = map[expr.NumericOperator]z3.DeclKind{
		expr.PLUS:  z3.DeclOpAdd,
		expr.MINUS: z3.DeclOpSub,
		expr.MUL:   z3.DeclOpMul,
		expr.DIV:   z3.DeclOpDiv,
	}
	connectives = map[expr.LogicalOperator]z3.DeclKind{
		expr.AND: z3.DeclOpAnd,
		expr.OR:  z3.DeclOpOr,
		expr.XOR: z3.DeclOpXor,
	}
)

// Translator converts formulas into engine expressions.
type Translator[H, S any] struct {
	m       Manager[H, S]
	symbols *symbolTable[H]
	opts    options

	// memo caches translated sub-terms of the formula being translated,
	// keyed by node identity.
	memo map[expr.Node]term[H]
}

type term[H any] struct {
	h    H
	sort expr.Sort
}

// New returns a Translator building expressions with m.
func New[H, S any](m Manager[H, S], opts ...Option) *Translator[H, S] {
	o := options{log: zap.NewNop(), observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Translator[H, S]{m: m, symbols: newSymbolTable[H](), opts: o}
}

// NewZ3 returns a Translator targeting the Z3 context ctx.
func NewZ3(ctx *z3.Context, opts ...Option) *Translator[z3.AST, z3.Sort] {
	return New[z3.AST, z3.Sort](ctx, opts...)
}

// Translate converts n and returns the engine handle of its root. On error
// no handle is returned; variables met before the failure stay in the
// symbol table.
func (t *Translator[H, S]) Translate(n expr.Node) (H, error) {
	t.memo = make(map[expr.Node]term[H])
	defer func() { t.memo = nil }()
	res, err := t.visit(n)
	if err != nil {
		t.opts.log.Debug("translation rejected", zap.Error(err), zap.String("class", Class(err)))
		t.opts.observer.Rejected(err)
		var zero H
		return zero, err
	}
	return res.h, nil
}

// Lookup returns the handle of the variable name of sort s, if it was
// translated.
func (t *Translator[H, S]) Lookup(name string, s expr.Sort) (H, bool) {
	return t.symbols.lookup(expr.VarKey{Name: name, Sort: s})
}

// Symbols returns the symbol table ordered by name, then sort.
func (t *Translator[H, S]) Symbols() []Symbol[H] { return t.symbols.snapshot() }

// NumSymbols returns the number of entries in the symbol table.
func (t *Translator[H, S]) NumSymbols() int { return t.symbols.n }

func (t *Translator[H, S]) visit(n expr.Node) (term[H], error) {
	if n == nil {
		return term[H]{}, internal(nil, "nil node")
	}
	if res, ok := t.memo[n]; ok {
		return res, nil
	}
	res, err := t.dispatch(n)
	if err != nil {
		return term[H]{}, err
	}
	t.memo[n] = res
	t.opts.observer.Translated(expr.Kind(n))
	return res, nil
}

func (t *Translator[H, S]) dispatch(n expr.Node) (term[H], error) {
	switch n := n.(type) {
	case *expr.Variable:
		return t.variable(n)
	case *expr.Constant:
		return t.constant(n)
	case *expr.Negation:
		if !t.opts.negation {
			return term[H]{}, unsupported(n, "logical negation")
		}
		x, err := t.formula(n, n.Negated)
		if err != nil {
			return term[H]{}, err
		}
		return t.apply(n, expr.Bool, z3.DeclOpNot, x)
	case *expr.NumericComparison:
		return t.comparison(n)
	case *expr.NumericCompound:
		return t.arithmetic(n)
	case *expr.PropositionalCompound:
		return t.connective(n)
	case *expr.UnaryMinus:
		x, err := t.numeric(n, n.Negated)
		if err != nil {
			return term[H]{}, err
		}
		return t.apply(n, x.sort, z3.DeclOpUMinus, x.h)
	case *expr.FunctionCall:
		return term[H]{}, unsupported(n, "function call %s", n.Name)
	default:
		return term[H]{}, internal(n, "unknown node type %T", n)
	}
}

func (t *Translator[H, S]) variable(v *expr.Variable) (term[H], error) {
	key := v.Key()
	if h, ok := t.symbols.lookup(key); ok {
		return term[H]{h, v.Sort}, nil
	}
	var s S
	switch v.Sort {
	case expr.Int:
		s = t.m.IntSort()
	case expr.Real:
		s = t.m.RealSort()
	default:
		return term[H]{}, unsupported(v, "type: %s", v.Sort)
	}
	h := t.m.Const(v.Name, s)
	t.symbols.insert(key, h)
	t.opts.log.Debug("declared symbol", zap.String("name", v.Name), zap.Stringer("sort", v.Sort))
	return term[H]{h, v.Sort}, nil
}

func (t *Translator[H, S]) constant(c *expr.Constant) (term[H], error) {
	var s S
	switch c.Sort {
	case expr.Int:
		s = t.m.IntSort()
	case expr.Real:
		s = t.m.RealSort()
	default:
		return term[H]{}, unsupported(c, "type: %s", c.Sort)
	}
	r, err := expr.ParseLiteral(c.Value)
	if err != nil {
		return term[H]{}, fmt.Errorf("translate: %w: %q", ErrInvalidLiteral, c.Value)
	}
	if c.Sort == expr.Int && !r.IsInt() {
		return term[H]{}, fmt.Errorf("translate: %w: %q is not an integer", ErrInvalidLiteral, c.Value)
	}
	h, err := t.m.Numeral(r.RatString(), s)
	if err != nil {
		return term[H]{}, fmt.Errorf("translate: constant %s: %w", c.Value, err)
	}
	return term[H]{h, c.Sort}, nil
}

func (t *Translator[H, S]) comparison(n *expr.NumericComparison) (term[H], error) {
	if !n.Cmp.Valid() {
		return term[H]{}, internal(n, "comparator %s", n.Cmp)
	}
	l, r, _, err := t.numericPair(n, n.Left, n.Right)
	if err != nil {
		return term[H]{}, err
	}
	if n.Cmp == expr.NE {
		eq, err := t.apply(n, expr.Bool, z3.DeclOpEq, l, r)
		if err != nil {
			return term[H]{}, err
		}
		return t.apply(n, expr.Bool, z3.DeclOpNot, eq.h)
	}
	op, ok := comparisons[n.Cmp]
	if !ok {
		return term[H]{}, internal(n, "no mapping for comparator %s", n.Cmp)
	}
	return t.apply(n, expr.Bool, op, l, r)
}

func (t *Translator[H, S]) arithmetic(n *expr.NumericCompound) (term[H], error) {
	if !n.Op.Valid() {
		return term[H]{}, internal(n, "numeric operator %s", n.Op)
	}
	op, ok := arithmetic[n.Op]
	if !ok {
		return term[H]{}, unsupported(n, "numeric operator %s", n.Op)
	}
	l, r, s, err := t.numericPair(n, n.Left, n.Right)
	if err != nil {
		return term[H]{}, err
	}
	return t.apply(n, s, op, l, r)
}

func (t *Translator[H, S]) connective(n *expr.PropositionalCompound) (term[H], error) {
	if !n.Op.Valid() {
		return term[H]{}, internal(n, "logical operator %s", n.Op)
	}
	op, ok := connectives[n.Op]
	if !ok {
		return term[H]{}, unsupported(n, "logical operator %s", n.Op)
	}
	l, err := t.formula(n, n.Left)
	if err != nil {
		return term[H]{}, err
	}
	r, err := t.formula(n, n.Right)
	if err != nil {
		return term[H]{}, err
	}
	return t.apply(n, expr.Bool, op, l, r)
}

// formula translates operand of parent and requires a boolean result.
func (t *Translator[H, S]) formula(parent, operand expr.Node) (H, error) {
	x, err := t.visit(operand)
	if err != nil {
		var zero H
		return zero, err
	}
	if x.sort != expr.Bool {
		var zero H
		return zero, unsupported(parent, "sort mismatch: %s operand of %s, want Bool", x.sort, expr.Kind(parent))
	}
	return x.h, nil
}

// numeric translates operand of parent and requires an Int or Real result.
func (t *Translator[H, S]) numeric(parent, operand expr.Node) (term[H], error) {
	x, err := t.visit(operand)
	if err != nil {
		return term[H]{}, err
	}
	if !x.sort.Numeric() {
		return term[H]{}, unsupported(parent, "sort mismatch: %s operand of %s, want Int or Real", x.sort, expr.Kind(parent))
	}
	return x, nil
}

// numericPair translates both operands and lifts an Int side to Real when
// the other side is Real. It returns the common sort.
func (t *Translator[H, S]) numericPair(parent, left, right expr.Node) (H, H, expr.Sort, error) {
	var zero H
	l, err := t.numeric(parent, left)
	if err != nil {
		return zero, zero, expr.SortInvalid, err
	}
	r, err := t.numeric(parent, right)
	if err != nil {
		return zero, zero, expr.SortInvalid, err
	}
	if l.sort == r.sort {
		return l.h, r.h, l.sort, nil
	}
	if l, err = t.toReal(parent, l); err != nil {
		return zero, zero, expr.SortInvalid, err
	}
	if r, err = t.toReal(parent, r); err != nil {
		return zero, zero, expr.SortInvalid, err
	}
	return l.h, r.h, expr.Real, nil
}

func (t *Translator[H, S]) toReal(parent expr.Node, x term[H]) (term[H], error) {
	if x.sort == expr.Real {
		return x, nil
	}
	t.opts.log.Debug("coercing Int operand to Real", zap.String("node", expr.Kind(parent)))
	return t.apply(parent, expr.Real, z3.DeclOpToReal, x.h)
}

func (t *Translator[H, S]) apply(n expr.Node, s expr.Sort, op z3.DeclKind, args ...H) (term[H], error) {
	h, err := t.m.Apply(op, args...)
	if err != nil {
		return term[H]{}, fmt.Errorf("translate: %s: %w", expr.Kind(n), err)
	}
	return term[H]{h, s}, nil
}
