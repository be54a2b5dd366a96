package expr

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var (
	// ErrUnbound is returned when a variable has no value in the valuation.
	ErrUnbound = errors.New("unbound variable")
	// ErrDivisionByZero is returned for a division or remainder by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNotEvaluable is returned for terms without a fixed interpretation.
	ErrNotEvaluable = errors.New("term cannot be evaluated")
	// ErrBadLiteral is returned for constant text that is not an exact number
	// of the constant's sort.
	ErrBadLiteral = errors.New("malformed literal")
)

// literal is the accepted numeral syntax: sign, integer digits, optional
// decimal fraction and optional integer denominator. All digits are base 10.
var literal = regexp.MustCompile(`^([+-]?)([0-9]+)(?:\.([0-9]+))?(?:/([0-9]+))?$`)

// ParseLiteral reads the exact value of a numeric literal: an integer, a
// decimal or a fraction, optionally signed. No floating point is involved,
// so "0.1" is exactly one tenth. Digits are always decimal: "010/4" is 5/2,
// and base prefixes or exponents are rejected.
func ParseLiteral(text string) (*big.Rat, error) {
	m := literal.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrBadLiteral, text)
	}
	num, _ := new(big.Int).SetString(m[2]+m[3], 10)
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(m[3]))), nil)
	if m[4] != "" {
		d, _ := new(big.Int).SetString(m[4], 10)
		if d.Sign() == 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadLiteral, text)
		}
		den.Mul(den, d)
	}
	if m[1] == "-" {
		num.Neg(num)
	}
	return new(big.Rat).SetFrac(num, den), nil
}

// Value is the result of evaluating a node.
type Value struct {
	Sort Sort
	b    bool
	r    *big.Rat
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Sort: Bool, b: b} }

// NumValue wraps a number of sort s. The rational is not copied.
func NumValue(s Sort, r *big.Rat) Value { return Value{Sort: s, r: r} }

// Bool returns the boolean held by v; it is false for numeric values.
func (v Value) Bool() bool { return v.b }

// Rat returns the number held by v, or nil for booleans.
func (v Value) Rat() *big.Rat { return v.r }

func (v Value) String() string {
	if v.Sort == Bool {
		return fmt.Sprint(v.b)
	}
	if v.r == nil {
		return "<nil>"
	}
	return v.r.RatString()
}

// Valuation assigns exact numbers to variables.
type Valuation map[VarKey]*big.Rat

// Set binds the variable name of sort s to r.
func (val Valuation) Set(name string, s Sort, r *big.Rat) {
	val[VarKey{Name: name, Sort: s}] = r
}

// SetString binds the variable name of sort s to the literal text.
func (val Valuation) SetString(name string, s Sort, text string) error {
	r, err := ParseLiteral(text)
	if err != nil {
		return err
	}
	val.Set(name, s, r)
	return nil
}

// Keys returns the bound variables sorted by name, then sort.
func (val Valuation) Keys() []VarKey {
	keys := make([]VarKey, 0, len(val))
	for k := range val {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Eval computes the value of n under val using exact rational arithmetic.
// Integer division and remainder follow SMT-LIB div and mod: the remainder
// is never negative.
func Eval(n Node, val Valuation) (Value, error) {
	switch n := n.(type) {
	case *Variable:
		r, ok := val[n.Key()]
		if !ok {
			return Value{}, fmt.Errorf("%w: %s", ErrUnbound, n.Key())
		}
		return NumValue(n.Sort, r), nil
	case *Constant:
		r, err := ParseLiteral(n.Value)
		if err != nil {
			return Value{}, err
		}
		if n.Sort == Int && !r.IsInt() {
			return Value{}, fmt.Errorf("%w: %q is not an integer", ErrBadLiteral, n.Value)
		}
		return NumValue(n.Sort, r), nil
	case *Negation:
		v, err := Eval(n.Negated, val)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(!v.b), nil
	case *UnaryMinus:
		v, err := Eval(n.Negated, val)
		if err != nil {
			return Value{}, err
		}
		if v.r == nil {
			return Value{}, fmt.Errorf("%w: negated %s operand", ErrNotEvaluable, v.Sort)
		}
		return NumValue(v.Sort, new(big.Rat).Neg(v.r)), nil
	case *NumericComparison:
		l, r, err := evalNumPair(n.Left, n.Right, val)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(compare(n.Cmp, l.r.Cmp(r.r))), nil
	case *NumericCompound:
		l, r, err := evalNumPair(n.Left, n.Right, val)
		if err != nil {
			return Value{}, err
		}
		res, err := arith(n.Op, n.Type(), l.r, r.r)
		if err != nil {
			return Value{}, err
		}
		return NumValue(n.Type(), res), nil
	case *PropositionalCompound:
		l, r, err := evalPair(n.Left, n.Right, val)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(connect(n.Op, l.b, r.b)), nil
	case *FunctionCall:
		return Value{}, fmt.Errorf("%w: function %s", ErrNotEvaluable, n.Name)
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrNotEvaluable, n)
	}
}

func evalPair(a, b Node, val Valuation) (Value, Value, error) {
	l, err := Eval(a, val)
	if err != nil {
		return Value{}, Value{}, err
	}
	r, err := Eval(b, val)
	if err != nil {
		return Value{}, Value{}, err
	}
	return l, r, nil
}

func evalNumPair(a, b Node, val Valuation) (Value, Value, error) {
	l, r, err := evalPair(a, b, val)
	if err != nil {
		return Value{}, Value{}, err
	}
	if l.r == nil || r.r == nil {
		return Value{}, Value{}, fmt.Errorf("%w: %s and %s operands", ErrNotEvaluable, l.Sort, r.Sort)
	}
	return l, r, nil
}

func compare(c Comparator, sign int) bool {
	switch c {
	case EQ:
		return sign == 0
	case NE:
		return sign != 0
	case GE:
		return sign >= 0
	case GT:
		return sign > 0
	case LE:
		return sign <= 0
	case LT:
		return sign < 0
	}
	return false
}

func connect(op LogicalOperator, l, r bool) bool {
	switch op {
	case AND:
		return l && r
	case OR:
		return l || r
	case XOR:
		return l != r
	case EQUIV:
		return l == r
	case IMPLY:
		return !l || r
	}
	return false
}

func arith(op NumericOperator, s Sort, l, r *big.Rat) (*big.Rat, error) {
	switch op {
	case PLUS:
		return new(big.Rat).Add(l, r), nil
	case MINUS:
		return new(big.Rat).Sub(l, r), nil
	case MUL:
		return new(big.Rat).Mul(l, r), nil
	case DIV, REM:
		if r.Sign() == 0 {
			return nil, ErrDivisionByZero
		}
		if s != Int {
			if op == REM {
				return nil, fmt.Errorf("%w: remainder over %s", ErrNotEvaluable, s)
			}
			return new(big.Rat).Quo(l, r), nil
		}
		// big.Int Div and Mod are Euclidean, matching SMT-LIB div and mod.
		if op == DIV {
			return new(big.Rat).SetInt(new(big.Int).Div(l.Num(), r.Num())), nil
		}
		return new(big.Rat).SetInt(new(big.Int).Mod(l.Num(), r.Num())), nil
	}
	return nil, fmt.Errorf("%w: operator %s", ErrNotEvaluable, op)
}
