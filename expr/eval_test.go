package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"3", "3", true},
		{"-12", "-12", true},
		{" 7 ", "7", true},
		{"0.1", "1/10", true},
		{"-2.5", "-5/2", true},
		{"1/3", "1/3", true},
		{"4/2", "2", true},
		{"1e3", "", false},
		{"2E-1", "", false},
		{"", "", false},
		{"abc", "", false},
		{"1/0", "", false},
		{"010/4", "5/2", true},
		{"007", "7", true},
		{"+1.25", "5/4", true},
		{"1.5/3", "1/2", true},
		{"0x10", "", false},
		{"0b11/1", "", false},
		{"0o7", "", false},
		{"0x1p-2", "", false},
		{"1_000", "", false},
		{".5", "", false},
		{"5.", "", false},
		{"1/-2", "", false},
	}
	for _, tc := range cases {
		r, err := ParseLiteral(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrBadLiteral, "literal %q", tc.in)
			continue
		}
		require.NoError(t, err, "literal %q", tc.in)
		assert.Equal(t, tc.want, r.RatString(), "literal %q", tc.in)
	}
}

func TestEval(t *testing.T) {
	x, y := Var("x", Int), Var("y", Int)
	r := Var("r", Real)

	val := Valuation{}
	require.NoError(t, val.SetString("x", Int, "7"))
	require.NoError(t, val.SetString("y", Int, "-2"))
	require.NoError(t, val.SetString("r", Real, "1/2"))

	cases := []struct {
		node Node
		want string
	}{
		{Arith(x, PLUS, y), "5"},
		{Arith(x, MINUS, y), "9"},
		{Arith(x, MUL, r), "7/2"},
		{Arith(x, DIV, y), "-3"},
		{Arith(Neg(x), DIV, IntConst("2")), "-4"},
		{Arith(Neg(x), REM, IntConst("2")), "1"},
		{Arith(x, REM, y), "1"},
		{Arith(x, DIV, RealConst("2")), "7/2"},
		{Arith(r, PLUS, RealConst("0.1")), "3/5"},
		{Neg(r), "-1/2"},
		{Cmp(x, GT, y), "true"},
		{Cmp(x, NE, IntConst("7")), "false"},
		{Cmp(r, EQ, RealConst("0.5")), "true"},
		{Logic(Cmp(x, GT, y), XOR, Cmp(y, LT, IntConst("0"))), "false"},
		{Logic(Cmp(x, LT, y), IMPLY, Cmp(x, EQ, y)), "true"},
		{Logic(Cmp(x, LT, y), EQUIV, Cmp(x, EQ, y)), "true"},
		{Not(Cmp(x, LE, y)), "true"},
	}
	for _, tc := range cases {
		v, err := Eval(tc.node, val)
		require.NoError(t, err, tc.node.String())
		assert.Equal(t, tc.want, v.String(), tc.node.String())
	}
}

func TestEvalErrors(t *testing.T) {
	x := Var("x", Int)
	val := Valuation{}
	require.NoError(t, val.SetString("x", Int, "1"))

	_, err := Eval(Cmp(Var("z", Int), EQ, x), val)
	assert.ErrorIs(t, err, ErrUnbound)

	_, err = Eval(Cmp(Var("x", Real), EQ, x), val)
	assert.ErrorIs(t, err, ErrUnbound, "x:Real is not x:Int")

	_, err = Eval(Arith(x, DIV, IntConst("0")), val)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Eval(Arith(RealConst("1"), REM, RealConst("2")), val)
	assert.ErrorIs(t, err, ErrNotEvaluable)

	_, err = Eval(Call("f", Int, x), val)
	assert.ErrorIs(t, err, ErrNotEvaluable)

	_, err = Eval(IntConst("1.5"), val)
	assert.ErrorIs(t, err, ErrBadLiteral)

	_, err = Eval(Arith(Cmp(x, EQ, x), PLUS, x), val)
	assert.ErrorIs(t, err, ErrNotEvaluable)
}

func TestValuationKeys(t *testing.T) {
	val := Valuation{}
	require.NoError(t, val.SetString("b", Int, "1"))
	require.NoError(t, val.SetString("a", Real, "2"))
	require.NoError(t, val.SetString("a", Int, "3"))
	assert.Error(t, val.SetString("c", Int, "oops"))

	assert.Equal(t, []VarKey{{"a", Int}, {"a", Real}, {"b", Int}}, val.Keys())
}
