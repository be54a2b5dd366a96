package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	x, y := Var("x", Int), Var("y", Int)
	r := Var("r", Real)
	p := Cmp(x, GT, y)

	cases := []struct {
		node Node
		want string
	}{
		{Cmp(Arith(x, PLUS, IntConst("1")), GE, IntConst("3")), "(>= (+ x 1) 3)"},
		{Cmp(x, NE, y), "(distinct x y)"},
		{Arith(x, DIV, IntConst("2")), "(div x 2)"},
		{Arith(r, DIV, RealConst("2.0")), "(/ r 2.0)"},
		{Arith(x, REM, IntConst("2")), "(mod x 2)"},
		{RealConst("-2.5"), "(- 2.5)"},
		{RealConst("1/3"), "(/ 1 3)"},
		{RealConst("2"), "2.0"},
		{RealConst("-3"), "(- 3.0)"},
		{IntConst("2"), "2"},
		{RealConst("-1/3"), "(- (/ 1 3))"},
		{Neg(x), "(- x)"},
		{Not(p), "(not (> x y))"},
		{Logic(p, EQUIV, p), "(= (> x y) (> x y))"},
		{Logic(p, IMPLY, p), "(=> (> x y) (> x y))"},
		{Logic(p, XOR, p), "(xor (> x y) (> x y))"},
		{Call("f", Int, x, y), "(f x y)"},
		{Call("c", Int), "c"},
		{Var("x y", Int), "|x y|"},
		{Var("1x", Int), "|1x|"},
		{Var("", Int), "||"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.node.String())
	}
}

func TestType(t *testing.T) {
	x, r := Var("x", Int), Var("r", Real)

	assert.Equal(t, Int, Arith(x, PLUS, x).Type())
	assert.Equal(t, Real, Arith(x, MUL, r).Type())
	assert.Equal(t, Real, Neg(r).Type())
	assert.Equal(t, Bool, Cmp(x, LT, r).Type())
	assert.Equal(t, Bool, Not(Cmp(x, LT, r)).Type())
	assert.Equal(t, SortInvalid, Arith(Cmp(x, LT, r), PLUS, x).Type())
	assert.Equal(t, String, Call("s", String).Type())
}

func TestOperatorText(t *testing.T) {
	assert.Equal(t, ">=", GE.String())
	assert.Equal(t, "Comparator(7)", Comparator(7).String())
	assert.False(t, Comparator(7).Valid())
	assert.True(t, LT.Valid())

	assert.Equal(t, "mod", REM.String())
	assert.Equal(t, "NumericOperator(-1)", NumericOperator(-1).String())
	assert.False(t, NumericOperator(5).Valid())

	assert.Equal(t, "=>", IMPLY.String())
	assert.False(t, LogicalOperator(5).Valid())
}

func TestParseSort(t *testing.T) {
	for _, name := range []string{"Bool", "Int", "Real", "String"} {
		s, ok := ParseSort(name)
		require.True(t, ok, name)
		assert.Equal(t, name, s.String())
	}
	_, ok := ParseSort("Invalid")
	assert.False(t, ok)
	_, ok = ParseSort("BitVec")
	assert.False(t, ok)
}

func TestBuildFolds(t *testing.T) {
	p := Cmp(Var("x", Int), GT, IntConst("0"))
	q := Cmp(Var("y", Int), GT, IntConst("0"))

	assert.Nil(t, And())
	assert.Same(t, p, And(p))
	assert.Equal(t, "(and (and (> x 0) (> y 0)) (> x 0))", And(p, q, p).String())
	assert.Equal(t, "(or (> x 0) (> y 0))", Or(p, q).String())
}

func TestWalkVarsSize(t *testing.T) {
	x := Var("x", Int)
	sum := Arith(x, PLUS, Var("x", Real))
	f := Logic(Cmp(sum, GE, IntConst("0")), AND, Cmp(sum, LE, Var("y", Int)))

	// The shared sum and its operands count once.
	assert.Equal(t, 8, Size(f))
	assert.Equal(t, []VarKey{{"x", Int}, {"x", Real}, {"y", Int}}, Vars(f))

	var kinds []string
	Walk(f, func(n Node) bool {
		kinds = append(kinds, Kind(n))
		return Kind(n) != "comparison"
	})
	assert.Equal(t, []string{"propositional", "comparison", "comparison"}, kinds)
	assert.Len(t, Children(f), 2)
	assert.Empty(t, Children(x))
}

func TestWalkOnceSharedDAG(t *testing.T) {
	// 64 levels of (+ n n): 2^64 references, 65 distinct nodes.
	x := Var("x", Real)
	var n Node = x
	for i := 0; i < 64; i++ {
		n = Arith(n, PLUS, n)
	}
	assert.Equal(t, 65, Size(n))
	assert.Equal(t, []VarKey{{"x", Real}}, Vars(n))

	visits := 0
	WalkOnce(n, func(Node) bool {
		visits++
		return visits < 10
	})
	assert.Equal(t, 10, visits)
}

func TestSortKeys(t *testing.T) {
	keys := []VarKey{{"y", Int}, {"x", Real}, {"x", Int}, {"a", Bool}}
	SortKeys(keys)
	assert.Equal(t, []VarKey{{"a", Bool}, {"x", Int}, {"x", Real}, {"y", Int}}, keys)
	assert.Equal(t, "x:Real", keys[2].String())
}
