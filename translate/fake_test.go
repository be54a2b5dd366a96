package translate

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/vhavlena/z3-constraints/z3"
)

// fakeTerm is the handle type of fakeManager: a plain expression tree that
// tests can inspect and evaluate.
type fakeTerm struct {
	op   z3.DeclKind
	name string
	sort string
	lit  string
	args []*fakeTerm
}

func (f *fakeTerm) leaf() bool { return f.name != "" || f.lit != "" }

func (f *fakeTerm) String() string {
	switch {
	case f.name != "":
		return f.name
	case f.lit != "":
		return f.lit
	}
	parts := []string{f.op.String()}
	for _, a := range f.args {
		parts = append(parts, a.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// eval computes f under env, where every symbol is looked up by name. It
// returns either a number or a boolean.
func (f *fakeTerm) eval(env map[string]*big.Rat) (*big.Rat, bool, error) {
	if f.name != "" {
		r, ok := env[f.name]
		if !ok {
			return nil, false, fmt.Errorf("unbound %s", f.name)
		}
		return r, false, nil
	}
	if f.lit != "" {
		r, ok := new(big.Rat).SetString(f.lit)
		if !ok {
			return nil, false, fmt.Errorf("bad literal %s", f.lit)
		}
		return r, false, nil
	}
	nums := make([]*big.Rat, len(f.args))
	bools := make([]bool, len(f.args))
	for i, a := range f.args {
		r, b, err := a.eval(env)
		if err != nil {
			return nil, false, err
		}
		nums[i], bools[i] = r, b
	}
	switch f.op {
	case z3.DeclOpNot:
		return nil, !bools[0], nil
	case z3.DeclOpAnd:
		return nil, bools[0] && bools[1], nil
	case z3.DeclOpOr:
		return nil, bools[0] || bools[1], nil
	case z3.DeclOpXor:
		return nil, bools[0] != bools[1], nil
	case z3.DeclOpEq:
		return nil, nums[0].Cmp(nums[1]) == 0, nil
	case z3.DeclOpGE:
		return nil, nums[0].Cmp(nums[1]) >= 0, nil
	case z3.DeclOpGT:
		return nil, nums[0].Cmp(nums[1]) > 0, nil
	case z3.DeclOpLE:
		return nil, nums[0].Cmp(nums[1]) <= 0, nil
	case z3.DeclOpLT:
		return nil, nums[0].Cmp(nums[1]) < 0, nil
	case z3.DeclOpAdd:
		return new(big.Rat).Add(nums[0], nums[1]), false, nil
	case z3.DeclOpSub:
		return new(big.Rat).Sub(nums[0], nums[1]), false, nil
	case z3.DeclOpMul:
		return new(big.Rat).Mul(nums[0], nums[1]), false, nil
	case z3.DeclOpDiv:
		return new(big.Rat).Quo(nums[0], nums[1]), false, nil
	case z3.DeclOpUMinus:
		return new(big.Rat).Neg(nums[0]), false, nil
	case z3.DeclOpToReal:
		return nums[0], false, nil
	}
	return nil, false, fmt.Errorf("cannot evaluate %s", f.op)
}

// fakeManager builds fakeTerms and counts the requests it served.
type fakeManager struct {
	consts   map[string]int
	numerals int
	applied  []z3.DeclKind
	failOn   z3.DeclKind
}

func newFakeManager() *fakeManager {
	return &fakeManager{consts: make(map[string]int)}
}

func (m *fakeManager) IntSort() string  { return "Int" }
func (m *fakeManager) RealSort() string { return "Real" }

func (m *fakeManager) Const(name string, s string) *fakeTerm {
	m.consts[name+":"+s]++
	return &fakeTerm{name: name, sort: s}
}

func (m *fakeManager) Numeral(lit string, s string) (*fakeTerm, error) {
	m.numerals++
	return &fakeTerm{lit: lit, sort: s}, nil
}

func (m *fakeManager) Apply(op z3.DeclKind, args ...*fakeTerm) (*fakeTerm, error) {
	if m.failOn != 0 && op == m.failOn {
		return nil, &z3.Error{Code: z3.ErrorCodeSortError, Op: op.String(), Message: "injected"}
	}
	m.applied = append(m.applied, op)
	return &fakeTerm{op: op, args: args}, nil
}

// mockManager records calls with testify's mock package.
type mockManager struct {
	mock.Mock
}

func (m *mockManager) IntSort() string  { return "Int" }
func (m *mockManager) RealSort() string { return "Real" }

func (m *mockManager) Const(name string, s string) *fakeTerm {
	args := m.Called(name, s)
	return args.Get(0).(*fakeTerm)
}

func (m *mockManager) Numeral(lit string, s string) (*fakeTerm, error) {
	args := m.Called(lit, s)
	return args.Get(0).(*fakeTerm), args.Error(1)
}

func (m *mockManager) Apply(op z3.DeclKind, operands ...*fakeTerm) (*fakeTerm, error) {
	args := m.Called(op, operands)
	return args.Get(0).(*fakeTerm), args.Error(1)
}
