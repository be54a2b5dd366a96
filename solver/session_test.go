//go:build cgo
// +build cgo

package solver

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vhavlena/z3-constraints/expr"
	"github.com/vhavlena/z3-constraints/translate"
	"github.com/vhavlena/z3-constraints/z3"
)

type recorder struct {
	kinds    []string
	rejected []error
	checks   []z3.CheckResult
}

func (r *recorder) Translated(kind string)                    { r.kinds = append(r.kinds, kind) }
func (r *recorder) Rejected(err error)                        { r.rejected = append(r.rejected, err) }
func (r *recorder) Checked(res z3.CheckResult, _ time.Duration) { r.checks = append(r.checks, res) }

func newSession(t *testing.T, cfg Config, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	s := New(cfg, opts...)
	t.Cleanup(s.Close)
	return s
}

func TestSolveSatModel(t *testing.T) {
	s := newSession(t, Config{Timeout: 10 * time.Second})
	x := expr.Var("x", expr.Int)
	y := expr.Var("y", expr.Real)

	// x + 1 >= 3 and x < 4 and y * 4 = 1
	f := expr.And(
		expr.Cmp(expr.Arith(x, expr.PLUS, expr.IntConst("1")), expr.GE, expr.IntConst("3")),
		expr.Cmp(x, expr.LT, expr.IntConst("4")),
		expr.Cmp(expr.Arith(y, expr.MUL, expr.RealConst("4")), expr.EQ, expr.RealConst("1")),
	)
	out, err := s.Solve(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, Sat, out.Result)

	xv := out.Model[x.Key()]
	require.NotNil(t, xv)
	assert.True(t, xv.IsInt())
	assert.Contains(t, []string{"2", "3"}, xv.RatString())
	assert.Equal(t, "1/4", out.Model[y.Key()].RatString())
	assert.NoError(t, Verify(f, out.Model))
}

func TestSolveUnsat(t *testing.T) {
	s := newSession(t, Config{})
	x := expr.Var("x", expr.Int)

	out, err := s.Solve(context.Background(), expr.And(
		expr.Cmp(x, expr.GT, expr.IntConst("2")),
		expr.Cmp(x, expr.LT, expr.IntConst("3")),
	))
	require.NoError(t, err)
	assert.Equal(t, Unsat, out.Result)
	assert.Nil(t, out.Model)

	_, err = s.Model()
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestSolveTranslationError(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, Config{}, WithObserver(rec))
	x := expr.Var("x", expr.Int)

	out, err := s.Solve(context.Background(), expr.Not(expr.Cmp(x, expr.EQ, expr.IntConst("0"))))
	var unsupported *translate.UnsupportedError
	require.True(t, errors.As(err, &unsupported), "got %v", err)
	assert.Equal(t, Unknown, out.Result)
	assert.Equal(t, "unsupported", out.Reason)
	assert.Empty(t, s.Assertions())
	assert.Len(t, rec.rejected, 1)
	assert.Empty(t, rec.checks)
}

func TestAllowNegation(t *testing.T) {
	s := newSession(t, Config{AllowNegation: true})
	x := expr.Var("x", expr.Int)

	out, err := s.Solve(context.Background(), expr.And(
		expr.Not(expr.Cmp(x, expr.GE, expr.IntConst("1"))),
		expr.Cmp(x, expr.GE, expr.IntConst("0")),
	))
	require.NoError(t, err)
	require.Equal(t, Sat, out.Result)
	assert.Equal(t, "0", out.Model[x.Key()].RatString())
}

func TestPushPop(t *testing.T) {
	s := newSession(t, Config{})
	x := expr.Var("x", expr.Int)
	ctx := context.Background()

	require.NoError(t, s.Add(expr.Cmp(x, expr.GT, expr.IntConst("0"))))
	s.Push()
	require.NoError(t, s.Add(expr.Cmp(x, expr.LT, expr.IntConst("0"))))
	assert.Len(t, s.Assertions(), 2)

	res, err := s.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, Unsat, res)

	require.NoError(t, s.Pop())
	assert.Len(t, s.Assertions(), 1)
	res, err = s.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, Sat, res)

	assert.ErrorIs(t, s.Pop(), ErrNoScope)
}

func TestModelAfterAddIsStale(t *testing.T) {
	s := newSession(t, Config{})
	x := expr.Var("x", expr.Int)

	require.NoError(t, s.Add(expr.Cmp(x, expr.GT, expr.IntConst("0"))))
	res, err := s.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, Sat, res)
	_, err = s.Model()
	require.NoError(t, err)

	require.NoError(t, s.Add(expr.Cmp(x, expr.GT, expr.IntConst("5"))))
	_, err = s.Model()
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestCheckCancelled(t *testing.T) {
	s := newSession(t, Config{})
	require.NoError(t, s.Add(expr.Cmp(expr.Var("x", expr.Int), expr.GT, expr.IntConst("0"))))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Check(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Unknown, res)
}

func TestObserverSeesChecks(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, Config{Params: map[string]string{"smt.random_seed": "3"}}, WithObserver(rec))
	x := expr.Var("x", expr.Real)

	_, err := s.Solve(context.Background(), expr.Cmp(x, expr.NE, expr.RealConst("0.5")))
	require.NoError(t, err)
	assert.Equal(t, []z3.CheckResult{Sat}, rec.checks)
	assert.Contains(t, rec.kinds, "variable")
	assert.Contains(t, rec.kinds, "constant")
	assert.NotEqual(t, s.ID.String(), "")
}

// pigeonhole places n pigeons into n-1 holes with no two sharing a hole.
// It is unsat and takes Z3 seconds to refute for n = 8.
func pigeonhole(n int) expr.Node {
	var parts []expr.Node
	ps := make([]*expr.Variable, n)
	for i := range ps {
		ps[i] = expr.Var(fmt.Sprintf("p%d", i), expr.Int)
		parts = append(parts,
			expr.Cmp(ps[i], expr.GE, expr.IntConst("0")),
			expr.Cmp(ps[i], expr.LT, expr.IntConst(fmt.Sprint(n-1))),
		)
	}
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			parts = append(parts, expr.Cmp(ps[i], expr.NE, ps[j]))
		}
	}
	return expr.And(parts...)
}

func TestDeadlineDoesNotOutliveCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("slow refutation")
	}
	s := newSession(t, Config{})
	require.NoError(t, s.Add(pigeonhole(8)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Millisecond)
	defer cancel()
	res, _ := s.Check(ctx)
	require.Equal(t, Unknown, res)

	res, err := s.Check(context.Background())
	require.NoError(t, err, "reason: %s", s.ReasonUnknown())
	assert.Equal(t, Unsat, res)
}
