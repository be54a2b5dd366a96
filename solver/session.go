// Package solver runs expr formulas through Z3: it translates and asserts
// them, checks satisfiability under a deadline and reads models back as
// exact valuations of the source variables.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vhavlena/z3-constraints/expr"
	"github.com/vhavlena/z3-constraints/translate"
	"github.com/vhavlena/z3-constraints/z3"
)

// Check results.
const (
	Unknown = z3.Unknown
	Sat     = z3.Sat
	Unsat   = z3.Unsat
)

var (
	// ErrNoScope is returned by Pop without a matching Push.
	ErrNoScope = errors.New("solver: no scope to pop")
	// ErrNoModel is returned by Model unless the last check was sat.
	ErrNoModel = errors.New("solver: no model available")
	// ErrModelRejected is returned by Verify when the valuation falsifies
	// the formula.
	ErrModelRejected = errors.New("solver: model does not satisfy the formula")
)

// Config configures a Session.
type Config struct {
	// Timeout bounds each Check. Zero means no limit besides the context.
	Timeout time.Duration
	// AllowNegation enables translation of logical negation.
	AllowNegation bool
	// Params are Z3 global parameters, set before the context is created.
	Params map[string]string
}

// Observer receives session events. Translation events are forwarded to the
// session's translator.
type Observer interface {
	translate.Observer
	Checked(res z3.CheckResult, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) Translated(string)                      {}
func (nopObserver) Rejected(error)                         {}
func (nopObserver) Checked(z3.CheckResult, time.Duration) {}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithObserver registers obs for translation and check events.
func WithObserver(obs Observer) Option {
	return func(s *Session) {
		if obs != nil {
			s.obs = obs
		}
	}
}

// Session owns one Z3 context, its translator and one solver. A Session is
// not safe for concurrent use, except that the context passed to Check may
// be cancelled from any goroutine.
type Session struct {
	ID uuid.UUID

	cfg Config
	log *zap.Logger
	obs Observer

	ctx *z3.Context
	tr  *translate.Translator[z3.AST, z3.Sort]
	s   *z3.Solver

	// assertions holds the formulas asserted so far; scopes marks its
	// length at each Push.
	assertions []expr.Node
	scopes     []int
	last       z3.CheckResult
}

// New creates a session.
func New(cfg Config, opts ...Option) *Session {
	sess := &Session{
		ID:   uuid.New(),
		cfg:  cfg,
		log:  zap.NewNop(),
		obs:  nopObserver{},
		last: Unknown,
	}
	for _, opt := range opts {
		opt(sess)
	}
	sess.log = sess.log.With(zap.String("session", sess.ID.String()))

	keys := make([]string, 0, len(cfg.Params))
	for k := range cfg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		z3.SetGlobalParam(k, cfg.Params[k])
	}

	zc := z3.NewConfig()
	if cfg.Timeout > 0 {
		zc.SetParam("timeout", strconv.FormatInt(cfg.Timeout.Milliseconds(), 10))
	}
	sess.ctx = z3.NewContext(zc)
	zc.Close()

	topts := []translate.Option{translate.WithLogger(sess.log), translate.WithObserver(sess.obs)}
	if cfg.AllowNegation {
		topts = append(topts, translate.WithNegation())
	}
	sess.tr = translate.NewZ3(sess.ctx, topts...)
	sess.s = sess.ctx.NewSolver()
	sess.log.Debug("session created", zap.Duration("timeout", cfg.Timeout), zap.Bool("negation", cfg.AllowNegation))
	return sess
}

// Translator returns the session's translator.
func (s *Session) Translator() *translate.Translator[z3.AST, z3.Sort] { return s.tr }

// Assertions returns the formulas asserted in the open scopes.
func (s *Session) Assertions() []expr.Node { return s.assertions }

// Add translates n and asserts it. On a translation error nothing is
// asserted.
func (s *Session) Add(n expr.Node) error {
	h, err := s.tr.Translate(n)
	if err != nil {
		s.log.Warn("formula rejected", zap.Error(err), zap.String("class", translate.Class(err)))
		return err
	}
	if err := s.s.Assert(h); err != nil {
		return fmt.Errorf("solver: assert: %w", err)
	}
	s.assertions = append(s.assertions, n)
	s.last = Unknown
	return nil
}

// Check decides the conjunction of the asserted formulas. The check stops
// with Unknown when ctx is done or the timeout elapses; in the first case
// ctx.Err() is returned.
func (s *Session) Check(ctx context.Context) (z3.CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}
	timeout := s.cfg.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if remaining := time.Until(dl); timeout == 0 || remaining < timeout {
			timeout = remaining
		}
	}
	// Always set; zero clears a bound left by an earlier deadline.
	var ms int64
	if timeout > 0 {
		if ms = timeout.Milliseconds(); ms < 1 {
			ms = 1
		}
	}
	if err := s.s.SetTimeout(uint(ms)); err != nil {
		return Unknown, fmt.Errorf("solver: set timeout: %w", err)
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.ctx.Interrupt()
		case <-done:
		}
	}()
	start := time.Now()
	res, err := s.s.Check()
	close(done)
	<-stopped
	d := time.Since(start)

	s.obs.Checked(res, d)
	s.last = res
	if err != nil {
		s.log.Error("check failed", zap.Error(err))
		return Unknown, fmt.Errorf("solver: check: %w", err)
	}
	if res == Unknown {
		reason := s.s.ReasonUnknown()
		s.log.Info("check inconclusive", zap.String("reason", reason), zap.Duration("elapsed", d))
		if err := ctx.Err(); err != nil {
			return Unknown, err
		}
		return Unknown, nil
	}
	s.log.Info("check finished", zap.Stringer("result", res), zap.Duration("elapsed", d), zap.Int("assertions", len(s.assertions)))
	return res, nil
}

// ReasonUnknown explains the last Unknown result.
func (s *Session) ReasonUnknown() string { return s.s.ReasonUnknown() }

// Model reads the value of every translated variable from the model of the
// last sat check. Values are exact.
func (s *Session) Model() (expr.Valuation, error) {
	if s.last != Sat {
		return nil, ErrNoModel
	}
	m, err := s.s.Model()
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	defer m.Close()

	val := make(expr.Valuation, s.tr.NumSymbols())
	for _, sym := range s.tr.Symbols() {
		v, err := m.Eval(sym.Handle, true)
		if err != nil {
			return nil, fmt.Errorf("solver: eval %s: %w", sym.Key, err)
		}
		r, ok := v.AsRat()
		if !ok {
			return nil, fmt.Errorf("solver: value of %s is not a rational numeral: %s", sym.Key, v)
		}
		val[sym.Key] = r
	}
	return val, nil
}

// Push opens a scope.
func (s *Session) Push() {
	s.s.Push()
	s.scopes = append(s.scopes, len(s.assertions))
	s.last = Unknown
}

// Pop discards the formulas added since the matching Push.
func (s *Session) Pop() error {
	if len(s.scopes) == 0 {
		return ErrNoScope
	}
	s.s.Pop(1)
	top := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	s.assertions = s.assertions[:top]
	s.last = Unknown
	return nil
}

// Close releases the solver and the context.
func (s *Session) Close() {
	s.s.Close()
	s.ctx.Close()
}

// Outcome is the result of Solve.
type Outcome struct {
	Result z3.CheckResult
	// Model is set for Sat results.
	Model expr.Valuation
	// Reason explains an Unknown result.
	Reason string
}

// Solve adds n, checks and, when sat, reads the model. A translation error
// yields an Unknown outcome together with the error.
func (s *Session) Solve(ctx context.Context, n expr.Node) (Outcome, error) {
	if err := s.Add(n); err != nil {
		return Outcome{Result: Unknown, Reason: translate.Class(err)}, err
	}
	res, err := s.Check(ctx)
	if err != nil {
		return Outcome{Result: Unknown, Reason: err.Error()}, err
	}
	out := Outcome{Result: res}
	switch res {
	case Sat:
		if out.Model, err = s.Model(); err != nil {
			return out, err
		}
	case Unknown:
		out.Reason = s.ReasonUnknown()
	}
	return out, nil
}

// Verify evaluates n under val and reports ErrModelRejected unless it holds.
func Verify(n expr.Node, val expr.Valuation) error {
	v, err := expr.Eval(n, val)
	if err != nil {
		return fmt.Errorf("solver: verify: %w", err)
	}
	if v.Sort != expr.Bool {
		return fmt.Errorf("solver: verify: formula has sort %s", v.Sort)
	}
	if !v.Bool() {
		return fmt.Errorf("%w: %s", ErrModelRejected, n)
	}
	return nil
}
