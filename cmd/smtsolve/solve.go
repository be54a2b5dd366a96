package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vhavlena/z3-constraints/expr"
	"github.com/vhavlena/z3-constraints/internal/config"
	"github.com/vhavlena/z3-constraints/internal/metrics"
	"github.com/vhavlena/z3-constraints/smtlib"
	"github.com/vhavlena/z3-constraints/solver"
)

var metricsOut string

var solveCmd = &cobra.Command{
	Use:   "solve [files...]",
	Short: "Decide each script and print a model when it is satisfiable",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if metricsOut != "" {
			cfg.Metrics.Enabled = true
		}
		collector := metrics.NewCollector(&cfg.Metrics, nil)

		failed := 0
		for _, path := range args {
			if err := solveFile(cmd.Context(), cmd.OutOrStdout(), path, collector); err != nil {
				logger.Error("Error solving file", zap.String("file", path), zap.Error(err))
				failed++
			}
		}

		if metricsOut != "" {
			if err := collector.WriteToTextfile(metricsOut); err != nil {
				logger.Error("Error writing metrics", zap.String("path", metricsOut), zap.Error(err))
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics in text format to this path")
}

func sessionConfig(c *config.Config) solver.Config {
	return solver.Config{
		Timeout:       c.Timeout,
		AllowNegation: c.AllowNegation,
		Params:        c.SolverOptions,
	}
}

func solveFile(ctx context.Context, w io.Writer, path string, obs solver.Observer) error {
	p, err := smtlib.Load(path)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	sess := solver.New(sessionConfig(cfg),
		solver.WithLogger(logger.With(zap.String("file", path))),
		solver.WithObserver(obs),
	)
	defer sess.Close()

	out, err := decide(ctx, sess, p)
	printOutcome(w, path, out)
	if err != nil {
		return err
	}
	if out.Result == solver.Sat {
		if f := p.Conjunction(); f != nil {
			if err := solver.Verify(f, out.Model); err != nil {
				return err
			}
		}
	}
	return nil
}

// decide asserts every assertion of p and checks them together.
func decide(ctx context.Context, sess *solver.Session, p *smtlib.Problem) (solver.Outcome, error) {
	for _, a := range p.Assertions {
		if err := sess.Add(a); err != nil {
			return solver.Outcome{Result: solver.Unknown, Reason: err.Error()}, err
		}
	}
	res, err := sess.Check(ctx)
	if err != nil {
		return solver.Outcome{Result: solver.Unknown, Reason: err.Error()}, err
	}
	out := solver.Outcome{Result: res}
	switch res {
	case solver.Sat:
		out.Model, err = sess.Model()
	case solver.Unknown:
		out.Reason = sess.ReasonUnknown()
	}
	return out, err
}

// printOutcome writes the result in SMT-LIB response syntax, preceded by
// a comment naming the file.
func printOutcome(w io.Writer, path string, out solver.Outcome) {
	fmt.Fprintf(w, "; %s\n%s\n", path, out.Result)
	if out.Result == solver.Unknown && out.Reason != "" {
		fmt.Fprintf(w, "(:reason-unknown %q)\n", out.Reason)
	}
	if out.Result != solver.Sat {
		return
	}
	fmt.Fprintln(w, "(model")
	for _, k := range out.Model.Keys() {
		c := &expr.Constant{Sort: k.Sort, Value: out.Model[k].RatString()}
		fmt.Fprintf(w, "  (define-fun %s () %s %s)\n", expr.Var(k.Name, k.Sort), k.Sort, c)
	}
	fmt.Fprintln(w, ")")
}
