package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vhavlena/z3-constraints/smtlib"
	"github.com/vhavlena/z3-constraints/translate"
	"github.com/vhavlena/z3-constraints/z3"
)

var outPath string

var translateCmd = &cobra.Command{
	Use:   "translate [files...]",
	Short: "Print the Z3 term of every assertion",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if outPath != "" && len(args) != 1 {
			return errors.New("--output takes exactly one input file")
		}
		failed := 0
		for _, path := range args {
			p, err := smtlib.Load(path)
			if err == nil {
				err = translateProblem(cmd.OutOrStdout(), path, p)
			}
			if err != nil {
				logger.Error("Error translating file", zap.String("file", path), zap.Error(err))
				failed++
				continue
			}
			if outPath != "" {
				if err := smtlib.Save(outPath, p); err != nil {
					logger.Error("Error writing script", zap.String("path", outPath), zap.Error(err))
					return err
				}
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	translateCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the normalized script to this path (.zst to compress)")
}

// translateProblem prints one Z3 term per assertion of p. Every assertion
// is attempted; the first error is returned.
func translateProblem(w io.Writer, path string, p *smtlib.Problem) error {
	ctx := z3.NewContext(nil)
	defer ctx.Close()

	opts := []translate.Option{translate.WithLogger(logger.With(zap.String("file", path)))}
	if cfg.AllowNegation {
		opts = append(opts, translate.WithNegation())
	}
	tr := translate.NewZ3(ctx, opts...)

	fmt.Fprintf(w, "; %s\n", path)
	var first error
	for i, a := range p.Assertions {
		h, err := tr.Translate(a)
		if err != nil {
			fmt.Fprintf(w, "; assertion %d: %v\n", i+1, err)
			if first == nil {
				first = err
			}
			continue
		}
		fmt.Fprintln(w, h.String())
	}
	return first
}
