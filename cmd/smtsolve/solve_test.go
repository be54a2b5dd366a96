//go:build cgo
// +build cgo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhavlena/z3-constraints/smtlib"
)

const boundedScript = `(set-logic QF_LIA)
(declare-const x Int)
(assert (>= (+ x 1) 3))
(assert (< x 3))
(check-sat)
(get-model)
`

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		metricsOut, outPath = "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	dir := t.TempDir()
	sat := writeScript(t, dir, "sat.smt2", boundedScript)
	unsat := writeScript(t, dir, "unsat.smt2", "(declare-fun y () Real)\n(assert (> y 1.5))\n(assert (< y 0.5))\n")
	prom := filepath.Join(dir, "solve.prom")

	out, err := run(t, "solve", "--config", filepath.Join(dir, "none.yaml"), "--metrics-out", prom, sat, unsat)
	require.NoError(t, err)
	assert.Contains(t, out, "; "+sat+"\nsat\n(model\n  (define-fun x () Int 2)\n)\n")
	assert.Contains(t, out, "; "+unsat+"\nunsat\n")

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `smtsolve_check_duration_seconds_count{result="sat"} 1`)
	assert.Contains(t, string(data), `smtsolve_check_duration_seconds_count{result="unsat"} 1`)
}

func TestSolveCommandUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "neg.smt2", "(declare-const x Int)\n(assert (not (= x 0)))\n")

	out, err := run(t, "solve", "--config", filepath.Join(dir, "none.yaml"), path)
	require.Error(t, err)
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "logical negation")

	cfgPath := writeScript(t, dir, "neg.yaml", "allow_negation: true\n")
	out, err = run(t, "solve", "--config", cfgPath, path)
	require.NoError(t, err)
	assert.Contains(t, out, "sat\n(model")
}

func TestTranslateCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bounded.smt2", boundedScript)
	saved := filepath.Join(dir, "bounded.smt2.zst")

	out, err := run(t, "translate", "--config", filepath.Join(dir, "none.yaml"), "-o", saved, path)
	require.NoError(t, err)
	assert.Contains(t, out, "(>= (+ x 1) 3)")
	assert.Contains(t, out, "(< x 3)")

	p, err := smtlib.Load(saved)
	require.NoError(t, err)
	assert.Len(t, p.Assertions, 2)
	assert.Equal(t, "QF_LIA", p.Logic)
}
