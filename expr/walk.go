package expr

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// VarKey identifies a variable: the same name under two sorts names two
// different variables.
type VarKey struct {
	Name string
	Sort Sort
}

func (k VarKey) String() string { return fmt.Sprintf("%s:%s", k.Name, k.Sort) }

// Compare orders keys by name, then sort.
func (k VarKey) Compare(o VarKey) int {
	switch {
	case k.Name < o.Name:
		return -1
	case k.Name > o.Name:
		return 1
	default:
		return int(k.Sort) - int(o.Sort)
	}
}

// SortKeys sorts keys in place by Compare.
func SortKeys(keys []VarKey) {
	slices.SortFunc(keys, VarKey.Compare)
}

// Children returns the direct operands of n.
func Children(n Node) []Node { return n.children() }

// Walk visits n and its descendants in pre-order. When fn returns false the
// children of that node are skipped. Shared sub-terms are visited once per
// reference; use WalkOnce on formulas with heavy sharing.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.children() {
		Walk(c, fn)
	}
}

// WalkOnce is Walk visiting each distinct node once, at its first reference.
// A node pruned by fn stays pruned at later references.
func WalkOnce(n Node, fn func(Node) bool) {
	seen := make(map[Node]struct{})
	var walk func(Node)
	walk = func(n Node) {
		if n == nil {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		if !fn(n) {
			return
		}
		for _, c := range n.children() {
			walk(c)
		}
	}
	walk(n)
}

// Vars returns the distinct variables of n in first-seen order.
func Vars(n Node) []VarKey {
	var out []VarKey
	seen := make(map[VarKey]bool)
	WalkOnce(n, func(n Node) bool {
		if v, ok := n.(*Variable); ok && !seen[v.Key()] {
			seen[v.Key()] = true
			out = append(out, v.Key())
		}
		return true
	})
	return out
}

// Size returns the number of distinct nodes of n; a shared sub-term counts
// once.
func Size(n Node) int {
	count := 0
	WalkOnce(n, func(Node) bool {
		count++
		return true
	})
	return count
}

// Kind names the node type of n, as used in logs and metrics.
func Kind(n Node) string {
	switch n.(type) {
	case *Variable:
		return "variable"
	case *Constant:
		return "constant"
	case *Negation:
		return "negation"
	case *NumericComparison:
		return "comparison"
	case *NumericCompound:
		return "arithmetic"
	case *PropositionalCompound:
		return "propositional"
	case *UnaryMinus:
		return "unary_minus"
	case *FunctionCall:
		return "function_call"
	default:
		return fmt.Sprintf("%T", n)
	}
}
