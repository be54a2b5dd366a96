// Package expr defines the constraint formulas handed to the translator: a
// closed set of node types over boolean and Int/Real arithmetic terms.
//
// Nodes are immutable once built and may be shared freely, so a formula is a
// DAG rather than a tree. Nothing in this package mutates a node.
package expr

import (
	"strings"
)

// Node is a formula or term. The set of implementations is closed: only the
// types in this package satisfy it.
type Node interface {
	// Type returns the sort of the value the node denotes.
	Type() Sort
	// String renders the node in SMT-LIB syntax.
	String() string

	children() []Node
}

// Variable is a free symbol of a declared sort.
type Variable struct {
	Name string
	Sort Sort
}

// Constant is a numeric literal. Value holds the exact textual form: an
// integer ("3"), a decimal ("-2.5") or a fraction ("1/3").
type Constant struct {
	Sort  Sort
	Value string
}

// Negation is the logical negation of a boolean formula.
type Negation struct {
	Negated Node
}

// NumericComparison relates two numeric terms.
type NumericComparison struct {
	Left, Right Node
	Cmp         Comparator
}

// NumericCompound is a binary arithmetic term.
type NumericCompound struct {
	Left, Right Node
	Op          NumericOperator
}

// PropositionalCompound is a binary boolean connective.
type PropositionalCompound struct {
	Left, Right Node
	Op          LogicalOperator
}

// UnaryMinus is the arithmetic negation of a numeric term.
type UnaryMinus struct {
	Negated Node
}

// FunctionCall applies a named function returning Sort to Args.
type FunctionCall struct {
	Name string
	Sort Sort
	Args []Node
}

func (v *Variable) Type() Sort              { return v.Sort }
func (c *Constant) Type() Sort              { return c.Sort }
func (n *Negation) Type() Sort              { return Bool }
func (n *NumericComparison) Type() Sort     { return Bool }
func (n *NumericCompound) Type() Sort       { return Join(n.Left.Type(), n.Right.Type()) }
func (n *PropositionalCompound) Type() Sort { return Bool }
func (n *UnaryMinus) Type() Sort            { return n.Negated.Type() }
func (f *FunctionCall) Type() Sort          { return f.Sort }

func (v *Variable) children() []Node              { return nil }
func (c *Constant) children() []Node              { return nil }
func (n *Negation) children() []Node              { return []Node{n.Negated} }
func (n *NumericComparison) children() []Node     { return []Node{n.Left, n.Right} }
func (n *NumericCompound) children() []Node       { return []Node{n.Left, n.Right} }
func (n *PropositionalCompound) children() []Node { return []Node{n.Left, n.Right} }
func (n *UnaryMinus) children() []Node            { return []Node{n.Negated} }
func (f *FunctionCall) children() []Node          { return f.Args }

// Key returns the symbol-table key of the variable.
func (v *Variable) Key() VarKey { return VarKey{Name: v.Name, Sort: v.Sort} }

func (v *Variable) String() string { return quoteSymbol(v.Name) }

func (c *Constant) String() string {
	text := strings.TrimSpace(c.Value)
	neg := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")
	if c.Sort == Real && !strings.ContainsAny(text, "./") {
		// keep the sort visible: 2 reads back as Int, 2.0 as Real
		text += ".0"
	}
	if num, den, ok := strings.Cut(text, "/"); ok {
		text = "(/ " + num + " " + den + ")"
	}
	if neg {
		return "(- " + text + ")"
	}
	return text
}

func (n *Negation) String() string { return sexp("not", n.Negated) }

func (n *NumericComparison) String() string { return sexp(n.Cmp.String(), n.Left, n.Right) }

func (n *NumericCompound) String() string {
	op := n.Op.String()
	if n.Op == DIV && n.Type() == Int {
		op = "div"
	}
	return sexp(op, n.Left, n.Right)
}

func (n *PropositionalCompound) String() string { return sexp(n.Op.String(), n.Left, n.Right) }

func (n *UnaryMinus) String() string { return sexp("-", n.Negated) }

func (f *FunctionCall) String() string {
	if len(f.Args) == 0 {
		return quoteSymbol(f.Name)
	}
	return sexp(quoteSymbol(f.Name), f.Args...)
}

func sexp(head string, args ...Node) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// quoteSymbol wraps a symbol in |...| unless it is a simple SMT-LIB symbol.
func quoteSymbol(name string) string {
	if name == "" {
		return "||"
	}
	for i, r := range name {
		simple := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
			strings.ContainsRune("~!@$%^&*_-+=<>.?/", r) ||
			i > 0 && r >= '0' && r <= '9'
		if !simple {
			return "|" + name + "|"
		}
	}
	return name
}
