package expr

// Var returns a variable of sort s.
func Var(name string, s Sort) *Variable { return &Variable{Name: name, Sort: s} }

// IntConst returns an Int literal.
func IntConst(value string) *Constant { return &Constant{Sort: Int, Value: value} }

// RealConst returns a Real literal.
func RealConst(value string) *Constant { return &Constant{Sort: Real, Value: value} }

// Cmp returns the comparison l cmp r.
func Cmp(l Node, cmp Comparator, r Node) *NumericComparison {
	return &NumericComparison{Left: l, Right: r, Cmp: cmp}
}

// Arith returns the arithmetic term l op r.
func Arith(l Node, op NumericOperator, r Node) *NumericCompound {
	return &NumericCompound{Left: l, Right: r, Op: op}
}

// Logic returns the boolean formula l op r.
func Logic(l Node, op LogicalOperator, r Node) *PropositionalCompound {
	return &PropositionalCompound{Left: l, Right: r, Op: op}
}

// Not returns the logical negation of n.
func Not(n Node) *Negation { return &Negation{Negated: n} }

// Neg returns the arithmetic negation of n.
func Neg(n Node) *UnaryMinus { return &UnaryMinus{Negated: n} }

// Call returns the application of function name of result sort s.
func Call(name string, s Sort, args ...Node) *FunctionCall {
	return &FunctionCall{Name: name, Sort: s, Args: args}
}

// And folds nodes into a left-deep conjunction. It returns nil for no nodes
// and the node itself for one.
func And(nodes ...Node) Node {
	return fold(AND, nodes)
}

// Or folds nodes into a left-deep disjunction.
func Or(nodes ...Node) Node {
	return fold(OR, nodes)
}

func fold(op LogicalOperator, nodes []Node) Node {
	if len(nodes) == 0 {
		return nil
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = Logic(acc, op, n)
	}
	return acc
}
