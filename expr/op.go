package expr

import "strconv"

// Comparator is the relation of a NumericComparison.
type Comparator int

const (
	EQ Comparator = iota
	NE
	GE
	GT
	LE
	LT
)

var cmpText = [...]string{EQ: "=", NE: "distinct", GE: ">=", GT: ">", LE: "<=", LT: "<"}

func (c Comparator) String() string {
	if c >= 0 && int(c) < len(cmpText) {
		return cmpText[c]
	}
	return "Comparator(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports whether c is one of the declared comparators.
func (c Comparator) Valid() bool { return c >= EQ && c <= LT }

// NumericOperator is the operator of a NumericCompound.
type NumericOperator int

const (
	PLUS NumericOperator = iota
	MINUS
	MUL
	DIV
	REM
)

var numText = [...]string{PLUS: "+", MINUS: "-", MUL: "*", DIV: "/", REM: "mod"}

func (o NumericOperator) String() string {
	if o >= 0 && int(o) < len(numText) {
		return numText[o]
	}
	return "NumericOperator(" + strconv.Itoa(int(o)) + ")"
}

// Valid reports whether o is one of the declared operators.
func (o NumericOperator) Valid() bool { return o >= PLUS && o <= REM }

// LogicalOperator is the connective of a PropositionalCompound.
type LogicalOperator int

const (
	AND LogicalOperator = iota
	OR
	XOR
	EQUIV
	IMPLY
)

var logicText = [...]string{AND: "and", OR: "or", XOR: "xor", EQUIV: "=", IMPLY: "=>"}

func (o LogicalOperator) String() string {
	if o >= 0 && int(o) < len(logicText) {
		return logicText[o]
	}
	return "LogicalOperator(" + strconv.Itoa(int(o)) + ")"
}

// Valid reports whether o is one of the declared connectives.
func (o LogicalOperator) Valid() bool { return o >= AND && o <= IMPLY }
