// Package boolfunc parses the boolean pin-function expressions embedded in
// liberty attribute values, such as "(A * B) + !C".
//
// The operator set mirrors what cell libraries actually use: prefix ! and
// postfix ' both invert, ^ is exclusive-or, & and * and plain adjacency all
// mean and, + and | both mean or. Inversion binds tightest, then ^, then
// and, then or. Parse builds a plain expression tree; it performs no
// simplification.
package boolfunc

import "strings"

// Expr is a node of a parsed boolean expression tree. The concrete types are
// Var, Const, Not, And, Or, and Xor, all value types, so trees built from
// the same text compare equal structurally.
type Expr interface {
	// String renders the expression with canonical operators, adding
	// parentheses only where precedence requires them.
	String() string

	isExpr()
}

// Var is a reference to an input pin by name.
type Var struct {
	Name string
}

// Const is a constant logic level, false for 0 and true for 1.
type Const struct {
	Value bool
}

// Not inverts its operand.
type Not struct {
	Operand Expr
}

// And is a conjunction of two or more operands in source order.
type And struct {
	Operands []Expr
}

// Or is a disjunction of two or more operands in source order.
type Or struct {
	Operands []Expr
}

// Xor is an exclusive-or chain of two or more operands in source order.
type Xor struct {
	Operands []Expr
}

func (Var) isExpr()   {}
func (Const) isExpr() {}
func (Not) isExpr()   {}
func (And) isExpr()   {}
func (Or) isExpr()    {}
func (Xor) isExpr()   {}

// Operator precedence levels, loosest to tightest.
const (
	precOr = iota + 1
	precAnd
	precXor
	precNot
	precAtom
)

func precedence(e Expr) int {
	switch e.(type) {
	case Or:
		return precOr
	case And:
		return precAnd
	case Xor:
		return precXor
	case Not:
		return precNot
	default:
		return precAtom
	}
}

func (v Var) String() string { return v.Name }

func (c Const) String() string {
	if c.Value {
		return "1"
	}
	return "0"
}

func (n Not) String() string { return "!" + parenthesize(n.Operand, precNot) }

func (a And) String() string { return joinOperands(a.Operands, " * ", precAnd) }

func (o Or) String() string { return joinOperands(o.Operands, " + ", precOr) }

func (x Xor) String() string { return joinOperands(x.Operands, " ^ ", precXor) }

// parenthesize renders child, wrapping it when its operator does not bind
// more tightly than the surrounding one. Equal levels wrap too, so an
// explicitly nested chain like (a * b) * c keeps its shape through a
// render/parse cycle.
func parenthesize(child Expr, parent int) string {
	s := child.String()
	if precedence(child) <= parent {
		return "(" + s + ")"
	}
	return s
}

func joinOperands(operands []Expr, sep string, prec int) string {
	parts := make([]string, len(operands))
	for i, op := range operands {
		parts[i] = parenthesize(op, prec)
	}
	return strings.Join(parts, sep)
}
