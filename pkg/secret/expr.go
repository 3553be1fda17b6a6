package secret

import "go.dedis.ch/kyber/v3"

// Term is one summand of a LinearExpression: a Secret multiplied by a
// generator point.
type Term struct {
	Secret    Secret
	Generator kyber.Point
}

// Mul builds the Term s*g. This is the entry point of the algebraic DSL:
// Secret * Point -> Term.
func (s Secret) Mul(g kyber.Point) Term {
	return Term{Secret: s, Generator: g}
}

// Add combines two Terms into a two-term Expr: Term + Term -> Expr.
func (t Term) Add(other Term) Expr {
	return Expr{t, other}
}

// Expr is a formal sum Sigma(secret_i * generator_i). No algebraic
// simplification is ever performed -- term order is preserved and
// observable, exactly as spec.md requires, since the same order is what
// DLRep.SecretNames/Generators and the consistency checker walk.
type Expr []Term

// Add appends a Term, returning a new Expr: Expr + Term -> Expr.
func (e Expr) Add(t Term) Expr {
	out := make(Expr, len(e)+1)
	copy(out, e)
	out[len(e)] = t
	return out
}

// SecretNames returns the Secret.Name of each term, in term order.
func (e Expr) SecretNames() []string {
	names := make([]string, len(e))
	for i, t := range e {
		names[i] = t.Secret.Name
	}
	return names
}

// Generators returns the generator of each term, in term order.
func (e Expr) Generators() []kyber.Point {
	gens := make([]kyber.Point, len(e))
	for i, t := range e {
		gens[i] = t.Generator
	}
	return gens
}
