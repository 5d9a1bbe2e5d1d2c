// ABOUTME: Generic mixed-integer linear program model and solver contract
// ABOUTME: Variables are opaque comparable keys; constraints are >= inequalities

package solver

import "context"

// Status is the outcome of a solve.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	Error
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "error"
	}
}

// Domain restricts the values a variable may take. All variables are
// non-negative; integer variables are additionally restricted to whole numbers.
type Domain int

const (
	NonNegativeInteger Domain = iota
	NonNegativeContinuous
)

// Term is one (coefficient, variable) pair of a linear expression.
type Term[V comparable] struct {
	Coeff float64
	Var   V
}

// Expr is a linear expression: semantically the sum of its terms.
// Order is immaterial; duplicate variables accumulate.
type Expr[V comparable] []Term[V]

// Constraint requires Expr >= Bound.
type Constraint[V comparable] struct {
	Expr  Expr[V]
	Bound float64
}

// Decl declares a variable together with its domain.
type Decl[V comparable] struct {
	Var    V
	Domain Domain
}

// Model is an immutable minimization program. It is built once per request
// and must not be mutated after being handed to a Solver.
type Model[V comparable] struct {
	Variables   []Decl[V]
	Objective   Expr[V] // minimized
	Constraints []Constraint[V]
}

// Solution is the flat solver result. Objective and Assignment are populated
// only for Optimal; Message only for Error.
type Solution[V comparable] struct {
	Status     Status
	Objective  float64
	Assignment map[V]float64
	Message    string
}

// Solver executes a Model. Implementations must honor context cancellation
// by returning an Error-status Solution. When multiple optima exist the
// returned assignment is implementation-dependent; only the optimal
// objective value is unique.
type Solver[V comparable] interface {
	Solve(ctx context.Context, m Model[V]) Solution[V]
}
