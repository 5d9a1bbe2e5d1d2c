// ABOUTME: Branch-and-bound MILP solver over gonum's simplex
// ABOUTME: Depth-first search with LP relaxations and best-incumbent pruning

package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// BranchBound solves mixed-integer programs by depth-first branch and bound.
// Each node's LP relaxation is solved with gonum's two-phase simplex; nodes
// whose relaxation cannot beat the incumbent are pruned.
type BranchBound[V comparable] struct {
	IntTol   float64 // integrality tolerance; values this close to a whole number count as integral
	MaxNodes int     // node budget before the solve aborts with an Error status
}

const (
	defaultIntTol   = 1e-6
	defaultMaxNodes = 100000

	// pruneEps guards incumbent comparisons against simplex round-off.
	pruneEps = 1e-9

	// simplexTol is the pivot tolerance handed to gonum's simplex.
	simplexTol = 1e-10
)

// NewBranchBound returns a solver with default tolerances.
func NewBranchBound[V comparable]() *BranchBound[V] {
	return &BranchBound[V]{IntTol: defaultIntTol, MaxNodes: defaultMaxNodes}
}

// program is a Model compiled to dense index form.
type program[V comparable] struct {
	vars   []Decl[V]
	obj    []float64   // objective coefficients per variable index
	rows   [][]float64 // constraint coefficients, one row per constraint
	bounds []float64   // right-hand sides: rows[i] . x >= bounds[i]
}

func compile[V comparable](m Model[V]) (*program[V], error) {
	index := make(map[V]int, len(m.Variables))
	for i, d := range m.Variables {
		if _, dup := index[d.Var]; dup {
			return nil, fmt.Errorf("variable %v declared twice", d.Var)
		}
		index[d.Var] = i
	}

	n := len(m.Variables)
	dense := func(e Expr[V]) ([]float64, error) {
		row := make([]float64, n)
		for _, t := range e {
			j, ok := index[t.Var]
			if !ok {
				return nil, fmt.Errorf("expression references undeclared variable %v", t.Var)
			}
			row[j] += t.Coeff
		}
		return row, nil
	}

	obj, err := dense(m.Objective)
	if err != nil {
		return nil, err
	}

	p := &program[V]{vars: m.Variables, obj: obj}
	for _, c := range m.Constraints {
		row, err := dense(c.Expr)
		if err != nil {
			return nil, err
		}
		p.rows = append(p.rows, row)
		p.bounds = append(p.bounds, c.Bound)
	}
	return p, nil
}

// Solve implements Solver.
func (s *BranchBound[V]) Solve(ctx context.Context, m Model[V]) Solution[V] {
	intTol := s.IntTol
	if intTol <= 0 {
		intTol = defaultIntTol
	}
	maxNodes := s.MaxNodes
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}

	p, err := compile(m)
	if err != nil {
		return Solution[V]{Status: Error, Message: err.Error()}
	}

	n := len(p.vars)
	if n == 0 {
		// No variables: every constraint reduces to 0 >= bound.
		for _, b := range p.bounds {
			if b > intTol {
				return Solution[V]{Status: Infeasible}
			}
		}
		return Solution[V]{Status: Optimal, Assignment: map[V]float64{}}
	}

	type node struct {
		lo, hi []float64
	}
	root := node{lo: make([]float64, n), hi: make([]float64, n)}
	for j := range root.hi {
		root.hi[j] = math.Inf(1)
	}

	stack := []node{root}
	var best []float64
	bestObj := math.Inf(1)
	visited := 0

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Solution[V]{Status: Error, Message: "solve cancelled: " + err.Error()}
		}
		visited++
		if visited > maxNodes {
			return Solution[V]{Status: Error, Message: fmt.Sprintf("node budget of %d exhausted", maxNodes)}
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		obj, x, err := p.relax(nd.lo, nd.hi)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case errors.Is(err, lp.ErrUnbounded):
			// A child's feasible region is a subset of the root's, so this
			// can only surface at the root.
			return Solution[V]{Status: Unbounded}
		case err != nil:
			return Solution[V]{Status: Error, Message: "relaxation failed: " + err.Error()}
		}

		if obj >= bestObj-pruneEps {
			continue
		}

		br := p.fractionalVar(x, intTol)
		if br < 0 {
			cand := p.snap(x, intTol)
			candObj := dot(p.obj, cand)
			if candObj < bestObj {
				bestObj = candObj
				best = cand
			}
			continue
		}

		down := node{lo: cloneVec(nd.lo), hi: cloneVec(nd.hi)}
		down.hi[br] = math.Floor(x[br])
		up := node{lo: cloneVec(nd.lo), hi: cloneVec(nd.hi)}
		up.lo[br] = math.Ceil(x[br])
		// Explore the floor branch first: with non-negative costs it is
		// the more promising side.
		stack = append(stack, up, down)
	}

	if best == nil {
		return Solution[V]{Status: Infeasible}
	}

	assignment := make(map[V]float64, n)
	for j, d := range p.vars {
		assignment[d.Var] = best[j]
	}
	return Solution[V]{Status: Optimal, Objective: bestObj, Assignment: assignment}
}

// relax solves the LP relaxation restricted to the box [lo, hi].
// It substitutes y = x - lo so that y >= 0, appends a surplus column per
// inequality and a slack column per finite upper bound, and hands the
// resulting equality-form program to gonum's simplex.
func (p *program[V]) relax(lo, hi []float64) (float64, []float64, error) {
	n := len(p.vars)

	type ubRow struct {
		j int
		u float64
	}
	var ubs []ubRow
	for j := 0; j < n; j++ {
		if math.IsInf(hi[j], 1) {
			continue
		}
		u := hi[j] - lo[j]
		if u < 0 {
			return 0, nil, lp.ErrInfeasible
		}
		ubs = append(ubs, ubRow{j: j, u: u})
	}

	m1 := len(p.rows)
	m2 := len(ubs)
	rows := m1 + m2
	cols := n + m1 + m2

	fixed := dot(p.obj, lo)

	if rows == 0 {
		// Unconstrained over y >= 0: the minimum sits at y = 0 unless some
		// cost is negative.
		for j := 0; j < n; j++ {
			if p.obj[j] < 0 && math.IsInf(hi[j], 1) {
				return 0, nil, lp.ErrUnbounded
			}
		}
		x := cloneVec(lo)
		return fixed, x, nil
	}

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)
	copy(c, p.obj)

	for i, row := range p.rows {
		rhs := p.bounds[i] - dot(row, lo)
		// row . y - surplus = rhs; negate when rhs < 0 so b stays non-negative.
		sign := 1.0
		if rhs < 0 {
			sign = -1
		}
		for j := 0; j < n; j++ {
			a.Set(i, j, sign*row[j])
		}
		a.Set(i, n+i, -sign)
		b[i] = sign * rhs
	}
	for k, ub := range ubs {
		i := m1 + k
		a.Set(i, ub.j, 1)
		a.Set(i, n+m1+k, 1)
		b[i] = ub.u
	}

	optF, optX, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		return 0, nil, err
	}

	x := make([]float64, n)
	for j := 0; j < n; j++ {
		x[j] = optX[j] + lo[j]
	}
	return optF + fixed, x, nil
}

// fractionalVar returns the index of the most fractional integer variable,
// or -1 if the point is integral within tol.
func (p *program[V]) fractionalVar(x []float64, tol float64) int {
	br := -1
	most := tol
	for j, d := range p.vars {
		if d.Domain != NonNegativeInteger {
			continue
		}
		frac := x[j] - math.Floor(x[j])
		dist := math.Min(frac, 1-frac)
		if dist > most {
			most = dist
			br = j
		}
	}
	return br
}

// snap rounds integer variables to the nearest whole number and clamps
// simplex round-off below zero.
func (p *program[V]) snap(x []float64, tol float64) []float64 {
	out := make([]float64, len(x))
	for j, d := range p.vars {
		v := x[j]
		if d.Domain == NonNegativeInteger {
			v = math.Round(v)
		}
		if v < 0 && v > -tol {
			v = 0
		}
		out[j] = v
	}
	return out
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
