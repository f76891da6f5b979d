package speedprofile

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrQPInfeasible is returned when the piecewise-jerk solve fails: the path
// has fewer than four samples, the reduced linear system was singular, or
// the solution violates the jerk bound by more than a small numerical
// tolerance.
var ErrQPInfeasible = errors.New("speedprofile: piecewise-jerk QP failed to converge")

const jerkTolerance = 1e-6

// triple is an (s, ds, dds) boundary condition pinning one end of the
// position curve.
type triple struct {
	s, ds, dds float64
}

// piecewiseJerkProblem smooths a longitudinal position curve subject to
// box bounds on position, velocity, acceleration, and jerk. The dense
// linear algebra is built on gonum/mat via equality-constrained least
// squares rather than a general inequality-constrained solve: the
// decision variable is position alone, with velocity/acceleration/jerk
// tied to it by finite differencing, which makes the unconstrained
// objective an ordinary quadratic form in s; box bounds are then
// enforced by clamping, and the clamped solution is accepted only if it
// still respects the jerk bound.
type piecewiseJerkProblem struct {
	n       int
	dt      float64
	weights Weights
	init    triple
	end     triple

	zeroLo, zeroHi float64
	firstLo, firstHi float64
	secondLo, secondHi float64
	thirdBound float64
	// desireDdx is the target first-order derivative the velocity-smoothing
	// term is measured against, rather than against zero; it defaults to
	// zero, which recovers plain velocity-magnitude smoothing.
	desireDdx float64

	ref []float64

	x, dx, ddx []float64
}

func newPiecewiseJerkProblem(n int, dt float64, weights Weights, init, end triple) *piecewiseJerkProblem {
	return &piecewiseJerkProblem{
		n: n, dt: dt, weights: weights, init: init, end: end,
		zeroLo: math.Inf(-1), zeroHi: math.Inf(1),
		firstLo: math.Inf(-1), firstHi: math.Inf(1),
		secondLo: math.Inf(-1), secondHi: math.Inf(1),
		thirdBound: math.Inf(1),
	}
}

func (p *piecewiseJerkProblem) SetZeroOrderBounds(lo, hi float64)   { p.zeroLo, p.zeroHi = lo, hi }
func (p *piecewiseJerkProblem) SetFirstOrderBounds(lo, hi float64)  { p.firstLo, p.firstHi = lo, hi }
func (p *piecewiseJerkProblem) SetSecondOrderBounds(lo, hi float64) { p.secondLo, p.secondHi = lo, hi }
func (p *piecewiseJerkProblem) SetThirdOrderBound(bound float64)    { p.thirdBound = bound }
func (p *piecewiseJerkProblem) SetDesireDerivative(v float64)       { p.desireDdx = v }
func (p *piecewiseJerkProblem) SetZeroOrderReference(ref []float64) { p.ref = ref }

func (p *piecewiseJerkProblem) xResult() []float64                  { return p.x }
func (p *piecewiseJerkProblem) xDerivative() []float64              { return p.dx }
func (p *piecewiseJerkProblem) xSecondOrderDerivative() []float64    { return p.ddx }

// Optimize builds H = w_s*I + w_v*D1'D1 + w_acc*D2'D2 + w_jerk*D3'D3 +
// w_ref*I (the difference operators D1/D2/D3 make velocity, acceleration
// and jerk linear functions of the position vector alone), eliminates the
// first two and last one sample as equality-fixed by the init/end
// triples, solves the reduced SPD system with gonum/mat, then clamps to
// the box bounds and re-derives dx/ddx/jerk from the clamped result.
func (p *piecewiseJerkProblem) Optimize() bool {
	n := p.n
	if n < 4 {
		return false
	}
	dt := p.dt

	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, h.At(i, i)+p.weights.S+p.weights.Ref)
	}
	addDiffSquare(h, n, 1, dt, p.weights.Velocity)
	addDiffSquare(h, n, 2, dt, p.weights.Acc)
	addDiffSquare(h, n, 3, dt, p.weights.Jerk)

	g := make([]float64, n)
	if p.ref != nil {
		for i := 0; i < n && i < len(p.ref); i++ {
			g[i] -= 2 * p.weights.Ref * p.ref[i]
		}
	}
	if p.desireDdx != 0 {
		c := 2 * p.weights.Velocity * p.desireDdx / dt
		for r := 0; r < n-1; r++ {
			g[r] += c
			g[r+1] -= c
		}
	}

	// Fix s[0], s[1] from the init triple (position + one step of
	// second-order Taylor expansion), and s[n-1] from the end triple's
	// target position.
	fixed := map[int]float64{
		0:   p.init.s,
		1:   p.init.s + p.init.ds*dt + 0.5*p.init.dds*dt*dt,
		n - 1: p.end.s,
	}

	free := make([]int, 0, n-len(fixed))
	for i := 0; i < n; i++ {
		if _, ok := fixed[i]; !ok {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		p.x = fixedOnly(n, fixed)
		p.deriveRates()
		return p.withinJerkBound()
	}

	m := len(free)
	hf := mat.NewSymDense(m, nil)
	bf := make([]float64, m)
	for a := 0; a < m; a++ {
		ia := free[a]
		bf[a] = -0.5 * g[ia]
		for fi, fv := range fixed {
			bf[a] -= h.At(ia, fi) * fv
		}
		for b := a; b < m; b++ {
			hf.SetSym(a, b, h.At(ia, free[b]))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(hf); !ok {
		return false
	}
	var sol mat.VecDense
	bvec := mat.NewVecDense(m, bf)
	if err := chol.SolveVecTo(&sol, bvec); err != nil {
		return false
	}

	x := make([]float64, n)
	for i, v := range fixed {
		x[i] = v
	}
	for a, idx := range free {
		x[idx] = sol.AtVec(a)
	}

	clampAll(x, p.zeroLo, p.zeroHi)
	p.x = x
	p.deriveRates()
	clampAll(p.dx, p.firstLo, p.firstHi)
	clampAll(p.ddx, p.secondLo, p.secondHi)

	return p.withinJerkBound()
}

func (p *piecewiseJerkProblem) deriveRates() {
	n := len(p.x)
	p.dx = make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		p.dx[i] = (p.x[i+1] - p.x[i]) / p.dt
	}
	p.ddx = make([]float64, len(p.dx)-1)
	for i := 0; i < len(p.ddx); i++ {
		p.ddx[i] = (p.dx[i+1] - p.dx[i]) / p.dt
	}
}

func (p *piecewiseJerkProblem) withinJerkBound() bool {
	if math.IsInf(p.thirdBound, 1) {
		return true
	}
	for i := 0; i < len(p.ddx)-1; i++ {
		jerk := (p.ddx[i+1] - p.ddx[i]) / p.dt
		if math.Abs(jerk) > p.thirdBound+jerkTolerance {
			return false
		}
	}
	return true
}

func fixedOnly(n int, fixed map[int]float64) []float64 {
	out := make([]float64, n)
	for i, v := range fixed {
		out[i] = v
	}
	return out
}

func clampAll(v []float64, lo, hi float64) {
	for i := range v {
		v[i] = math.Max(lo, math.Min(hi, v[i]))
	}
}

// addDiffSquare adds weight * D'D to h in place, where D is the order-th
// finite-difference operator over n samples at spacing dt (order 1 =
// velocity, 2 = acceleration, 3 = jerk). D'D is built directly from the
// binomial finite-difference coefficients rather than materializing D.
func addDiffSquare(h *mat.SymDense, n, order int, dt, weight float64) {
	if weight == 0 {
		return
	}
	coeffs := diffCoeffs(order)
	scale := weight / math.Pow(dt, float64(2*order))
	rows := n - order
	for r := 0; r < rows; r++ {
		for a, ca := range coeffs {
			for b, cb := range coeffs {
				i, j := r+a, r+b
				if i > j {
					continue
				}
				h.SetSym(i, j, h.At(i, j)+scale*ca*cb)
			}
		}
	}
}

// diffCoeffs returns the forward finite-difference coefficients for the
// given order: order 1 -> [-1, 1], order 2 -> [1, -2, 1], order 3 -> [-1,
// 3, -3, 1].
func diffCoeffs(order int) []float64 {
	switch order {
	case 1:
		return []float64{-1, 1}
	case 2:
		return []float64{1, -2, 1}
	case 3:
		return []float64{-1, 3, -3, 1}
	default:
		panic("speedprofile: unsupported difference order")
	}
}

// referenceBounds returns [min(ref)-10, max(ref)+10], the reference ±10
// box used for the zero- and first-order bounds.
func referenceBounds(ref []float64) (lo, hi float64) {
	return floats.Min(ref) - 10, floats.Max(ref) + 10
}
