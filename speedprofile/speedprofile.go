package speedprofile

import "math"

// Result is the time-parameterization this package adds to a spatial
// path: velocity, acceleration, steering, and (QP mode only) the
// accumulated longitudinal position.
type Result struct {
	V, A, Steer  []float64
	AccumulatedS []float64
}

// Generate lifts the reconstructed pose sequence (xs, ys, phis) to a timed
// trajectory: finite-difference mode unless p.UseQP is set, in which case
// the finite-difference profile is first built as the
// reference and then smoothed by the piecewise-jerk QP.
func Generate(xs, ys, phis []float64, p Params) (*Result, error) {
	v, a, steer, err := FiniteDifference(xs, ys, phis, p)
	if err != nil {
		return nil, err
	}
	if !p.UseQP {
		return &Result{V: v, A: a, Steer: steer}, nil
	}

	accumulatedS := integrateS(v, p.DeltaT)

	n := len(xs)
	zeroLo, zeroHi := referenceBounds(accumulatedS)
	firstLo, firstHi := referenceBounds(v)

	init := triple{s: accumulatedS[0], ds: v[0], dds: safeAt(a, 0)}
	end := triple{s: accumulatedS[n-1], ds: 0, dds: 0}

	prob := newPiecewiseJerkProblem(n, p.DeltaT, p.Weights, init, end)
	prob.SetZeroOrderBounds(zeroLo, zeroHi)
	prob.SetFirstOrderBounds(firstLo, firstHi)
	prob.SetSecondOrderBounds(-4.4, 10.0)
	prob.SetThirdOrderBound(p.LongitudinalJerkBound)
	prob.SetZeroOrderReference(accumulatedS)
	prob.SetDesireDerivative(0)

	if !prob.Optimize() {
		return nil, ErrQPInfeasible
	}

	qpV := prob.xDerivative()
	qpA := prob.xSecondOrderDerivative()
	qpS := prob.xResult()

	// v must keep length n: pad the QP's n-1 derivative samples with a
	// trailing zero, matching the finite-difference mode's v[n-1]=0.
	vOut := make([]float64, n)
	copy(vOut, qpV)

	// a and steer must keep length n-1; the QP's second-order derivative
	// has n-2 samples (one difference shorter than dx), so pad with a
	// trailing zero rather than leave the last sample undefined.
	aOut := make([]float64, n-1)
	copy(aOut, qpA)

	steerOut := steerFromVelocity(phis, vOut, p)

	return &Result{
		V:            vOut,
		A:            aOut,
		Steer:        steerOut,
		AccumulatedS: qpS,
	}, nil
}

// integrateS left-Euler integrates v over DeltaT to produce the
// longitudinal reference curve s(t) the QP smooths: s[i] advances by the
// single velocity sample driving the step from i-1 to i, not an average
// of the two endpoints' samples.
func integrateS(v []float64, deltaT float64) []float64 {
	s := make([]float64, len(v))
	for i := 1; i < len(v); i++ {
		s[i] = s[i-1] + v[i-1]*deltaT
	}
	return s
}

func safeAt(v []float64, i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

// steerFromVelocity recomputes steer exactly as finite-difference mode
// does, but against the QP's smoothed velocities.
func steerFromVelocity(phis, qpV []float64, p Params) []float64 {
	n := len(phis)
	steer := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		s := math.Atan((phis[i+1] - phis[i]) * p.WheelBase / p.StepSize)
		if qpV[i] <= 0 {
			s = -s
		}
		steer[i] = s
	}
	return steer
}
