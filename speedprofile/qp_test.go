package speedprofile

import (
	"testing"

	"go.viam.com/test"
)

func straightPath(n int) (xs, ys, phis []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	phis = make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i)
	}
	return xs, ys, phis
}

func qpParams() Params {
	return Params{
		DeltaT:                0.5,
		WheelBase:             2.8,
		StepSize:              0.5,
		UseQP:                 true,
		LongitudinalJerkBound: 4.0,
		Weights:               Weights{S: 1, Velocity: 1, Acc: 1, Jerk: 1, Ref: 10},
	}
}

func TestGenerateQPModeProducesAccumulatedS(t *testing.T) {
	xs, ys, phis := straightPath(8)
	res, err := Generate(xs, ys, phis, qpParams())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res, test.ShouldNotBeNil)
	test.That(t, len(res.AccumulatedS), test.ShouldEqual, len(xs))
	test.That(t, len(res.V), test.ShouldEqual, len(xs))
	test.That(t, len(res.A), test.ShouldEqual, len(xs)-1)
	test.That(t, len(res.Steer), test.ShouldEqual, len(xs)-1)
}

func TestGenerateQPModeTooShortIsInfeasible(t *testing.T) {
	xs, ys, phis := straightPath(3)
	_, err := Generate(xs, ys, phis, qpParams())
	test.That(t, err, test.ShouldEqual, ErrQPInfeasible)
}

func TestGenerateFiniteDifferenceModeSkipsQP(t *testing.T) {
	xs, ys, phis := straightPath(5)
	p := qpParams()
	p.UseQP = false
	res, err := Generate(xs, ys, phis, p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.AccumulatedS, test.ShouldBeNil)
}

func TestReferenceBoundsPadsByTen(t *testing.T) {
	lo, hi := referenceBounds([]float64{0, 5, 10})
	test.That(t, lo, test.ShouldAlmostEqual, -10.0)
	test.That(t, hi, test.ShouldAlmostEqual, 20.0)
}
