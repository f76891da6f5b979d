package speedprofile

import (
	"math"

	"github.com/pkg/errors"
)

// ErrDegenerate is returned when the input pose sequence has fewer than
// two poses, too short to difference into a velocity at all.
var ErrDegenerate = errors.New("speedprofile: path has fewer than 2 poses")

// FiniteDifference computes v, a, and steer from a reconstructed pose
// sequence by finite-differencing position and heading. v has the same
// length as xs; a and steer have length len(xs)-1.
func FiniteDifference(xs, ys, phis []float64, p Params) (v, a, steer []float64, err error) {
	n := len(xs)
	if n < 2 {
		return nil, nil, nil, ErrDegenerate
	}

	v = make([]float64, n)
	for i := 0; i < n-1; i++ {
		v[i] = (xs[i+1]-xs[i])/p.DeltaT*math.Cos(phis[i]) + (ys[i+1]-ys[i])/p.DeltaT*math.Sin(phis[i])
	}
	v[n-1] = 0

	a = make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		a[i] = (v[i+1] - v[i]) / p.DeltaT
	}

	steer = make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		s := math.Atan((phis[i+1] - phis[i]) * p.WheelBase / p.StepSize)
		if v[i] <= 0 {
			s = -s
		}
		steer[i] = s
	}
	return v, a, steer, nil
}
