package hybridastar

import "go.uber.org/multierr"

// Result is the time-parameterized trajectory a successful Plan call
// produces: parallel arrays of length N for pose and velocity, length N-1
// for acceleration and steering. AccumulatedS is populated only in QP
// speed-profile mode.
type Result struct {
	X, Y, Phi []float64
	V         []float64
	A         []float64
	Steer     []float64

	AccumulatedS []float64
}

// N returns the pose-array length.
func (r *Result) N() int {
	return len(r.X)
}

// validate checks the array-length invariants
// (len(x)==len(y)==len(phi)==len(v), len(a)==len(steer)==len(x)-1),
// reporting every violation rather than just the first.
func (r *Result) validate() error {
	var err error
	n := len(r.X)
	if len(r.Y) != n {
		err = multierr.Append(err, newPlanError(SizeInvariantViolated, "len(y) != len(x)"))
	}
	if len(r.Phi) != n {
		err = multierr.Append(err, newPlanError(SizeInvariantViolated, "len(phi) != len(x)"))
	}
	if len(r.V) != n {
		err = multierr.Append(err, newPlanError(SizeInvariantViolated, "len(v) != len(x)"))
	}
	if n > 0 {
		if len(r.A) != n-1 {
			err = multierr.Append(err, newPlanError(SizeInvariantViolated, "len(a) != len(x)-1"))
		}
		if len(r.Steer) != n-1 {
			err = multierr.Append(err, newPlanError(SizeInvariantViolated, "len(steer) != len(x)-1"))
		}
	}
	return err
}
