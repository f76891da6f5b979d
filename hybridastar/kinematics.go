package hybridastar

import "github.com/popov1212/apollo/spatialmath"

// sweepSuccessor forward-integrates the bicycle model from the parent's
// final pose under constant steering and signed step, for the number of
// sub-steps needed to span one full cell diagonal: the micro-arc spans a
// full cell diagonal, so its sub-step count is
// floor(sqrt(2) * r_xy / step_size).
func sweepSuccessor(from spatialmath.Pose, steer, signedStep float64, cfg *Config) (xs, ys, phis []float64) {
	subSteps := int(sqrt2 * cfg.XYGridResolution / cfg.StepSize)
	if subSteps < 1 {
		subSteps = 1
	}
	path := spatialmath.StepBicycleN(from, steer, cfg.WheelBase, signedStep, subSteps)
	xs = make([]float64, len(path))
	ys = make([]float64, len(path))
	phis = make([]float64, len(path))
	for i, p := range path {
		xs[i], ys[i], phis[i] = p.X, p.Y, p.Phi
	}
	return xs, ys, phis
}

const sqrt2 = 1.4142135623730951
