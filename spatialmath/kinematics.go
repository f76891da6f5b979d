package spatialmath

import "math"

// StepBicycle forward-integrates a single-track (bicycle) model one step:
// given a rear-axle pose, a constant steering angle steer, a wheelbase L,
// and a signed arc length ds (positive is forward, negative is reverse),
// it returns the pose after traveling ds along that fixed steering arc.
//
//	x' = x + ds*cos(phi)
//	y' = y + ds*sin(phi)
//	phi' = normalize(phi + (ds/L)*tan(steer))
func StepBicycle(p Pose, steer, wheelbase, ds float64) Pose {
	return NewPose(
		p.X+ds*math.Cos(p.Phi),
		p.Y+ds*math.Sin(p.Phi),
		p.Phi+(ds/wheelbase)*math.Tan(steer),
	)
}

// StepBicycleN applies StepBicycle n times with a fixed sub-step length,
// returning the full sequence of poses including the starting pose at
// index 0. This is how lattice-node micro-arcs (hybridastar) turn a
// steering command into a pose-sampled curve; reedshepp's densification
// calls StepBicycle directly.
func StepBicycleN(start Pose, steer, wheelbase, subStep float64, n int) []Pose {
	poses := make([]Pose, n+1)
	poses[0] = start
	cur := start
	for i := 1; i <= n; i++ {
		cur = StepBicycle(cur, steer, wheelbase, subStep)
		poses[i] = cur
	}
	return poses
}
