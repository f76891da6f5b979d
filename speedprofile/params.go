// Package speedprofile lifts a reconstructed spatial path (a pose
// sequence) to a time-parameterized trajectory: longitudinal velocity,
// acceleration, and steering command at each sample. Two modes are
// supported, selected by Params.UseQP: plain finite-differencing of the
// path, or a piecewise-jerk quadratic program over the longitudinal
// position that smooths the finite-difference profile subject to box
// bounds on position, velocity, acceleration and jerk.
package speedprofile

// Weights are the piecewise-jerk QP's five objective-term weights:
// position, velocity, acceleration, jerk, and deviation from the
// finite-difference reference profile.
type Weights struct {
	S        float64
	Velocity float64
	Acc      float64
	Jerk     float64
	Ref      float64
}

// Params configures a Generate call. It mirrors the Configuration
// sub-section of the external-interfaces spec: the fields a caller sets
// once on a long-lived planner and that flow unchanged into each Plan
// invocation.
type Params struct {
	DeltaT   float64
	WheelBase float64
	StepSize float64

	UseQP                 bool
	LongitudinalJerkBound float64
	Weights               Weights
}
