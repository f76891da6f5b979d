package hybridastar

import "github.com/pkg/errors"

// Kind identifies which of the documented failure modes a PlanError
// represents, so callers can branch on it with errors.As instead of string
// matching.
type Kind int

// The failure kinds a Plan call can report. None are retried by the core;
// retry and fallback policy belongs to the caller.
const (
	// StartInCollision means the start pose fails the validity check.
	StartInCollision Kind = iota
	// GoalInCollision means the goal pose fails the validity check.
	GoalInCollision
	// OpenSetExhausted means the open set emptied before reaching the goal.
	OpenSetExhausted
	// SpeedProfileDegenerate means the reconstructed path had fewer than
	// two poses, too short to lift to a timed trajectory.
	SpeedProfileDegenerate
	// QpInfeasible means the piecewise-jerk QP solver failed to converge.
	QpInfeasible
	// SizeInvariantViolated means a post-condition on the result's array
	// lengths failed; this indicates a bug in the core, not bad input.
	SizeInvariantViolated
)

func (k Kind) String() string {
	switch k {
	case StartInCollision:
		return "StartInCollision"
	case GoalInCollision:
		return "GoalInCollision"
	case OpenSetExhausted:
		return "OpenSetExhausted"
	case SpeedProfileDegenerate:
		return "SpeedProfileDegenerate"
	case QpInfeasible:
		return "QpInfeasible"
	case SizeInvariantViolated:
		return "SizeInvariantViolated"
	default:
		return "Unknown"
	}
}

// PlanError pairs one of the Kind failure modes with a human-readable
// message; newPlanError returns it wrapped with a stack trace.
type PlanError struct {
	Kind Kind
	msg  string
}

func (e *PlanError) Error() string {
	return e.Kind.String() + ": " + e.msg
}

func newPlanError(kind Kind, msg string) error {
	return errors.WithStack(&PlanError{Kind: kind, msg: msg})
}

// RspInfeasible is not a PlanError: it is recovered locally by the search
// loop (an analytic-expansion attempt simply fails and the loop
// continues), so it never escapes Plan. It is exported only so
// reedshepp.ErrInfeasible callers elsewhere in this module can recognize it
// by equality if they choose to log it.
var RspInfeasible = errors.New("hybridastar: analytic expansion rejected (rsp infeasible or in collision)")
