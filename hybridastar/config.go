package hybridastar

import (
	"math"

	"github.com/pkg/errors"
)

// Default configuration values: untyped consts consumed by
// NewDefaultConfig.
const (
	defaultNextNodeNum     = 10
	defaultStepSize        = 0.5
	defaultXYGridResolution = 1.0
	defaultPhiBins         = 72

	defaultWheelBase     = 2.8
	defaultMaxSteerAngle = 0.6
	defaultSteerRatio    = 1.0

	defaultVehicleLength     = 4.7
	defaultVehicleWidth      = 2.0
	defaultRearAxleToCenter  = 1.4

	defaultTrajForwardPenalty     = 1.0
	defaultTrajBackPenalty        = 1.5
	defaultTrajGearSwitchPenalty  = 10.0
	defaultTrajSteerPenalty       = 0.5
	defaultTrajSteerChangePenalty = 0.2

	defaultDeltaT                = 0.2
	defaultUseSCurveSpeedSmooth  = false
	defaultLongitudinalJerkBound = 4.0

	defaultSWeight        = 1.0
	defaultVelocityWeight = 1.0
	defaultAccWeight      = 1.0
	defaultJerkWeight     = 1.0
	defaultRefWeight      = 1.0
)

// SCurveWeights holds the piecewise-jerk QP's five objective-term
// weights: position, velocity, acceleration, jerk, and reference
// deviation.
type SCurveWeights struct {
	S        float64
	Velocity float64
	Acc      float64
	Jerk     float64
	Ref      float64
}

// Config is the immutable set of planner parameters, held for the
// lifetime of a Planner and never mutated by Plan: one struct, one
// constructor, named consts for every default.
type Config struct {
	// NextNodeNum is the branching factor per expansion; must be even and >= 2.
	NextNodeNum int
	// StepSize is the arc length of one bicycle-model integration sub-step.
	StepSize float64
	// XYGridResolution is the lattice cell side r_xy.
	XYGridResolution float64
	// PhiBins is the number of angular buckets over (-pi, pi] used by the
	// lattice index.
	PhiBins int

	// WheelBase, MaxSteerAngle, and SteerRatio describe the vehicle's
	// steering geometry. MaxSteerAngle is the steering-wheel-level bound;
	// WheelSteerAngleBound divides it by SteerRatio to get the angle the
	// front wheel itself actually sweeps, which is what the bicycle model
	// and turning radius are derived from.
	WheelBase     float64
	MaxSteerAngle float64
	SteerRatio    float64

	VehicleLength    float64
	VehicleWidth     float64
	RearAxleToCenter float64

	TrajForwardPenalty     float64
	TrajBackPenalty        float64
	TrajGearSwitchPenalty  float64
	TrajSteerPenalty       float64
	TrajSteerChangePenalty float64

	DeltaT               float64
	UseSCurveSpeedSmooth bool
	LongitudinalJerkBound float64
	SCurve               SCurveWeights
}

// NewDefaultConfig returns a Config populated with the defaults above.
func NewDefaultConfig() *Config {
	return &Config{
		NextNodeNum:      defaultNextNodeNum,
		StepSize:         defaultStepSize,
		XYGridResolution: defaultXYGridResolution,
		PhiBins:          defaultPhiBins,

		WheelBase:     defaultWheelBase,
		MaxSteerAngle: defaultMaxSteerAngle,
		SteerRatio:    defaultSteerRatio,

		VehicleLength:    defaultVehicleLength,
		VehicleWidth:     defaultVehicleWidth,
		RearAxleToCenter: defaultRearAxleToCenter,

		TrajForwardPenalty:     defaultTrajForwardPenalty,
		TrajBackPenalty:        defaultTrajBackPenalty,
		TrajGearSwitchPenalty:  defaultTrajGearSwitchPenalty,
		TrajSteerPenalty:       defaultTrajSteerPenalty,
		TrajSteerChangePenalty: defaultTrajSteerChangePenalty,

		DeltaT:                defaultDeltaT,
		UseSCurveSpeedSmooth:  defaultUseSCurveSpeedSmooth,
		LongitudinalJerkBound: defaultLongitudinalJerkBound,
		SCurve: SCurveWeights{
			S:        defaultSWeight,
			Velocity: defaultVelocityWeight,
			Acc:      defaultAccWeight,
			Jerk:     defaultJerkWeight,
			Ref:      defaultRefWeight,
		},
	}
}

// WheelSteerAngleBound returns MaxSteerAngle / SteerRatio, the wheel-level
// steering bound used everywhere a steering angle drives the bicycle model.
func (c *Config) WheelSteerAngleBound() float64 {
	return c.MaxSteerAngle / c.SteerRatio
}

// TurningRadius returns L / tan(delta_max), the radius the Reeds-Shepp
// generator is built around.
func (c *Config) TurningRadius() float64 {
	return c.WheelBase / math.Tan(c.WheelSteerAngleBound())
}

// Validate reports the configuration's documented preconditions: the
// original source asserts the branching factor is even and at least 2
// before planning, and this is reproduced here rather than left to panic
// deep inside successor generation.
func (c *Config) Validate() error {
	if c.NextNodeNum < 2 || c.NextNodeNum%2 != 0 {
		return errors.Errorf("hybridastar: NextNodeNum must be even and >= 2, got %d", c.NextNodeNum)
	}
	if c.StepSize <= 0 {
		return errors.New("hybridastar: StepSize must be positive")
	}
	if c.XYGridResolution <= 0 {
		return errors.New("hybridastar: XYGridResolution must be positive")
	}
	if c.PhiBins < 1 {
		return errors.New("hybridastar: PhiBins must be positive")
	}
	if c.WheelBase <= 0 || c.MaxSteerAngle <= 0 {
		return errors.New("hybridastar: WheelBase and MaxSteerAngle must be positive")
	}
	if c.SteerRatio <= 0 {
		return errors.New("hybridastar: SteerRatio must be positive")
	}
	return nil
}
