package hybridastar

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/popov1212/apollo/logging"
	"github.com/popov1212/apollo/spatialmath"
)

func straightShotBounds() spatialmath.Bounds {
	return spatialmath.Bounds{MinX: -1, MaxX: 10, MinY: -5, MaxY: 5}
}

func TestPlanStraightShotSucceeds(t *testing.T) {
	planner := NewPlanner(NewDefaultConfig(), logging.NewTestLogger(t))
	start := spatialmath.NewPose(0, 0, 0)
	goal := spatialmath.NewPose(5, 0, 0)

	result, err := planner.Plan(start, goal, straightShotBounds(), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldNotBeNil)

	n := result.N()
	test.That(t, result.X[0], test.ShouldAlmostEqual, 0.0)
	test.That(t, result.Y[0], test.ShouldAlmostEqual, 0.0)
	test.That(t, result.X[n-1], test.ShouldAlmostEqual, 5.0)
	test.That(t, result.Y[n-1], test.ShouldAlmostEqual, 0.0)
	test.That(t, result.Phi[n-1], test.ShouldAlmostEqual, 0.0)
	test.That(t, result.V[n-1], test.ShouldAlmostEqual, 0.0)

	for i := 1; i < n; i++ {
		test.That(t, result.X[i], test.ShouldBeGreaterThanOrEqualTo, result.X[i-1]-1e-6)
	}
}

func TestPlanResultSizeInvariants(t *testing.T) {
	planner := NewPlanner(NewDefaultConfig(), logging.NewTestLogger(t))
	result, err := planner.Plan(
		spatialmath.NewPose(0, 0, 0),
		spatialmath.NewPose(5, 0, 0),
		straightShotBounds(),
		nil,
	)
	test.That(t, err, test.ShouldBeNil)

	n := result.N()
	test.That(t, len(result.Y), test.ShouldEqual, n)
	test.That(t, len(result.Phi), test.ShouldEqual, n)
	test.That(t, len(result.V), test.ShouldEqual, n)
	test.That(t, len(result.A), test.ShouldEqual, n-1)
	test.That(t, len(result.Steer), test.ShouldEqual, n-1)
}

func TestPlanGoalInCollisionFails(t *testing.T) {
	planner := NewPlanner(NewDefaultConfig(), logging.NewTestLogger(t))
	start := spatialmath.NewPose(0, 0, 0)
	goal := spatialmath.NewPose(0.2, 0, 0)
	bounds := spatialmath.Bounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}

	box := []r3.Vector{
		{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}, {X: -2, Y: -2},
	}

	_, err := planner.Plan(start, goal, bounds, [][]r3.Vector{box})
	test.That(t, err, test.ShouldNotBeNil)

	var perr *PlanError
	test.That(t, errors.As(err, &perr), test.ShouldBeTrue)
	test.That(t, perr.Kind, test.ShouldEqual, GoalInCollision)
}

func TestPlanStartInCollisionFails(t *testing.T) {
	planner := NewPlanner(NewDefaultConfig(), logging.NewTestLogger(t))
	start := spatialmath.NewPose(0, 0, 0)
	goal := spatialmath.NewPose(8, 8, 0)
	bounds := spatialmath.Bounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}

	box := []r3.Vector{
		{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}, {X: -2, Y: -2},
	}

	_, err := planner.Plan(start, goal, bounds, [][]r3.Vector{box})
	test.That(t, err, test.ShouldNotBeNil)

	var perr *PlanError
	test.That(t, errors.As(err, &perr), test.ShouldBeTrue)
	test.That(t, perr.Kind, test.ShouldEqual, StartInCollision)
}

func TestSteerAngleSymmetricAroundZero(t *testing.T) {
	maxSteer := 0.6
	half := 5
	var steers []float64
	for i := 0; i < half; i++ {
		steers = append(steers, steerAngle(i, half, maxSteer))
	}
	test.That(t, steers[0], test.ShouldAlmostEqual, -maxSteer)
	test.That(t, steers[half-1], test.ShouldAlmostEqual, maxSteer)
	test.That(t, math.Abs(steers[0]+steers[half-1]), test.ShouldBeLessThan, 1e-9)
}

func TestSteerAngleDegenerateHalfIsZero(t *testing.T) {
	test.That(t, steerAngle(0, 1, 0.6), test.ShouldAlmostEqual, 0.0)
}

func TestPlanReverseParkingReachesGoalExactly(t *testing.T) {
	planner := NewPlanner(NewDefaultConfig(), logging.NewTestLogger(t))
	start := spatialmath.NewPose(0, 0, 0)
	goal := spatialmath.NewPose(0, -2, 0)
	bounds := spatialmath.Bounds{MinX: -5, MaxX: 5, MinY: -5, MaxY: 5}

	result, err := planner.Plan(start, goal, bounds, nil)
	test.That(t, err, test.ShouldBeNil)

	n := result.N()
	test.That(t, result.X[n-1], test.ShouldAlmostEqual, 0.0)
	test.That(t, result.Y[n-1], test.ShouldAlmostEqual, -2.0)
	test.That(t, result.Phi[n-1], test.ShouldAlmostEqual, 0.0)
}

func TestPlanCorridorStaysWithinOpening(t *testing.T) {
	// The corridor is 2 units wide; the default 2.0-wide body would touch
	// both walls, so a narrower vehicle is used.
	cfg := NewDefaultConfig()
	cfg.VehicleWidth = 1.0
	planner := NewPlanner(cfg, logging.NewTestLogger(t))
	start := spatialmath.NewPose(0, 0, 0)
	goal := spatialmath.NewPose(10, 0, 0)
	bounds := spatialmath.Bounds{MinX: -10, MaxX: 20, MinY: -10, MaxY: 10}

	// Two horizontal walls at y=+-1 with a gap around x=4..6.
	leftWall := []r3.Vector{{X: -10, Y: 1}, {X: 4, Y: 1}}
	rightWall := []r3.Vector{{X: 6, Y: 1}, {X: 20, Y: 1}}
	leftWallBelow := []r3.Vector{{X: -10, Y: -1}, {X: 4, Y: -1}}
	rightWallBelow := []r3.Vector{{X: 6, Y: -1}, {X: 20, Y: -1}}

	result, err := planner.Plan(start, goal, bounds, [][]r3.Vector{leftWall, rightWall, leftWallBelow, rightWallBelow})
	test.That(t, err, test.ShouldBeNil)

	for i := 0; i < result.N(); i++ {
		test.That(t, math.Abs(result.Y[i]), test.ShouldBeLessThan, 1.0)
	}
}
