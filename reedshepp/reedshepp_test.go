package reedshepp

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/popov1212/apollo/spatialmath"
)

func TestShortestRSPStraightLine(t *testing.T) {
	from := spatialmath.NewPose(0, 0, 0)
	to := spatialmath.NewPose(5, 0, 0)
	path, err := ShortestRSP(from, to, 3.0, 0.1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path.Length, test.ShouldAlmostEqual, 5.0, 1e-6)

	n := len(path.X)
	test.That(t, path.X[0], test.ShouldAlmostEqual, 0.0)
	test.That(t, path.Y[0], test.ShouldAlmostEqual, 0.0)
	test.That(t, path.X[n-1], test.ShouldAlmostEqual, 5.0)
	test.That(t, path.Y[n-1], test.ShouldAlmostEqual, 0.0)
	test.That(t, path.Phi[n-1], test.ShouldAlmostEqual, 0.0)
}

func TestShortestRSPMonotoneWithinSegment(t *testing.T) {
	from := spatialmath.NewPose(0, 0, 0)
	to := spatialmath.NewPose(5, 5, math.Pi/2)
	path, err := ShortestRSP(from, to, 2.0, 0.05)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path.Length, test.ShouldBeGreaterThan, 0.0)
	test.That(t, len(path.X), test.ShouldBeGreaterThan, 1)
}

func TestShortestRSPSymmetricLength(t *testing.T) {
	from := spatialmath.NewPose(1, -2, 0.3)
	to := spatialmath.NewPose(8, 4, -1.1)

	forward, err := ShortestRSP(from, to, 2.5, 0.1)
	test.That(t, err, test.ShouldBeNil)

	backward, err := ShortestRSP(to, from, 2.5, 0.1)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, forward.Length, test.ShouldAlmostEqual, backward.Length, 1e-6)
}

func TestShortestRSPGearBoundariesAreSegmentBoundaries(t *testing.T) {
	from := spatialmath.NewPose(0, 0, 0)
	to := spatialmath.NewPose(0, -4, 0)
	path, err := ShortestRSP(from, to, 1.5, 0.1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path.Gears), test.ShouldEqual, len(path.X))
}
