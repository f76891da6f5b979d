package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNormalizeAngle(t *testing.T) {
	test.That(t, NormalizeAngle(0), test.ShouldAlmostEqual, 0)
	test.That(t, NormalizeAngle(math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(-math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(-3*math.Pi/2), test.ShouldAlmostEqual, math.Pi/2)
}

func TestOBBIntersectsSegment(t *testing.T) {
	box := OBB{Center: r3.Vector{X: 0, Y: 0}, Phi: 0, HalfLength: 1, HalfWidth: 0.5}

	test.That(t, box.IntersectsSegment(NewSegment(-2, 0, 2, 0)), test.ShouldBeTrue)
	test.That(t, box.IntersectsSegment(NewSegment(-2, 2, 2, 2)), test.ShouldBeFalse)
	test.That(t, box.IntersectsSegment(NewSegment(0.9, -2, 0.9, 2)), test.ShouldBeTrue)
	test.That(t, box.IntersectsSegment(NewSegment(1.1, -2, 1.1, 2)), test.ShouldBeFalse)
}

func TestOBBRotated(t *testing.T) {
	box := OBB{Center: r3.Vector{X: 0, Y: 0}, Phi: math.Pi / 2, HalfLength: 1, HalfWidth: 0.5}
	// rotated 90deg: long axis now along y. A segment at x=0.9 should now miss,
	// but one at y=0.9 should hit.
	test.That(t, box.IntersectsSegment(NewSegment(0.9, -2, 0.9, 2)), test.ShouldBeFalse)
	test.That(t, box.IntersectsSegment(NewSegment(-2, 0.9, 2, 0.9)), test.ShouldBeTrue)
}

func TestSegmentIntersectsBox(t *testing.T) {
	test.That(t, SegmentIntersectsBox(NewSegment(-1, -1, 1, 1), -0.5, -0.5, 0.5, 0.5), test.ShouldBeTrue)
	test.That(t, SegmentIntersectsBox(NewSegment(5, 5, 6, 6), -0.5, -0.5, 0.5, 0.5), test.ShouldBeFalse)
}
