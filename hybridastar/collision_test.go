package hybridastar

import (
	"testing"

	"go.viam.com/test"

	"github.com/popov1212/apollo/spatialmath"
)

func TestValidityCheckOpenFieldPasses(t *testing.T) {
	cfg := NewDefaultConfig()
	bounds := testBounds()
	a := newArena()

	h := a.new([]float64{0, 1, 2}, []float64{0, 0, 0}, []float64{0, 0, 0}, bounds, cfg)
	test.That(t, ValidityCheck(a.get(h), bounds, nil, cfg), test.ShouldBeTrue)
}

func TestValidityCheckOutOfBoundsFails(t *testing.T) {
	cfg := NewDefaultConfig()
	bounds := testBounds()
	a := newArena()

	h := a.new([]float64{0, 100}, []float64{0, 0}, []float64{0, 0}, bounds, cfg)
	test.That(t, ValidityCheck(a.get(h), bounds, nil, cfg), test.ShouldBeFalse)
}

func TestValidityCheckSkipsParentSharedFirstPose(t *testing.T) {
	cfg := NewDefaultConfig()
	bounds := spatialmath.Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	a := newArena()

	// First pose is deliberately out of bounds: it represents the parent's
	// already-validated final pose and must be skipped, not rechecked.
	h := a.new([]float64{100, 0}, []float64{0, 0}, []float64{0, 0}, bounds, cfg)
	test.That(t, ValidityCheck(a.get(h), bounds, nil, cfg), test.ShouldBeTrue)
}

func TestValidityCheckSinglePoseNodeChecksItself(t *testing.T) {
	cfg := NewDefaultConfig()
	bounds := spatialmath.Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	a := newArena()

	h := a.new([]float64{100}, []float64{0}, []float64{0}, bounds, cfg)
	test.That(t, ValidityCheck(a.get(h), bounds, nil, cfg), test.ShouldBeFalse)
}

func TestValidityCheckDetectsObstacleOverlap(t *testing.T) {
	cfg := NewDefaultConfig()
	bounds := testBounds()
	a := newArena()

	// A wall directly ahead of the swept pose's vehicle footprint.
	wall := []spatialmath.Segment{spatialmath.NewSegment(3, -5, 3, 5)}

	h := a.new([]float64{0, 3}, []float64{0, 0}, []float64{0, 0}, bounds, cfg)
	test.That(t, ValidityCheck(a.get(h), bounds, wall, cfg), test.ShouldBeFalse)
}
