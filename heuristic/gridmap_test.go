package heuristic

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/popov1212/apollo/spatialmath"
)

func TestCheckDpMapOpenField(t *testing.T) {
	bounds := spatialmath.Bounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}
	m := GenerateDpMap(0, 0, bounds, nil, 0.5)

	test.That(t, m.CheckDpMap(0, 0), test.ShouldAlmostEqual, 0.0, 0.5)
	test.That(t, m.CheckDpMap(5, 0), test.ShouldBeLessThanOrEqualTo, 5.0+1.0)
	test.That(t, m.CheckDpMap(100, 100), test.ShouldBeGreaterThan, 1e9) // out of bounds -> unreached
}

func TestCheckDpMapAdmissible(t *testing.T) {
	bounds := spatialmath.Bounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}
	m := GenerateDpMap(0, 0, bounds, nil, 0.25)

	for _, pt := range [][2]float64{{3, 4}, {-6, 2}, {8, -8}} {
		trueDist := math.Hypot(pt[0], pt[1])
		test.That(t, m.CheckDpMap(pt[0], pt[1]), test.ShouldBeLessThanOrEqualTo, trueDist+1.0)
	}
}

func TestCheckDpMapWallBlocksDirectPath(t *testing.T) {
	bounds := spatialmath.Bounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}
	wall := spatialmath.NewSegment(-10, 0, 9, 0) // near-full-width wall, small gap at x=9..10
	m := GenerateDpMap(5, 5, bounds, []spatialmath.Segment{wall}, 0.5)

	belowWall := m.CheckDpMap(0, -5)
	test.That(t, belowWall, test.ShouldBeGreaterThan, 10.0) // forced around the wall, not straight line (~11.2)
}

func TestCheckDpMapGoalInObstacleReturnsUnreached(t *testing.T) {
	bounds := spatialmath.Bounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}
	box := []spatialmath.Segment{
		spatialmath.NewSegment(-1, -1, 1, -1),
		spatialmath.NewSegment(1, -1, 1, 1),
		spatialmath.NewSegment(1, 1, -1, 1),
		spatialmath.NewSegment(-1, 1, -1, -1),
	}
	m := GenerateDpMap(0, 0, bounds, box, 0.5)
	test.That(t, m.CheckDpMap(5, 5), test.ShouldBeGreaterThan, 1e9)
}
