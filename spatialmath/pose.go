package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Pose is a planar position plus heading: (x, y, phi). Phi is always kept
// normalized to (-pi, pi] by NewPose and by every method that derives a new
// Pose from an existing one.
type Pose struct {
	X, Y float64
	Phi  float64
}

// NewPose constructs a Pose, normalizing phi into (-pi, pi].
func NewPose(x, y, phi float64) Pose {
	return Pose{X: x, Y: y, Phi: NormalizeAngle(phi)}
}

// Point returns the pose's planar position as an r3.Vector with Z=0, the
// representation used at the boundary with teacher-style geometry code and
// in test fixtures.
func (p Pose) Point() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: 0}
}

// String implements fmt.Stringer.
func (p Pose) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Phi)
}

// AlmostEqual reports whether p and q differ by less than eps in position
// and heading.
func (p Pose) AlmostEqual(q Pose, eps float64) bool {
	return math.Abs(p.X-q.X) < eps && math.Abs(p.Y-q.Y) < eps && math.Abs(AngleDiff(p.Phi, q.Phi)) < eps
}

// Bounds is an axis-aligned rectangular workspace.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether (x, y) lies within the bounds, inclusive.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Width and Height are the bounds' extents along each axis.
func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Segment is a directed line segment, the unit obstacles are represented in.
type Segment struct {
	A, B r3.Vector
}

// NewSegment constructs a Segment from two points in the XY plane.
func NewSegment(ax, ay, bx, by float64) Segment {
	return Segment{A: r3.Vector{X: ax, Y: ay}, B: r3.Vector{X: bx, Y: by}}
}

// PolygonEdges turns an ordered vertex list into its consecutive-vertex
// edge segments (i, i+1). Closure is the caller's responsibility; this
// only connects consecutive pairs.
func PolygonEdges(vertices []r3.Vector) []Segment {
	if len(vertices) < 2 {
		return nil
	}
	edges := make([]Segment, 0, len(vertices)-1)
	for i := 0; i < len(vertices)-1; i++ {
		edges = append(edges, Segment{A: vertices[i], B: vertices[i+1]})
	}
	return edges
}
