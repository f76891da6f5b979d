package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// OBB is a 2-D oriented bounding box: a rectangle centered at Center,
// rotated by Phi, with half-extents HalfLength along its local x-axis and
// HalfWidth along its local y-axis. Vehicles are represented as an OBB
// whose center is offset from the pose's rear axle along the local x-axis
// (the rearAxleToCenter argument of NewVehicleOBB).
type OBB struct {
	Center              r3.Vector
	Phi                 float64
	HalfLength, HalfWidth float64
}

// NewVehicleOBB builds the oriented bounding box for a vehicle whose
// rear-axle pose is p, with the given body length/width and the offset from
// the rear axle to the geometric center of the body along the heading axis.
func NewVehicleOBB(p Pose, length, width, rearAxleToCenter float64) OBB {
	axis := r3.Vector{X: math.Cos(p.Phi), Y: math.Sin(p.Phi)}
	center := r3.Vector{
		X: p.X + rearAxleToCenter*axis.X,
		Y: p.Y + rearAxleToCenter*axis.Y,
	}
	return OBB{Center: center, Phi: p.Phi, HalfLength: length / 2, HalfWidth: width / 2}
}

// axes returns the box's local unit axes (x, y) in world coordinates.
func (b OBB) axes() (ux, uy r3.Vector) {
	c, s := math.Cos(b.Phi), math.Sin(b.Phi)
	return r3.Vector{X: c, Y: s}, r3.Vector{X: -s, Y: c}
}

// IntersectsSegment reports whether the box overlaps the segment, using the
// separating axis theorem: a box and a segment overlap iff no separation
// exists along either of the box's two face normals or the segment's own
// edge normal (Ericson, Real-Time Collision Detection, ch. 4.4, specialized
// to 2-D and to a degenerate one-edge "polygon").
func (b OBB) IntersectsSegment(seg Segment) bool {
	ux, uy := b.axes()
	segDir := r3.Vector{X: seg.B.X - seg.A.X, Y: seg.B.Y - seg.A.Y}
	segNormal := r3.Vector{X: -segDir.Y, Y: segDir.X}

	axesToTest := [3]r3.Vector{ux, uy, segNormal}
	for _, axis := range axesToTest {
		norm := math.Hypot(axis.X, axis.Y)
		if norm < 1e-12 {
			continue // degenerate zero-length segment axis, skip
		}
		axis = r3.Vector{X: axis.X / norm, Y: axis.Y / norm}
		if separatedAlongAxis(b, seg, axis) {
			return false
		}
	}
	return true
}

// separatedAlongAxis reports whether the box's projection and the segment's
// projection onto axis do not overlap.
func separatedAlongAxis(b OBB, seg Segment, axis r3.Vector) bool {
	ux, uy := b.axes()
	centerProj := dot2(b.Center, axis)
	radius := b.HalfLength*math.Abs(dot2(ux, axis)) + b.HalfWidth*math.Abs(dot2(uy, axis))
	boxMin, boxMax := centerProj-radius, centerProj+radius

	aProj, bProj := dot2(seg.A, axis), dot2(seg.B, axis)
	segMin, segMax := math.Min(aProj, bProj), math.Max(aProj, bProj)

	return boxMax < segMin || segMax < boxMin
}

func dot2(v, axis r3.Vector) float64 {
	return v.X*axis.X + v.Y*axis.Y
}

// SegmentIntersectsBox is a cheap axis-aligned overlap test between a
// segment and an axis-aligned box, used by the grid heuristic where cells
// are never rotated so the full OBB machinery above would be wasted work.
func SegmentIntersectsBox(seg Segment, minX, minY, maxX, maxY float64) bool {
	// Liang-Barsky clipping: walk the segment's parametric line against the
	// box's four half-plane constraints, narrowing [tMin, tMax].
	dx, dy := seg.B.X-seg.A.X, seg.B.Y-seg.A.Y
	tMin, tMax := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > tMax {
				return false
			}
			if t > tMin {
				tMin = t
			}
		} else {
			if t < tMin {
				return false
			}
			if t < tMax {
				tMax = t
			}
		}
		return true
	}

	if !clip(-dx, seg.A.X-minX) || !clip(dx, maxX-seg.A.X) {
		return false
	}
	if !clip(-dy, seg.A.Y-minY) || !clip(dy, maxY-seg.A.Y) {
		return false
	}
	return tMin <= tMax
}
