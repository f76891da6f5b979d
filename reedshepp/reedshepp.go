// Package reedshepp computes shortest Reeds-Shepp paths: the minimum-length
// curve joining two SE(2) poses for a car of bounded turning radius that may
// move forward or backward, built from straight and minimum-radius-arc
// segments (Reeds, J.A. and Shepp, L.A., "Optimal paths for a car that goes
// both forwards and backwards", Pacific J. Math, 1990).
//
// The word taxonomy (which segment-type/gear combinations are geometrically
// realizable between two poses) is the published result; this package
// implements the curve-straight-curve (CSC), curve-curve-curve (CCC), and
// curve-curve-curve-curve (CCCC) families, each expanded to its
// forward/backward and left/right mirrors via the standard timeflip and
// reflection symmetries — 24 of the 48 canonical words. The remaining two
// families, CCSC and CCSCC, are not implemented (see DESIGN.md); a caller
// that gets ErrInfeasible for a pose pair whose shortest connection
// requires one of those is expected to fall back to lattice search.
package reedshepp

import (
	"math"

	"github.com/pkg/errors"

	"github.com/popov1212/apollo/spatialmath"
)

// ErrInfeasible is returned when no candidate word in the implemented
// families connects the two poses. This should be rare for finite poses
// and R>0 with the implemented families, but a caller must treat it as
// ordinary infeasibility, not a bug.
var ErrInfeasible = errors.New("reedshepp: no feasible path between poses")

// Gear is the direction of travel along a Path sample.
type Gear int

// Forward and Backward are the two possible Gears.
const (
	Forward Gear = iota
	Backward
)

// Path is a densified Reeds-Shepp path: parallel pose/gear samples plus the
// total arc length actually traveled (in the same units as the poses, not
// normalized by turning radius).
type Path struct {
	X, Y, Phi []float64
	Gears     []Gear
	Length    float64
}

// segment is one curve or straight run of a candidate word, in the
// normalized frame (turning radius 1): Type is 'L', 'S', or 'R'; Value is
// signed (negative means the segment is driven in reverse); for 'L'/'R' it
// is a swept angle in radians, for 'S' a normalized distance.
type segment struct {
	Type  byte
	Value float64
}

type word struct {
	segments []segment
}

func (w word) normalizedLength() float64 {
	total := 0.0
	for _, s := range w.segments {
		total += math.Abs(s.Value)
	}
	return total
}

// ShortestRSP returns the shortest feasible Reeds-Shepp path between from
// and to for a vehicle with turning radius radius, densified at stepSize.
func ShortestRSP(from, to spatialmath.Pose, radius, stepSize float64) (*Path, error) {
	if radius <= 0 || stepSize <= 0 {
		return nil, errors.New("reedshepp: radius and stepSize must be positive")
	}

	dx, dy := to.X-from.X, to.Y-from.Y
	c, s := math.Cos(from.Phi), math.Sin(from.Phi)
	// Rotate the goal into the start's frame, then scale by 1/radius so all
	// candidate-word formulas below can assume unit turning radius.
	localX := (c*dx + s*dy) / radius
	localY := (-s*dx + c*dy) / radius
	localPhi := spatialmath.NormalizeAngle(to.Phi - from.Phi)

	var candidates []word
	candidates = appendCSC(candidates, localX, localY, localPhi)
	candidates = appendCCC(candidates, localX, localY, localPhi)
	candidates = appendCCCC(candidates, localX, localY, localPhi)

	if len(candidates) == 0 {
		return nil, ErrInfeasible
	}

	best := candidates[0]
	for _, w := range candidates[1:] {
		if w.normalizedLength() < best.normalizedLength() {
			best = w
		}
	}

	return densify(from, to, best, radius, stepSize), nil
}

// mod2piSigned normalizes theta into (-pi, pi], matching the sign
// convention the base formulas below expect from spatialmath.NormalizeAngle.
func mod2piSigned(theta float64) float64 {
	return spatialmath.NormalizeAngle(theta)
}

func polar(x, y float64) (r, theta float64) {
	return math.Hypot(x, y), math.Atan2(y, x)
}

// baseLSL solves the left-straight-left word in the normalized frame.
func baseLSL(x, y, phi float64) (ok bool, t, u, v float64) {
	u, t = polar(x-math.Sin(phi), y-1.0+math.Cos(phi))
	t = mod2piSigned(t)
	if t < 0 {
		return false, 0, 0, 0
	}
	v = mod2piSigned(phi - t)
	if v < 0 {
		return false, 0, 0, 0
	}
	return true, t, u, v
}

// baseLSR solves the left-straight-right word in the normalized frame.
func baseLSR(x, y, phi float64) (ok bool, t, u, v float64) {
	u1sq := sq(x+math.Sin(phi)) + sq(y-1.0-math.Cos(phi))
	if u1sq < 4.0 {
		return false, 0, 0, 0
	}
	_, t1 := polar(x+math.Sin(phi), y-1.0-math.Cos(phi))
	u = math.Sqrt(u1sq - 4.0)
	theta := math.Atan2(2.0, u)
	t = mod2piSigned(t1 + theta)
	if t < 0 {
		return false, 0, 0, 0
	}
	v = mod2piSigned(t - phi)
	if v < 0 {
		return false, 0, 0, 0
	}
	return true, t, u, v
}

// baseLRL solves the left-right-left word in the normalized frame.
func baseLRL(x, y, phi float64) (ok bool, t, u, v float64) {
	u1, theta := polar(x-math.Sin(phi), y-1.0+math.Cos(phi))
	if u1 > 4.0 {
		return false, 0, 0, 0
	}
	u = -2.0 * math.Asin(0.25*u1)
	t = mod2piSigned(theta + 0.5*u + math.Pi)
	v = mod2piSigned(phi - t + u)
	if u > 0 {
		return false, 0, 0, 0
	}
	return true, t, u, v
}

// baseLRLR1 solves the first left-right-left-right word in the normalized
// frame: the middle right/left pair is a single tangent circle of shared
// magnitude u, driven in opposite turn senses, so the word reduces to the
// same three free parameters as the CCC words despite having four
// segments.
func baseLRLR1(x, y, phi float64) (ok bool, t, u, v float64) {
	xi := x + math.Sin(phi)
	eta := y - 1.0 - math.Cos(phi)
	rho := 0.25 * (2.0 + math.Hypot(xi, eta))
	if rho > 1.0 {
		return false, 0, 0, 0
	}
	u = math.Acos(rho)
	t = mod2piSigned(math.Atan2(eta, xi) + 0.5*u + math.Pi)
	if t < 0 {
		return false, 0, 0, 0
	}
	v = mod2piSigned(t - phi)
	if v < 0 {
		return false, 0, 0, 0
	}
	return true, t, u, v
}

// baseLRLR2 solves the second left-right-left-right word, the other
// tangency branch of the same four-segment family as baseLRLR1.
func baseLRLR2(x, y, phi float64) (ok bool, t, u, v float64) {
	xi := x + math.Sin(phi)
	eta := y - 1.0 - math.Cos(phi)
	rho := (20.0 - sq(xi) - sq(eta)) / 16.0
	if rho < 0 || rho > 1.0 {
		return false, 0, 0, 0
	}
	u = -math.Acos(rho)
	if u < -0.5*math.Pi {
		return false, 0, 0, 0
	}
	t = mod2piSigned(math.Atan2(eta, xi) + 0.5*u + math.Pi)
	if t < 0 {
		return false, 0, 0, 0
	}
	v = mod2piSigned(t - phi - u)
	if v < 0 {
		return false, 0, 0, 0
	}
	return true, t, u, v
}

func sq(v float64) float64 { return v * v }

// appendCSC appends all CSC-family candidates (LSL, RSR, LSR, RSL) reachable
// via timeflip (time reversal) and reflection (y -> -y) of the two base
// formulas above.
func appendCSC(words []word, x, y, phi float64) []word {
	if ok, t, u, v := baseLSL(x, y, phi); ok {
		words = append(words, word{[]segment{{'L', t}, {'S', u}, {'L', v}}})
	}
	if ok, t, u, v := baseLSL(-x, y, -phi); ok { // timeflip
		words = append(words, word{[]segment{{'L', -t}, {'S', -u}, {'L', -v}}})
	}
	if ok, t, u, v := baseLSL(x, -y, -phi); ok { // reflect
		words = append(words, word{[]segment{{'R', t}, {'S', u}, {'R', v}}})
	}
	if ok, t, u, v := baseLSL(-x, -y, phi); ok { // timeflip+reflect
		words = append(words, word{[]segment{{'R', -t}, {'S', -u}, {'R', -v}}})
	}

	if ok, t, u, v := baseLSR(x, y, phi); ok {
		words = append(words, word{[]segment{{'L', t}, {'S', u}, {'R', v}}})
	}
	if ok, t, u, v := baseLSR(-x, y, -phi); ok {
		words = append(words, word{[]segment{{'L', -t}, {'S', -u}, {'R', -v}}})
	}
	if ok, t, u, v := baseLSR(x, -y, -phi); ok {
		words = append(words, word{[]segment{{'R', t}, {'S', u}, {'L', v}}})
	}
	if ok, t, u, v := baseLSR(-x, -y, phi); ok {
		words = append(words, word{[]segment{{'R', -t}, {'S', -u}, {'L', -v}}})
	}
	return words
}

// appendCCC appends all CCC-family candidates (LRL, RLR, and their backward
// mirrors) reachable from the base LRL formula.
func appendCCC(words []word, x, y, phi float64) []word {
	if ok, t, u, v := baseLRL(x, y, phi); ok {
		words = append(words, word{[]segment{{'L', t}, {'R', u}, {'L', v}}})
	}
	if ok, t, u, v := baseLRL(-x, y, -phi); ok {
		words = append(words, word{[]segment{{'L', -t}, {'R', -u}, {'L', -v}}})
	}
	if ok, t, u, v := baseLRL(x, -y, -phi); ok {
		words = append(words, word{[]segment{{'R', t}, {'L', u}, {'R', v}}})
	}
	if ok, t, u, v := baseLRL(-x, -y, phi); ok {
		words = append(words, word{[]segment{{'R', -t}, {'L', -u}, {'R', -v}}})
	}

	// Backward variants: reparametrize from the goal's perspective by
	// reflecting the query across the chord, which swaps which end the
	// "middle" reverse arc faces.
	xb := x*math.Cos(phi) + y*math.Sin(phi)
	yb := x*math.Sin(phi) - y*math.Cos(phi)
	if ok, t, u, v := baseLRL(xb, yb, phi); ok {
		words = append(words, word{[]segment{{'L', v}, {'R', u}, {'L', t}}})
	}
	if ok, t, u, v := baseLRL(-xb, yb, -phi); ok {
		words = append(words, word{[]segment{{'L', -v}, {'R', -u}, {'L', -t}}})
	}
	if ok, t, u, v := baseLRL(xb, -yb, -phi); ok {
		words = append(words, word{[]segment{{'R', v}, {'L', u}, {'R', t}}})
	}
	if ok, t, u, v := baseLRL(-xb, -yb, phi); ok {
		words = append(words, word{[]segment{{'R', -v}, {'L', -u}, {'R', -t}}})
	}
	return words
}

// appendCCCC appends the left-right-left-right family and its mirrors:
// four segments reduced to three free parameters because the middle two
// arcs share magnitude u, driven in opposite turn senses (and, for the
// second base formula, opposite gears). Unlike appendCCC, this family
// needs no separate backward (xb, yb) pass: both tangency branches
// already cover the forward and reversed orderings through u's sign.
func appendCCCC(words []word, x, y, phi float64) []word {
	for _, base := range []func(float64, float64, float64) (bool, float64, float64, float64){baseLRLR1, baseLRLR2} {
		if ok, t, u, v := base(x, y, phi); ok {
			words = append(words, word{[]segment{{'L', t}, {'R', u}, {'L', -u}, {'R', v}}})
		}
		if ok, t, u, v := base(-x, y, -phi); ok { // timeflip
			words = append(words, word{[]segment{{'L', -t}, {'R', -u}, {'L', u}, {'R', -v}}})
		}
		if ok, t, u, v := base(x, -y, -phi); ok { // reflect
			words = append(words, word{[]segment{{'R', t}, {'L', u}, {'R', -u}, {'L', v}}})
		}
		if ok, t, u, v := base(-x, -y, phi); ok { // timeflip+reflect
			words = append(words, word{[]segment{{'R', -t}, {'L', -u}, {'R', u}, {'L', -v}}})
		}
	}
	return words
}

// densify forward-integrates the bicycle model along each segment of w,
// starting from pose `from`, at turning radius radius and sample spacing
// stepSize.
func densify(from, to spatialmath.Pose, w word, radius, stepSize float64) *Path {
	path := &Path{}
	path.X, path.Y, path.Phi = []float64{from.X}, []float64{from.Y}, []float64{from.Phi}
	path.Gears = []Gear{Forward}
	cur := from

	// The bicycle model's wheelbase only matters through wheelbase/radius =
	// 1/tan(steerMax); since we only need the resulting curvature (1/radius)
	// here, treat radius directly as the curvature radius by using a unit
	// wheelbase and steer = atan(wheelbase/radius).
	const wheelbase = 1.0
	steerFor := func(t byte) float64 {
		switch t {
		case 'L':
			return math.Atan(wheelbase / radius)
		case 'R':
			return -math.Atan(wheelbase / radius)
		default:
			return 0
		}
	}

	for _, seg := range w.segments {
		if math.Abs(seg.Value) < 1e-12 {
			continue
		}
		gear := Forward
		sign := 1.0
		if seg.Value < 0 {
			gear = Backward
			sign = -1.0
		}
		arcLength := math.Abs(seg.Value) * radius // true for both 'S' (value already normalized distance) and 'L'/'R' (value*radius = arc length)
		steer := steerFor(seg.Type)

		steps := int(math.Ceil(arcLength / stepSize))
		if steps < 1 {
			steps = 1
		}
		subStep := arcLength / float64(steps)

		for i := 0; i < steps; i++ {
			cur = spatialmath.StepBicycle(cur, steer, wheelbase, sign*subStep)
			path.X = append(path.X, cur.X)
			path.Y = append(path.Y, cur.Y)
			path.Phi = append(path.Phi, cur.Phi)
			path.Gears = append(path.Gears, gear)
		}
		path.Length += arcLength
	}

	// The terminal sample is pinned to the exact requested goal pose rather
	// than left to accumulate floating point drift from many sub-step
	// integrations: the word's closed-form solution guarantees the true
	// endpoint is `to`, and callers depend on exact equality there.
	if n := len(path.Gears); n > 0 {
		path.X[n-1], path.Y[n-1], path.Phi[n-1] = to.X, to.Y, to.Phi
	}
	return path
}
