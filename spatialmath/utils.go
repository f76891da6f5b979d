package spatialmath

import "math"

// NormalizeAngle returns the canonical representative of phi in (-pi, pi].
func NormalizeAngle(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi <= -math.Pi {
		phi += 2 * math.Pi
	} else if phi > math.Pi {
		phi -= 2 * math.Pi
	}
	return phi
}

// AngleDiff returns the signed difference b-a, normalized to (-pi, pi].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}
