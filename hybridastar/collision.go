package hybridastar

import "github.com/popov1212/apollo/spatialmath"

// ValidityCheck reports whether every intermediate pose on n's micro-arc,
// except the first (the parent's already-validated final pose), lies
// within bounds and has a vehicle oriented bounding box disjoint from
// every obstacle edge. A single-pose node (used for the raw start/goal
// check before any arc exists) checks that one pose.
//
// This is a single moving OBB against a static edge set rather than an
// all-pairs entity graph: the search only ever needs "does this one
// node's swept box hit anything", never an n-by-m report.
func ValidityCheck(n *latticeNode, bounds spatialmath.Bounds, obstacleEdges []spatialmath.Segment, cfg *Config) bool {
	start := 1
	if len(n.xs) == 1 {
		start = 0
	}
	for i := start; i < len(n.xs); i++ {
		pose := spatialmath.NewPose(n.xs[i], n.ys[i], n.phis[i])
		if !bounds.Contains(pose.X, pose.Y) {
			return false
		}
		obb := spatialmath.NewVehicleOBB(pose, cfg.VehicleLength, cfg.VehicleWidth, cfg.RearAxleToCenter)
		for _, edge := range obstacleEdges {
			if obb.IntersectsSegment(edge) {
				return false
			}
		}
	}
	return true
}

// singlePoseNode builds the minimal one-pose node ValidityCheck needs to
// validate a raw start or goal pose, before any arc has been swept.
func singlePoseNode(p spatialmath.Pose, bounds spatialmath.Bounds, cfg *Config, a *arena) Handle {
	return a.new([]float64{p.X}, []float64{p.Y}, []float64{p.Phi}, bounds, cfg)
}
