// Package hybridastar implements the Hybrid A* search driver: the lattice
// node, the collision geometry it validates successors against, and the
// bicycle-model successor generation it drives, tying together the
// Reeds-Shepp analytic expansion and the grid heuristic from the sibling
// reedshepp and heuristic packages.
package hybridastar

import (
	"container/heap"
	"math"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"github.com/popov1212/apollo/heuristic"
	"github.com/popov1212/apollo/logging"
	"github.com/popov1212/apollo/reedshepp"
	"github.com/popov1212/apollo/spatialmath"
	"github.com/popov1212/apollo/speedprofile"
)

// Planner holds the immutable configuration and logger shared across
// Plan invocations. Each Plan call builds and discards its own search
// state; a single Planner is safe for sequential reuse across calls (not
// concurrent calls, since nothing in this package claims thread safety
// beyond "each call owns its own arena").
type Planner struct {
	cfg    *Config
	logger logging.Logger
}

// NewPlanner constructs a Planner. A nil logger falls back to a
// default Info-level logger rather than requiring every caller to pass
// one.
func NewPlanner(cfg *Config, logger logging.Logger) *Planner {
	if logger == nil {
		logger = logging.NewLogger("hybridastar")
	}
	return &Planner{cfg: cfg, logger: logger}
}

// Plan is the primary entry point: given a start and goal pose, a
// workspace rectangle, and an ordered list of obstacle polygons (each a
// vertex list; edges are consecutive-vertex pairs, no closure assumed),
// search for a collision-free, kinematically feasible path and lift it to
// a timed trajectory.
func (p *Planner) Plan(
	start, goal spatialmath.Pose,
	bounds spatialmath.Bounds,
	obstaclePolygons [][]r3.Vector,
) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.New()
	log := p.logger.Sublogger(runID.String())
	log.Infow("plan start", "start", start.String(), "goal", goal.String())

	var edges []spatialmath.Segment
	for _, poly := range obstaclePolygons {
		edges = append(edges, spatialmath.PolygonEdges(poly)...)
	}

	arena := newArena()

	startHandle := singlePoseNode(start, bounds, p.cfg, arena)
	startNode := arena.get(startHandle)
	startNode.setDirection(true)

	goalHandle := singlePoseNode(goal, bounds, p.cfg, arena)
	goalNode := arena.get(goalHandle)

	// The goal is validated before the start, so when both collide the
	// goal's failure is the one reported.
	if !ValidityCheck(goalNode, bounds, edges, p.cfg) {
		return nil, newPlanError(GoalInCollision, "goal pose")
	}
	if !ValidityCheck(startNode, bounds, edges, p.cfg) {
		return nil, newPlanError(StartInCollision, "start pose")
	}

	log.Debug("building heuristic cost-to-go map")
	costMap := heuristic.GenerateDpMap(goal.X, goal.Y, bounds, edges, p.cfg.XYGridResolution)

	radius := p.cfg.TurningRadius()

	open := map[Index]Handle{}
	closed := map[Index]bool{}
	pq := &priorityQueue{}
	heap.Init(pq)

	startNode.setTrajectoryCost(0)
	startNode.setHeuristicCost(costMap.CheckDpMap(start.X, start.Y))
	open[startNode.index()] = startHandle
	seq := 0
	heap.Push(pq, &pqEntry{idx: startNode.index(), handle: startHandle, cost: startNode.cost(), seq: seq})
	seq++

	// Short-circuit to a direct RS connection when start and goal already
	// share a lattice cell, before entering the main loop at all.
	var finalHandle Handle
	found := false
	if startNode.index() == goalNode.index() {
		if h, ok := p.tryAnalyticExpansion(startHandle, goal, bounds, edges, radius, arena, closed); ok {
			finalHandle, found = h, true
		}
	}

	for !found && pq.Len() > 0 {
		entry := heap.Pop(pq).(*pqEntry)
		handle, ok := open[entry.idx]
		if !ok {
			continue // stale: this index was already moved to closed
		}
		node := arena.get(handle)

		if h, ok := p.tryAnalyticExpansion(handle, goal, bounds, edges, radius, arena, closed); ok {
			finalHandle, found = h, true
			log.Debugw("analytic expansion succeeded", "fromIndex", node.index())
			break
		}

		delete(open, node.index())
		closed[node.index()] = true

		p.expandSuccessors(node, handle, bounds, edges, costMap, arena, open, closed, pq, &seq)
	}

	if !found {
		return nil, newPlanError(OpenSetExhausted, "open set exhausted before reaching goal")
	}

	xs, ys, phis := reconstruct(arena, finalHandle)

	sp, err := speedprofile.Generate(xs, ys, phis, speedprofile.Params{
		DeltaT:                p.cfg.DeltaT,
		WheelBase:             p.cfg.WheelBase,
		StepSize:              p.cfg.StepSize,
		UseQP:                 p.cfg.UseSCurveSpeedSmooth,
		LongitudinalJerkBound: p.cfg.LongitudinalJerkBound,
		Weights: speedprofile.Weights{
			S:        p.cfg.SCurve.S,
			Velocity: p.cfg.SCurve.Velocity,
			Acc:      p.cfg.SCurve.Acc,
			Jerk:     p.cfg.SCurve.Jerk,
			Ref:      p.cfg.SCurve.Ref,
		},
	})
	if err != nil {
		switch err {
		case speedprofile.ErrDegenerate:
			return nil, newPlanError(SpeedProfileDegenerate, err.Error())
		case speedprofile.ErrQPInfeasible:
			return nil, newPlanError(QpInfeasible, err.Error())
		default:
			return nil, err
		}
	}

	result := &Result{
		X: xs, Y: ys, Phi: phis,
		V: sp.V, A: sp.A, Steer: sp.Steer,
		AccumulatedS: sp.AccumulatedS,
	}
	if err := result.validate(); err != nil {
		return nil, err
	}

	log.Infow("plan succeeded", "poses", result.N())
	return result, nil
}

// tryAnalyticExpansion attempts to connect node's final pose to goal with
// a Reeds-Shepp path. On success it synthesizes a new node from the
// densified RS samples, attaches it as node's child, inserts it directly
// into closed (never into open — it is a terminal node), and returns its
// handle.
func (p *Planner) tryAnalyticExpansion(
	handle Handle,
	goal spatialmath.Pose,
	bounds spatialmath.Bounds,
	edges []spatialmath.Segment,
	radius float64,
	ar *arena,
	closed map[Index]bool,
) (Handle, bool) {
	node := ar.get(handle)
	path, err := reedshepp.ShortestRSP(node.finalPose(), goal, radius, p.cfg.StepSize)
	if err != nil {
		return 0, false
	}

	newHandle := ar.new(path.X, path.Y, path.Phi, bounds, p.cfg)
	newNode := ar.get(newHandle)
	if !ValidityCheck(newNode, bounds, edges, p.cfg) {
		return 0, false
	}

	newNode.setParent(handle)
	newNode.setDirection(true)
	newNode.setTrajectoryCost(node.g + path.Length)
	newNode.setHeuristicCost(0)
	closed[newNode.index()] = true
	return newHandle, true
}

// expandSuccessors generates the configured branching factor's worth of
// successors from node, skipping closed or colliding candidates and never
// updating an already-open node's cost: a cheaper path found later to an
// already-open index does not relax that index's stored g.
func (p *Planner) expandSuccessors(
	node *latticeNode,
	handle Handle,
	bounds spatialmath.Bounds,
	edges []spatialmath.Segment,
	costMap *heuristic.CostMap,
	ar *arena,
	open map[Index]Handle,
	closed map[Index]bool,
	pq *priorityQueue,
	seq *int,
) {
	half := p.cfg.NextNodeNum / 2
	from := node.finalPose()

	for i := 0; i < p.cfg.NextNodeNum; i++ {
		forward := i < half
		steerIdx := i
		signedStep := p.cfg.StepSize
		if !forward {
			steerIdx = i - half
			signedStep = -p.cfg.StepSize
		}
		steer := steerAngle(steerIdx, half, p.cfg.WheelSteerAngleBound())

		xs, ys, phis := sweepSuccessor(from, steer, signedStep, p.cfg)
		lastX, lastY := xs[len(xs)-1], ys[len(ys)-1]
		if !bounds.Contains(lastX, lastY) {
			continue // discarded: "no node"
		}

		childHandle := ar.new(xs, ys, phis, bounds, p.cfg)
		child := ar.get(childHandle)

		if closed[child.index()] {
			continue
		}
		if !ValidityCheck(child, bounds, edges, p.cfg) {
			continue
		}
		if _, inOpen := open[child.index()]; inOpen {
			continue // already open: not relaxed
		}

		k := len(xs) - 1
		base := float64(k) * p.cfg.StepSize * directionPenalty(forward, p.cfg)
		gearSwitch := 0.0
		if forward != node.forward {
			gearSwitch = p.cfg.TrajGearSwitchPenalty
		}
		steerCost := p.cfg.TrajSteerPenalty * math.Abs(steer)
		steerChange := p.cfg.TrajSteerChangePenalty * math.Abs(steer-node.steer)
		g := node.g + base + gearSwitch + steerCost + steerChange
		h := costMap.CheckDpMap(lastX, lastY)

		child.setParent(handle)
		child.setDirection(forward)
		child.setSteer(steer)
		child.setTrajectoryCost(g)
		child.setHeuristicCost(h)

		open[child.index()] = childHandle
		heap.Push(pq, &pqEntry{idx: child.index(), handle: childHandle, cost: child.cost(), seq: *seq})
		*seq++
	}
}

// steerAngle computes delta_i = -delta_max + (2*delta_max/(half-1))*i, a
// symmetric steering sweep. When half==1 (NextNodeNum==2) there is a
// single forward and single reverse primitive, both driven straight.
func steerAngle(i, half int, maxSteer float64) float64 {
	if half <= 1 {
		return 0
	}
	return -maxSteer + (2*maxSteer/float64(half-1))*float64(i)
}

func directionPenalty(forward bool, cfg *Config) float64 {
	if forward {
		return cfg.TrajForwardPenalty
	}
	return cfg.TrajBackPenalty
}

// reconstruct walks parent links from finalHandle back to the start node,
// then concatenates each node's pose sequence in forward order, dropping
// each node's first sample after the first node (it duplicates the
// previous node's last sample).
func reconstruct(a *arena, finalHandle Handle) (xs, ys, phis []float64) {
	var chain []*latticeNode
	h := finalHandle
	for {
		n := a.get(h)
		chain = append(chain, n)
		if !n.hasParent {
			break
		}
		h = n.parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	xs = append(xs, chain[0].xs...)
	ys = append(ys, chain[0].ys...)
	phis = append(phis, chain[0].phis...)
	for _, n := range chain[1:] {
		xs = append(xs, n.xs[1:]...)
		ys = append(ys, n.ys[1:]...)
		phis = append(phis, n.phis[1:]...)
	}
	return xs, ys, phis
}
