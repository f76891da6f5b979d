package hybridastar

import (
	"math"

	"github.com/popov1212/apollo/spatialmath"
)

// Index is a lattice node's discrete cell key: (x-bucket, y-bucket,
// heading-bucket). It is comparable and usable directly as a map key, an
// idiomatic substitute for string/tuple serialization of the same key.
type Index struct {
	I, J, K int
}

// Handle is an offset into an arena; it is a zero-allocation substitute
// for a pointer, so the open map, closed map, priority queue, and parent
// back-links can all refer to a node without creating cyclic ownership
// between those containers.
type Handle int

// noParent is the sentinel Handle for the start node, which has no parent.
const noParent Handle = -1

// latticeNode is one expansion in the search graph: the swept micro-arc
// from a parent's final pose to this node's own final pose, plus the
// bookkeeping needed to score and reconstruct it.
type latticeNode struct {
	xs, ys, phis []float64 // parallel; xs[0],ys[0],phis[0] == parent's final pose

	idx Index

	parent    Handle
	hasParent bool

	forward bool
	steer   float64

	g, h float64
}

// finalPose returns the node's own terminal pose, the one its index is
// derived from.
func (n *latticeNode) finalPose() spatialmath.Pose {
	last := len(n.xs) - 1
	return spatialmath.NewPose(n.xs[last], n.ys[last], n.phis[last])
}

// index returns the node's lattice cell key. It never changes after
// construction: it is computed once in arena.new and simply stored.
func (n *latticeNode) index() Index {
	return n.idx
}

// cost returns g + h, the priority queue's ranking key.
func (n *latticeNode) cost() float64 {
	return n.g + n.h
}

func (n *latticeNode) setParent(h Handle) {
	n.parent = h
	n.hasParent = true
}

func (n *latticeNode) setDirection(forward bool) { n.forward = forward }
func (n *latticeNode) setSteer(steer float64)    { n.steer = steer }
func (n *latticeNode) setTrajectoryCost(g float64) { n.g = g }
func (n *latticeNode) setHeuristicCost(h float64)  { n.h = h }

// arena owns every latticeNode allocated during one Plan call. Nodes are
// never freed individually; the whole arena is dropped when Plan returns,
// since all of its allocations are short-lived and scoped to that call.
type arena struct {
	nodes []*latticeNode
}

func newArena() *arena {
	return &arena{nodes: make([]*latticeNode, 0, 1024)}
}

// new constructs a node from a swept micro-arc (xs, ys, phis, all the same
// length, index 0 being the parent's final pose) and computes its index
// from the final pose.
func (a *arena) new(xs, ys, phis []float64, bounds spatialmath.Bounds, cfg *Config) Handle {
	n := &latticeNode{
		xs: xs, ys: ys, phis: phis,
		parent: noParent,
	}
	last := len(xs) - 1
	n.idx = indexOf(spatialmath.NewPose(xs[last], ys[last], phis[last]), bounds, cfg)
	a.nodes = append(a.nodes, n)
	return Handle(len(a.nodes) - 1)
}

func (a *arena) get(h Handle) *latticeNode {
	return a.nodes[h]
}

// indexOf computes the discrete lattice index for a final pose:
// (floor((x-x_min)/r_xy), floor((y-y_min)/r_xy), phiBucket(phi)).
func indexOf(p spatialmath.Pose, bounds spatialmath.Bounds, cfg *Config) Index {
	i := int(math.Floor((p.X - bounds.MinX) / cfg.XYGridResolution))
	j := int(math.Floor((p.Y - bounds.MinY) / cfg.XYGridResolution))
	return Index{I: i, J: j, K: phiBucket(p.Phi, cfg.PhiBins)}
}

// phiBucket folds phi, normalized to (-pi, pi], into [0, bins).
func phiBucket(phi float64, bins int) int {
	norm := (phi + math.Pi) / (2 * math.Pi) // (-pi,pi] -> (0,1]
	b := int(math.Floor(norm * float64(bins)))
	if b >= bins {
		b = bins - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
