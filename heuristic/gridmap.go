// Package heuristic implements the grid-based, obstacle-aware cost-to-go
// field used as the Hybrid A* admissible heuristic: a 2-D, holonomic
// (heading-ignoring) shortest-distance map rooted at the goal, computed by
// Dijkstra expansion over a uniform grid at the search's own resolution.
// It is admissible for the Hybrid A* objective because any holonomic
// shortest path lower-bounds the cost of a nonholonomic (steering- and
// gear-constrained) path through the same obstacle field.
package heuristic

import (
	"container/heap"
	"math"

	"github.com/popov1212/apollo/spatialmath"
)

// CostMap is a dense grid of cost-to-go values rooted at a single goal
// point, queryable at arbitrary (x, y) within the grid's workspace.
type CostMap struct {
	bounds     spatialmath.Bounds
	resolution float64
	cols, rows int
	cost       []float64 // row-major, cost[row*cols+col]; math.MaxFloat64 where unreached/blocked
}

const unreached = math.MaxFloat64

// GenerateDpMap builds the cost-to-go field rooted at (goalX, goalY) over
// bounds at the given grid resolution, treating any cell whose bounding box
// intersects an obstacle edge as blocked (cost math.MaxFloat64, never
// expanded).
func GenerateDpMap(goalX, goalY float64, bounds spatialmath.Bounds, obstacleEdges []spatialmath.Segment, resolution float64) *CostMap {
	cols := int(math.Ceil(bounds.Width()/resolution)) + 1
	rows := int(math.Ceil(bounds.Height()/resolution)) + 1

	m := &CostMap{
		bounds:     bounds,
		resolution: resolution,
		cols:       cols,
		rows:       rows,
		cost:       make([]float64, cols*rows),
	}
	for i := range m.cost {
		m.cost[i] = unreached
	}

	blocked := blockedCells(bounds, resolution, cols, rows, obstacleEdges)

	goalCol, goalRow := m.cellOf(goalX, goalY)
	if goalCol < 0 || goalRow < 0 || goalCol >= cols || goalRow >= rows || blocked[goalRow*cols+goalCol] {
		// Goal itself is blocked or out of bounds: return an all-unreached
		// map rather than panicking; CheckDpMap will then return
		// math.MaxFloat64 everywhere, which a caller should treat as "no admissible
		// estimate available" rather than a crash.
		return m
	}

	dijkstra(m, blocked, goalRow, goalCol)
	return m
}

// CheckDpMap returns the non-negative lower bound on cost-to-go from (x, y)
// to the goal this map was built for. Points outside the grid or in
// unreached/blocked cells return math.MaxFloat64.
func (m *CostMap) CheckDpMap(x, y float64) float64 {
	col, row := m.cellOf(x, y)
	if col < 0 || row < 0 || col >= m.cols || row >= m.rows {
		return unreached
	}
	return m.cost[row*m.cols+col]
}

func (m *CostMap) cellOf(x, y float64) (col, row int) {
	if !m.bounds.Contains(x, y) {
		return -1, -1
	}
	col = int((x - m.bounds.MinX) / m.resolution)
	row = int((y - m.bounds.MinY) / m.resolution)
	return col, row
}

func blockedCells(bounds spatialmath.Bounds, resolution float64, cols, rows int, edges []spatialmath.Segment) []bool {
	blocked := make([]bool, cols*rows)
	for row := 0; row < rows; row++ {
		minY := bounds.MinY + float64(row)*resolution
		maxY := minY + resolution
		for col := 0; col < cols; col++ {
			minX := bounds.MinX + float64(col)*resolution
			maxX := minX + resolution
			for _, e := range edges {
				if spatialmath.SegmentIntersectsBox(e, minX, minY, maxX, maxY) {
					blocked[row*cols+col] = true
					break
				}
			}
		}
	}
	return blocked
}

// dijkstraNode is one entry in the priority queue; 8-connected grid moves
// with straight-step cost `resolution` and diagonal-step cost
// `resolution*sqrt(2)`.
type dijkstraNode struct {
	row, col int
	cost     float64
}

type nodeHeap []*dijkstraNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*dijkstraNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

var neighborOffsets = [8][3]float64{
	{-1, 0, 1}, {1, 0, 1}, {0, -1, 1}, {0, 1, 1},
	{-1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {1, 1, math.Sqrt2},
}

func dijkstra(m *CostMap, blocked []bool, goalRow, goalCol int) {
	m.cost[goalRow*m.cols+goalCol] = 0

	open := &nodeHeap{{row: goalRow, col: goalCol, cost: 0}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*dijkstraNode)
		idx := cur.row*m.cols + cur.col
		if cur.cost > m.cost[idx] {
			continue // stale entry, a shorter path to this cell was already found
		}
		for _, off := range neighborOffsets {
			nr, nc := cur.row+int(off[0]), cur.col+int(off[1])
			if nr < 0 || nc < 0 || nr >= m.rows || nc >= m.cols {
				continue
			}
			nIdx := nr*m.cols + nc
			if blocked[nIdx] {
				continue
			}
			step := off[2] * m.resolution
			newCost := cur.cost + step
			if newCost < m.cost[nIdx] {
				m.cost[nIdx] = newCost
				heap.Push(open, &dijkstraNode{row: nr, col: nc, cost: newCost})
			}
		}
	}
}
