package hybridastar

import "container/heap"

// pqEntry is one priority queue entry: the node's index (for open-map
// validation on pop) and its handle, ranked by cost. The queue is
// push-only — a node's entry is never updated in place, only possibly
// superseded by its removal from the open map when the node is moved to
// closed.
type pqEntry struct {
	idx    Index
	handle Handle
	cost   float64
	seq    int // insertion order, for stable tie-breaking
}

type priorityQueue []*pqEntry

func (q priorityQueue) Len() int { return len(q) }
func (q priorityQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].seq < q[j].seq
}
func (q priorityQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x interface{}) {
	*q = append(*q, x.(*pqEntry))
}
func (q *priorityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

var _ heap.Interface = (*priorityQueue)(nil)
