package timer

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled event. The zero Handle is never issued.
type Handle uint64

type entry struct {
	due   time.Duration
	seq   uint64
	fn    func()
	index int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is a scheduled-event queue keyed by simulation time. Events due at
// or before the polled time fire in (due, schedule order). Nothing runs
// outside Poll.
type Queue struct {
	h       entryHeap
	byID    map[Handle]*entry
	nextSeq uint64
}

func NewQueue() *Queue {
	return &Queue{byID: make(map[Handle]*entry, 16)}
}

// Schedule registers fn to run at the first Poll with now >= at.
func (q *Queue) Schedule(at time.Duration, fn func()) Handle {
	q.nextSeq++
	e := &entry{due: at, seq: q.nextSeq, fn: fn}
	heap.Push(&q.h, e)
	id := Handle(e.seq)
	q.byID[id] = e
	return id
}

// Cancel removes a pending event. It reports whether the event was pending.
func (q *Queue) Cancel(id Handle) bool {
	e, ok := q.byID[id]
	if !ok {
		return false
	}
	delete(q.byID, id)
	if e.index >= 0 {
		heap.Remove(&q.h, e.index)
	}
	return true
}

// Pending reports whether id is still scheduled.
func (q *Queue) Pending(id Handle) bool {
	_, ok := q.byID[id]
	return ok
}

// Poll fires every event due at or before now. Events scheduled by a
// callback for a time <= now fire in the same Poll.
func (q *Queue) Poll(now time.Duration) int {
	fired := 0
	for q.h.Len() > 0 && q.h[0].due <= now {
		e := heap.Pop(&q.h).(*entry)
		delete(q.byID, Handle(e.seq))
		e.fn()
		fired++
	}
	return fired
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return q.h.Len() }
