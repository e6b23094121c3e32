package maze

import "container/heap"

// Stack is a LIFO frontier. The recursive backtracker keeps its walk
// on an explicit stack instead of the call stack, so arbitrarily
// large grids cannot exhaust it.
type Stack[T any] struct{ items []T }

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) { s.items = append(s.items, v) }

// Pop removes and returns the top item; ok is false when empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	v = s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of items on the stack.
func (s *Stack[T]) Len() int { return len(s.items) }

// Queue is a FIFO frontier for breadth-first carving and distance
// sweeps.
type Queue[T any] struct {
	items []T
	head  int
}

// Push appends v to the back of the queue.
func (q *Queue[T]) Push(v T) { q.items = append(q.items, v) }

// Pop removes and returns the front item; ok is false when empty.
func (q *Queue[T]) Pop() (v T, ok bool) {
	if q.head >= len(q.items) {
		return v, false
	}
	v = q.items[q.head]
	q.head++
	if q.head > 64 && q.head*2 >= len(q.items) {
		q.items = append([]T(nil), q.items[q.head:]...)
		q.head = 0
	}
	return v, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.items) - q.head }

// PriorityQueue is a min-heap frontier. Entries carry an insertion
// counter so equal priorities pop in insertion order, keeping
// heap-driven algorithms deterministic for a fixed seed.
type PriorityQueue[T any] struct {
	h pqHeap[T]
	n int
}

type pqItem[T any] struct {
	priority float64
	count    int
	value    T
}

type pqHeap[T any] []pqItem[T]

func (h pqHeap[T]) Len() int { return len(h) }
func (h pqHeap[T]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].count < h[j].count
}
func (h pqHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pqHeap[T]) Push(x any) { *h = append(*h, x.(pqItem[T])) }
func (h *pqHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Push inserts v with the given priority.
func (pq *PriorityQueue[T]) Push(priority float64, v T) {
	heap.Push(&pq.h, pqItem[T]{priority: priority, count: pq.n, value: v})
	pq.n++
}

// Pop removes and returns the minimum-priority item; ok is false when
// empty.
func (pq *PriorityQueue[T]) Pop() (v T, ok bool) {
	if len(pq.h) == 0 {
		return v, false
	}
	it := heap.Pop(&pq.h).(pqItem[T])
	return it.value, true
}

// Len returns the number of queued items.
func (pq *PriorityQueue[T]) Len() int { return len(pq.h) }
