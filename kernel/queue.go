package kernel

import (
	"runtime"
	"sync/atomic"
)

// QueueSlots is the capacity of a Queue.
const QueueSlots = 256

// Queue is a fixed-size single-producer, single-consumer FIFO.
// It is designed for bare-metal use: no allocations, busy-wait with Gosched().
// The zero value is an empty queue.
type Queue[T any] struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [QueueSlots]T
}

// TrySend attempts to enqueue v, returning false if the queue is full.
// Only one goroutine may send.
func (q *Queue[T]) TrySend(v T) bool {
	head := q.head.Load()
	tail := q.tail.Load()
	if head-tail >= QueueSlots {
		return false
	}

	// Publish the slot before the new head makes it visible.
	q.slots[head%QueueSlots] = v
	q.head.Store(head + 1)
	return true
}

// Send enqueues v, blocking until it succeeds.
func (q *Queue[T]) Send(v T) {
	for !q.TrySend(v) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one value, returning false if empty.
// Only one goroutine may receive.
func (q *Queue[T]) TryRecv() (T, bool) {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail == head {
		var zero T
		return zero, false
	}

	v := q.slots[tail%QueueSlots]
	q.tail.Store(tail + 1)
	return v, true
}

// Recv blocks until one value is available.
func (q *Queue[T]) Recv() T {
	for {
		v, ok := q.TryRecv()
		if ok {
			return v
		}
		runtime.Gosched()
	}
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	return int(q.head.Load() - q.tail.Load())
}
