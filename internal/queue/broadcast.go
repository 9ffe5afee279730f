package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/randomizedcoder/handoff-queue/internal/logging"
)

// Broadcast is an unbounded FIFO queue built on one shared sync.Cond.
//
// Each blocking consumer draws a ticket and waits until its ticket is the
// one being served and an item is stored. Every Put and every removal
// broadcasts, so all parked consumers wake to re-check: O(n) wake cost
// per operation. Kept as a baseline for Handoff.
//
// TryTake is fair here: it misses while any blocking consumer holds an
// unserved ticket.
type Broadcast[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   store[T]
	next    uint64 // next ticket to issue
	serving uint64 // ticket allowed to remove the head item
	closed  bool

	depth     atomic.Int64
	waiting   atomic.Int64
	processed atomic.Uint64
	shut      atomic.Bool

	logger *logging.Logger
	onDrop func(T)
}

var _ Queue[int] = (*Broadcast[int])(nil)

// NewBroadcast creates an empty Broadcast queue.
func NewBroadcast[T any](opts ...Option) *Broadcast[T] {
	logger, onDrop := buildOptions[T](opts)
	q := &Broadcast[T]{
		logger: logger.WithComponent("queue").With("impl", "broadcast"),
		onDrop: onDrop,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Put appends v and wakes every parked consumer.
func (q *Broadcast[T]) Put(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items.append(v)
	q.depth.Add(1)
	q.mu.Unlock()

	q.cond.Broadcast()
	return nil
}

// Take removes the next item in ticket order, blocking until it is
// available or the queue is closed.
func (q *Broadcast[T]) Take() (T, error) {
	return q.TakeContext(context.Background())
}

// TakeContext checks ctx once before drawing a ticket. A drawn ticket
// cannot be abandoned without stalling every later ticket, so the wait
// itself is not cancelable; use Handoff when cancellation matters.
func (q *Broadcast[T]) TakeContext(ctx context.Context) (T, error) {
	var zero T

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return zero, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		q.mu.Unlock()
		return zero, err
	}

	ticket := q.next
	q.next++

	for !q.closed && (q.items.empty() || ticket != q.serving) {
		q.waiting.Add(1)
		q.cond.Wait()
		q.waiting.Add(-1)
	}
	if q.closed {
		q.mu.Unlock()
		return zero, ErrClosed
	}

	v := q.items.popFront()
	q.depth.Add(-1)
	q.processed.Add(1)
	q.serving++
	q.mu.Unlock()

	// The next ticket holder may be parked behind a stored item.
	q.cond.Broadcast()
	return v, nil
}

// TryTake removes the head item without blocking, but only when no
// blocking consumer is ahead of the caller.
func (q *Broadcast[T]) TryTake() (T, bool) {
	var zero T
	if !q.mu.TryLock() {
		return zero, false
	}
	defer q.mu.Unlock()

	if q.closed || q.items.empty() || q.serving != q.next {
		return zero, false
	}

	// Draw and serve a ticket in one step to keep serving == next.
	q.next++
	q.serving++

	v := q.items.popFront()
	q.depth.Add(-1)
	q.processed.Add(1)
	return v, true
}

// Close wakes every parked consumer with ErrClosed and drops stored
// items. Later calls are no-ops.
func (q *Broadcast[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.shut.Store(true)
	woken := q.waiting.Load()

	dropped := q.items.detach()
	q.depth.Store(0)
	q.mu.Unlock()

	q.cond.Broadcast()

	n := dropped.drain(q.onDrop)
	q.logger.Debug("queue closed",
		"woken", woken,
		"dropped", n,
		"processed", q.processed.Load())
}

// Closed reports whether Close has been called.
func (q *Broadcast[T]) Closed() bool {
	return q.shut.Load()
}

// Len returns the number of stored items.
func (q *Broadcast[T]) Len() int {
	return int(q.depth.Load())
}

// Waiting returns the number of consumers parked in Take.
func (q *Broadcast[T]) Waiting() int {
	return int(q.waiting.Load())
}

// Processed returns the number of successful Take and TryTake calls.
func (q *Broadcast[T]) Processed() uint64 {
	return q.processed.Load()
}

// Stats returns a best-effort view of the counters.
func (q *Broadcast[T]) Stats() Stats {
	return Stats{
		Depth:     q.Len(),
		Waiting:   q.Waiting(),
		Processed: q.Processed(),
		Closed:    q.Closed(),
	}
}
