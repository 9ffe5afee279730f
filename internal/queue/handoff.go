package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/randomizedcoder/handoff-queue/internal/logging"
)

// Handoff is an unbounded FIFO queue that hands items directly to parked
// consumers.
//
// One mutex guards the item store, the waiter registry and the ticket
// counter together. Each parked consumer owns a private wake handle, so
// Put wakes exactly the longest-waiting consumer, and only after writing
// the item into that consumer's slot.
//
// Counters are maintained with atomics and can be read without the lock.
type Handoff[T any] struct {
	mu      sync.Mutex
	items   store[T]
	waiters registry[T]
	tickets uint64
	closed  bool

	depth     atomic.Int64
	waiting   atomic.Int64
	processed atomic.Uint64
	shut      atomic.Bool

	logger *logging.Logger
	onDrop func(T)
}

var _ Queue[int] = (*Handoff[int])(nil)

// New creates an empty Handoff queue.
func New[T any](opts ...Option) *Handoff[T] {
	logger, onDrop := buildOptions[T](opts)
	return &Handoff[T]{
		logger: logger.WithComponent("queue").With("impl", "handoff"),
		onDrop: onDrop,
	}
}

// Put hands v to the longest-waiting consumer if any is parked, otherwise
// appends it to the store. Never blocks.
func (q *Handoff[T]) Put(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	if w := q.waiters.popFront(); w != nil {
		q.waiting.Add(-1)
		w.deliver(v)
		return nil
	}

	q.items.append(v)
	q.depth.Add(1)
	return nil
}

// Take removes the next item, blocking until one is handed over or the
// queue is closed.
func (q *Handoff[T]) Take() (T, error) {
	return q.TakeContext(context.Background())
}

// TakeContext is Take with cancellation.
//
// If ctx ends while the caller is parked, the waiter unlinks itself and
// ctx.Err() is returned. If a producer delivered first, the delivered
// item is returned even though ctx is done.
func (q *Handoff[T]) TakeContext(ctx context.Context) (T, error) {
	var zero T

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return zero, ErrClosed
	}
	if !q.items.empty() {
		v := q.items.popFront()
		q.depth.Add(-1)
		q.processed.Add(1)
		q.mu.Unlock()
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		q.mu.Unlock()
		return zero, err
	}

	w := newWaiter[T](q.tickets)
	q.tickets++
	q.waiters.push(w)
	q.waiting.Add(1)
	q.mu.Unlock()

	select {
	case <-w.ready:
	case <-ctx.Done():
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	// Re-check our own record: ready and ctx may both be done, and only
	// the state written under the lock is authoritative.
	switch w.state {
	case waiterDelivered:
		q.processed.Add(1)
		return w.take(), nil
	case waiterClosed:
		return zero, ErrClosed
	default:
		q.waiters.remove(w)
		q.waiting.Add(-1)
		w.state = waiterCanceled
		return zero, ctx.Err()
	}
}

// TryTake removes the next stored item without blocking.
//
// It fails on lock contention or an empty store. Parked consumers are
// never consulted: TryTake may take an item ahead of them.
func (q *Handoff[T]) TryTake() (T, bool) {
	v, err := q.TryTakeErr()
	return v, err == nil
}

// TryTakeErr is TryTake reporting why it missed: ErrClosed after Close,
// ErrWouldBlock on contention or an empty store.
func (q *Handoff[T]) TryTakeErr() (T, error) {
	var zero T
	if !q.mu.TryLock() {
		return zero, ErrWouldBlock
	}
	defer q.mu.Unlock()

	if q.closed {
		return zero, ErrClosed
	}
	if q.items.empty() {
		return zero, ErrWouldBlock
	}

	v := q.items.popFront()
	q.depth.Add(-1)
	q.processed.Add(1)
	return v, nil
}

// Close shuts the queue down. Every parked consumer wakes with ErrClosed
// and every stored item is dropped (passed to the drop func if one was
// configured). Later calls are no-ops.
func (q *Handoff[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.shut.Store(true)

	woken := 0
	for w := q.waiters.popFront(); w != nil; w = q.waiters.popFront() {
		w.shut()
		woken++
	}
	q.waiting.Add(-int64(woken))

	dropped := q.items.detach()
	q.depth.Store(0)
	q.mu.Unlock()

	n := dropped.drain(q.onDrop)
	q.logger.Debug("queue closed",
		"woken", woken,
		"dropped", n,
		"processed", q.processed.Load())
}

// Closed reports whether Close has been called.
func (q *Handoff[T]) Closed() bool {
	return q.shut.Load()
}

// Len returns the number of items in the store. Items handed directly to
// consumers are never counted.
func (q *Handoff[T]) Len() int {
	return int(q.depth.Load())
}

// Waiting returns the number of consumers parked in Take.
func (q *Handoff[T]) Waiting() int {
	return int(q.waiting.Load())
}

// Processed returns the number of successful Take and TryTake calls.
func (q *Handoff[T]) Processed() uint64 {
	return q.processed.Load()
}

// Stats returns a best-effort view of the counters.
func (q *Handoff[T]) Stats() Stats {
	return Stats{
		Depth:     q.Len(),
		Waiting:   q.Waiting(),
		Processed: q.Processed(),
		Closed:    q.Closed(),
	}
}
