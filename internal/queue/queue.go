// Package queue provides unbounded, thread-safe FIFO blocking queues for
// producer/consumer hand-off between goroutines.
//
// This package offers two implementations of the Queue interface:
//   - Handoff: per-waiter wake handles with direct hand-off (recommended)
//   - Broadcast: a single shared sync.Cond with ticket re-checks (baseline)
//
// # Handoff
//
// A consumer that finds the queue empty registers a waiter record and
// parks on its own wake handle. Put hands the item straight to the
// longest-waiting consumer and wakes only that consumer, so a woken
// consumer always has an item and nothing can steal it first.
//
// TryTake never blocks and never serves parked consumers: it only takes
// items already sitting in the store, and may barge ahead of waiters.
//
// # Broadcast
//
// Every insertion and removal wakes all parked consumers, which re-check
// whether their ticket is being served. Correct but O(n) per wake-up.
// It exists for comparison in benchmarks and the queuebench tool.
//
// # Teardown
//
// Close is idempotent. It wakes every parked consumer with ErrClosed and
// drops items still in the store. Put and Take fail with ErrClosed after
// Close; TryTake reports false.
package queue

import (
	"context"
	"errors"
)

// Sentinel errors returned by queue operations.
var (
	// ErrClosed is returned by Put and Take after Close, and by a Take that
	// was parked when Close ran.
	ErrClosed = errors.New("queue: closed")

	// ErrWouldBlock is the error form of an unsuccessful TryTake.
	ErrWouldBlock = errors.New("queue: would block")
)

// Queue is an unbounded multi-producer multi-consumer FIFO queue.
//
// Implementations must be safe for concurrent use.
type Queue[T any] interface {
	// Put appends an item, or hands it to a parked consumer.
	// Never blocks. Returns ErrClosed after Close.
	Put(v T) error

	// Take removes the next item, blocking until one is available
	// or the queue is closed.
	Take() (T, error)

	// TakeContext is Take with cancellation.
	TakeContext(ctx context.Context) (T, error)

	// TryTake removes the next stored item without blocking.
	// Returns false on lock contention or when no item is stored.
	TryTake() (T, bool)

	// Close shuts the queue down. Safe to call multiple times.
	Close()

	// Closed reports whether Close has been called.
	Closed() bool

	// Len returns the number of stored items.
	Len() int

	// Waiting returns the number of parked consumers.
	Waiting() int

	// Processed returns the number of successful removals.
	Processed() uint64
}

// Stats is a best-effort view of a queue's counters.
//
// Each field is read independently without taking the queue lock, so
// the fields are not guaranteed to be mutually consistent while the
// queue is being mutated.
type Stats struct {
	Depth     int    `json:"depth" yaml:"depth"`
	Waiting   int    `json:"waiting" yaml:"waiting"`
	Processed uint64 `json:"processed" yaml:"processed"`
	Closed    bool   `json:"closed" yaml:"closed"`
}
