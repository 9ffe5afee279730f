// Package cancel provides stop signals for load-generating goroutines.
//
// Two implementations of the Canceler interface are offered:
//   - ContextCanceler: backed by context.Context, so consumers can pass
//     Context() straight into queue.TakeContext
//   - AtomicCanceler: a single atomic.Bool, cheap enough to poll on every
//     iteration of a producer hot loop
//
// CancelAfter arms either one to fire after a run duration.
package cancel

import "time"

// Canceler provides cancellation signaling to workers.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// CancelAfter cancels c once d has elapsed. The returned stop function
// disarms the timer; it reports false if c was already canceled by it.
// A non-positive d never fires.
func CancelAfter(c Canceler, d time.Duration) (stop func() bool) {
	if d <= 0 {
		return func() bool { return true }
	}
	t := time.AfterFunc(d, c.Cancel)
	return t.Stop
}
