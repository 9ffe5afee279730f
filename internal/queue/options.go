package queue

import (
	"fmt"

	"github.com/randomizedcoder/handoff-queue/internal/logging"
)

// Option configures a queue at construction time.
type Option func(*options)

type options struct {
	logger *logging.Logger
	onDrop any
}

// WithLogger sets the logger used for lifecycle records.
// Queues log at DEBUG level only. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDropFunc registers fn to receive every stored item discarded by
// Close, in FIFO order. fn runs after the queue lock is released.
//
// The element type of fn must match the queue's element type; New and
// NewBroadcast panic otherwise.
func WithDropFunc[T any](fn func(T)) Option {
	return func(o *options) {
		o.onDrop = fn
	}
}

func buildOptions[T any](opts []Option) (*logging.Logger, func(T)) {
	o := options{logger: logging.NopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.onDrop == nil {
		return o.logger, nil
	}
	fn, ok := o.onDrop.(func(T))
	if !ok {
		var zero T
		panic(fmt.Sprintf("queue: drop func %T does not accept %T", o.onDrop, zero))
	}
	return o.logger, fn
}
