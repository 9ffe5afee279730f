package workload

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randomizedcoder/handoff-queue/internal/queue"
)

// Queue implementations selectable by name.
const (
	ImplHandoff   = "handoff"
	ImplBroadcast = "broadcast"
)

// ErrUnknownImpl is returned by NewQueue for an unrecognized name.
var ErrUnknownImpl = errors.New("workload: unknown queue implementation")

// Impls returns the implementation names accepted by NewQueue, in the
// order Compare runs them.
func Impls() []string {
	return []string{ImplHandoff, ImplBroadcast}
}

// IsValidImpl reports whether name is accepted by NewQueue.
func IsValidImpl(name string) bool {
	for _, impl := range Impls() {
		if strings.EqualFold(name, impl) {
			return true
		}
	}
	return false
}

// NewQueue creates an int queue of the named implementation.
func NewQueue(impl string, opts ...queue.Option) (queue.Queue[int], error) {
	switch strings.ToLower(impl) {
	case ImplHandoff, "":
		return queue.New[int](opts...), nil
	case ImplBroadcast:
		return queue.NewBroadcast[int](opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownImpl, impl)
	}
}
