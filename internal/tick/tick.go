// Package tick provides periodic triggers for the workload stats reporter.
//
// This package offers several implementations of the Ticker interface:
//   - StdTicker: Standard library time.Ticker wrapper
//   - BatchTicker: Check only every N operations
//   - AtomicTicker: Atomic timestamp comparison using runtime.nanotime
//
// Tickers are polled, not waited on: Tick() is a non-blocking check that
// a loop calls between units of work.
package tick

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ticker signals when a time interval has elapsed.
//
// StdTicker and AtomicTicker are safe for concurrent use. BatchTicker
// keeps an unsynchronized call counter and must be polled from a single
// goroutine.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset resets the ticker to start a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// Ticker kinds accepted by New.
const (
	KindStd    = "std"
	KindAtomic = "atomic"
	KindBatch  = "batch"
)

// DefaultInterval is the default stats reporting interval.
const DefaultInterval = time.Second

// DefaultBatch is the batch size New uses for KindBatch.
const DefaultBatch = 16

// ErrUnknownKind is returned by New for an unrecognized kind.
var ErrUnknownKind = errors.New("tick: unknown ticker kind")

// Kinds returns the ticker kinds accepted by New.
func Kinds() []string {
	return []string{KindStd, KindAtomic, KindBatch}
}

// New creates a Ticker of the named kind. A non-positive interval is
// replaced by DefaultInterval.
func New(kind string, interval time.Duration) (Ticker, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	switch strings.ToLower(kind) {
	case KindStd:
		return NewTicker(interval), nil
	case KindAtomic, "":
		return NewAtomicTicker(interval), nil
	case KindBatch:
		return NewBatch(interval, DefaultBatch), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
