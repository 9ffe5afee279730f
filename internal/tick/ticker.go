package tick

import "time"

// StdTicker polls a time.Ticker through the Ticker interface.
//
// Missed ticks are not queued: at most one is pending. Loops that can
// block should select on C instead of calling Tick.
type StdTicker struct {
	t        *time.Ticker
	interval time.Duration
}

// NewTicker creates a StdTicker firing every interval. A non-positive
// interval is replaced by DefaultInterval.
func NewTicker(interval time.Duration) *StdTicker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &StdTicker{
		t:        time.NewTicker(interval),
		interval: interval,
	}
}

// Tick reports whether a tick is pending, consuming it.
func (s *StdTicker) Tick() bool {
	select {
	case <-s.t.C:
		return true
	default:
		return false
	}
}

// C returns the channel the ticks are delivered on.
func (s *StdTicker) C() <-chan time.Time {
	return s.t.C
}

// Reset restarts the interval from now.
func (s *StdTicker) Reset() {
	s.t.Reset(s.interval)
}

// Stop releases the underlying timer. No ticks are delivered afterwards.
func (s *StdTicker) Stop() {
	s.t.Stop()
}

// Interval returns the ticker's interval.
func (s *StdTicker) Interval() time.Duration {
	return s.interval
}
