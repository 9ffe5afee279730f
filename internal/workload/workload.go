// Package workload drives a queue with concurrent producers and consumers
// and reports what happened.
//
// Producers split a fixed item budget between them, so every value in
// [0, Items) is put exactly once. Consumers take with TakeContext, or
// poll with TryTake when Config.TryRatio assigns them to polling. Once
// producers finish and every item has been taken, or the run duration
// elapses, the runner closes the queue, which releases parked consumers
// and drops whatever is still stored.
package workload

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/randomizedcoder/handoff-queue/internal/cancel"
	"github.com/randomizedcoder/handoff-queue/internal/logging"
	"github.com/randomizedcoder/handoff-queue/internal/queue"
	"github.com/randomizedcoder/handoff-queue/internal/tick"
)

// pollInterval paces the drain wait and the stats reporter.
const pollInterval = 5 * time.Millisecond

// ErrInvalidConfig is returned by Run for an unusable Config.
var ErrInvalidConfig = errors.New("workload: invalid config")

// Config describes one run.
type Config struct {
	Impl      string
	Producers int
	Consumers int

	// Items is the total number of items put across all producers.
	Items int

	// Duration caps the run. Zero means run until all items are taken.
	Duration time.Duration

	// TryRatio is the fraction of consumers that poll with TryTake
	// instead of blocking.
	TryRatio float64

	ReportInterval time.Duration
	Ticker         string
}

// Validate checks c for values Run cannot work with.
func (c Config) Validate() error {
	switch {
	case !IsValidImpl(c.Impl):
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownImpl, c.Impl)
	case c.Producers < 1:
		return fmt.Errorf("%w: producers must be at least 1", ErrInvalidConfig)
	case c.Consumers < 1:
		return fmt.Errorf("%w: consumers must be at least 1", ErrInvalidConfig)
	case c.Items < 1:
		return fmt.Errorf("%w: items must be at least 1", ErrInvalidConfig)
	case c.Duration < 0:
		return fmt.Errorf("%w: duration must be non-negative", ErrInvalidConfig)
	case c.TryRatio < 0 || c.TryRatio > 1:
		return fmt.Errorf("%w: try ratio must be between 0 and 1", ErrInvalidConfig)
	}
	return nil
}

// pollers is the number of consumers assigned to TryTake.
func (c Config) pollers() int {
	return int(math.Round(c.TryRatio * float64(c.Consumers)))
}

type counters struct {
	produced   atomic.Int64
	consumed   atomic.Int64
	tryHits    atomic.Int64
	tryMisses  atomic.Int64
	duplicates atomic.Int64
	dropped    atomic.Int64
}

// Run executes one workload and returns its report.
//
// If ctx ends early, Run closes the queue, waits for every goroutine and
// returns the partial report together with ctx.Err().
func Run(ctx context.Context, cfg Config, logger *logging.Logger) (Report, error) {
	if cfg.Impl == "" {
		cfg.Impl = ImplHandoff
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithComponent("workload").With("impl", cfg.Impl)

	ticker, err := tick.New(cfg.Ticker, cfg.ReportInterval)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	defer ticker.Stop()

	var n counters
	q, err := NewQueue(cfg.Impl,
		queue.WithLogger(logger),
		queue.WithDropFunc(func(int) { n.dropped.Add(1) }),
	)
	if err != nil {
		return Report{}, err
	}

	seen := make([]atomic.Uint32, cfg.Items)
	record := func(v int) {
		if seen[v].Add(1) > 1 {
			n.duplicates.Add(1)
		}
		n.consumed.Add(1)
	}

	stop := cancel.NewAtomic()
	disarm := cancel.CancelAfter(stop, cfg.Duration)
	defer disarm()
	release := context.AfterFunc(ctx, stop.Cancel)
	defer release()

	takers := cancel.NewContext(ctx)
	defer takers.Cancel()

	logger.Info("workload starting",
		"producers", cfg.Producers,
		"consumers", cfg.Consumers,
		"pollers", cfg.pollers(),
		"items", cfg.Items,
		"duration", cfg.Duration,
	)
	start := time.Now()

	reporterDone := make(chan struct{})
	var reporter conc.WaitGroup
	reporter.Go(func() {
		report(q, ticker, reporterDone, logger)
	})

	var consumers conc.WaitGroup
	pollers := cfg.pollers()
	for c := 0; c < cfg.Consumers; c++ {
		if c < pollers {
			consumers.Go(func() { poll(q, takers, record, &n) })
		} else {
			consumers.Go(func() { take(takers.Context(), q, record) })
		}
	}

	var producers conc.WaitGroup
	for p := 0; p < cfg.Producers; p++ {
		producers.Go(func() {
			for v := p; v < cfg.Items && !stop.Done(); v += cfg.Producers {
				if err := q.Put(v); err != nil {
					return
				}
				n.produced.Add(1)
			}
		})
	}
	producers.Wait()

	produced := uint64(n.produced.Load())
	for q.Processed() < produced && !stop.Done() {
		time.Sleep(pollInterval)
	}

	q.Close()
	consumers.Wait()
	close(reporterDone)
	reporter.Wait()

	r := Report{
		Impl:       cfg.Impl,
		Producers:  cfg.Producers,
		Consumers:  cfg.Consumers,
		Produced:   n.produced.Load(),
		Consumed:   n.consumed.Load(),
		TryHits:    n.tryHits.Load(),
		TryMisses:  n.tryMisses.Load(),
		Duplicates: n.duplicates.Load(),
		Dropped:    n.dropped.Load(),
		Processed:  q.Processed(),
		Elapsed:    time.Since(start),
	}

	logger.Info("workload finished",
		"produced", r.Produced,
		"consumed", r.Consumed,
		"dropped", r.Dropped,
		"elapsed", r.Elapsed,
	)

	return r, ctx.Err()
}

// Compare runs cfg once against every implementation, in Impls order.
func Compare(ctx context.Context, cfg Config, logger *logging.Logger) ([]Report, error) {
	reports := make([]Report, 0, len(Impls()))
	for _, impl := range Impls() {
		cfg.Impl = impl
		r, err := Run(ctx, cfg, logger)
		if err != nil {
			return reports, fmt.Errorf("%s: %w", impl, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// take blocks in TakeContext until the queue closes or ctx ends.
func take(ctx context.Context, q queue.Queue[int], record func(int)) {
	for {
		v, err := q.TakeContext(ctx)
		if err != nil {
			return
		}
		record(v)
	}
}

// poll spins on TryTake until the queue closes or c is canceled.
func poll(q queue.Queue[int], c cancel.Canceler, record func(int), n *counters) {
	for {
		if v, ok := q.TryTake(); ok {
			n.tryHits.Add(1)
			record(v)
			continue
		}
		n.tryMisses.Add(1)
		if q.Closed() || c.Done() {
			return
		}
		runtime.Gosched()
	}
}

// report logs queue stats every time t fires until done is closed.
// Channel-backed tickers are waited on directly. The others are polled.
func report(q queue.Queue[int], t tick.Ticker, done <-chan struct{}, logger *logging.Logger) {
	emit := func() {
		logger.Info("stats",
			"depth", q.Len(),
			"waiting", q.Waiting(),
			"processed", q.Processed(),
		)
	}

	if ct, ok := t.(interface{ C() <-chan time.Time }); ok {
		for {
			select {
			case <-done:
				return
			case <-ct.C():
				emit()
			}
		}
	}

	for {
		select {
		case <-done:
			return
		case <-time.After(pollInterval):
		}
		if t.Tick() {
			emit()
		}
	}
}
