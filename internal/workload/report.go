package workload

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDuplicate means some item reached more than one consumer.
	ErrDuplicate = errors.New("workload: item delivered more than once")

	// ErrLost means produced items were neither consumed nor dropped.
	ErrLost = errors.New("workload: items lost")
)

// Report summarizes one workload run.
type Report struct {
	Impl      string `json:"impl" yaml:"impl"`
	Producers int    `json:"producers" yaml:"producers"`
	Consumers int    `json:"consumers" yaml:"consumers"`

	Produced   int64 `json:"produced" yaml:"produced"`
	Consumed   int64 `json:"consumed" yaml:"consumed"`
	TryHits    int64 `json:"try_hits" yaml:"try_hits"`
	TryMisses  int64 `json:"try_misses" yaml:"try_misses"`
	Duplicates int64 `json:"duplicates" yaml:"duplicates"`
	Dropped    int64 `json:"dropped" yaml:"dropped"`

	// Processed is the queue's own count of successful takes.
	Processed uint64 `json:"processed" yaml:"processed"`

	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Verify checks that every produced item was delivered at most once and
// was either consumed or dropped by Close.
func (r Report) Verify() error {
	if r.Duplicates > 0 {
		return fmt.Errorf("%w: %d duplicates", ErrDuplicate, r.Duplicates)
	}
	if r.Consumed+r.Dropped != r.Produced {
		return fmt.Errorf("%w: produced %d, consumed %d, dropped %d",
			ErrLost, r.Produced, r.Consumed, r.Dropped)
	}
	if r.Processed != uint64(r.Consumed) {
		return fmt.Errorf("%w: queue processed %d, consumers saw %d",
			ErrLost, r.Processed, r.Consumed)
	}
	return nil
}

// NsPerItem is the wall time per consumed item.
func (r Report) NsPerItem() float64 {
	if r.Consumed == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Consumed)
}

// Throughput is consumed items per second, in millions.
func (r Report) Throughput() float64 {
	ns := r.NsPerItem()
	if ns == 0 {
		return 0
	}
	return 1000 / ns
}
