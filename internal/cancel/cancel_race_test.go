package cancel_test

import (
	"context"
	"testing"

	"github.com/sourcegraph/conc"

	"github.com/randomizedcoder/handoff-queue/internal/cancel"
)

// TestCanceler_Race polls Done() from many goroutines while another
// cancels, the way workload producers use it.
// Run with: go test -race ./internal/cancel
func TestCanceler_Race(t *testing.T) {
	for _, tc := range []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var wg conc.WaitGroup

			for i := 0; i < 10; i++ {
				wg.Go(func() {
					for j := 0; j < 10000; j++ {
						if tc.c.Done() {
							return
						}
					}
				})
			}
			wg.Go(tc.c.Cancel)

			wg.Wait()

			if !tc.c.Done() {
				t.Error("expected Done() = true after Cancel()")
			}
		})
	}
}
