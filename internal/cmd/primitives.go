package cmd

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/handoff-queue/internal/cancel"
	"github.com/randomizedcoder/handoff-queue/internal/tick"
)

func newPrimitivesCmd() *cobra.Command {
	primitivesCmd := &cobra.Command{
		Use:   "primitives",
		Short: "Measure ticker and canceler check overhead",
		Long: `Measure the per-call cost of the tickers and cancelers a workload polls
in its loops. Use it to pick report.ticker for a machine.`,
		Args: cobra.NoArgs,
		RunE: runPrimitives,
	}
	primitivesCmd.Flags().Int("iterations", 10_000_000, "calls per primitive")
	return primitivesCmd
}

type primitiveResult struct {
	name string
	dur  time.Duration
}

func runPrimitives(cmd *cobra.Command, args []string) error {
	iterations, _ := cmd.Flags().GetInt("iterations")
	if iterations < 1 {
		return fmt.Errorf("--iterations must be at least 1")
	}

	out := cmd.OutOrStdout()
	interval := time.Hour // Long so we measure check overhead, not actual ticks

	fmt.Fprintf(out, "Benchmarking primitive checks (%d iterations)\n", iterations)
	fmt.Fprintf(out, "Architecture: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(out, rule)

	var tickers []primitiveResult
	for _, kind := range tick.Kinds() {
		t, err := tick.New(kind, interval)
		if err != nil {
			return err
		}
		start := time.Now()
		for i := 0; i < iterations; i++ {
			_ = t.Tick()
		}
		tickers = append(tickers, primitiveResult{"Ticker(" + kind + ")", time.Since(start)})
		t.Stop()
	}

	cancelers := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Canceler(context)", cancel.NewContext(context.Background())},
		{"Canceler(atomic)", cancel.NewAtomic()},
	}
	var checks []primitiveResult
	for _, info := range cancelers {
		start := time.Now()
		for i := 0; i < iterations; i++ {
			_ = info.c.Done()
		}
		checks = append(checks, primitiveResult{info.name, time.Since(start)})
		info.c.Cancel()
	}

	fmt.Fprintf(out, "\nResults:\n")
	writePrimitives(out, tickers, iterations)
	fmt.Fprintln(out)
	writePrimitives(out, checks, iterations)

	fmt.Fprintf(out, "\nNote: the batch ticker only checks time every %d calls, so overhead is amortized.\n", tick.DefaultBatch)
	return nil
}

// writePrimitives prints one row per result with the speedup over the
// first row.
func writePrimitives(w io.Writer, results []primitiveResult, iterations int) {
	if len(results) == 0 {
		return
	}
	baseline := float64(results[0].dur.Nanoseconds()) / float64(iterations)

	for _, r := range results {
		perOp := float64(r.dur.Nanoseconds()) / float64(iterations)
		speedup, throughput := 0.0, 0.0
		if perOp > 0 {
			speedup = baseline / perOp
			throughput = 1000 / perOp // M ops/sec
		}

		fmt.Fprintf(w, "  %-20s %12v  %8.2f ns/op  %6.2fx  %8.2f M/s\n",
			r.name, r.dur, perOp, speedup, throughput)
	}
}
