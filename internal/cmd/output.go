package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randomizedcoder/handoff-queue/internal/config"
	"github.com/randomizedcoder/handoff-queue/internal/workload"
)

const rule = "─────────────────────────────────────────────────"

// writeReport renders one run report in the requested format.
func writeReport(w io.Writer, format string, r workload.Report) error {
	switch strings.ToLower(format) {
	case config.OutputYAML:
		return writeYAML(w, r)
	case config.OutputJSON:
		return writeJSON(w, r)
	}

	fmt.Fprintf(w, "Workload: %s (%d producers, %d consumers)\n", r.Impl, r.Producers, r.Consumers)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nResults:\n")
	fmt.Fprintf(w, "  Produced:    %d\n", r.Produced)
	fmt.Fprintf(w, "  Consumed:    %d\n", r.Consumed)
	fmt.Fprintf(w, "  Dropped:     %d\n", r.Dropped)
	fmt.Fprintf(w, "  Duplicates:  %d\n", r.Duplicates)
	if r.TryHits+r.TryMisses > 0 {
		fmt.Fprintf(w, "  TryTake:     %d hits, %d misses\n", r.TryHits, r.TryMisses)
	}
	fmt.Fprintf(w, "  Elapsed:     %v (%.2f ns/item)\n", r.Elapsed, r.NsPerItem())

	fmt.Fprintf(w, "\nThroughput:\n")
	fmt.Fprintf(w, "  %.2f M items/sec\n", r.Throughput())
	return nil
}

// writeComparison renders per-implementation cost and the speedup of
// the fastest over the slowest.
func writeComparison(w io.Writer, format string, reports []workload.Report) error {
	switch strings.ToLower(format) {
	case config.OutputYAML:
		return writeYAML(w, reports)
	case config.OutputJSON:
		return writeJSON(w, reports)
	}
	if len(reports) == 0 {
		return nil
	}

	first := reports[0]
	fmt.Fprintf(w, "Comparing queues (%d producers, %d consumers, %d items)\n",
		first.Producers, first.Consumers, first.Produced)
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\nResults (put + take per item):\n")
	fastest, slowest := first, first
	for _, r := range reports {
		fmt.Fprintf(w, "  %-11s %v (%.2f ns/item)\n", displayName(r.Impl)+":", r.Elapsed, r.NsPerItem())
		if r.NsPerItem() < fastest.NsPerItem() {
			fastest = r
		}
		if r.NsPerItem() > slowest.NsPerItem() {
			slowest = r
		}
	}

	if fastest.NsPerItem() > 0 && fastest.Impl != slowest.Impl {
		fmt.Fprintf(w, "\n  Speedup:  %.2fx (%s faster)\n",
			slowest.NsPerItem()/fastest.NsPerItem(), displayName(fastest.Impl))
	}

	fmt.Fprintf(w, "\nThroughput:\n")
	for _, r := range reports {
		fmt.Fprintf(w, "  %-11s %.2f M items/sec\n", displayName(r.Impl)+":", r.Throughput())
	}
	return nil
}

func displayName(impl string) string {
	if impl == "" {
		return impl
	}
	return strings.ToUpper(impl[:1]) + impl[1:]
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
