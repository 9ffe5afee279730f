// Package combined provides interaction benchmarks that exercise the
// queues together with the cancel and tick packages, plus a comparison
// against the go-lock-free-ring sharded MPSC ring.
//
// These benchmarks are more representative of a real consumer loop than
// the isolated queue benchmarks, as they capture the cumulative cost of
// polling for cancellation, polling a ticker and moving an item.
package combined
