// Command queuebench drives the hand-off and broadcast queues with
// concurrent producers and consumers.
//
// Usage:
//
//	go run ./cmd/queuebench run -p 4 -n 8 --items 1000000
//	go run ./cmd/queuebench compare --try-ratio 0.25
//	go run ./cmd/queuebench config
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/randomizedcoder/handoff-queue/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
