package queue_test

import (
	"errors"
	"testing"
	"time"

	"github.com/randomizedcoder/handoff-queue/internal/queue"
)

type impl struct {
	name string
	new  func() queue.Queue[string]
}

func impls() []impl {
	return []impl{
		{"Handoff", func() queue.Queue[string] { return queue.New[string]() }},
		{"Broadcast", func() queue.Queue[string] { return queue.NewBroadcast[string]() }},
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestContract_Example(t *testing.T) {
	for _, tc := range impls() {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.new()

			if err := q.Put("a"); err != nil {
				t.Fatalf("Put(a): %v", err)
			}
			if err := q.Put("b"); err != nil {
				t.Fatalf("Put(b): %v", err)
			}

			if got, err := q.Take(); err != nil || got != "a" {
				t.Errorf("expected (a, nil), got (%q, %v)", got, err)
			}
			if got, err := q.Take(); err != nil || got != "b" {
				t.Errorf("expected (b, nil), got (%q, %v)", got, err)
			}
			if _, ok := q.TryTake(); ok {
				t.Error("expected TryTake() = false on empty queue")
			}

			if q.Len() != 0 {
				t.Errorf("expected Len() = 0, got %d", q.Len())
			}
			if q.Processed() != 2 {
				t.Errorf("expected Processed() = 2, got %d", q.Processed())
			}
		})
	}
}

func TestContract_FIFO(t *testing.T) {
	for _, tc := range impls() {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.new()
			items := []string{"v", "w", "x", "y", "z"}
			for _, it := range items {
				_ = q.Put(it)
			}
			if q.Len() != len(items) {
				t.Fatalf("expected Len() = %d, got %d", len(items), q.Len())
			}

			for i, want := range items {
				var got string
				if i%2 == 0 {
					v, ok := q.TryTake()
					if !ok {
						t.Fatalf("expected TryTake() = true for item %d", i)
					}
					got = v
				} else {
					v, err := q.Take()
					if err != nil {
						t.Fatalf("Take() for item %d: %v", i, err)
					}
					got = v
				}
				if got != want {
					t.Errorf("FIFO violation: expected %q, got %q", want, got)
				}
			}
		})
	}
}

func TestContract_ShutdownSafety(t *testing.T) {
	const parked = 8

	for _, tc := range impls() {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.new()
			errs := make(chan error, parked)
			for i := 0; i < parked; i++ {
				go func() {
					_, err := q.Take()
					errs <- err
				}()
			}
			waitFor(t, "parked consumers", func() bool { return q.Waiting() == parked })

			q.Close()

			for i := 0; i < parked; i++ {
				select {
				case err := <-errs:
					if !errors.Is(err, queue.ErrClosed) {
						t.Errorf("expected ErrClosed, got %v", err)
					}
				case <-time.After(2 * time.Second):
					t.Fatalf("only %d of %d consumers returned after Close", i, parked)
				}
			}

			if err := q.Put("late"); !errors.Is(err, queue.ErrClosed) {
				t.Errorf("expected Put() = ErrClosed after Close, got %v", err)
			}
			if _, err := q.Take(); !errors.Is(err, queue.ErrClosed) {
				t.Errorf("expected Take() = ErrClosed after Close, got %v", err)
			}
			if _, ok := q.TryTake(); ok {
				t.Error("expected TryTake() = false after Close")
			}
			if !q.Closed() {
				t.Error("expected Closed() = true")
			}

			// Idempotent
			q.Close()
			waitFor(t, "waiting count to drain", func() bool { return q.Waiting() == 0 })
		})
	}
}

func TestContract_CloseDropsStoredItems(t *testing.T) {
	for _, tc := range impls() {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.new()
			_ = q.Put("a")
			_ = q.Put("b")

			q.Close()

			if q.Len() != 0 {
				t.Errorf("expected Len() = 0 after Close, got %d", q.Len())
			}
			if q.Processed() != 0 {
				t.Errorf("expected dropped items not to count as processed, got %d", q.Processed())
			}
		})
	}
}

func TestContract_NoLostWakeup(t *testing.T) {
	const k = 16

	for _, tc := range impls() {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.new()
			defer q.Close()

			got := make(chan string, k)
			for i := 0; i < k; i++ {
				go func() {
					v, err := q.Take()
					if err == nil {
						got <- v
					}
				}()
			}
			waitFor(t, "parked consumers", func() bool { return q.Waiting() == k })

			for i := 0; i < k; i++ {
				_ = q.Put("item")
			}

			for i := 0; i < k; i++ {
				select {
				case <-got:
				case <-time.After(2 * time.Second):
					t.Fatalf("only %d of %d parked consumers resumed", i, k)
				}
			}
			if q.Processed() != k {
				t.Errorf("expected Processed() = %d, got %d", k, q.Processed())
			}
			if q.Waiting() != 0 {
				t.Errorf("expected Waiting() = 0, got %d", q.Waiting())
			}
		})
	}
}

func TestContract_TryTakeNeverBlocks(t *testing.T) {
	for _, tc := range impls() {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.new()
			defer q.Close()

			// Park a consumer so TryTake runs against a non-trivial state.
			go func() { _, _ = q.Take() }()
			waitFor(t, "parked consumer", func() bool { return q.Waiting() == 1 })

			start := time.Now()
			for i := 0; i < 1000; i++ {
				if _, ok := q.TryTake(); ok {
					t.Fatal("expected TryTake() = false on empty queue")
				}
			}
			if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
				t.Errorf("1000 TryTake calls took %v", elapsed)
			}
		})
	}
}

func TestContract_StatsAtQuiescence(t *testing.T) {
	for _, tc := range impls() {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.new()
			for i := 0; i < 10; i++ {
				_ = q.Put("x")
			}
			for i := 0; i < 4; i++ {
				_, _ = q.Take()
			}
			_, _ = q.TryTake()

			if q.Len() != 5 {
				t.Errorf("expected Len() = 5, got %d", q.Len())
			}
			if q.Processed() != 5 {
				t.Errorf("expected Processed() = 5, got %d", q.Processed())
			}
			if q.Waiting() != 0 {
				t.Errorf("expected Waiting() = 0, got %d", q.Waiting())
			}
		})
	}
}
