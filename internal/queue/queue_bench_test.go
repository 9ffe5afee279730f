package queue_test

import (
	"runtime"
	"testing"

	"github.com/randomizedcoder/handoff-queue/internal/queue"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkInt int
var sinkBool bool

// Direct type benchmarks (uncontended fast path)

func BenchmarkQueue_Handoff_PutTake_Direct(b *testing.B) {
	q := queue.New[int]()
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	for i := 0; i < b.N; i++ {
		_ = q.Put(i)
		val, _ = q.Take()
	}
	sinkInt = val
}

func BenchmarkQueue_Broadcast_PutTake_Direct(b *testing.B) {
	q := queue.NewBroadcast[int]()
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	for i := 0; i < b.N; i++ {
		_ = q.Put(i)
		val, _ = q.Take()
	}
	sinkInt = val
}

// Interface benchmarks (with dynamic dispatch overhead)

func BenchmarkQueue_Handoff_PutTryTake_Interface(b *testing.B) {
	var q queue.Queue[int] = queue.New[int]()
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		_ = q.Put(i)
		val, ok = q.TryTake()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Broadcast_PutTryTake_Interface(b *testing.B) {
	var q queue.Queue[int] = queue.NewBroadcast[int]()
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		_ = q.Put(i)
		val, ok = q.TryTake()
	}
	sinkInt = val
	sinkBool = ok
}

// Hand-off benchmarks: consumers are parked, so every Put wakes one.

func benchmarkParked(b *testing.B, q queue.Queue[int], consumers int) {
	done := make(chan struct{})
	for c := 0; c < consumers; c++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for {
				if _, err := q.Take(); err != nil {
					return
				}
			}
		}()
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = q.Put(i)
	}
	for q.Processed() < uint64(b.N) {
		runtime.Gosched()
	}

	b.StopTimer()
	q.Close()
	for c := 0; c < consumers; c++ {
		<-done
	}
}

func BenchmarkQueue_Handoff_Parked_8C(b *testing.B) {
	benchmarkParked(b, queue.New[int](), 8)
}

func BenchmarkQueue_Broadcast_Parked_8C(b *testing.B) {
	benchmarkParked(b, queue.NewBroadcast[int](), 8)
}

func BenchmarkQueue_Handoff_Parked_64C(b *testing.B) {
	benchmarkParked(b, queue.New[int](), 64)
}

func BenchmarkQueue_Broadcast_Parked_64C(b *testing.B) {
	benchmarkParked(b, queue.NewBroadcast[int](), 64)
}

// Parallel producers and consumers

func BenchmarkQueue_Handoff_Parallel(b *testing.B) {
	q := queue.New[int]()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		var val int
		for pb.Next() {
			_ = q.Put(1)
			val, _ = q.Take()
		}
		sinkInt = val
	})
}

func BenchmarkQueue_Broadcast_Parallel(b *testing.B) {
	q := queue.NewBroadcast[int]()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		var val int
		for pb.Next() {
			_ = q.Put(1)
			val, _ = q.Take()
		}
		sinkInt = val
	})
}
