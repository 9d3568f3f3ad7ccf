//go:build test

package starter

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestSearchLeaksNothing(t *testing.T) {
	configs := []struct {
		workers    int
		iterations int
	}{
		{workers: 1, iterations: 200},
		{workers: 4, iterations: 100},
		{workers: 16, iterations: 50},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterations), func(t *testing.T) {
			runLeakTest(t, config.workers, config.iterations)
		})
	}
}

func TestConcurrentCallers(t *testing.T) {
	f := newFinder(t, fiveLetter, 5, Options{Workers: 4})
	want, err := f.BestKGroups(context.Background(), 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for caller := 0; caller < 8; caller++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				got, err := f.BestKGroups(context.Background(), 2, 2)
				if err != nil || len(got) != len(want) {
					t.Errorf("concurrent call returned %d groups, %v", len(got), err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func runLeakTest(t *testing.T, workers, iterations int) {
	f := newFinder(t, fiveLetter, 5, Options{Workers: workers})

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		if _, err := f.BestKGroups(context.Background(), 2, i%4); err != nil {
			t.Fatal(err)
		}
		// canceled searches must release their workers too
		ctx, cancel := context.WithTimeout(context.Background(), time.Microsecond)
		f.BestKGroups(ctx, 3, 0)
		cancel()
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(2*iterations)

	t.Logf("workers=%d iterations=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterations, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive retained memory per search: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}
