//go:build test

package library

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var typedQueries = [][]string{
	{"t", "ti", "tim", "time"},
	{"s", "sc", "sch", "scho", "schoo", "school"},
	{"時", "時間"},
	{"w", "wa", "wat", "wate", "water"},
	{"が", "がっ", "がっこ", "がっこう"},
}

func seededLibrary(t *testing.T, n int) *Library {
	t.Helper()
	l := newTestLibrary(t)
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := l.AddWord(ctx, model.WordCreatePayload{
			Word:          fmt.Sprintf("語%d", i),
			Meaning:       fmt.Sprintf("word number %d", i),
			KanjiReadings: model.Readings("ご"),
		})
		require.NoError(t, err)
	}
	return l
}

func TestMemoryLeakSearch(t *testing.T) {
	for _, iterCount := range []int{100, 500, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runSearchMemoryTest(t, iterCount)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 400},
		{workers: 4, iterationsPerWorker: 100},
		{workers: 8, iterationsPerWorker: 50},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

func runSearchMemoryTest(t *testing.T, iterations int) {
	l := seededLibrary(t, 200)
	ctx := context.Background()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	totalOps := 0
	for i := 0; i < iterations; i++ {
		for _, typed := range typedQueries {
			for _, q := range typed {
				_, err := l.SearchWords(ctx, q)
				require.NoError(t, err)
				totalOps++
			}
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory retained per search: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

// runConcurrentMemoryTest mixes searches with saves, so the index is rebuilt under load.
func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	l := seededLibrary(t, 100)
	ctx := context.Background()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		totalOps int
	)
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ops := 0
			for iter := 0; iter < iterationsPerWorker; iter++ {
				if iter%50 == 0 {
					l.AddWord(ctx, model.WordCreatePayload{
						Word:          fmt.Sprintf("新%d-%d", worker, iter),
						Meaning:       "new",
						KanjiReadings: model.Readings("しん"),
					})
				}
				for _, typed := range typedQueries {
					for _, q := range typed {
						l.SearchWords(ctx, q)
						ops++
					}
				}
			}
			mu.Lock()
			totalOps += ops
			mu.Unlock()
		}()
	}
	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterationsPerWorker, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory retained per search: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}
