package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int64
	started := make(chan struct{})
	release := make(chan struct{})

	fn := func() (any, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return "2025", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 10)
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err, _ := g.Do("state", fn)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		results[0] = v
	}()
	<-started

	for i := 1; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err, _ := g.Do("state", fn)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single underlying call, got %d", got)
	}
	for i, v := range results {
		if v != "2025" {
			t.Fatalf("caller %d got %v", i, v)
		}
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int64

	for _, key := range []string{"a", "b"} {
		if _, err, _ := g.Do(key, func() (any, error) {
			calls.Add(1)
			return nil, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected one call per key, got %d", got)
	}
}
