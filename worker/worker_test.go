package worker

import (
	"sync"
	"testing"

	"go.uber.org/atomic"
)

func TestPoolRunsEverything(t *testing.T) {
	p := New(4)
	var (
		count atomic.Int64
		wg    sync.WaitGroup
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		if !p.Submit(func() {
			defer wg.Done()
			count.Inc()
		}) {
			t.Fatalf("submit rejected on an open pool")
		}
	}
	wg.Wait()
	p.Close()
	if count.Load() != 100 {
		t.Fatalf("expected 100 runs, got %d", count.Load())
	}
}

func TestPoolSurvivesPanics(t *testing.T) {
	p := New(1)
	defer p.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	p.Submit(func() {
		defer wg.Done()
		panic("boom")
	})
	ran := false
	p.Submit(func() {
		defer wg.Done()
		ran = true
	})
	wg.Wait()
	if !ran {
		t.Fatalf("expected the worker to keep running after a panic")
	}
}

func TestSubmitAfterClose(t *testing.T) {
	p := New(2)
	p.Close()
	if p.Submit(func() {}) {
		t.Fatalf("expected submit to fail on a closed pool")
	}
	p.Close()
}
