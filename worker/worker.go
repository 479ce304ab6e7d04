package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"go.uber.org/atomic"
)

// Pool runs submitted functions on a fixed set of goroutines. Panics inside a submitted function are
// reported to Sentry and do not take the worker down.
type Pool struct {
	queue  chan func()
	wg     sync.WaitGroup
	closed atomic.Bool
	mu     sync.RWMutex
}

// New starts a pool with the given amount of workers. A non-positive amount uses runtime.NumCPU().
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), workers)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for f := range p.queue {
		run(f)
	}
}

func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be run by a worker. To be used by a function that may be CPU intensive.
// It returns false if the pool was closed.
func (p *Pool) Submit(f func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() {
		return false
	}
	p.queue <- f
	return true
}

// Close stops accepting work and waits for every queued function to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed.Swap(true) {
		p.mu.Unlock()
		return
	}
	close(p.queue)
	p.mu.Unlock()
	p.wg.Wait()
}
