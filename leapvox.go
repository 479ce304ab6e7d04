// Package leapvox drives a motion-tracked player through a voxel world at a fixed tick rate.
package leapvox

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/leapvox/oerror"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// DefaultFPS is the tick rate used when none is configured.
const DefaultFPS = 60

// Ticker is advanced once per loop iteration. *player.Player implements it.
type Ticker interface {
	Tick(dt time.Duration)
}

// Loop ticks a Ticker at a fixed rate until its context is cancelled. A tick that panics is reported
// and skipped, and the loop carries on with the next one.
type Loop struct {
	log      *logrus.Logger
	t        Ticker
	interval time.Duration
	hooks    []func(tick int64, dt time.Duration)

	ticks  atomic.Int64
	panics atomic.Int64
}

// NewLoop returns a loop ticking t fps times per second. A non-positive fps uses DefaultFPS.
func NewLoop(log *logrus.Logger, t Ticker, fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{log: log, t: t, interval: time.Second / time.Duration(fps)}
}

// OnTick adds a function called before every tick. It must be called before Run.
func (l *Loop) OnTick(f func(tick int64, dt time.Duration)) {
	l.hooks = append(l.hooks, f)
}

// Run blocks, ticking until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.log.Infof("tick loop started at %v per tick", l.interval)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.log.Infof("tick loop stopped after %d ticks (%d failed)", l.ticks.Load(), l.panics.Load())
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			l.tick(dt)
		}
	}
}

// Step runs a single tick with the delta passed.
func (l *Loop) Step(dt time.Duration) {
	l.tick(dt)
}

func (l *Loop) tick(dt time.Duration) {
	tick := l.ticks.Inc()
	defer func() {
		if err := recover(); err != nil {
			l.panics.Inc()
			l.log.Errorf("tick %d panic: %v", tick, err)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("component", "tick")
				scope.SetExtra("tick", tick)
			})

			hub.Recover(oerror.New("%v", err))
			hub.Flush(time.Second * 2)
		}
	}()

	for _, f := range l.hooks {
		f(tick, dt)
	}
	l.t.Tick(dt)
}

// Ticks returns the amount of ticks run so far.
func (l *Loop) Ticks() int64 {
	return l.ticks.Load()
}

// Panics returns the amount of ticks that panicked.
func (l *Loop) Panics() int64 {
	return l.panics.Load()
}
