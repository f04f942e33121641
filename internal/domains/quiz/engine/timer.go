package engine

import (
	"context"
	"time"
)

// TickSource starts a stream of ticks and returns the function that releases it.
type TickSource func() (ticks <-chan time.Time, stop func())

// Every ticks on a real clock.
func Every(interval time.Duration) TickSource {
	return func() (<-chan time.Time, func()) {
		ticker := time.NewTicker(interval)

		return ticker.C, ticker.Stop
	}
}

// Timer calls onTick for each tick on its own goroutine until onTick returns false
// or the timer is stopped.
type Timer struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func StartTimer(source TickSource, onTick func() bool) *Timer {
	ctx, cancel := context.WithCancel(context.Background())
	ticks, release := source()

	t := &Timer{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer release()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticks:
				if !onTick() {
					return
				}
			}
		}
	}()

	return t
}

// Stop cancels the timer and waits for its goroutine to exit. It must not be
// called from onTick.
func (t *Timer) Stop() {
	t.cancel()
	<-t.done
}

// Done is closed once the tick goroutine has exited.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}
