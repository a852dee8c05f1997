package celadon

import (
	"context"
	"time"

	"github.com/celadon-tui/celadon/internal/debug"
)

// Watcher is a background source of updates. Watchers added with
// Application.Watch start when Run starts and stop with it.
type Watcher interface {
	// Watch runs until ctx is done. Work that touches widgets must be
	// passed to queue, which runs it on the frame loop.
	Watch(ctx context.Context, queue func(func())) error
}

type channelWatcher[T any] struct {
	ch <-chan T
	fn func(T)
}

// WatchChannel returns a watcher that calls fn on the frame loop for each
// value received on ch. It stops when ch is closed.
//
//	lines := make(chan string)
//	app.Watch(celadon.WatchChannel(lines, func(s string) {
//	    log.SetContent(s)
//	}))
func WatchChannel[T any](ch <-chan T, fn func(T)) Watcher {
	return channelWatcher[T]{ch: ch, fn: fn}
}

func (w channelWatcher[T]) Watch(ctx context.Context, queue func(func())) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-w.ch:
			if !ok {
				return nil
			}
			queue(func() { w.fn(v) })
		}
	}
}

type intervalWatcher struct {
	interval time.Duration
	fn       func()
}

// Every returns a watcher that calls fn on the frame loop once per
// interval.
func Every(interval time.Duration, fn func()) Watcher {
	return intervalWatcher{interval: interval, fn: fn}
}

func (w intervalWatcher) Watch(ctx context.Context, queue func(func())) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			debug.Log("interval watcher ticked after %v", w.interval)
			queue(w.fn)
		}
	}
}
