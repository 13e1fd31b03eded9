// Package bridge converts between rx producers and the outside world:
// channels, asynchronous calls, websocket connections and plain slices.
package bridge

import (
	"context"

	"github.com/minrx/minrx-go/rx"
	"go.uber.org/atomic"
)

// FromChan returns a producer forwarding values until values is closed, which completes
// the sequence, or an error arrives on errs, which fails it. errs may be nil.
//
// The channels are shared: concurrent subscriptions compete for the same values.
// Disposal stops forwarding.
func FromChan[T any](values <-chan T, errs <-chan error) rx.Producer[T] {
	return func(ctx context.Context, o rx.Observer[T]) rx.Disposer {
		return rx.Worker().Schedule(ctx, func(ctx context.Context) {
			for {
				select {
				case <-ctx.Done():
					return
				case v, ok := <-values:
					if !ok {
						o(rx.Completed[T]())
						return
					}
					o(rx.Next(v))
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					o(rx.Failed[T](err))
					return
				}
			}
		})
	}
}

// FromFunc returns a producer calling fn once per subscription on the scheduler.
// It emits the result followed by Completed, or Failed when fn returns an error.
// After disposal fn's context is canceled and its result is never delivered.
func FromFunc[T any](fn func(ctx context.Context) (T, error), scheduler rx.Scheduler) rx.Producer[T] {
	if scheduler == nil {
		scheduler = rx.Immediate()
	}
	return func(ctx context.Context, o rx.Observer[T]) rx.Disposer {
		ctx, cancel := context.WithCancel(ctx)
		disposed := atomic.NewBool(false)
		d := scheduler.Schedule(ctx, func(ctx context.Context) {
			v, err := fn(ctx)
			// no lock is held while emitting: the observer may dispose
			if disposed.Load() {
				return
			}
			if err != nil {
				o(rx.Failed[T](err))
				return
			}
			o(rx.Next(v))
			if disposed.Load() {
				return
			}
			o(rx.Completed[T]())
		})
		return rx.Disposer(func() {
			disposed.Store(true)
			cancel()
			d.Dispose()
		}).Once()
	}
}
