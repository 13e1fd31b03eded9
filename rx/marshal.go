package rx

import (
	"context"
	"sync"
)

// Executor is a target execution context outcomes can be marshaled onto.
// Post must run the functions one at a time, in the order they were posted.
type Executor interface {
	Post(fn func())
}

// ExecutorFunc is an adapter to allow the use of ordinary functions as Executor.
type ExecutorFunc func(fn func())

// Post calls f(fn).
func (f ExecutorFunc) Post(fn func()) {
	f(fn)
}

// Inline is an Executor running every function on the posting goroutine.
var Inline Executor = ExecutorFunc(func(fn func()) {
	fn()
})

// SubscribeOn defers the subscription to source onto the scheduler, which controls where
// the side effects of subscribing, such as a generator loop, run.
func SubscribeOn[T any](source Producer[T], scheduler Scheduler) Producer[T] {
	scheduler = orImmediate(scheduler)
	return func(ctx context.Context, o Observer[T]) Disposer {
		subs := &composite{}
		subs.Add(scheduler.Schedule(ctx, func(ctx context.Context) {
			subs.Add(source(ctx, o))
		}))
		return subs.Dispose
	}
}

// ObserveOn marshals every outcome of source onto the executor.
// Posting is serialized by a lock, so concurrent upstream emissions reach an ordered
// executor, like Loop, one at a time and never interleaved.
func ObserveOn[T any](source Producer[T], executor Executor) Producer[T] {
	return func(ctx context.Context, o Observer[T]) Disposer {
		var mu sync.Mutex
		return ForEach(source, func(deliver func()) {
			mu.Lock()
			defer mu.Unlock()
			executor.Post(deliver)
		})(ctx, o)
	}
}
