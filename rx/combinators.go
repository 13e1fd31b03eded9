package rx

import "context"

// Select transforms every element of source with selector.
func Select[T, R any](source Producer[T], selector func(T) R) Producer[R] {
	return Bind(source, func(t T) Producer[R] {
		return Return(selector(t), immediateScheduler)
	})
}

// Where keeps the elements of source for which predicate holds.
func Where[T any](source Producer[T], predicate func(T) bool) Producer[T] {
	return Bind(source, func(t T) Producer[T] {
		if predicate(t) {
			return Return(t, immediateScheduler)
		}
		return Empty[T](immediateScheduler)
	})
}

// Do calls onNext for every element before passing it downstream.
func Do[T any](source Producer[T], onNext func(T)) Producer[T] {
	return func(ctx context.Context, o Observer[T]) Disposer {
		return source(ctx, func(outcome Outcome[T]) {
			if outcome.kind == KindNext {
				onNext(outcome.value)
			}
			o(outcome)
		})
	}
}

// ForEach hands the delivery of every outcome to marshal, which decides where it runs.
func ForEach[T any](source Producer[T], marshal func(deliver func())) Producer[T] {
	return func(ctx context.Context, o Observer[T]) Disposer {
		return source(ctx, func(outcome Outcome[T]) {
			marshal(func() {
				o(outcome)
			})
		})
	}
}
