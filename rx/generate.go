package rx

import (
	"context"

	"github.com/minrx/minrx-go/logger"
)

// Generate returns a sequence produced by running a loop on the scheduler:
//
//	state := seed
//	while condition(state): emit Next(project(state)); state = step(state)
//	emit Completed
//
// A nil scheduler means Immediate. With Immediate and a condition which always holds,
// subscribing never returns.
//
// Panics raised by condition, step or project end the loop with a Failed wrapping a
// ProducerError. Panics raised by the observer are not intercepted. The loop stops
// silently once the subscription context is done.
func Generate[S, R any](seed S, condition func(S) bool, step func(S) S, project func(S) R, scheduler Scheduler) Producer[R] {
	scheduler = orImmediate(scheduler)
	return func(ctx context.Context, o Observer[R]) Disposer {
		return scheduler.Schedule(ctx, func(ctx context.Context) {
			unfold(ctx, seed, condition, step, project, o)
		})
	}
}

// Unfold is Generate emitting the states themselves.
func Unfold[S any](seed S, condition func(S) bool, step func(S) S, scheduler Scheduler) Producer[S] {
	return Generate(seed, condition, step, identity[S], scheduler)
}

func unfold[S, R any](ctx context.Context, seed S, condition func(S) bool, step func(S) S, project func(S) R, o Observer[R]) {
	var (
		index = 0
		state = seed
		ok    bool
		v     R
	)
	for {
		if ctx.Err() != nil {
			return
		}
		err := try(func() {
			if ok = condition(state); ok {
				v = project(state)
			}
		})
		if err != nil {
			o(Failed[R](NewProducerError(err)))
			return
		}
		if !ok {
			break
		}
		o(NextAt(v, index))
		index++
		if err = try(func() {
			state = step(state)
		}); err != nil {
			o(Failed[R](NewProducerError(err)))
			return
		}
	}
	o(CompletedAt[R](index))
}

func try(fn func()) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = toError(e)
			logger.Debugf("rx: generator recovered: %s\n", err)
		}
	}()
	fn()
	return
}

func identity[T any](t T) T {
	return t
}

// Empty returns a sequence which completes without any element.
func Empty[T any](scheduler Scheduler) Producer[T] {
	var zero T
	return Generate(zero, func(T) bool {
		return false
	}, identity[T], identity[T], scheduler)
}

// Return returns a sequence of a single element.
func Return[T any](value T, scheduler Scheduler) Producer[T] {
	return Generate(0, func(n int) bool {
		return n < 1
	}, func(n int) int {
		return n + 1
	}, func(int) T {
		return value
	}, scheduler)
}

// Repeat returns a sequence emitting value count times.
// A count less than one is an empty sequence.
func Repeat[T any](value T, count int, scheduler Scheduler) Producer[T] {
	return Generate(0, func(n int) bool {
		return n < count
	}, func(n int) int {
		return n + 1
	}, func(int) T {
		return value
	}, scheduler)
}

// Range returns the sequence of count integers starting at start.
// It fails with ErrInvalidCount for a negative count and with ErrArithmeticOverflow when
// the last element is not representable, before anything is scheduled.
func Range(start, count int, scheduler Scheduler) (Producer[int], error) {
	if count < 0 {
		return nil, ErrInvalidCount
	}
	if count > 0 {
		if _, err := AddChecked(start, count-1); err != nil {
			return nil, err
		}
	}
	return Generate(0, func(n int) bool {
		return n < count
	}, func(n int) int {
		return n + 1
	}, func(n int) int {
		return start + n
	}, scheduler), nil
}

// MustRange is Range which panics on invalid arguments.
func MustRange(start, count int, scheduler Scheduler) Producer[int] {
	p, err := Range(start, count, scheduler)
	if err != nil {
		panic(err)
	}
	return p
}

// Naturals returns the infinite sequence 0, 1, 2, ...
// Once the successor is not representable in T the sequence fails with ErrArithmeticOverflow.
func Naturals[T Integer](scheduler Scheduler) Producer[T] {
	return Unfold(T(0), func(T) bool {
		return true
	}, func(n T) T {
		return mustAdd(n, 1)
	}, scheduler)
}

// Throw returns a sequence which fails with err.
func Throw[T any](err error, scheduler Scheduler) Producer[T] {
	scheduler = orImmediate(scheduler)
	return func(ctx context.Context, o Observer[T]) Disposer {
		return scheduler.Schedule(ctx, func(ctx context.Context) {
			o(Failed[T](err))
		})
	}
}
