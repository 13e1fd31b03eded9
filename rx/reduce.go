package rx

import (
	"context"
	"sync"
)

// Halt is the reason a fold stopped accumulating.
type Halt int8

const (
	// HaltPredicate means the keep-going predicate returned false.
	HaltPredicate Halt = iota
	// HaltCompleted means the source completed.
	HaltCompleted
	// HaltFailed means the source failed or the combine function returned an error.
	HaltFailed
	// HaltCanceled means the caller's context was done first.
	HaltCanceled
)

func (h Halt) String() string {
	switch h {
	case HaltPredicate:
		return "PREDICATE"
	case HaltCompleted:
		return "COMPLETED"
	case HaltFailed:
		return "FAILED"
	case HaltCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// Folded is the result of Reduce.
type Folded[R any] struct {
	// Value is the last accumulator.
	Value R
	// Reason tells why accumulation stopped.
	Reason Halt
	// Err is the failure for HaltFailed and the context error for HaltCanceled.
	Err error
}

// Reduce subscribes to source and folds its elements into one value.
//
// Before combining each element, keepGoing is tested against the accumulator. The first of
// {keepGoing false, Completed, Failed, combine error, ctx done} halts the fold for good and
// any later outcome is ignored. Reduce blocks until the fold halts.
//
// Reduce does not dispose the subscription when it halts by itself; it only cancels the
// context handed to the producer, so looping producers stop at their next checkpoint.
// The subscription is disposed when ctx is done first.
func Reduce[T, R any](ctx context.Context, source Producer[T], seed R, keepGoing func(R) bool, combine func(R, T) (R, error)) Folded[R] {
	sub, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		ended  bool
		done   = make(chan struct{})
		result = Folded[R]{Value: seed}
	)
	// must hold mu
	halt := func(reason Halt, err error) {
		ended = true
		result.Reason = reason
		result.Err = err
		close(done)
		cancel()
	}

	dispose := source(sub, func(o Outcome[T]) {
		mu.Lock()
		defer mu.Unlock()
		if ended {
			return
		}
		switch o.kind {
		case KindNext:
			if !keepGoing(result.Value) {
				halt(HaltPredicate, nil)
				return
			}
			v, err := combine(result.Value, o.value)
			if err != nil {
				halt(HaltFailed, err)
				return
			}
			result.Value = v
		case KindCompleted:
			halt(HaltCompleted, nil)
		default:
			halt(HaltFailed, o.err)
		}
	})

	select {
	case <-done:
	case <-ctx.Done():
		mu.Lock()
		canceled := !ended
		if canceled {
			halt(HaltCanceled, ctx.Err())
		}
		mu.Unlock()
		if canceled {
			dispose.Dispose()
		}
	}

	mu.Lock()
	defer mu.Unlock()
	return result
}
