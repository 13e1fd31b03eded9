package rx

import (
	"context"

	"github.com/google/uuid"
	"github.com/minrx/minrx-go/logger"
	"go.uber.org/atomic"
)

type handlers struct {
	fnOnComplete func()
	fnOnError    func(error)
}

// SubscribeOption is option of subscription.
// You can call OnComplete or OnError.
type SubscribeOption func(*handlers)

// OnComplete returns a SubscribeOption handling Completed.
func OnComplete(onComplete func()) SubscribeOption {
	return func(h *handlers) {
		h.fnOnComplete = onComplete
	}
}

// OnError returns a SubscribeOption handling Failed and, for SubscribeSafe, panics raised
// by the other handlers.
func OnError(onError func(error)) SubscribeOption {
	return func(h *handlers) {
		h.fnOnError = onError
	}
}

func newHandlers(opts []SubscribeOption) *handlers {
	h := &handlers{}
	for _, opt := range opts {
		opt(h)
	}
	if h.fnOnComplete == nil {
		h.fnOnComplete = func() {}
	}
	if h.fnOnError == nil {
		h.fnOnError = func(error) {}
	}
	return h
}

// Subscribe subscribes to source and dispatches its outcomes to the handlers.
//
// A Failed outcome, and any panic raised by the handlers, is re-raised as a panic on the
// goroutine the producer emits from. Once a terminal outcome is dispatched every later
// outcome is dropped.
func Subscribe[T any](ctx context.Context, source Producer[T], onNext func(T), opts ...SubscribeOption) Disposer {
	return subscribe(ctx, source, onNext, newHandlers(opts), false)
}

// SubscribeSafe is Subscribe which never panics: Failed outcomes and panics raised by
// onNext or OnComplete are handed to OnError. Without OnError they are swallowed.
func SubscribeSafe[T any](ctx context.Context, source Producer[T], onNext func(T), opts ...SubscribeOption) Disposer {
	return subscribe(ctx, source, onNext, newHandlers(opts), true)
}

func subscribe[T any](ctx context.Context, source Producer[T], onNext func(T), h *handlers, safe bool) Disposer {
	if onNext == nil {
		onNext = func(T) {}
	}
	var (
		stopped atomic.Bool
		id      string
	)
	if logger.IsDebugEnabled() {
		id = uuid.New().String()
		logger.Debugf("rx: subscription %s started\n", id)
	}
	drop := func(o Outcome[T]) {
		if logger.IsDebugEnabled() {
			logger.Debugf("rx: subscription %s dropped %s after terminal outcome\n", id, o)
		}
	}
	return source(ctx, func(o Outcome[T]) {
		if stopped.Load() {
			drop(o)
			return
		}
		if safe {
			defer func() {
				if e := recover(); e != nil {
					stopped.Store(true)
					h.fnOnError(toError(e))
				}
			}()
		}
		switch o.kind {
		case KindNext:
			onNext(o.value)
		case KindFailed:
			if !stopped.CompareAndSwap(false, true) {
				drop(o)
				return
			}
			if !safe {
				panic(o.err)
			}
			h.fnOnError(o.err)
		default:
			if !stopped.CompareAndSwap(false, true) {
				drop(o)
				return
			}
			h.fnOnComplete()
		}
	})
}
