package rx

import (
	"context"

	"go.uber.org/atomic"
)

// Bind is the monadic sequencing primitive.
//
// For each element of source it subscribes to selector(element) and forwards the inner
// Next outcomes downstream, re-indexed in forwarding order; an inner Completed is
// swallowed. A Failed from either side is forwarded as Failed and ends the sequence.
// The source Completed is forwarded once every inner subscription started so far has
// terminated.
//
// Inner sequences scheduled independently may interleave in any order.
func Bind[T, R any](source Producer[T], selector func(T) Producer[R]) Producer[R] {
	return func(ctx context.Context, o Observer[R]) Disposer {
		b := &binder[T, R]{
			selector: selector,
			o:        o,
			active:   atomic.NewInt64(1),
			emitted:  atomic.NewInt64(0),
		}
		b.subs.Add(source(ctx, b.onOuter(ctx)))
		return b.subs.Dispose
	}
}

type binder[T, R any] struct {
	selector func(T) Producer[R]
	o        Observer[R]
	subs     composite
	// the source and every running inner subscription
	active  *atomic.Int64
	emitted *atomic.Int64
	stopped atomic.Bool
}

func (p *binder[T, R]) onOuter(ctx context.Context) Observer[T] {
	var terminated atomic.Bool
	return func(outer Outcome[T]) {
		if p.stopped.Load() || terminated.Load() {
			return
		}
		switch outer.kind {
		case KindNext:
			if p.subs.IsDisposed() {
				return
			}
			p.active.Inc()
			key := p.subs.Reserve()
			p.subs.Set(key, p.selector(outer.value)(ctx, p.onInner(key)))
		case KindCompleted:
			if terminated.CompareAndSwap(false, true) {
				p.release()
			}
		default:
			if terminated.CompareAndSwap(false, true) {
				p.fail(outer.err)
			}
		}
	}
}

func (p *binder[T, R]) onInner(key uint64) Observer[R] {
	var terminated atomic.Bool
	return func(inner Outcome[R]) {
		if p.stopped.Load() || terminated.Load() {
			return
		}
		switch inner.kind {
		case KindNext:
			p.o(NextAt(inner.value, int(p.emitted.Inc()-1)))
		case KindCompleted:
			if terminated.CompareAndSwap(false, true) {
				p.subs.Remove(key)
				p.release()
			}
		default:
			if terminated.CompareAndSwap(false, true) {
				p.subs.Remove(key)
				p.fail(inner.err)
			}
		}
	}
}

func (p *binder[T, R]) release() {
	if p.active.Dec() > 0 {
		return
	}
	if p.stopped.CompareAndSwap(false, true) {
		p.o(CompletedAt[R](int(p.emitted.Load())))
	}
}

func (p *binder[T, R]) fail(err error) {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	p.o(Failed[R](err))
	p.subs.Dispose()
}
