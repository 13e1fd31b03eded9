package bridge

import (
	"context"
	"sync"

	"github.com/minrx/minrx-go/rx"
)

// ToSlice subscribes to source once and collects its values until it terminates.
// The subscription is disposed however collection ends.
func ToSlice[T any](ctx context.Context, source rx.Producer[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		values []T
		err    error
		once   sync.Once
		done   = make(chan struct{})
	)
	finish := func(e error) {
		once.Do(func() {
			mu.Lock()
			err = e
			mu.Unlock()
			close(done)
		})
	}
	dispose := rx.SubscribeSafe(ctx, source, func(v T) {
		mu.Lock()
		values = append(values, v)
		mu.Unlock()
	}, rx.OnComplete(func() {
		finish(nil)
	}), rx.OnError(finish))
	defer dispose()

	select {
	case <-done:
	case <-ctx.Done():
		finish(ctx.Err())
	}

	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		return nil, err
	}
	return append([]T(nil), values...), nil
}

// ToChan subscribes to source on a dedicated worker and puts its values into a channel
// with the given size. A failure, or the context error, is put into the error channel.
// Both channels are closed once the sequence terminates.
func ToChan[T any](ctx context.Context, source rx.Producer[T], size int) (<-chan T, <-chan error) {
	var (
		values = make(chan T, size)
		errs   = make(chan error, 1)
		mu     sync.Mutex
		closed bool
	)
	finish := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		closed = true
		if err != nil {
			errs <- err
		}
		close(values)
		close(errs)
	}
	dispose := rx.SubscribeSafe(ctx, rx.SubscribeOn(source, rx.Worker()), func(v T) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case values <- v:
		case <-ctx.Done():
		}
	}, rx.OnComplete(func() {
		finish(nil)
	}), rx.OnError(finish))
	context.AfterFunc(ctx, func() {
		finish(ctx.Err())
		dispose()
	})
	return values, errs
}
