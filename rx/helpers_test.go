package rx_test

import (
	"context"
	"sync"
	"time"

	"github.com/minrx/minrx-go/rx"
	"github.com/pkg/errors"
)

// record subscribes without the dispatch layer and returns every outcome it saw.
// The producer must emit synchronously.
func record[T any](p rx.Producer[T]) []rx.Outcome[T] {
	var got []rx.Outcome[T]
	p(context.Background(), func(o rx.Outcome[T]) {
		got = append(got, o)
	})
	return got
}

var errTimeout = errors.New("timeout")

// await subscribes safely and blocks until the sequence terminates or the timeout elapses.
func await[T any](p rx.Producer[T], timeout time.Duration) ([]T, error) {
	var (
		vs   []T
		err  error
		mu   sync.Mutex
		once sync.Once
		done = make(chan struct{})
	)
	finish := func(e error) {
		once.Do(func() {
			mu.Lock()
			err = e
			mu.Unlock()
			close(done)
		})
	}
	dispose := rx.SubscribeSafe(context.Background(), p, func(v T) {
		mu.Lock()
		vs = append(vs, v)
		mu.Unlock()
	}, rx.OnComplete(func() {
		finish(nil)
	}), rx.OnError(finish))
	defer dispose()
	select {
	case <-done:
	case <-time.After(timeout):
		finish(errTimeout)
	}
	mu.Lock()
	defer mu.Unlock()
	return append([]T(nil), vs...), err
}

func values[T any](outcomes []rx.Outcome[T]) []T {
	var vs []T
	for _, o := range outcomes {
		if o.HasValue() {
			vs = append(vs, o.MustValue())
		}
	}
	return vs
}
