package rx

import (
	"context"
	"sync"

	"github.com/minrx/minrx-go/logger"
	"go.uber.org/atomic"
)

// Loop is a single goroutine running posted functions in FIFO order.
// It is both an Executor for ObserveOn and a Scheduler for SubscribeOn.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	signal chan struct{}
	done   chan struct{}
}

// NewLoop starts a new Loop.
func NewLoop() *Loop {
	l := &Loop{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

// Post enqueues fn. It never blocks.
// Functions posted after Close are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		logger.Warnf("rx: post to a closed loop\n")
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.wake()
}

// Schedule enqueues work guarded by a cancellation flag checked before it starts.
func (l *Loop) Schedule(ctx context.Context, work Work) Disposer {
	cancelled := atomic.NewBool(false)
	l.Post(guard(ctx, cancelled, work))
	return func() {
		cancelled.Store(true)
	}
}

// Close runs everything posted so far, then stops the goroutine.
// It must not be called from a function running on the loop.
func (l *Loop) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.wake()
	<-l.done
	return nil
}

func (l *Loop) wake() {
	select {
	case l.signal <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-l.signal
	}
}

var (
	_ Executor  = (*Loop)(nil)
	_ Scheduler = (*Loop)(nil)
)
