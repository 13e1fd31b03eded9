package rx

import (
	"context"
	"io"
	"sync"

	"github.com/minrx/minrx-go/logger"
	"github.com/panjf2000/ants"
	"go.uber.org/atomic"
)

var (
	immediateScheduler = SchedulerFunc(func(ctx context.Context, work Work) Disposer {
		work(ctx)
		return Nop
	})
	workerScheduler = NewWorker()
	pooledScheduler = NewPooled(ants.DEFAULT_ANTS_POOL_SIZE)
)

// Work is a unit of work which will be executed in scheduler.
// The context is done once the work is asked to stop at its next checkpoint.
type Work = func(ctx context.Context)

// Scheduler decides where and when a unit of work runs.
// Each call of Schedule creates one independent execution.
type Scheduler interface {
	// Schedule register work to do and returns a Disposer cancelling it.
	Schedule(ctx context.Context, work Work) Disposer
}

// SchedulerFunc is an adapter to allow the use of ordinary functions as Scheduler.
type SchedulerFunc func(ctx context.Context, work Work) Disposer

// Schedule calls f(ctx, work).
func (f SchedulerFunc) Schedule(ctx context.Context, work Work) Disposer {
	return f(ctx, work)
}

// Immediate returns a scheduler which runs work synchronously on the caller's goroutine.
// Its Disposer does nothing: in-flight work cannot be stopped.
func Immediate() Scheduler {
	return immediateScheduler
}

// Worker returns the shared dedicated-worker scheduler.
func Worker() *WorkerScheduler {
	return workerScheduler
}

// Pooled returns the shared pooled-task scheduler.
func Pooled() *PooledScheduler {
	return pooledScheduler
}

func orImmediate(s Scheduler) Scheduler {
	if s == nil {
		return immediateScheduler
	}
	return s
}

// WorkerScheduler starts one new goroutine for every scheduled work.
//
// Disposal cancels the context handed to the work, which must observe it at its own
// checkpoints. Running work is never terminated forcibly; use Close or Wait to join it.
type WorkerScheduler struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	seq     uint64
	cancels map[uint64]context.CancelFunc
	closed  bool
}

var _ io.Closer = (*WorkerScheduler)(nil)

// NewWorker returns a new dedicated-worker scheduler.
func NewWorker() *WorkerScheduler {
	return &WorkerScheduler{
		cancels: make(map[uint64]context.CancelFunc),
	}
}

// Schedule starts work on a new goroutine.
func (p *WorkerScheduler) Schedule(ctx context.Context, work Work) Disposer {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		cancel()
		logger.Warnf("rx: %s\n", ErrSchedulerClosed)
		return Nop
	}
	id := p.seq
	p.seq++
	p.cancels[id] = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		defer p.release(id)
		work(ctx)
	}()
	return Disposer(cancel)
}

// release forgets a returned work. Its context stays alive: subscriptions the work
// started on other schedulers still observe it until the Disposer is called.
func (p *WorkerScheduler) release(id uint64) {
	p.mu.Lock()
	delete(p.cancels, id)
	p.mu.Unlock()
}

// Wait blocks until every work started so far has returned.
func (p *WorkerScheduler) Wait() {
	p.wg.Wait()
}

// Close cancels all running work, rejects new work and waits for every goroutine to exit.
func (p *WorkerScheduler) Close() error {
	p.mu.Lock()
	p.closed = true
	for _, cancel := range p.cancels {
		cancel()
	}
	p.mu.Unlock()
	p.wg.Wait()
	return nil
}

// PooledScheduler submits work to a goroutine pool.
//
// Every scheduled work is guarded by a cancellation flag checked right before it starts.
// Disposal sets the flag: work which has not started yet never runs, running work is
// never interrupted.
//
// Schedule never waits for a free goroutine, so work scheduled from inside pooled work
// cannot starve a small pool.
type PooledScheduler struct {
	pool *ants.Pool
	wg   sync.WaitGroup
}

var _ io.Closer = (*PooledScheduler)(nil)

// NewPooled returns a new pooled-task scheduler backed by a pool with size goroutines.
func NewPooled(size int) *PooledScheduler {
	pool, err := ants.NewPool(size)
	if err != nil {
		panic(err)
	}
	return &PooledScheduler{
		pool: pool,
	}
}

// Schedule submits work to the pool and returns at once.
// The submission itself waits on its own goroutine while every goroutine of the pool is busy.
func (p *PooledScheduler) Schedule(ctx context.Context, work Work) Disposer {
	cancelled := atomic.NewBool(false)
	task := guard(ctx, cancelled, work)
	p.wg.Add(1)
	go func() {
		err := p.pool.Submit(func() {
			defer p.wg.Done()
			task()
		})
		if err != nil {
			p.wg.Done()
			logger.Errorf("rx: submit work to pool failed: %s\n", err)
		}
	}()
	return func() {
		cancelled.Store(true)
	}
}

// Wait blocks until every work scheduled so far has run, been skipped or been dropped.
func (p *PooledScheduler) Wait() {
	p.wg.Wait()
}

// Running returns the number of busy goroutines.
func (p *PooledScheduler) Running() int {
	return p.pool.Running()
}

// Close releases the pool.
func (p *PooledScheduler) Close() error {
	return p.pool.Release()
}

func guard(ctx context.Context, cancelled *atomic.Bool, work Work) func() {
	return func() {
		if cancelled.Load() || ctx.Err() != nil {
			return
		}
		work(ctx)
	}
}
