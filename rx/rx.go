// Package rx is a minimal push-based reactive core built from a generator, a folder and bind.
package rx

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

type (
	// Observer receives one outcome at a time.
	Observer[T any] func(Outcome[T])

	// Disposer releases the resources of one subscription.
	// Disposers created by this package can be invoked any number of times.
	Disposer func()

	// Producer starts emitting outcomes to the observer and returns a Disposer.
	// Every invocation is an independent execution, so a Producer can be subscribed many times.
	Producer[T any] func(ctx context.Context, o Observer[T]) Disposer
)

// Disposable is a disposable resource.
type Disposable interface {
	// Dispose dispose current resource.
	Dispose()
	// IsDisposed returns true if it has been disposed.
	IsDisposed() bool
}

// Nop is a Disposer which does nothing.
func Nop() {}

// Dispose calls d if it is not nil.
func (d Disposer) Dispose() {
	if d != nil {
		d()
	}
}

// Once returns a Disposer which invokes d at most once.
func (d Disposer) Once() Disposer {
	if d == nil {
		return Nop
	}
	var once sync.Once
	return func() {
		once.Do(d)
	}
}

// Create returns the subscribe function as a Producer.
func Create[T any](subscribe func(ctx context.Context, o Observer[T]) Disposer) Producer[T] {
	return subscribe
}

// composite collects the disposers of a subscription and its inner subscriptions.
// Disposers added after disposal are disposed immediately.
type composite struct {
	mu       sync.Mutex
	disposed atomic.Bool
	seq      uint64
	items    map[uint64]Disposer
}

// Add stores d until the composite is disposed.
func (p *composite) Add(d Disposer) {
	p.Set(p.Reserve(), d)
}

// Reserve allocates a key for a disposer which is not known yet.
func (p *composite) Reserve() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.items == nil {
		p.items = make(map[uint64]Disposer)
	}
	key := p.seq
	p.seq++
	p.items[key] = nil
	return key
}

// Set binds d to a reserved key. Keys removed in the meantime are ignored.
func (p *composite) Set(key uint64, d Disposer) {
	if d == nil {
		return
	}
	p.mu.Lock()
	if p.disposed.Load() {
		p.mu.Unlock()
		d()
		return
	}
	if _, ok := p.items[key]; ok {
		p.items[key] = d
	}
	p.mu.Unlock()
}

// Remove forgets the disposer of a finished inner subscription.
func (p *composite) Remove(key uint64) {
	p.mu.Lock()
	delete(p.items, key)
	p.mu.Unlock()
}

func (p *composite) Dispose() {
	p.mu.Lock()
	if !p.disposed.CompareAndSwap(false, true) {
		p.mu.Unlock()
		return
	}
	items := p.items
	p.items = nil
	p.mu.Unlock()
	for _, d := range items {
		if d != nil {
			d()
		}
	}
}

func (p *composite) IsDisposed() bool {
	return p.disposed.Load()
}
