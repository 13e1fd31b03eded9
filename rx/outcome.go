package rx

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the case of an Outcome.
type Kind int8

const (
	// KindNext carries an element.
	KindNext Kind = iota
	// KindCompleted terminates a sequence successfully.
	KindCompleted
	// KindFailed terminates a sequence with an error.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "NEXT"
	case KindCompleted:
		return "COMPLETED"
	case KindFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Outcome is a single notification pushed from a producer to an observer.
// It is exactly one of Next, Completed or Failed.
type Outcome[T any] struct {
	kind    Kind
	value   T
	err     error
	index   int
	indexed bool
}

// Next returns an outcome carrying v.
func Next[T any](v T) Outcome[T] {
	return Outcome[T]{kind: KindNext, value: v}
}

// NextAt returns an outcome carrying v tagged with a diagnostic index.
func NextAt[T any](v T, index int) Outcome[T] {
	return Outcome[T]{kind: KindNext, value: v, index: index, indexed: true}
}

// Completed returns a successful terminal outcome.
func Completed[T any]() Outcome[T] {
	return Outcome[T]{kind: KindCompleted}
}

// CompletedAt returns a successful terminal outcome tagged with a diagnostic index.
func CompletedAt[T any](index int) Outcome[T] {
	return Outcome[T]{kind: KindCompleted, index: index, indexed: true}
}

// Failed returns a failed terminal outcome.
func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{kind: KindFailed, err: err}
}

// Kind returns the case of current outcome.
func (o Outcome[T]) Kind() Kind {
	return o.kind
}

// HasValue returns true if current outcome is a Next.
func (o Outcome[T]) HasValue() bool {
	return o.kind == KindNext
}

// IsTerminal returns true for Completed and Failed.
func (o Outcome[T]) IsTerminal() bool {
	return o.kind != KindNext
}

// Value returns the element of a Next.
// Reading it from any other case returns ErrValueAbsent, with the failure attached for Failed.
func (o Outcome[T]) Value() (v T, err error) {
	switch o.kind {
	case KindNext:
		v = o.value
	case KindFailed:
		err = errors.Wrapf(ErrValueAbsent, "failed outcome: %v", o.err)
	default:
		err = ErrValueAbsent
	}
	return
}

// MustValue returns the element of a Next and panics otherwise.
func (o Outcome[T]) MustValue() T {
	v, err := o.Value()
	if err != nil {
		panic(err)
	}
	return v
}

// Err returns the failure of a Failed outcome, nil otherwise.
func (o Outcome[T]) Err() error {
	if o.kind != KindFailed {
		return nil
	}
	return o.err
}

// Index returns the diagnostic index and whether one was assigned.
func (o Outcome[T]) Index() (int, bool) {
	return o.index, o.indexed
}

// Match calls exactly one of the handlers according to the case.
// Nil handlers are skipped.
func (o Outcome[T]) Match(onNext func(T), onCompleted func(), onFailed func(error)) {
	switch o.kind {
	case KindNext:
		if onNext != nil {
			onNext(o.value)
		}
	case KindCompleted:
		if onCompleted != nil {
			onCompleted()
		}
	case KindFailed:
		if onFailed != nil {
			onFailed(o.err)
		}
	}
}

func (o Outcome[T]) String() string {
	switch o.kind {
	case KindNext:
		return fmt.Sprintf("Next(%v)", o.value)
	case KindFailed:
		return fmt.Sprintf("Failed(%v)", o.err)
	default:
		return "Completed()"
	}
}
