package rx

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error defines.
var (
	// ErrValueAbsent is returned when reading a value from an outcome that is not a Next.
	ErrValueAbsent = errors.New("rx: value absent")
	// ErrArithmeticOverflow is returned by checked numeric combinators instead of wrapping.
	ErrArithmeticOverflow = errors.New("rx: arithmetic overflow")
	// ErrInvalidCount is returned when a sequence constructor receives a negative count.
	ErrInvalidCount = errors.New("rx: count cannot be negative")
	// ErrSchedulerClosed is returned when work is submitted to a released scheduler.
	ErrSchedulerClosed = errors.New("rx: scheduler has been closed")
)

// ProducerError wraps a failure raised while a producer was generating elements.
type ProducerError struct {
	err error
}

func (p *ProducerError) Error() string {
	return fmt.Sprintf("rx: producer failed: %s", p.err)
}

// Cause returns the wrapped failure.
func (p *ProducerError) Cause() error {
	return p.err
}

// Unwrap returns the wrapped failure.
func (p *ProducerError) Unwrap() error {
	return p.err
}

// NewProducerError wraps err as a producer failure.
// Wrapping an existing ProducerError returns it unchanged.
func NewProducerError(err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*ProducerError); ok {
		return pe
	}
	return &ProducerError{err: err}
}

// toError converts a recovered panic value into an error.
func toError(e interface{}) error {
	switch v := e.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return errors.Errorf("%v", v)
	}
}
