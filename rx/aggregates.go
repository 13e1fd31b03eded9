package rx

import "context"

func always[R any](R) bool {
	return true
}

// Sum returns the sum of all elements.
// It fails with ErrArithmeticOverflow instead of wrapping around.
func Sum[T Integer](ctx context.Context, source Producer[T]) (T, error) {
	r := Reduce(ctx, source, T(0), always[T], AddChecked[T])
	if r.Err != nil {
		return 0, r.Err
	}
	return r.Value, nil
}

// Count returns the number of elements.
func Count[T any](ctx context.Context, source Producer[T]) (int, error) {
	r := Reduce(ctx, source, 0, always[int], func(n int, _ T) (int, error) {
		return AddChecked(n, 1)
	})
	if r.Err != nil {
		return 0, r.Err
	}
	return r.Value, nil
}

type firstState[T any] struct {
	count int
	value T
}

// FirstOrDefault returns the first element, or the zero value of an empty sequence.
func FirstOrDefault[T any](ctx context.Context, source Producer[T]) (T, error) {
	r := Reduce(ctx, source, firstState[T]{}, func(s firstState[T]) bool {
		return s.count < 1
	}, func(s firstState[T], t T) (firstState[T], error) {
		return firstState[T]{count: s.count + 1, value: t}, nil
	})
	if r.Err != nil {
		var zero T
		return zero, r.Err
	}
	return r.Value.value, nil
}

// LastOrDefault returns the last element, or the zero value of an empty sequence.
func LastOrDefault[T any](ctx context.Context, source Producer[T]) (T, error) {
	var zero T
	r := Reduce(ctx, source, zero, always[T], func(_ T, t T) (T, error) {
		return t, nil
	})
	if r.Err != nil {
		return zero, r.Err
	}
	return r.Value, nil
}
