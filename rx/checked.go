package rx

import "golang.org/x/exp/constraints"

// Integer is any builtin integer type usable with checked arithmetic.
type Integer = constraints.Integer

// AddChecked returns a+b, or ErrArithmeticOverflow when the sum is not representable in T.
func AddChecked[T Integer](a, b T) (T, error) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, ErrArithmeticOverflow
	}
	return s, nil
}

// mustAdd is AddChecked for generator steps, where overflow is raised and surfaced as Failed.
func mustAdd[T Integer](a, b T) T {
	s, err := AddChecked(a, b)
	if err != nil {
		panic(err)
	}
	return s
}
