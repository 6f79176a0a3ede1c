package boundary

import "golang.org/x/exp/constraints"

// Narrow converts a non-negative length to T, reporting false when it does
// not fit.
func Narrow[T constraints.Integer](n int) (T, bool) {
	if n < 0 {
		return 0, false
	}
	t := T(n)
	if t < 0 || int(t) != n {
		return 0, false
	}
	return t, true
}
