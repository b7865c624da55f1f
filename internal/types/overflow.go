package types

import "math"

// Checked 64-bit arithmetic helpers. Each returns ok=false when the
// mathematical result is not representable in the target type.

func addInt64Checked(x, y int64) (int64, bool) {
	if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
		return 0, false
	}
	return x + y, true
}

func subtractInt64Checked(x, y int64) (int64, bool) {
	if (y < 0 && x > math.MaxInt64+y) || (y > 0 && x < math.MinInt64+y) {
		return 0, false
	}
	return x - y, true
}

func multiplyInt64Checked(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	// MinInt64 has no positive counterpart.
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	r := x * y
	if r/y != x {
		return 0, false
	}
	return r, true
}

func divideInt64Checked(x, y int64) (int64, bool) {
	// MinInt64 / -1 overflows; division by zero is checked by callers.
	if x == math.MinInt64 && y == -1 {
		return 0, false
	}
	return x / y, true
}

func negateInt64Checked(x int64) (int64, bool) {
	if x == math.MinInt64 {
		return 0, false
	}
	return -x, true
}

func addUint64Checked(x, y uint64) (uint64, bool) {
	if x > math.MaxUint64-y {
		return 0, false
	}
	return x + y, true
}

func subtractUint64Checked(x, y uint64) (uint64, bool) {
	if y > x {
		return 0, false
	}
	return x - y, true
}

func multiplyUint64Checked(x, y uint64) (uint64, bool) {
	if y != 0 && x > math.MaxUint64/y {
		return 0, false
	}
	return x * y, true
}

// doubleToInt64Checked rounds half away from zero and rejects results
// outside the open interval (MinInt64, MaxInt64). The bounds are
// symmetric: 2^63, which float64(MaxInt64) rounds to, and -2^63, which
// is exactly MinInt64, are both rejected.
func doubleToInt64Checked(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	r := math.Round(v)
	if r >= float64(math.MaxInt64) || r <= float64(math.MinInt64) {
		return 0, false
	}
	return int64(r), true
}

// doubleToUint64Checked rounds half away from zero and additionally
// rejects negative magnitudes.
func doubleToUint64Checked(v float64) (uint64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	r := math.Round(v)
	if r < 0 || r >= float64(math.MaxUint64) {
		return 0, false
	}
	return uint64(r), true
}

func int64ToUint64Checked(v int64) (uint64, bool) {
	if v < 0 {
		return 0, false
	}
	return uint64(v), true
}

func uint64ToInt64Checked(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}
