package stats

import (
	"math"
	"sort"
)

// ---------------------------------------------------------------------------
// Descriptive statistics
// ---------------------------------------------------------------------------

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance is the population variance
func Variance(values []float64) float64 {
	if len(values) < 2 || Constant(values) {
		return 0
	}
	avg := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - avg
		sumSq += diff * diff
	}
	return sumSq / float64(len(values))
}

// SampleStddev is the standard deviation with Bessel's correction (n-1)
func SampleStddev(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	return math.Sqrt(Variance(values) * n / (n - 1))
}

// Constant reports whether every value equals the first. The mean of a
// constant series is not exact in floating point, so spread computed from
// it cannot be used to detect zero variance.
func Constant(values []float64) bool {
	for _, v := range values {
		if v != values[0] {
			return false
		}
	}
	return true
}

// Quantile uses linear interpolation between closest ranks, q in [0,1]
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// IQRBounds returns the Tukey fences Q1-k*IQR and Q3+k*IQR
func IQRBounds(values []float64, k float64) (float64, float64) {
	q1 := Quantile(values, 0.25)
	q3 := Quantile(values, 0.75)
	iqr := q3 - q1
	return q1 - k*iqr, q3 + k*iqr
}

// ---------------------------------------------------------------------------
// Correlation and regression
// ---------------------------------------------------------------------------

// Pearson returns the linear correlation coefficient of two equal-length
// series. ok is false when the lengths differ, there are fewer than two
// points, or either series has zero variance; r is 0 in that case.
func Pearson(xs, ys []float64) (r float64, ok bool) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, false
	}
	if Constant(xs) || Constant(ys) {
		return 0, false
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	r = sxy / math.Sqrt(sxx*syy)
	// clamp float drift so |r| never exceeds 1
	return math.Max(-1, math.Min(1, r)), true
}

// Spearman is Pearson over fractional ranks (ties share their mean rank)
func Spearman(xs, ys []float64) (float64, bool) {
	if len(xs) != len(ys) {
		return 0, false
	}
	return Pearson(Ranks(xs), Ranks(ys))
}

// Ranks assigns 1-based ranks in ascending order; tied values receive the
// average of the ranks they span.
func Ranks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// Slope is the least-squares slope of ys against xs, 0 when xs is constant
func Slope(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}
	if Constant(xs) {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - mx
		sxy += dx * (ys[i] - my)
		sxx += dx * dx
	}
	if sxx == 0 {
		return 0
	}
	return sxy / sxx
}
