package plot

import "math"

// Reducer folds the values falling into one bucket.
type Reducer int

const (
	ReduceMean Reducer = iota
	ReduceMin
	ReduceMax
)

// Buckets returns how many columns Resample produces for the range.
func Buckets(xmin, xmax, points int) int {
	span := xmax - xmin
	if span <= 0 || points <= 0 {
		return 0
	}
	return min(span, points)
}

// Resample maps the part of l inside [xmin, xmax) onto equally sized buckets.
// Buckets with no value are NaN.
func Resample(l Line, xmin, xmax, points int, reduce Reducer) []float64 {
	n := Buckets(xmin, xmax, points)
	if n == 0 {
		return nil
	}
	span := xmax - xmin
	out := make([]float64, n)
	counts := make([]int, n)
	for i := range out {
		out[i] = math.NaN()
	}

	from, to := max(l.Start, xmin), min(l.End(), xmax)
	for idx := from; idx < to; idx++ {
		v := l.Values[idx-l.Start]
		b := (idx - xmin) * n / span
		switch {
		case counts[b] == 0:
			out[b] = v
		case reduce == ReduceMin:
			out[b] = math.Min(out[b], v)
		case reduce == ReduceMax:
			out[b] = math.Max(out[b], v)
		default:
			out[b] += v
		}
		counts[b]++
	}
	if reduce == ReduceMean {
		for b, c := range counts {
			if c > 1 {
				out[b] /= float64(c)
			}
		}
	}
	return out
}

// FillGaps replaces NaN buckets: leading ones take the first defined value,
// later ones repeat the previous bucket. It reports false when nothing is
// defined.
func FillGaps(values []float64) ([]float64, bool) {
	first := -1
	for i, v := range values {
		if !math.IsNaN(v) {
			first = i
			break
		}
	}
	if first < 0 {
		return values, false
	}
	out := make([]float64, len(values))
	prev := values[first]
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = prev
			continue
		}
		out[i] = v
		prev = v
	}
	return out, true
}
