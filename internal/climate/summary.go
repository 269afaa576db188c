package climate

import "math"

// summary holds the descriptive statistics of one non-empty sample.
type summary struct {
	n    int
	mean float64
	min  float64
	max  float64
	std  float64
}

// summarize describes vals. The second result is false for an empty sample,
// which callers must treat as "variable absent".
func summarize(vals []float64) (summary, bool) {
	if len(vals) == 0 {
		return summary{}, false
	}
	s := summary{n: len(vals), min: vals[0], max: vals[0]}
	total := 0.0
	for _, v := range vals {
		total += v
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.mean = total / float64(s.n)
	s.std = sampleStdDev(vals, s.mean)
	return s, true
}

// sampleStdDev uses the n-1 denominator. A single value has no spread
// and reports 0.
func sampleStdDev(vals []float64, mean float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

// percent returns the share of vals satisfying pred, in percent at one
// decimal. vals must be non-empty.
func percent(vals []float64, pred func(float64) bool) float64 {
	count := 0
	for _, v := range vals {
		if pred(v) {
			count++
		}
	}
	return round(float64(count)/float64(len(vals))*100, 1)
}

func mapValues(vals []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = fn(v)
	}
	return out
}
