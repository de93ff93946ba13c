// Package aggregate computes trailing-window sums and means over sample
// series.
//
// RunningSum and RunningMean are the batch forms: a discrete convolution with
// a length-N constant kernel, keeping only outputs whose window lies fully
// inside the input. Output j therefore belongs to input index j+N-1.
//
// Accumulator produces the same values one sample at a time in O(1), which is
// what the live view uses so refresh cost does not grow with history length.
package aggregate

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects the operator applied over the window.
type Kind int

const (
	Sum Kind = iota
	Mean
)

func (k Kind) String() string {
	if k == Mean {
		return "mean"
	}
	return "sum"
}

// Spec names one aggregate view, e.g. "mean:100".
type Spec struct {
	Kind   Kind
	Window int
}

func (s Spec) String() string {
	return fmt.Sprintf("%s:%d", s.Kind, s.Window)
}

// ParseSpec parses "kind:window" where kind is sum or mean.
func ParseSpec(text string) (Spec, error) {
	kindText, windowText, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return Spec{}, fmt.Errorf("aggregate %q: want kind:window", text)
	}
	var kind Kind
	switch strings.ToLower(strings.TrimSpace(kindText)) {
	case "sum":
		kind = Sum
	case "mean", "avg":
		kind = Mean
	default:
		return Spec{}, fmt.Errorf("aggregate %q: unknown kind %q", text, kindText)
	}
	window, err := strconv.Atoi(strings.TrimSpace(windowText))
	if err != nil || window <= 0 {
		return Spec{}, fmt.Errorf("aggregate %q: window must be a positive integer", text)
	}
	return Spec{Kind: kind, Window: window}, nil
}

// ParseSpecs parses every entry, failing on the first invalid one.
func ParseSpecs(texts []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(texts))
	for _, text := range texts {
		spec, err := ParseSpec(text)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// RunningSum returns the sums of every full window of n consecutive values.
// It is empty when n <= 0 or n > len(values).
func RunningSum(values []float64, n int) []float64 {
	if n <= 0 || n > len(values) {
		return nil
	}
	out := make([]float64, len(values)-n+1)
	var sum float64
	for _, v := range values[:n] {
		sum += v
	}
	out[0] = sum
	for k := n; k < len(values); k++ {
		sum += values[k] - values[k-n]
		out[k-n+1] = sum
	}
	return out
}

// RunningMean is RunningSum divided by n.
func RunningMean(values []float64, n int) []float64 {
	out := RunningSum(values, n)
	for i := range out {
		out[i] /= float64(n)
	}
	return out
}

// Compute dispatches to RunningSum or RunningMean.
func Compute(values []float64, spec Spec) []float64 {
	if spec.Kind == Mean {
		return RunningMean(values, spec.Window)
	}
	return RunningSum(values, spec.Window)
}
