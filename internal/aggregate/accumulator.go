package aggregate

import "github.com/gammazero/deque"

// Accumulator maintains one aggregate view incrementally. Push costs O(1);
// every Window pushes the running total is re-summed from the window to keep
// floating point drift bounded.
type Accumulator struct {
	spec   Spec
	window deque.Deque[float64]
	sum    float64
	pushes int
	out    []float64
}

// NewAccumulator returns an empty accumulator; spec.Window must be positive.
func NewAccumulator(spec Spec) *Accumulator {
	if spec.Window <= 0 {
		spec.Window = 1
	}
	a := &Accumulator{spec: spec}
	a.window.Grow(spec.Window + 1)
	return a
}

// Spec returns the view this accumulator computes.
func (a *Accumulator) Spec() Spec { return a.spec }

// Offset is the sample index of the first output value.
func (a *Accumulator) Offset() int { return a.spec.Window - 1 }

// Push adds the next sample and reports the new output, if the window is full.
func (a *Accumulator) Push(v float64) (float64, bool) {
	a.window.PushBack(v)
	a.sum += v
	if a.window.Len() > a.spec.Window {
		a.sum -= a.window.PopFront()
	}
	a.pushes++
	if a.pushes%a.spec.Window == 0 {
		a.resync()
	}
	if a.window.Len() < a.spec.Window {
		return 0, false
	}
	value := a.sum
	if a.spec.Kind == Mean {
		value /= float64(a.spec.Window)
	}
	a.out = append(a.out, value)
	return value, true
}

// Len returns the number of defined outputs.
func (a *Accumulator) Len() int { return len(a.out) }

// Values returns all outputs; output j belongs to sample index j+Offset().
// The slice is shared and must not be modified.
func (a *Accumulator) Values() []float64 { return a.out }

// Last returns the newest output.
func (a *Accumulator) Last() (float64, bool) {
	if len(a.out) == 0 {
		return 0, false
	}
	return a.out[len(a.out)-1], true
}

// Range returns outputs for sample indices in [from, to), and the sample
// index of the first value returned.
func (a *Accumulator) Range(from, to int) (int, []float64) {
	offset := a.Offset()
	if from < offset {
		from = offset
	}
	last := offset + len(a.out)
	if to > last {
		to = last
	}
	if from >= to {
		return from, nil
	}
	return from, a.out[from-offset : to-offset]
}

func (a *Accumulator) resync() {
	var sum float64
	for i := 0; i < a.window.Len(); i++ {
		sum += a.window.At(i)
	}
	a.sum = sum
}
