package plot

import (
	"math"
	"reflect"
	"testing"
)

func TestResample(t *testing.T) {
	l := Line{Start: 2, Values: []float64{1, 5, 3, 7}} // indices 2..5

	tests := []struct {
		name   string
		reduce Reducer
		points int
		want   []float64
	}{
		{"mean", ReduceMean, 4, []float64{math.NaN(), 3, 5, math.NaN()}},
		{"min", ReduceMin, 4, []float64{math.NaN(), 1, 3, math.NaN()}},
		{"max", ReduceMax, 4, []float64{math.NaN(), 5, 7, math.NaN()}},
		{"one per index", ReduceMean, 100, []float64{math.NaN(), math.NaN(), 1, 5, 3, 7, math.NaN(), math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resample(l, 0, 8, tt.points, tt.reduce)
			if len(got) != len(tt.want) {
				t.Fatalf("Resample = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.IsNaN(tt.want[i]) != math.IsNaN(got[i]) || (!math.IsNaN(got[i]) && got[i] != tt.want[i]) {
					t.Fatalf("Resample = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestResample_EmptyRange(t *testing.T) {
	if got := Resample(Line{Values: []float64{1}}, 5, 5, 10, ReduceMean); got != nil {
		t.Fatalf("Resample = %v, want nil", got)
	}
}

func TestFillGaps(t *testing.T) {
	nan := math.NaN()
	got, ok := FillGaps([]float64{nan, nan, 2, nan, 4, nan})
	if !ok || !reflect.DeepEqual(got, []float64{2, 2, 2, 2, 4, 4}) {
		t.Fatalf("FillGaps = %v, %v", got, ok)
	}
	if _, ok := FillGaps([]float64{nan, nan}); ok {
		t.Fatal("FillGaps reported defined values for all-NaN input")
	}
}
