package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Scalars(t *testing.T) {

	type test struct {
		centroids [][]float64
		scalars   []float64
		sorted    []float64
		ok        bool
	}

	tests := map[string]test{
		"scalars": {
			centroids: [][]float64{{3}, {1}, {2}},
			scalars:   []float64{3, 1, 2},
			sorted:    []float64{1, 2, 3},
			ok:        true,
		},
		"vectors": {
			centroids: [][]float64{{3, 1}, {1, 2}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := Result{Centroids: tt.centroids}
			scalars, ok := r.Scalars()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.scalars, scalars)
			sorted, ok := r.Sorted()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.sorted, sorted)
		})
	}
}

func TestState(t *testing.T) {
	assert.False(t, Initializing.Done())
	assert.False(t, Iterating.Done())
	assert.True(t, Converged.Done())
	assert.True(t, IterationLimitReached.Done())
	assert.Equal(t, "iteration-limit-reached", IterationLimitReached.String())
	assert.Equal(t, "unknown", State(42).String())
}
