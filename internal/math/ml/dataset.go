package ml

import (
	"fmt"
	"math"

	"github.com/drakos74/granulo/internal/fuzzy"
)

// TrainingSet is an ordered set of equal-length samples.
type TrainingSet [][]float64

// Scalars creates a one-dimensional training set.
func Scalars(ff ...float64) TrainingSet {
	set := make(TrainingSet, len(ff))
	for i, f := range ff {
		set[i] = []float64{f}
	}
	return set
}

// Dim returns the dimension of the samples.
func (s TrainingSet) Dim() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Validate checks that the set is not empty and all samples share the same dimension.
func (s TrainingSet) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty training set: %w", fuzzy.ConfigurationErr)
	}
	dim := s.Dim()
	if dim == 0 {
		return fmt.Errorf("zero dimension samples: %w", fuzzy.ConfigurationErr)
	}
	for i, x := range s {
		if len(x) != dim {
			return fmt.Errorf("sample %d has dimension %d instead of %d: %w", i, len(x), dim, fuzzy.ConfigurationErr)
		}
		for _, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("sample %d is not finite: %w", i, fuzzy.ConfigurationErr)
			}
		}
	}
	return nil
}

// flat returns the samples as a row-major slice.
func (s TrainingSet) flat() []float64 {
	dim := s.Dim()
	data := make([]float64, len(s)*dim)
	for i, x := range s {
		copy(data[i*dim:], x)
	}
	return data
}
