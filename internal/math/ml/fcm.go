package ml

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/granulo/internal/fuzzy"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultFuzzifier is the canonical fuzzifier exponent.
	DefaultFuzzifier = 2.0
	DefaultMaxError  = 1e-4
	DefaultMaxIter   = 100
)

// FuzzyCMeans clusters a training set with the fuzzy c-means algorithm.
type FuzzyCMeans struct {
	fuzzifier   float64
	initializer Initializer
}

// NewFuzzyCMeans creates a new fuzzy c-means clusterer
// that starts from the partition matrix of the given initializer.
func NewFuzzyCMeans(initializer Initializer) *FuzzyCMeans {
	return &FuzzyCMeans{
		fuzzifier:   DefaultFuzzifier,
		initializer: initializer,
	}
}

// WithFuzzifier sets the fuzzifier exponent, it must be greater than 1.
func (f *FuzzyCMeans) WithFuzzifier(m float64) *FuzzyCMeans {
	f.fuzzifier = m
	return f
}

// InitPartition creates the initial partition matrix for k clusters.
func (f *FuzzyCMeans) InitPartition(set TrainingSet, k int) (*mat.Dense, error) {
	if f.initializer == nil {
		return nil, fmt.Errorf("no initializer: %w", fuzzy.ConfigurationErr)
	}
	return f.initializer(set, k)
}

// Cluster initialises the partition matrix and runs the refinement on it.
func (f *FuzzyCMeans) Cluster(set TrainingSet, k int, maxError float64, maxIter int) (Result, error) {
	u, err := f.InitPartition(set, k)
	if err != nil {
		return Result{}, fmt.Errorf("could not init partition matrix: %w", err)
	}
	return f.Run(set, u, maxError, maxIter)
}

// Run refines the partition matrix u until the max entrywise change drops below maxError
// or maxIter iterations have passed. Reaching the iteration limit is not an error,
// the result carries the state reached at that point.
// u is not modified.
func (f *FuzzyCMeans) Run(set TrainingSet, u0 mat.Matrix, maxError float64, maxIter int) (Result, error) {
	if err := set.Validate(); err != nil {
		return Result{}, err
	}
	n, k := u0.Dims()
	switch {
	case n != len(set):
		return Result{}, fmt.Errorf("partition matrix has %d rows for %d samples: %w", n, len(set), fuzzy.ConfigurationErr)
	case k < 2:
		return Result{}, fmt.Errorf("at least 2 clusters are needed, got %d: %w", k, fuzzy.ConfigurationErr)
	case f.fuzzifier <= 1 || math.IsInf(f.fuzzifier, 0) || math.IsNaN(f.fuzzifier):
		return Result{}, fmt.Errorf("fuzzifier must be greater than 1, got %v: %w", f.fuzzifier, fuzzy.ConfigurationErr)
	case maxIter < 1:
		return Result{}, fmt.Errorf("max iterations must be positive, got %d: %w", maxIter, fuzzy.ConfigurationErr)
	case maxError < 0 || math.IsNaN(maxError):
		return Result{}, fmt.Errorf("max error must not be negative, got %v: %w", maxError, fuzzy.ConfigurationErr)
	}

	log.Debug().
		Int("samples", n).
		Int("clusters", k).
		Float64("tolerance", maxError).
		Int("max-iterations", maxIter).
		Msg("clustering process in execution")

	t0 := time.Now()
	x := mat.NewDense(n, set.Dim(), set.flat())
	u := mat.DenseCopyOf(u0)
	c := mat.NewDense(k, set.Dim(), nil)

	result := Result{State: Iterating}
	for result.Iterations < maxIter {
		f.centroids(c, x, u)
		next := f.memberships(x, c)
		result.Error = maxChange(u, next)
		result.Iterations++
		u = next
		if result.Error < maxError {
			result.State = Converged
			break
		}
	}
	if result.State != Converged {
		result.State = IterationLimitReached
	}

	// centroids of the final partition
	f.centroids(c, x, u)
	result.Objective = f.objective(x, u, c)
	result.Centroids = make([][]float64, k)
	for j := 0; j < k; j++ {
		result.Centroids[j] = mat.Row(nil, j, c)
	}

	ev := log.Info()
	if result.State == IterationLimitReached {
		ev = log.Warn()
	}
	ev.Str("state", result.State.String()).
		Int("iterations", result.Iterations).
		Float64("error", result.Error).
		Float64("objective", result.Objective).
		Dur("elapsed", time.Since(t0)).
		Msg("clustering process completed")

	return result, nil
}

// centroids computes the membership weighted means of the samples into c.
func (f *FuzzyCMeans) centroids(c, x, u *mat.Dense) {
	n, k := u.Dims()
	w := mat.NewDense(n, k, nil)
	w.Apply(func(i, j int, v float64) float64 {
		return math.Pow(v, f.fuzzifier)
	}, u)

	c.Mul(w.T(), x)

	col := make([]float64, n)
	for j := 0; j < k; j++ {
		mat.Col(col, j, w)
		sum := floats.Sum(col)
		row := c.RawRowView(j)
		if sum > 0 && !math.IsInf(sum, 0) {
			floats.Scale(1/sum, row)
			continue
		}
		// no sample belongs to this cluster, fall back to the plain mean
		for d := range row {
			row[d] = mat.Sum(x.ColView(d)) / float64(n)
		}
	}
}

// memberships computes the membership of every sample to every centroid.
// A sample that coincides with one or more centroids is split equally among them.
func (f *FuzzyCMeans) memberships(x, c *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	k, _ := c.Dims()
	p := 2 / (f.fuzzifier - 1)

	u := mat.NewDense(n, k, nil)
	dist := make([]float64, k)
	for i := 0; i < n; i++ {
		xi := x.RawRowView(i)
		zeros := 0
		for j := 0; j < k; j++ {
			dist[j] = floats.Distance(xi, c.RawRowView(j), 2)
			if dist[j] <= 0 {
				zeros++
			}
		}
		if zeros > 0 {
			share := 1 / float64(zeros)
			for j := 0; j < k; j++ {
				if dist[j] <= 0 {
					u.Set(i, j, share)
				}
			}
			continue
		}
		for j := 0; j < k; j++ {
			var s float64
			for l := 0; l < k; l++ {
				s += math.Pow(dist[j]/dist[l], p)
			}
			u.Set(i, j, 1/s)
		}
	}
	return u
}

func (f *FuzzyCMeans) objective(x, u, c *mat.Dense) float64 {
	n, k := u.Dims()
	var j float64
	for i := 0; i < n; i++ {
		for l := 0; l < k; l++ {
			d := floats.Distance(x.RawRowView(i), c.RawRowView(l), 2)
			j += math.Pow(u.At(i, l), f.fuzzifier) * d * d
		}
	}
	return j
}

func maxChange(a, b *mat.Dense) float64 {
	var diff mat.Dense
	diff.Sub(a, b)
	r, c := diff.Dims()
	var largest float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := math.Abs(diff.At(i, j)); v > largest {
				largest = v
			}
		}
	}
	return largest
}
