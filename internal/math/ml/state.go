package ml

import "sort"

// State is the state of the clustering refinement loop.
type State int

const (
	Initializing State = iota
	Iterating
	Converged
	IterationLimitReached
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case IterationLimitReached:
		return "iteration-limit-reached"
	}
	return "unknown"
}

// Done returns true for the terminal states.
func (s State) Done() bool {
	return s == Converged || s == IterationLimitReached
}

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids are in no meaningful order.
	Centroids  [][]float64
	Iterations int
	// Error is the max entrywise change of the partition matrix in the last iteration.
	Error float64
	// Objective is the fuzzy c-means cost of the final partition.
	Objective float64
	State     State
}

// Scalars returns the centroids of a one-dimensional clustering.
func (r Result) Scalars() ([]float64, bool) {
	ff := make([]float64, len(r.Centroids))
	for i, c := range r.Centroids {
		if len(c) != 1 {
			return nil, false
		}
		ff[i] = c[0]
	}
	return ff, true
}

// Sorted returns the centroids of a one-dimensional clustering in ascending order.
func (r Result) Sorted() ([]float64, bool) {
	ff, ok := r.Scalars()
	if !ok {
		return nil, false
	}
	sort.Float64s(ff)
	return ff, true
}
