package ml

import (
	"fmt"

	"github.com/drakos74/granulo/internal/fuzzy"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Initializer creates the initial partition matrix for the given training set and number of clusters.
// Every row of the matrix must sum to 1.
type Initializer func(set TrainingSet, k int) (*mat.Dense, error)

// StickBreaking draws every row by breaking the unit mass in turn:
// each of the first k-1 columns takes a uniform share of the remaining mass
// and the last column takes whatever is left.
// NOTE : this is not uniform over the simplex, earlier columns get bigger values.
func StickBreaking(src rand.Source) Initializer {
	r := rand.New(src)
	return func(set TrainingSet, k int) (*mat.Dense, error) {
		if err := check(set, k); err != nil {
			return nil, err
		}
		u := mat.NewDense(len(set), k, nil)
		row := make([]float64, k)
		for i := range set {
			cake := 1.0
			for j := 0; j < k-1; j++ {
				slice := r.Float64() * cake
				row[j] = slice
				cake -= slice
			}
			row[k-1] = cake
			u.SetRow(i, row)
		}
		return u, nil
	}
}

// Dirichlet draws every row uniformly over the simplex, from a Dirichlet(1,...,1) distribution.
func Dirichlet(src rand.Source) Initializer {
	return func(set TrainingSet, k int) (*mat.Dense, error) {
		if err := check(set, k); err != nil {
			return nil, err
		}
		alpha := make([]float64, k)
		for j := range alpha {
			alpha[j] = 1
		}
		dist := distmv.NewDirichlet(alpha, src)
		u := mat.NewDense(len(set), k, nil)
		row := make([]float64, k)
		for i := range set {
			u.SetRow(i, dist.Rand(row))
		}
		return u, nil
	}
}

func check(set TrainingSet, k int) error {
	if err := set.Validate(); err != nil {
		return err
	}
	if k < 2 {
		return fmt.Errorf("at least 2 clusters are needed, got %d: %w", k, fuzzy.ConfigurationErr)
	}
	return nil
}
