package ml

import (
	"fmt"
	"io/ioutil"

	"github.com/cdipaolo/goml/cluster"
	"github.com/drakos74/granulo/internal/fuzzy"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// KMeansSeed initialises the partition matrix from a hard k-means clustering.
// Each sample gets full membership to the cluster k-means assigned it to.
func KMeansSeed(iterations int) Initializer {
	return func(set TrainingSet, k int) (*mat.Dense, error) {
		if err := check(set, k); err != nil {
			return nil, err
		}
		if len(set) < k {
			return nil, fmt.Errorf("k-means needs at least %d samples, got %d: %w", k, len(set), fuzzy.ConfigurationErr)
		}
		model := cluster.NewKMeans(k, iterations, set)
		model.Output = ioutil.Discard
		if err := model.Learn(); err != nil {
			log.Error().
				Err(err).
				Int("samples", len(set)).
				Int("clusters", k).
				Msg("error during k-means seeding")
			return nil, fmt.Errorf("could not train k-means: %w", err)
		}
		guesses := model.Guesses()
		if len(guesses) != len(set) {
			return nil, fmt.Errorf("could not align guesses with data [ %d | %d ]", len(guesses), len(set))
		}
		u := mat.NewDense(len(set), k, nil)
		for i, g := range guesses {
			if g < 0 || g >= k {
				return nil, fmt.Errorf("k-means guess %d out of range for sample %d", g, i)
			}
			u.Set(i, g, 1)
		}
		return u, nil
	}
}
