package quantify

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/granulo/internal/buffer"
	"github.com/drakos74/granulo/internal/fuzzy"
	"github.com/rs/zerolog/log"
)

// Domain is the domain of the quantifiers, cardinalities are always fractions.
var Domain = fuzzy.Interval{Inf: 0, Sup: 1}

// Result maps every granule label to its degree for every quantifier label.
type Result map[string]map[string]float64

// Quantifier maps the fuzzy cardinality of granules through a partition of linguistic quantifiers.
type Quantifier struct {
	quantifiers *fuzzy.Partition
	labels      []string
	counts      *buffer.StatsCollector
}

// New creates a new quantifier.
// degrees holds for every sample the membership degree to each of the granule labels.
func New(prototypes []float64, labels []string, degrees []map[string]float64, granules []string) (*Quantifier, error) {
	sfp, err := fuzzy.NewPartition(prototypes, labels, Domain)
	if err != nil {
		return nil, fmt.Errorf("could not create quantifiers: %w", err)
	}
	if len(granules) == 0 {
		return nil, fmt.Errorf("no granule labels: %w", fuzzy.ConfigurationErr)
	}
	seen := make(map[string]struct{}, len(granules))
	for _, g := range granules {
		if _, ok := seen[g]; ok {
			return nil, fmt.Errorf("duplicate granule label '%s': %w", g, fuzzy.ConfigurationErr)
		}
		seen[g] = struct{}{}
	}

	counts := buffer.NewStatsCollector(granules...)
	for i, row := range degrees {
		for _, g := range granules {
			v, ok := row[g]
			if !ok {
				return nil, fmt.Errorf("sample %d has no degree for '%s': %w", i, g, fuzzy.ConfigurationErr)
			}
			if math.IsNaN(v) || v < 0 || v > 1 {
				return nil, fmt.Errorf("sample %d has degree %v for '%s': %w", i, v, g, fuzzy.ConfigurationErr)
			}
			if err := counts.Push(g, v); err != nil {
				return nil, fmt.Errorf("could not count '%s': %w", g, err)
			}
		}
	}

	ll := make([]string, len(granules))
	copy(ll, granules)

	return &Quantifier{
		quantifiers: sfp,
		labels:      ll,
		counts:      counts,
	}, nil
}

// SigmaCount is the relative fuzzy cardinality of the granule,
// e.g. the mean degree of all samples to it.
// Without any samples it is 0.
func (q *Quantifier) SigmaCount(granule string) (float64, error) {
	s, ok := q.counts.Stats(granule)
	if !ok {
		return 0, fmt.Errorf("unknown granule '%s': %w", granule, fuzzy.ConfigurationErr)
	}
	if s.Count() == 0 {
		return 0, nil
	}
	// rounding must not push the mean out of [0,1]
	return math.Min(1, s.Sum()/float64(s.Count())), nil
}

// Cardinalities returns the sigma-count of every granule.
func (q *Quantifier) Cardinalities() map[string]float64 {
	cc := make(map[string]float64, len(q.labels))
	for _, g := range q.labels {
		c, _ := q.SigmaCount(g)
		cc[g] = c
	}
	return cc
}

// Quantify evaluates the quantifiers at the cardinality of every granule.
func (q *Quantifier) Quantify() Result {
	t0 := time.Now()
	result := make(Result, len(q.labels))
	for g, c := range q.Cardinalities() {
		result[g] = q.quantifiers.Membership(c).Map()
	}
	log.Debug().
		Strs("granules", q.labels).
		Strs("quantifiers", q.quantifiers.Labels()).
		Dur("elapsed", time.Since(t0)).
		Msg("quantification process completed")
	return result
}

// Granules returns the granule labels in the given order.
func (q *Quantifier) Granules() []string {
	ll := make([]string, len(q.labels))
	copy(ll, q.labels)
	return ll
}

// Quantifiers returns the quantifier partition.
func (q *Quantifier) Quantifiers() *fuzzy.Partition {
	return q.quantifiers
}
