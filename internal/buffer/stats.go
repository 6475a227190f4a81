package buffer

import (
	"fmt"
	"math"
)

// Stats is a set of statistical properties of a set of numbers.
type Stats struct {
	count          int
	sum            float64
	min, max       float64
	mean, dSquared float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{
		min: math.MaxFloat64,
		max: -math.MaxFloat64,
	}
}

// Push adds another element to the set.
func (s *Stats) Push(v float64) {
	s.count++
	s.sum += v
	diff := (v - s.mean) / float64(s.count)
	mean := s.mean + diff
	squaredDiff := (v - mean) * (v - s.mean)
	s.dSquared += squaredDiff
	s.mean = mean

	if s.min > v {
		s.min = v
	}

	if s.max < v {
		s.max = v
	}
}

// Avg returns the average value of the set, 0 for an empty set.
func (s Stats) Avg() float64 {
	return s.mean
}

// Sum returns the sum of the set.
func (s Stats) Sum() float64 {
	return s.sum
}

// Count returns the number of elements.
func (s Stats) Count() int {
	return s.count
}

// Min returns the smallest element, 0 for an empty set.
func (s Stats) Min() float64 {
	if s.count == 0 {
		return 0
	}
	return s.min
}

// Max returns the largest element, 0 for an empty set.
func (s Stats) Max() float64 {
	if s.count == 0 {
		return 0
	}
	return s.max
}

// Variance is the mathematical variance of the set.
func (s Stats) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	return s.dSquared / float64(s.count)
}

// StDev is the standard deviation of the set.
func (s Stats) StDev() float64 {
	return math.Sqrt(s.Variance())
}

// StatsCollector is a collection of Stats variables, one per label.
// This enables tracking several fuzzy categories in one pass.
type StatsCollector struct {
	labels []string
	stats  map[string]*Stats
}

// NewStatsCollector creates a new Stats collector for the given labels.
func NewStatsCollector(labels ...string) *StatsCollector {
	stats := make(map[string]*Stats, len(labels))
	for _, l := range labels {
		stats[l] = NewStats()
	}
	return &StatsCollector{
		labels: labels,
		stats:  stats,
	}
}

// Push pushes the value to the Stats of the given label.
func (sc *StatsCollector) Push(label string, v float64) error {
	s, ok := sc.stats[label]
	if !ok {
		return fmt.Errorf("unknown label '%s'", label)
	}
	s.Push(v)
	return nil
}

// Stats returns the Stats for the given label.
func (sc StatsCollector) Stats(label string) (Stats, bool) {
	s, ok := sc.stats[label]
	if !ok {
		return Stats{}, false
	}
	return *s, true
}

// Labels returns the labels of the collector, in insertion order.
func (sc StatsCollector) Labels() []string {
	return sc.labels
}
