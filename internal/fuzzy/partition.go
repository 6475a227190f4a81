package fuzzy

import (
	"fmt"
	"math"
)

// Epsilon is the extension of the outer shoulders beyond the domain.
const Epsilon = 1e-3

// Interval is the closed domain [Inf,Sup] covered by a partition.
type Interval struct {
	Inf float64 `json:"inf"`
	Sup float64 `json:"sup"`
}

// Degree is the membership degree of a value to a labelled fuzzy set.
type Degree struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Membership is the ordered list of degrees of one value to all sets of a partition.
type Membership []Degree

// Get returns the degree for the given label.
func (m Membership) Get(label string) (float64, bool) {
	for _, d := range m {
		if d.Label == label {
			return d.Value, true
		}
	}
	return 0, false
}

// Sum returns the sum of all degrees.
func (m Membership) Sum() float64 {
	var s float64
	for _, d := range m {
		s += d.Value
	}
	return s
}

// Map converts the membership to a label keyed map.
func (m Membership) Map() map[string]float64 {
	mm := make(map[string]float64, len(m))
	for _, d := range m {
		mm[d.Label] = d.Value
	}
	return mm
}

// Partition is a strong fuzzy partition, an ordered family of fuzzy sets
// whose memberships add up to 1 at every point of the interval.
type Partition struct {
	prototypes []float64
	labels     []string
	interval   Interval
	sets       []Set
}

// NewPartition creates a strong fuzzy partition from the ascending prototypes.
// The first and last sets are shoulders flat up to the domain bounds,
// every interior prototype gets a triangle spanning its neighbours.
func NewPartition(prototypes []float64, labels []string, interval Interval) (*Partition, error) {
	n := len(prototypes)
	if n != len(labels) {
		return nil, fmt.Errorf("%d prototypes for %d labels: %w", n, len(labels), ConfigurationErr)
	}
	if n < 2 {
		return nil, fmt.Errorf("at least 2 prototypes are needed, got %d: %w", n, ConfigurationErr)
	}
	if err := validate(prototypes, labels, interval); err != nil {
		return nil, err
	}

	sets := make([]Set, n)

	left, err := Trapezoidal(interval.Inf-Epsilon, interval.Inf-Epsilon, prototypes[0], prototypes[1])
	if err != nil {
		return nil, fmt.Errorf("could not create left shoulder: %w", err)
	}
	sets[0] = left

	for i := 1; i < n-1; i++ {
		tr, err := Triangular(prototypes[i-1], prototypes[i], prototypes[i+1])
		if err != nil {
			return nil, fmt.Errorf("could not create set '%s': %w", labels[i], err)
		}
		sets[i] = tr
	}

	right, err := Trapezoidal(prototypes[n-2], prototypes[n-1], interval.Sup+Epsilon, interval.Sup+Epsilon)
	if err != nil {
		return nil, fmt.Errorf("could not create right shoulder: %w", err)
	}
	sets[n-1] = right

	pp := make([]float64, n)
	copy(pp, prototypes)
	ll := make([]string, n)
	copy(ll, labels)

	return &Partition{
		prototypes: pp,
		labels:     ll,
		interval:   interval,
		sets:       sets,
	}, nil
}

func validate(prototypes []float64, labels []string, interval Interval) error {
	if math.IsNaN(interval.Inf) || math.IsNaN(interval.Sup) || interval.Inf > interval.Sup {
		return fmt.Errorf("malformed interval %+v: %w", interval, ConfigurationErr)
	}
	seen := make(map[string]struct{}, len(labels))
	for i, p := range prototypes {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("prototype %d is not finite: %w", i, ConfigurationErr)
		}
		if i > 0 && prototypes[i-1] >= p {
			return fmt.Errorf("prototypes must be strictly ascending %v: %w", prototypes, ConfigurationErr)
		}
		if labels[i] == "" {
			return fmt.Errorf("label %d is empty: %w", i, ConfigurationErr)
		}
		if _, ok := seen[labels[i]]; ok {
			return fmt.Errorf("duplicate label '%s': %w", labels[i], ConfigurationErr)
		}
		seen[labels[i]] = struct{}{}
	}
	if interval.Inf > prototypes[0] || interval.Sup < prototypes[len(prototypes)-1] {
		return fmt.Errorf("interval %+v does not contain prototypes %v: %w", interval, prototypes, ConfigurationErr)
	}
	return nil
}

// Membership returns the degree of x to every set, in prototype order.
func (p *Partition) Membership(x float64) Membership {
	m := make(Membership, len(p.sets))
	for i, s := range p.sets {
		m[i] = Degree{
			Label: p.labels[i],
			Value: s.Membership(x),
		}
	}
	return m
}

// Labels returns the labels of the partition.
func (p *Partition) Labels() []string {
	ll := make([]string, len(p.labels))
	copy(ll, p.labels)
	return ll
}

// Prototypes returns the prototypes of the partition.
func (p *Partition) Prototypes() []float64 {
	pp := make([]float64, len(p.prototypes))
	copy(pp, p.prototypes)
	return pp
}

func (p *Partition) Interval() Interval {
	return p.interval
}

// Sets returns the fuzzy sets of the partition.
func (p *Partition) Sets() []Set {
	ss := make([]Set, len(p.sets))
	copy(ss, p.sets)
	return ss
}

func (p *Partition) Size() int {
	return len(p.sets)
}
