package fuzzy

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition_Membership(t *testing.T) {

	p, err := NewPartition([]float64{1, 5, 10}, []string{"Low", "Mid", "High"}, Interval{Inf: 0, Sup: 12})
	require.NoError(t, err)

	type test struct {
		x float64
		m Membership
	}

	tests := map[string]test{
		"low-prototype": {
			x: 1,
			m: Membership{{"Low", 1}, {"Mid", 0}, {"High", 0}},
		},
		"mid-prototype": {
			x: 5,
			m: Membership{{"Low", 0}, {"Mid", 1}, {"High", 0}},
		},
		"between-low-and-mid": {
			x: 3,
			m: Membership{{"Low", 0.5}, {"Mid", 0.5}, {"High", 0}},
		},
		"inf": {
			x: 0,
			m: Membership{{"Low", 1}, {"Mid", 0}, {"High", 0}},
		},
		"sup": {
			x: 12,
			m: Membership{{"Low", 0}, {"Mid", 0}, {"High", 1}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := p.Membership(tt.x)
			require.Equal(t, len(tt.m), len(m))
			for i, d := range tt.m {
				assert.Equal(t, d.Label, m[i].Label)
				assert.InDelta(t, d.Value, m[i].Value, 1e-12)
			}
		})
	}
}

func TestPartition_Unity(t *testing.T) {

	type test struct {
		prototypes []float64
		interval   Interval
	}

	tests := map[string]test{
		"two": {
			prototypes: []float64{2, 3},
			interval:   Interval{Inf: 0, Sup: 5},
		},
		"three": {
			prototypes: []float64{1, 5, 10},
			interval:   Interval{Inf: 0, Sup: 12},
		},
		"quantifiers": {
			prototypes: []float64{0.05, 0.275, 0.5, 0.725, 0.95},
			interval:   Interval{Inf: 0, Sup: 1},
		},
		"bounds-on-prototypes": {
			prototypes: []float64{-3.5, 0, 0.1, 7},
			interval:   Interval{Inf: -3.5, Sup: 7},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			labels := make([]string, len(tt.prototypes))
			for i := range labels {
				labels[i] = fmt.Sprintf("L%d", i)
			}
			p, err := NewPartition(tt.prototypes, labels, tt.interval)
			require.NoError(t, err)

			steps := 10000
			width := tt.interval.Sup - tt.interval.Inf
			for i := 0; i <= steps; i++ {
				x := tt.interval.Inf + width*float64(i)/float64(steps)
				assert.InDelta(t, 1.0, p.Membership(x).Sum(), 1e-9, "x = %v", x)
			}
			for _, x := range tt.prototypes {
				assert.InDelta(t, 1.0, p.Membership(x).Sum(), 1e-9, "x = %v", x)
			}
		})
	}
}

func TestPartition_UnityRandom(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 2; n < 10; n++ {
		prototypes := make([]float64, n)
		labels := make([]string, n)
		v := 0.0
		for i := range prototypes {
			v += 0.01 + r.Float64()*10
			prototypes[i] = v
			labels[i] = fmt.Sprintf("L%d", i)
		}
		p, err := NewPartition(prototypes, labels, Interval{Inf: 0, Sup: v + 1})
		require.NoError(t, err)
		for i := 0; i < 1000; i++ {
			x := r.Float64() * (v + 1)
			assert.InDelta(t, 1.0, p.Membership(x).Sum(), 1e-9)
		}
	}
}

func TestPartition_Invalid(t *testing.T) {

	type test struct {
		prototypes []float64
		labels     []string
		interval   Interval
	}

	tests := map[string]test{
		"length-mismatch": {
			prototypes: []float64{1, 2, 3},
			labels:     []string{"a", "b"},
			interval:   Interval{Inf: 0, Sup: 4},
		},
		"single": {
			prototypes: []float64{1},
			labels:     []string{"a"},
			interval:   Interval{Inf: 0, Sup: 4},
		},
		"unsorted": {
			prototypes: []float64{2, 1},
			labels:     []string{"a", "b"},
			interval:   Interval{Inf: 0, Sup: 4},
		},
		"coincident": {
			prototypes: []float64{1, 1, 3},
			labels:     []string{"a", "b", "c"},
			interval:   Interval{Inf: 0, Sup: 4},
		},
		"duplicate-labels": {
			prototypes: []float64{1, 2},
			labels:     []string{"a", "a"},
			interval:   Interval{Inf: 0, Sup: 4},
		},
		"outside-interval": {
			prototypes: []float64{1, 5},
			labels:     []string{"a", "b"},
			interval:   Interval{Inf: 2, Sup: 4},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := NewPartition(tt.prototypes, tt.labels, tt.interval)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ConfigurationErr), "%v", err)
		})
	}
}

func TestPartition_Copies(t *testing.T) {
	prototypes := []float64{1, 2}
	labels := []string{"a", "b"}
	p, err := NewPartition(prototypes, labels, Interval{Inf: 0, Sup: 3})
	require.NoError(t, err)

	prototypes[0] = -10
	labels[0] = "z"
	assert.Equal(t, []float64{1, 2}, p.Prototypes())
	assert.Equal(t, []string{"a", "b"}, p.Labels())
	assert.Equal(t, 2, p.Size())
	assert.Equal(t, Interval{Inf: 0, Sup: 3}, p.Interval())
}

func TestPartition_Sets(t *testing.T) {
	p, err := NewPartition([]float64{1, 5, 10}, []string{"Low", "Mid", "High"}, Interval{Inf: 0, Sup: 12})
	require.NoError(t, err)

	sets := p.Sets()
	require.Equal(t, 3, len(sets))
	assert.Equal(t, []float64{-Epsilon, -Epsilon, 1, 5}, sets[0].Points())
	assert.Equal(t, []float64{1, 5, 10}, sets[1].Points())
	assert.InDeltaSlice(t, []float64{5, 10, 12 + Epsilon, 12 + Epsilon}, sets[2].Points(), 1e-12)
}
