package granule

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/granulo/internal/buffer"
	"github.com/drakos74/granulo/internal/fuzzy"
	"github.com/rs/zerolog/log"
)

// Granule is a sample together with its membership to every fuzzy set of the partition.
type Granule struct {
	Sample      float64          `json:"sample"`
	Memberships fuzzy.Membership `json:"memberships"`
}

// Table is the granulation result, one granule per sample in input order.
type Table []Granule

// Labels returns the labels of the granules, in partition order.
func (t Table) Labels() []string {
	if len(t) == 0 {
		return []string{}
	}
	ll := make([]string, len(t[0].Memberships))
	for i, d := range t[0].Memberships {
		ll[i] = d.Label
	}
	return ll
}

// Degrees returns for every sample the label keyed membership degrees.
func (t Table) Degrees() []map[string]float64 {
	dd := make([]map[string]float64, len(t))
	for i, g := range t {
		dd[i] = g.Memberships.Map()
	}
	return dd
}

// Samples returns the raw samples of the table.
func (t Table) Samples() []float64 {
	ss := make([]float64, len(t))
	for i, g := range t {
		ss[i] = g.Sample
	}
	return ss
}

// Granulate builds a strong fuzzy partition over the range of the dataset
// and computes the membership of every sample to it.
// The prototypes must be sorted in ascending order.
func Granulate(dataset []float64, prototypes []float64, labels []string) (Table, *fuzzy.Partition, error) {
	if len(dataset) == 0 {
		return nil, nil, fmt.Errorf("empty dataset: %w", fuzzy.ConfigurationErr)
	}

	stats := buffer.NewStats()
	for i, x := range dataset {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, nil, fmt.Errorf("sample %d is not finite: %w", i, fuzzy.ConfigurationErr)
		}
		stats.Push(x)
	}

	sfp, err := fuzzy.NewPartition(prototypes, labels, fuzzy.Interval{
		Inf: stats.Min(),
		Sup: stats.Max(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create partition: %w", err)
	}

	t0 := time.Now()
	table := make(Table, len(dataset))
	for i, x := range dataset {
		table[i] = Granule{
			Sample:      x,
			Memberships: sfp.Membership(x),
		}
	}

	log.Debug().
		Int("samples", len(dataset)).
		Strs("labels", labels).
		Dur("elapsed", time.Since(t0)).
		Msg("granulation process completed")

	return table, sfp, nil
}
