package source

import (
	"context"
	"errors"
	"fmt"
)

// EmptyErr signals a data set without any observations.
var EmptyErr = errors.New("empty data set")

// Dataset is a named set of observations of one property.
type Dataset struct {
	Name        string    `json:"name"`
	Individuals []string  `json:"individuals,omitempty"`
	Values      []float64 `json:"values"`
}

// Size returns the number of observations.
func (d Dataset) Size() int {
	return len(d.Values)
}

// Validate checks that the data set is named, not empty and aligned with its individuals.
func (d Dataset) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("data set without name")
	}
	if len(d.Values) == 0 {
		return fmt.Errorf("'%s': %w", d.Name, EmptyErr)
	}
	if len(d.Individuals) > 0 && len(d.Individuals) != len(d.Values) {
		return fmt.Errorf("'%s' has %d individuals for %d values", d.Name, len(d.Individuals), len(d.Values))
	}
	return nil
}

// Source provides the observations to be granulated.
// Remote endpoints implement it as well as files.
type Source interface {
	Datasets(ctx context.Context) ([]Dataset, error)
}

// Static is a source over in-memory data sets.
type Static []Dataset

func (s Static) Datasets(ctx context.Context) ([]Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
