package storage

import (
	"errors"
	"fmt"
)

const (
	// DefaultDir is the root directory of all runs.
	DefaultDir = "output"

	CentroidsLabel     = "centroids"
	GranulesLabel      = "granules"
	QuantifiersLabel   = "quantifiers"
	CardinalitiesLabel = "cardinalities"
	SamplesLabel       = "samples"
)

// Shard creates a new storage implementation for the given run.
type Shard func(run string) (Persistence, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key of a stage result for one data set.
type Key struct {
	Set   string `json:"set"`
	Label string `json:"label"`
}

func (k Key) Path() string {
	return fmt.Sprintf("%s_%s.json", k.Set, k.Label)
}

// Persistence stores and loads json compatible values.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
