package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/drakos74/granulo/internal/buffer"
	"github.com/drakos74/granulo/internal/granule"
	"github.com/drakos74/granulo/internal/math/ml"
	"github.com/drakos74/granulo/internal/metrics"
	"github.com/drakos74/granulo/internal/quantify"
	"github.com/drakos74/granulo/internal/source"
	"github.com/drakos74/granulo/internal/storage"
	granulotime "github.com/drakos74/granulo/internal/time"
	"github.com/rs/zerolog/log"
)

const (
	ClusteringStage     = "clustering"
	GranulationStage    = "granulation"
	QuantificationStage = "quantification"
)

// Centroids is the stored outcome of the clustering stage.
type Centroids struct {
	Labels     []string  `json:"labels"`
	Prototypes []float64 `json:"prototypes"`
	Iterations int       `json:"iterations"`
	Error      float64   `json:"error"`
	State      string    `json:"state"`
	// Elapsed is the time spent in clustering.
	Elapsed granulotime.Duration `json:"elapsed"`
}

// Row is the stored granulation of one individual.
type Row struct {
	Individual string             `json:"individual,omitempty"`
	Value      float64            `json:"value"`
	Degrees    map[string]float64 `json:"degrees"`
}

// Result is the outcome of the pipeline for one data set.
type Result struct {
	Set           string
	Skipped       bool
	Centroids     Centroids
	Quantifiers   []string
	Cardinalities map[string]float64
	Quantified    quantify.Result
	Elapsed       granulotime.Duration
}

// Pipeline clusters, granulates and quantifies every data set of the source.
type Pipeline struct {
	config   Config
	source   source.Source
	shard    storage.Shard
	observer *metrics.Metrics
	index    int
}

// New creates a new pipeline.
func New(config Config, src source.Source, shard storage.Shard) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		config:   config,
		source:   src,
		shard:    shard,
		observer: metrics.Observer,
	}, nil
}

// WithObserver sets the metrics collector of the pipeline.
func (p *Pipeline) WithObserver(m *metrics.Metrics) *Pipeline {
	p.observer = m
	return p
}

// Execute runs all stages for every data set of the source.
// Any error aborts the run and marks its output as failed.
func (p *Pipeline) Execute(ctx context.Context, run Run) ([]Result, error) {
	t0 := time.Now()
	log.Info().Str("run", run.ID).Str("dir", run.Dir()).Msg("process started")

	results, err := p.execute(ctx, run)
	if err != nil {
		log.Error().Err(err).Str("run", run.ID).Msg("process stopped due to an error")
		if ferr := run.Fail(); ferr != nil {
			log.Error().Err(ferr).Str("run", run.ID).Msg("could not mark run")
		}
		return nil, err
	}

	log.Info().
		Str("run", run.ID).
		Int("sets", len(results)).
		Dur("elapsed", time.Since(t0)).
		Msg("process completed")
	return results, nil
}

func (p *Pipeline) execute(ctx context.Context, run Run) ([]Result, error) {
	store, err := p.shard(run.Name())
	if err != nil {
		return nil, fmt.Errorf("could not init storage: %w", err)
	}

	sets, err := p.source.Datasets(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load data sets: %w", err)
	}

	results := make([]Result, 0, len(sets))
	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := set.Validate(); err != nil {
			return nil, fmt.Errorf("invalid data set: %w", err)
		}
		if reason, ok := p.prune(set); ok {
			log.Warn().
				Str("set", set.Name).
				Int("values", set.Size()).
				Str("reason", reason).
				Msg("skipping data set")
			p.observer.Stage(ClusteringStage, metrics.Skipped)
			results = append(results, Result{Set: set.Name, Skipped: true})
			continue
		}
		result, err := p.process(store, set)
		if err != nil {
			return nil, fmt.Errorf("could not process '%s': %w", set.Name, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// prune decides if the data set has too few observations to be clustered.
func (p *Pipeline) prune(set source.Dataset) (string, bool) {
	k := len(p.config.FuzzySetLabels)
	if set.Size() <= k {
		return fmt.Sprintf("instances are not sufficient for %d fuzzy sets", k), true
	}
	distinct := make(map[float64]struct{})
	for _, v := range set.Values {
		distinct[v] = struct{}{}
	}
	if len(distinct) < k {
		return fmt.Sprintf("%d distinct values for %d fuzzy sets", len(distinct), k), true
	}
	return "", false
}

// labels returns the fuzzy set labels for the next data set.
func (p *Pipeline) labels() []string {
	p.index++
	labels := make([]string, len(p.config.FuzzySetLabels))
	for i, l := range p.config.FuzzySetLabels {
		if p.config.IndexLabels {
			l += strconv.Itoa(p.index)
		}
		labels[i] = l
	}
	return labels
}

func (p *Pipeline) process(store storage.Persistence, set source.Dataset) (Result, error) {
	labels := p.labels()
	timer := granulotime.NewTimer(set.Name)
	quantifiers := make([]string, len(p.config.QuantifierLabels))
	copy(quantifiers, p.config.QuantifierLabels)
	result := Result{
		Set:         set.Name,
		Quantifiers: quantifiers,
	}

	if err := store.Store(storage.Key{Set: set.Name, Label: storage.SamplesLabel}, set); err != nil {
		return result, fmt.Errorf("could not store samples: %w", err)
	}
	describe(set)

	stop := timer.Start(ClusteringStage)
	centroids, err := p.cluster(set, labels)
	stop()
	if err != nil {
		p.observer.Stage(ClusteringStage, metrics.Failure)
		return result, fmt.Errorf("%s: %w", ClusteringStage, err)
	}
	p.observer.Stage(ClusteringStage, metrics.Success)
	centroids.Elapsed = timer.Elapsed(ClusteringStage)
	result.Centroids = centroids
	if err := store.Store(storage.Key{Set: set.Name, Label: storage.CentroidsLabel}, centroids); err != nil {
		return result, fmt.Errorf("could not store centroids: %w", err)
	}

	stop = timer.Start(GranulationStage)
	rows, err := p.granulate(set, centroids)
	stop()
	if err != nil {
		p.observer.Stage(GranulationStage, metrics.Failure)
		return result, fmt.Errorf("%s: %w", GranulationStage, err)
	}
	p.observer.Stage(GranulationStage, metrics.Success)
	granulesKey := storage.Key{Set: set.Name, Label: storage.GranulesLabel}
	if err := store.Store(granulesKey, rows); err != nil {
		return result, fmt.Errorf("could not store granules: %w", err)
	}

	// quantification works on the stored granules
	var stored []Row
	if err := store.Load(granulesKey, &stored); err != nil {
		// storages that do not keep anything fall back to the computed table
		log.Debug().Err(err).Str("set", set.Name).Msg("using computed granules")
		stored = rows
	}

	stop = timer.Start(QuantificationStage)
	q, err := p.quantify(stored, labels)
	stop()
	if err != nil {
		p.observer.Stage(QuantificationStage, metrics.Failure)
		return result, fmt.Errorf("%s: %w", QuantificationStage, err)
	}
	p.observer.Stage(QuantificationStage, metrics.Success)
	result.Elapsed = timer.Total()

	result.Cardinalities = q.Cardinalities()
	result.Quantified = q.Quantify()
	for g, c := range result.Cardinalities {
		p.observer.Cardinality(set.Name, g, c)
	}
	if err := store.Store(storage.Key{Set: set.Name, Label: storage.QuantifiersLabel}, result.Quantified); err != nil {
		return result, fmt.Errorf("could not store quantifiers: %w", err)
	}
	if err := store.Store(storage.Key{Set: set.Name, Label: storage.CardinalitiesLabel}, result.Cardinalities); err != nil {
		return result, fmt.Errorf("could not store cardinalities: %w", err)
	}

	log.Info().
		Str("set", set.Name).
		Floats64("prototypes", centroids.Prototypes).
		Interface("cardinalities", result.Cardinalities).
		Dur("elapsed", result.Elapsed.Duration).
		Msg("data set processed")

	return result, nil
}

func describe(set source.Dataset) {
	stats := buffer.NewStats()
	for _, v := range set.Values {
		stats.Push(v)
	}
	log.Debug().
		Str("set", set.Name).
		Int("count", stats.Count()).
		Float64("min", stats.Min()).
		Float64("max", stats.Max()).
		Float64("mean", stats.Avg()).
		Float64("stdev", stats.StDev()).
		Msg("data set loaded")
}

func (p *Pipeline) cluster(set source.Dataset, labels []string) (Centroids, error) {
	clusterer := p.config.Clusterer()
	r, err := clusterer.Cluster(ml.Scalars(set.Values...), len(labels), p.config.MaxError, p.config.MaxIter)
	if err != nil {
		return Centroids{}, err
	}
	p.observer.Iterations(r.State.String(), r.Iterations)

	prototypes, _ := r.Sorted()
	return Centroids{
		Labels:     labels,
		Prototypes: prototypes,
		Iterations: r.Iterations,
		Error:      r.Error,
		State:      r.State.String(),
	}, nil
}

func (p *Pipeline) granulate(set source.Dataset, centroids Centroids) ([]Row, error) {
	table, _, err := granule.Granulate(set.Values, centroids.Prototypes, centroids.Labels)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(table))
	for i, g := range table {
		rows[i] = Row{
			Value:   g.Sample,
			Degrees: g.Memberships.Map(),
		}
		if len(set.Individuals) > 0 {
			rows[i].Individual = set.Individuals[i]
		}
	}
	return rows, nil
}

func (p *Pipeline) quantify(rows []Row, labels []string) (*quantify.Quantifier, error) {
	degrees := make([]map[string]float64, len(rows))
	for i, r := range rows {
		degrees[i] = r.Degrees
	}
	return quantify.New(p.config.QuantifierPrototypes, p.config.QuantifierLabels, degrees, labels)
}
